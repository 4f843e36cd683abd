package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/viper"

	"github.com/dcervantes/powerpick/internal/domain"
	"github.com/dcervantes/powerpick/internal/pkg/constants"
	"github.com/dcervantes/powerpick/internal/pkg/loader"
	"github.com/dcervantes/powerpick/internal/pkg/logger"
	"github.com/dcervantes/powerpick/internal/pkg/sample"
)

const disclaimer = "Rates shown are from the Power to Choose export and may lag the EFL. Always confirm against the Electricity Facts Label before signing."

func main() {
	ctx := context.Background()
	defer logger.Sync()

	initConfig()

	fetchCtx, cancel := context.WithTimeout(ctx, viper.GetDuration(constants.ViperKeyFetchTimeout))
	defer cancel()

	source := "Power to Choose"
	plans, err := loader.New(nil).FetchPlans(fetchCtx)
	if err != nil {
		logger.Warnf(ctx, "fetch failed, falling back to sample data: %s", err.Error())
		plans = sample.Plans()
		source = "Sample Data (for development)"
	}

	data := &domain.PlansData{
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
		DataSource:  source,
		TotalPlans:  len(plans),
		Disclaimer:  disclaimer,
		Plans:       plans,
	}

	out := filepath.Join(viper.GetString(constants.ViperKeyDataDir), viper.GetString(constants.ViperKeyPlansFile))
	if err := writeJSON(out, data); err != nil {
		logger.Fatal(ctx, err)
	}

	logger.Infof(ctx, "wrote %d plans from %s to %s", len(plans), source, out)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := sonic.ConfigDefault.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func initConfig() {
	viper.SetDefault(constants.ViperKeyDataDir, "data")
	viper.SetDefault(constants.ViperKeyPlansFile, "plans.json")
	viper.SetDefault(constants.ViperKeyFetchTimeout, 5*time.Minute)

	viper.SetEnvPrefix("powerpick")
	viper.AutomaticEnv()
}
