package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/dcervantes/powerpick/internal/api"
	"github.com/dcervantes/powerpick/internal/pkg/constants"
	"github.com/dcervantes/powerpick/internal/pkg/loader"
	"github.com/dcervantes/powerpick/internal/pkg/logger"
	"github.com/dcervantes/powerpick/internal/pkg/sample"
)

func main() {
	ctx := context.Background()
	defer logger.Sync()

	initConfig()

	dataDir := viper.GetString(constants.ViperKeyDataDir)
	l := loader.New(nil)

	dataset, err := l.LoadDataset(ctx,
		filepath.Join(dataDir, viper.GetString(constants.ViperKeyPlansFile)),
		filepath.Join(dataDir, viper.GetString(constants.ViperKeyTDURatesFile)),
		filepath.Join(dataDir, viper.GetString(constants.ViperKeyLocalTaxesFile)),
	)
	if err != nil {
		logger.Warnf(ctx, "loading dataset from %s failed, serving sample data: %s", dataDir, err.Error())
		dataset = &loader.Dataset{
			Plans:      sample.Data(),
			TDURates:   sample.TDUs(),
			LocalTaxes: sample.Taxes(),
		}
	}

	svc, err := api.NewAPIService(dataset, viper.GetStringSlice(constants.ViperKeyCORSOrigins))
	if err != nil {
		logger.Fatal(ctx, err)
	}

	go svc.Serve(viper.GetString(constants.ViperKeyListenAddr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := svc.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "shutdown: %s", err.Error())
	}
}

func initConfig() {
	viper.SetDefault(constants.ViperKeyListenAddr, ":8080")
	viper.SetDefault(constants.ViperKeyDataDir, "data")
	viper.SetDefault(constants.ViperKeyPlansFile, "plans.json")
	viper.SetDefault(constants.ViperKeyTDURatesFile, "tdu_rates.json")
	viper.SetDefault(constants.ViperKeyLocalTaxesFile, "local_taxes.json")
	viper.SetDefault(constants.ViperKeyCORSOrigins, []string{"http://localhost:3000"})

	viper.SetEnvPrefix("powerpick")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig()
}
