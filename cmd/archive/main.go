package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/dcervantes/powerpick/internal/pkg/archive"
	"github.com/dcervantes/powerpick/internal/pkg/constants"
	"github.com/dcervantes/powerpick/internal/pkg/loader"
	"github.com/dcervantes/powerpick/internal/pkg/logger"
)

func main() {
	ctx := context.Background()
	defer logger.Sync()

	initConfig()

	plansPath := filepath.Join(viper.GetString(constants.ViperKeyDataDir), viper.GetString(constants.ViperKeyPlansFile))
	data, err := loader.LoadPlansFile(plansPath)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	out, err := archive.WriteSnapshot(data.Plans, viper.GetString(constants.ViperKeyArchiveDir), time.Now())
	if err != nil {
		logger.Fatal(ctx, err)
	}

	logger.Infof(ctx, "archived %d plans to %s", len(data.Plans), out)
}

func initConfig() {
	viper.SetDefault(constants.ViperKeyDataDir, "data")
	viper.SetDefault(constants.ViperKeyPlansFile, "plans.json")
	viper.SetDefault(constants.ViperKeyArchiveDir, "archive")

	viper.SetEnvPrefix("powerpick")
	viper.AutomaticEnv()
}
