package main

import (
	"fmt"

	"gigmatch/internal/config"
	"gigmatch/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const app = "gigmatch"

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "gigmatch ranks open gigs for a candidate and explains every score",
		SilenceUsage: true,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "an optional config file; environment variables win over it")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = viper.BindPFlag("LOG_DEBUG", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("LOG_JSON", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
}

// loadRuntime reads the config file (if any) and the environment, then
// builds the process logger.
func loadRuntime() (config.Config, *zap.Logger, error) {
	if cfgFile != "" {
		if err := viper.ReadInConfig(); err != nil {
			return config.Config{}, nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, nil, err
	}

	l, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("creating a logger: %w", err)
	}
	return cfg, l.With(zap.String("app", cfg.App.AppName), zap.String("env", cfg.App.Environment)), nil
}
