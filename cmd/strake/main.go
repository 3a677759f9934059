package main

import (
	"fmt"
	"os"

	"github.com/quantarc/strake/internal/config"
	"github.com/quantarc/strake/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "strake",
	Short: "strake - bar series, indicators and strategy backtesting",
	Long: `strake builds bar series from market data, evaluates indicator based
trading strategies over them and scores the resulting trade records.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setup loads the configuration and builds the logger shared by subcommands.
func setup() (*config.Config, *zap.Logger, error) {
	var cfg *config.Config
	if cfgFile != "" {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
	}

	if debug {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}

	log := logger.New(cfg.Log)
	if cfgFile == "" {
		log.Debug("no config file specified, using defaults")
	}
	return cfg, log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
