package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/limaJavier/regatta/internal/config"
	"github.com/limaJavier/regatta/internal/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "regatta",
	Short:         "Race-day scheduler for rowing regattas",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (YAML or JSON), defaults apply when empty")
}

// loadConfig reads the configuration and configures logging from it
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.Configure(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return nil, err
	}
	if overrides := config.Environment(); len(overrides) > 0 {
		logger.New("config").Debugf("environment overrides: %v", overrides)
	}
	return cfg, nil
}
