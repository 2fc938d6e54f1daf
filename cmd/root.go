package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/chriserin/fspec/internal/config"
	"github.com/chriserin/fspec/internal/logging"
)

var (
	configPath string
	logLevel   string

	cfg    = config.Default()
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:          "fspec",
	Short:        "Track behavior specs written in markdown",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = logLevel
		}
		l, err := logging.New(cmd.ErrOrStderr(), loaded.LogLevel)
		if err != nil {
			return err
		}
		cfg, logger = loaded, l
		logger.Debug().Str("dir", cfg.Dir).Str("database", cfg.Database).Msg("config loaded")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.FileName+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// requireInit fails when the spec directory has not been created yet.
func requireInit(c *config.Config) error {
	if _, err := os.Stat(c.Dir); os.IsNotExist(err) {
		return fmt.Errorf("run `fspec init` first")
	}
	return nil
}

// parseID accepts "12" or "@spec:12".
func parseID(raw string) (int64, error) {
	raw = strings.TrimPrefix(raw, "@spec:")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid scenario ID: %s", raw)
	}
	return id, nil
}
