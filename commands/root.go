package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"foodfindr/config"
	"foodfindr/utils"
)

var rootCmd = &cobra.Command{
	Use:           "foodfindr",
	Short:         "foodfindr scrapes restaurant listings and menus into CSV feature tables and loads them into PostgreSQL.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads and validates the configuration and builds the logger.
func setup() (*config.Config, *utils.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger := utils.NewLoggerWithWriter(os.Stderr, cfg.LogLevel)
	return cfg, logger, nil
}
