package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atcovolan/pricewatch/internal/config"
)

var dryRun bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a single monitoring cycle and exit",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&dryRun, "dry-run", false, "log alerts instead of delivering them")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := newLogger(cfg)

	mon, err := buildMonitor(cfg, log, dryRun)
	if err != nil {
		return err
	}

	return mon.CheckCycle(context.Background())
}
