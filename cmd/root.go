package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dkastrati/windlink/app"
	"github.com/dkastrati/windlink/config"
	"github.com/dkastrati/windlink/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "windlink",
	Short: "Cross-border wind surplus allocator",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()

	summary, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("run %s: %w", summary.RunID, err)
	}
	logger.New("main").Infof("run %s optimal: %.3f MWh allocated over %d timesteps",
		summary.RunID, summary.Objective, summary.Timesteps)
	return nil
}
