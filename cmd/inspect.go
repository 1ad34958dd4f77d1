package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkastrati/windlink/config"
	"github.com/dkastrati/windlink/core/allocation"
	"github.com/dkastrati/windlink/infra/loader"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Check the input series without solving",
	Long: "Loads both production series, verifies their timestamp alignment " +
		"and reports whether the configured big-M dominates the data.",
	RunE: inspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func inspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	prodA, err := loader.LoadSeries(cfg.Input.RegionA, cfg.Input.FromYear, cfg.Input.ToYear)
	if err != nil {
		return err
	}
	prodB, err := loader.LoadSeries(cfg.Input.RegionB, cfg.Input.FromYear, cfg.Input.ToYear)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d timesteps, max production %.3f MWh\n", prodA.Region(), prodA.Len(), prodA.Max())
	fmt.Fprintf(out, "%s: %d timesteps, max production %.3f MWh\n", prodB.Region(), prodB.Len(), prodB.Max())

	if _, err := allocation.Build(prodA, prodB, cfg.Solver.BigM); err != nil {
		return err
	}
	fmt.Fprintf(out, "model builds: big_m %.3f dominates both series\n", cfg.Solver.BigM)
	return nil
}
