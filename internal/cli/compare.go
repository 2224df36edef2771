package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/dashgrid/internal/engine"
)

// newCompareCmd creates the compare command which packs a screen with every
// strategy and prints the statistics side by side. The file is not changed.
func newCompareCmd() *cobra.Command {
	var screen string

	cmd := &cobra.Command{
		Use:   "compare [file]",
		Short: "Compare packing strategies on a screen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd.Context(), cmd, args[0], screen)
		},
	}

	cmd.Flags().StringVarP(&screen, "screen", "s", "", "screen id or name (default: first screen)")

	return cmd
}

func runCompare(ctx context.Context, cmd *cobra.Command, path, screenRef string) error {
	out := cmd.OutOrStdout()

	d, err := loadDashboard(ctx, path)
	if err != nil {
		return err
	}
	idx, err := screenIndex(d, screenRef)
	if err != nil {
		return err
	}
	screen := d.Screens[idx]

	results := engine.CompareStrategies(screen.Items, screen.Resolution)

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			string(r.Strategy),
			fmt.Sprintf("%d", r.RowsUsed),
			fmt.Sprintf("%d", r.EmptyCells),
			fmt.Sprintf("%.1f%%", r.Density(screen.Resolution.Columns)),
			fmt.Sprintf("%d", r.MovedCount),
			fmt.Sprintf("%d", r.KeptCount),
		})
	}

	printTitle(out, fmt.Sprintf("%s (%s, %d widgets)", screen.Name, screen.Resolution, len(screen.Items)))
	printTable(out, []string{"Strategy", "Rows", "Empty", "Density", "Moved", "Kept"}, rows)
	for _, r := range results {
		if r.KeptCount > 0 {
			printWarning(out, "%s keeps %d widgets at their old position; placed widgets may overlap them", r.Strategy, r.KeptCount)
		}
	}
	if best, ok := engine.Best(results); ok {
		printInfo(out, "Best: %s", best.Strategy)
	}
	return nil
}
