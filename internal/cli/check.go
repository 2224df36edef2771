package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/dashgrid/internal/engine"
)

// errLayoutDefects is returned by check when any screen has findings so the
// process exits non-zero.
var errLayoutDefects = errors.New("layout defects found")

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Report overlapping and out-of-grid widgets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), cmd, args[0])
		},
	}
}

func runCheck(ctx context.Context, cmd *cobra.Command, path string) error {
	out := cmd.OutOrStdout()

	d, err := loadDashboard(ctx, path)
	if err != nil {
		return err
	}

	total := 0
	for _, screen := range d.Screens {
		collisions := engine.CheckCollisions(screen.Items, screen.Resolution)
		for _, w := range engine.FormatCollisionWarnings(screen.Name, collisions) {
			printError(out, "%s", w)
		}
		if unplaced := len(screen.Items) - len(screen.PlacedItems()); unplaced > 0 {
			printWarning(out, "Screen %q: %d widgets have no position", screen.Name, unplaced)
		}
		total += len(collisions)
	}

	if total > 0 {
		return fmt.Errorf("%w: %d", errLayoutDefects, total)
	}
	printSuccess(out, "%d screens, %d widgets, no defects", len(d.Screens), d.ItemCount())
	return nil
}
