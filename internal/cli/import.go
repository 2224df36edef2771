package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/dashgrid/internal/engine"
	"github.com/piwi3910/dashgrid/internal/importer"
)

// newImportCmd creates the import command which reads widgets from a CSV or
// Excel sheet and places the ones without coordinates on a screen.
func newImportCmd() *cobra.Command {
	var (
		screen string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "import [sheet] [file]",
		Short: "Import widgets from CSV or Excel and place them",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), cmd, args[0], args[1], screen, dryRun)
		},
	}

	cmd.Flags().StringVarP(&screen, "screen", "s", "", "screen id or name (default: first screen)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the placements without writing the file")

	return cmd
}

func runImport(ctx context.Context, cmd *cobra.Command, sheet, path, screenRef string, dryRun bool) error {
	logger := loggerFromContext(ctx)
	out := cmd.OutOrStdout()

	d, err := loadDashboard(ctx, path)
	if err != nil {
		return err
	}
	idx, err := screenIndex(d, screenRef)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	result := importer.Import(sheet)
	for _, w := range result.Warnings {
		logger.Warn(w)
	}
	for _, e := range result.Errors {
		printError(out, "%s", e)
	}
	if len(result.Items) == 0 {
		return fmt.Errorf("no widgets imported from %s", sheet)
	}

	screen := d.Screens[idx]
	d.Screens[idx] = engine.PlaceItems(screen, result.Items...)
	if err := d.Screens[idx].Validate(); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Imported %d widgets", len(result.Items)))

	placed := d.Screens[idx].Items[len(screen.Items):]
	for _, it := range placed {
		printInfo(out, "%s %s at %s", it.ID, it.Size(), it.Position())
	}
	printSuccess(out, "Added %d widgets to %q (%d errors)", len(placed), screen.Name, len(result.Errors))

	if dryRun {
		return nil
	}
	return saveDashboard(ctx, path, d)
}
