package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/dashgrid/internal/engine"
	"github.com/piwi3910/dashgrid/internal/model"
)

type tidyOpts struct {
	screen   string
	strategy string
	dryRun   bool
}

// newTidyCmd creates the tidy command which compacts one screen, or every
// screen when --screen is not given.
func newTidyCmd() *cobra.Command {
	var opts tidyOpts

	cmd := &cobra.Command{
		Use:   "tidy [file]",
		Short: "Compact widgets towards the top-left of the grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTidy(cmd.Context(), cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.screen, "screen", "s", "", "screen id or name (default: all screens)")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "", "packing strategy: greedy, compact (default from config)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "report the result without writing the file")

	return cmd
}

func runTidy(ctx context.Context, cmd *cobra.Command, path string, opts tidyOpts) error {
	logger := loggerFromContext(ctx)
	out := cmd.OutOrStdout()

	settings := model.DefaultLayoutSettings()
	configFromContext(ctx).ApplyToSettings(&settings)
	if opts.strategy != "" {
		strategy, err := model.ParseStrategy(opts.strategy)
		if err != nil {
			return err
		}
		settings.Strategy = strategy
	}
	opt := engine.New(settings)

	d, err := loadDashboard(ctx, path)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	var (
		screens []model.Screen
		results []model.PackResult
	)
	if opts.screen != "" {
		idx, err := screenIndex(d, opts.screen)
		if err != nil {
			return err
		}
		result := opt.Tidy(d.Screens[idx])
		d.Screens[idx].Items = result.Items()
		screens = []model.Screen{d.Screens[idx]}
		results = []model.PackResult{result}
	} else {
		d, results, err = opt.TidyDashboard(ctx, d)
		if err != nil {
			return err
		}
		screens = d.Screens
	}
	prog.done(fmt.Sprintf("Packed %d screens with %s", len(results), settings.Strategy))

	for i, result := range results {
		screen := screens[i]
		for _, kept := range result.Kept() {
			logger.Warn("widget does not fit, kept at its position and may be overlapped",
				"screen", screen.Name, "id", kept.ID, "size", kept.Size().String(), "at", kept.Position().String())
		}
		printSuccess(out, "%s: %d widgets in %d of %d rows, %d kept",
			screen.Name, len(result.Placements), result.Height(), screen.Resolution.Rows, len(result.Kept()))
	}

	if opts.dryRun {
		return nil
	}
	return saveDashboard(ctx, path, d)
}
