package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/piwi3910/dashgrid/internal/engine"
	"github.com/piwi3910/dashgrid/internal/model"
)

type placeOpts struct {
	screen   string
	id       string
	itemType string
	title    string
	entity   string
	width    int
	height   int
	dryRun   bool
}

// newPlaceCmd creates the place command which adds one widget at the first
// free position of a screen.
func newPlaceCmd() *cobra.Command {
	opts := placeOpts{itemType: "entity"}

	cmd := &cobra.Command{
		Use:   "place [file]",
		Short: "Add a widget at the first free grid position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlace(cmd.Context(), cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.screen, "screen", "s", "", "screen id or name (default: first screen)")
	cmd.Flags().StringVar(&opts.id, "id", "", "widget id (default: generated)")
	cmd.Flags().StringVarP(&opts.itemType, "type", "t", opts.itemType, "widget type")
	cmd.Flags().StringVar(&opts.title, "title", "", "widget title")
	cmd.Flags().StringVar(&opts.entity, "entity", "", "entity shown by the widget")
	cmd.Flags().IntVarP(&opts.width, "width", "W", 0, "width in cells (default from config)")
	cmd.Flags().IntVarP(&opts.height, "height", "H", 0, "height in cells (default from config)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the position without writing the file")

	return cmd
}

func runPlace(ctx context.Context, cmd *cobra.Command, path string, opts placeOpts) error {
	logger := loggerFromContext(ctx)

	d, err := loadDashboard(ctx, path)
	if err != nil {
		return err
	}
	idx, err := screenIndex(d, opts.screen)
	if err != nil {
		return err
	}

	settings := model.DefaultLayoutSettings()
	configFromContext(ctx).ApplyToSettings(&settings)
	it := engine.New(settings).NewItem(opts.itemType, opts.width, opts.height)
	if opts.id != "" {
		it.ID = opts.id
	}
	it.Title = opts.title
	it.Entity = opts.entity

	screen := d.Screens[idx]
	if _, exists := screen.Item(it.ID); exists {
		logger.Warn("widget id already used on screen", "id", it.ID, "screen", screen.Name)
	}
	if it.Width > screen.Resolution.Columns {
		logger.Warn("widget is wider than the grid", "width", it.Width, "columns", screen.Resolution.Columns)
	}

	d.Screens[idx] = engine.PlaceItems(screen, it)
	items := d.Screens[idx].Items
	placed := items[len(items)-1]
	if err := placed.CheckExtent(); err != nil {
		return err
	}
	if placed.Bottom() > screen.Resolution.Rows {
		logger.Info("widget extends below the visible rows", "bottom", placed.Bottom(), "rows", screen.Resolution.Rows)
	}

	printSuccess(cmd.OutOrStdout(), "Placed %s %s at %s on %q", placed.ID, placed.Size(), placed.Position(), screen.Name)
	if opts.dryRun {
		return nil
	}
	return saveDashboard(ctx, path, d)
}
