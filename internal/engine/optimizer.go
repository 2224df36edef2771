package engine

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/dashgrid/internal/model"
)

// Optimizer applies the configured compaction strategy to screens.
type Optimizer struct {
	Settings model.LayoutSettings
}

func New(settings model.LayoutSettings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// Tidy compacts one screen's items on the screen's own resolution.
func (o *Optimizer) Tidy(screen model.Screen) model.PackResult {
	return Pack(o.Settings.Strategy, screen.Items, screen.Resolution.Columns, screen.Resolution.Rows)
}

// TidyScreen returns a copy of screen with its items repositioned.
func (o *Optimizer) TidyScreen(screen model.Screen) model.Screen {
	out := screen
	out.Items = o.Tidy(screen).Items()
	return out
}

// TidyDashboard compacts every screen. Screens share nothing, so they are
// packed in parallel; the input dashboard is left untouched. The context
// only stops screens that have not started yet.
func (o *Optimizer) TidyDashboard(ctx context.Context, d model.Dashboard) (model.Dashboard, []model.PackResult, error) {
	out := d
	out.Screens = make([]model.Screen, len(d.Screens))
	results := make([]model.PackResult, len(d.Screens))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, screen := range d.Screens {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = o.Tidy(screen)
			out.Screens[i] = screen
			out.Screens[i].Items = results[i].Items()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return d, nil, err
	}
	return out, results, nil
}

// NewItem creates a widget of the given type using the default size from
// the settings when w or h is not positive.
func (o *Optimizer) NewItem(itemType string, w, h int) model.GridItem {
	if w < 1 {
		w = o.Settings.DefaultWidth
	}
	if h < 1 {
		h = o.Settings.DefaultHeight
	}
	return model.NewGridItem(itemType, w, h)
}
