package cli

import (
	"context"
	"fmt"

	"github.com/piwi3910/dashgrid/internal/model"
	"github.com/piwi3910/dashgrid/internal/project"
)

const recentLimit = 10

func loadDashboard(ctx context.Context, path string) (model.Dashboard, error) {
	d, err := project.LoadDashboard(path)
	if err != nil {
		return model.Dashboard{}, err
	}
	loggerFromContext(ctx).Debug("loaded dashboard", "path", path, "screens", len(d.Screens), "widgets", d.ItemCount())
	return d, nil
}

// saveDashboard writes d and records path in the recent list of the config.
// Failing to update the config is logged, not returned.
func saveDashboard(ctx context.Context, path string, d model.Dashboard) error {
	if err := project.SaveDashboard(path, d); err != nil {
		return err
	}
	logger := loggerFromContext(ctx)
	logger.Debug("saved dashboard", "path", path)

	cfg := configFromContext(ctx)
	if cfg.path == "" {
		return nil
	}
	project.AddRecentDashboard(&cfg.AppConfig, path, recentLimit)
	if err := project.SaveAppConfig(cfg.path, cfg.AppConfig); err != nil {
		logger.Warn("failed to update recent dashboards", "err", err)
	}
	return nil
}

// screenIndex resolves --screen. An empty reference selects the first screen.
func screenIndex(d model.Dashboard, ref string) (int, error) {
	if ref == "" {
		if len(d.Screens) == 0 {
			return -1, fmt.Errorf("%w: dashboard %q has no screens", model.ErrScreenNotFound, d.Name)
		}
		return 0, nil
	}
	return d.ScreenIndex(ref)
}
