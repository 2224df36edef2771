package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/dashgrid/internal/model"
	"github.com/piwi3910/dashgrid/internal/project"
)

// newBackupCmd creates the backup command which bundles the config and the
// given dashboards (default: the recent list) into one JSON file.
func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [out.json] [dashboard...]",
		Short: "Write config and dashboards to a backup file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackup(cmd.Context(), cmd, args[0], args[1:])
		},
	}
}

func runBackup(ctx context.Context, cmd *cobra.Command, out string, paths []string) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	if len(paths) == 0 {
		paths = cfg.RecentDashboards
	}
	dashboards := make([]model.Dashboard, 0, len(paths))
	for _, p := range paths {
		d, err := project.LoadDashboard(p)
		if err != nil {
			logger.Warn("skipping dashboard", "path", p, "err", err)
			continue
		}
		dashboards = append(dashboards, d)
	}

	if err := project.ExportAllData(out, cfg.AppConfig, dashboards...); err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "Backed up config and %d dashboards", len(dashboards))
	printFile(cmd.OutOrStdout(), out)
	return nil
}

// newRestoreCmd creates the restore command which writes the config of a
// backup to the config path and each dashboard to <dir>/<name>.json.
func newRestoreCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "restore [backup.json]",
		Short: "Restore config and dashboards from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(cmd.Context(), cmd, args[0], dir)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory for restored dashboards")

	return cmd
}

func runRestore(ctx context.Context, cmd *cobra.Command, in, dir string) error {
	out := cmd.OutOrStdout()
	cfg := configFromContext(ctx)

	backup, err := project.ImportAllData(in)
	if err != nil {
		return err
	}

	paths := make([]string, len(backup.Dashboards))
	owner := make(map[string]string, len(backup.Dashboards))
	for i, d := range backup.Dashboards {
		name := restoreFileName(d.Name, i)
		key := strings.ToLower(name)
		if prev, ok := owner[key]; ok {
			return fmt.Errorf("dashboards %q and %q would both restore to %s.json", prev, d.Name, name)
		}
		owner[key] = d.Name
		paths[i] = filepath.Join(dir, name+".json")
	}

	if cfg.path != "" {
		if err := project.SaveAppConfig(cfg.path, backup.Config); err != nil {
			return err
		}
		printInfo(out, "Restored config (backup from %s)", backup.CreatedAt)
	}
	for i, d := range backup.Dashboards {
		if err := project.SaveDashboard(paths[i], d); err != nil {
			return err
		}
		printFile(out, paths[i])
	}
	printSuccess(out, "Restored %d dashboards", len(backup.Dashboards))
	return nil
}

// restoreFileName turns a dashboard name into a bare file name inside the
// restore directory. Separators and other unsafe characters become '-',
// leading dots and dashes are dropped. Names that end up empty use dashboard-<i+1>.
func restoreFileName(name string, i int) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '-'
	}, strings.TrimSpace(name))
	slug = strings.TrimRight(strings.TrimLeft(slug, ".-"), "-")
	if slug == "" {
		return fmt.Sprintf("dashboard-%d", i+1)
	}
	return slug
}
