package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/dashgrid/internal/model"
	"github.com/piwi3910/dashgrid/internal/project"
)

type initOpts struct {
	name    string
	screen  string
	columns int
	rows    int
	force   bool
}

// newInitCmd creates the init command which writes an empty dashboard with
// one screen. Grid size defaults come from the config.
func newInitCmd() *cobra.Command {
	var opts initOpts

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Create an empty dashboard file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.Context(), cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "dashboard name (default: file name)")
	cmd.Flags().StringVar(&opts.screen, "screen", "Home", "name of the first screen")
	cmd.Flags().IntVar(&opts.columns, "columns", 0, "grid columns (default from config)")
	cmd.Flags().IntVar(&opts.rows, "rows", 0, "grid rows (default from config)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing file")

	return cmd
}

func runInit(ctx context.Context, cmd *cobra.Command, path string, opts initOpts) error {
	if _, err := project.FormatForPath(path); err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !opts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	res := configFromContext(ctx).Resolution()
	if opts.columns > 0 {
		res.Columns = opts.columns
	}
	if opts.rows > 0 {
		res.Rows = opts.rows
	}
	if !res.Valid() {
		return fmt.Errorf("invalid grid %s", res)
	}

	name := opts.name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	d := model.Dashboard{Name: name, Screens: []model.Screen{model.NewScreen(opts.screen, res)}}

	if err := saveDashboard(ctx, path, d); err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "Created dashboard %q with a %s screen", name, res)
	printFile(cmd.OutOrStdout(), path)
	return nil
}
