package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/dashgrid/internal/project"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// It is called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the dashgrid CLI with the process arguments.
func Execute(ctx context.Context) error {
	return newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

// newRootCmd builds the command tree. Command output goes to stdout and
// logging to stderr.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:           "dashgrid",
		Short:         "dashgrid lays out dashboard widgets on a grid",
		Long:          `dashgrid places, compacts and checks widgets on the fixed-column grid screens of a dashboard file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(stderr, level)

			if configPath == "" {
				configPath = project.DefaultConfigPath()
			}
			cfg, err := project.LoadAppConfig(configPath)
			if err != nil {
				return err
			}
			logger.Debug("loaded config", "path", configPath, "strategy", cfg.DefaultStrategy)

			ctx := withLogger(cmd.Context(), logger)
			ctx = withConfig(ctx, appConfig{AppConfig: cfg, path: configPath})
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate(fmt.Sprintf("dashgrid %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.dashgrid/config.toml)")

	root.AddCommand(newInitCmd())
	root.AddCommand(newPlaceCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newTidyCmd())
	root.AddCommand(newCompareCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newScreensCmd())
	root.AddCommand(newBackupCmd())
	root.AddCommand(newRestoreCmd())

	return root
}
