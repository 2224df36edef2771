package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/dashgrid/internal/export"
	"github.com/piwi3910/dashgrid/internal/model"
)

const (
	formatPDF = "pdf"
	formatPNG = "png"
	formatQR  = "qr"
)

type exportOpts struct {
	output   string
	format   string
	screen   string
	cellSize int
	noShare  bool
}

// newExportCmd creates the export command. The format is taken from --format
// or, failing that, from the output file extension.
//   - pdf: every screen (or only --screen) with a summary page
//   - png: a preview of one screen
//   - qr: the share QR code of one screen as PNG
func newExportCmd() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Render screens to PDF, PNG or a share QR code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output == "" {
				return fmt.Errorf("--output is required")
			}
			return runExport(cmd.Context(), cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: pdf, png, qr (default: from extension)")
	cmd.Flags().StringVarP(&opts.screen, "screen", "s", "", "screen id or name")
	cmd.Flags().IntVar(&opts.cellSize, "cell-size", 0, "PNG pixels per grid cell (default from config)")
	cmd.Flags().BoolVar(&opts.noShare, "no-share-code", false, "omit the QR share code from PDF pages")

	return cmd
}

func exportFormat(opts exportOpts) (string, error) {
	format := strings.ToLower(opts.format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.output)), ".")
	}
	switch format {
	case formatPDF, formatPNG, formatQR:
		return format, nil
	}
	return "", fmt.Errorf("%w: %q (must be pdf, png or qr)", model.ErrUnknownFormat, format)
}

func runExport(ctx context.Context, cmd *cobra.Command, path string, opts exportOpts) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	format, err := exportFormat(opts)
	if err != nil {
		return err
	}
	d, err := loadDashboard(ctx, path)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	switch format {
	case formatPDF:
		if opts.screen != "" {
			screen, err := d.Screen(opts.screen)
			if err != nil {
				return err
			}
			d.Screens = []model.Screen{screen}
		}
		err = export.ExportPDF(opts.output, d, export.PDFOptions{ShareCode: cfg.ShareCode && !opts.noShare})
	case formatPNG, formatQR:
		idx, ierr := screenIndex(d, opts.screen)
		if ierr != nil {
			return ierr
		}
		if format == formatPNG {
			cellSize := opts.cellSize
			if cellSize <= 0 {
				cellSize = cfg.PNGCellSize
			}
			err = export.ExportPNG(opts.output, d.Screens[idx], cellSize)
		} else {
			err = export.ExportShareCode(opts.output, d.Screens[idx], 512)
		}
	}
	if err != nil {
		return err
	}
	prog.done("Rendered " + format)

	printSuccess(cmd.OutOrStdout(), "Exported %s", strings.ToUpper(format))
	printFile(cmd.OutOrStdout(), opts.output)
	return nil
}
