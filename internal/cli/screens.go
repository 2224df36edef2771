package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/maruel/natural"
	"github.com/spf13/cobra"

	"github.com/piwi3910/dashgrid/internal/model"
)

// newScreensCmd creates the screens command which lists every screen and,
// with --widgets, its widgets in natural id order.
func newScreensCmd() *cobra.Command {
	var widgets bool

	cmd := &cobra.Command{
		Use:   "screens [file]",
		Short: "List screens and widgets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreens(cmd.Context(), cmd, args[0], widgets)
		},
	}

	cmd.Flags().BoolVarP(&widgets, "widgets", "w", false, "list the widgets of each screen")

	return cmd
}

func runScreens(ctx context.Context, cmd *cobra.Command, path string, widgets bool) error {
	out := cmd.OutOrStdout()

	d, err := loadDashboard(ctx, path)
	if err != nil {
		return err
	}

	printTitle(out, d.Name)
	rows := make([][]string, 0, len(d.Screens))
	for _, s := range d.Screens {
		rows = append(rows, []string{
			s.ID, s.Name, s.Resolution.String(),
			fmt.Sprintf("%d", len(s.Items)),
			fmt.Sprintf("%d", model.MaxBottom(s.PlacedItems())),
		})
	}
	printTable(out, []string{"ID", "Screen", "Grid", "Widgets", "Rows Used"}, rows)

	if !widgets {
		return nil
	}
	for _, s := range d.Screens {
		printTitle(out, s.Name)
		printTable(out, []string{"ID", "Type", "Title", "Size", "Position"}, widgetRows(s.Items))
	}
	return nil
}

func widgetRows(items []model.GridItem) [][]string {
	ids := make([]string, 0, len(items))
	byID := make(map[string][]model.GridItem, len(items))
	for _, it := range items {
		if _, ok := byID[it.ID]; !ok {
			ids = append(ids, it.ID)
		}
		byID[it.ID] = append(byID[it.ID], it)
	}
	sort.Sort(natural.StringSlice(ids))

	rows := make([][]string, 0, len(items))
	for _, id := range ids {
		for _, it := range byID[id] {
			pos := "-"
			if it.Placed {
				pos = it.Position().String()
			}
			rows = append(rows, []string{it.ID, it.Type, it.Title, it.Size().String(), pos})
		}
	}
	return rows
}
