// Package export renders screen layouts to PDF and PNG, and encodes them as
// share QR codes.
package export

import (
	"image/color"
	"sort"

	"github.com/maruel/natural"

	"github.com/piwi3910/dashgrid/internal/model"
)

// itemColor represents an RGB color for a widget.
type itemColor struct {
	R, G, B int
}

func (c itemColor) NRGBA() color.NRGBA {
	return color.NRGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 255}
}

var itemColors = []itemColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// legendOrder returns the placed items of a screen sorted by id in natural
// order ("w2" before "w10"). Colors are assigned by position in this order
// so that the PDF and PNG renderings agree.
func legendOrder(items []model.GridItem) []model.GridItem {
	out := make([]model.GridItem, 0, len(items))
	for _, it := range items {
		if it.Placed {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return natural.Less(out[i].ID, out[j].ID)
	})
	return out
}

func colorAt(i int) itemColor {
	return itemColors[i%len(itemColors)]
}

// displayRows is the number of rows a rendering shows: the screen's rows or
// more when placed items extend below them.
func displayRows(screen model.Screen) int {
	return max(screen.Resolution.Rows, model.MaxBottom(screen.PlacedItems()), 1)
}

// itemLabel is the text drawn inside a widget.
func itemLabel(it model.GridItem) string {
	if it.Title != "" {
		return it.Title
	}
	return it.Type
}
