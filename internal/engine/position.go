package engine

import (
	"strconv"

	"github.com/piwi3910/dashgrid/internal/model"
)

// FindOptimalPosition returns the topmost, then leftmost, cell at which a
// width x height item fits without overlapping any existing item and without
// crossing the column bound. The row bound of res is not enforced: the
// result may lie below res.Rows when the screen is full.
//
// Existing items are assumed not to overlap each other. Callers must pass a
// positive size no wider than res.Columns; otherwise no slot exists and the
// fallback position (0, maxY) is returned. The working bitmap spans every
// row down to maxY, so item coordinates are expected to stay within
// model.MaxExtent; dashboard loading and import enforce that.
func FindOptimalPosition(existing []model.GridItem, width, height int, res model.Resolution) model.Position {
	maxY := model.MaxBottom(existing)
	if width < 1 || height < 1 || width > res.Columns {
		return model.Position{X: 0, Y: maxY}
	}

	occ := newOccupancyFrom(res.Columns, existing)
	// Row maxY+1 is always empty, so the scan terminates there at the latest.
	for y := 0; y <= maxY+1; y++ {
		for x := 0; x <= res.Columns-width; x++ {
			if occ.isFree(x, y, width, height) {
				return model.Position{X: x, Y: y}
			}
		}
	}
	return model.Position{X: 0, Y: maxY}
}

// FindOptimalPositionsForBatch places sizes one after another, in input
// order, each against the existing items plus every previously placed batch
// member. The returned positions correspond index for index to sizes.
//
// This is first fit per item; no reordering is attempted across the batch.
func FindOptimalPositionsForBatch(existing []model.GridItem, sizes []model.Size, res model.Resolution) []model.Position {
	if len(sizes) == 0 {
		return []model.Position{}
	}

	working := make([]model.GridItem, len(existing), len(existing)+len(sizes))
	copy(working, existing)

	positions := make([]model.Position, len(sizes))
	for i, sz := range sizes {
		pos := FindOptimalPosition(working, sz.Width, sz.Height, res)
		positions[i] = pos
		working = append(working, model.GridItem{
			ID:     "batch-" + strconv.Itoa(i),
			X:      pos.X,
			Y:      pos.Y,
			Width:  sz.Width,
			Height: sz.Height,
			Placed: true,
		})
	}
	return positions
}

// PlaceItems adds items to the screen. Items that are not yet placed get
// positions from FindOptimalPositionsForBatch against the screen's placed
// items, in the order given; items that already carry coordinates are
// appended as they are. The input screen is not modified.
func PlaceItems(screen model.Screen, items ...model.GridItem) model.Screen {
	existing := screen.PlacedItems()

	var sizes []model.Size
	var pending []int
	for i, it := range items {
		if !it.Placed {
			sizes = append(sizes, it.Size())
			pending = append(pending, i)
		} else {
			existing = append(existing, it)
		}
	}

	positions := FindOptimalPositionsForBatch(existing, sizes, screen.Resolution)

	placed := make([]model.GridItem, len(items))
	copy(placed, items)
	for k, idx := range pending {
		placed[idx] = placed[idx].At(positions[k])
	}

	out := screen
	out.Items = make([]model.GridItem, 0, len(screen.Items)+len(items))
	out.Items = append(out.Items, screen.Items...)
	out.Items = append(out.Items, placed...)
	return out
}
