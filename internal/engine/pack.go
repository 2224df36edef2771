package engine

import (
	"cmp"
	"slices"

	"github.com/piwi3910/dashgrid/internal/model"
)

// PackGridItems recomputes X/Y for every item with the greedy
// largest-area-first packer. The result is in input order; items that do
// not fit inside columns x rows keep their previous position.
func PackGridItems(items []model.GridItem, columns, rows int) []model.GridItem {
	return packGreedy(items, columns, rows).Items()
}

// PackGridItemsCompact recomputes X/Y for every item with the column
// skyline packer. The result is in input order; items that do not fit
// inside columns x rows keep their previous position.
func PackGridItemsCompact(items []model.GridItem, columns, rows int) []model.GridItem {
	return packSkyline(items, columns, rows).Items()
}

// Pack runs the packer selected by strategy and reports the outcome of
// every item. Unknown strategies use the greedy packer.
func Pack(strategy model.Strategy, items []model.GridItem, columns, rows int) model.PackResult {
	if strategy == model.StrategyCompact {
		return packSkyline(items, columns, rows)
	}
	return packGreedy(items, columns, rows)
}

// packOrder returns the indices of items stably sorted by compare.
func packOrder(items []model.GridItem, compare func(a, b model.GridItem) int) []int {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return compare(items[a], items[b])
	})
	return order
}

// byAreaDesc sorts by area, largest first.
func byAreaDesc(a, b model.GridItem) int {
	return cmp.Compare(b.Area(), a.Area())
}

// byHeightThenWidthDesc sorts by height, then width, tallest and widest first.
func byHeightThenWidthDesc(a, b model.GridItem) int {
	if c := cmp.Compare(b.Height, a.Height); c != 0 {
		return c
	}
	return cmp.Compare(b.Width, a.Width)
}

// kept records an item left at its pre-compaction position.
func kept(it model.GridItem) model.Placement {
	return model.Placement{Item: it, Outcome: model.OutcomeKeptOriginal}
}

// placed records an item moved to (x, y).
func placed(it model.GridItem, x, y int) model.Placement {
	return model.Placement{Item: it.At(model.Position{X: x, Y: y}), Outcome: model.OutcomePlaced}
}

// packGreedy places items in descending area order, each at the first free
// rectangle of a row-major scan over a bounded columns x rows bitmap.
func packGreedy(items []model.GridItem, columns, rows int) model.PackResult {
	result := model.PackResult{Strategy: model.StrategyGreedy, Placements: []model.Placement{}}
	if len(items) == 0 {
		return result
	}

	result.Placements = make([]model.Placement, len(items))
	occ := newOccupancy(columns, rows, true)

	for _, idx := range packOrder(items, byAreaDesc) {
		it := items[idx]
		result.Placements[idx] = kept(it)
		if !it.Size().Valid() {
			continue
		}
	scan:
		for y := 0; y <= rows-it.Height; y++ {
			for x := 0; x <= columns-it.Width; x++ {
				if occ.isFree(x, y, it.Width, it.Height) {
					occ.occupy(x, y, it.Width, it.Height)
					result.Placements[idx] = placed(it, x, y)
					break scan
				}
			}
		}
	}
	return result
}

// packSkyline places items tallest first. A heights array tracks the lowest
// free row of every column; each item goes to the left edge whose span has
// the lowest skyline, ties resolved to the leftmost. There is no
// backtracking, so an early placement can strand later items below it.
func packSkyline(items []model.GridItem, columns, rows int) model.PackResult {
	result := model.PackResult{Strategy: model.StrategyCompact, Placements: []model.Placement{}}
	if len(items) == 0 {
		return result
	}

	result.Placements = make([]model.Placement, len(items))
	heights := make([]int, max(columns, 0))

	for _, idx := range packOrder(items, byHeightThenWidthDesc) {
		it := items[idx]
		result.Placements[idx] = kept(it)
		if !it.Size().Valid() || it.Width > columns {
			continue
		}

		bestX, bestY := -1, 0
		for x := 0; x <= columns-it.Width; x++ {
			y := slices.Max(heights[x : x+it.Width])
			if bestX < 0 || y < bestY {
				bestX, bestY = x, y
			}
		}

		if bestY+it.Height > rows {
			continue
		}
		for c := bestX; c < bestX+it.Width; c++ {
			heights[c] = bestY + it.Height
		}
		result.Placements[idx] = placed(it, bestX, bestY)
	}
	return result
}
