package engine

import (
	"github.com/piwi3910/dashgrid/internal/model"
)

// ComparisonResult holds the compaction result and computed statistics
// for a single strategy.
type ComparisonResult struct {
	Strategy   model.Strategy
	Result     model.PackResult
	RowsUsed   int // rows spanned by placed items
	EmptyCells int // uncovered cells above RowsUsed
	KeptCount  int // items left at their previous position
	MovedCount int // items whose coordinates changed
}

// Density returns the share of cells covered within the used rows, in percent.
func (c ComparisonResult) Density(columns int) float64 {
	total := c.RowsUsed * columns
	if total == 0 {
		return 0
	}
	return float64(total-c.EmptyCells) / float64(total) * 100.0
}

// CompareStrategies packs items with every known strategy and returns the
// results in model.Strategies order. This allows side-by-side comparison
// before a tidy is applied.
func CompareStrategies(items []model.GridItem, res model.Resolution) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(model.Strategies))

	for _, strategy := range model.Strategies {
		result := Pack(strategy, items, res.Columns, res.Rows)

		occ := newOccupancy(res.Columns, res.Rows, true)
		for _, p := range result.Placements {
			if p.Outcome == model.OutcomePlaced {
				occ.occupy(p.Item.X, p.Item.Y, p.Item.Width, p.Item.Height)
			}
		}
		height := result.Height()

		results = append(results, ComparisonResult{
			Strategy:   strategy,
			Result:     result,
			RowsUsed:   height,
			EmptyCells: occ.emptyBelow(height),
			KeptCount:  len(result.Kept()),
			MovedCount: result.Moved(items),
		})
	}

	return results
}

// Best returns the comparison with the fewest kept items, then the fewest
// rows used, then the fewest empty cells. Earlier entries win ties.
func Best(results []ComparisonResult) (ComparisonResult, bool) {
	if len(results) == 0 {
		return ComparisonResult{}, false
	}
	best := results[0]
	for _, r := range results[1:] {
		switch {
		case r.KeptCount != best.KeptCount:
			if r.KeptCount < best.KeptCount {
				best = r
			}
		case r.RowsUsed != best.RowsUsed:
			if r.RowsUsed < best.RowsUsed {
				best = r
			}
		case r.EmptyCells < best.EmptyCells:
			best = r
		}
	}
	return best, true
}
