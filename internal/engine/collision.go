package engine

import (
	"fmt"

	"github.com/piwi3910/dashgrid/internal/model"
)

// CheckCollisions analyzes a screen's items and reports every pair of
// overlapping items and every item that crosses the column bound or has a
// negative coordinate. Unplaced items are skipped. Each unordered pair is
// reported at most once, with ItemID being the earlier of the two.
func CheckCollisions(items []model.GridItem, res model.Resolution) []model.Collision {
	var collisions []model.Collision

	for i, a := range items {
		if !a.Placed {
			continue
		}
		if !a.Fits(res) {
			collisions = append(collisions, model.Collision{
				Kind:   model.CollisionOutOfBounds,
				ItemID: a.ID,
			})
		}
		for _, b := range items[i+1:] {
			if b.Placed && a.Intersects(b) {
				collisions = append(collisions, model.Collision{
					Kind:    model.CollisionOverlap,
					ItemID:  a.ID,
					OtherID: b.ID,
				})
			}
		}
	}

	return deduplicateCollisions(collisions)
}

// deduplicateCollisions keeps at most one collision per (kind, item, other)
// triple. Duplicate ids in the input would otherwise repeat reports.
func deduplicateCollisions(collisions []model.Collision) []model.Collision {
	type key struct {
		kind        model.CollisionKind
		item, other string
	}
	seen := make(map[key]bool)
	var result []model.Collision

	for _, c := range collisions {
		a, b := c.ItemID, c.OtherID
		if b != "" && b < a {
			a, b = b, a
		}
		k := key{c.Kind, a, b}
		if !seen[k] {
			seen[k] = true
			result = append(result, c)
		}
	}
	return result
}

// FormatCollisionWarnings produces human-readable warning messages from collision data.
func FormatCollisionWarnings(screen string, collisions []model.Collision) []string {
	var warnings []string
	for _, c := range collisions {
		var msg string
		switch c.Kind {
		case model.CollisionOverlap:
			msg = fmt.Sprintf("Screen %q: widget %q overlaps widget %q", screen, c.ItemID, c.OtherID)
		default:
			msg = fmt.Sprintf("Screen %q: widget %q lies outside the grid", screen, c.ItemID)
		}
		warnings = append(warnings, msg)
	}
	return warnings
}
