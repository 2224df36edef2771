package engine

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/piwi3910/dashgrid/internal/model"
	"github.com/stretchr/testify/assert"
)

func item(id string, x, y, w, h int) model.GridItem {
	return model.GridItem{ID: id, Type: "entity", X: x, Y: y, Width: w, Height: h, Placed: true}
}

func size(w, h int) model.Size {
	return model.Size{Width: w, Height: h}
}

// randomItems builds n items of random size no wider than columns, with
// deterministic output for a given seed.
func randomItems(seed int64, n, columns, maxH int) []model.GridItem {
	rng := rand.New(rand.NewSource(seed))
	items := make([]model.GridItem, n)
	for i := range items {
		items[i] = item("w"+strconv.Itoa(i), rng.Intn(columns), rng.Intn(20),
			1+rng.Intn(columns), 1+rng.Intn(maxH))
	}
	return items
}

// assertNoOverlap checks that no two of the given items share a cell.
func assertNoOverlap(t *testing.T, items []model.GridItem) {
	t.Helper()
	for i, a := range items {
		for _, b := range items[i+1:] {
			assert.False(t, a.Intersects(b), "%v overlaps %v", a, b)
		}
	}
}

// placedOnly filters a pack result down to items that were actually placed.
func placedOnly(r model.PackResult) []model.GridItem {
	var out []model.GridItem
	for _, p := range r.Placements {
		if p.Outcome == model.OutcomePlaced {
			out = append(out, p.Item)
		}
	}
	return out
}
