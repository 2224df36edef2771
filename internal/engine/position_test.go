package engine

import (
	"testing"

	"github.com/piwi3910/dashgrid/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindOptimalPosition_EmptyGrid(t *testing.T) {
	pos := FindOptimalPosition(nil, 2, 2, model.Resolution{Columns: 4, Rows: 4})
	assert.Equal(t, model.Position{X: 0, Y: 0}, pos)
}

func TestFindOptimalPosition_StacksBelowFullRow(t *testing.T) {
	existing := []model.GridItem{item("a", 0, 0, 4, 2)}

	pos := FindOptimalPosition(existing, 4, 2, model.Resolution{Columns: 4, Rows: 4})

	assert.Equal(t, model.Position{X: 0, Y: 2}, pos)
}

func TestFindOptimalPosition_FillsGapBeforeGrowing(t *testing.T) {
	existing := []model.GridItem{
		item("a", 0, 0, 2, 2),
		item("b", 2, 2, 2, 2),
	}

	pos := FindOptimalPosition(existing, 2, 2, model.Resolution{Columns: 4, Rows: 4})

	assert.Equal(t, model.Position{X: 2, Y: 0}, pos, "top-right gap should be used")
}

func TestFindOptimalPosition_LowerRowWinsOverLowerColumn(t *testing.T) {
	// Column 0 is blocked at row 0, column 3 is free: row 0 must win.
	existing := []model.GridItem{item("a", 0, 0, 3, 3)}

	pos := FindOptimalPosition(existing, 1, 1, model.Resolution{Columns: 4, Rows: 4})

	assert.Equal(t, model.Position{X: 3, Y: 0}, pos)
}

func TestFindOptimalPosition_ExceedsAdvisoryRows(t *testing.T) {
	existing := []model.GridItem{item("full", 0, 0, 4, 4)}

	pos := FindOptimalPosition(existing, 1, 1, model.Resolution{Columns: 4, Rows: 4})

	assert.Equal(t, model.Position{X: 0, Y: 4}, pos, "rows are advisory for new items")
}

func TestFindOptimalPosition_TallItemSkipsShortGap(t *testing.T) {
	existing := []model.GridItem{
		item("a", 0, 0, 2, 1),
		item("b", 0, 2, 4, 1),
		item("c", 2, 0, 2, 1),
	}

	// Row 1 is free but only one row tall; a 2-high item must go below b.
	pos := FindOptimalPosition(existing, 2, 2, model.Resolution{Columns: 4, Rows: 4})

	assert.Equal(t, model.Position{X: 0, Y: 3}, pos)
}

func TestFindOptimalPosition_TooWideFallsBack(t *testing.T) {
	existing := []model.GridItem{item("a", 0, 0, 2, 3)}

	pos := FindOptimalPosition(existing, 5, 1, model.Resolution{Columns: 4, Rows: 4})

	assert.Equal(t, model.Position{X: 0, Y: 3}, pos)
}

func TestFindOptimalPosition_NonPositiveSizeDoesNotHang(t *testing.T) {
	existing := []model.GridItem{item("a", 0, 0, 2, 2)}

	assert.Equal(t, model.Position{X: 0, Y: 2}, FindOptimalPosition(existing, 0, 1, model.Resolution{Columns: 4, Rows: 4}))
	assert.Equal(t, model.Position{X: 0, Y: 2}, FindOptimalPosition(existing, 1, -3, model.Resolution{Columns: 4, Rows: 4}))
}

func TestFindOptimalPosition_NeverOverlaps(t *testing.T) {
	res := model.Resolution{Columns: 6, Rows: 6}
	var placed []model.GridItem

	for _, it := range randomItems(7, 60, res.Columns, 3) {
		pos := FindOptimalPosition(placed, it.Width, it.Height, res)
		moved := it.At(pos)
		require.LessOrEqual(t, moved.Right(), res.Columns)
		for _, other := range placed {
			require.False(t, moved.Intersects(other), "%v overlaps %v", moved, other)
		}
		placed = append(placed, moved)
	}
}

func TestFindOptimalPosition_DoesNotMutateInput(t *testing.T) {
	existing := []model.GridItem{item("a", 0, 0, 2, 2), item("b", 2, 0, 2, 1)}
	snapshot := append([]model.GridItem(nil), existing...)

	first := FindOptimalPosition(existing, 2, 1, model.Resolution{Columns: 4, Rows: 4})
	second := FindOptimalPosition(existing, 2, 1, model.Resolution{Columns: 4, Rows: 4})

	assert.Equal(t, snapshot, existing)
	assert.Equal(t, first, second)
}

func TestFindOptimalPositionsForBatch_FillsRowFirst(t *testing.T) {
	positions := FindOptimalPositionsForBatch(nil,
		[]model.Size{size(2, 2), size(2, 2), size(2, 2)},
		model.Resolution{Columns: 4, Rows: 4})

	assert.Equal(t, []model.Position{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 2}}, positions)
}

func TestFindOptimalPositionsForBatch_Empty(t *testing.T) {
	positions := FindOptimalPositionsForBatch([]model.GridItem{item("a", 0, 0, 1, 1)}, nil, model.Resolution{Columns: 4, Rows: 4})

	assert.NotNil(t, positions)
	assert.Empty(t, positions)
}

func TestFindOptimalPositionsForBatch_RespectsExisting(t *testing.T) {
	existing := []model.GridItem{item("a", 0, 0, 3, 1)}

	positions := FindOptimalPositionsForBatch(existing,
		[]model.Size{size(1, 1), size(2, 1), size(1, 2)},
		model.Resolution{Columns: 4, Rows: 4})

	require.Len(t, positions, 3)
	assert.Equal(t, model.Position{X: 3, Y: 0}, positions[0])
	assert.Equal(t, model.Position{X: 0, Y: 1}, positions[1])
	assert.Equal(t, model.Position{X: 2, Y: 1}, positions[2])
}

func TestFindOptimalPositionsForBatch_MutuallyDisjoint(t *testing.T) {
	res := model.Resolution{Columns: 8, Rows: 4}
	existing := []model.GridItem{item("a", 1, 0, 3, 2), item("b", 5, 1, 2, 2)}
	sizes := make([]model.Size, 0, 40)
	for _, it := range randomItems(11, 40, res.Columns, 4) {
		sizes = append(sizes, it.Size())
	}

	positions := FindOptimalPositionsForBatch(existing, sizes, res)

	require.Len(t, positions, len(sizes))
	all := append([]model.GridItem(nil), existing...)
	for i, pos := range positions {
		it := model.GridItem{ID: "n", X: pos.X, Y: pos.Y, Width: sizes[i].Width, Height: sizes[i].Height}
		assert.LessOrEqual(t, it.Right(), res.Columns)
		all = append(all, it)
	}
	assertNoOverlap(t, all)
}

func TestFindOptimalPositionsForBatch_Deterministic(t *testing.T) {
	res := model.Resolution{Columns: 5, Rows: 5}
	sizes := []model.Size{size(3, 1), size(2, 2), size(5, 1), size(1, 3)}

	assert.Equal(t,
		FindOptimalPositionsForBatch(nil, sizes, res),
		FindOptimalPositionsForBatch(nil, sizes, res))
}

func TestPlaceItems_PlacesOnlyUnplaced(t *testing.T) {
	screen := model.NewScreen("Home", model.Resolution{Columns: 4, Rows: 4})
	screen.Items = []model.GridItem{item("a", 0, 0, 2, 2)}

	fresh := model.NewGridItem("light", 2, 2)
	pinned := item("pinned", 0, 2, 4, 1)

	out := PlaceItems(screen, fresh, pinned)

	require.Len(t, out.Items, 3)
	assert.Len(t, screen.Items, 1, "input screen must not change")
	assert.Equal(t, screen.Items[0], out.Items[0])

	got, ok := out.Item(fresh.ID)
	require.True(t, ok)
	assert.True(t, got.Placed)
	assert.Equal(t, model.Position{X: 2, Y: 0}, got.Position())

	gotPinned, ok := out.Item("pinned")
	require.True(t, ok)
	assert.Equal(t, pinned, gotPinned)
	assertNoOverlap(t, out.Items)
}

func TestPlaceItems_AvoidsPinnedItemsInSameCall(t *testing.T) {
	screen := model.NewScreen("Home", model.Resolution{Columns: 2, Rows: 4})
	first := model.NewGridItem("sensor", 2, 1)
	pinned := item("pinned", 0, 0, 2, 1)

	out := PlaceItems(screen, first, pinned)

	got, ok := out.Item(first.ID)
	require.True(t, ok)
	assert.Equal(t, model.Position{X: 0, Y: 1}, got.Position())
}
