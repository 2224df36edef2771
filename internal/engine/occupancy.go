package engine

import "github.com/piwi3910/dashgrid/internal/model"

// occupancy is a dense columns x rows bitmap of covered cells. It is built
// from the item list at the start of every operation and never outlives it.
//
// A bounded occupancy treats rows as a hard limit: nothing may be placed at
// or below it. An unbounded one grows downwards as items are marked, and
// every cell below the last allocated row counts as free.
type occupancy struct {
	columns int
	rows    int
	bounded bool
	cells   []bool
}

func newOccupancy(columns, rows int, bounded bool) *occupancy {
	columns = max(columns, 0)
	rows = max(rows, 0)
	return &occupancy{
		columns: columns,
		rows:    rows,
		bounded: bounded,
		cells:   make([]bool, columns*rows),
	}
}

// newOccupancyFrom returns an unbounded occupancy with every item marked.
func newOccupancyFrom(columns int, items []model.GridItem) *occupancy {
	occ := newOccupancy(columns, model.MaxBottom(items), false)
	for _, it := range items {
		occ.occupy(it.X, it.Y, it.Width, it.Height)
	}
	return occ
}

// grow extends an unbounded occupancy so that row y-1 is addressable.
func (o *occupancy) grow(rows int) {
	if rows <= o.rows {
		return
	}
	cells := make([]bool, o.columns*rows)
	copy(cells, o.cells)
	o.cells = cells
	o.rows = rows
}

// occupy marks every cell of [x, x+w) x [y, y+h). Cells outside the grid
// are ignored, and marking a covered cell again is harmless.
func (o *occupancy) occupy(x, y, w, h int) {
	if w < 1 || h < 1 {
		return
	}
	x0, x1 := max(x, 0), min(x+w, o.columns)
	y0, y1 := max(y, 0), y+h
	if o.bounded {
		y1 = min(y1, o.rows)
	} else {
		o.grow(y1)
	}
	for cy := y0; cy < y1; cy++ {
		row := cy * o.columns
		for cx := x0; cx < x1; cx++ {
			o.cells[row+cx] = true
		}
	}
}

// covered reports whether a single cell is marked.
func (o *occupancy) covered(x, y int) bool {
	if x < 0 || x >= o.columns || y < 0 || y >= o.rows {
		return false
	}
	return o.cells[y*o.columns+x]
}

// isFree reports whether the w x h rectangle at (x, y) is inside the column
// bound (and the row bound when bounded) and touches no marked cell.
func (o *occupancy) isFree(x, y, w, h int) bool {
	if w < 1 || h < 1 || x < 0 || y < 0 || x+w > o.columns {
		return false
	}
	if o.bounded && y+h > o.rows {
		return false
	}
	for cy := y; cy < min(y+h, o.rows); cy++ {
		row := cy * o.columns
		for cx := x; cx < x+w; cx++ {
			if o.cells[row+cx] {
				return false
			}
		}
	}
	return true
}

// emptyBelow counts unmarked cells in rows [0, height).
func (o *occupancy) emptyBelow(height int) int {
	n := 0
	for y := 0; y < height; y++ {
		for x := 0; x < o.columns; x++ {
			if !o.covered(x, y) {
				n++
			}
		}
	}
	return n
}
