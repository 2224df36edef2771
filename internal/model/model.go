package model

import (
	"fmt"
	"image"

	"github.com/google/uuid"
)

// Position is the zero-based top-left cell of an item.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Size is the footprint of an item in grid cells.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Area returns Width * Height.
func (s Size) Area() int {
	return s.Width * s.Height
}

// Valid reports whether both dimensions are at least one cell.
func (s Size) Valid() bool {
	return s.Width >= 1 && s.Height >= 1
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Resolution is the grid a screen is laid out on. Columns is a hard bound;
// Rows is advisory for placement of new items (screens scroll) and a hard
// bound for compaction.
type Resolution struct {
	Columns int `json:"columns" yaml:"columns"`
	Rows    int `json:"rows" yaml:"rows"`
}

// DefaultResolution matches the stock 12x8 dashboard screen.
func DefaultResolution() Resolution {
	return Resolution{Columns: 12, Rows: 8}
}

// Valid reports whether the resolution has at least one column and one row.
func (r Resolution) Valid() bool {
	return r.Columns >= 1 && r.Rows >= 1
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Columns, r.Rows)
}

// GridItem is a widget placed on a screen grid.
//
// The position of an item is X, Y and the Placed flag that marks them as
// assigned; it is the only thing the layout engine ever rewrites. Placing an
// item therefore also sets Placed. Type, Title, Entity and Options are
// payload owned by the dashboard and are carried through every
// repositioning untouched.
type GridItem struct {
	ID      string            `json:"id" yaml:"id"`
	Type    string            `json:"type" yaml:"type"`
	Title   string            `json:"title,omitempty" yaml:"title,omitempty"`
	Entity  string            `json:"entity,omitempty" yaml:"entity,omitempty"`
	X       int               `json:"x" yaml:"x"`
	Y       int               `json:"y" yaml:"y"`
	Width   int               `json:"width" yaml:"width"`
	Height  int               `json:"height" yaml:"height"`
	Placed  bool              `json:"placed" yaml:"placed"` // false until X/Y have been assigned
	Options map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
}

// NewGridItem creates an unplaced item with a fresh id.
func NewGridItem(itemType string, w, h int) GridItem {
	return GridItem{
		ID:     uuid.New().String()[:8],
		Type:   itemType,
		Width:  w,
		Height: h,
	}
}

// Size returns the item's footprint.
func (g GridItem) Size() Size {
	return Size{Width: g.Width, Height: g.Height}
}

// Position returns the item's top-left cell.
func (g GridItem) Position() Position {
	return Position{X: g.X, Y: g.Y}
}

// At returns a copy of the item moved to pos and marked placed. The payload
// is shared with the receiver; callers that mutate Options must clone it
// first.
func (g GridItem) At(pos Position) GridItem {
	g.X = pos.X
	g.Y = pos.Y
	g.Placed = true
	return g
}

// Area returns the number of cells the item covers.
func (g GridItem) Area() int {
	return g.Width * g.Height
}

// Right returns the first column past the item.
func (g GridItem) Right() int {
	return g.X + g.Width
}

// Bottom returns the first row past the item.
func (g GridItem) Bottom() int {
	return g.Y + g.Height
}

// Rect returns the cells covered by the item as a rectangle in grid units.
func (g GridItem) Rect() image.Rectangle {
	return image.Rect(g.X, g.Y, g.Right(), g.Bottom())
}

// Intersects reports whether the two items share at least one cell.
// Touching edges do not count.
func (g GridItem) Intersects(other GridItem) bool {
	return g.X < other.Right() && other.X < g.Right() &&
		g.Y < other.Bottom() && other.Y < g.Bottom()
}

// Fits reports whether the item lies inside the horizontal bound of res.
// Rows are not checked.
func (g GridItem) Fits(res Resolution) bool {
	return g.X >= 0 && g.Y >= 0 && g.Right() <= res.Columns
}

func (g GridItem) String() string {
	return fmt.Sprintf("%s[%s %dx%d @ %d,%d]", g.ID, g.Type, g.Width, g.Height, g.X, g.Y)
}

// MaxExtent bounds the grid size and every item coordinate and span that a
// dashboard may hold. The position finder allocates a bitmap over all used
// rows, so larger values are rejected where dashboards enter the program.
const MaxExtent = 1000

// CheckExtent returns an error wrapping ErrOutOfRange when the item reaches
// beyond MaxExtent in either direction.
func (g GridItem) CheckExtent() error {
	if g.Width > MaxExtent || g.Height > MaxExtent || g.X > MaxExtent || g.Y > MaxExtent ||
		g.Right() > MaxExtent || g.Bottom() > MaxExtent {
		return fmt.Errorf("%w: widget %q %s at %s reaches beyond %d cells",
			ErrOutOfRange, g.ID, g.Size(), g.Position(), MaxExtent)
	}
	return nil
}

// MaxBottom returns the lowest occupied row boundary over items, or 0 for
// an empty list.
func MaxBottom(items []GridItem) int {
	maxY := 0
	for _, it := range items {
		maxY = max(maxY, it.Bottom())
	}
	return maxY
}

// Strategy selects the compaction packer.
type Strategy string

const (
	StrategyGreedy  Strategy = "greedy"  // Largest area first, row-major scan
	StrategyCompact Strategy = "compact" // Column skyline, tallest first
)

// Strategies lists every known strategy in display order.
var Strategies = []Strategy{StrategyGreedy, StrategyCompact}

// ParseStrategy resolves a strategy name. The empty string selects greedy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyGreedy:
		return StrategyGreedy, nil
	case StrategyCompact:
		return StrategyCompact, nil
	}
	return "", fmt.Errorf("%w: %q (must be 'greedy' or 'compact')", ErrUnknownStrategy, s)
}

// LayoutSettings configures the layout optimizer.
type LayoutSettings struct {
	Strategy      Strategy `json:"strategy" toml:"strategy"`
	DefaultWidth  int      `json:"default_width" toml:"default_width"`   // Width of a widget added without a size
	DefaultHeight int      `json:"default_height" toml:"default_height"` // Height of a widget added without a size
}

func DefaultLayoutSettings() LayoutSettings {
	return LayoutSettings{
		Strategy:      StrategyGreedy,
		DefaultWidth:  2,
		DefaultHeight: 2,
	}
}
