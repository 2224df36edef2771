package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Screen is one page of the dashboard with its own grid.
type Screen struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Resolution Resolution `json:"resolution" yaml:"resolution"`
	Items      []GridItem `json:"items" yaml:"items"`
}

func NewScreen(name string, res Resolution) Screen {
	return Screen{
		ID:         uuid.New().String()[:8],
		Name:       name,
		Resolution: res,
		Items:      []GridItem{},
	}
}

// PlacedItems returns the items that already have coordinates.
func (s Screen) PlacedItems() []GridItem {
	placed := make([]GridItem, 0, len(s.Items))
	for _, it := range s.Items {
		if it.Placed {
			placed = append(placed, it)
		}
	}
	return placed
}

// Validate checks the grid and every item against MaxExtent.
func (s Screen) Validate() error {
	if s.Resolution.Columns > MaxExtent || s.Resolution.Rows > MaxExtent {
		return fmt.Errorf("%w: screen %q grid %s exceeds %d cells", ErrOutOfRange, s.Name, s.Resolution, MaxExtent)
	}
	for _, it := range s.Items {
		if err := it.CheckExtent(); err != nil {
			return fmt.Errorf("screen %q: %w", s.Name, err)
		}
	}
	return nil
}

// Item looks an item up by id.
func (s Screen) Item(id string) (GridItem, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return GridItem{}, false
}

// Dashboard ties the screens together for save/load.
type Dashboard struct {
	Name    string   `json:"name" yaml:"name"`
	Screens []Screen `json:"screens" yaml:"screens"`
}

// NewDashboard creates a dashboard with a single empty screen.
func NewDashboard(name string, res Resolution) Dashboard {
	return Dashboard{
		Name:    name,
		Screens: []Screen{NewScreen("Home", res)},
	}
}

// ScreenIndex finds a screen by id or, failing that, by name.
func (d Dashboard) ScreenIndex(ref string) (int, error) {
	for i, s := range d.Screens {
		if s.ID == ref {
			return i, nil
		}
	}
	for i, s := range d.Screens {
		if s.Name == ref {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrScreenNotFound, ref)
}

// Screen returns the screen identified by ref (id or name).
func (d Dashboard) Screen(ref string) (Screen, error) {
	i, err := d.ScreenIndex(ref)
	if err != nil {
		return Screen{}, err
	}
	return d.Screens[i], nil
}

// ItemCount returns the total number of widgets across all screens.
func (d Dashboard) ItemCount() int {
	n := 0
	for _, s := range d.Screens {
		n += len(s.Items)
	}
	return n
}
