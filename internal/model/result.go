package model

// Outcome records why an item ended up where it is after compaction.
type Outcome int

const (
	OutcomePlaced       Outcome = iota // Moved into a free slot inside the grid
	OutcomeKeptOriginal                // No slot fitted; left at its previous position
)

func (o Outcome) String() string {
	switch o {
	case OutcomeKeptOriginal:
		return "kept"
	default:
		return "placed"
	}
}

// Placement is a single item after compaction together with its outcome.
type Placement struct {
	Item    GridItem `json:"item"`
	Outcome Outcome  `json:"outcome"`
}

// PackResult holds the full compaction of one item list. Placements are in
// the same order as the input items.
type PackResult struct {
	Strategy   Strategy    `json:"strategy"`
	Placements []Placement `json:"placements"`
}

// Items returns the repositioned items in input order.
func (r PackResult) Items() []GridItem {
	items := make([]GridItem, len(r.Placements))
	for i, p := range r.Placements {
		items[i] = p.Item
	}
	return items
}

// Kept returns the items that could not be placed inside the grid.
func (r PackResult) Kept() []GridItem {
	var kept []GridItem
	for _, p := range r.Placements {
		if p.Outcome == OutcomeKeptOriginal {
			kept = append(kept, p.Item)
		}
	}
	return kept
}

// Moved counts the placements whose coordinates differ from original.
// original must be the slice that was packed.
func (r PackResult) Moved(original []GridItem) int {
	n := 0
	for i, p := range r.Placements {
		if i >= len(original) {
			break
		}
		if p.Item.X != original[i].X || p.Item.Y != original[i].Y {
			n++
		}
	}
	return n
}

// Height returns the number of rows spanned by the placed items.
func (r PackResult) Height() int {
	h := 0
	for _, p := range r.Placements {
		if p.Outcome == OutcomePlaced {
			h = max(h, p.Item.Bottom())
		}
	}
	return h
}

// CollisionKind classifies a layout defect.
type CollisionKind string

const (
	CollisionOverlap     CollisionKind = "overlap"
	CollisionOutOfBounds CollisionKind = "out_of_bounds"
)

// Collision is a layout defect found by the checker. OtherID is empty for
// out-of-bounds reports.
type Collision struct {
	Kind    CollisionKind `json:"kind"`
	ItemID  string        `json:"item_id"`
	OtherID string        `json:"other_id,omitempty"`
}
