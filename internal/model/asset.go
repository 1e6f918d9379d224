package model

// Slot identifies one of the two comparison positions.
type Slot string

const (
	SlotA Slot = "a"
	SlotB Slot = "b"
)

// Valid reports whether s is one of the two known slots.
func (s Slot) Valid() bool {
	return s == SlotA || s == SlotB
}

// SearchCandidate is one ranked result from the search provider.
// Candidates are ephemeral: they are discarded on selection or on the
// next query for the same slot.
type SearchCandidate struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Icon   string `json:"icon"`
	Rank   int    `json:"rank"`
}

// Selection is the coin currently held by a slot.
type Selection struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// SelectionOf converts a picked candidate into a slot selection.
func SelectionOf(c SearchCandidate) Selection {
	return Selection{ID: c.ID, Name: c.Name, Icon: c.Icon}
}
