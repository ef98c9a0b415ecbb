package entity

// ItemKind tags what an item is.
type ItemKind int

const (
	// ItemKey unlocks exactly one door or chest, matched by KeyID.
	ItemKey ItemKind = iota
)

// Item is a placeable object. Keys are the only kind generation synthesizes
// itself; positions are -1 while the item is held by a creature or chest.
type Item struct {
	Kind      ItemKind
	Name      string
	KeyID     string // For keys: matches exactly one Door.KeyID or Chest.KeyID
	X, Y      int
	RoomIndex int
}

// NewKey creates an unplaced key item stamped with the given key ID.
func NewKey(keyID string) *Item {
	return &Item{
		Kind:      ItemKey,
		Name:      "Key",
		KeyID:     keyID,
		X:         -1,
		Y:         -1,
		RoomIndex: -1,
	}
}

// PlaceAt records the item's resting position on the grid.
func (i *Item) PlaceAt(x, y, roomIndex int) {
	i.X = x
	i.Y = y
	i.RoomIndex = roomIndex
}

// Glyph returns the item's display symbol.
func (i *Item) Glyph() rune {
	switch i.Kind {
	case ItemKey:
		return '~'
	default:
		return '?'
	}
}
