package entity

// ChestQuality grades a chest's loot tier.
type ChestQuality int

const (
	QualityCommon ChestQuality = iota
	QualityUncommon
	QualityRare
	QualityEpic
	QualityLegendary
)

// String returns a human-readable quality name.
func (q ChestQuality) String() string {
	switch q {
	case QualityCommon:
		return "common"
	case QualityUncommon:
		return "uncommon"
	case QualityRare:
		return "rare"
	case QualityEpic:
		return "epic"
	case QualityLegendary:
		return "legendary"
	default:
		return "unknown"
	}
}

// Chest represents a treasure chest placed in a room.
type Chest struct {
	X, Y      int
	RoomIndex int
	Quality   ChestQuality
	Locked    bool
	KeyID     string  // Set when locked, once keys are synthesized
	Contents  []*Item // Key placement may stash a key inside an unlocked chest
}

// NewChest creates a chest at the specified position.
func NewChest(x, y, roomIndex int, quality ChestQuality, locked bool) *Chest {
	return &Chest{
		X:         x,
		Y:         y,
		RoomIndex: roomIndex,
		Quality:   quality,
		Locked:    locked,
	}
}

// AddItem stores an item inside the chest.
func (c *Chest) AddItem(item *Item) {
	c.Contents = append(c.Contents, item)
}

// HasKey returns true if the chest contains a key.
func (c *Chest) HasKey() bool {
	for _, item := range c.Contents {
		if item.Kind == ItemKey {
			return true
		}
	}
	return false
}

// Unlock clears the locked flag. Doors and chests are only ever mutated
// through explicit lock state changes.
func (c *Chest) Unlock() {
	c.Locked = false
}
