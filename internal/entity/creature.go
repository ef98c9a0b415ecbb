// Package entity provides the entities placed into a generated dungeon:
// creatures, chests, and items. Entities carry their grid position and owning
// room index; the dungeon aggregate owns every instance and rebuilds them all
// whenever generation reruns.
package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/armysarge/dungeongen/internal/gamedata"
)

// Creature represents a hostile creature in the dungeon.
type Creature struct {
	Def       *gamedata.CreatureDef // Definition this creature was spawned from
	Name      string                // Display name (e.g., "Goblin")
	Glyph     rune                  // Display symbol
	X, Y      int                   // Position in the dungeon
	RoomIndex int                   // Index of the room this creature is in (-1 for corridors)
	HP        int                   // Current hit points
	MaxHP     int                   // Maximum hit points
	Inventory []*Item               // Carried items (key placement may add to this)
}

// NewCreature creates a creature from a definition at the specified position.
func NewCreature(def *gamedata.CreatureDef, x, y, roomIndex int) *Creature {
	return &Creature{
		Def:       def,
		Name:      def.Name,
		Glyph:     def.GlyphRune(),
		X:         x,
		Y:         y,
		RoomIndex: roomIndex,
		HP:        def.HP,
		MaxHP:     def.HP,
	}
}

// Position returns the creature's current x, y coordinates.
func (c *Creature) Position() (int, int) {
	return c.X, c.Y
}

// Color returns the tcell color for this creature.
func (c *Creature) Color() tcell.Color {
	if c.Def != nil {
		return c.Def.TCellColor()
	}
	return tcell.ColorWhite
}

// GiveItem adds an item to the creature's inventory.
func (c *Creature) GiveItem(item *Item) {
	c.Inventory = append(c.Inventory, item)
}

// HasKey returns true if the creature is carrying a key.
func (c *Creature) HasKey() bool {
	for _, item := range c.Inventory {
		if item.Kind == ItemKey {
			return true
		}
	}
	return false
}

// ID returns the creature's type identifier.
func (c *Creature) ID() string {
	if c.Def != nil {
		return c.Def.ID
	}
	return c.Name
}
