// Package world provides dungeon generation and map management. Generation is
// a strict single-threaded pipeline over one shared grid: partition rooms,
// route corridors, place doors, build the accessibility graph, place entities
// and keys, then pick the player start and stairs.
package world

import "github.com/armysarge/dungeongen/internal/entity"

// TileType tags what a tile is. The payload fields on Tile are only
// meaningful for the matching tag.
type TileType int

const (
	// TileWall is impassable rock. The border margin is always wall.
	TileWall TileType = iota
	// TileFloor is open ground inside a room or corridor.
	TileFloor
	// TileDoor is a carved corridor tile holding a door.
	TileDoor
	// TileStairs is the level exit.
	TileStairs
)

// String returns the tile type name.
func (t TileType) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileDoor:
		return "door"
	case TileStairs:
		return "stairs"
	default:
		return "unknown"
	}
}

// Decoration marks cosmetic corridor features added by the variety pass.
type Decoration int

const (
	DecorNone Decoration = iota
	// DecorPillar is an impassable column; only placed inside carved rest
	// areas so it never blocks the corridor line itself.
	DecorPillar
	DecorDebris
	DecorTrap
)

// Tile is a single grid cell: a type tag plus tag-specific payload.
type Tile struct {
	Type       TileType
	Door       *Door            // Type == TileDoor
	Item       *entity.Item     // key resting on a floor tile
	Chest      *entity.Chest    // chest standing on a floor tile
	Creature   *entity.Creature // creature standing on a floor tile
	Decoration Decoration       // floor tiles only
}

// IsCarved returns true for any non-wall tile, ignoring lock state. The
// structural connectivity guarantee is defined over carved tiles.
func (t Tile) IsCarved() bool {
	return t.Type != TileWall
}

// IsPassable returns true if the tile can be walked on right now. Locked
// doors and pillars are impassable.
func (t Tile) IsPassable() bool {
	switch t.Type {
	case TileFloor:
		return t.Decoration != DecorPillar
	case TileStairs:
		return true
	case TileDoor:
		return t.Door == nil || !t.Door.Locked
	default:
		return false
	}
}

// Rune returns the tile's base display character, before entity overlays.
func (t Tile) Rune() rune {
	switch t.Type {
	case TileWall:
		return '#'
	case TileFloor:
		switch t.Decoration {
		case DecorPillar:
			return 'I'
		case DecorDebris:
			return ','
		case DecorTrap:
			return '^'
		default:
			return '.'
		}
	case TileDoor:
		return '+'
	case TileStairs:
		return '>'
	default:
		return '?'
	}
}

// Facing is a cardinal direction.
type Facing int

const (
	FacingNorth Facing = iota
	FacingSouth
	FacingEast
	FacingWest
)

// Delta returns the unit offset for the direction.
func (f Facing) Delta() (dx, dy int) {
	switch f {
	case FacingNorth:
		return 0, -1
	case FacingSouth:
		return 0, 1
	case FacingEast:
		return 1, 0
	default:
		return -1, 0
	}
}

// String returns the direction name.
func (f Facing) String() string {
	switch f {
	case FacingNorth:
		return "north"
	case FacingSouth:
		return "south"
	case FacingEast:
		return "east"
	default:
		return "west"
	}
}

// Door sits on a corridor tile at a room junction. Created once at placement
// time; the lock state is mutable only via Lock and Unlock.
type Door struct {
	X, Y      int
	Locked    bool
	Trapped   bool
	Facing    Facing // direction from the door tile toward its room
	RoomIndex int    // owning room
	KeyID     string // set when locked, once keys are synthesized
}

// Lock seals the door.
func (d *Door) Lock() { d.Locked = true }

// Unlock opens the door.
func (d *Door) Unlock() { d.Locked = false }

// Point is a grid coordinate.
type Point struct {
	X, Y int
}
