package world

// Border margin: the outer ring of tiles kept as impassable wall and excluded
// from all placement logic.
const borderSize = 2

var cardinals = [4]Point{
	{0, -1}, // north
	{0, 1},  // south
	{1, 0},  // east
	{-1, 0}, // west
}

// facingFor maps a cardinal index (into cardinals) to the Facing pointing
// along that offset.
var facingFor = [4]Facing{FacingNorth, FacingSouth, FacingEast, FacingWest}

// InBounds returns true if the position is inside the grid.
func (d *Dungeon) InBounds(x, y int) bool {
	return x >= 0 && x < d.Width && y >= 0 && y < d.Height
}

// inPlacementArea returns true if the position is inside the border margin,
// i.e. eligible for carving and placement.
func (d *Dungeon) inPlacementArea(x, y int) bool {
	return x >= borderSize && x < d.Width-borderSize &&
		y >= borderSize && y < d.Height-borderSize
}

// GetTile returns the tile at the given position. Out-of-range positions
// read as wall.
func (d *Dungeon) GetTile(x, y int) Tile {
	if !d.InBounds(x, y) {
		return Tile{Type: TileWall}
	}
	return d.Tiles[y][x]
}

// tileAt returns a mutable reference to the tile, or nil when out of range.
func (d *Dungeon) tileAt(x, y int) *Tile {
	if !d.InBounds(x, y) {
		return nil
	}
	return &d.Tiles[y][x]
}

// IsPassable returns true if the given position can be walked on.
func (d *Dungeon) IsPassable(x, y int) bool {
	if !d.InBounds(x, y) {
		return false
	}
	return d.Tiles[y][x].IsPassable()
}

// isCarved returns true if the tile at the position is any non-wall tile.
func (d *Dungeon) isCarved(x, y int) bool {
	return d.InBounds(x, y) && d.Tiles[y][x].IsCarved()
}

// carveFloor turns a wall tile into floor. Carving outside the placement area
// or over an already-carved tile is a no-op; it reports whether the tile was
// newly carved.
func (d *Dungeon) carveFloor(x, y int) bool {
	if !d.inPlacementArea(x, y) {
		return false
	}
	t := &d.Tiles[y][x]
	if t.Type != TileWall {
		return false
	}
	t.Type = TileFloor
	return true
}

// RoomIndexAt returns the index of the room containing the position, or -1.
func (d *Dungeon) RoomIndexAt(x, y int) int {
	for i := range d.Rooms {
		if d.Rooms[i].Contains(x, y) {
			return i
		}
	}
	return -1
}

// isRoomFloor returns true if the position is a carved tile inside a room.
func (d *Dungeon) isRoomFloor(x, y int) bool {
	return d.isCarved(x, y) && d.RoomIndexAt(x, y) >= 0
}

// nearRoomRing returns true if the position lies on the wall ring of any room.
func (d *Dungeon) nearRoomRing(x, y int) bool {
	for i := range d.Rooms {
		if d.Rooms[i].touchesRing(x, y) {
			return true
		}
	}
	return false
}

// freeFloorAt returns true if the position is a plain floor tile with no
// occupant, suitable for placing an entity.
func (d *Dungeon) freeFloorAt(x, y int) bool {
	t := d.tileAt(x, y)
	if t == nil || t.Type != TileFloor || t.Decoration == DecorPillar {
		return false
	}
	return t.Item == nil && t.Chest == nil && t.Creature == nil
}

// fillWalls resets every tile in the grid to wall, dropping all payloads.
func (d *Dungeon) fillWalls() {
	for y := range d.Tiles {
		for x := range d.Tiles[y] {
			d.Tiles[y][x] = Tile{Type: TileWall}
		}
	}
}

func manhattan(x1, y1, x2, y2 int) int {
	dx := x1 - x2
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y2
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
