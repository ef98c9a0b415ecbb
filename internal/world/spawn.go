package world

import (
	"context"
	"math"
)

// placePlayerAndStairs scores rooms for the player start and the stairs. The
// start favors large rooms near the dungeon center that are not sealed behind
// locks; the stairs favor distance from the start.
func (d *Dungeon) placePlayerAndStairs(ctx context.Context) {
	if len(d.Rooms) == 0 {
		d.report.warnf("no rooms to place player or stairs in")
		return
	}

	centerX := float64(d.Width) / 2
	centerY := float64(d.Height) / 2

	startRoom := 0
	bestScore := math.Inf(-1)
	for i := range d.Rooms {
		cx, cy := d.Rooms[i].Center()
		dist := math.Hypot(float64(cx)-centerX, float64(cy)-centerY)
		score := float64(d.Rooms[i].Area()) - 0.5*dist
		if d.allLockedRoom(i) {
			score *= 0.2
		}
		if score > bestScore {
			bestScore = score
			startRoom = i
		}
	}

	sx, sy := d.Rooms[startRoom].Center()
	d.PlayerStart = Point{sx, sy}

	stairsRoom := startRoom
	bestScore = math.Inf(-1)
	for i := range d.Rooms {
		cx, cy := d.Rooms[i].Center()
		score := math.Hypot(float64(cx-sx), float64(cy-sy)) + 0.1*float64(d.Rooms[i].Area())
		if score > bestScore {
			bestScore = score
			stairsRoom = i
		}
	}

	tx, ty := d.Rooms[stairsRoom].Center()
	// The stairs overwrite the center tile. Converting the tag first keeps
	// the tile out of the free-tile scan while its occupants relocate.
	t := d.tileAt(tx, ty)
	t.Type = TileStairs
	t.Door = nil
	t.Decoration = DecorNone
	d.evictOccupants(t, stairsRoom)
	d.StairsPos = Point{tx, ty}

	d.log.Debug("placed player and stairs",
		"start_room", startRoom,
		"stairs_room", stairsRoom,
	)
}

// evictOccupants moves any entity standing on the tile to another free tile
// in the same room. A tile's payload must match its tag, so nothing floor-
// bound may stay behind once the tile stops being floor. An entity with
// nowhere to go is dropped from its registry.
func (d *Dungeon) evictOccupants(t *Tile, roomIndex int) {
	if chest := t.Chest; chest != nil {
		t.Chest = nil
		if pos, ok := d.firstFreeTileInRoom(roomIndex); ok {
			chest.X, chest.Y = pos.X, pos.Y
			d.tileAt(pos.X, pos.Y).Chest = chest
		} else {
			d.Chests = removeEntity(d.Chests, chest)
			d.report.warnf("dropped chest displaced by the stairs in room %d", roomIndex)
		}
	}
	if creature := t.Creature; creature != nil {
		t.Creature = nil
		if pos, ok := d.firstFreeTileInRoom(roomIndex); ok {
			creature.X, creature.Y = pos.X, pos.Y
			d.tileAt(pos.X, pos.Y).Creature = creature
		} else {
			d.Creatures = removeEntity(d.Creatures, creature)
			d.report.warnf("dropped creature displaced by the stairs in room %d", roomIndex)
		}
	}
	if item := t.Item; item != nil {
		t.Item = nil
		if pos, ok := d.firstFreeTileInRoom(roomIndex); ok {
			item.PlaceAt(pos.X, pos.Y, roomIndex)
			d.tileAt(pos.X, pos.Y).Item = item
		} else {
			d.Items = removeEntity(d.Items, item)
			d.report.warnf("dropped item displaced by the stairs in room %d", roomIndex)
		}
	}
}

// firstFreeTileInRoom returns the first unoccupied floor tile in scan order,
// so relocation never draws from the random stream.
func (d *Dungeon) firstFreeTileInRoom(roomIndex int) (Point, bool) {
	tiles := d.freeTilesInRoom(roomIndex)
	if len(tiles) == 0 {
		return Point{}, false
	}
	return tiles[0], true
}

func removeEntity[T comparable](s []T, v T) []T {
	for i := range s {
		if s[i] == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
