package world

import "context"

// doorCandidate is a corridor tile adjacent to a room that could hold a door,
// with its attribute rolls already made.
type doorCandidate struct {
	x, y      int
	roomIndex int
	facing    Facing // from the candidate tile toward the room
	locked    bool
	trapped   bool
	tie       float64 // random tie-break component of the interest score
}

// score ranks a candidate within a spatial cluster: locked and trapped doors
// are more interesting than plain ones.
func (c doorCandidate) score() float64 {
	s := c.tie
	if c.locked {
		s += 2
	}
	if c.trapped {
		s += 3
	}
	return s
}

// placeDoors finds every valid room/corridor junction, groups candidates that
// crowd each other, and places the most interesting door of each group.
func (d *Dungeon) placeDoors(ctx context.Context) {
	candidates := d.collectDoorCandidates()
	groups := clusterCandidates(candidates)

	for _, group := range groups {
		if len(group) == 1 {
			// Singletons are occasionally skipped so not every junction
			// has a door.
			if d.rng.Chance(doorSkipChance) {
				continue
			}
			d.placeDoor(group[0])
			continue
		}

		best := group[0]
		for _, c := range group[1:] {
			if c.score() > best.score() {
				best = c
			}
		}
		d.placeDoor(best)
	}

	locked := 0
	for _, door := range d.Doors {
		if door.Locked {
			locked++
		}
	}
	d.log.Debug("placed doors", "doors", len(d.Doors), "locked", locked)
}

// collectDoorCandidates scans the grid in row order so candidate discovery,
// and therefore every attribute roll, is deterministic for a seed.
func (d *Dungeon) collectDoorCandidates() []doorCandidate {
	var candidates []doorCandidate

	for y := borderSize; y < d.Height-borderSize; y++ {
		for x := borderSize; x < d.Width-borderSize; x++ {
			if d.Tiles[y][x].Type != TileFloor {
				continue
			}
			if d.RoomIndexAt(x, y) >= 0 {
				continue
			}

			// Exactly one cardinal neighbor inside a room.
			roomDir := -1
			for i, delta := range cardinals {
				if d.isRoomFloor(x+delta.X, y+delta.Y) {
					if roomDir >= 0 {
						roomDir = -2
						break
					}
					roomDir = i
				}
			}
			if roomDir < 0 {
				continue
			}
			roomIndex := d.RoomIndexAt(x+cardinals[roomDir].X, y+cardinals[roomDir].Y)

			// The tile away from the room must be corridor floor: the door
			// sits on the corridor's first tile, not deeper inside it.
			ox := x - cardinals[roomDir].X
			oy := y - cardinals[roomDir].Y
			if !d.isCarved(ox, oy) || d.RoomIndexAt(ox, oy) >= 0 {
				continue
			}

			if d.nearEntranceCorner(x, y, roomIndex, facingFor[roomDir]) {
				continue
			}

			candidates = append(candidates, doorCandidate{
				x:         x,
				y:         y,
				roomIndex: roomIndex,
				facing:    facingFor[roomDir],
				locked:    d.rng.Chance(doorLockedChance),
				trapped:   d.rng.Chance(doorTrappedChance),
				tie:       d.rng.Float64(),
			})
		}
	}
	return candidates
}

// nearEntranceCorner reports whether the candidate aligns with the entrance
// wall's corner tiles or lies past them. The candidate tile itself sits
// outside the room, so rejecting the corner columns keeps every door at
// least one wall tile away from the room's corner; positions one step inside
// the wall span stay legal.
func (d *Dungeon) nearEntranceCorner(x, y, roomIndex int, facing Facing) bool {
	room := d.Rooms[roomIndex]
	switch facing {
	case FacingNorth, FacingSouth:
		// Entrance wall runs along x.
		return x <= room.X || x >= room.X+room.Width-1
	default:
		// Entrance wall runs along y.
		return y <= room.Y || y >= room.Y+room.Height-1
	}
}

// clusterCandidates groups candidates within one tile of each other,
// diagonals included.
func clusterCandidates(candidates []doorCandidate) [][]doorCandidate {
	var groups [][]doorCandidate
	assigned := make([]bool, len(candidates))

	for i := range candidates {
		if assigned[i] {
			continue
		}
		group := []doorCandidate{candidates[i]}
		assigned[i] = true

		for cursor := 0; cursor < len(group); cursor++ {
			for j := range candidates {
				if assigned[j] {
					continue
				}
				if chebyshev(group[cursor].x, group[cursor].y, candidates[j].x, candidates[j].y) <= 1 {
					group = append(group, candidates[j])
					assigned[j] = true
				}
			}
		}
		groups = append(groups, group)
	}
	return groups
}

func chebyshev(x1, y1, x2, y2 int) int {
	dx := x1 - x2
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y2
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// placeDoor converts the candidate's tile into a door tile.
func (d *Dungeon) placeDoor(c doorCandidate) {
	door := &Door{
		X:         c.x,
		Y:         c.y,
		Locked:    c.locked,
		Trapped:   c.trapped,
		Facing:    c.facing,
		RoomIndex: c.roomIndex,
	}
	t := d.tileAt(c.x, c.y)
	t.Type = TileDoor
	t.Door = door
	t.Decoration = DecorNone
	d.Doors = append(d.Doors, door)
}
