package world

import "testing"

func TestDoorsSitOnRoomJunctions(t *testing.T) {
	d := newGeneratedDungeon(t, 12345)

	if len(d.Doors) == 0 {
		t.Skip("seed produced no doors")
	}

	for i, door := range d.Doors {
		tile := d.GetTile(door.X, door.Y)
		if tile.Type != TileDoor {
			t.Errorf("door %d tile at (%d,%d) is %v, want door", i, door.X, door.Y, tile.Type)
			continue
		}
		if tile.Door != door {
			t.Errorf("door %d tile payload points at a different door", i)
		}

		// Exactly one cardinal neighbor inside a room, and it belongs to the
		// door's own room.
		roomNeighbors := 0
		for _, delta := range cardinals {
			nx, ny := door.X+delta.X, door.Y+delta.Y
			if !d.isRoomFloor(nx, ny) {
				continue
			}
			roomNeighbors++
			if got := d.RoomIndexAt(nx, ny); got != door.RoomIndex {
				t.Errorf("door %d borders room %d, claims room %d", i, got, door.RoomIndex)
			}
		}
		if roomNeighbors != 1 {
			t.Errorf("door %d has %d room neighbors, want 1", i, roomNeighbors)
		}

		// The facing delta points into the room.
		dx, dy := door.Facing.Delta()
		if got := d.RoomIndexAt(door.X+dx, door.Y+dy); got != door.RoomIndex {
			t.Errorf("door %d facing %v points at room %d, want %d", i, door.Facing, got, door.RoomIndex)
		}
	}
}

func TestDoorsNeverInsideRooms(t *testing.T) {
	d := newGeneratedDungeon(t, 12345)

	for i, door := range d.Doors {
		if d.RoomIndexAt(door.X, door.Y) >= 0 {
			t.Errorf("door %d at (%d,%d) sits inside a room", i, door.X, door.Y)
		}
	}
}

func TestLockedDoorImpassable(t *testing.T) {
	d := newGeneratedDungeon(t, 12345)

	for i, door := range d.Doors {
		passable := d.IsPassable(door.X, door.Y)
		if door.Locked && passable {
			t.Errorf("locked door %d is passable", i)
		}
		if !door.Locked && !passable {
			t.Errorf("unlocked door %d is impassable", i)
		}
	}
}

func TestDoorCandidatesRejectCornerAligned(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 16
	cfg.Height = 12
	d, err := NewDungeon(cfg, nil, testLogger())
	if err != nil {
		t.Fatalf("NewDungeon: %v", err)
	}
	d.reset(1)

	room := Room{X: 4, Y: 4, Width: 4, Height: 4}
	d.Rooms = []Room{room}
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			d.carveFloor(x, y)
		}
	}

	// Two stub corridors poking the room's north wall: one aligned with the
	// west corner column, one an interior column.
	for _, x := range []int{room.X, room.X + 2} {
		d.carveFloor(x, room.Y-1)
		d.carveFloor(x, room.Y-2)
	}

	candidates := d.collectDoorCandidates()
	if len(candidates) != 1 {
		t.Fatalf("candidate count = %d, want 1", len(candidates))
	}
	if candidates[0].x != room.X+2 || candidates[0].y != room.Y-1 {
		t.Errorf("candidate at (%d,%d), want interior column (%d,%d)",
			candidates[0].x, candidates[0].y, room.X+2, room.Y-1)
	}
	if candidates[0].facing != FacingSouth {
		t.Errorf("candidate facing %v, want south", candidates[0].facing)
	}
}

func TestClusterCandidates(t *testing.T) {
	candidates := []doorCandidate{
		{x: 5, y: 5},
		{x: 6, y: 5},  // touches the first
		{x: 6, y: 6},  // touches the second
		{x: 10, y: 5}, // isolated
	}

	groups := clusterCandidates(candidates)
	if len(groups) != 2 {
		t.Fatalf("group count = %d, want 2", len(groups))
	}
	if len(groups[0]) != 3 {
		t.Errorf("first group size = %d, want 3", len(groups[0]))
	}
	if len(groups[1]) != 1 {
		t.Errorf("second group size = %d, want 1", len(groups[1]))
	}
}

func TestDoorCandidateScore(t *testing.T) {
	plain := doorCandidate{tie: 0.5}
	locked := doorCandidate{locked: true}
	trapped := doorCandidate{trapped: true}
	both := doorCandidate{locked: true, trapped: true}

	if locked.score() <= plain.score() {
		t.Error("locked candidate should outscore a plain one")
	}
	if trapped.score() <= locked.score() {
		t.Error("trapped candidate should outscore a locked one")
	}
	if both.score() <= trapped.score() {
		t.Error("locked and trapped should outscore trapped alone")
	}
}
