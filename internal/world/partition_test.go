package world

import (
	"context"
	"testing"
)

// newPartitionedDungeon runs only the partition stage.
func newPartitionedDungeon(t *testing.T, seed int64) *Dungeon {
	t.Helper()
	cfg := DefaultConfig()
	d, err := NewDungeon(cfg, nil, testLogger())
	if err != nil {
		t.Fatalf("NewDungeon: %v", err)
	}
	d.reset(seed)
	d.partitionRooms(context.Background())
	return d
}

func TestPartitionRoomCount(t *testing.T) {
	d := newPartitionedDungeon(t, 12345)

	if len(d.Rooms) < 1 {
		t.Fatal("partition produced no rooms")
	}
	if len(d.Rooms) > defaultMaxRooms {
		t.Errorf("room count %d exceeds cap %d", len(d.Rooms), defaultMaxRooms)
	}
}

func TestPartitionRoomBounds(t *testing.T) {
	d := newPartitionedDungeon(t, 12345)

	for i, room := range d.Rooms {
		if room.X < borderSize || room.Y < borderSize ||
			room.X+room.Width > d.Width-borderSize ||
			room.Y+room.Height > d.Height-borderSize {
			t.Errorf("room %d (%d,%d,%d,%d) escapes the placement area",
				i, room.X, room.Y, room.Width, room.Height)
		}
		if room.Width < defaultMinRoomSize || room.Width > defaultMaxRoomSize {
			t.Errorf("room %d width %d outside [%d,%d]",
				i, room.Width, defaultMinRoomSize, defaultMaxRoomSize)
		}
		if room.Height < defaultMinRoomSize || room.Height > defaultMaxRoomSize {
			t.Errorf("room %d height %d outside [%d,%d]",
				i, room.Height, defaultMinRoomSize, defaultMaxRoomSize)
		}
	}
}

func TestPartitionRoomsDisjoint(t *testing.T) {
	d := newPartitionedDungeon(t, 12345)

	for i := 0; i < len(d.Rooms); i++ {
		for j := i + 1; j < len(d.Rooms); j++ {
			if d.Rooms[i].Intersects(d.Rooms[j]) {
				t.Errorf("rooms %d and %d overlap: %+v / %+v", i, j, d.Rooms[i], d.Rooms[j])
			}
		}
	}
}

func TestPartitionCarvesRoomInteriors(t *testing.T) {
	d := newPartitionedDungeon(t, 12345)

	for i, room := range d.Rooms {
		for y := room.Y; y < room.Y+room.Height; y++ {
			for x := room.X; x < room.X+room.Width; x++ {
				if d.Tiles[y][x].Type != TileFloor {
					t.Fatalf("room %d tile (%d,%d) is %v, want floor", i, x, y, d.Tiles[y][x].Type)
				}
			}
		}
	}
}

func TestPartitionTooSmallGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 4
	cfg.Height = 4
	d, err := NewDungeon(cfg, nil, testLogger())
	if err != nil {
		t.Fatalf("NewDungeon: %v", err)
	}
	d.reset(1)
	d.partitionRooms(context.Background())

	if len(d.Rooms) != 0 {
		t.Errorf("expected no rooms on a %dx%d grid, got %d", cfg.Width, cfg.Height, len(d.Rooms))
	}
	if len(d.report.Warnings) == 0 {
		t.Error("expected a warning for an unpartitionable grid")
	}
}
