package world

import (
	"context"
	"testing"

	"github.com/armysarge/dungeongen/internal/entity"
)

func TestPlayerStartIsARoomCenter(t *testing.T) {
	d := newGeneratedDungeon(t, 12345)

	room := d.RoomIndexAt(d.PlayerStart.X, d.PlayerStart.Y)
	if room < 0 {
		t.Fatalf("player start %v outside every room", d.PlayerStart)
	}
	cx, cy := d.Rooms[room].Center()
	if d.PlayerStart != (Point{cx, cy}) {
		t.Errorf("player start %v, want room %d center (%d,%d)", d.PlayerStart, room, cx, cy)
	}
	if !d.isCarved(d.PlayerStart.X, d.PlayerStart.Y) {
		t.Error("player start tile is not carved")
	}
}

func TestStairsPlacement(t *testing.T) {
	d := newGeneratedDungeon(t, 12345)

	tile := d.GetTile(d.StairsPos.X, d.StairsPos.Y)
	if tile.Type != TileStairs {
		t.Fatalf("stairs tile is %v, want stairs", tile.Type)
	}
	if tile.Decoration != DecorNone {
		t.Error("stairs tile kept its decoration")
	}

	room := d.RoomIndexAt(d.StairsPos.X, d.StairsPos.Y)
	if room < 0 {
		t.Fatalf("stairs %v outside every room", d.StairsPos)
	}
	cx, cy := d.Rooms[room].Center()
	if d.StairsPos != (Point{cx, cy}) {
		t.Errorf("stairs %v, want room %d center (%d,%d)", d.StairsPos, room, cx, cy)
	}
}

func TestExactlyOneStairsTile(t *testing.T) {
	d := newGeneratedDungeon(t, 12345)

	count := 0
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			if d.Tiles[y][x].Type == TileStairs {
				count++
			}
		}
	}
	if count != 1 {
		t.Errorf("stairs tile count = %d, want 1", count)
	}
}

func TestStairsTileCarriesNoFloorPayload(t *testing.T) {
	d := newGeneratedDungeon(t, 12345)

	tile := d.GetTile(d.StairsPos.X, d.StairsPos.Y)
	if tile.Chest != nil || tile.Creature != nil || tile.Item != nil {
		t.Errorf("stairs tile carries floor payload: chest=%v creature=%v item=%v",
			tile.Chest != nil, tile.Creature != nil, tile.Item != nil)
	}
}

func TestStairsDisplaceChest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 20
	cfg.Height = 12
	d, err := NewDungeon(cfg, nil, testLogger())
	if err != nil {
		t.Fatalf("NewDungeon: %v", err)
	}
	d.reset(1)

	room := Room{X: 4, Y: 4, Width: 5, Height: 5}
	d.Rooms = []Room{room}
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			d.carveFloor(x, y)
		}
	}
	cx, cy := room.Center()
	chest := entity.NewChest(cx, cy, 0, entity.QualityCommon, false)
	d.tileAt(cx, cy).Chest = chest
	d.Chests = append(d.Chests, chest)

	d.placePlayerAndStairs(context.Background())

	tile := d.GetTile(cx, cy)
	if tile.Type != TileStairs {
		t.Fatalf("center tile is %v, want stairs", tile.Type)
	}
	if tile.Chest != nil {
		t.Fatal("stairs tile still holds the chest")
	}

	if len(d.Chests) != 1 {
		t.Fatalf("chest count = %d, want 1", len(d.Chests))
	}
	if chest.X == cx && chest.Y == cy {
		t.Error("chest was not moved off the stairs tile")
	}
	if !room.Contains(chest.X, chest.Y) {
		t.Errorf("chest relocated to (%d,%d), outside its room", chest.X, chest.Y)
	}
	if d.GetTile(chest.X, chest.Y).Chest != chest {
		t.Error("chest not registered on its new tile")
	}
}

func TestStairsDropCrowdedOutChest(t *testing.T) {
	// A one-tile room leaves a displaced chest nowhere to go.
	cfg := DefaultConfig()
	cfg.Width = 20
	cfg.Height = 12
	d, err := NewDungeon(cfg, nil, testLogger())
	if err != nil {
		t.Fatalf("NewDungeon: %v", err)
	}
	d.reset(1)

	d.Rooms = []Room{{X: 5, Y: 5, Width: 1, Height: 1}}
	d.carveFloor(5, 5)
	chest := entity.NewChest(5, 5, 0, entity.QualityCommon, false)
	d.tileAt(5, 5).Chest = chest
	d.Chests = append(d.Chests, chest)

	d.placePlayerAndStairs(context.Background())

	tile := d.GetTile(5, 5)
	if tile.Type != TileStairs || tile.Chest != nil {
		t.Fatalf("tile type=%v chest=%v, want bare stairs", tile.Type, tile.Chest != nil)
	}
	if len(d.Chests) != 0 {
		t.Errorf("chest count = %d, want 0 after drop", len(d.Chests))
	}
	if len(d.Report().Warnings) == 0 {
		t.Error("expected a warning for the dropped chest")
	}
}

func TestSpawnWithoutRoomsWarns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 10
	cfg.Height = 10
	d, err := NewDungeon(cfg, nil, testLogger())
	if err != nil {
		t.Fatalf("NewDungeon: %v", err)
	}
	d.reset(1)

	d.placePlayerAndStairs(context.Background())

	if len(d.Report().Warnings) == 0 {
		t.Error("expected a warning with no rooms")
	}
}
