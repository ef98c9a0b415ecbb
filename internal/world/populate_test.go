package world

import (
	"math"
	"testing"

	"github.com/armysarge/dungeongen/internal/entity"
)

// collectKeys gathers every key in the dungeon by ID: floor items, chest
// contents, and creature inventories.
func collectKeys(d *Dungeon) map[string]int {
	keys := make(map[string]int)
	for _, item := range d.Items {
		if item.Kind == entity.ItemKey {
			keys[item.KeyID]++
		}
	}
	for _, chest := range d.Chests {
		for _, item := range chest.Contents {
			if item.Kind == entity.ItemKey {
				keys[item.KeyID]++
			}
		}
	}
	for _, creature := range d.Creatures {
		for _, item := range creature.Inventory {
			if item.Kind == entity.ItemKey {
				keys[item.KeyID]++
			}
		}
	}
	return keys
}

func TestEveryLockHasExactlyOneKey(t *testing.T) {
	d := newGeneratedDungeon(t, 12345)

	unplaced := make(map[string]bool)
	for _, diag := range d.Report().UnplacedKeys {
		unplaced[diag.KeyID] = true
	}

	keys := collectKeys(d)
	for id, n := range keys {
		if n != 1 {
			t.Errorf("key %s exists %d times, want 1", id, n)
		}
	}

	for _, door := range d.Doors {
		if !door.Locked {
			continue
		}
		if door.KeyID == "" {
			t.Errorf("locked door at (%d,%d) has no key ID", door.X, door.Y)
			continue
		}
		if keys[door.KeyID] == 0 && !unplaced[door.KeyID] {
			t.Errorf("key %s for locked door neither placed nor reported", door.KeyID)
		}
	}
	for _, chest := range d.Chests {
		if !chest.Locked {
			continue
		}
		if chest.KeyID == "" {
			t.Errorf("locked chest at (%d,%d) has no key ID", chest.X, chest.Y)
			continue
		}
		if keys[chest.KeyID] == 0 && !unplaced[chest.KeyID] {
			t.Errorf("key %s for locked chest neither placed nor reported", chest.KeyID)
		}
	}
}

func TestDoorKeysReachableWithoutTheirDoor(t *testing.T) {
	d := newGeneratedDungeon(t, 12345)

	degraded := make(map[string]bool)
	for _, diag := range d.Report().DegradedKeys {
		degraded[diag.KeyID] = true
	}
	unplaced := make(map[string]bool)
	for _, diag := range d.Report().UnplacedKeys {
		unplaced[diag.KeyID] = true
	}

	keyRoom := make(map[string]int)
	for _, item := range d.Items {
		if item.Kind == entity.ItemKey {
			keyRoom[item.KeyID] = item.RoomIndex
		}
	}
	for _, chest := range d.Chests {
		for _, item := range chest.Contents {
			if item.Kind == entity.ItemKey {
				keyRoom[item.KeyID] = chest.RoomIndex
			}
		}
	}
	for _, creature := range d.Creatures {
		for _, item := range creature.Inventory {
			if item.Kind == entity.ItemKey {
				keyRoom[item.KeyID] = creature.RoomIndex
			}
		}
	}

	for _, door := range d.Doors {
		if !door.Locked || degraded[door.KeyID] || unplaced[door.KeyID] {
			continue
		}
		room, ok := keyRoom[door.KeyID]
		if !ok {
			t.Errorf("key %s not found anywhere", door.KeyID)
			continue
		}
		if room == door.RoomIndex {
			t.Errorf("key %s placed in the room its own door seals", door.KeyID)
			continue
		}

		// Solvability: the key's room must be reachable without passing
		// through the door it opens.
		graph := d.BuildAccessGraph(door)
		reachable := d.FindAccessibleRooms(0, graph)
		if room < 0 || room >= len(reachable) || !reachable[room] {
			t.Errorf("key %s in room %d is unreachable without its door", door.KeyID, room)
		}
	}
}

func TestChestBudget(t *testing.T) {
	d := newGeneratedDungeon(t, 12345)

	if len(d.Chests) < 1 {
		t.Fatal("no chests placed")
	}
	budget := len(d.Rooms) / 3
	if budget < 1 {
		budget = 1
	}
	if len(d.Chests) > budget {
		t.Errorf("chest count %d exceeds budget %d", len(d.Chests), budget)
	}

	for i, chest := range d.Chests {
		tile := d.GetTile(chest.X, chest.Y)
		if tile.Chest != chest {
			t.Errorf("chest %d not registered on its tile", i)
		}
		if d.RoomIndexAt(chest.X, chest.Y) != chest.RoomIndex {
			t.Errorf("chest %d room index mismatch", i)
		}
	}
}

func TestCreatureBudget(t *testing.T) {
	d := newGeneratedDungeon(t, 12345)

	budget := int(math.Ceil(float64(len(d.Rooms)) * 1.5))
	if len(d.Creatures) == 0 {
		t.Fatal("no creatures placed")
	}
	if len(d.Creatures) > budget {
		t.Errorf("creature count %d exceeds budget %d", len(d.Creatures), budget)
	}

	for i, creature := range d.Creatures {
		tile := d.GetTile(creature.X, creature.Y)
		if tile.Creature != creature {
			t.Errorf("creature %d not registered on its tile", i)
		}
		if got := d.RoomIndexAt(creature.X, creature.Y); got != creature.RoomIndex {
			t.Errorf("creature %d room index %d, tile says %d", i, creature.RoomIndex, got)
		}
	}
}

func TestKeyPlacementExhaustionReported(t *testing.T) {
	// A single room holding its own locked chest leaves the chest key with
	// nowhere legal to go and nothing to fall back on.
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
	chest := entity.NewChest(5, 5, 0, entity.QualityRare, true)
	d.tileAt(5, 5).Chest = chest
	d.Chests = append(d.Chests, chest)

	d.placeKeys()

	report := d.Report()
	if len(report.UnplacedKeys) != 1 {
		t.Fatalf("unplaced keys = %d, want 1", len(report.UnplacedKeys))
	}
	diag := report.UnplacedKeys[0]
	if diag.KeyID != "chest-00" {
		t.Errorf("unplaced key ID = %q, want chest-00", diag.KeyID)
	}
	if diag.Lock != "chest" {
		t.Errorf("unplaced key lock = %q, want chest", diag.Lock)
	}
	if chest.KeyID != "chest-00" {
		t.Errorf("chest key ID = %q, want chest-00", chest.KeyID)
	}
}
