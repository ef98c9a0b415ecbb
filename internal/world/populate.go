package world

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"github.com/armysarge/dungeongen/internal/entity"
	"github.com/armysarge/dungeongen/internal/gamedata"
	"github.com/armysarge/dungeongen/internal/telemetry"
)

// placeEntities runs the chest, creature, and key sub-stages in order.
func (d *Dungeon) placeEntities(ctx context.Context) {
	tracer := telemetry.Tracer("world")

	for _, sub := range []struct {
		name string
		fn   func()
	}{
		{"dungeon.place_chests", d.placeChests},
		{"dungeon.place_creatures", d.placeCreatures},
		{"dungeon.place_keys", d.placeKeys},
	} {
		_, span := tracer.Start(ctx, sub.name)
		sub.fn()
		span.End()
	}

	_, span := tracer.Start(ctx, "dungeon.entity_totals")
	span.SetAttributes(
		attribute.Int("dungeon.chests", len(d.Chests)),
		attribute.Int("dungeon.creatures", len(d.Creatures)),
		attribute.Int("dungeon.keys_unplaced", len(d.report.UnplacedKeys)),
	)
	span.End()
}

// placeChests puts one chest each into the highest-priority rooms: rooms
// sealed entirely behind locked doors first, then larger rooms.
func (d *Dungeon) placeChests() {
	if len(d.Rooms) == 0 {
		return
	}

	count := len(d.Rooms) / 3
	if count < 1 {
		count = 1
	}

	order := make([]int, len(d.Rooms))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		lockedA, lockedB := d.allLockedRoom(a), d.allLockedRoom(b)
		if lockedA != lockedB {
			return lockedA
		}
		return d.Rooms[a].Area() > d.Rooms[b].Area()
	})

	placed := 0
	for _, roomIndex := range order {
		if placed >= count {
			break
		}
		pos, ok := d.freeTileInRoom(roomIndex, 5)
		if !ok {
			d.report.warnf("no free tile for chest in room %d", roomIndex)
			continue
		}

		sealed := d.allLockedRoom(roomIndex)
		quality := d.rollChestQuality(sealed)
		locked := d.rng.Chance(chestLockChance(quality))

		chest := entity.NewChest(pos.X, pos.Y, roomIndex, quality, locked)
		d.tileAt(pos.X, pos.Y).Chest = chest
		d.Chests = append(d.Chests, chest)
		placed++
	}

	d.log.Debug("placed chests", "chests", len(d.Chests))
}

// rollChestQuality rolls a loot tier with independent nested checks. Rooms
// sealed behind locks skew toward rare and better.
func (d *Dungeon) rollChestQuality(sealed bool) entity.ChestQuality {
	if sealed {
		switch {
		case d.rng.Chance(0.10):
			return entity.QualityLegendary
		case d.rng.Chance(0.20):
			return entity.QualityEpic
		case d.rng.Chance(0.40):
			return entity.QualityRare
		case d.rng.Chance(0.50):
			return entity.QualityUncommon
		default:
			return entity.QualityCommon
		}
	}
	switch {
	case d.rng.Chance(0.02):
		return entity.QualityLegendary
	case d.rng.Chance(0.05):
		return entity.QualityEpic
	case d.rng.Chance(0.15):
		return entity.QualityRare
	case d.rng.Chance(0.30):
		return entity.QualityUncommon
	default:
		return entity.QualityCommon
	}
}

// chestLockChance returns how likely a chest of the given quality is locked.
func chestLockChance(quality entity.ChestQuality) float64 {
	if quality >= entity.QualityRare {
		return 0.3
	}
	return 0.1
}

// freeTileInRoom tries up to attempts random interior positions and returns
// the first free one.
func (d *Dungeon) freeTileInRoom(roomIndex int, attempts int) (Point, bool) {
	room := d.Rooms[roomIndex]
	for i := 0; i < attempts; i++ {
		x := d.rng.IntN(room.X, room.X+room.Width)
		y := d.rng.IntN(room.Y, room.Y+room.Height)
		if d.freeFloorAt(x, y) {
			return Point{x, y}, true
		}
	}
	return Point{}, false
}

// placeCreatures distributes the creature budget: seventy percent across the
// rooms proportionally to their area, the remainder along corridors. Corridor
// spawns skew weak, sealed rooms skew strong.
func (d *Dungeon) placeCreatures() {
	if len(d.Rooms) == 0 || d.creatures == nil {
		return
	}

	total := int(math.Ceil(float64(len(d.Rooms)) * 1.5))
	roomBudget := total * 7 / 10

	totalArea := 0
	for i := range d.Rooms {
		totalArea += d.Rooms[i].Area()
	}

	placed := 0
	for roomIndex := range d.Rooms {
		if placed >= roomBudget {
			break
		}
		share := (roomBudget*d.Rooms[roomIndex].Area() + totalArea - 1) / totalArea

		bias := gamedata.BiasNone
		if d.allLockedRoom(roomIndex) {
			bias = gamedata.BiasStrong
		}

		tiles := d.freeTilesInRoom(roomIndex)
		d.rng.Shuffle(len(tiles), func(i, j int) {
			tiles[i], tiles[j] = tiles[j], tiles[i]
		})

		for i := 0; i < share && i < len(tiles) && placed < roomBudget; i++ {
			d.spawnCreature(tiles[i], roomIndex, bias)
			placed++
		}
	}

	corridorTiles := d.freeCorridorTiles()
	d.rng.Shuffle(len(corridorTiles), func(i, j int) {
		corridorTiles[i], corridorTiles[j] = corridorTiles[j], corridorTiles[i]
	})
	for i := 0; placed < total && i < len(corridorTiles); i++ {
		d.spawnCreature(corridorTiles[i], -1, gamedata.BiasWeak)
		placed++
	}

	d.log.Debug("placed creatures", "creatures", len(d.Creatures), "budget", total)
}

func (d *Dungeon) spawnCreature(pos Point, roomIndex int, bias gamedata.SpawnBias) {
	def := d.creatures.Spawn(d.rng, bias)
	if def == nil {
		d.report.warnf("creature registry is empty")
		return
	}
	creature := entity.NewCreature(def, pos.X, pos.Y, roomIndex)
	d.tileAt(pos.X, pos.Y).Creature = creature
	d.Creatures = append(d.Creatures, creature)
}

// freeTilesInRoom returns the unoccupied floor tiles of a room in scan order.
func (d *Dungeon) freeTilesInRoom(roomIndex int) []Point {
	room := d.Rooms[roomIndex]
	var tiles []Point
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			if d.freeFloorAt(x, y) {
				tiles = append(tiles, Point{x, y})
			}
		}
	}
	return tiles
}

// freeCorridorTiles returns the unoccupied carved tiles outside all rooms in
// scan order.
func (d *Dungeon) freeCorridorTiles() []Point {
	var tiles []Point
	for y := borderSize; y < d.Height-borderSize; y++ {
		for x := borderSize; x < d.Width-borderSize; x++ {
			if d.freeFloorAt(x, y) && d.RoomIndexAt(x, y) < 0 {
				tiles = append(tiles, Point{x, y})
			}
		}
	}
	return tiles
}

// placeKeys synthesizes exactly one key per locked door and per locked chest
// and places each where it can be reached without passing through the lock it
// opens. Door keys use the accessibility graph with their door excluded;
// chest keys only avoid the chest's own room.
func (d *Dungeon) placeKeys() {
	for i, door := range d.Doors {
		if !door.Locked {
			continue
		}
		keyID := fmt.Sprintf("door-%02d", i)
		door.KeyID = keyID

		graph := d.BuildAccessGraph(door)
		allowed := d.FindAccessibleRooms(0, graph)
		if door.RoomIndex >= 0 && door.RoomIndex < len(allowed) {
			allowed[door.RoomIndex] = false
		}
		d.placeKey(keyID, "door", Point{door.X, door.Y}, allowed)
	}

	for i, chest := range d.Chests {
		if !chest.Locked {
			continue
		}
		keyID := fmt.Sprintf("chest-%02d", i)
		chest.KeyID = keyID

		// Relaxed rule for chest keys: anywhere but the chest's own room.
		allowed := make([]bool, len(d.Rooms))
		for r := range allowed {
			allowed[r] = r != chest.RoomIndex
		}
		d.placeKey(keyID, "chest", Point{chest.X, chest.Y}, allowed)
	}
}

// placeKey works through the placement preference chain; the first success
// wins. Exhausting every strategy is reported, never fatal.
func (d *Dungeon) placeKey(keyID, lockKind string, lockPos Point, allowed []bool) {
	key := entity.NewKey(keyID)

	// 1. A reachable creature not already carrying a key.
	var carriers []*entity.Creature
	for _, c := range d.Creatures {
		if c.RoomIndex >= 0 && allowed[c.RoomIndex] && !c.HasKey() {
			carriers = append(carriers, c)
		}
	}
	if len(carriers) > 0 {
		c := carriers[d.rng.IntN(0, len(carriers))]
		c.GiveItem(key)
		key.PlaceAt(c.X, c.Y, c.RoomIndex)
		return
	}

	// 2. A reachable unlocked chest not already holding a key.
	var chests []*entity.Chest
	for _, c := range d.Chests {
		if !c.Locked && allowed[c.RoomIndex] && !c.HasKey() {
			chests = append(chests, c)
		}
	}
	if len(chests) > 0 {
		c := chests[d.rng.IntN(0, len(chests))]
		c.AddItem(key)
		key.PlaceAt(c.X, c.Y, c.RoomIndex)
		return
	}

	// 3. A free floor tile in a reachable room, preferring rooms that have
	// no key yet.
	var keyless, anyAllowed []int
	for roomIndex, ok := range allowed {
		if !ok {
			continue
		}
		anyAllowed = append(anyAllowed, roomIndex)
		if !d.roomHasKey(roomIndex) {
			keyless = append(keyless, roomIndex)
		}
	}
	if d.dropKeyInRooms(key, keyless) {
		return
	}

	// 4. Constrained-random fallback: drop the one-key-per-room rule, then
	// any creature, then any unlocked chest, reachable or not.
	if d.dropKeyInRooms(key, anyAllowed) {
		return
	}
	for _, c := range d.Creatures {
		if !c.HasKey() {
			c.GiveItem(key)
			key.PlaceAt(c.X, c.Y, c.RoomIndex)
			d.reportDegradedKey(keyID, lockKind, lockPos, "key given to a creature outside the reachable set")
			return
		}
	}
	for _, c := range d.Chests {
		if !c.Locked && !c.HasKey() {
			c.AddItem(key)
			key.PlaceAt(c.X, c.Y, c.RoomIndex)
			d.reportDegradedKey(keyID, lockKind, lockPos, "key stashed in a chest outside the reachable set")
			return
		}
	}

	d.report.UnplacedKeys = append(d.report.UnplacedKeys, KeyDiagnostic{
		KeyID:  keyID,
		Lock:   lockKind,
		X:      lockPos.X,
		Y:      lockPos.Y,
		Reason: "no reachable creature, chest, or floor tile could hold the key",
	})
	d.log.Warn("key placement exhausted",
		"key_id", keyID,
		"lock", lockKind,
		"x", lockPos.X,
		"y", lockPos.Y,
	)
}

// dropKeyInRooms tries to rest the key on a free floor tile in one of the
// given rooms.
func (d *Dungeon) dropKeyInRooms(key *entity.Item, rooms []int) bool {
	if len(rooms) == 0 {
		return false
	}
	roomIndex := rooms[d.rng.IntN(0, len(rooms))]
	pos, ok := d.freeTileInRoom(roomIndex, 5)
	if !ok {
		return false
	}
	key.PlaceAt(pos.X, pos.Y, roomIndex)
	d.tileAt(pos.X, pos.Y).Item = key
	d.Items = append(d.Items, key)
	return true
}

// roomHasKey returns true if any key already rests in the room, on the floor,
// in a chest, or in a creature's pockets.
func (d *Dungeon) roomHasKey(roomIndex int) bool {
	for _, item := range d.Items {
		if item.Kind == entity.ItemKey && item.RoomIndex == roomIndex {
			return true
		}
	}
	for _, chest := range d.Chests {
		if chest.RoomIndex == roomIndex && chest.HasKey() {
			return true
		}
	}
	for _, creature := range d.Creatures {
		if creature.RoomIndex == roomIndex && creature.HasKey() {
			return true
		}
	}
	return false
}

func (d *Dungeon) reportDegradedKey(keyID, lockKind string, lockPos Point, reason string) {
	d.report.DegradedKeys = append(d.report.DegradedKeys, KeyDiagnostic{
		KeyID:  keyID,
		Lock:   lockKind,
		X:      lockPos.X,
		Y:      lockPos.Y,
		Reason: reason,
	})
	d.log.Warn("key placement degraded", "key_id", keyID, "reason", reason)
}
