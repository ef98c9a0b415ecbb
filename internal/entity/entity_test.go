package entity

import (
	"testing"

	"github.com/armysarge/dungeongen/internal/gamedata"
)

func TestChestLockLifecycle(t *testing.T) {
	chest := NewChest(3, 4, 0, QualityRare, true)
	if !chest.Locked {
		t.Fatal("chest created locked should report Locked")
	}

	chest.Unlock()
	if chest.Locked {
		t.Error("chest still locked after Unlock")
	}
}

func TestChestHoldsKey(t *testing.T) {
	chest := NewChest(2, 2, 1, QualityCommon, false)
	if chest.HasKey() {
		t.Error("empty chest claims to hold a key")
	}

	chest.AddItem(NewKey("door-03"))
	if !chest.HasKey() {
		t.Error("chest does not report the stashed key")
	}
}

func TestChestQualityNames(t *testing.T) {
	names := map[ChestQuality]string{
		QualityCommon:    "common",
		QualityUncommon:  "uncommon",
		QualityRare:      "rare",
		QualityEpic:      "epic",
		QualityLegendary: "legendary",
	}
	for quality, want := range names {
		if got := quality.String(); got != want {
			t.Errorf("quality %d String() = %q, want %q", quality, got, want)
		}
	}
}

func TestKeyStartsUnplaced(t *testing.T) {
	key := NewKey("chest-01")
	if key.X != -1 || key.Y != -1 || key.RoomIndex != -1 {
		t.Errorf("new key at (%d,%d) room %d, want unplaced", key.X, key.Y, key.RoomIndex)
	}
	if key.Glyph() != '~' {
		t.Errorf("key glyph = %c, want ~", key.Glyph())
	}

	key.PlaceAt(7, 8, 2)
	if key.X != 7 || key.Y != 8 || key.RoomIndex != 2 {
		t.Errorf("key placed at (%d,%d) room %d, want (7,8) room 2", key.X, key.Y, key.RoomIndex)
	}
}

func TestCreatureFromDef(t *testing.T) {
	def := &gamedata.CreatureDef{
		ID:    "goblin",
		Name:  "Goblin",
		Glyph: "g",
		Color: "#44AA44",
		Tier:  gamedata.TierWeak,
		HP:    6,
	}
	c := NewCreature(def, 5, 6, 1)

	if c.Name != "Goblin" || c.Glyph != 'g' {
		t.Errorf("creature name/glyph = %q/%c, want Goblin/g", c.Name, c.Glyph)
	}
	if c.HP != 6 || c.MaxHP != 6 {
		t.Errorf("creature HP = %d/%d, want 6/6", c.HP, c.MaxHP)
	}
	if x, y := c.Position(); x != 5 || y != 6 {
		t.Errorf("creature position = (%d,%d), want (5,6)", x, y)
	}
	if c.ID() != "goblin" {
		t.Errorf("creature ID = %q, want goblin", c.ID())
	}

	if c.HasKey() {
		t.Error("fresh creature claims to carry a key")
	}
	c.GiveItem(NewKey("door-00"))
	if !c.HasKey() {
		t.Error("creature does not report the carried key")
	}
}
