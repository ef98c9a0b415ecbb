package gamedata

import "github.com/gdamore/tcell/v2"

// Tier buckets creatures by strength. Placement uses it to bias spawns:
// corridors lean weak, open rooms draw the full range, and rooms sealed
// behind locked doors lean strong.
type Tier string

const (
	TierWeak   Tier = "weak"
	TierNormal Tier = "normal"
	TierStrong Tier = "strong"
)

// CreatureDef defines a creature type loaded from JSON.
type CreatureDef struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "goblin")
	Name        string `json:"name"`        // Display name (e.g., "Goblin")
	Glyph       string `json:"glyph"`       // Single character for rendering (e.g., "g")
	Color       string `json:"color"`       // Hex color code (e.g., "#00FF00")
	Tier        Tier   `json:"tier"`        // Strength bucket used by spawn biasing
	HP          int    `json:"hp"`          // Base hit points
	Attack      int    `json:"attack"`      // Base attack power
	Defense     int    `json:"defense"`     // Base defense value
	SpawnWeight int    `json:"spawnWeight"` // Relative spawn frequency (higher = more common)
}

// GlyphRune returns the glyph as a rune for rendering.
func (c *CreatureDef) GlyphRune() rune {
	if len(c.Glyph) == 0 {
		return '?'
	}
	return rune(c.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (c *CreatureDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(c.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// CreaturesFile represents the structure of creatures.json.
type CreaturesFile struct {
	Creatures []CreatureDef `json:"creatures"`
}

// LoadCreatures loads creature definitions from the embedded creatures.json file.
func LoadCreatures() ([]CreatureDef, error) {
	file, err := Load[CreaturesFile]("creatures.json")
	if err != nil {
		return nil, err
	}
	return file.Creatures, nil
}
