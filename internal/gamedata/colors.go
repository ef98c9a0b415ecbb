package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseHexColor converts an "#RRGGBB" color (leading # optional) to a
// tcell.Color. Creature definitions carry their display color in this form.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("hex color %q: want 6 hex digits", hex)
	}

	var rgb [3]int32
	for i := range rgb {
		v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("hex color %q: %w", hex, err)
		}
		rgb[i] = int32(v)
	}
	return tcell.NewRGBColor(rgb[0], rgb[1], rgb[2]), nil
}
