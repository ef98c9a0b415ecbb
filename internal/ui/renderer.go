package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/armysarge/dungeongen/internal/world"
)

// Renderer draws a generated dungeon to the screen. It is purely a consumer:
// it reads the tile grid and the entity registries and never feeds anything
// back into generation.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the dungeon with the view shifted by the given offset.
func (r *Renderer) Render(dungeon *world.Dungeon, offsetX, offsetY int) {
	r.screen.Clear()

	screenW, screenH := r.screen.Size()

	for sy := 0; sy < screenH-1; sy++ {
		for sx := 0; sx < screenW; sx++ {
			x, y := sx+offsetX, sy+offsetY
			if !dungeon.InBounds(x, y) {
				continue
			}
			tile := dungeon.GetTile(x, y)
			r.screen.SetContent(sx, sy, tile.Rune(), r.tileStyle(tile))
		}
	}

	// Entities on top of their tiles.
	for _, item := range dungeon.Items {
		r.put(item.X-offsetX, item.Y-offsetY, item.Glyph(),
			tcell.StyleDefault.Foreground(tcell.ColorGold))
	}
	for _, chest := range dungeon.Chests {
		style := tcell.StyleDefault.Foreground(tcell.ColorYellow)
		if chest.Locked {
			style = style.Bold(true)
		}
		r.put(chest.X-offsetX, chest.Y-offsetY, '$', style)
	}
	for _, creature := range dungeon.Creatures {
		r.put(creature.X-offsetX, creature.Y-offsetY, creature.Glyph,
			tcell.StyleDefault.Foreground(creature.Color()))
	}

	r.put(dungeon.StairsPos.X-offsetX, dungeon.StairsPos.Y-offsetY, '>',
		tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
	r.put(dungeon.PlayerStart.X-offsetX, dungeon.PlayerStart.Y-offsetY, '@',
		tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))

	r.renderStatus(dungeon, screenH-1)
	r.screen.Show()
}

// put sets a cell if it is on screen.
func (r *Renderer) put(sx, sy int, ch rune, style tcell.Style) {
	screenW, screenH := r.screen.Size()
	if sx < 0 || sx >= screenW || sy < 0 || sy >= screenH-1 {
		return
	}
	r.screen.SetContent(sx, sy, ch, style)
}

// tileStyle returns the style for a tile's base rune.
func (r *Renderer) tileStyle(tile world.Tile) tcell.Style {
	switch tile.Type {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileDoor:
		if tile.Door != nil && tile.Door.Locked {
			return tcell.StyleDefault.Foreground(tcell.ColorRed)
		}
		return tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	case world.TileStairs:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	default:
		switch tile.Decoration {
		case world.DecorTrap:
			return tcell.StyleDefault.Foreground(tcell.ColorRed)
		case world.DecorPillar:
			return tcell.StyleDefault.Foreground(tcell.ColorSilver)
		default:
			return tcell.StyleDefault.Foreground(tcell.ColorGray)
		}
	}
}

// renderStatus draws a one-line summary at the bottom of the screen.
func (r *Renderer) renderStatus(dungeon *world.Dungeon, y int) {
	msg := fmt.Sprintf("seed %d | rooms %d | doors %d | chests %d | creatures %d | r=regenerate q=quit",
		dungeon.Seed(), len(dungeon.Rooms), len(dungeon.Doors), len(dungeon.Chests), len(dungeon.Creatures))
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range msg {
		r.screen.SetContent(i, y, ch, style)
	}
}
