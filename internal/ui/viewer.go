package ui

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/armysarge/dungeongen/internal/world"
)

// Viewer is an interactive terminal browser for generated dungeons: scroll
// with the arrow keys, regenerate with a fresh seed, quit.
type Viewer struct {
	screen   *Screen
	renderer *Renderer

	offsetX, offsetY int
	running          bool
}

// NewViewer creates a viewer with its own terminal screen.
func NewViewer() (*Viewer, error) {
	screen, err := NewScreen()
	if err != nil {
		return nil, err
	}
	return &Viewer{
		screen:   screen,
		renderer: NewRenderer(screen),
		running:  true,
	}, nil
}

// Run displays the dungeon until the user quits. The regenerate callback
// returns a freshly generated dungeon when the user asks for one.
func (v *Viewer) Run(ctx context.Context, dungeon *world.Dungeon, regenerate func(context.Context) *world.Dungeon) error {
	defer v.screen.Close()

	for v.running {
		v.renderer.Render(dungeon, v.offsetX, v.offsetY)

		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				v.running = false
			case tcell.KeyUp:
				v.scroll(dungeon, 0, -1)
			case tcell.KeyDown:
				v.scroll(dungeon, 0, 1)
			case tcell.KeyLeft:
				v.scroll(dungeon, -1, 0)
			case tcell.KeyRight:
				v.scroll(dungeon, 1, 0)
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'q', 'Q':
					v.running = false
				case 'r', 'R':
					if regenerate != nil {
						dungeon = regenerate(ctx)
						v.offsetX, v.offsetY = 0, 0
					}
				}
			}
		case *tcell.EventResize:
			v.screen.Sync()
		}
	}
	return nil
}

// scroll shifts the view, clamped so the dungeon stays at least partly on
// screen.
func (v *Viewer) scroll(dungeon *world.Dungeon, dx, dy int) {
	v.offsetX += dx
	v.offsetY += dy
	if v.offsetX < 0 {
		v.offsetX = 0
	}
	if v.offsetY < 0 {
		v.offsetY = 0
	}
	if v.offsetX > dungeon.Width-1 {
		v.offsetX = dungeon.Width - 1
	}
	if v.offsetY > dungeon.Height-1 {
		v.offsetY = dungeon.Height - 1
	}
}
