package world

// RenderASCII returns a plain-text view of the dungeon, one string per row,
// with entities overlaid on their tiles. Intended for dumps and debugging;
// interactive rendering lives with the presentation layer.
func (d *Dungeon) RenderASCII() []string {
	rows := make([][]rune, d.Height)
	for y := 0; y < d.Height; y++ {
		rows[y] = make([]rune, d.Width)
		for x := 0; x < d.Width; x++ {
			rows[y][x] = d.Tiles[y][x].Rune()
		}
	}

	for _, item := range d.Items {
		rows[item.Y][item.X] = item.Glyph()
	}
	for _, chest := range d.Chests {
		rows[chest.Y][chest.X] = '$'
	}
	for _, creature := range d.Creatures {
		rows[creature.Y][creature.X] = creature.Glyph
	}
	if d.isCarved(d.StairsPos.X, d.StairsPos.Y) {
		rows[d.StairsPos.Y][d.StairsPos.X] = '>'
	}
	if d.isCarved(d.PlayerStart.X, d.PlayerStart.Y) {
		rows[d.PlayerStart.Y][d.PlayerStart.X] = '@'
	}

	lines := make([]string, d.Height)
	for y := range rows {
		lines[y] = string(rows[y])
	}
	return lines
}
