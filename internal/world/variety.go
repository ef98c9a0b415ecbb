package world

import "context"

// varietyPass breaks up monotonous corridors. Straight runs of six or more
// tiles have a 50% chance to receive features: every third tile rolls
// independently for an alcove, a small rest area, or a decoration.
func (d *Dungeon) varietyPass(ctx context.Context) {
	for ci := range d.Corridors {
		for _, run := range straightRuns(d.Corridors[ci].Points, 6) {
			if !d.rng.Chance(0.5) {
				continue
			}
			stepX := run[1].X - run[0].X
			stepY := run[1].Y - run[0].Y

			for i := 3; i < len(run)-1; i += 3 {
				p := run[i]
				roll := d.rng.Float64()
				switch {
				case roll < 0.4:
					d.carveAlcove(p, stepX, stepY)
				case roll < 0.7:
					d.carveRestArea(p)
				default:
					d.decorateTile(p)
				}
			}
		}
	}
}

// straightRuns returns the maximal straight segments of minLen or more tiles
// within a carve path. Splice jumps break segments because consecutive points
// stop being grid neighbors.
func straightRuns(points []Point, minLen int) [][]Point {
	var runs [][]Point
	if len(points) < 2 {
		return runs
	}

	start := 0
	dirX := points[1].X - points[0].X
	dirY := points[1].Y - points[0].Y
	for i := 1; i < len(points); i++ {
		dx := points[i].X - points[i-1].X
		dy := points[i].Y - points[i-1].Y
		straight := dx == dirX && dy == dirY && isUnitStep(dx, dy)
		if !straight {
			if i-start >= minLen && isUnitStep(dirX, dirY) {
				runs = append(runs, points[start:i])
			}
			start = i - 1
			dirX, dirY = dx, dy
		}
	}
	if len(points)-start >= minLen && isUnitStep(dirX, dirY) {
		runs = append(runs, points[start:])
	}
	return runs
}

func isUnitStep(dx, dy int) bool {
	return (dx == 0) != (dy == 0) && dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}

// carveAlcove carves a single tile recess perpendicular to the run.
func (d *Dungeon) carveAlcove(p Point, stepX, stepY int) {
	// Perpendicular direction, random side.
	px, py := stepY, stepX
	if d.rng.Chance(0.5) {
		px, py = -px, -py
	}
	x, y := p.X+px, p.Y+py
	if d.nearRoomRing(x, y) {
		return
	}
	d.carveFloor(x, y)
}

// carveRestArea widens the corridor into a 2x2 or 3x3 open pocket. A 3x3
// pocket occasionally gains a pillar on a side tile; the corridor line itself
// always stays clear.
func (d *Dungeon) carveRestArea(p Point) {
	size := 2
	if d.rng.Chance(0.5) {
		size = 3
	}

	minX := p.X - size/2
	minY := p.Y - size/2
	cornerCarved := false
	for y := minY; y < minY+size; y++ {
		for x := minX; x < minX+size; x++ {
			if d.nearRoomRing(x, y) {
				continue
			}
			carved := d.carveFloor(x, y)
			if x == minX && y == minY {
				cornerCarved = carved
			}
		}
	}

	// A pillar may only occupy a freshly carved corner of the pocket, so it
	// can never block the through-line or an older corridor.
	if size == 3 && cornerCarved && d.rng.Chance(0.3) {
		if t := d.tileAt(minX, minY); t != nil {
			t.Decoration = DecorPillar
		}
	}
}

// decorateTile drops cosmetic debris or a trap onto the corridor tile.
func (d *Dungeon) decorateTile(p Point) {
	t := d.tileAt(p.X, p.Y)
	if t == nil || t.Type != TileFloor || t.Decoration != DecorNone {
		return
	}
	if d.rng.Chance(0.5) {
		t.Decoration = DecorDebris
	} else {
		t.Decoration = DecorTrap
	}
}
