package world

import (
	"context"
	"sort"
)

// Corridor is an ordered carve path between two rooms. Corridors do not own
// tiles; the points describe how the grid was carved, including stretches
// spliced onto earlier corridors.
type Corridor struct {
	From, To int // room indices
	Points   []Point
}

// routeCorridors connects every room with a greedy minimum-spanning pass over
// Manhattan-sorted room pairs, then attempts a small number of extra loop
// edges between already-connected pairs.
func (d *Dungeon) routeCorridors(ctx context.Context) {
	if len(d.Rooms) < 2 {
		if len(d.Rooms) == 1 {
			d.Rooms[0].Connected = true
		}
		return
	}

	type roomPair struct {
		a, b, dist int
	}
	var pairs []roomPair
	for i := 0; i < len(d.Rooms); i++ {
		ax, ay := d.Rooms[i].Center()
		for j := i + 1; j < len(d.Rooms); j++ {
			bx, by := d.Rooms[j].Center()
			pairs = append(pairs, roomPair{a: i, b: j, dist: manhattan(ax, ay, bx, by)})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].dist != pairs[j].dist {
			return pairs[i].dist < pairs[j].dist
		}
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})

	// Spanning pass: always extend the connected set by the closest pair
	// with exactly one connected endpoint.
	d.Rooms[0].Connected = true
	connected := 1
	for connected < len(d.Rooms) {
		best := -1
		for k := range pairs {
			if d.Rooms[pairs[k].a].Connected != d.Rooms[pairs[k].b].Connected {
				best = k
				break
			}
		}
		if best < 0 {
			break
		}
		p := pairs[best]
		d.carveCorridorBetween(p.a, p.b)
		d.Rooms[p.a].Connected = true
		d.Rooms[p.b].Connected = true
		connected++
	}

	// Loop pass: a fixed number of attempts, not guaranteed edges. Pairs
	// that already share a direct corridor are not candidates, so small
	// dungeons often gain no loops at all.
	attempts := len(d.Rooms) / 10
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		var candidates []roomPair
		for _, p := range pairs {
			if d.Rooms[p.a].Connected && d.Rooms[p.b].Connected && !d.hasCorridor(p.a, p.b) {
				candidates = append(candidates, p)
			}
		}
		if len(candidates) == 0 {
			break
		}
		p := candidates[d.rng.IntN(0, len(candidates))]
		d.carveCorridorBetween(p.a, p.b)
	}

	d.log.Debug("routed corridors", "corridors", len(d.Corridors))
}

// hasCorridor returns true if a corridor directly links the two rooms.
func (d *Dungeon) hasCorridor(a, b int) bool {
	for i := range d.Corridors {
		c := &d.Corridors[i]
		if (c.From == a && c.To == b) || (c.From == b && c.To == a) {
			return true
		}
	}
	return false
}

// carveCorridorBetween carves one corridor linking two rooms. Up to three
// attempts pick door candidates with escalating strategies and try an
// L-shaped carve; when all fail, an unconditional direct L between the room
// centers guarantees the link.
func (d *Dungeon) carveCorridorBetween(a, b int) {
	for attempt := 0; attempt < 3; attempt++ {
		start, end, ok := d.doorCandidatePair(a, b, attempt)
		if !ok {
			continue
		}
		if points, ok := d.tryLPath(start, end); ok {
			d.Corridors = append(d.Corridors, Corridor{From: a, To: b, Points: points})
			return
		}
	}

	ax, ay := d.Rooms[a].Center()
	bx, by := d.Rooms[b].Center()
	points := d.carveDirectL(Point{ax, ay}, Point{bx, by})
	d.Corridors = append(d.Corridors, Corridor{From: a, To: b, Points: points})
}

// doorCandidatePair picks exit points just outside the facing walls of the
// two rooms. Strategy escalates per attempt: aligned-wall, offset-wall,
// center-wall.
func (d *Dungeon) doorCandidatePair(a, b, strategy int) (Point, Point, bool) {
	ra, rb := d.Rooms[a], d.Rooms[b]
	acx, acy := ra.Center()
	bcx, bcy := rb.Center()

	dx := bcx - acx
	dy := bcy - acy
	abs := func(v int) int {
		if v < 0 {
			return -v
		}
		return v
	}

	if abs(dx) >= abs(dy) {
		// Horizontal approach: exit through the walls facing each other.
		var exitA, exitB int
		if dx >= 0 {
			exitA = ra.X + ra.Width
			exitB = rb.X - 1
		} else {
			exitA = ra.X - 1
			exitB = rb.X + rb.Width
		}

		switch strategy {
		case 0: // aligned-wall: shared row inside both rooms' vertical span
			lo := max(ra.Y, rb.Y)
			hi := min(ra.Y+ra.Height, rb.Y+rb.Height) - 1
			if lo > hi {
				return Point{}, Point{}, false
			}
			y := d.rng.IntN(lo, hi+1)
			return Point{exitA, y}, Point{exitB, y}, true
		case 1: // offset-wall: jittered around each center
			ya := clamp(acy+d.rng.IntN(-2, 3), ra.Y, ra.Y+ra.Height-1)
			yb := clamp(bcy+d.rng.IntN(-2, 3), rb.Y, rb.Y+rb.Height-1)
			return Point{exitA, ya}, Point{exitB, yb}, true
		default: // center-wall
			return Point{exitA, acy}, Point{exitB, bcy}, true
		}
	}

	// Vertical approach.
	var exitA, exitB int
	if dy >= 0 {
		exitA = ra.Y + ra.Height
		exitB = rb.Y - 1
	} else {
		exitA = ra.Y - 1
		exitB = rb.Y + rb.Height
	}

	switch strategy {
	case 0:
		lo := max(ra.X, rb.X)
		hi := min(ra.X+ra.Width, rb.X+rb.Width) - 1
		if lo > hi {
			return Point{}, Point{}, false
		}
		x := d.rng.IntN(lo, hi+1)
		return Point{x, exitA}, Point{x, exitB}, true
	case 1:
		xa := clamp(acx+d.rng.IntN(-2, 3), ra.X, ra.X+ra.Width-1)
		xb := clamp(bcx+d.rng.IntN(-2, 3), rb.X, rb.X+rb.Width-1)
		return Point{xa, exitA}, Point{xb, exitB}, true
	default:
		return Point{acx, exitA}, Point{bcx, exitB}, true
	}
}

// tryLPath attempts an L-shaped carve between two points, trying both
// orientations. An orientation is rejected when a straight run would travel
// alongside an existing room wall or corridor.
func (d *Dungeon) tryLPath(start, end Point) ([]Point, bool) {
	horizontalFirst := d.rng.Chance(0.5)

	for try := 0; try < 2; try++ {
		var corner Point
		if horizontalFirst {
			corner = Point{end.X, start.Y}
		} else {
			corner = Point{start.X, end.Y}
		}

		run1 := linePoints(start, corner)
		run2 := linePoints(corner, end)
		if len(run2) > 0 {
			run2 = run2[1:] // drop the duplicated corner
		}

		if d.runsAlongside(run1) || d.runsAlongside(run2) {
			horizontalFirst = !horizontalFirst
			continue
		}

		path := append(append([]Point{}, run1...), run2...)
		return d.carvePathWithSplice(path, end), true
	}
	return nil, false
}

// runsAlongside reports whether a straight run would travel parallel and
// within one tile of existing carved floor or a room's wall ring for two or
// more consecutive tiles. Run endpoints are exempt: every corridor begins and
// ends against a room wall.
func (d *Dungeon) runsAlongside(run []Point) bool {
	if len(run) < 4 {
		return false
	}
	stepX := run[1].X - run[0].X
	stepY := run[1].Y - run[0].Y
	// Perpendicular offset: swap the axes.
	px, py := stepY, stepX

	for _, side := range []int{1, -1} {
		consecutive := 0
		for i := 1; i < len(run)-1; i++ {
			nx := run[i].X + px*side
			ny := run[i].Y + py*side
			adjacent := d.isCarved(nx, ny) || d.nearRoomRing(nx, ny)
			if adjacent {
				consecutive++
				if consecutive >= 2 {
					return true
				}
			} else {
				consecutive = 0
			}
		}
	}
	return false
}

// carvePathWithSplice carves a path tile by tile. When the path crosses floor
// that already exists outside any room, the carve stops there and splices: the
// remaining distance is covered by a direct L from the merge point, instead of
// duplicating a parallel corridor.
func (d *Dungeon) carvePathWithSplice(path []Point, target Point) []Point {
	var points []Point
	for i, p := range path {
		if i > 0 && d.isCarved(p.X, p.Y) && d.RoomIndexAt(p.X, p.Y) < 0 {
			// Merge point: corridor already leads onward from here.
			points = append(points, p)
			if p != target {
				points = append(points, d.carveDirectL(p, target)...)
			}
			return points
		}
		d.carveFloor(p.X, p.Y)
		points = append(points, p)
	}
	return points
}

// carveDirectL unconditionally carves an L between two points. Used as the
// routing fallback and after corridor splices; it never fails.
func (d *Dungeon) carveDirectL(from, to Point) []Point {
	var corner Point
	if d.rng.Chance(0.5) {
		corner = Point{to.X, from.Y}
	} else {
		corner = Point{from.X, to.Y}
	}

	run1 := linePoints(from, corner)
	run2 := linePoints(corner, to)
	if len(run2) > 0 {
		run2 = run2[1:]
	}

	var points []Point
	for _, p := range append(append([]Point{}, run1...), run2...) {
		d.carveFloor(p.X, p.Y)
		points = append(points, p)
	}
	return points
}

// linePoints returns the inclusive straight line between two points sharing
// an axis. Points not sharing an axis produce the run along x first.
func linePoints(from, to Point) []Point {
	var points []Point
	x, y := from.X, from.Y

	stepX := sign(to.X - from.X)
	for x != to.X {
		points = append(points, Point{x, y})
		x += stepX
	}
	stepY := sign(to.Y - from.Y)
	for y != to.Y {
		points = append(points, Point{x, y})
		y += stepY
	}
	points = append(points, Point{x, y})
	return points
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
