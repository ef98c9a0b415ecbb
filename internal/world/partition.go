package world

import "context"

// bspLeaf is a node in the binary space partition tree. Leaves are candidate
// room sites; the tree structure guarantees sibling rectangles never overlap.
type bspLeaf struct {
	x, y          int
	width, height int
	left, right   *bspLeaf
}

func (n *bspLeaf) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// partitionRooms splits the grid interior into leaves, retains a shuffled cap
// of them, and carves one room per retained leaf.
func (d *Dungeon) partitionRooms(ctx context.Context) {
	root := &bspLeaf{
		x:      borderSize,
		y:      borderSize,
		width:  d.Width - 2*borderSize,
		height: d.Height - 2*borderSize,
	}
	if root.width <= 0 || root.height <= 0 {
		d.report.warnf("grid %dx%d too small to partition", d.Width, d.Height)
		return
	}

	d.splitLeaf(root, 0)

	var leaves []*bspLeaf
	collectLeaves(root, &leaves)

	d.rng.Shuffle(len(leaves), func(i, j int) {
		leaves[i], leaves[j] = leaves[j], leaves[i]
	})
	if len(leaves) > d.cfg.MaxRooms {
		leaves = leaves[:d.cfg.MaxRooms]
	}

	for _, leaf := range leaves {
		if room, ok := d.carveLeafRoom(leaf); ok {
			d.Rooms = append(d.Rooms, room)
		}
	}

	d.log.Debug("partitioned rooms", "leaves", len(leaves), "rooms", len(d.Rooms))
}

// splitLeaf recursively splits a node. Splitting stops at the maximum depth
// or when either dimension can no longer hold two minimum-size rooms.
func (d *Dungeon) splitLeaf(n *bspLeaf, depth int) {
	if depth >= d.cfg.MaxDepth {
		return
	}
	if n.width <= 2*d.cfg.MinRoomSize || n.height <= 2*d.cfg.MinRoomSize {
		return
	}

	// Random split axis, forced perpendicular to the long axis when the leaf
	// is clearly elongated.
	vertical := d.rng.Chance(0.5)
	aspect := float64(n.width) / float64(n.height)
	if aspect > 1.25 {
		vertical = true
	} else if 1/aspect > 1.25 {
		vertical = false
	}

	// A child must hold a minimum room plus one tile of margin on each side.
	minChild := d.cfg.MinRoomSize + 2

	if vertical {
		if n.width-minChild < minChild {
			return
		}
		pos := d.rng.IntN(minChild, n.width-minChild+1)
		n.left = &bspLeaf{x: n.x, y: n.y, width: pos, height: n.height}
		n.right = &bspLeaf{x: n.x + pos, y: n.y, width: n.width - pos, height: n.height}
	} else {
		if n.height-minChild < minChild {
			return
		}
		pos := d.rng.IntN(minChild, n.height-minChild+1)
		n.left = &bspLeaf{x: n.x, y: n.y, width: n.width, height: pos}
		n.right = &bspLeaf{x: n.x, y: n.y + pos, width: n.width, height: n.height - pos}
	}

	d.splitLeaf(n.left, depth+1)
	d.splitLeaf(n.right, depth+1)
}

func collectLeaves(n *bspLeaf, out *[]*bspLeaf) {
	if n == nil {
		return
	}
	if n.isLeaf() {
		*out = append(*out, n)
		return
	}
	collectLeaves(n.left, out)
	collectLeaves(n.right, out)
}

// carveLeafRoom carves a room centered in the leaf. Width and height are
// drawn from the top 30% of the leaf's usable span, clamped to the global
// room size bounds.
func (d *Dungeon) carveLeafRoom(leaf *bspLeaf) (Room, bool) {
	usableW := leaf.width - 2
	usableH := leaf.height - 2
	if usableW < d.cfg.MinRoomSize || usableH < d.cfg.MinRoomSize {
		return Room{}, false
	}

	width := d.rollRoomSpan(usableW)
	height := d.rollRoomSpan(usableH)

	room := Room{
		X:      leaf.x + (leaf.width-width)/2,
		Y:      leaf.y + (leaf.height-height)/2,
		Width:  width,
		Height: height,
	}

	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			d.carveFloor(x, y)
		}
	}
	return room, true
}

// rollRoomSpan draws a dimension from [0.7*usable, usable], clamped to the
// configured room size bounds.
func (d *Dungeon) rollRoomSpan(usable int) int {
	low := int(float64(usable) * 0.7)
	if low < d.cfg.MinRoomSize {
		low = d.cfg.MinRoomSize
	}
	span := d.rng.IntN(low, usable+1)
	if span > d.cfg.MaxRoomSize {
		span = d.cfg.MaxRoomSize
	}
	return span
}
