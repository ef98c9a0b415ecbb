package world

// AccessGraph maps each room to the neighbor rooms reachable through unlocked
// doors. It is rebuilt fresh for every query context, because accessibility
// depends on which lock is currently treated as impassable; it is never
// cached across pipeline runs.
type AccessGraph struct {
	adjacency [][]int
}

// Neighbors returns the neighbor room indices. Duplicates are tolerated.
func (g *AccessGraph) Neighbors(roomIndex int) []int {
	if roomIndex < 0 || roomIndex >= len(g.adjacency) {
		return nil
	}
	return g.adjacency[roomIndex]
}

func (g *AccessGraph) addEdge(a, b int) {
	g.adjacency[a] = append(g.adjacency[a], b)
	g.adjacency[b] = append(g.adjacency[b], a)
}

// BuildAccessGraph builds the room adjacency graph through unlocked doors.
// The excluded door, if any, is treated as locked, so callers can ask what is
// reachable without passing through a specific lock.
func (d *Dungeon) BuildAccessGraph(exclude *Door) *AccessGraph {
	graph := &AccessGraph{adjacency: make([][]int, len(d.Rooms))}

	for _, door := range d.Doors {
		if door.Locked || door == exclude {
			continue
		}
		for _, roomIndex := range d.roomsReachedFrom(door, exclude) {
			if roomIndex != door.RoomIndex {
				graph.addEdge(door.RoomIndex, roomIndex)
			}
		}
	}
	return graph
}

// roomsReachedFrom walks outward from a door tile across corridor floor and
// other passable doors, collecting every room the walk touches. Locked doors
// and the excluded door stop the walk.
func (d *Dungeon) roomsReachedFrom(door *Door, exclude *Door) []int {
	var reached []int
	roomSeen := make([]bool, len(d.Rooms))
	tileSeen := make(map[Point]bool)

	queue := []Point{{door.X, door.Y}}
	tileSeen[queue[0]] = true

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		for _, delta := range cardinals {
			n := Point{p.X + delta.X, p.Y + delta.Y}
			if tileSeen[n] {
				continue
			}
			t := d.tileAt(n.X, n.Y)
			if t == nil || !t.IsCarved() {
				continue
			}
			tileSeen[n] = true

			if roomIndex := d.RoomIndexAt(n.X, n.Y); roomIndex >= 0 {
				// Record the room but do not walk its interior; every room
				// exit has its own door or corridor junction.
				if !roomSeen[roomIndex] {
					roomSeen[roomIndex] = true
					reached = append(reached, roomIndex)
				}
				continue
			}

			if t.Type == TileDoor {
				if t.Door != nil && (t.Door.Locked || t.Door == exclude) {
					continue
				}
			}
			queue = append(queue, n)
		}
	}
	return reached
}

// FindAccessibleRooms returns, per room index, whether the room is reachable
// from the start room through the graph. The start room itself is reachable.
func (d *Dungeon) FindAccessibleRooms(start int, graph *AccessGraph) []bool {
	reachable := make([]bool, len(d.Rooms))
	if start < 0 || start >= len(d.Rooms) {
		return reachable
	}

	reachable[start] = true
	queue := []int{start}
	for len(queue) > 0 {
		room := queue[0]
		queue = queue[1:]
		for _, n := range graph.Neighbors(room) {
			if !reachable[n] {
				reachable[n] = true
				queue = append(queue, n)
			}
		}
	}
	return reachable
}
