package engine

// point is a pixel-corner position. Pixel (x, y) spans corners (x, y) to (x+1, y+1).
type point struct {
	x, y int
}

// edge is a unit boundary segment with the valid pixel on its right,
// in raster (y-down) orientation.
type edge struct {
	from, to point
}

func (e edge) dir() point {
	return point{e.to.x - e.from.x, e.to.y - e.from.y}
}

// traceRings follows the boundary of the valid region of m and returns
// every closed ring, unclosed (the first vertex is not repeated).
//
// Exterior rings have positive signed area and holes negative, as computed
// by signedArea in raster orientation.
func traceRings(m *mask) [][]point {
	var edges []edge
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if !m.valid(x, y) {
				continue
			}
			if !m.valid(x, y-1) {
				edges = append(edges, edge{point{x, y}, point{x + 1, y}})
			}
			if !m.valid(x+1, y) {
				edges = append(edges, edge{point{x + 1, y}, point{x + 1, y + 1}})
			}
			if !m.valid(x, y+1) {
				edges = append(edges, edge{point{x + 1, y + 1}, point{x, y + 1}})
			}
			if !m.valid(x-1, y) {
				edges = append(edges, edge{point{x, y + 1}, point{x, y}})
			}
		}
	}

	outgoing := make(map[point][]int, len(edges))
	for i, e := range edges {
		outgoing[e.from] = append(outgoing[e.from], i)
	}

	used := make([]bool, len(edges))
	var rings [][]point
	for start := range edges {
		if used[start] {
			continue
		}

		var ring []point
		cur := start
		for {
			used[cur] = true
			ring = append(ring, edges[cur].from)

			next := nextEdge(edges, edges[cur], outgoing[edges[cur].to])
			if next < 0 || next == start || used[next] {
				break
			}
			cur = next
		}
		rings = append(rings, ring)
	}
	return rings
}

// nextEdge picks the continuation of e among candidates. Turning right is
// preferred, then straight, then left, which keeps diagonal neighbours in
// separate rings.
func nextEdge(edges []edge, e edge, candidates []int) int {
	if len(candidates) == 1 {
		return candidates[0]
	}
	d := e.dir()
	right := point{-d.y, d.x}
	left := point{d.y, -d.x}
	for _, want := range []point{right, d, left} {
		for _, c := range candidates {
			if edges[c].dir() == want {
				return c
			}
		}
	}
	return -1
}

// signedArea returns twice the shoelace area of ring, in raster orientation.
func signedArea2(ring []point) int {
	n := len(ring)
	sum := 0
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		sum += a.x*b.y - b.x*a.y
	}
	return sum
}

// splitRing separates a self-touching ring into simple rings at each
// repeated vertex.
func splitRing(ring []point) [][]point {
	var out [][]point
	stack := make([]point, 0, len(ring))
	pos := make(map[point]int, len(ring))

	for _, p := range ring {
		if i, ok := pos[p]; ok {
			loop := make([]point, len(stack)-i)
			copy(loop, stack[i:])
			out = append(out, loop)
			for _, q := range stack[i+1:] {
				delete(pos, q)
			}
			stack = stack[:i+1]
			continue
		}
		pos[p] = len(stack)
		stack = append(stack, p)
	}
	return append(out, stack)
}
