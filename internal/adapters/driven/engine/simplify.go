package engine

import (
	"math"

	"github.com/twpayne/go-geom"

	"github.com/custodia-labs/footprint/internal/core/domain"
)

// removeCollinear drops every vertex lying on a straight line between its
// neighbours. Pixel rings always keep at least their four corners.
func removeCollinear(pts []point) []point {
	n := len(pts)
	out := make([]point, 0, n)
	for i := 0; i < n; i++ {
		prev, cur, next := pts[(i+n-1)%n], pts[i], pts[(i+1)%n]
		cross := (cur.x-prev.x)*(next.y-cur.y) - (cur.y-prev.y)*(next.x-cur.x)
		if cross == 0 {
			continue
		}
		out = append(out, cur)
	}
	if len(out) < 3 {
		return pts
	}
	return out
}

// toWorld maps an unclosed pixel ring through t and closes it.
func toWorld(pts []point, t domain.GeoTransform) []geom.Coord {
	coords := make([]geom.Coord, 0, len(pts)+1)
	for _, p := range pts {
		x, y := t.Apply(float64(p.x), float64(p.y))
		coords = append(coords, geom.Coord{x, y})
	}
	return append(coords, geom.Coord{coords[0][0], coords[0][1]})
}

// simplifyRing applies Douglas-Peucker to a closed ring. It returns nil when
// the ring collapses below three distinct vertices.
func simplifyRing(closed []geom.Coord, tolerance float64) []geom.Coord {
	open := closed[:len(closed)-1]
	if len(open) < 4 {
		return cloneCoords(closed)
	}

	// Split the ring at the vertex farthest from the first one.
	far, farDist := 0, -1.0
	for i, c := range open {
		if d := math.Hypot(c[0]-open[0][0], c[1]-open[0][1]); d > farDist {
			far, farDist = i, d
		}
	}
	if far == 0 {
		return nil
	}

	head := douglasPeucker(open[:far+1], tolerance)
	tail := make([]geom.Coord, 0, len(open)-far+1)
	tail = append(tail, open[far:]...)
	tail = append(tail, open[0])
	tail = douglasPeucker(tail, tolerance)

	out := make([]geom.Coord, 0, len(head)+len(tail))
	out = append(out, head[:len(head)-1]...)
	out = append(out, tail...)
	if len(out) < 4 {
		return nil
	}
	return cloneCoords(out)
}

// douglasPeucker simplifies an open polyline, keeping both end points.
func douglasPeucker(line []geom.Coord, tolerance float64) []geom.Coord {
	if len(line) < 3 {
		return line
	}

	keep := make([]bool, len(line))
	keep[0], keep[len(line)-1] = true, true

	type span struct{ from, to int }
	stack := []span{{0, len(line) - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		idx, dist := -1, tolerance
		for i := s.from + 1; i < s.to; i++ {
			if d := segmentDistance(line[i], line[s.from], line[s.to]); d > dist {
				idx, dist = i, d
			}
		}
		if idx < 0 {
			continue
		}
		keep[idx] = true
		stack = append(stack, span{s.from, idx}, span{idx, s.to})
	}

	out := make([]geom.Coord, 0, len(line))
	for i, k := range keep {
		if k {
			out = append(out, line[i])
		}
	}
	return out
}

// segmentDistance returns the distance from p to the segment a-b.
func segmentDistance(p, a, b geom.Coord) float64 {
	dx, dy := b[0]-a[0], b[1]-a[1]
	if dx == 0 && dy == 0 {
		return math.Hypot(p[0]-a[0], p[1]-a[1])
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / (dx*dx + dy*dy)
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p[0]-(a[0]+t*dx), p[1]-(a[1]+t*dy))
}

func cloneCoords(coords []geom.Coord) []geom.Coord {
	out := make([]geom.Coord, len(coords))
	for i, c := range coords {
		out[i] = geom.Coord{c[0], c[1]}
	}
	return out
}
