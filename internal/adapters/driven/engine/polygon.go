package engine

import "sort"

// ring is a traced boundary with its cached bounds and signed area.
type ring struct {
	pts   []point
	area2 int
	min   point
	max   point
}

func newRing(pts []point) ring {
	r := ring{pts: pts, area2: signedArea2(pts), min: pts[0], max: pts[0]}
	for _, p := range pts[1:] {
		r.min.x = min(r.min.x, p.x)
		r.min.y = min(r.min.y, p.y)
		r.max.x = max(r.max.x, p.x)
		r.max.y = max(r.max.y, p.y)
	}
	return r
}

// contains reports whether (px, py) lies inside r by ray casting.
// Callers only probe pixel centres, which never fall on a ring edge.
func (r ring) contains(px, py float64) bool {
	if px < float64(r.min.x) || px > float64(r.max.x) || py < float64(r.min.y) || py > float64(r.max.y) {
		return false
	}
	inside := false
	n := len(r.pts)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := float64(r.pts[i].x), float64(r.pts[i].y)
		xj, yj := float64(r.pts[j].x), float64(r.pts[j].y)
		if (yi > py) != (yj > py) && px < (xj-xi)*(py-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// probe returns the centre of the background pixel to the left of the
// first edge of a hole ring.
func (r ring) probe() (float64, float64) {
	a, b := r.pts[0], r.pts[1]
	dx, dy := b.x-a.x, b.y-a.y
	mx := float64(a.x+b.x) / 2
	my := float64(a.y+b.y) / 2
	return mx + 0.5*float64(dy), my - 0.5*float64(dx)
}

// pixelPolygon is a shell with its holes, in pixel-corner coordinates.
type pixelPolygon struct {
	shell []point
	holes [][]point
	// area is the covered pixel count.
	area int
}

// assemble groups traced rings into polygons. With split set, self-touching
// rings are first separated into simple rings.
func assemble(traced [][]point, split bool) []pixelPolygon {
	var shells, holes []ring
	for _, pts := range traced {
		parts := [][]point{pts}
		if split {
			parts = splitRing(pts)
		}
		for _, part := range parts {
			if len(part) < 4 {
				continue
			}
			r := newRing(part)
			switch {
			case r.area2 > 0:
				shells = append(shells, r)
			case r.area2 < 0:
				holes = append(holes, r)
			}
		}
	}

	polys := make([]pixelPolygon, len(shells))
	for i, s := range shells {
		polys[i] = pixelPolygon{shell: s.pts, area: s.area2 / 2}
	}

	for _, h := range holes {
		px, py := h.probe()
		best := -1
		for i, s := range shells {
			if !s.contains(px, py) {
				continue
			}
			if best < 0 || s.area2 < shells[best].area2 {
				best = i
			}
		}
		if best < 0 {
			continue
		}
		polys[best].holes = append(polys[best].holes, h.pts)
		polys[best].area += h.area2 / 2
	}
	return polys
}

// filterByArea drops polygons covering fewer than threshold pixels and
// orders the rest by descending area.
func filterByArea(polys []pixelPolygon, threshold float64) []pixelPolygon {
	kept := polys[:0]
	for _, p := range polys {
		if float64(p.area) >= threshold {
			kept = append(kept, p)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].area > kept[j].area
	})
	return kept
}
