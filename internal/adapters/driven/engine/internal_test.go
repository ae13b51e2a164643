package engine

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twpayne/go-geom"
)

func TestIntensityAt(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	gray.SetGray(0, 0, color.Gray{Y: 42})

	gray16 := image.NewGray16(image.Rect(0, 0, 1, 1))
	gray16.SetGray16(0, 0, color.Gray16{Y: 40000})

	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.SetRGBA(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	red := image.NewRGBA(image.Rect(0, 0, 1, 1))
	red.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})

	transparent := image.NewNRGBA(image.Rect(0, 0, 1, 1))

	tests := []struct {
		name string
		img  image.Image
		want int
	}{
		{"gray", gray, 42},
		{"gray16 keeps native depth", gray16, 40000},
		{"white luminance", white, 255},
		{"red luminance", red, 76},
		{"transparent", transparent, noData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, intensityAt(tt.img, 0, 0))
		})
	}
}

func TestTraceRings_SinglePixel(t *testing.T) {
	m := &mask{width: 1, height: 1, bits: []bool{true}}
	rings := traceRings(m)

	assert.Equal(t, [][]point{{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}, rings)
	assert.Equal(t, 2, signedArea2(rings[0]))
}

func TestTraceRings_HoleIsNegative(t *testing.T) {
	bits := make([]bool, 9)
	for i := range bits {
		bits[i] = i != 4
	}
	rings := traceRings(&mask{width: 3, height: 3, bits: bits})

	var areas []int
	for _, r := range rings {
		areas = append(areas, signedArea2(r))
	}
	assert.ElementsMatch(t, []int{18, -2}, areas)
}

func TestSplitRing(t *testing.T) {
	// Figure eight through (1, 1).
	r := []point{{0, 0}, {1, 0}, {1, 1}, {2, 1}, {2, 2}, {1, 2}, {1, 1}, {0, 1}}
	parts := splitRing(r)

	assert.Equal(t, [][]point{
		{{1, 1}, {2, 1}, {2, 2}, {1, 2}},
		{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	}, parts)
}

func TestAssemble_NestedIsland(t *testing.T) {
	// Valid frame, background moat, valid island in the middle.
	const n = 7
	bits := make([]bool, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			frame := x == 0 || y == 0 || x == n-1 || y == n-1
			island := x == 3 && y == 3
			bits[y*n+x] = frame || island
		}
	}

	polys := assemble(traceRings(&mask{width: n, height: n, bits: bits}), true)
	polys = filterByArea(polys, 0)

	assert.Len(t, polys, 2)
	assert.Equal(t, 24, polys[0].area)
	assert.Len(t, polys[0].holes, 1)
	assert.Equal(t, 1, polys[1].area)
	assert.Empty(t, polys[1].holes)
}

func TestRemoveCollinear(t *testing.T) {
	r := []point{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}, {1, 2}, {0, 2}, {0, 1}}
	assert.Equal(t, []point{{0, 0}, {2, 0}, {2, 2}, {0, 2}}, removeCollinear(r))
}

func TestDouglasPeucker(t *testing.T) {
	line := []geom.Coord{{0, 0}, {1, 0.1}, {2, -0.1}, {3, 5}, {4, 6}, {5, 7}, {6, 8.1}, {7, 9}}

	assert.Equal(t, []geom.Coord{{0, 0}, {7, 9}}, douglasPeucker(line, 100))

	zigzag := []geom.Coord{{0, 0}, {1, 1}, {2, 0}, {3, 1}, {4, 0}}
	assert.Equal(t, zigzag, douglasPeucker(zigzag, 0))

	got := douglasPeucker(line, 0.5)
	assert.Equal(t, geom.Coord{0, 0}, got[0])
	assert.Equal(t, geom.Coord{7, 9}, got[len(got)-1])
	assert.Contains(t, got, geom.Coord{2, -0.1})
}

func TestSegmentDistance(t *testing.T) {
	assert.InDelta(t, 1.0, segmentDistance(geom.Coord{1, 1}, geom.Coord{0, 0}, geom.Coord{2, 0}), 1e-12)
	assert.InDelta(t, 5.0, segmentDistance(geom.Coord{5, 4}, geom.Coord{0, 0}, geom.Coord{2, 0}), 1e-12)
	assert.InDelta(t, 5.0, segmentDistance(geom.Coord{3, 4}, geom.Coord{0, 0}, geom.Coord{0, 0}), 1e-12)
}

func TestSimplifyRing_Collapses(t *testing.T) {
	square := []geom.Coord{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	assert.Nil(t, simplifyRing(square, 100))
	assert.Equal(t, square, simplifyRing(square, 0.1))
}
