package engine

import (
	"context"
	"image"
)

// noData marks a transparent sample, which is always background.
const noData = -1

// intensityAt returns the single-band intensity of the pixel at (x, y).
// Grayscale images report their native sample value; other colour models
// are reduced to 8-bit luminance.
func intensityAt(img image.Image, x, y int) int {
	switch m := img.(type) {
	case *image.Gray:
		return int(m.GrayAt(x, y).Y)
	case *image.Gray16:
		return int(m.Gray16At(x, y).Y)
	}

	r, g, b, a := img.At(x, y).RGBA()
	if a == 0 {
		return noData
	}
	if a != 0xffff {
		r = r * 0xffff / a
		g = g * 0xffff / a
		b = b * 0xffff / a
	}
	lum := (299*r + 587*g + 114*b) / 1000
	return int(lum >> 8)
}

// grid is a materialised intensity raster.
type grid struct {
	width  int
	height int
	values []int32
}

// size returns the memory held by the grid in bytes.
func (g *grid) size() int64 {
	return int64(len(g.values)) * 4
}

func (g *grid) at(x, y int) int {
	return int(g.values[y*g.width+x])
}

// decodeGrid reads every sample of img into a grid.
func decodeGrid(ctx context.Context, img image.Image) (*grid, error) {
	b := img.Bounds()
	g := &grid{
		width:  b.Dx(),
		height: b.Dy(),
		values: make([]int32, b.Dx()*b.Dy()),
	}
	for y := 0; y < g.height; y++ {
		if y%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		for x := 0; x < g.width; x++ {
			g.values[y*g.width+x] = int32(intensityAt(img, b.Min.X+x, b.Min.Y+y))
		}
	}
	return g, nil
}

// mask is the valid-data bitmap of a raster, indexed from (0, 0).
type mask struct {
	width  int
	height int
	bits   []bool
}

// valid reports whether (x, y) is a valid pixel. Positions outside the
// raster are background.
func (m *mask) valid(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return false
	}
	return m.bits[y*m.width+x]
}

// count returns the number of valid pixels.
func (m *mask) count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// buildMask classifies every sample returned by sample.
func buildMask(ctx context.Context, width, height int, sample func(x, y int) int, background func(int) bool) (*mask, error) {
	m := &mask{width: width, height: height, bits: make([]bool, width*height)}
	for y := 0; y < height; y++ {
		if y%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		for x := 0; x < width; x++ {
			v := sample(x, y)
			m.bits[y*width+x] = v != noData && !background(v)
		}
	}
	return m, nil
}
