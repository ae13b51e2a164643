package domain

import (
	"image"
	"math"
)

// GeoTransform maps pixel-corner coordinates to map coordinates:
//
//	X = T[0] + col*T[1] + row*T[2]
//	Y = T[3] + col*T[4] + row*T[5]
type GeoTransform [6]float64

// PixelTransform is the identity mapping into pixel space.
var PixelTransform = GeoTransform{0, 1, 0, 0, 0, 1}

// Apply maps a pixel-space position to map coordinates.
func (t GeoTransform) Apply(col, row float64) (x, y float64) {
	return t[0] + col*t[1] + row*t[2], t[3] + col*t[4] + row*t[5]
}

// PixelSize returns the mean ground size of one pixel.
func (t GeoTransform) PixelSize() float64 {
	sx := math.Hypot(t[1], t[4])
	sy := math.Hypot(t[2], t[5])
	return (sx + sy) / 2
}

// SpatialReference describes a coordinate reference system.
// The zero value means no reference is known.
type SpatialReference struct {
	// EPSG is the EPSG code, or 0 if unknown.
	EPSG int
	// WKT is the OGC WKT definition, possibly empty.
	WKT string
}

// IsZero reports whether no spatial reference is known.
func (s SpatialReference) IsZero() bool {
	return s.EPSG == 0 && s.WKT == ""
}

// Coverage is a decoded raster paired with its georeferencing.
type Coverage struct {
	// Path is the source file path.
	Path string
	// Key identifies this exact revision of the source for caching.
	Key string
	// Image holds the decoded samples.
	Image image.Image
	// Transform maps pixel corners to map coordinates.
	Transform GeoTransform
	// SpatialReference is the coverage CRS.
	SpatialReference SpatialReference
}

// Width returns the raster width in pixels.
func (c *Coverage) Width() int {
	return c.Image.Bounds().Dx()
}

// Height returns the raster height in pixels.
func (c *Coverage) Height() int {
	return c.Image.Bounds().Dy()
}
