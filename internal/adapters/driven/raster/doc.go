// Package raster provides a file-based implementation of driven.RasterReader.
//
// Rasters are decoded with the registered image codecs: TIFF
// (golang.org/x/image/tiff) and PNG. Georeferencing is read from sidecar
// files next to the raster:
//
//   - World file (.tfw, .tifw, .pgw, .pngw, .wld): the pixel-to-map transform
//   - Projection file (.prj): the CRS definition as WKT; the EPSG code is
//     taken from its top-level AUTHORITY or ID clause
//
// A raster without a world file is placed in pixel space, with the origin
// at the top-left corner and one unit per pixel.
package raster
