// Package engine implements driven.ExtractionEngine by vectorising the
// valid-data mask of a raster.
//
// A pixel is valid when its intensity lies outside every exclusion range and
// it is not transparent. The boundary between valid and background pixels is
// traced along pixel edges into closed rings, which are then grouped into
// polygons with holes, filtered by area and mapped to world coordinates:
//
//	mask -> trace -> split (forceValid) -> assemble -> filter -> simplify
//
// Diagonally adjacent valid pixels are not connected. With forceValid, rings
// that touch themselves at such a corner are split into simple rings, so the
// precise footprint is always a valid multipolygon.
package engine
