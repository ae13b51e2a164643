// Package output implements driven.GeometryWriter for each output format
// and a registry mapping formats to writers.
//
// Formats:
//   - wkb: big-endian OGC Well-Known Binary, two dimensions
//   - wkt: OGC Well-Known Text, two dimensions
//   - gpkg: a single-feature dataset created through a driven.VectorDatasetStore
package output
