// Package gpkg implements driven.VectorDatasetStore on OGC GeoPackage 1.3
// files using the pure-Go modernc.org/sqlite driver.
//
// Each dataset is a new GeoPackage holding one feature table. Geometries
// are stored as GeoPackage binary blobs: the "GP" header with an XY
// envelope, followed by little-endian WKB. The table extent recorded in
// gpkg_contents is updated on every commit.
package gpkg
