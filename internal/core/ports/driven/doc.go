// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - RasterReader: Opens and decodes a raster into a Coverage
//   - ExtractionEngine: Turns a Coverage into footprint geometries
//   - GeometryWriter: Serialises one geometry to one destination
//   - WriterRegistry: Selects the GeometryWriter for an output format
//   - VectorDatasetStore: Creates transactional feature datasets
//   - ParameterSource: Supplies loosely-typed extraction parameters
//
// # Import Rules
//
//   - Can Import: domain package, the go-geom geometry model
//   - Cannot Import: Any adapter package
package driven
