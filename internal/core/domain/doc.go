// Package domain defines the core entities of the footprint extractor.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types:
//
//   - ExtractionConfig: A fully-resolved set of extraction tunables
//   - Coverage: A decoded raster with its georeferencing
//   - Footprint: One extracted geometry (precise or simplified)
//   - OutputFormat: The closed set of geometry output variants
//   - ProcessingOutcome: The report of a single run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, the go-geom geometry model
//   - Cannot Import: Any internal/ package, any other external dependency
package domain
