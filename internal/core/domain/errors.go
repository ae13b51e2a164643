package domain

import "errors"

// Failure kinds recorded in a ProcessingOutcome. Each recorded error wraps
// exactly one of these together with its cause, so callers can classify a
// failure with errors.Is.
var (
	// ErrIO indicates the input raster could not be opened or decoded,
	// or an output file could not be removed or created.
	ErrIO = errors.New("i/o failure")

	// ErrExtraction indicates the extraction engine rejected the input or
	// failed while processing it.
	ErrExtraction = errors.New("extraction failure")

	// ErrWrite indicates serialization or dataset-store failure for a
	// specific output.
	ErrWrite = errors.New("write failure")

	// ErrCleanup indicates a resource release failed after the work was done.
	// Cleanup errors are reported as warnings, never as run errors.
	ErrCleanup = errors.New("cleanup failure")
)

// Domain errors raised by collaborators.
var (
	// ErrNoFootprint indicates the raster holds no valid data above the area threshold.
	ErrNoFootprint = errors.New("no footprint extracted")

	// ErrUnsupportedFormat indicates an unknown output format token.
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// ErrUnsupportedRaster indicates a raster encoding the reader cannot decode.
	ErrUnsupportedRaster = errors.New("unsupported raster format")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyExists indicates a destination already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrClosed indicates a handle was used after being closed.
	ErrClosed = errors.New("closed")
)
