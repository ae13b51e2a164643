package driven

import (
	"context"

	"github.com/twpayne/go-geom"

	"github.com/custodia-labs/footprint/internal/core/domain"
)

// WriteRequest describes one geometry to persist.
type WriteRequest struct {
	Geometry geom.T

	// Path is the destination file. Writers that can run in memory
	// treat an empty path as "produce but do not persist".
	Path string

	// SpatialReference is propagated to formats that can carry it.
	SpatialReference domain.SpatialReference
}

// WriteResult reports what a successful or failed write left behind.
type WriteResult struct {
	// Bytes is the encoded geometry size, when the format exposes one.
	Bytes int

	// Warnings holds errors raised while releasing handles.
	Warnings []error
}

// GeometryWriter serialises geometries in one output format.
type GeometryWriter interface {
	// Format returns the format this writer produces.
	Format() domain.OutputFormat

	// Extension returns the file extension used for outputs.
	Extension() string

	// Write serialises req.Geometry to req.Path.
	Write(ctx context.Context, req WriteRequest) (WriteResult, error)
}

// WriterRegistry maps output formats to writers.
type WriterRegistry interface {
	// Writer returns the writer for format.
	// Returns domain.ErrUnsupportedFormat for unknown formats.
	Writer(format domain.OutputFormat) (GeometryWriter, error)

	// Formats lists the registered formats.
	Formats() []domain.OutputFormat
}
