package driven

import (
	"context"

	"github.com/custodia-labs/footprint/internal/core/domain"
)

// RasterReader opens raster files.
type RasterReader interface {
	// Open acquires the raster at path. The caller must Dispose the
	// returned resource once it is no longer needed.
	Open(ctx context.Context, path string) (RasterResource, error)
}

// RasterResource is an open raster.
type RasterResource interface {
	// Read decodes the raster samples and its georeferencing.
	Read(ctx context.Context) (*domain.Coverage, error)

	// Dispose releases the underlying file handle. It is safe to call twice.
	Dispose() error
}
