package driven

import (
	"context"

	"github.com/custodia-labs/footprint/internal/core/domain"
)

// VectorDatasetStore creates feature datasets on disk.
type VectorDatasetStore interface {
	// CreateDataset creates a new dataset at path holding one feature type.
	// A zero spatial reference leaves the geometry column undefined.
	// Returns domain.ErrAlreadyExists if path already exists.
	CreateDataset(
		ctx context.Context,
		schema domain.FeatureSchema,
		path string,
		srs domain.SpatialReference,
	) (Dataset, error)

	// Remove deletes the dataset at path. The dataset must be closed.
	// Removing a path that does not exist is not an error.
	Remove(path string) error
}

// Dataset is an open feature dataset.
type Dataset interface {
	// Begin opens a write transaction.
	Begin(ctx context.Context) (Transaction, error)

	// Close disposes the dataset handle.
	Close() error
}

// Transaction is a unit of feature writes.
type Transaction interface {
	// Insert adds one feature.
	Insert(ctx context.Context, feature domain.Feature) error

	// Commit makes inserted features durable.
	Commit() error

	// Rollback discards inserted features.
	Rollback() error

	// Close releases the transaction, rolling back if still open.
	Close() error
}
