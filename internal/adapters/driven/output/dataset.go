package output

import (
	"context"
	"fmt"

	"github.com/custodia-labs/footprint/internal/core/domain"
	"github.com/custodia-labs/footprint/internal/core/ports/driven"
)

// Ensure DatasetWriter implements the interface.
var _ driven.GeometryWriter = (*DatasetWriter)(nil)

// FootprintSchema is the feature type of dataset outputs: one multipolygon
// and an integer category, always 0.
var FootprintSchema = domain.FeatureSchema{
	Name:           "footprint",
	GeometryColumn: "geom",
	GeometryType:   "MULTIPOLYGON",
	Attributes: []domain.Attribute{
		{Name: "cat", Type: domain.AttributeInteger, Default: int64(0)},
	},
}

// DatasetWriter writes a geometry as the single feature of a new dataset.
type DatasetWriter struct {
	store driven.VectorDatasetStore
}

// NewDatasetWriter creates a dataset writer backed by store.
func NewDatasetWriter(store driven.VectorDatasetStore) *DatasetWriter {
	return &DatasetWriter{store: store}
}

// Format returns domain.FormatGPKG.
func (w *DatasetWriter) Format() domain.OutputFormat {
	return domain.FormatGPKG
}

// Extension returns ".gpkg".
func (w *DatasetWriter) Extension() string {
	return domain.FormatGPKG.Extension()
}

// Write creates a dataset at req.Path holding one feature.
//
// A failed insert or commit rolls the transaction back, removes the dataset
// and returns the failure. Errors from rolling back, closing handles or
// removing the dataset never fail the write; they are returned as warnings.
func (w *DatasetWriter) Write(ctx context.Context, req driven.WriteRequest) (result driven.WriteResult, err error) {
	if err := checkGeometry(req.Geometry); err != nil {
		return driven.WriteResult{}, err
	}
	if req.Path == "" {
		return driven.WriteResult{}, fmt.Errorf("%w: dataset output needs a path", domain.ErrInvalidInput)
	}

	ds, err := w.store.CreateDataset(ctx, FootprintSchema, req.Path, req.SpatialReference)
	if err != nil {
		return driven.WriteResult{}, fmt.Errorf("creating dataset: %w", err)
	}
	defer func() {
		if closeErr := ds.Close(); closeErr != nil {
			result.Warnings = append(result.Warnings, fmt.Errorf("closing dataset: %w", closeErr))
		}
		if err == nil {
			return
		}
		// A failed write leaves no dataset behind.
		if rmErr := w.store.Remove(req.Path); rmErr != nil {
			result.Warnings = append(result.Warnings, fmt.Errorf("removing dataset: %w", rmErr))
		}
	}()

	tx, err := ds.Begin(ctx)
	if err != nil {
		return driven.WriteResult{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if closeErr := tx.Close(); closeErr != nil {
			result.Warnings = append(result.Warnings, fmt.Errorf("closing transaction: %w", closeErr))
		}
	}()

	feature := domain.Feature{
		Geometry:   req.Geometry,
		Attributes: map[string]any{"cat": int64(0)},
	}
	if err := tx.Insert(ctx, feature); err != nil {
		result.Warnings = append(result.Warnings, rollback(tx)...)
		return result, fmt.Errorf("inserting feature: %w", err)
	}
	// An uncommitted feature is lost data, so a failed commit fails the write.
	if err := tx.Commit(); err != nil {
		result.Warnings = append(result.Warnings, rollback(tx)...)
		return result, fmt.Errorf("committing: %w", err)
	}
	return result, nil
}

func rollback(tx driven.Transaction) []error {
	if err := tx.Rollback(); err != nil {
		return []error{fmt.Errorf("rolling back: %w", err)}
	}
	return nil
}
