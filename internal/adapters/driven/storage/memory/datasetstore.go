package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/footprint/internal/core/domain"
	"github.com/custodia-labs/footprint/internal/core/ports/driven"
)

// Ensure DatasetStore implements the interface.
var _ driven.VectorDatasetStore = (*DatasetStore)(nil)

// Failures injects errors into dataset operations. A nil field means the
// operation succeeds.
type Failures struct {
	Create   error
	Begin    error
	Insert   error
	Commit   error
	Rollback error
	Close    error
	Remove   error
}

// StoredDataset is a committed in-memory dataset.
type StoredDataset struct {
	Schema           domain.FeatureSchema
	SpatialReference domain.SpatialReference
	Features         []domain.Feature
}

// DatasetStore is an in-memory implementation of driven.VectorDatasetStore.
// Committing a dataset replaces any earlier one at the same path; creating
// a dataset at a path that is still open fails with domain.ErrAlreadyExists.
// A created path exists, committed or not, until it is removed.
type DatasetStore struct {
	mu       sync.RWMutex
	datasets map[string]StoredDataset
	open     map[string]bool
	created  map[string]bool
	failures Failures
}

// NewDatasetStore creates a new in-memory dataset store.
func NewDatasetStore() *DatasetStore {
	return &DatasetStore{
		datasets: make(map[string]StoredDataset),
		open:     make(map[string]bool),
		created:  make(map[string]bool),
	}
}

// SetFailures configures the errors returned by subsequent operations.
func (s *DatasetStore) SetFailures(f Failures) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = f
}

func (s *DatasetStore) failure(pick func(Failures) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(s.failures)
}

// CreateDataset opens a new dataset at path.
func (s *DatasetStore) CreateDataset(
	_ context.Context,
	schema domain.FeatureSchema,
	path string,
	srs domain.SpatialReference,
) (driven.Dataset, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failures.Create != nil {
		return nil, s.failures.Create
	}
	if s.open[path] {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyExists, path)
	}
	s.open[path] = true
	s.created[path] = true

	return &dataset{store: s, path: path, schema: schema, srs: srs}, nil
}

// Remove deletes the dataset at path.
func (s *DatasetStore) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failures.Remove != nil {
		return s.failures.Remove
	}
	if s.open[path] {
		return fmt.Errorf("%w: %s is still open", domain.ErrInvalidInput, path)
	}
	delete(s.created, path)
	delete(s.datasets, path)
	return nil
}

// Exists reports whether a dataset was created at path and not removed.
func (s *DatasetStore) Exists(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.created[path]
}

// Dataset returns the committed dataset at path.
func (s *DatasetStore) Dataset(path string) (StoredDataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.datasets[path]
	return ds, ok
}

// Paths lists the paths of committed datasets in sorted order.
func (s *DatasetStore) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paths := make([]string, 0, len(s.datasets))
	for p := range s.datasets {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// OpenCount returns the number of datasets not yet closed.
func (s *DatasetStore) OpenCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.open)
}

type dataset struct {
	store  *DatasetStore
	path   string
	schema domain.FeatureSchema
	srs    domain.SpatialReference
	closed bool
}

func (d *dataset) Begin(_ context.Context) (driven.Transaction, error) {
	if d.closed {
		return nil, domain.ErrClosed
	}
	if err := d.store.failure(func(f Failures) error { return f.Begin }); err != nil {
		return nil, err
	}
	return &transaction{dataset: d}, nil
}

func (d *dataset) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	d.store.mu.Lock()
	delete(d.store.open, d.path)
	err := d.store.failures.Close
	d.store.mu.Unlock()
	return err
}

type transaction struct {
	dataset  *dataset
	pending  []domain.Feature
	finished bool
}

func (t *transaction) Insert(_ context.Context, feature domain.Feature) error {
	if t.finished {
		return domain.ErrClosed
	}
	if err := t.dataset.store.failure(func(f Failures) error { return f.Insert }); err != nil {
		return err
	}
	t.pending = append(t.pending, feature)
	return nil
}

func (t *transaction) Commit() error {
	if t.finished {
		return domain.ErrClosed
	}
	s := t.dataset.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failures.Commit != nil {
		return s.failures.Commit
	}
	features := make([]domain.Feature, len(t.pending))
	copy(features, t.pending)
	s.datasets[t.dataset.path] = StoredDataset{
		Schema:           t.dataset.schema,
		SpatialReference: t.dataset.srs,
		Features:         features,
	}
	t.finished = true
	return nil
}

func (t *transaction) Rollback() error {
	if t.finished {
		return nil
	}
	t.finished = true
	t.pending = nil
	return t.dataset.store.failure(func(f Failures) error { return f.Rollback })
}

func (t *transaction) Close() error {
	if t.finished {
		return nil
	}
	return t.Rollback()
}
