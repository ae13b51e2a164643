package gpkg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/footprint/internal/adapters/driven/storage/gpkg/schema"
	"github.com/custodia-labs/footprint/internal/core/domain"
	"github.com/custodia-labs/footprint/internal/core/ports/driven"
)

// GeoPackage file identification.
const (
	applicationID = 0x47504B47 // "GPKG"
	userVersion   = 10300
)

// Reserved spatial reference ids.
const (
	srsUndefinedCartesian = -1
	srsWGS84              = 4326

	// srsCustom is the id given to a WKT definition without an EPSG code.
	srsCustom = 100000
)

// Ensure Store implements the interface.
var _ driven.VectorDatasetStore = (*Store)(nil)

// Store creates GeoPackage datasets. It holds no state; every dataset owns
// its database handle.
type Store struct{}

// NewStore creates a GeoPackage dataset store.
func NewStore() *Store {
	return &Store{}
}

// CreateDataset creates a GeoPackage at path with one feature table.
// On failure no file is left behind.
func (s *Store) CreateDataset(
	ctx context.Context,
	fschema domain.FeatureSchema,
	path string,
	srs domain.SpatialReference,
) (driven.Dataset, error) {
	if err := fschema.Validate(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyExists, path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection keeps transactions and pragmas on the same handle.
	db.SetMaxOpenConns(1)

	ds := &Dataset{db: db, path: path, schema: fschema}
	if err := ds.initialise(ctx, srs); err != nil {
		db.Close()
		_ = os.Remove(path)
		return nil, err
	}
	return ds, nil
}

// Remove deletes the GeoPackage at path and any SQLite journal beside it.
func (s *Store) Remove(path string) error {
	var errs []error
	for _, p := range []string{path, path + "-journal", path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Dataset is an open GeoPackage.
type Dataset struct {
	mu     sync.Mutex
	db     *sql.DB
	path   string
	schema domain.FeatureSchema
	srsID  int32
	extent extent
	active *Transaction
	closed bool
}

// Path returns the GeoPackage file path.
func (d *Dataset) Path() string {
	return d.path
}

// SRSID returns the spatial reference id of the feature table.
func (d *Dataset) SRSID() int32 {
	return d.srsID
}

func (d *Dataset) initialise(ctx context.Context, srs domain.SpatialReference) error {
	pragmas := []string{
		fmt.Sprintf("PRAGMA application_id = %d", applicationID),
		fmt.Sprintf("PRAGMA user_version = %d", userVersion),
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := d.db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("setting %q: %w", p, err)
		}
	}

	if err := applySchema(ctx, d.db, schema.FS); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}

	srsID, err := registerSRS(ctx, d.db, srs)
	if err != nil {
		return fmt.Errorf("registering spatial reference: %w", err)
	}
	d.srsID = srsID

	if _, err := d.db.ExecContext(ctx, createTableSQL(d.schema)); err != nil {
		return fmt.Errorf("creating table %s: %w", d.schema.Name, err)
	}
	if _, err := d.db.ExecContext(ctx,
		`INSERT INTO gpkg_contents (table_name, data_type, identifier, srs_id) VALUES (?, 'features', ?, ?)`,
		d.schema.Name, d.schema.Name, srsID); err != nil {
		return fmt.Errorf("registering contents: %w", err)
	}
	if _, err := d.db.ExecContext(ctx,
		`INSERT INTO gpkg_geometry_columns (table_name, column_name, geometry_type_name, srs_id, z, m)
		 VALUES (?, ?, ?, ?, 0, 0)`,
		d.schema.Name, d.schema.GeometryColumn, strings.ToUpper(d.schema.GeometryType), srsID); err != nil {
		return fmt.Errorf("registering geometry column: %w", err)
	}
	return nil
}

// applySchema executes every .up.sql file of fsys in name order.
func applySchema(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading schema directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("executing %s: %w", name, err)
		}
	}
	return nil
}

// registerSRS returns the srs_id for srs, inserting a definition if needed.
func registerSRS(ctx context.Context, db *sql.DB, srs domain.SpatialReference) (int32, error) {
	switch {
	case srs.IsZero():
		return srsUndefinedCartesian, nil
	case srs.EPSG == srsWGS84:
		return srsWGS84, nil
	}

	id, org, orgID := srs.EPSG, "EPSG", srs.EPSG
	name := fmt.Sprintf("EPSG:%d", srs.EPSG)
	if srs.EPSG == 0 {
		id, org, orgID, name = srsCustom, "NONE", srsCustom, "Custom"
	}
	definition := srs.WKT
	if definition == "" {
		definition = "undefined"
	}

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO gpkg_spatial_ref_sys (srs_name, srs_id, organization, organization_coordsys_id, definition)
		 VALUES (?, ?, ?, ?, ?)`,
		name, id, org, orgID, definition)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}

func createTableSQL(s domain.FeatureSchema) string {
	cols := []string{
		"fid INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL",
		fmt.Sprintf("%s %s", quoteIdent(s.GeometryColumn), strings.ToUpper(s.GeometryType)),
	}
	for _, attr := range s.Attributes {
		col := fmt.Sprintf("%s %s", quoteIdent(attr.Name), attr.Type)
		if attr.Default != nil {
			col += " DEFAULT " + literal(attr.Default)
		}
		cols = append(cols, col)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(s.Name), strings.Join(cols, ", "))
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// literal renders a default value as an SQL literal.
func literal(v any) string {
	switch x := v.(type) {
	case string:
		return "'" + strings.ReplaceAll(x, "'", "''") + "'"
	case bool:
		if x {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Begin opens a write transaction. Only one transaction may be open at a time.
func (d *Dataset) Begin(ctx context.Context) (driven.Transaction, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, domain.ErrClosed
	}
	if d.active != nil {
		return nil, fmt.Errorf("%w: transaction already open", domain.ErrInvalidInput)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	d.active = &Transaction{dataset: d, tx: tx}
	return d.active, nil
}

// Close rolls back any open transaction and closes the database.
// Subsequent calls are no-ops.
func (d *Dataset) Close() error {
	d.mu.Lock()
	active := d.active
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	var errs []error
	if active != nil {
		errs = append(errs, active.Close())
	}
	errs = append(errs, d.db.Close())
	return errors.Join(errs...)
}

func (d *Dataset) release(t *Transaction) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active == t {
		d.active = nil
	}
}

// Transaction is a GeoPackage write transaction.
type Transaction struct {
	dataset *Dataset
	tx      *sql.Tx
	extent  extent
	done    bool
}

// Insert adds one feature. Attributes missing from the feature take their
// schema default.
func (t *Transaction) Insert(ctx context.Context, feature domain.Feature) error {
	if t.done {
		return domain.ErrClosed
	}
	if feature.Geometry == nil {
		return fmt.Errorf("%w: feature has no geometry", domain.ErrInvalidInput)
	}

	s := t.dataset.schema
	blob, err := encodeGeometry(feature.Geometry, t.dataset.srsID)
	if err != nil {
		return err
	}

	cols := []string{quoteIdent(s.GeometryColumn)}
	args := []any{blob}
	for _, attr := range s.Attributes {
		cols = append(cols, quoteIdent(attr.Name))
		args = append(args, feature.Value(attr))
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quoteIdent(s.Name), strings.Join(cols, ", "), placeholders)
	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting feature: %w", err)
	}

	t.extent = t.extent.union(boundsOf(feature.Geometry))
	return nil
}

// Commit records the table extent and commits. On failure the transaction
// stays open so the caller can roll it back.
func (t *Transaction) Commit() error {
	if t.done {
		return domain.ErrClosed
	}

	ext := t.dataset.extent.union(t.extent)
	if ext.valid {
		_, err := t.tx.Exec(
			`UPDATE gpkg_contents
			 SET min_x = ?, min_y = ?, max_x = ?, max_y = ?,
			     last_change = strftime('%Y-%m-%dT%H:%M:%fZ','now')
			 WHERE table_name = ?`,
			ext.minX, ext.minY, ext.maxX, ext.maxY, t.dataset.schema.Name)
		if err != nil {
			return fmt.Errorf("updating extent: %w", err)
		}
	}

	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	t.done = true
	t.dataset.extent = ext
	t.dataset.release(t)
	return nil
}

// Rollback discards inserted features. Rolling back a finished transaction
// is a no-op.
func (t *Transaction) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	defer t.dataset.release(t)

	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rolling back: %w", err)
	}
	return nil
}

// Close rolls back the transaction if it is still open.
func (t *Transaction) Close() error {
	return t.Rollback()
}
