package gpkg

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/custodia-labs/footprint/internal/core/domain"
)

var testSchema = domain.FeatureSchema{
	Name:           "footprint",
	GeometryColumn: "geom",
	GeometryType:   "MULTIPOLYGON",
	Attributes:     []domain.Attribute{{Name: "cat", Type: domain.AttributeInteger, Default: int64(0)}},
}

func testGeometry(t *testing.T) *geom.MultiPolygon {
	t.Helper()
	poly, err := geom.NewPolygon(geom.XY).SetCoords([][]geom.Coord{
		{{500, 900}, {600, 900}, {600, 1000}, {500, 1000}, {500, 900}},
	})
	require.NoError(t, err)
	mp := geom.NewMultiPolygon(geom.XY)
	require.NoError(t, mp.Push(poly))
	return mp
}

// openRaw opens a written GeoPackage for inspection.
func openRaw(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// writeDataset creates a dataset at path holding g.
func writeDataset(t *testing.T, path string, srs domain.SpatialReference, g geom.T) {
	t.Helper()
	ctx := context.Background()

	ds, err := NewStore().CreateDataset(ctx, testSchema, path, srs)
	require.NoError(t, err)
	tx, err := ds.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Insert(ctx, domain.Feature{Geometry: g}))
	require.NoError(t, tx.Commit())
	require.NoError(t, tx.Close())
	require.NoError(t, ds.Close())
}

func TestStore_CreateDataset_Header(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.gpkg")
	writeDataset(t, path, domain.SpatialReference{}, testGeometry(t))

	db := openRaw(t, path)

	var appID, version int
	require.NoError(t, db.QueryRow("PRAGMA application_id").Scan(&appID))
	require.NoError(t, db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, 1196444487, appID)
	assert.Equal(t, 10300, version)

	var srsCount int
	require.NoError(t, db.QueryRow(
		"SELECT COUNT(*) FROM gpkg_spatial_ref_sys WHERE srs_id IN (-1, 0, 4326)").Scan(&srsCount))
	assert.Equal(t, 3, srsCount)
}

func TestStore_CreateDataset_Contents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.gpkg")
	writeDataset(t, path, domain.SpatialReference{EPSG: 32632, WKT: `PROJCS["WGS 84 / UTM zone 32N"]`}, testGeometry(t))

	db := openRaw(t, path)

	var dataType string
	var minX, minY, maxX, maxY float64
	var srsID int
	require.NoError(t, db.QueryRow(
		`SELECT data_type, min_x, min_y, max_x, max_y, srs_id FROM gpkg_contents WHERE table_name = 'footprint'`,
	).Scan(&dataType, &minX, &minY, &maxX, &maxY, &srsID))
	assert.Equal(t, "features", dataType)
	assert.Equal(t, []float64{500, 900, 600, 1000}, []float64{minX, minY, maxX, maxY})
	assert.Equal(t, 32632, srsID)

	var column, geomType string
	require.NoError(t, db.QueryRow(
		`SELECT column_name, geometry_type_name FROM gpkg_geometry_columns WHERE table_name = 'footprint'`,
	).Scan(&column, &geomType))
	assert.Equal(t, "geom", column)
	assert.Equal(t, "MULTIPOLYGON", geomType)

	var org, definition string
	require.NoError(t, db.QueryRow(
		`SELECT organization, definition FROM gpkg_spatial_ref_sys WHERE srs_id = 32632`,
	).Scan(&org, &definition))
	assert.Equal(t, "EPSG", org)
	assert.Equal(t, `PROJCS["WGS 84 / UTM zone 32N"]`, definition)
}

func TestStore_CreateDataset_FeatureRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.gpkg")
	g := testGeometry(t)
	writeDataset(t, path, domain.SpatialReference{EPSG: 4326}, g)

	db := openRaw(t, path)

	var blob []byte
	var cat int
	require.NoError(t, db.QueryRow(`SELECT geom, cat FROM footprint`).Scan(&blob, &cat))
	assert.Equal(t, 0, cat, "attribute default applied")

	decoded, srsID, err := decodeGeometry(blob)
	require.NoError(t, err)
	assert.Equal(t, int32(4326), srsID)
	mp, ok := decoded.(*geom.MultiPolygon)
	require.True(t, ok)
	assert.Equal(t, g.FlatCoords(), mp.FlatCoords())
}

func TestStore_CreateDataset_AlreadyExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.gpkg")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	_, err := NewStore().CreateDataset(context.Background(), testSchema, path, domain.SpatialReference{})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestStore_CreateDataset_InvalidSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.gpkg")
	_, err := NewStore().CreateDataset(context.Background(), domain.FeatureSchema{}, path, domain.SpatialReference{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NoFileExists(t, path)
}

func TestStore_CreateDataset_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "scene.gpkg")
	_, err := NewStore().CreateDataset(context.Background(), testSchema, path, domain.SpatialReference{})
	assert.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestStore_SpatialReferenceIDs(t *testing.T) {
	tests := []struct {
		name string
		srs  domain.SpatialReference
		want int32
	}{
		{"unknown", domain.SpatialReference{}, -1},
		{"wgs84", domain.SpatialReference{EPSG: 4326}, 4326},
		{"epsg without wkt", domain.SpatialReference{EPSG: 3857}, 3857},
		{"wkt only", domain.SpatialReference{WKT: `LOCAL_CS["site"]`}, 100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scene.gpkg")
			ds, err := NewStore().CreateDataset(context.Background(), testSchema, path, tt.srs)
			require.NoError(t, err)
			defer ds.Close()

			assert.Equal(t, tt.want, ds.(*Dataset).SRSID())
		})
	}
}

func TestTransaction_RollbackDiscards(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scene.gpkg")

	ds, err := NewStore().CreateDataset(ctx, testSchema, path, domain.SpatialReference{})
	require.NoError(t, err)
	tx, err := ds.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Insert(ctx, domain.Feature{Geometry: testGeometry(t)}))
	require.NoError(t, tx.Rollback())
	require.NoError(t, tx.Rollback(), "second rollback is a no-op")
	require.NoError(t, ds.Close())

	var count int
	require.NoError(t, openRaw(t, path).QueryRow(`SELECT COUNT(*) FROM footprint`).Scan(&count))
	assert.Zero(t, count)
}

func TestDataset_SingleTransaction(t *testing.T) {
	ctx := context.Background()
	ds, err := NewStore().CreateDataset(ctx, testSchema, filepath.Join(t.TempDir(), "a.gpkg"), domain.SpatialReference{})
	require.NoError(t, err)
	defer ds.Close()

	tx, err := ds.Begin(ctx)
	require.NoError(t, err)

	_, err = ds.Begin(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, tx.Commit())
	tx2, err := ds.Begin(ctx)
	require.NoError(t, err)
	assert.NoError(t, tx2.Close())
}

func TestDataset_CloseRollsBackAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "a.gpkg")
	ds, err := NewStore().CreateDataset(ctx, testSchema, path, domain.SpatialReference{})
	require.NoError(t, err)

	tx, err := ds.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Insert(ctx, domain.Feature{Geometry: testGeometry(t)}))

	require.NoError(t, ds.Close())
	require.NoError(t, ds.Close())

	assert.ErrorIs(t, tx.Insert(ctx, domain.Feature{Geometry: testGeometry(t)}), domain.ErrClosed)
	_, err = ds.Begin(ctx)
	assert.ErrorIs(t, err, domain.ErrClosed)

	var count int
	require.NoError(t, openRaw(t, path).QueryRow(`SELECT COUNT(*) FROM footprint`).Scan(&count))
	assert.Zero(t, count)
}

func TestTransaction_InsertWithoutGeometry(t *testing.T) {
	ctx := context.Background()
	ds, err := NewStore().CreateDataset(ctx, testSchema, filepath.Join(t.TempDir(), "a.gpkg"), domain.SpatialReference{})
	require.NoError(t, err)
	defer ds.Close()

	tx, err := ds.Begin(ctx)
	require.NoError(t, err)
	defer tx.Close()

	assert.ErrorIs(t, tx.Insert(ctx, domain.Feature{}), domain.ErrInvalidInput)
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "a.gpkg")
	store := NewStore()

	ds, err := store.CreateDataset(ctx, testSchema, path, domain.SpatialReference{})
	require.NoError(t, err)
	tx, err := ds.Begin(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, tx.Insert(ctx, domain.Feature{}), domain.ErrInvalidInput)
	require.NoError(t, tx.Rollback())
	require.NoError(t, ds.Close())
	require.FileExists(t, path)

	require.NoError(t, store.Remove(path))
	assert.NoFileExists(t, path)
	assert.NoFileExists(t, path+"-journal")

	assert.NoError(t, store.Remove(path), "missing file is not an error")
}
