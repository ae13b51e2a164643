package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/footprint/internal/core/domain"
)

func TestWorldFileCandidates(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"a/scene.tif", []string{"a/scene.tfw", "a/scene.tifw", "a/scene.wld"}},
		{"a/scene.tiff", []string{"a/scene.tfw", "a/scene.tiffw", "a/scene.wld"}},
		{"scene.png", []string{"scene.pgw", "scene.pngw", "scene.wld"}},
		{"scene", []string{"scene.wld"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, worldFileCandidates(tt.path))
		})
	}
}

func TestParseWorldFile(t *testing.T) {
	got, err := parseWorldFile("2.0\n0.0\n0.0\n-2.0\n101.0\n199.0\n")
	require.NoError(t, err)
	assert.Equal(t, domain.GeoTransform{100, 2, 0, 200, 0, -2}, got)
}

func TestParseWorldFile_Rotated(t *testing.T) {
	got, err := parseWorldFile("1 0.5 0.5 -1 10 20")
	require.NoError(t, err)
	assert.Equal(t, domain.GeoTransform{9.25, 1, 0.5, 20.25, 0.5, -1}, got)
}

func TestParseWorldFile_Invalid(t *testing.T) {
	tests := map[string]string{
		"too few": "1 0 0 -1 10",
		"garbage": "1 0 0 -1 ten 20",
		"empty":   "",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseWorldFile(data)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestParseProjection(t *testing.T) {
	tests := []struct {
		name string
		wkt  string
		epsg int
	}{
		{
			name: "wkt1 projected",
			wkt: `PROJCS["WGS 84 / UTM zone 32N",GEOGCS["WGS 84",AUTHORITY["EPSG","4326"]],` +
				`UNIT["metre",1,AUTHORITY["EPSG","9001"]],AUTHORITY["EPSG","32632"]]`,
			epsg: 32632,
		},
		{
			name: "wkt2",
			wkt:  `GEOGCRS["WGS 84",DATUM["World Geodetic System 1984"],ID["EPSG",4326]]`,
			epsg: 4326,
		},
		{
			name: "no authority",
			wkt:  `LOCAL_CS["arbitrary"]`,
			epsg: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srs := parseProjection("  " + tt.wkt + "\n")
			assert.Equal(t, tt.epsg, srs.EPSG)
			assert.Equal(t, tt.wkt, srs.WKT)
		})
	}
}

func TestReadProjection_Missing(t *testing.T) {
	srs, err := readProjection(t.TempDir() + "/scene.tif")
	require.NoError(t, err)
	assert.True(t, srs.IsZero())
}
