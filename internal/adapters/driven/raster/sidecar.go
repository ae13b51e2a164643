package raster

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/footprint/internal/core/domain"
)

// epsgPattern matches WKT1 AUTHORITY["EPSG","4326"] and WKT2 ID["EPSG",4326].
var epsgPattern = regexp.MustCompile(`(?:AUTHORITY|ID)\[\s*"EPSG"\s*,\s*"?(\d+)"?\s*\]`)

// worldFileCandidates returns the world file names tried for path, in order.
func worldFileCandidates(path string) []string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)

	var candidates []string
	if len(ext) >= 3 {
		// .tif -> .tfw, .png -> .pgw
		short := "." + ext[1:2] + ext[len(ext)-1:] + "w"
		candidates = append(candidates, base+short)
	}
	if ext != "" {
		candidates = append(candidates, path+"w", base+ext+"w")
	}
	candidates = append(candidates, base+".wld")
	return dedupe(candidates)
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}

// readWorldFile returns the transform from the first world file found,
// or the pixel-space transform when none exists.
func readWorldFile(path string) (domain.GeoTransform, error) {
	for _, candidate := range worldFileCandidates(path) {
		data, err := os.ReadFile(candidate)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return domain.GeoTransform{}, fmt.Errorf("reading world file: %w", err)
		}
		t, err := parseWorldFile(string(data))
		if err != nil {
			return domain.GeoTransform{}, fmt.Errorf("parsing world file %s: %w", candidate, err)
		}
		return t, nil
	}
	return domain.PixelTransform, nil
}

// parseWorldFile converts the six world file terms into a corner-based transform.
// World files reference the centre of the top-left pixel.
func parseWorldFile(data string) (domain.GeoTransform, error) {
	fields := strings.Fields(data)
	if len(fields) < 6 {
		return domain.GeoTransform{}, fmt.Errorf("%w: expected 6 terms, got %d", domain.ErrInvalidInput, len(fields))
	}

	var terms [6]float64
	for i := 0; i < 6; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return domain.GeoTransform{}, fmt.Errorf("%w: term %d: %w", domain.ErrInvalidInput, i+1, err)
		}
		terms[i] = v
	}

	a, d, b, e, c, f := terms[0], terms[1], terms[2], terms[3], terms[4], terms[5]
	return domain.GeoTransform{
		c - a/2 - b/2, a, b,
		f - d/2 - e/2, d, e,
	}, nil
}

// readProjection reads the .prj sidecar, if any.
func readProjection(path string) (domain.SpatialReference, error) {
	prj := strings.TrimSuffix(path, filepath.Ext(path)) + ".prj"
	data, err := os.ReadFile(prj)
	if errors.Is(err, os.ErrNotExist) {
		return domain.SpatialReference{}, nil
	}
	if err != nil {
		return domain.SpatialReference{}, fmt.Errorf("reading projection: %w", err)
	}
	return parseProjection(string(data)), nil
}

// parseProjection extracts the EPSG code of the outermost CRS, which WKT
// places last.
func parseProjection(wkt string) domain.SpatialReference {
	wkt = strings.TrimSpace(wkt)
	srs := domain.SpatialReference{WKT: wkt}

	matches := epsgPattern.FindAllStringSubmatch(wkt, -1)
	if len(matches) == 0 {
		return srs
	}
	if code, err := strconv.Atoi(matches[len(matches)-1][1]); err == nil {
		srs.EPSG = code
	}
	return srs
}
