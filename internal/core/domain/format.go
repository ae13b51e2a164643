package domain

import (
	"fmt"
	"strings"
)

// OutputFormat identifies a geometry output variant.
type OutputFormat string

// Available output formats.
const (
	// FormatWKB is two-dimensional well-known binary.
	FormatWKB OutputFormat = "wkb"

	// FormatWKT is two-dimensional well-known text.
	FormatWKT OutputFormat = "wkt"

	// FormatGPKG is a single-feature OGC GeoPackage dataset.
	FormatGPKG OutputFormat = "gpkg"
)

// DefaultOutputFormat is used when no format is requested.
const DefaultOutputFormat = FormatWKB

// OutputFormats returns every supported format in a stable order.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatWKB, FormatWKT, FormatGPKG}
}

// ParseOutputFormat parses a case-insensitive format token.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wkb":
		return FormatWKB, nil
	case "wkt":
		return FormatWKT, nil
	case "gpkg", "geopackage":
		return FormatGPKG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// IsValid returns true if the format is recognised.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatWKB, FormatWKT, FormatGPKG:
		return true
	default:
		return false
	}
}

// OrDefault returns f, or DefaultOutputFormat when f is empty.
func (f OutputFormat) OrDefault() OutputFormat {
	if f == "" {
		return DefaultOutputFormat
	}
	return f
}

// Extension returns the file extension, including the leading dot.
func (f OutputFormat) Extension() string {
	switch f {
	case FormatWKB:
		return ".wkb"
	case FormatWKT:
		return ".wkt"
	case FormatGPKG:
		return ".gpkg"
	default:
		return ""
	}
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// Description returns a human-readable description of the format.
func (f OutputFormat) Description() string {
	switch f {
	case FormatWKB:
		return "Well-known binary geometry"
	case FormatWKT:
		return "Well-known text geometry"
	case FormatGPKG:
		return "GeoPackage feature dataset"
	default:
		return "Unknown"
	}
}
