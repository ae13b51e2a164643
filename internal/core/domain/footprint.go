package domain

import "github.com/twpayne/go-geom"

// FootprintKind distinguishes the precise footprint from its simplified copy.
type FootprintKind string

// Footprint kinds, in the order an engine yields them.
const (
	FootprintPrecise    FootprintKind = "precise"
	FootprintSimplified FootprintKind = "simplified"
)

// Footprint is one extracted geometry.
type Footprint struct {
	Kind     FootprintKind
	Geometry *geom.MultiPolygon
}

// AttributeType is the storage type of a feature attribute.
type AttributeType string

// Supported attribute types.
const (
	AttributeInteger AttributeType = "INTEGER"
	AttributeReal    AttributeType = "REAL"
	AttributeText    AttributeType = "TEXT"
)

// Attribute describes a non-geometry column of a feature type.
type Attribute struct {
	Name    string
	Type    AttributeType
	Default any
}

// FeatureSchema describes a single-geometry feature type.
type FeatureSchema struct {
	// Name is the feature type (table) name.
	Name string
	// GeometryColumn is the geometry attribute name.
	GeometryColumn string
	// GeometryType is the OGC geometry type name, e.g. MULTIPOLYGON.
	GeometryType string
	// Attributes lists the non-geometry attributes.
	Attributes []Attribute
}

// Validate checks the schema is usable for dataset creation.
func (s FeatureSchema) Validate() error {
	if s.Name == "" || s.GeometryColumn == "" || s.GeometryType == "" {
		return ErrInvalidInput
	}
	seen := map[string]bool{s.GeometryColumn: true}
	for _, attr := range s.Attributes {
		if attr.Name == "" || seen[attr.Name] {
			return ErrInvalidInput
		}
		switch attr.Type {
		case AttributeInteger, AttributeReal, AttributeText:
		default:
			return ErrInvalidInput
		}
		seen[attr.Name] = true
	}
	return nil
}

// Feature is one record of a feature type.
type Feature struct {
	Geometry   geom.T
	Attributes map[string]any
}

// Value returns the attribute value, falling back to the schema default.
func (f Feature) Value(attr Attribute) any {
	if v, ok := f.Attributes[attr.Name]; ok {
		return v
	}
	return attr.Default
}
