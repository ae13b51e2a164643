package domain

import (
	"fmt"
	"strings"
)

// ConfigKey identifies a recognised extraction tunable.
type ConfigKey string

// Recognised extraction parameter keys.
const (
	// KeyThresholdArea is the minimum polygon area, in pixels, kept in the footprint.
	KeyThresholdArea ConfigKey = "thresholdArea"

	// KeyExclusionRanges lists the intensity ranges treated as background.
	KeyExclusionRanges ConfigKey = "exclusionRanges"

	// KeyComputeSimplified requests a simplified footprint next to the precise one.
	KeyComputeSimplified ConfigKey = "computeSimplifiedFootprint"

	// KeySimplifierFactor is the simplification tolerance in pixel units.
	KeySimplifierFactor ConfigKey = "simplifierFactor"

	// KeyRemoveCollinear drops vertices lying on a straight run of edges.
	KeyRemoveCollinear ConfigKey = "removeCollinear"

	// KeyForceValid repairs self-touching rings into valid polygons.
	KeyForceValid ConfigKey = "forceValid"

	// KeyLoadingType selects how raster samples are loaded.
	KeyLoadingType ConfigKey = "loadingType"
)

// ConfigKeys returns every recognised key in a stable order.
func ConfigKeys() []ConfigKey {
	return []ConfigKey{
		KeyThresholdArea,
		KeyExclusionRanges,
		KeyComputeSimplified,
		KeySimplifierFactor,
		KeyRemoveCollinear,
		KeyForceValid,
		KeyLoadingType,
	}
}

// String returns the string representation.
func (k ConfigKey) String() string {
	return string(k)
}

// Range is an inclusive integer intensity interval.
type Range struct {
	Min int
	Max int
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// String returns the interval notation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d;%d]", r.Min, r.Max)
}

// LoadingStrategy selects how the engine pulls samples from a coverage.
type LoadingStrategy string

// Available loading strategies.
const (
	// LoadingImmediate materialises the full intensity grid before tracing.
	// The grid is kept in the engine's decode cache for subsequent runs.
	LoadingImmediate LoadingStrategy = "immediate"

	// LoadingDeferred samples the decoded image on demand.
	LoadingDeferred LoadingStrategy = "deferred"
)

// IsValid returns true if the loading strategy is recognised.
func (s LoadingStrategy) IsValid() bool {
	switch s {
	case LoadingImmediate, LoadingDeferred:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s LoadingStrategy) String() string {
	return string(s)
}

// ParseLoadingStrategy parses a case-insensitive strategy name.
func ParseLoadingStrategy(s string) (LoadingStrategy, bool) {
	strategy := LoadingStrategy(strings.ToLower(strings.TrimSpace(s)))
	if !strategy.IsValid() {
		return "", false
	}
	return strategy, true
}

// Defaults applied when a parameter is missing or malformed.
const (
	DefaultThresholdArea     = 100.0
	DefaultComputeSimplified = false
	DefaultSimplifierFactor  = 0.0
	DefaultRemoveCollinear   = true
	DefaultForceValid        = true
	DefaultLoadingStrategy   = LoadingDeferred
)

// DefaultExclusionRange is the single background range used by default.
var DefaultExclusionRange = Range{Min: 0, Max: 10}

// ExtractionConfig is a fully-resolved set of extraction parameters.
// Every field always holds a usable value; a SimplifierFactor of zero means
// no simplification factor was supplied.
type ExtractionConfig struct {
	ThresholdArea     float64
	ExclusionRanges   []Range
	ComputeSimplified bool
	SimplifierFactor  float64
	RemoveCollinear   bool
	ForceValid        bool
	LoadingStrategy   LoadingStrategy
}

// DefaultExtractionConfig returns a fresh copy of the default parameters.
func DefaultExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		ThresholdArea:     DefaultThresholdArea,
		ExclusionRanges:   []Range{DefaultExclusionRange},
		ComputeSimplified: DefaultComputeSimplified,
		SimplifierFactor:  DefaultSimplifierFactor,
		RemoveCollinear:   DefaultRemoveCollinear,
		ForceValid:        DefaultForceValid,
		LoadingStrategy:   DefaultLoadingStrategy,
	}
}

// SimplificationEnabled reports whether a simplified footprint should be produced.
func (c ExtractionConfig) SimplificationEnabled() bool {
	return c.ComputeSimplified && c.SimplifierFactor > 0
}

// IsBackground reports whether an intensity falls in any exclusion range.
func (c ExtractionConfig) IsBackground(v int) bool {
	for _, r := range c.ExclusionRanges {
		if r.Contains(v) {
			return true
		}
	}
	return false
}

// Params renders the configuration as a parameter mapping with typed values.
// Resolving the returned mapping yields an equal configuration.
func (c ExtractionConfig) Params() map[string]any {
	ranges := make([]Range, len(c.ExclusionRanges))
	copy(ranges, c.ExclusionRanges)

	return map[string]any{
		KeyThresholdArea.String():     c.ThresholdArea,
		KeyExclusionRanges.String():   ranges,
		KeyComputeSimplified.String(): c.ComputeSimplified,
		KeySimplifierFactor.String():  c.SimplifierFactor,
		KeyRemoveCollinear.String():   c.RemoveCollinear,
		KeyForceValid.String():        c.ForceValid,
		KeyLoadingType.String():       c.LoadingStrategy,
	}
}

// DriverParams returns the parameters pre-populated by the command-line driver.
func DriverParams() map[string]any {
	return map[string]any{
		KeyThresholdArea.String():     100.0,
		KeyForceValid.String():        true,
		KeyRemoveCollinear.String():   true,
		KeySimplifierFactor.String():  2.0,
		KeyComputeSimplified.String(): true,
	}
}
