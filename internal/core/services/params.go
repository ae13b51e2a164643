package services

import (
	"math"

	"github.com/custodia-labs/footprint/internal/core/domain"
	"github.com/custodia-labs/footprint/internal/logger"
)

// ParameterResolver normalises loosely-typed extraction parameters.
// It holds no mutable state and is safe for concurrent use.
type ParameterResolver struct{}

// NewParameterResolver creates a parameter resolver.
func NewParameterResolver() *ParameterResolver {
	return &ParameterResolver{}
}

// Resolve returns a fully-populated configuration. It never fails: a missing
// or mistyped value is silently replaced by its default, and unrecognised
// keys are ignored.
func (r *ParameterResolver) Resolve(raw map[string]any) domain.ExtractionConfig {
	cfg := domain.DefaultExtractionConfig()
	if raw == nil {
		return cfg
	}

	for _, key := range domain.ConfigKeys() {
		value, present := raw[key.String()]
		var ok bool

		switch key {
		case domain.KeyComputeSimplified:
			cfg.ComputeSimplified, ok = boolValue(value, cfg.ComputeSimplified)
		case domain.KeyRemoveCollinear:
			cfg.RemoveCollinear, ok = boolValue(value, cfg.RemoveCollinear)
		case domain.KeyForceValid:
			cfg.ForceValid, ok = boolValue(value, cfg.ForceValid)
		case domain.KeyThresholdArea:
			cfg.ThresholdArea, ok = floatValue(value, cfg.ThresholdArea)
		case domain.KeySimplifierFactor:
			cfg.SimplifierFactor, ok = floatValue(value, cfg.SimplifierFactor)
		case domain.KeyExclusionRanges:
			var ranges []domain.Range
			if ranges, ok = rangeList(value); ok {
				cfg.ExclusionRanges = ranges
			}
		case domain.KeyLoadingType:
			cfg.LoadingStrategy, ok = strategyValue(value, cfg.LoadingStrategy)
		}

		if !ok && present {
			logger.Debug("parameter %s: unusable value %v (%T), using default", key, value, value)
		}
	}

	return cfg
}

func boolValue(v any, def bool) (bool, bool) {
	b, ok := v.(bool)
	if !ok {
		return def, false
	}
	return b, true
}

// floatValue accepts only floating-point values. Integers are rejected so a
// parameter file must spell numeric tunables as 100.0, not 100.
func floatValue(v any, def float64) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	default:
		return def, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def, false
	}
	return f, true
}

func strategyValue(v any, def domain.LoadingStrategy) (domain.LoadingStrategy, bool) {
	switch s := v.(type) {
	case domain.LoadingStrategy:
		if s.IsValid() {
			return s, true
		}
	case string:
		if parsed, ok := domain.ParseLoadingStrategy(s); ok {
			return parsed, true
		}
	}
	return def, false
}

// rangeList accepts a non-empty sequence whose first element is an integer
// range. Later elements that are not ranges are skipped.
func rangeList(v any) ([]domain.Range, bool) {
	var items []any
	switch list := v.(type) {
	case []domain.Range:
		if len(list) == 0 {
			return nil, false
		}
		out := make([]domain.Range, len(list))
		copy(out, list)
		return out, true
	case [][]int:
		for _, item := range list {
			items = append(items, item)
		}
	case [][]int64:
		for _, item := range list {
			items = append(items, item)
		}
	case []any:
		items = list
	default:
		return nil, false
	}

	if len(items) == 0 {
		return nil, false
	}
	first, ok := rangeValue(items[0])
	if !ok {
		return nil, false
	}

	out := []domain.Range{first}
	for _, item := range items[1:] {
		if r, ok := rangeValue(item); ok {
			out = append(out, r)
		}
	}
	return out, true
}

func rangeValue(v any) (domain.Range, bool) {
	var bounds []any
	switch r := v.(type) {
	case domain.Range:
		return r, true
	case *domain.Range:
		if r == nil {
			return domain.Range{}, false
		}
		return *r, true
	case []int:
		for _, b := range r {
			bounds = append(bounds, b)
		}
	case []int64:
		for _, b := range r {
			bounds = append(bounds, b)
		}
	case []any:
		bounds = r
	default:
		return domain.Range{}, false
	}

	if len(bounds) != 2 {
		return domain.Range{}, false
	}
	lo, ok := intValue(bounds[0])
	if !ok {
		return domain.Range{}, false
	}
	hi, ok := intValue(bounds[1])
	if !ok {
		return domain.Range{}, false
	}
	return domain.Range{Min: lo, Max: hi}, true
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	default:
		return 0, false
	}
}
