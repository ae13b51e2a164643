package file

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/footprint/internal/core/domain"
	"github.com/custodia-labs/footprint/internal/core/ports/driven"
)

// Namespace is the optional top-level table holding extraction parameters.
const Namespace = "footprint"

// Ensure ParameterFile implements the interface.
var _ driven.ParameterSource = (*ParameterFile)(nil)

// ParameterFile reads extraction parameters from a TOML file.
//
// Keys may sit at the top level or inside a [footprint] table. Values are
// passed through as decoded: TOML floats arrive as float64, integers as
// int64 and arrays as []any.
type ParameterFile struct {
	path string
}

// NewParameterFile creates a parameter source for path.
func NewParameterFile(path string) *ParameterFile {
	return &ParameterFile{path: path}
}

// Path returns the file path.
func (f *ParameterFile) Path() string {
	return f.path
}

// Load reads and decodes the file.
func (f *ParameterFile) Load() (map[string]any, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode parses TOML parameters. Nested tables other than the namespace
// are flattened into dot-notation keys.
func Decode(data []byte) (map[string]any, error) {
	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if loaded == nil {
		return map[string]any{}, nil
	}

	if ns, ok := loaded[Namespace].(map[string]any); ok {
		delete(loaded, Namespace)
		for k, v := range ns {
			loaded[k] = v
		}
	}
	return flattenMap(loaded, ""), nil
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
			continue
		}
		result[fullKey] = value
	}

	return result
}

// Encode renders a resolved configuration as a [footprint] TOML table that
// Decode reads back to an equivalent parameter mapping.
func Encode(cfg domain.ExtractionConfig) ([]byte, error) {
	ranges := make([][]int64, 0, len(cfg.ExclusionRanges))
	for _, r := range cfg.ExclusionRanges {
		ranges = append(ranges, []int64{int64(r.Min), int64(r.Max)})
	}

	table := map[string]any{
		domain.KeyThresholdArea.String():     cfg.ThresholdArea,
		domain.KeyExclusionRanges.String():   ranges,
		domain.KeyComputeSimplified.String(): cfg.ComputeSimplified,
		domain.KeySimplifierFactor.String():  cfg.SimplifierFactor,
		domain.KeyRemoveCollinear.String():   cfg.RemoveCollinear,
		domain.KeyForceValid.String():        cfg.ForceValid,
		domain.KeyLoadingType.String():       cfg.LoadingStrategy.String(),
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(map[string]any{Namespace: table}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Keys returns the keys of params in sorted order.
func Keys(params map[string]any) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
