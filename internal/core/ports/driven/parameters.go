package driven

// ParameterSource supplies extraction parameters as a loose mapping.
// Values keep whatever types the source decoded them as; validation is
// left to the parameter resolver.
type ParameterSource interface {
	// Load reads the parameters.
	Load() (map[string]any, error)

	// Path returns where the parameters come from.
	Path() string
}
