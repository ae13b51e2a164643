// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ParameterFile: TOML extraction parameters
package file
