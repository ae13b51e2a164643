// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - ParameterResolver: normalises raw extraction parameters
//   - FootprintService: runs open, resolve, extract and write for one raster
package services
