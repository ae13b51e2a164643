// Package cli provides the command-line interface for the footprint tool.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/footprint/internal/adapters/driven/config/file"
	"github.com/custodia-labs/footprint/internal/core/domain"
	"github.com/custodia-labs/footprint/internal/core/ports/driving"
	"github.com/custodia-labs/footprint/internal/logger"
)

var version = "dev"

// ServiceFactory builds the footprint service with a decode cache of cacheMB megabytes.
type ServiceFactory func(cacheMB int) driving.FootprintService

// errNoService is returned when a command runs before the service is wired.
var errNoService = errors.New("footprint service not configured")

var (
	footprintService driving.FootprintService
	serviceFactory   ServiceFactory
	defaultCacheMB   int
)

// Flag values.
var (
	verbose         bool
	cacheMB         int
	paramsPath      string
	libraryDefaults bool
)

var rootCmd = &cobra.Command{
	Use:   "footprint <input-path> [primary-format] [secondary-format]",
	Short: "Extract vector footprints from raster images",
	Long: `Footprint traces the valid-data outline of a raster and writes it as a
multipolygon beside the input.

The precise footprint is written in the primary format. When simplification
is enabled a second, simplified footprint is written in the secondary format
with a "_simplified" suffix. Both formats default to wkb.

Formats: wkb, wkt, gpkg

Examples:
  footprint scene.tif
  footprint scene.tif wkt gpkg
  footprint --params tuning.toml scene.tif`,
	Args:          cobra.RangeArgs(1, 3),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runExtract,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output to stderr")
	rootCmd.PersistentFlags().IntVar(&cacheMB, "cache-mb", 0,
		"Decode cache size in MB (0 = $FOOTPRINT_CACHE_MB or 1024, negative disables)")
	rootCmd.PersistentFlags().StringVar(&paramsPath, "params", "", "TOML file with extraction parameters")
	rootCmd.PersistentFlags().BoolVar(&libraryDefaults, "library-defaults", false,
		"Start from library defaults instead of the command-line defaults")
}

// SetServiceFactory wires the service builder and the cache size used when
// --cache-mb is not given. The service is built on first use.
func SetServiceFactory(cacheMBDefault int, factory ServiceFactory) {
	defaultCacheMB = cacheMBDefault
	serviceFactory = factory
	footprintService = nil
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// service returns the footprint service, building it on first use.
func service() (driving.FootprintService, error) {
	if footprintService != nil {
		return footprintService, nil
	}
	if serviceFactory == nil {
		return nil, errNoService
	}

	mb := cacheMB
	if mb == 0 {
		mb = defaultCacheMB
	}
	logger.Debug("decode cache: %d MB", mb)
	footprintService = serviceFactory(mb)
	return footprintService, nil
}

// loadParameters builds the raw parameter mapping from the defaults and
// the optional --params file. File values win.
func loadParameters() (map[string]any, error) {
	params := domain.DriverParams()
	if libraryDefaults {
		params = map[string]any{}
	}

	if paramsPath == "" {
		return params, nil
	}

	loaded, err := file.NewParameterFile(paramsPath).Load()
	if err != nil {
		return nil, fmt.Errorf("loading parameters from %s: %w", paramsPath, err)
	}
	logger.Debug("parameters from %s: %s", paramsPath, strings.Join(file.Keys(loaded), ", "))

	for k, v := range loaded {
		params[k] = v
	}
	return params, nil
}

// parseFormats reads the optional primary and secondary format arguments.
func parseFormats(args []string) (primary, secondary domain.OutputFormat, err error) {
	primary, secondary = domain.DefaultOutputFormat, domain.DefaultOutputFormat
	if len(args) > 0 {
		if primary, err = domain.ParseOutputFormat(args[0]); err != nil {
			return "", "", fmt.Errorf("primary format: %w", err)
		}
	}
	if len(args) > 1 {
		if secondary, err = domain.ParseOutputFormat(args[1]); err != nil {
			return "", "", fmt.Errorf("secondary format: %w", err)
		}
	}
	return primary, secondary, nil
}

// runExtract processes one raster. A failed run is printed, not returned,
// so only usage errors change the exit status.
func runExtract(cmd *cobra.Command, args []string) error {
	primary, secondary, err := parseFormats(args[1:])
	if err != nil {
		return err
	}

	params, err := loadParameters()
	if err != nil {
		return err
	}

	svc, err := service()
	if err != nil {
		return err
	}

	outcome := svc.Run(cmd.Context(), driving.ExtractRequest{
		InputPath:       args[0],
		Parameters:      params,
		PrimaryFormat:   primary,
		SecondaryFormat: secondary,
	})

	printOutcome(cmd.OutOrStdout(), outcome)
	return nil
}

func printOutcome(w io.Writer, outcome *domain.ProcessingOutcome) {
	fmt.Fprintf(w, "Run %s: %s\n", outcome.RunID, outcome.InputPath)
	for _, o := range outcome.Outputs {
		fmt.Fprintf(w, "  Wrote %-10s %-4s %s\n", o.Role, o.Format, o.Path)
	}
	for _, err := range outcome.Errors {
		fmt.Fprintf(w, "  Error: %v\n", err)
	}
	for _, warning := range outcome.Warnings {
		fmt.Fprintf(w, "  Warning: %v\n", warning)
	}
	fmt.Fprintf(w, "  State: %s (%s)\n", outcome.State, outcome.Duration().Round(time.Millisecond))
}
