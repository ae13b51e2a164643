// Command footprint extracts vector footprints from raster images.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/footprint/internal/adapters/driven/config/env"
	"github.com/custodia-labs/footprint/internal/adapters/driven/engine"
	"github.com/custodia-labs/footprint/internal/adapters/driven/output"
	"github.com/custodia-labs/footprint/internal/adapters/driven/raster"
	"github.com/custodia-labs/footprint/internal/adapters/driven/storage/gpkg"
	"github.com/custodia-labs/footprint/internal/adapters/driving/cli"
	"github.com/custodia-labs/footprint/internal/core/ports/driving"
	"github.com/custodia-labs/footprint/internal/core/services"
)

func main() {
	settings := env.Load()

	cli.SetServiceFactory(settings.CacheMB, func(cacheMB int) driving.FootprintService {
		cache := env.Settings{CacheMB: cacheMB}
		return services.NewFootprintService(
			raster.NewReader(),
			engine.New(cache.CacheBytes()),
			output.DefaultRegistry(gpkg.NewStore()),
			nil,
		)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
