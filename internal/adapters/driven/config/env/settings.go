// Package env loads process settings from environment variables.
package env

import (
	"os"
	"strconv"

	"github.com/custodia-labs/footprint/internal/logger"
)

// CacheEnvVar holds the engine decode cache capacity in megabytes.
const CacheEnvVar = "FOOTPRINT_CACHE_MB"

// DefaultCacheMB is the decode cache capacity used when CacheEnvVar is unset.
const DefaultCacheMB = 1024

// Settings holds process-wide settings read once at start-up.
type Settings struct {
	// CacheMB is the decode cache capacity in megabytes.
	CacheMB int
}

// Load reads settings from the environment.
func Load() Settings {
	return Settings{
		CacheMB: getEnvAsInt(CacheEnvVar, DefaultCacheMB),
	}
}

// CacheBytes returns the decode cache capacity in bytes.
func (s Settings) CacheBytes() int64 {
	if s.CacheMB <= 0 {
		return 0
	}
	return int64(s.CacheMB) << 20
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		logger.Warn("ignoring %s=%q: not a non-negative integer", key, value)
		return defaultValue
	}
	return n
}
