package config

import (
	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every variable name in Config's env tags.
const EnvPrefix = "AUTHKEEPER_"

// parseEnv overlays Config with AUTHKEEPER_* environment variables.
// Unset variables leave the current value untouched. A malformed value
// (e.g. a non-boolean AUTHKEEPER_STORE_IMAGE) panics, like the other loaders.
func parseEnv(config *Config) {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
