package config

import "github.com/caarlos0/env/v11"

func parseEnv(cfg *Config) {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "AUTHKEEPER_"}); err != nil {
		panic(err)
	}
}
