package config

import "time"

// Config holds runtime settings for the authctl console.
//
// Fields:
//   - ServerEndpointAddr: host:port of the adapter gRPC endpoint.
//   - AccessToken: service token minted by tokengen.
//   - OnlineCheckInterval: how often the console probes server health.
//   - RequestTimeout: per-command deadline for adapter calls.
type Config struct {
	ServerEndpointAddr  string        `env:"ENDPOINT"`
	AccessToken         string        `env:"ACCESS_TOKEN"`
	OnlineCheckInterval time.Duration `env:"ONLINE_CHECK_INTERVAL"`
	RequestTimeout      time.Duration `env:"REQUEST_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.AccessToken = ""
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the AUTHKEEPER_* environment and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
