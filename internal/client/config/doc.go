// Package config loads runtime configuration for the authctl console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. AUTHKEEPER_ENDPOINT, AUTHKEEPER_ACCESS_TOKEN,
//     AUTHKEEPER_ONLINE_CHECK_INTERVAL and AUTHKEEPER_REQUEST_TIMEOUT.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     address:port of the adapter gRPC endpoint
//	-k string     service access token
//	-i int        online status check interval (seconds)
//	-w duration   per-command timeout
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "access_token": "eyJhbGciOi...",
//	  "online_check_interval": "3s",
//	  "request_timeout": "5s"
//	}
package config
