package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     gRPC bind address (e.g., ":50051")
//	-d string     PostgreSQL DSN
//	-s string     service token HMAC secret
//	-u string     S3 root user
//	-p string     S3 root password
//	-b string     S3 bucket name
//	-g string     S3 region
//	-e string     S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-r string     Redis URL (e.g., "redis://localhost:6379/0")
//	-i            mirror avatars into object storage
//	-o            role-based users
//	-t duration   avatar fetch timeout (e.g., "5s")
//	-l string     log backend: slog-json, slog-text or zap
//	-v string     log level
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-d", "-s", "-u", "-p", "-b", "-g", "-e", "-r", "-i", "-o", "-t", "-l", "-v"},
		"-i", "-o")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 avatar bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis URL for sessions and verification tokens")
	fs.BoolVar(&config.StoreImage, "i", config.StoreImage, "mirror user avatars into object storage")
	fs.BoolVar(&config.RoleBased, "o", config.RoleBased, "role-based users")
	fs.DurationVar(&config.AvatarFetchTimeout, "t", config.AvatarFetchTimeout, "avatar fetch timeout")

	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend (slog-json, slog-text, zap)")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
