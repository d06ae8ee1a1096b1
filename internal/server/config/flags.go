package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
)

var serverFlags = []string{"-a", "-w", "-k", "-d", "-m", "-x", "-q", "-s", "-t", "-p", "-b", "-l"}

// parseFlags overlays command-line flags onto config.
//
// Supported flags:
//
//	-a string     gRPC bind address (e.g. ":50051")
//	-w string     HTTP bind address (empty disables HTTP)
//	-k string     store driver: postgres, sqlite, mongo or memory
//	-d string     store DSN
//	-m int        pool min connections
//	-x int        pool max connections
//	-q duration   pool acquire timeout (e.g. "5s")
//	-s string     token signing secret
//	-t duration   token validity (e.g. "1h")
//	-p string     password hashing: plain or bcrypt
//	-b string     log backend: slog or zap
//	-l string     log level
//
// Arguments not listed above are ignored, so -c/-config can share args.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address")
	fs.StringVar(&config.EndpointAddrHTTP, "w", config.EndpointAddrHTTP, "HTTP address")
	fs.StringVar(&config.StoreDriver, "k", config.StoreDriver, "store driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "store DSN")
	fs.IntVar(&config.PoolMinConns, "m", config.PoolMinConns, "pool min connections")
	fs.IntVar(&config.PoolMaxConns, "x", config.PoolMaxConns, "pool max connections")
	fs.DurationVar(&config.PoolAcquireTimeout, "q", config.PoolAcquireTimeout, "pool acquire timeout")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	fs.DurationVar(&config.AccessTokenValidityDuration, "t", config.AccessTokenValidityDuration, "token validity")
	fs.StringVar(&config.PasswordHashing, "p", config.PasswordHashing, "password hashing")
	fs.StringVar(&config.LogBackend, "b", config.LogBackend, "log backend")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	return fs.Parse(flagx.FilterArgs(args, serverFlags))
}
