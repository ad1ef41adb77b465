package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/usersvc/internal/flagx"
)

var serverFlags = []string{"-a", "-d", "-l", "-k", "-s", "-t"}

// parseFlags overlays command-line flags.
//
//	-a string   gRPC bind address (e.g. ":50051")
//	-d string   database DSN
//	-l string   log level
//	-k string   password hashing secret
//	-s string   token signing secret
//	-t int      token lifetime, minutes
//
// Arguments not listed above are ignored, so -c and subcommand arguments can
// share the command line.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.HashingSecret, "k", config.HashingSecret, "password hashing secret")
	fs.StringVar(&config.TokenSecret, "s", config.TokenSecret, "token signing secret")
	tokenDuration := fs.Int("t", int(config.TokenDuration.Minutes()), "token duration (in minutes)")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return err
	}

	config.TokenDuration = time.Duration(*tokenDuration) * time.Minute
	return nil
}
