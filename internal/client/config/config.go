// Package config loads runtime configuration for the users CLI.
//
// Sources, later ones winning: defaults, USERSVC_* environment variables,
// a JSON file given by -c/-config, then flags.
//
//	-a string   address:port of the users gRPC endpoint
//	-t string   access token for protected commands
//	-w int      per-call timeout, seconds
package config

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/usersvc/internal/flagx"
)

// Config holds runtime settings for the CLI. Token is never written to disk.
type Config struct {
	ServerEndpointAddr string        `env:"SERVER_ADDR"`
	Token              string        `env:"TOKEN"`
	Timeout            time.Duration `env:"TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.Timeout = 10 * time.Second
}

type jsonConfig struct {
	ServerEndpointAddr *string `json:"server_endpoint_addr"`
	TimeoutSeconds     *int    `json:"timeout_seconds"`
}

// LoadConfig builds a Config from args (program name excluded) and environ.
func LoadConfig(args, environ []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "USERSVC_", Environment: vars}); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	if err := parseJSON(cfg, flagx.ConfigFileFlag(args)); err != nil {
		return nil, fmt.Errorf("config: file: %w", err)
	}

	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("config: flags: %w", err)
	}

	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("config: timeout must be positive")
	}
	return cfg, nil
}

func parseJSON(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var c jsonConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if c.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *c.ServerEndpointAddr
	}
	if c.TimeoutSeconds != nil {
		cfg.Timeout = time.Duration(*c.TimeoutSeconds) * time.Second
	}
	return nil
}

func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.Token, "t", cfg.Token, "access token")
	timeout := fs.Int("w", int(cfg.Timeout.Seconds()), "call timeout (in seconds)")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-a", "-t", "-w"})); err != nil {
		return err
	}

	cfg.Timeout = time.Duration(*timeout) * time.Second
	return nil
}
