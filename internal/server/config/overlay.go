package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/usersvc/internal/flagx"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// overlay is the shape shared by config files and the environment. Nil
// fields are absent and leave the underlying value alone.
type overlay struct {
	EndpointAddrGRPC *string        `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc" env:"ENDPOINT_ADDR_GRPC"`
	DatabaseDSN      *string        `json:"database_dsn" yaml:"database_dsn" env:"DATABASE_DSN"`
	LogLevel         *string        `json:"log_level" yaml:"log_level" env:"LOG_LEVEL"`
	Hashing          hashingOverlay `json:"hashing" yaml:"hashing" envPrefix:"HASHING_"`
	Token            tokenOverlay   `json:"token" yaml:"token" envPrefix:"TOKEN_"`
	Admin            adminOverlay   `json:"admin" yaml:"admin" envPrefix:"ADMIN_"`
}

type hashingOverlay struct {
	Secret      *string `json:"secret" yaml:"secret" env:"SECRET"`
	MemorySize  *uint32 `json:"memory_size" yaml:"memory_size" env:"MEMORY_SIZE"`
	Iterations  *uint32 `json:"iterations" yaml:"iterations" env:"ITERATIONS"`
	Parallelism *uint8  `json:"parallelism" yaml:"parallelism" env:"PARALLELISM"`
}

type tokenOverlay struct {
	Secret          *string `json:"secret" yaml:"secret" env:"SECRET"`
	DurationMinutes *int    `json:"duration_minutes" yaml:"duration_minutes" env:"DURATION_MINUTES"`
	Issuer          *string `json:"issuer" yaml:"issuer" env:"ISSUER"`
	Audience        *string `json:"audience" yaml:"audience" env:"AUDIENCE"`
}

type adminOverlay struct {
	Username *string `json:"username" yaml:"username" env:"USERNAME"`
	Email    *string `json:"email" yaml:"email" env:"EMAIL"`
	Password *string `json:"password" yaml:"password" env:"PASSWORD"`
}

func (o *overlay) apply(c *Config) {
	set(&c.EndpointAddrGRPC, o.EndpointAddrGRPC)
	set(&c.DatabaseDSN, o.DatabaseDSN)
	set(&c.LogLevel, o.LogLevel)

	set(&c.HashingSecret, o.Hashing.Secret)
	set(&c.HashingMemorySize, o.Hashing.MemorySize)
	set(&c.HashingIterations, o.Hashing.Iterations)
	set(&c.HashingParallelism, o.Hashing.Parallelism)

	set(&c.TokenSecret, o.Token.Secret)
	if o.Token.DurationMinutes != nil {
		c.TokenDuration = time.Duration(*o.Token.DurationMinutes) * time.Minute
	}
	set(&c.TokenIssuer, o.Token.Issuer)
	set(&c.TokenAudience, o.Token.Audience)

	set(&c.AdminUsername, o.Admin.Username)
	set(&c.AdminEmail, o.Admin.Email)
	set(&c.AdminPassword, o.Admin.Password)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// parseEnv overlays USERSVC_* variables. Values from dotEnvFile are used
// only where environ does not set the same variable; a missing file is fine.
func parseEnv(c *Config, dotEnvFile string, environ []string) error {
	vars := make(map[string]string)

	if dotEnvFile != "" {
		fromFile, err := godotenv.Read(dotEnvFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s: %w", dotEnvFile, err)
		}
		for k, v := range fromFile {
			vars[k] = v
		}
	}
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}

	var o overlay
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix, Environment: vars}); err != nil {
		return err
	}
	o.apply(c)
	return nil
}

// parseFile overlays the file named by -c/-config. YAML is chosen by a .yaml
// or .yml extension, JSON otherwise. Unknown keys are rejected.
func parseFile(c *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var o overlay
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&o); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	o.apply(c)
	return nil
}
