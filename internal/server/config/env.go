package config

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/timex"
)

const (
	EnvSecret      = "JWT_SECRET"
	EnvExpiration  = "JWT_EXPIRATION"
	EnvDatabaseDSN = "DATABASE_DSN"
	EnvHTTPAddr    = "HTTP_ADDR"
	EnvGRPCAddr    = "GRPC_ADDR"
)

// parseEnv overlays values from the process environment. Unset variables
// leave the current value in place.
func parseEnv(config *Config) error {
	if v, ok := os.LookupEnv(EnvSecret); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv(EnvExpiration); ok {
		d, err := timex.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvExpiration, err)
		}
		config.TokenValidityDuration = d
	}
	if v, ok := os.LookupEnv(EnvDatabaseDSN); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(EnvHTTPAddr); ok {
		config.HTTPAddr = v
	}
	if v, ok := os.LookupEnv(EnvGRPCAddr); ok {
		config.GRPCHealthAddr = v
	}
	return nil
}
