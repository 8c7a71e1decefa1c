package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
	"github.com/dmitrijs2005/authkeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration, decoded from JSON or
// YAML depending on the file extension. Durations use timex.Duration so both
// "15m" and "1d" are accepted.
//
// Pointer fields distinguish "absent" from "zero", so a file only overrides
// what it mentions.
type FileConfig struct {
	HTTPAddr              *string         `json:"http_addr" yaml:"http_addr"`
	GRPCHealthAddr        *string         `json:"grpc_health_addr" yaml:"grpc_health_addr"`
	Storage               *string         `json:"storage" yaml:"storage"`
	DatabaseDSN           *string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey             *string         `json:"secret_key" yaml:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration" yaml:"token_validity_duration"`
	HashConcurrency       *int            `json:"hash_concurrency" yaml:"hash_concurrency"`
	HealthCheckInterval   *timex.Duration `json:"health_check_interval" yaml:"health_check_interval"`
	LogLevel              *string         `json:"log_level" yaml:"log_level"`
}

// parseFile loads configuration values from the file named by -c/-config.
// If no file is given, config is left untouched.
func parseFile(config *Config) error {
	path := flagx.ConfigFileFlags()
	if path == "" {
		return nil
	}
	return loadFile(path, config)
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	c.apply(config)
	return nil
}

func (c *FileConfig) apply(config *Config) {
	if c.HTTPAddr != nil {
		config.HTTPAddr = *c.HTTPAddr
	}
	if c.GRPCHealthAddr != nil {
		config.GRPCHealthAddr = *c.GRPCHealthAddr
	}
	if c.Storage != nil {
		config.Storage = *c.Storage
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.HashConcurrency != nil {
		config.HashConcurrency = *c.HashConcurrency
	}
	if c.HealthCheckInterval != nil {
		config.HealthCheckInterval = c.HealthCheckInterval.Duration
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
}
