// Copyright 2025 megaredb
// SPDX-License-Identifier: Apache-2.0

package pgstate

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

const (
	cfgKeyBackendURL      = "backend_url"
	cfgKeyRequestTimeout  = "request_timeout"
	cfgKeyHistoryPageSize = "history_page_size"

	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "PGMANAGER"
)

// Config holds the client-side settings of the state layer
type Config struct {
	BackendURL      string        // base URL of the backend engine
	RequestTimeout  time.Duration // per-request HTTP timeout
	HistoryPageSize int           // page size for the query history view
	Logger          *slog.Logger
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		BackendURL:      "http://localhost:8080",
		RequestTimeout:  30 * time.Second,
		HistoryPageSize: 20,
		Logger:          slog.Default(),
	}
}

// LoadConfig reads config.yaml from configDir using Viper, with environment
// overrides under the PGMANAGER_ prefix. A missing config file is not an
// error; defaults apply.
func LoadConfig(configDir string) (*Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetDefault(cfgKeyBackendURL, def.BackendURL)
	v.SetDefault(cfgKeyRequestTimeout, def.RequestTimeout)
	v.SetDefault(cfgKeyHistoryPageSize, def.HistoryPageSize)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Config{
		BackendURL:      v.GetString(cfgKeyBackendURL),
		RequestTimeout:  v.GetDuration(cfgKeyRequestTimeout),
		HistoryPageSize: v.GetInt(cfgKeyHistoryPageSize),
		Logger:          slog.Default(),
	}, nil
}
