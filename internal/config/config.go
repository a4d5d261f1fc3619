// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/spf13/pflag"
)

// StructuredConfig is the top-level configuration container of the terminal.
// It is populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Storage holds the local database and the preferences file locations.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address of the local terminal API.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the remote system-of-record endpoint settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the intervals of the background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the local persistence settings.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`

	// Preferences holds the UI preferences file settings.
	Preferences Preferences `envPrefix:"PREFERENCES_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite file path or DSN (e.g. "pos-terminal.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Preferences holds the location of the UI preferences blob.
type Preferences struct {
	// Path is the JSON file the preferences are persisted to.
	// Env: STORAGE_PREFERENCES_PATH
	Path string `env:"PATH"`
}

// Server holds the local terminal API settings.
type Server struct {
	// HTTPAddress is the TCP address the local API listens on, in
	// "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
}

// Adapter holds the remote API settings.
type Adapter struct {
	// HTTPAddress is the base URL of the remote API
	// (e.g. "https://pos.example.com").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every remote call.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// APIToken is sent as a bearer token on every remote call.
	// Env: ADAPTER_API_TOKEN
	APIToken string `env:"API_TOKEN"`
}

// Workers holds the background job settings.
type Workers struct {
	// SyncInterval is the period of the drain ticker.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// ConnectivityInterval is the period of the remote health probe.
	// Env: WORKERS_CONNECTIVITY_INTERVAL
	ConnectivityInterval time.Duration `env:"CONNECTIVITY_INTERVAL"`
}

// GetStructuredConfig loads and merges the configuration from all available
// sources:
//  1. Environment variables
//  2. Command-line flags already parsed into fs (may be nil)
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a merged *StructuredConfig or an error if any source fails to load.
func GetStructuredConfig(fs *pflag.FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(fs).
		withJSON().
		build()
}
