package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// Defaults applied to fields no source has set.
const (
	DefaultDSN                  = "pos-terminal.db"
	DefaultPreferencesPath      = "preferences.json"
	DefaultServerAddress        = "localhost:8089"
	DefaultRequestTimeout       = 15 * time.Second
	DefaultSyncInterval         = 5 * time.Second
	DefaultConnectivityInterval = 10 * time.Second
)

// TerminalStorage holds the local persistence settings.
type TerminalStorage struct {
	// DSN is the SQLite database path.
	DSN string
	// PreferencesPath is the UI preferences JSON file.
	PreferencesPath string
}

// TerminalAdapter holds the remote API settings.
type TerminalAdapter struct {
	// HTTPAddress is the remote base URL.
	HTTPAddress string
	// RequestTimeout bounds every remote call.
	RequestTimeout time.Duration
	// APIToken is the static bearer token.
	APIToken string
}

// TerminalServer holds the local API settings.
type TerminalServer struct {
	// HTTPAddress is the local listen address.
	HTTPAddress string
}

// TerminalWorkers holds the background job settings.
type TerminalWorkers struct {
	// SyncInterval is the drain ticker period.
	SyncInterval time.Duration
	// ConnectivityInterval is the health probe period.
	ConnectivityInterval time.Duration
}

// TerminalConfig is the runtime configuration of the terminal assembled from
// [StructuredConfig] with defaults applied.
type TerminalConfig struct {
	Storage TerminalStorage
	Adapter TerminalAdapter
	Server  TerminalServer
	Workers TerminalWorkers
}

// GetTerminalConfig builds and validates the terminal config view from the
// merged structured configuration.
func GetTerminalConfig(fs *pflag.FlagSet) (*TerminalConfig, error) {
	cfg, err := GetStructuredConfig(fs)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	terminalCfg := newTerminalConfig(cfg)

	return terminalCfg, terminalCfg.validate()
}

func newTerminalConfig(cfg *StructuredConfig) *TerminalConfig {
	return &TerminalConfig{
		Storage: TerminalStorage{
			DSN:             withDefault(cfg.Storage.DB.DSN, DefaultDSN),
			PreferencesPath: withDefault(cfg.Storage.Preferences.Path, DefaultPreferencesPath),
		},
		Adapter: TerminalAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: withDefault(cfg.Adapter.RequestTimeout, DefaultRequestTimeout),
			APIToken:       cfg.Adapter.APIToken,
		},
		Server: TerminalServer{
			HTTPAddress: withDefault(cfg.Server.HTTPAddress, DefaultServerAddress),
		},
		Workers: TerminalWorkers{
			SyncInterval:         withDefault(cfg.Workers.SyncInterval, DefaultSyncInterval),
			ConnectivityInterval: withDefault(cfg.Workers.ConnectivityInterval, DefaultConnectivityInterval),
		},
	}
}

func withDefault[T comparable](value, def T) T {
	var zero T
	if value == zero {
		return def
	}
	return value
}
