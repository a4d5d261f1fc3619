package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8089}, expected: "localhost:8089"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only port no host", addr: NetAddress{Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectError  bool
		errorMsg     string
		expectedAddr NetAddress
	}{
		{name: "valid localhost", input: "localhost:8089", expectedAddr: NetAddress{Host: "localhost", Port: 8089}},
		{name: "valid IPv4", input: "127.0.0.1:9090", expectedAddr: NetAddress{Host: "127.0.0.1", Port: 9090}},
		{name: "all interfaces", input: ":8089", expectedAddr: NetAddress{Port: 8089}},
		{name: "missing colon", input: "localhost8080", expectError: true, errorMsg: "need address in a form `host:port`"},
		{name: "multiple colons", input: "host:port:extra", expectError: true, errorMsg: "need address in a form `host:port`"},
		{name: "non-numeric port", input: "localhost:abc", expectError: true, errorMsg: "invalid syntax"},
		{name: "zero port", input: "localhost:0", expectError: true, errorMsg: "port number is a positive integer"},
		{name: "port out of range", input: "localhost:70000", expectError: true, errorMsg: "port number is a positive integer"},
		{name: "invalid IP address", input: "invalid.host:8080", expectError: true, errorMsg: "incorrect IP-address provided"},
		{name: "only colon", input: ":", expectError: true, errorMsg: "invalid syntax"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := &NetAddress{}
			err := addr.Set(tt.input)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedAddr, *addr)
			}
		})
	}
}

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, cfg *StructuredConfig)
	}{
		{
			name: "all flags set",
			args: []string{
				"-a", "localhost:9000",
				"--db", "/tmp/terminal.db",
				"--prefs", "/tmp/prefs.json",
				"--remote", "https://pos.example.com",
				"--request-timeout", "30s",
				"--api-token", "tok",
				"--sync-interval", "3s",
				"--connectivity-interval", "20s",
				"-c", "/path/to/config.json",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "localhost:9000", cfg.Server.HTTPAddress)
				assert.Equal(t, "/tmp/terminal.db", cfg.Storage.DB.DSN)
				assert.Equal(t, "/tmp/prefs.json", cfg.Storage.Preferences.Path)
				assert.Equal(t, "https://pos.example.com", cfg.Adapter.HTTPAddress)
				assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
				assert.Equal(t, "tok", cfg.Adapter.APIToken)
				assert.Equal(t, 3*time.Second, cfg.Workers.SyncInterval)
				assert.Equal(t, 20*time.Second, cfg.Workers.ConnectivityInterval)
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
			},
		},
		{
			name: "config long flag",
			args: []string{"--config", "/path/to/config.json"},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
			},
		},
		{
			name: "no flags",
			args: []string{},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, StructuredConfig{}, *cfg)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseFlags(newFlagSet(t, tt.args...))
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestParseFlags_InvalidAddress(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)

	err := fs.Parse([]string{"-a", "localhost"})
	require.Error(t, err)
}

// TestParseFlags_UnregisteredFlags verifies that a flag set without the
// configuration flags yields an empty config instead of an error.
func TestParseFlags_UnregisteredFlags(t *testing.T) {
	cfg, err := parseFlags(pflag.NewFlagSet("bare", pflag.ContinueOnError))
	require.NoError(t, err)
	assert.Equal(t, StructuredConfig{}, *cfg)
}
