package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// RegisterFlags adds the configuration flags to fs. All defaults are zero
// values so that unset flags never shadow env or JSON values during merging.
//
// Flags:
//
//	-a, --address                local API address in format [host]:[port]
//	--db                         SQLite database path
//	--prefs                      UI preferences file path
//	--remote                     remote API base URL
//	--request-timeout            remote request timeout (e.g. "15s")
//	--api-token                  remote API bearer token
//	--sync-interval              drain ticker period (e.g. "5s")
//	--connectivity-interval      remote health probe period (e.g. "10s")
//	-c, --config                 json file path with configs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.VarP(&NetAddress{}, "address", "a", "Local API net address host:port")
	fs.String("db", "", "SQLite database path")
	fs.String("prefs", "", "UI preferences file path")
	fs.String("remote", "", "Remote API base URL")
	fs.Duration("request-timeout", 0, "Remote request timeout (e.g., 15s)")
	fs.String("api-token", "", "Remote API bearer token")
	fs.Duration("sync-interval", 0, "Drain ticker period (e.g., 5s)")
	fs.Duration("connectivity-interval", 0, "Remote health probe period (e.g., 10s)")
	fs.StringP("config", "c", "", "JSON config file path")
}

// parseFlags reads the values registered by [RegisterFlags] from an already
// parsed flag set. Flags that were never registered are treated as unset.
func parseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}

	var err error
	str := func(name string) string {
		if fs.Lookup(name) == nil {
			return ""
		}
		v, getErr := fs.GetString(name)
		err = errors.Join(err, getErr)
		return v
	}

	if f := fs.Lookup("address"); f != nil {
		cfg.Server.HTTPAddress = f.Value.String()
	}
	cfg.Storage.DB.DSN = str("db")
	cfg.Storage.Preferences.Path = str("prefs")
	cfg.Adapter.HTTPAddress = str("remote")
	cfg.Adapter.APIToken = str("api-token")
	cfg.JSONFilePath = str("config")

	if fs.Lookup("request-timeout") != nil {
		v, getErr := fs.GetDuration("request-timeout")
		err = errors.Join(err, getErr)
		cfg.Adapter.RequestTimeout = v
	}
	if fs.Lookup("sync-interval") != nil {
		v, getErr := fs.GetDuration("sync-interval")
		err = errors.Join(err, getErr)
		cfg.Workers.SyncInterval = v
	}
	if fs.Lookup("connectivity-interval") != nil {
		v, getErr := fs.GetDuration("connectivity-interval")
		err = errors.Join(err, getErr)
		cfg.Workers.ConnectivityInterval = v
	}

	if err != nil {
		return nil, fmt.Errorf("error reading flags: %w", err)
	}

	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
