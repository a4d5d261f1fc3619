// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validate checks that the merged [StructuredConfig] is self-consistent.
// Durations must not be negative; missing values are filled later by
// [TerminalConfig] defaults.
func (cfg *StructuredConfig) validate() error {
	if cfg.Adapter.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidAdapterConfigs)
	}

	if cfg.Workers.SyncInterval < 0 || cfg.Workers.ConnectivityInterval < 0 {
		return fmt.Errorf("%w: negative interval", ErrInvalidWorkerConfigs)
	}

	return nil
}

func (cfg *TerminalConfig) validate() error {
	if strings.TrimSpace(cfg.Storage.DSN) == "" || strings.TrimSpace(cfg.Storage.PreferencesPath) == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	u, err := url.Parse(cfg.Adapter.HTTPAddress)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: remote address must be an absolute URL", ErrInvalidAdapterConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.ConnectivityInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
