// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app wires the terminal process: local storage, the remote
// adapter, the service layer, the preferences blob, background workers and
// the local API server.
//
// The same [App] backs the long-running serve mode and the one-shot CLI
// commands; the latter simply never call [App.Run].
package app
