// Package server runs the local terminal API.
//
// It owns the listener lifecycle: startup, shutdown on context cancellation
// and a bounded graceful drain of in-flight requests.
package server
