// Package http implements the local terminal API consumed by the UI shell.
//
// It exposes route wiring, request handlers, and middleware. Every request
// gets a trace id and an access log line before it is delegated to the
// service layer; errors are mapped to status codes by statusFromError.
package http
