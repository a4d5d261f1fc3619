// Package config provides configuration loading, merging, and validation
// facilities for the terminal.
//
// Configuration is assembled from multiple sources in the following order:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Sources are merged with mergo, so a field already set by an earlier source
// is kept and later sources only fill the gaps.
//
// The main entry points are [GetStructuredConfig] for the raw merged values
// and [GetTerminalConfig] for the validated runtime view with defaults.
package config
