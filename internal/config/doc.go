// Package config provides configuration loading, merging, and validation
// facilities for skyshelf.
//
// Configuration is assembled from multiple sources; for every field the
// first source that sets it wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON or TOML config file
//
// The main entry points are [GetClientConfig] for the terminal client and
// [GetServerConfig] for the HTTP API process.
package config
