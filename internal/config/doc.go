// Package config provides configuration loading, merging, and validation
// facilities for voicenudge-cli.
//
// Configuration is assembled from multiple sources in the following priority
// order (an earlier source wins over a later one):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetStructuredConfig] for the raw merged
// configuration and [GetClientConfig] for the validated client view with
// defaults applied.
package config
