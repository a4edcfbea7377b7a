// Package config loads speechwatch settings from defaults, an optional YAML
// file and command line overrides.
package config
