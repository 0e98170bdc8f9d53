// Package config defines beacon settings shared by all commands and provides
// helpers to load, validate and save them in YAML format.
//
// The Config type holds the user identity, deep-link hosts, location provider
// selection, timing bounds and siren tone parameters. Validate fills in
// defaults so a missing settings file still produces a usable configuration.
package config
