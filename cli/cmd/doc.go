// Package cmd implements the config-dz subcommands.
//
// Each command parses one or more configuration sources with [lang.Parse]
// and renders the resulting tree in its output format. File access and
// output selection live here; the lang package itself performs no I/O.
package cmd

const (
	// CacheIdentifier is the kong variable identifier containing the path
	// to the cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path
	// to the tool configuration file.
	ConfigIdentifier = "config"
)
