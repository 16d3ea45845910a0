// Package cli contains the command line interface for config-dz.
//
// # Usage
//
// The default command converts a configuration source to TOML:
//
//	config-dz input.cfg
//	config-dz json input.cfg -o out.json
//	cat input.cfg | config-dz yaml
//	config-dz check input.cfg
//
// # Configuration File
//
// Flag defaults are read from a TOML file in the user configuration
// directory (create it with "config-dz init"). Keys match flag names,
// either flat or grouped in sections:
//
//	[log]
//	level = "debug"
//	format = "text"
//
// Command-line flags override configuration file values.
//
// # Logging Options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: log output format (text, json)
//   - --log-time-layout: timestamp format (RFC3339, StampMilli, none, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorized output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: enable profiling (cpu, heap, allocs, trace, ...)
//   - --pprof-dir: profile output directory
package cli
