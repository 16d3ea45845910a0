package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
)

// resolve is a [kong.ConfigurationLoader] that reads the tool
// configuration file as TOML.
//
// Keys match flag names, either flat or grouped in sections whose names
// become flag-name prefixes:
//
//	source = ["base.cfg"]
//
//	[log]
//	level = "debug"
//	pretty = false
//
// resolves --source, --log-level, and --log-pretty. Hyphens and
// underscores in key names are interchangeable. Command-line flags
// override configuration file values.
func resolve(r io.Reader) (kong.Resolver, error) {
	var values map[string]any

	_, err := toml.NewDecoder(r).Decode(&values)
	if err != nil {
		// A broken config file falls back to flag defaults.
		return config{}, nil
	}

	return config(flatten(values)), nil
}

// config implements [kong.Resolver] for TOML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	if value, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	// Not found, let Kong use defaults.
	return nil, nil //nolint:nilnil
}

// flatten joins nested tables into dashed flag names and renders numbers
// as strings, which Kong requires for value parsing.
func flatten(values map[string]any) map[string]any {
	result := make(map[string]any, len(values))

	for key, value := range values {
		switch v := value.(type) {
		case int64:
			result[key] = strconv.FormatInt(v, 10)

		case float64:
			result[key] = strconv.FormatFloat(v, 'f', -1, 64)

		case map[string]any:
			for sub, subValue := range flatten(v) {
				result[key+"-"+sub] = subValue
			}

		default:
			result[key] = v
		}
	}

	return result
}
