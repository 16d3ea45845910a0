package cmd

import (
	"bufio"
	"context"
	"io"
	"log/slog"

	"github.com/iporosny/config-dz/lang"
	"github.com/iporosny/config-dz/log"
)

// parseConfig holds the parser flags shared by every command that reads a
// configuration source.
type parseConfig struct {
	Strict     bool `help:"Fail on the first malformed construct instead of skipping it."`
	QuoteAware bool `help:"Keep '#' inside quoted strings when stripping comments."      name:"quote-aware"`
	MaxDepth   int  `default:"64"                                                        help:"Maximum block nesting depth." name:"max-depth"`
}

func (c parseConfig) options() []lang.Option {
	return []lang.Option{
		lang.WithStrict(c.Strict),
		lang.WithQuoteAwareComments(c.QuoteAware),
		lang.WithMaxDepth(c.MaxDepth),
		lang.WithLogger(log.Default()),
	}
}

// parse reads and parses the configuration source selected by source.
func (c parseConfig) parse(
	ctx context.Context,
	source string,
) (*lang.Tree, error) {
	r, closeSource, err := openSource(ctx, source)
	if err != nil {
		return nil, err
	}
	defer closeSource() //nolint:errcheck

	tree, err := lang.ParseReader(ctx, bufio.NewReader(r), c.options()...)
	if err != nil {
		return nil, err
	}

	log.TraceContext(ctx, "source parsed",
		slog.String("source", source),
		slog.Int("root_keys", tree.Root.Len()))

	return tree, nil
}

// emit renders the parsed tree to the output selected by path.
func emit(path string, render func(io.Writer) error) error {
	w, closeOutput, err := openOutput(path)
	if err != nil {
		return err
	}

	if err := render(w); err != nil {
		_ = closeOutput()

		return err
	}

	return closeOutput()
}

// TOML converts a configuration source to TOML.
type TOML struct {
	parseConfig `embed:""`

	Output string `help:"Write output to file instead of stdout" short:"o" type:"path"`
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin" name:"source"`
}

// Run executes the toml command.
func (t *TOML) Run(ctx context.Context) error {
	tree, err := t.parse(ctx, t.Source)
	if err != nil {
		return err
	}

	return emit(t.Output, func(w io.Writer) error {
		return tree.FormatTOML(ctx, w)
	})
}

// JSON converts a configuration source to JSON.
type JSON struct {
	parseConfig `embed:""`

	Indent int    `default:"2" help:"Indent width for JSON output" short:"i"`
	Output string `help:"Write output to file instead of stdout" short:"o" type:"path"`
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin" name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	tree, err := j.parse(ctx, j.Source)
	if err != nil {
		return err
	}

	return emit(j.Output, func(w io.Writer) error {
		return tree.FormatJSON(ctx, w, j.Indent)
	})
}

// YAML converts a configuration source to YAML.
type YAML struct {
	parseConfig `embed:""`

	Indent int    `default:"2" help:"Indent width for YAML output" short:"i"`
	Output string `help:"Write output to file instead of stdout" short:"o" type:"path"`
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin" name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	tree, err := y.parse(ctx, y.Source)
	if err != nil {
		return err
	}

	return emit(y.Output, func(w io.Writer) error {
		return tree.FormatYAML(ctx, w, y.Indent)
	})
}
