package cmd

import (
	"bufio"
	"context"
	"log/slog"

	"github.com/iporosny/config-dz/lang"
	"github.com/iporosny/config-dz/log"
)

// Check validates a configuration source without emitting output.
// Parsing always runs in strict mode so every taxonomy error is reported.
type Check struct {
	QuoteAware bool `help:"Keep '#' inside quoted strings when stripping comments." name:"quote-aware"`
	MaxDepth   int  `default:"64"                                                   help:"Maximum block nesting depth." name:"max-depth"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin" name:"source"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	r, closeSource, err := openSource(ctx, c.Source)
	if err != nil {
		return err
	}
	defer closeSource() //nolint:errcheck

	tree, err := lang.ParseReader(ctx, bufio.NewReader(r),
		lang.WithStrict(true),
		lang.WithQuoteAwareComments(c.QuoteAware),
		lang.WithMaxDepth(c.MaxDepth),
		lang.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "source is valid",
		slog.String("source", c.Source),
		slog.Int("root_keys", tree.Root.Len()))

	return nil
}
