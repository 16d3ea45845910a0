package lang

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/iporosny/config-dz/log"
)

// DefaultMaxDepth is the default maximum nesting depth for blocks.
// Users may modify this before parsing to change the default.
var DefaultMaxDepth = 64

// floatLiteral is the permitted shape of a float literal.
var floatLiteral = regexp.MustCompile(`^-?\d+\.\d+$`)

// options holds parser configuration.
type options struct {
	maxDepth   int
	strict     bool
	quoteAware bool
}

// Option configures parsing behavior.
type Option func(*parser)

// WithMaxDepth sets the maximum nesting depth for blocks. Exceeding the
// bound fails with [ErrMaxDepthExceeded] in both strict and lenient modes.
// Non-positive depths keep [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(p *parser) {
		if depth > 0 {
			p.opts.maxDepth = depth
		}
	}
}

// WithStrict selects strict error reporting. In strict mode malformed
// defines, invalid number literals, and unterminated strings or blocks are
// returned as structured errors. The default (lenient) mode instead skips
// the offending construct, matching the legacy converter.
func WithStrict(strict bool) Option {
	return func(p *parser) {
		p.opts.strict = strict
	}
}

// WithQuoteAwareComments makes the comment scanner ignore '#' inside quoted
// string literals. The default scanner truncates at the first '#' on a line
// regardless of quoting, which matches the legacy converter.
func WithQuoteAwareComments(aware bool) Option {
	return func(p *parser) {
		p.opts.quoteAware = aware
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(p *parser) {
		p.logger = logger
	}
}

// parser holds the state of a single parse invocation. A fresh parser,
// including its constant table, is created per call to Parse.
type parser struct {
	opts   options
	consts *constTable
	logger log.Logger
}

// ParseReader parses a configuration tree from an io.Reader.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return Parse(ctx, string(data), opts...)
}

// Parse parses input text into a configuration tree.
//
// The pipeline cleanses comments and blank lines, extracts define forms
// into a constant table, parses the remaining lines into nested tables, and
// finally folds unreferenced constants into the root. Options can be
// provided to customize parsing behavior.
func Parse(ctx context.Context, input string, opts ...Option) (*Tree, error) {
	p := &parser{
		consts: newConstTable(),
	}
	p.opts.maxDepth = DefaultMaxDepth

	for _, opt := range opts {
		opt(p)
	}

	p.logger.TraceContext(ctx, "parse start",
		slog.Int("source_length", len(input)))

	text := cleanse(input, p.opts.quoteAware)

	text, err := p.extractDefines(text)
	if err != nil {
		return nil, err
	}

	root, _, err := p.parseBlock(strings.Split(text, "\n"), 0, 0)
	if err != nil {
		return nil, err
	}

	p.consts.fold(root)

	p.logger.TraceContext(ctx, "parse complete",
		slog.Int("root_keys", root.Len()),
		slog.Int("constant_count", len(p.consts.names)))

	return &Tree{Root: root}, nil
}

// parseBlock consumes lines starting at index start and accumulates a table
// until a terminating "}" line or end of input. It returns the table and
// the index of the first unconsumed line.
func (p *parser) parseBlock(
	lines []string,
	start, depth int,
) (*Table, int, error) {
	table := NewTable()
	i := start

	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if line == "" {
			i++

			continue
		}

		if line == "}" {
			return table, i + 1, nil
		}

		// ':' is checked before '='; a line containing both splits on ':'.
		sep := strings.IndexByte(line, ':')
		if sep < 0 {
			sep = strings.IndexByte(line, '=')
		}

		switch {
		case sep >= 0:
			key := strings.TrimSpace(line[:sep])
			rhs := strings.TrimSpace(line[sep+1:])

			if rhs == "{" || strings.HasSuffix(line, "{") {
				nested, next, err := p.openBlock(lines, i+1, depth, key)
				if err != nil {
					return nil, 0, err
				}

				table.Set(key, NewTableValue(nested))
				i = next

				continue
			}

			value, err := p.parseScalar(rhs)
			if err != nil {
				return nil, 0, WrapError(err).With(slog.Int("line", i+1))
			}

			table.Set(key, value)
			i++

		case strings.HasSuffix(line, "{"):
			key := strings.TrimSpace(strings.TrimSuffix(line, "{"))

			nested, next, err := p.openBlock(lines, i+1, depth, key)
			if err != nil {
				return nil, 0, err
			}

			table.Set(key, NewTableValue(nested))
			i = next

		default:
			// Unrecognized shape. Not part of the error taxonomy, so it is
			// skipped in both modes.
			p.logger.Trace("line skipped",
				slog.Int("line", i+1),
				slog.String("text", line))

			i++
		}
	}

	if depth > 0 && p.opts.strict {
		return nil, 0, ErrUnterminatedBlock.With(slog.Int("depth", depth))
	}

	return table, i, nil
}

// openBlock recursively parses the nested block bound to key, enforcing the
// configured nesting ceiling.
func (p *parser) openBlock(
	lines []string,
	start, depth int,
	key string,
) (*Table, int, error) {
	if depth+1 > p.opts.maxDepth {
		return nil, 0, ErrMaxDepthExceeded.
			With(slog.Int("depth", depth+1)).
			With(slog.Int("max_depth", p.opts.maxDepth)).
			With(slog.String("key", key))
	}

	p.logger.Trace("block open",
		slog.String("key", key),
		slog.Int("depth", depth+1))

	return p.parseBlock(lines, start, depth+1)
}

// parseScalar parses a single value expression. The precedence order is
// load-bearing: a bare word equal to a constant name must resolve to the
// constant's value, not be retained as a literal.
func (p *parser) parseScalar(expr string) (*Value, error) {
	s := strings.TrimSpace(expr)

	if s == "" {
		return NewString(""), nil
	}

	if strings.HasSuffix(s, ";") {
		s = strings.TrimSpace(s[:len(s)-1])
		if s == "" {
			return NewString(""), nil
		}
	}

	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			// Delimiters removed, no further unescaping.
			return NewString(s[1 : len(s)-1]), nil
		}
	}

	if isAllDigits(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			if p.opts.strict {
				return nil, ErrInvalidNumber.
					With(slog.String("token", s)).
					Wrap(err)
			}

			return NewIdentifier(s), nil
		}

		return NewInteger(n), nil
	}

	if floatLiteral.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err == nil {
			return NewFloat(f), nil
		}
	}

	if strings.EqualFold(s, "true") {
		return NewBool(true), nil
	}

	if strings.EqualFold(s, "false") {
		return NewBool(false), nil
	}

	if s[0] == '{' && s[len(s)-1] == '}' && len(s) >= 2 {
		return p.parseArray(s[1 : len(s)-1])
	}

	if v, ok := p.consts.resolve(s); ok {
		return v, nil
	}

	if p.opts.strict {
		if err := checkBareToken(s); err != nil {
			return nil, err
		}
	}

	return NewIdentifier(s), nil
}

// parseArray splits the interior of an array literal into items on commas
// that are neither inside a quoted span nor inside a nested brace span,
// then parses each item recursively.
func (p *parser) parseArray(content string) (*Value, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return NewArray(), nil
	}

	var (
		items   []*Value
		current strings.Builder
		inQuote bool
		quote   rune
		depth   int
	)

	for _, r := range content {
		switch {
		case (r == '\'' || r == '"') && !inQuote:
			inQuote = true
			quote = r

		case inQuote && r == quote:
			inQuote = false

		case r == '{' && !inQuote:
			depth++

		case r == '}' && !inQuote:
			depth--

		case r == ',' && !inQuote && depth == 0:
			item, err := p.parseScalar(current.String())
			if err != nil {
				return nil, err
			}

			items = append(items, item)
			current.Reset()

			continue
		}

		current.WriteRune(r)
	}

	if strings.TrimSpace(current.String()) != "" {
		item, err := p.parseScalar(current.String())
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return NewArray(items...), nil
}

// checkBareToken reports the strict-mode errors for tokens that failed
// every literal rule: an opening quote with no matching close, or a
// numeric-adjacent token that matches no numeric pattern.
func checkBareToken(s string) error {
	if s[0] == '"' || s[0] == '\'' {
		return ErrUnterminatedString.With(slog.String("token", s))
	}

	numeric := s[0] >= '0' && s[0] <= '9'
	if !numeric && len(s) > 1 && s[0] == '-' {
		numeric = s[1] >= '0' && s[1] <= '9'
	}

	if numeric {
		return ErrInvalidNumber.With(slog.String("token", s))
	}

	return nil
}

func isAllDigits(s string) bool {
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return len(s) > 0
}
