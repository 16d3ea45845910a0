package lang

import (
	"log/slog"
	"regexp"
	"strings"
)

// defineName is the permitted shape of a constant name.
var defineName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// constTable maps constant names to parsed values. It is created fresh for
// every parse call and populated in left-to-right order of appearance of
// define forms, so a define may reference only defines before it.
type constTable struct {
	names  []string
	values map[string]*Value
	used   map[string]bool
}

func newConstTable() *constTable {
	return &constTable{
		values: make(map[string]*Value),
		used:   make(map[string]bool),
	}
}

// define binds name to value. A repeated name keeps its original position
// and takes the latest value.
func (c *constTable) define(name string, v *Value) {
	if _, exists := c.values[name]; !exists {
		c.names = append(c.names, name)
	}

	c.values[name] = v
}

// resolve looks up name and marks it as referenced.
func (c *constTable) resolve(name string) (*Value, bool) {
	v, ok := c.values[name]
	if ok {
		c.used[name] = true
	}

	return v, ok
}

// fold copies every constant that was never referenced into root, in
// definition order, skipping names already bound as data keys.
func (c *constTable) fold(root *Table) {
	for _, name := range c.names {
		if c.used[name] || root.Has(name) {
			continue
		}

		root.Set(name, c.values[name])
	}
}

// extractDefines collects all (define name value) forms from text into the
// parser's constant table and returns the text with those forms removed.
//
// Forms are matched with a parenthesis-balancing, quote-skipping scan, so a
// define's value may itself contain parenthesized or quoted sub-expressions.
// Each value expression is parsed against the constants collected so far;
// forward references fall through to the identifier rule.
func (p *parser) extractDefines(text string) (string, error) {
	const opener = "(define"

	var out strings.Builder

	i := 0

	for {
		rel := strings.Index(text[i:], opener)
		if rel < 0 {
			out.WriteString(text[i:])

			break
		}

		start := i + rel
		after := start + len(opener)

		// The opener must be a whole token: "(defined" is ordinary text.
		if after >= len(text) || !isSpaceByte(text[after]) {
			out.WriteString(text[i:after])
			i = after

			continue
		}

		end, ok := matchParen(text, start)
		if !ok {
			if p.opts.strict {
				return "", ErrMalformedDefine.
					With(slog.Int("offset", start)).
					With(slog.String("reason", "unbalanced parentheses"))
			}

			// Leave the dangling form for the line parser to skip over.
			out.WriteString(text[i:])

			break
		}

		name, expr, err := splitDefine(text[after:end])
		if err != nil {
			if p.opts.strict {
				return "", err
			}

			// Keep the malformed form verbatim; its lines will be skipped.
			out.WriteString(text[i : end+1])
			i = end + 1

			continue
		}

		value, err := p.parseScalar(expr)
		if err != nil {
			return "", ErrMalformedDefine.
				With(slog.String("name", name)).
				Wrap(err)
		}

		p.consts.define(name, value)
		p.logger.Trace("define collected",
			slog.String("name", name),
			slog.String("kind", value.Kind.String()))

		out.WriteString(text[i:start])

		// Consume trailing horizontal whitespace and an optional ';' but
		// preserve the line break so surrounding lines do not merge.
		j := end + 1
		for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
			j++
		}

		if j < len(text) && text[j] == ';' {
			j++
		}

		i = j
	}

	return out.String(), nil
}

// splitDefine splits the interior of a define form into its name and value
// expression, validating the name shape.
func splitDefine(body string) (name, expr string, err error) {
	body = strings.TrimSpace(body)

	sep := strings.IndexFunc(body, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if sep < 0 {
		return "", "", ErrMalformedDefine.
			With(slog.String("form", body)).
			With(slog.String("reason", "missing value expression"))
	}

	name = body[:sep]
	expr = strings.TrimSpace(body[sep:])

	if !defineName.MatchString(name) {
		return "", "", ErrMalformedDefine.
			With(slog.String("name", name)).
			With(slog.String("reason", "invalid constant name"))
	}

	if expr == "" {
		return "", "", ErrMalformedDefine.
			With(slog.String("name", name)).
			With(slog.String("reason", "missing value expression"))
	}

	return name, expr, nil
}

// matchParen returns the index of the parenthesis closing the one at open.
// Parentheses inside quoted spans do not count toward the balance.
func matchParen(s string, open int) (int, bool) {
	var (
		depth   int
		inQuote bool
		quote   byte
	)

	for i := open; i < len(s); i++ {
		c := s[i]

		switch {
		case inQuote:
			if c == quote {
				inQuote = false
			}

		case c == '\'' || c == '"':
			inQuote = true
			quote = c

		case c == '(':
			depth++

		case c == ')':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}

	return 0, false
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
