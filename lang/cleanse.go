package lang

import "strings"

// cleanse strips comments and blank lines from raw input text.
//
// Each line is truncated at its comment marker, right-trimmed, and dropped
// entirely if nothing remains. Surviving lines are re-joined with newlines.
//
// The legacy scanner truncates at the first '#' regardless of quoting, so a
// '#' inside a string literal starts a comment. When quoteAware is set, '#'
// inside a single- or double-quoted span is left alone instead.
func cleanse(text string, quoteAware bool) string {
	lines := make([]string, 0, strings.Count(text, "\n")+1)

	for line := range strings.Lines(text) {
		line = strings.TrimSuffix(line, "\n")

		if quoteAware {
			line = cutCommentQuoteAware(line)
		} else if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		line = strings.TrimRight(line, " \t\r\v\f")
		if line == "" {
			continue
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// cutCommentQuoteAware truncates line at the first '#' that is not inside a
// quoted span. An unterminated quote swallows the rest of the line, matching
// how the value parser treats the open quote as part of the token.
func cutCommentQuoteAware(line string) string {
	var (
		inQuote bool
		quote   rune
	)

	for i, r := range line {
		switch {
		case inQuote:
			if r == quote {
				inQuote = false
			}

		case r == '\'' || r == '"':
			inQuote = true
			quote = r

		case r == '#':
			return line[:i]
		}
	}

	return line
}
