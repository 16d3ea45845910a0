package lang

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// TOML renders the tree as normalized TOML text.
//
// At each table level, scalar- and array-valued keys are emitted first in
// lexicographic order, followed by table-valued keys as [dotted.path]
// section headers, also sorted. This re-orders keys relative to insertion
// order. Strings are double-quoted and escaped identically at every
// nesting depth.
func (t *Tree) TOML() string {
	if t == nil || t.Root == nil {
		return ""
	}

	var b strings.Builder
	writeTable(&b, t.Root, "")

	return strings.TrimSuffix(b.String(), "\n")
}

// WriteTOML renders the tree as TOML to w.
func (t *Tree) WriteTOML(w io.Writer) error {
	_, err := io.WriteString(w, t.TOML()+"\n")
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

func writeTable(b *strings.Builder, table *Table, path string) {
	var scalar, nested []string

	for key, value := range table.All() {
		if value.Kind == KindTable {
			nested = append(nested, key)
		} else {
			scalar = append(scalar, key)
		}
	}

	sort.Strings(scalar)
	sort.Strings(nested)

	for _, key := range scalar {
		value, _ := table.Get(key)
		b.WriteString(key)
		b.WriteString(" = ")
		b.WriteString(renderScalar(value))
		b.WriteByte('\n')
	}

	for _, key := range nested {
		value, _ := table.Get(key)

		full := key
		if path != "" {
			full = path + "." + key
		}

		b.WriteByte('[')
		b.WriteString(full)
		b.WriteString("]\n")
		writeTable(b, value.Table, full)
	}
}

// renderScalar renders a non-table value as a TOML literal. Array items
// recurse through the same routine so string escaping is applied uniformly
// regardless of depth.
func renderScalar(v *Value) string {
	switch v.Kind {
	case KindString, KindIdentifier:
		return `"` + escapeString(v.literalString()) + `"`

	case KindInteger:
		return strconv.FormatInt(v.Int, 10)

	case KindFloat:
		return formatFloat(v.Float)

	case KindBool:
		return strconv.FormatBool(v.Bool)

	case KindArray:
		items := make([]string, len(v.Items))
		for i, item := range v.Items {
			items[i] = renderScalar(item)
		}

		return "[" + strings.Join(items, ", ") + "]"

	default:
		// Unreachable once the Kind switch above is exhaustive.
		return `"` + escapeString(fmt.Sprintf("%v", v)) + `"`
	}
}

// escapeString escapes a string for inclusion in a double-quoted TOML
// literal. Control codepoints without a short escape are emitted as
// \u00XX with lowercase hex digits.
func escapeString(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 32 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}

	return b.String()
}
