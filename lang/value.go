package lang

import (
	"iter"
	"strconv"
)

// Kind indicates the type of a parsed value.
type Kind int

const (
	// KindString represents a quoted string literal.
	KindString Kind = iota

	// KindInteger represents an unsigned decimal integer literal.
	KindInteger

	// KindFloat represents a decimal floating-point literal.
	KindFloat

	// KindBool represents a boolean literal.
	KindBool

	// KindArray represents an ordered sequence of values.
	KindArray

	// KindTable represents an ordered mapping of unique keys to values.
	KindTable

	// KindIdentifier represents a bare token retained as a literal string.
	KindIdentifier
)

// String returns a string representation of the value kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"

	case KindInteger:
		return "Integer"

	case KindFloat:
		return "Float"

	case KindBool:
		return "Bool"

	case KindArray:
		return "Array"

	case KindTable:
		return "Table"

	case KindIdentifier:
		return "Identifier"

	default:
		return "Unknown"
	}
}

// Value represents any value in the configuration language.
type Value struct {
	Kind Kind
	// Exactly one of these is meaningful based on Kind
	Str   string   // KindString, KindIdentifier
	Int   int64    // KindInteger
	Float float64  // KindFloat
	Bool  bool     // KindBool
	Items []*Value // KindArray
	Table *Table   // KindTable
}

// NewString creates a new string value.
func NewString(s string) *Value {
	return &Value{Kind: KindString, Str: s}
}

// NewInteger creates a new integer value.
func NewInteger(i int64) *Value {
	return &Value{Kind: KindInteger, Int: i}
}

// NewFloat creates a new float value.
func NewFloat(f float64) *Value {
	return &Value{Kind: KindFloat, Float: f}
}

// NewBool creates a new boolean value.
func NewBool(b bool) *Value {
	return &Value{Kind: KindBool, Bool: b}
}

// NewArray creates a new array value from the given items.
func NewArray(items ...*Value) *Value {
	return &Value{Kind: KindArray, Items: items}
}

// NewIdentifier creates a new identifier value holding the raw token.
func NewIdentifier(token string) *Value {
	return &Value{Kind: KindIdentifier, Str: token}
}

// NewTableValue wraps a table as a value.
func NewTableValue(t *Table) *Value {
	return &Value{Kind: KindTable, Table: t}
}

// Table is an ordered mapping from unique string keys to values.
// Re-assigning an existing key overwrites its value in place;
// the key keeps its original insertion position.
type Table struct {
	keys    []string
	entries map[string]*Value
}

// NewTable creates a new empty table.
func NewTable() *Table {
	return &Table{
		entries: make(map[string]*Value),
	}
}

// Set binds key to value. Last write wins.
func (t *Table) Set(key string, v *Value) {
	if _, exists := t.entries[key]; !exists {
		t.keys = append(t.keys, key)
	}

	t.entries[key] = v
}

// Get retrieves the value bound to key.
// Returns (nil, false) if the key is not present.
func (t *Table) Get(key string) (*Value, bool) {
	v, ok := t.entries[key]

	return v, ok
}

// Has reports whether key is present in the table.
func (t *Table) Has(key string) bool {
	_, ok := t.entries[key]

	return ok
}

// Len returns the number of keys in the table.
func (t *Table) Len() int { return len(t.keys) }

// Keys returns the table's keys in insertion order.
func (t *Table) Keys() []string {
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)

	return keys
}

// All returns an iterator over all entries in insertion order.
func (t *Table) All() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		for _, key := range t.keys {
			if !yield(key, t.entries[key]) {
				return
			}
		}
	}
}

// Tree is the root table produced by a parse call.
// It is immutable after Parse returns and may be serialized any number of
// times from any goroutine.
type Tree struct {
	Root *Table
}

// literalString returns the raw textual form of a scalar value, without any
// quoting or escaping. Used by trace logging and the serializer's fallback
// path.
func (v *Value) literalString() string {
	switch v.Kind {
	case KindString, KindIdentifier:
		return v.Str

	case KindInteger:
		return strconv.FormatInt(v.Int, 10)

	case KindFloat:
		return formatFloat(v.Float)

	case KindBool:
		return strconv.FormatBool(v.Bool)

	default:
		return v.Kind.String()
	}
}

// formatFloat renders f as a decimal literal with at least one fractional
// digit, so that floats survive re-parsing as floats.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)

	for _, r := range s {
		if r == '.' || r == 'e' || r == 'E' {
			return s
		}
	}

	return s + ".0"
}
