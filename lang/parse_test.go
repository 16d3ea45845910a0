package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestParse_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  Kind
		want  string // rendered TOML literal
	}{
		{
			name:  "integer",
			input: "port: 8080",
			kind:  KindInteger,
			want:  "8080",
		},
		{
			name:  "float",
			input: "ratio: 3.14",
			kind:  KindFloat,
			want:  "3.14",
		},
		{
			name:  "negative float",
			input: "offset: -0.5",
			kind:  KindFloat,
			want:  "-0.5",
		},
		{
			name:  "bool lowercase",
			input: "debug: true",
			kind:  KindBool,
			want:  "true",
		},
		{
			name:  "bool uppercase",
			input: "debug: TRUE",
			kind:  KindBool,
			want:  "true",
		},
		{
			name:  "double-quoted string",
			input: `name: "abc"`,
			kind:  KindString,
			want:  `"abc"`,
		},
		{
			name:  "single-quoted string",
			input: "name: 'abc'",
			kind:  KindString,
			want:  `"abc"`,
		},
		{
			name:  "empty value",
			input: "name:",
			kind:  KindString,
			want:  `""`,
		},
		{
			name:  "trailing semicolon stripped",
			input: "port: 8080;",
			kind:  KindInteger,
			want:  "8080",
		},
		{
			name:  "bare identifier",
			input: "mode: fast",
			kind:  KindIdentifier,
			want:  `"fast"`,
		},
		{
			name:  "signed integer stays identifier",
			input: "delta: -5",
			kind:  KindIdentifier,
			want:  `"-5"`,
		},
		{
			name:  "equals separator",
			input: "port = 8080",
			kind:  KindInteger,
			want:  "8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if tree.Root.Len() != 1 {
				t.Fatalf("expected 1 key, got %d", tree.Root.Len())
			}

			key := tree.Root.Keys()[0]

			v, ok := tree.Root.Get(key)
			if !ok {
				t.Fatalf("key %q missing", key)
			}

			if v.Kind != tt.kind {
				t.Errorf("expected kind %v, got %v", tt.kind, v.Kind)
			}

			if got := renderScalar(v); got != tt.want {
				t.Errorf("expected literal %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParse_Arrays(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "mixed scalars",
			input: `items: {1, 2, "x"}`,
			want:  `items = [1, 2, "x"]`,
		},
		{
			name:  "empty",
			input: "items: {}",
			want:  "items = []",
		},
		{
			name:  "nested arrays",
			input: "items: {{1, 2}, {3, 4}}",
			want:  "items = [[1, 2], [3, 4]]",
		},
		{
			name:  "comma inside quotes",
			input: `items: {"a,b", "c"}`,
			want:  `items = ["a,b", "c"]`,
		},
		{
			name:  "blank item between commas",
			input: "items: {1,,2}",
			want:  `items = [1, "", 2]`,
		},
		{
			name:  "trailing blank dropped",
			input: "items: {1, 2, }",
			want:  "items = [1, 2]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if got := tree.TOML(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParse_Constants(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "referenced constant substitutes and is not folded",
			input: "(define x 5)\nkey: x",
			want:  "key = 5",
		},
		{
			name:  "unused constant folds into root",
			input: "(define retries 3)\nname: \"a\"",
			want:  "name = \"a\"\nretries = 3",
		},
		{
			name:  "data key shadows unused constant",
			input: "(define x 5)\nx: 10",
			want:  "x = 10",
		},
		{
			name:  "no forward references",
			input: "(define a b)\n(define b 2)\nk: a",
			want:  "b = 2\nk = \"b\"",
		},
		{
			name:  "constant in array",
			input: "(define x 5)\nitems: {x, 1}",
			want:  "items = [5, 1]",
		},
		{
			name:  "define with trailing semicolon",
			input: "(define x 5);\nkey: x",
			want:  "key = 5",
		},
		{
			name:  "string constant",
			input: "(define host \"localhost\")\naddr: host",
			want:  "addr = \"localhost\"",
		},
		{
			name:  "redefinition takes latest value",
			input: "(define x 1)\n(define x 2)\nkey: x",
			want:  "key = 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if got := tree.TOML(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParse_Nesting(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "colon block",
			input: "a: {\nb: {\nc: 1\n}\n}",
			want:  "[a]\n[a.b]\nc = 1",
		},
		{
			name:  "equals block",
			input: "a = {\nb: 1\n}",
			want:  "[a]\nb = 1",
		},
		{
			name:  "bare key block",
			input: "a {\nb: 1\n}",
			want:  "[a]\nb = 1",
		},
		{
			name:  "scalars before sections",
			input: "z: 1\na: {\nb: 2\n}",
			want:  "z = 1\n[a]\nb = 2",
		},
		{
			name:  "sibling sections sorted",
			input: "b: {\nx: 1\n}\na: {\ny: 2\n}",
			want:  "[a]\ny = 2\n[b]\nx = 1",
		},
		{
			name:  "duplicate key last write wins",
			input: "a: 1\na: 2",
			want:  "a = 2",
		},
		{
			name:  "unrecognized lines skipped",
			input: "???\na: 1\n!!!",
			want:  "a = 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if got := tree.TOML(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParse_EndToEnd(t *testing.T) {
	input := `(define port 8080)
server: {
  host: "localhost"
  port: port
  tags: {"a", "b"}
}`

	want := `[server]
host = "localhost"
port = 8080
tags = ["a", "b"]`

	tree, err := Parse(context.Background(), input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if got := tree.TOML(); got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestParse_StrictErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{
			name:  "unterminated block",
			input: "server: {\na: 1",
			want:  ErrUnterminatedBlock,
		},
		{
			name:  "malformed define name",
			input: "(define Foo 1)\na: 1",
			want:  ErrMalformedDefine,
		},
		{
			name:  "define missing value",
			input: "(define foo)\na: 1",
			want:  ErrMalformedDefine,
		},
		{
			name:  "define unbalanced parens",
			input: "(define foo 1\na: 1",
			want:  ErrMalformedDefine,
		},
		{
			name:  "invalid number literal",
			input: "a: 3.14.15",
			want:  ErrInvalidNumber,
		},
		{
			name:  "unterminated string",
			input: `a: "abc`,
			want:  ErrUnterminatedString,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(context.Background(), tt.input, WithStrict(true))
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}

			// The same input parses in lenient mode.
			if _, err := Parse(context.Background(), tt.input); err != nil {
				t.Errorf("lenient parse failed: %v", err)
			}
		})
	}
}

func TestParse_LenientRecovery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "unterminated block keeps partial tree",
			input: "server: {\na: 1",
			want:  "[server]\na = 1",
		},
		{
			name:  "malformed define skipped",
			input: "(define Foo 1)\na: 2",
			want:  "a = 2",
		},
		{
			name:  "unterminated string kept as identifier",
			input: `a: "abc`,
			want:  `a = "\"abc"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if got := tree.TOML(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParse_MaxDepth(t *testing.T) {
	input := "a: {\nb: {\nc: {\nd: 1\n}\n}\n}"

	// Depth ceiling errors in lenient mode too.
	_, err := Parse(context.Background(), input, WithMaxDepth(2))
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Errorf("expected ErrMaxDepthExceeded, got %v", err)
	}

	if _, err := Parse(context.Background(), input, WithMaxDepth(3)); err != nil {
		t.Errorf("expected success at sufficient depth, got %v", err)
	}
}

func TestParse_Idempotence(t *testing.T) {
	// Idempotence holds over flat tables: section headers and array
	// brackets are not part of the input grammar, so nested output does
	// not re-parse to the same tree.
	inputs := []string{
		"b: 2\na: 1",
		"name: \"abc\"\nport: 8080\nratio: 3.14\ndebug: true",
		"(define x 5)\nkey: x\nextra: 7",
		"mode: fast",
	}

	for _, input := range inputs {
		once, err := Parse(context.Background(), input)
		if err != nil {
			t.Fatalf("parse error: %v", err)
		}

		twice, err := Parse(context.Background(), once.TOML())
		if err != nil {
			t.Fatalf("reparse error: %v", err)
		}

		if once.TOML() != twice.TOML() {
			t.Errorf("not idempotent for %q:\nonce:  %q\ntwice: %q",
				input, once.TOML(), twice.TOML())
		}
	}
}

func TestParse_FreshStatePerCall(t *testing.T) {
	// Constants do not leak between parse invocations.
	input := "(define x 5)\nkey: x"

	if _, err := Parse(context.Background(), input); err != nil {
		t.Fatalf("parse error: %v", err)
	}

	tree, err := Parse(context.Background(), "key: x")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if got := tree.TOML(); got != `key = "x"` {
		t.Errorf("constant leaked across calls: %q", got)
	}
}

func TestParseReader(t *testing.T) {
	tree, err := ParseReader(context.Background(), strings.NewReader("a: 1"))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if got := tree.TOML(); got != "a = 1" {
		t.Errorf("expected %q, got %q", "a = 1", got)
	}
}

func BenchmarkParse(b *testing.B) {
	input := `(define port 8080)
server: {
  host: "localhost"
  port: port
  tags: {"a", "b", "c", "d"}
  limits: {
    cpu: 2.5
    mem: 1024
  }
}
client: {
  retries: 3
  timeout: 30
}`

	b.ReportAllocs()

	for b.Loop() {
		if _, err := Parse(context.Background(), input); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSerialize(b *testing.B) {
	tree, err := Parse(context.Background(),
		"a: {\nb: 1\nc: \"x\\ny\"\n}\nd: {1, 2, 3}")
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()

	for b.Loop() {
		_ = tree.TOML()
	}
}
