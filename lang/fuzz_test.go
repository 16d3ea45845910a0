package lang

import (
	"context"
	"testing"
)

func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"a: 1",
		"(define x 5)\nkey: x",
		"server: {\nhost: \"localhost\"\n}",
		"items: {1, 2, \"x\"}",
		"a: {\nb: {\nc: {\nd: 1\n}\n}\n}",
		"key: \"unterminated",
		"(define broken",
		"# only a comment",
		"a: 3.14.15\nb = true;",
		"}\n}{",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		tree, err := Parse(context.Background(), input, WithMaxDepth(16))
		if err != nil {
			return
		}

		out := tree.TOML()

		if again := tree.TOML(); again != out {
			t.Errorf("serialization not deterministic: %q vs %q", out, again)
		}

		// Lenient re-parse of emitted output must always succeed: every
		// emitted line is either a valid assignment or a skippable header.
		if _, err := Parse(context.Background(), out); err != nil {
			t.Errorf("emitted output fails to re-parse: %v\n%s", err, out)
		}
	})
}
