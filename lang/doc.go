// Package lang implements the parser and serializer for a small declarative
// configuration language. Input text is parsed into a tree of typed values,
// named constants are resolved, and the tree is re-emitted as a normalized
// TOML document.
//
// # Grammar
//
// Informal EBNF:
//
//	Config      → (Define | Assignment | Block)* EOF
//	Define      → '(' 'define' Name Scalar ')' ';'?
//	Assignment  → Key (':' | '=') Scalar ';'?
//	Block       → Key (':' | '=')? '{' NL Config '}' NL
//	Scalar      → String | Integer | Float | Boolean | Array | Identifier
//	Array       → '{' (Scalar (',' Scalar)*)? '}'
//	Name        → [a-z][a-z0-9_]*
//
// Comments run from '#' to end of line. Blank lines are ignored.
//
// # Example
//
//	(define port 8080)
//	server: {
//	  host: "localhost"
//	  port: port
//	  tags: {"a", "b"}
//	}
//
// serializes to:
//
//	[server]
//	host = "localhost"
//	port = 8080
//	tags = ["a", "b"]
//
// # Constants
//
// A define binds a name to a parsed value. Constants resolve in a single
// left-to-right pass, so a define may reference only defines that appear
// earlier in the source. A constant that is never referenced is folded into
// the root table after parsing, unless a data key of the same name exists.
//
// # Modes
//
// Parsing is lenient by default: lines that match no grammar rule are
// skipped, mirroring the behavior of the legacy converter this package
// replaces. [WithStrict] enables a structured error taxonomy instead. The
// legacy comment scanner is not quote-aware; [WithQuoteAwareComments]
// switches to a scanner that ignores '#' inside string literals. Nesting
// depth is always bounded (see [WithMaxDepth]); exceeding the bound is an
// error in both modes.
//
// # Purity
//
// Parse and serialize hold no package-level state. All working state,
// including the constant table, is created fresh per call, so both are safe
// to invoke concurrently on independent inputs.
package lang
