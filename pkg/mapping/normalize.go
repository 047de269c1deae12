package mapping

import (
	"regexp"
	"strings"
	"unicode"
)

// Token is the canonical comparable form of a header string.
type Token struct {
	// Joined is all tokens joined with a single space, e.g. "agent name".
	Joined string
	// Tokens are the individual lowercase word tokens.
	Tokens []string
}

// Empty reports whether the token carries no comparable content.
func (t Token) Empty() bool {
	return t.Joined == ""
}

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// abbreviations expands common header shorthand before comparison. Expansion
// happens per token, prior to matching, so "Qty" and "Quantity" normalize to
// the same form.
var abbreviations = map[string]string{
	"qty":  "quantity",
	"dir":  "directory",
	"mem":  "memory",
	"cfg":  "config",
	"env":  "environment",
	"num":  "number",
	"desc": "description",
	"addr": "address",
	"wksp": "workspace",
	"cpus": "cpu",
}

// Normalize canonicalizes a raw header into a comparable token form:
// lower-case, trimmed, camelCase split, punctuation and whitespace runs
// collapsed, known abbreviations expanded. Deterministic and total; any
// string normalizes to some token, including the empty token.
func Normalize(raw string) Token {
	split := splitCamelCase(strings.TrimSpace(raw))
	parts := tokenPattern.FindAllString(strings.ToLower(split), -1)
	if len(parts) == 0 {
		return Token{}
	}

	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if expanded, ok := abbreviations[p]; ok {
			p = expanded
		}
		tokens = append(tokens, p)
	}

	return Token{
		Joined: strings.Join(tokens, " "),
		Tokens: tokens,
	}
}

// splitCamelCase inserts a space at each lower-to-upper boundary so headers
// like "memoryLimit" tokenize the same way as "Memory Limit".
func splitCamelCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// numericOnly reports whether every token is purely numeric, e.g. a header
// of "Column 1" stripped of its generic word, or a bare "1". Such headers
// never identify a field.
func numericOnly(t Token) bool {
	if len(t.Tokens) == 0 {
		return false
	}
	for _, tok := range t.Tokens {
		for _, r := range tok {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}
