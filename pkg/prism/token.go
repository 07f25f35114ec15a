// token.go defines the token tree produced by the tokenizer.
package prism

import "strings"

// Token is either a raw text span (Type is empty) or a typed node.
// A typed node carries its value in Text when it was matched without a
// nested grammar, and in Content otherwise.
type Token struct {
	Type    string   `json:"type,omitempty"`
	Text    string   `json:"text,omitempty"`
	Content []*Token `json:"content,omitempty"`
	Alias   []string `json:"alias,omitempty"`
}

// NewText returns a raw text token.
func NewText(s string) *Token {
	return &Token{Text: s}
}

// NewToken returns a typed token holding s as its literal value.
func NewToken(typ, s string, alias ...string) *Token {
	return &Token{Type: typ, Text: s, Alias: alias}
}

// IsRaw reports whether t is an untyped text span.
func (t *Token) IsRaw() bool {
	return t != nil && t.Type == ""
}

// Nested reports whether t holds a token sequence rather than a literal.
func (t *Token) Nested() bool {
	return t != nil && t.Content != nil
}

// Stringify returns the flattened text of a token, recursing into nested
// content. A nil token flattens to the empty string.
func Stringify(t *Token) string {
	if t == nil {
		return ""
	}
	if t.Content == nil {
		return t.Text
	}
	var sb strings.Builder
	for _, c := range t.Content {
		sb.WriteString(Stringify(c))
	}
	return sb.String()
}

// StringifyAll flattens a token sequence.
func StringifyAll(tokens []*Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(Stringify(t))
	}
	return sb.String()
}
