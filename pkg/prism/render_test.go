package prism

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		tokens []*Token
		want   string
	}{
		{
			name:   "raw text is escaped",
			tokens: []*Token{NewText("a < b && c d")},
			want:   "a &lt; b &amp;&amp; c d",
		},
		{
			name:   "typed token",
			tokens: []*Token{NewToken("keyword", "func")},
			want:   `<span class="token keyword">func</span>`,
		},
		{
			name:   "aliases become classes",
			tokens: []*Token{NewToken("script-punctuation", "=", "punctuation")},
			want:   `<span class="token script-punctuation punctuation">=</span>`,
		},
		{
			name: "nested content",
			tokens: []*Token{{
				Type:    "tag",
				Content: []*Token{NewToken("punctuation", "<"), NewText("br"), NewToken("punctuation", "/>")},
			}},
			want: `<span class="token tag"><span class="token punctuation">&lt;</span>br<span class="token punctuation">/></span></span>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.tokens))
		})
	}
}

func TestStringify(t *testing.T) {
	tok := &Token{
		Type: "tag",
		Content: []*Token{
			NewToken("punctuation", "<"),
			{Type: "name", Content: []*Token{NewText("a"), NewText("b")}},
		},
	}
	assert.Equal(t, "<ab", Stringify(tok))
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "x<ab", StringifyAll([]*Token{NewText("x"), tok}))
}

func TestToken_Helpers(t *testing.T) {
	raw := NewText("héllo")
	assert.True(t, raw.IsRaw())
	assert.False(t, raw.Nested())

	tok := NewToken("script", "={x}", "language-go")
	assert.False(t, tok.IsRaw())
	assert.Equal(t, []string{"language-go"}, tok.Alias)

	var missing *Token
	assert.False(t, missing.IsRaw())
}
