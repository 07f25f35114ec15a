package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/sitehl/pkg/prism"
)

// describe renders one level of tokens as "text" or "type:text".
func describe(tokens []*prism.Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		if t.IsRaw() {
			out[i] = t.Text
		} else {
			out[i] = t.Type + ":" + prism.Stringify(t)
		}
	}
	return out
}

// shape renders a whole tree, so two trees can be compared structurally.
func shape(tokens []*prism.Token) []any {
	out := make([]any, len(tokens))
	for i, t := range tokens {
		switch {
		case t.IsRaw():
			out[i] = t.Text
		case t.Nested():
			out[i] = map[string]any{t.Type: shape(t.Content)}
		default:
			out[i] = t.Type + ":" + t.Text
		}
	}
	return out
}

func tagToken(closing bool, name string, selfClosing bool) *prism.Token {
	open := "<"
	if closing {
		open = "</"
	}
	end := ">"
	if selfClosing {
		end = "/>"
	}
	return &prism.Token{
		Type: "tag",
		Content: []*prism.Token{
			{Type: "tag", Content: []*prism.Token{prism.NewToken("punctuation", open), prism.NewText(name)}},
			prism.NewToken("punctuation", end),
		},
	}
}

func TestCoalesce_HandBuiltTokens(t *testing.T) {
	tests := []struct {
		name   string
		tokens []*prism.Token
		want   []string
	}{
		{
			name: "text between tags becomes one plain-text token",
			tokens: []*prism.Token{
				tagToken(false, "p", false),
				prism.NewText("hello "),
				prism.NewToken("keyword", "if"),
				prism.NewText(" there"),
				tagToken(true, "p", false),
			},
			want: []string{"tag:<p>", "plain-text:hello if there", "tag:</p>"},
		},
		{
			name: "text outside any tag is untouched",
			tokens: []*prism.Token{
				prism.NewText("a "),
				prism.NewToken("keyword", "if"),
			},
			want: []string{"a ", "keyword:if"},
		},
		{
			name: "braces open an expression context",
			tokens: []*prism.Token{
				tagToken(false, "p", false),
				prism.NewToken("punctuation", "{"),
				prism.NewText(" x "),
				prism.NewToken("punctuation", "}"),
				prism.NewText("after"),
				tagToken(true, "p", false),
			},
			want: []string{"tag:<p>", "punctuation:{", " x ", "punctuation:}", "plain-text:after", "tag:</p>"},
		},
		{
			name: "stray closing brace is text",
			tokens: []*prism.Token{
				tagToken(false, "p", false),
				prism.NewText("a"),
				prism.NewToken("punctuation", "}"),
				prism.NewText("b"),
				tagToken(true, "p", false),
			},
			want: []string{"tag:<p>", "plain-text:a}b", "tag:</p>"},
		},
		{
			name: "self-closing tag does not open a context",
			tokens: []*prism.Token{
				tagToken(false, "br", true),
				prism.NewText("loose"),
			},
			want: []string{"tag:<br/>", "loose"},
		},
		{
			name: "closing tag pops only a matching name",
			tokens: []*prism.Token{
				tagToken(false, "a", false),
				tagToken(true, "b", false),
				prism.NewText("still inside a"),
			},
			want: []string{"tag:<a>", "tag:</b>", "plain-text:still inside a"},
		},
		{
			name: "matching close ends the context",
			tokens: []*prism.Token{
				tagToken(false, "a", false),
				tagToken(true, "a", false),
				prism.NewText("outside"),
			},
			want: []string{"tag:<a>", "tag:</a>", "outside"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Coalesce(tt.tokens)
			assert.Equal(t, tt.want, describe(got))
		})
	}
}

func TestCoalesce_RecursesWithFreshStack(t *testing.T) {
	script := &prism.Token{
		Type:  "script",
		Alias: []string{"language-go"},
		Content: []*prism.Token{
			tagToken(false, "b", false),
			prism.NewText("inner"),
			tagToken(true, "b", false),
		},
	}
	outer := &prism.Token{
		Type:    "tag",
		Content: []*prism.Token{prism.NewToken("punctuation", "<"), script},
	}
	got := Coalesce([]*prism.Token{outer, prism.NewText("top")})

	assert.Equal(t, "top", got[1].Text, "a non-tag wrapper must not open a context")
	inner := got[0].Content[1].Content
	assert.Equal(t, []string{"tag:<b>", "plain-text:inner", "tag:</b>"}, describe(inner))
}

func TestCoalesce_ComponentNames(t *testing.T) {
	open := tagToken(false, "", false)
	open.Content[0].Content[1] = prism.NewToken("class-name", "Card")
	closing := tagToken(true, "", false)
	closing.Content[0].Content[1] = prism.NewToken("class-name", "Card")

	got := Coalesce([]*prism.Token{open, prism.NewText("x"), closing, prism.NewText("y")})
	assert.Equal(t, []string{"tag:<Card>", "plain-text:x", "tag:</Card>", "y"}, describe(got))
}

func TestCoalesce_FragmentTagWithoutName(t *testing.T) {
	frag := &prism.Token{
		Type: "tag",
		Content: []*prism.Token{
			{Type: "tag", Content: []*prism.Token{prism.NewToken("punctuation", "<")}},
			prism.NewToken("punctuation", ">"),
		},
	}
	assert.NotPanics(t, func() {
		got := Coalesce([]*prism.Token{frag, prism.NewText("kid")})
		assert.Equal(t, []string{"tag:<>", "plain-text:kid"}, describe(got))
	})
}

func TestCoalesce_Templ(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "expression stays code",
			input: "<div>hi {x}</div>",
			want:  []string{"tag:<div>", "plain-text:hi ", "punctuation:{", "x", "punctuation:}", "tag:</div>"},
		},
		{
			name:  "siblings do not merge",
			input: "<a>text1</a><b>text2</b>",
			want:  []string{"tag:<a>", "plain-text:text1", "tag:</a>", "tag:<b>", "plain-text:text2", "tag:</b>"},
		},
		{
			name:  "mismatched close",
			input: "<a>oops</b>",
			want:  []string{"tag:<a>", "plain-text:oops", "tag:</b>"},
		},
		{
			name:  "punctuation and numbers merge into one run",
			input: "<p>Hello, world 42.</p>",
			want:  []string{"tag:<p>", "plain-text:Hello, world 42.", "tag:</p>"},
		},
		{
			name:  "go code around tags is left alone",
			input: "templ Hello(name string) {\n\t<p>Hi</p>\n}",
			want: []string{
				"keyword:templ", " ", "function:Hello", "punctuation:(", "name ", "builtin:string", "punctuation:)", " ",
				"punctuation:{", "\n\t", "tag:<p>", "plain-text:Hi", "tag:</p>", "\n", "punctuation:}",
			},
		},
	}

	r := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := r.Tokenize(tt.input, Templ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, describe(tokens))
			assert.Equal(t, tt.input, prism.StringifyAll(tokens))
		})
	}
}

func TestCoalesce_ExpressionAttributeContent(t *testing.T) {
	r := NewRegistry()
	src := `<button onClick={ handle("a") }>Go</button>`
	tokens, err := r.Tokenize(src, Templ)
	require.NoError(t, err)
	require.Len(t, tokens, 3)

	assert.Equal(t, "plain-text:Go", describe(tokens)[1])
	for _, c := range tokens[0].Content {
		assert.NotEqual(t, PlainText, c.Type, "attribute area must not be plain text")
	}
}

func TestCoalesce_Idempotent(t *testing.T) {
	r := NewRegistry()
	inputs := []string{
		"<div>hi {x}</div>",
		"<ul><li>one</li><li>two, three</li></ul>",
		"<a>oops</b> tail",
		`<p class={ c }>a { b } c<br/>d</p>`,
	}
	for _, in := range inputs {
		tokens, err := r.Tokenize(in, Templ)
		require.NoError(t, err)
		once := shape(tokens)
		twice := shape(Coalesce(tokens))
		assert.Equal(t, once, twice, "input %q", in)
	}
}
