// Package highlight turns source code into Prism-compatible HTML. Languages
// with a native grammar go through the prism engine; everything else can
// fall back to a chroma lexer whose tokens are renamed to Prism classes.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/open-cli-collective/sitehl/pkg/prism"
)

// Engine names which tokenizer handled a language.
type Engine string

const (
	EnginePrism  Engine = "prism"
	EngineChroma Engine = "chroma"
	EngineNone   Engine = ""
)

// Options configures a Highlighter.
type Options struct {
	// ChromaFallback enables chroma lexers for languages without a grammar.
	ChromaFallback bool
}

// Highlighter highlights code blocks by language name.
type Highlighter struct {
	registry *prism.Registry
	opts     Options
}

// New creates a Highlighter backed by registry.
func New(registry *prism.Registry, opts Options) *Highlighter {
	return &Highlighter{registry: registry, opts: opts}
}

// Registry returns the registry the highlighter uses.
func (h *Highlighter) Registry() *prism.Registry {
	return h.registry
}

// Engine reports which tokenizer would handle lang.
func (h *Highlighter) Engine(lang string) Engine {
	if _, ok := h.registry.Lookup(lang); ok {
		return EnginePrism
	}
	if h.opts.ChromaFallback && lexers.Get(lang) != nil {
		return EngineChroma
	}
	return EngineNone
}

// Tokens tokenizes code. ok is false when no engine knows lang.
func (h *Highlighter) Tokens(code, lang string) ([]*prism.Token, bool) {
	switch h.Engine(lang) {
	case EnginePrism:
		tokens, err := h.registry.Tokenize(code, lang)
		return tokens, err == nil
	case EngineChroma:
		tokens, err := chromaTokens(code, lang)
		return tokens, err == nil
	default:
		return nil, false
	}
}

// Highlight returns code as highlighted HTML. ok is false when no engine
// knows lang, in which case html is empty.
func (h *Highlighter) Highlight(code, lang string) (html string, ok bool) {
	tokens, ok := h.Tokens(code, lang)
	if !ok {
		return "", false
	}
	return prism.Render(tokens), true
}

func chromaTokens(code, lang string) ([]*prism.Token, error) {
	lexer := chroma.Coalesce(lexers.Get(lang))
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, err
	}

	var tokens []*prism.Token
	for _, t := range it.Tokens() {
		if t.Value == "" {
			continue
		}
		class := prismClass(t.Type)
		if class == "" {
			if n := len(tokens); n > 0 && tokens[n-1].IsRaw() {
				tokens[n-1] = prism.NewText(tokens[n-1].Text + t.Value)
				continue
			}
			tokens = append(tokens, prism.NewText(t.Value))
			continue
		}
		tokens = append(tokens, prism.NewToken(class, t.Value))
	}
	return trimAddedNewline(tokens, code), nil
}

// trimAddedNewline drops the final newline some lexers append to their
// input, so the output text always equals code.
func trimAddedNewline(tokens []*prism.Token, code string) []*prism.Token {
	if strings.HasSuffix(code, "\n") || len(tokens) == 0 {
		return tokens
	}
	last := tokens[len(tokens)-1]
	if last.Nested() || !strings.HasSuffix(last.Text, "\n") {
		return tokens
	}
	text := strings.TrimSuffix(last.Text, "\n")
	switch {
	case text == "":
		return tokens[:len(tokens)-1]
	case last.IsRaw():
		tokens[len(tokens)-1] = prism.NewText(text)
	default:
		tokens[len(tokens)-1] = prism.NewToken(last.Type, text, last.Alias...)
	}
	return tokens
}

// prismClass maps a chroma token type to the Prism class the site CSS
// styles. Types without a Prism counterpart map to "" and render as text.
func prismClass(t chroma.TokenType) string {
	switch t {
	case chroma.KeywordConstant:
		return "boolean"
	case chroma.KeywordType, chroma.NameBuiltin, chroma.NameBuiltinPseudo:
		return "builtin"
	case chroma.NameFunction, chroma.NameFunctionMagic:
		return "function"
	case chroma.NameClass, chroma.NameNamespace:
		return "class-name"
	case chroma.NameTag:
		return "tag"
	case chroma.NameAttribute:
		return "attr-name"
	case chroma.NameVariable, chroma.NameVariableGlobal, chroma.NameVariableInstance, chroma.NameVariableClass:
		return "variable"
	case chroma.NameConstant:
		return "constant"
	case chroma.NameEntity:
		return "entity"
	case chroma.NameDecorator:
		return "annotation"
	case chroma.NameProperty:
		return "property"
	case chroma.LiteralStringChar:
		return "char"
	case chroma.LiteralStringRegex:
		return "regex"
	case chroma.GenericDeleted:
		return "deleted"
	case chroma.GenericInserted:
		return "inserted"
	}

	switch {
	case t.InCategory(chroma.Keyword):
		return "keyword"
	case t.InCategory(chroma.Comment):
		return "comment"
	case t.InSubCategory(chroma.LiteralString):
		return "string"
	case t.InSubCategory(chroma.LiteralNumber):
		return "number"
	case t.InCategory(chroma.Operator):
		return "operator"
	case t.InCategory(chroma.Punctuation):
		return "punctuation"
	}
	return ""
}
