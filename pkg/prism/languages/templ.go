package languages

import (
	"strings"

	"github.com/open-cli-collective/sitehl/pkg/prism"
)

// Pattern fragments the templ tag grammar is assembled from. Templates
// refer to them as <S>, <BRACES> and <SPREAD>.
const (
	// spaceFragment matches one whitespace character or one Go comment.
	spaceFragment = `(?:\s|\/\/.*(?!.)|\/\*(?:[^*]|\*(?!\/))\*\/)`
	// bracesFragment matches a brace group nesting at most two more levels.
	bracesFragment = `(?:\{(?:\{(?:\{[^{}]*\}|[^{}])*\}|[^{}])*\})`
	// spreadTemplate matches a spread attribute: { ...expr }.
	spreadTemplate = `(?:\{<S>*\.{3}(?:[^{}]|<BRACES>)*\})`

	tagTemplate = `<\/?(?:[\w.:-]+(?:<S>+(?:[\w.:$-]+(?:=(?:"(?:\\[\s\S]|[^\\"])*"|'(?:\\[\s\S]|[^\\'])*'|[^\s{'"/>=]+|<BRACES>))?|<SPREAD>))*<S>*\/?)?>`
	scriptTemplate = `=<BRACES>`
)

// spreadFragment is spreadTemplate with its own placeholders resolved.
var spreadFragment = strings.NewReplacer(
	"<S>", spaceFragment,
	"<BRACES>", bracesFragment,
).Replace(spreadTemplate)

// fragments substitutes every named fragment into a template.
var fragments = strings.NewReplacer(
	"<S>", spaceFragment,
	"<BRACES>", bracesFragment,
	"<SPREAD>", spreadFragment,
)

// expandFragments substitutes the named fragments into a template.
func expandFragments(tmpl string) string {
	return fragments.Replace(tmpl)
}

// newTempl builds the templ grammar: markup whose tags understand Go
// expressions, extended with the Go rules for everything else. Neither
// baseline is modified.
func newTempl(markup, goTempl *prism.Grammar) *prism.Grammar {
	g := prism.Extend(markup, goTempl.Rules()...)

	tag := g.Pattern("tag")
	tag.Regexp = prism.MustCompile(expandFragments(tagTemplate), "")

	inside := tag.Inside
	name := inside.Pattern("tag")
	name.Regexp = prism.MustCompile(`^<\/?[^\s>\/]*`, "")
	name.Inside.Set(prism.R("class-name", prism.Pat(`^[A-Z]\w*(?:\.[A-Z]\w*)*$`)))

	inside.Pattern("attr-value").Regexp = prism.MustCompile(`=(?!\{)(?:"(?:\\[\s\S]|[^\\"])*"|'(?:\\[\s\S]|[^\\'])*'|[^\s'">]+)`, "")

	if comment, ok := goTempl.Get("comment"); ok {
		inside.Set(comment.Copy())
	}

	mustInsertBefore(inside, "attr-name", prism.R("spread",
		prism.NewPattern(expandFragments(`<SPREAD>`), "", prism.Inside(g)),
	))

	script := prism.NewGrammar(prism.R("script-punctuation",
		prism.NewPattern(`^=(?=\{)`, "", prism.Alias("punctuation")),
	))
	script.Rest = g
	mustInsertBefore(inside, "special-attr", prism.R("script",
		prism.NewPattern(expandFragments(scriptTemplate), "", prism.Alias("language-go"), prism.Inside(script)),
	))

	return g
}
