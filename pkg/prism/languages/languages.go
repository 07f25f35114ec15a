// Package languages provides the grammars sitehl highlights natively:
// clike, go, markup and templ. templ is markup whose tags take Go
// expressions; its token trees are post-processed by Coalesce.
package languages

import "github.com/open-cli-collective/sitehl/pkg/prism"

// Templ is the registered name of the templ language.
const Templ = "templ"

// NewRegistry builds a fresh registry with every language of this package.
// Each call composes new grammars, so registries never share state.
func NewRegistry() *prism.Registry {
	r := prism.NewRegistry()
	Register(r)
	return r
}

// Register adds this package's languages to r. It panics if r already
// holds one of the names: a clash is a programming error.
func Register(r *prism.Registry) {
	markup := newMarkup()
	goTempl := newGoTempl()

	r.MustRegister(&prism.Language{Name: "clike", Grammar: newCLike()})
	r.MustRegister(&prism.Language{Name: "go", Aliases: []string{"golang"}, Grammar: newGo()})
	r.MustRegister(&prism.Language{
		Name:    "markup",
		Aliases: []string{"html", "xml", "svg", "mathml", "ssml", "atom", "rss"},
		Grammar: markup,
	})
	r.MustRegister(&prism.Language{
		Name:          Templ,
		Grammar:       newTempl(markup, goTempl),
		AfterTokenize: Coalesce,
	})
}
