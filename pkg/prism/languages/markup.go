package languages

import "github.com/open-cli-collective/sitehl/pkg/prism"

// newMarkup returns the HTML/XML grammar.
func newMarkup() *prism.Grammar {
	entity := prism.R("entity",
		prism.NewPattern(`&[\da-z]{1,8};`, "i", prism.Alias("named-entity")),
		prism.NewPattern(`&#x?[\da-f]{1,8};`, "i"),
	)
	namespace := prism.R("namespace", prism.Pat(`^[^\s>\/:]+:`))

	internalSubset := prism.NewPattern(`(^[^\[]*\[)[\s\S]+(?=\]>$)`, "", prism.Lookbehind, prism.Greedy)

	g := prism.NewGrammar(
		prism.R("comment", prism.NewPattern(`<!--(?:(?!<!--)[\s\S])*?-->`, "", prism.Greedy)),
		prism.R("prolog", prism.NewPattern(`<\?[\s\S]+?\?>`, "", prism.Greedy)),
		prism.R("doctype", prism.NewPattern(
			`<!DOCTYPE(?:[^>"'[\]]|"[^"]*"|'[^']*')+(?:\[(?:[^<"'\]]|"[^"]*"|'[^']*'|<(?!!--)|<!--(?:[^-]|-(?!->))*-->)*\]\s*)?>`, "i",
			prism.Greedy,
			prism.Inside(prism.NewGrammar(
				prism.R("internal-subset", internalSubset),
				prism.R("string", prism.NewPattern(`"[^"]*"|'[^']*'`, "", prism.Greedy)),
				prism.R("punctuation", prism.Pat(`^<!|>$|[[\]]`)),
				prism.R("doctype-tag", prism.NewPattern(`^DOCTYPE`, "i")),
				prism.R("name", prism.Pat(`[^\s<>'"]+`)),
			)),
		)),
		prism.R("cdata", prism.NewPattern(`<!\[CDATA\[[\s\S]*?\]\]>`, "i", prism.Greedy)),
		prism.R("tag", prism.NewPattern(
			`<\/?(?!\d)[^\s>\/=$<%]+(?:\s(?:\s*[^\s>\/=]+(?:\s*=\s*(?:"[^"]*"|'[^']*'|[^\s'">=]+(?=[\s>]))|(?=[\s/>])))+)?\s*\/?>`, "",
			prism.Greedy,
			prism.Inside(prism.NewGrammar(
				prism.R("tag", prism.NewPattern(`^<\/?[^\s>\/]+`, "",
					prism.Inside(prism.NewGrammar(
						prism.R("punctuation", prism.Pat(`^<\/?`)),
						namespace,
					)),
				)),
				// Filled by languages that embed themselves in attributes.
				prism.R("special-attr"),
				prism.R("attr-value", prism.NewPattern(`=\s*(?:"[^"]*"|'[^']*'|[^\s'">=]+)`, "",
					prism.Inside(prism.NewGrammar(
						prism.R("punctuation",
							prism.NewPattern(`^=`, "", prism.Alias("attr-equals")),
							prism.NewPattern(`^(\s*)["']|["']$`, "", prism.Lookbehind),
						),
						entity,
					)),
				)),
				prism.R("punctuation", prism.Pat(`\/?>`)),
				prism.R("attr-name", prism.NewPattern(`[^\s>\/]+`, "",
					prism.Inside(prism.NewGrammar(namespace)),
				)),
			)),
		)),
		entity,
	)
	internalSubset.Inside = g
	return g
}
