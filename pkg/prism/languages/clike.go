package languages

import "github.com/open-cli-collective/sitehl/pkg/prism"

// newCLike returns the grammar shared by C-family languages.
func newCLike() *prism.Grammar {
	return prism.NewGrammar(
		prism.R("comment",
			prism.NewPattern(`(^|[^\\])\/\*[\s\S]*?(?:\*\/|$)`, "", prism.Lookbehind, prism.Greedy),
			prism.NewPattern(`(^|[^\\:])\/\/.*`, "", prism.Lookbehind, prism.Greedy),
		),
		prism.R("string",
			prism.NewPattern(`(["'])(?:\\(?:\r\n|[\s\S])|(?!\1)[^\\\r\n])*\1`, "", prism.Greedy),
		),
		prism.R("class-name",
			prism.NewPattern(`(\b(?:class|extends|implements|instanceof|interface|new|trait)\s+|\bcatch\s+\()[\w.\\]+`, "i",
				prism.Lookbehind,
				prism.Inside(prism.NewGrammar(prism.R("punctuation", prism.Pat(`[.\\]`)))),
			),
		),
		prism.R("keyword", prism.Pat(`\b(?:break|catch|continue|do|else|finally|for|function|if|in|instanceof|new|null|return|throw|try|while)\b`)),
		prism.R("boolean", prism.Pat(`\b(?:false|true)\b`)),
		prism.R("function", prism.Pat(`\b\w+(?=\()`)),
		prism.R("number", prism.NewPattern(`\b0x[\da-f]+\b|(?:\b\d+(?:\.\d*)?|\B\.\d+)(?:e[+-]?\d+)?`, "i")),
		prism.R("operator", prism.Pat(`[<>]=?|[!=]=?=?|--?|\+\+?|&&?|\|\|?|[?*/~^%]`)),
		prism.R("punctuation", prism.Pat(`[{}[\];(),.:]`)),
	)
}
