package languages

import "github.com/open-cli-collective/sitehl/pkg/prism"

const goKeywords = `break|case|chan|const|continue|default|defer|else|fallthrough|for|func|go(?:to)?|if|import|interface|map|package|range|return|select|struct|switch|type|var`

// newGo extends clike with Go's literals, keywords and builtins.
func newGo() *prism.Grammar {
	g := prism.Extend(newCLike(),
		prism.R("string",
			prism.NewPattern(`(^|[^\\])"(?:\\.|[^"\\\r\n])*"|`+"`[^`]*`", "", prism.Lookbehind, prism.Greedy),
		),
		prism.R("keyword", prism.Pat(`\b(?:`+goKeywords+`)\b`)),
		prism.R("boolean", prism.Pat(`\b(?:_|false|iota|nil|true)\b`)),
		prism.R("number",
			// binary and octal integers
			prism.NewPattern(`\b0(?:b[01_]+|o[0-7_]+)i?\b`, "i"),
			// hexadecimal integers and floats
			prism.NewPattern(`\b0x(?:[a-f\d_]+(?:\.[a-f\d_]*)?|\.[a-f\d_]+)(?:p[+-]?\d+(?:_\d+)*)?i?(?!\w)`, "i"),
			// decimal integers and floats
			prism.NewPattern(`(?:\b\d[\d_]*(?:\.[\d_]*)?|\B\.\d[\d_]*)(?:e[+-]?[\d_]+)?i?(?!\w)`, "i"),
		),
		prism.R("operator", prism.Pat(`[*\/%^!=]=?|\+[=+]?|-[=-]?|\|[=|]?|&(?:=|&|\^=?)?|>(?:>=?|=)?|<(?:<=?|=|-)?|:=|\.\.\.`)),
		prism.R("builtin", prism.Pat(`\b(?:append|bool|byte|cap|close|complex|complex(?:64|128)|copy|delete|error|float(?:32|64)|u?int(?:8|16|32|64)?|imag|len|make|new|panic|print(?:ln)?|real|recover|rune|string|uintptr)\b`)),
	)
	mustInsertBefore(g, "string", prism.R("char",
		prism.NewPattern(`'(?:\\.|[^'\\\r\n]){0,10}'`, "", prism.Greedy),
	))
	g.Delete("class-name")
	return g
}

// newGoTempl is Go with the templ keywords added.
func newGoTempl() *prism.Grammar {
	return prism.Extend(newGo(),
		prism.R("keyword", prism.Pat(`\b(?:`+goKeywords+`|templ|css|script)\b`)),
	)
}

func mustInsertBefore(g *prism.Grammar, before string, rules ...*prism.Rule) {
	if err := g.InsertBefore(before, rules...); err != nil {
		panic(err)
	}
}
