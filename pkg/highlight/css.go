package highlight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// classTypes picks the chroma token type whose style a Prism class takes.
var classTypes = map[string]chroma.TokenType{
	"comment":     chroma.Comment,
	"keyword":     chroma.Keyword,
	"boolean":     chroma.KeywordConstant,
	"builtin":     chroma.NameBuiltin,
	"function":    chroma.NameFunction,
	"class-name":  chroma.NameClass,
	"tag":         chroma.NameTag,
	"attr-name":   chroma.NameAttribute,
	"attr-value":  chroma.LiteralString,
	"variable":    chroma.NameVariable,
	"constant":    chroma.NameConstant,
	"entity":      chroma.NameEntity,
	"annotation":  chroma.NameDecorator,
	"property":    chroma.NameProperty,
	"string":      chroma.LiteralString,
	"char":        chroma.LiteralStringChar,
	"regex":       chroma.LiteralStringRegex,
	"number":      chroma.LiteralNumber,
	"operator":    chroma.Operator,
	"punctuation": chroma.Punctuation,
	"deleted":     chroma.GenericDeleted,
	"inserted":    chroma.GenericInserted,
	"plain-text":  chroma.Text,
}

// StyleNames lists the chroma styles CSS accepts.
func StyleNames() []string {
	return styles.Names()
}

// CSS renders a stylesheet for Prism token classes from a chroma style,
// including the rules for numbered and highlighted lines.
func CSS(styleName string) (string, error) {
	style := styles.Get(styleName)
	if style == nil || (style == styles.Fallback && !strings.EqualFold(styleName, styles.Fallback.Name)) {
		return "", fmt.Errorf("unknown style %q", styleName)
	}

	var sb strings.Builder
	bg := style.Get(chroma.Background)
	sb.WriteString(`pre[class*="language-"], code[class*="language-"] {`)
	writeEntry(&sb, bg, true)
	sb.WriteString("}\n")

	classes := make([]string, 0, len(classTypes))
	for class := range classTypes {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	for _, class := range classes {
		entry := style.Get(classTypes[class])
		var decl strings.Builder
		writeEntry(&decl, entry, false)
		if decl.Len() == 0 {
			continue
		}
		fmt.Fprintf(&sb, ".token.%s {%s}\n", class, decl.String())
	}

	hl := style.Get(chroma.LineHighlight)
	sb.WriteString(".line-numbers .line::before { counter-increment: lineNumber; content: counter(lineNumber); display: inline-block; width: 2em; margin-right: 1em; text-align: right; opacity: 0.5; }\n")
	if hl.Background.IsSet() {
		fmt.Fprintf(&sb, ".line-numbers .line.hl { background-color: %s; }\n", hl.Background.String())
	}
	return sb.String(), nil
}

func writeEntry(sb *strings.Builder, entry chroma.StyleEntry, background bool) {
	if entry.Colour.IsSet() {
		fmt.Fprintf(sb, " color: %s;", entry.Colour.String())
	}
	if background && entry.Background.IsSet() {
		fmt.Fprintf(sb, " background-color: %s;", entry.Background.String())
	}
	if entry.Bold == chroma.Yes {
		sb.WriteString(" font-weight: bold;")
	}
	if entry.Italic == chroma.Yes {
		sb.WriteString(" font-style: italic;")
	}
	if entry.Underline == chroma.Yes {
		sb.WriteString(" text-decoration: underline;")
	}
	if sb.Len() > 0 {
		sb.WriteString(" ")
	}
}
