// render.go turns token trees into HTML using Prism's class conventions.
package prism

import "strings"

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", "\u00a0", " ")

// Render returns tokens as HTML. Every typed token becomes
// <span class="token TYPE ALIAS...">. Raw text is escaped.
func Render(tokens []*Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		renderToken(&sb, t)
	}
	return sb.String()
}

func renderToken(sb *strings.Builder, t *Token) {
	if t.IsRaw() {
		sb.WriteString(textEscaper.Replace(t.Text))
		return
	}
	sb.WriteString(`<span class="token `)
	sb.WriteString(t.Type)
	for _, a := range t.Alias {
		sb.WriteByte(' ')
		sb.WriteString(a)
	}
	sb.WriteString(`">`)
	if t.Content != nil {
		for _, c := range t.Content {
			renderToken(sb, c)
		}
	} else {
		sb.WriteString(textEscaper.Replace(t.Text))
	}
	sb.WriteString("</span>")
}
