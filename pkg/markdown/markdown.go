// Package markdown converts markdown posts to HTML whose fenced code
// blocks are already highlighted.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/open-cli-collective/sitehl/pkg/page"
)

// Converter renders markdown with highlighted code.
type Converter struct {
	md goldmark.Markdown
}

// New creates a Converter whose fenced code blocks are rendered by h.
func New(h page.Highlighter) *Converter {
	return &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table),
			goldmark.WithRendererOptions(
				renderer.WithNodeRenderers(util.Prioritized(&codeRenderer{h: h}, 200)),
			),
		),
	}
}

// Convert renders src to an HTML fragment.
func (c *Converter) Convert(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := c.md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// Title returns the text of the first level-one heading of src, or "".
func (c *Converter) Title(src []byte) string {
	doc := c.md.Parser().Parse(text.NewReader(src))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 1 {
			return ast.WalkContinue, nil
		}
		title = plainText(h, src)
		return ast.WalkStop, nil
	})
	return title
}

func plainText(n ast.Node, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		default:
			sb.WriteString(plainText(c, src))
		}
	}
	return sb.String()
}

// Standalone wraps an HTML fragment in a complete page with inline CSS.
func Standalone(title string, body []byte, css string) []byte {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	buf.Write(util.EscapeHTML([]byte(title)))
	buf.WriteString("</title>\n")
	if css != "" {
		buf.WriteString("<style>\n")
		buf.WriteString(css)
		buf.WriteString("</style>\n")
	}
	buf.WriteString("</head>\n<body>\n")
	buf.Write(body)
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}
