// code.go renders fenced code blocks through a highlighter.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/open-cli-collective/sitehl/pkg/page"
	"github.com/open-cli-collective/sitehl/pkg/prism"
)

type codeRenderer struct {
	h page.Highlighter
}

func (r *codeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCode)
}

// renderFencedCode writes a fenced block as <pre><code class="language-x">.
// A JSON object after the language in the info string, e.g.
// ```go {"linenostart":3,"highlighted":[4]}, turns on line numbers.
func (r *codeRenderer) renderFencedCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*ast.FencedCodeBlock)

	lang, meta, numbered := parseInfo(n, source)

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	markup, ok := "", false
	if lang != "" {
		markup, ok = r.h.Highlight(code.String(), lang)
	}
	if !ok {
		markup = prism.Render([]*prism.Token{prism.NewText(code.String())})
	}

	var preClasses []string
	if numbered {
		preClasses = append(preClasses, page.LineNumbersClass)
		markup = page.NumberLines(markup, meta)
	}
	langAttr := string(util.EscapeHTML([]byte(lang)))
	if lang != "" {
		preClasses = append(preClasses, "language-"+langAttr)
	}

	_, _ = w.WriteString("<pre")
	if len(preClasses) > 0 {
		_, _ = w.WriteString(` class="` + strings.Join(preClasses, " ") + `"`)
	}
	if numbered {
		_, _ = w.WriteString(` data-meta="`)
		_, _ = w.Write(util.EscapeHTML([]byte(meta.String())))
		_, _ = w.WriteString(`" style="` + page.CounterReset(meta) + `"`)
	}
	_, _ = w.WriteString("><code")
	if lang != "" {
		_, _ = w.WriteString(` class="language-` + langAttr + `"`)
	}
	_, _ = w.WriteString(">")
	_, _ = w.WriteString(markup)
	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}

// parseInfo splits a fence info string into its language and optional
// line metadata.
func parseInfo(n *ast.FencedCodeBlock, source []byte) (lang string, meta page.LineMeta, numbered bool) {
	meta = page.DefaultLineMeta()
	if n.Info == nil {
		return "", meta, false
	}
	info := strings.TrimSpace(string(n.Info.Segment.Value(source)))
	lang, rest, _ := strings.Cut(info, " ")
	lang = strings.ToLower(lang)
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "{") {
		return lang, page.ParseLineMeta(rest), true
	}
	return lang, meta, false
}
