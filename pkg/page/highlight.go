// Package page highlights the code blocks of rendered HTML pages.
package page

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/open-cli-collective/sitehl/pkg/prism"
)

// CodeSelector matches the elements Prism highlights.
const CodeSelector = `code[class*="language-"], [class*="language-"] code, code[class*="lang-"], [class*="lang-"] code`

// LineNumbersClass marks a <pre> whose code block gets numbered lines.
const LineNumbersClass = "line-numbers"

// MetaAttr holds the LineMeta JSON on a line-numbers <pre>.
const MetaAttr = "data-meta"

var langClass = regexp.MustCompile(`(?i)(?:^|\s)lang(?:uage)?-([\w-]+)(?:\s|$)`)

// Highlighter renders code to HTML. ok is false for unknown languages.
type Highlighter interface {
	Highlight(code, lang string) (html string, ok bool)
}

// Stats counts what a pass did.
type Stats struct {
	Blocks      int
	Highlighted int
	Numbered    int
	// Unknown counts blocks per language no highlighter knew.
	Unknown map[string]int
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Blocks += other.Blocks
	s.Highlighted += other.Highlighted
	s.Numbered += other.Numbered
	for lang, n := range other.Unknown {
		s.unknown(lang, n)
	}
}

func (s *Stats) unknown(lang string, n int) {
	if s.Unknown == nil {
		s.Unknown = make(map[string]int)
	}
	s.Unknown[lang] += n
}

// Highlight replaces the content of every code block in doc with
// highlighted markup. The block's language is taken from the nearest
// language-xxx or lang-xxx class on it or an ancestor. Blocks in an
// unknown language keep their text and are still line-numbered.
func Highlight(doc *goquery.Document, h Highlighter) Stats {
	var stats Stats
	doc.Find(CodeSelector).Each(func(_ int, code *goquery.Selection) {
		stats.Blocks++
		lang := language(code.Get(0))
		setLanguage(code, lang)

		text := code.Text()
		if text == "" {
			return
		}

		markup, ok := h.Highlight(text, lang)
		if ok {
			stats.Highlighted++
		} else {
			stats.unknown(lang, 1)
			markup = prism.Render([]*prism.Token{prism.NewText(text)})
		}

		parent := code.Parent()
		if parent.HasClass(LineNumbersClass) {
			meta := ParseLineMeta(parent.AttrOr(MetaAttr, ""))
			markup = NumberLines(markup, meta)
			parent.SetAttr("style", CounterReset(meta))
			stats.Numbered++
		}
		code.SetHtml(markup)
	})
	return stats
}

// language walks up from n to the first element with a language class.
func language(n *html.Node) string {
	for ; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		if m := langClass.FindStringSubmatch(classOf(n)); m != nil {
			return strings.ToLower(m[1])
		}
	}
	return "none"
}

func classOf(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key == "class" {
			return a.Val
		}
	}
	return ""
}

// setLanguage normalises the language classes of code and of a <pre>
// parent to a single language-xxx.
func setLanguage(code *goquery.Selection, lang string) {
	apply := func(s *goquery.Selection) {
		var classes []string
		for _, c := range strings.Fields(s.AttrOr("class", "")) {
			if !langClass.MatchString(c) {
				classes = append(classes, c)
			}
		}
		classes = append(classes, "language-"+lang)
		s.SetAttr("class", strings.Join(classes, " "))
	}
	apply(code)
	if parent := code.Parent(); goquery.NodeName(parent) == "pre" {
		apply(parent)
	}
}
