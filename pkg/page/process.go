package page

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/tdewolff/minify/v2"
	minhtml "github.com/tdewolff/minify/v2/html"
)

// Options configures ProcessHTML.
type Options struct {
	// Minify collapses whitespace and drops comments after highlighting.
	Minify bool
}

// ProcessHTML highlights every code block of an HTML page and returns the
// rewritten page. A page without code blocks comes back byte for byte
// unless it is minified.
func ProcessHTML(src []byte, h Highlighter, opts Options) ([]byte, Stats, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(src))
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to parse html: %w", err)
	}

	stats := Highlight(doc, h)

	out := src
	if stats.Blocks > 0 {
		rendered, err := doc.Html()
		if err != nil {
			return nil, stats, fmt.Errorf("failed to render html: %w", err)
		}
		out = []byte(rendered)
	}

	if !opts.Minify {
		return out, stats, nil
	}
	minified, err := Minify(out)
	if err != nil {
		return nil, stats, err
	}
	return minified, stats, nil
}

var minifier = func() *minify.M {
	m := minify.New()
	m.Add("text/html", &minhtml.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	return m
}()

// Minify collapses whitespace in an HTML page. Content of <pre> elements is
// left as is.
func Minify(src []byte) ([]byte, error) {
	out, err := minifier.Bytes("text/html", src)
	if err != nil {
		return nil, fmt.Errorf("failed to minify html: %w", err)
	}
	return out, nil
}
