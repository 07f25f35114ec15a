package page

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upper knows the single language "up" and upper-cases code.
type upper struct {
	seen []string
}

func (u *upper) Highlight(code, lang string) (string, bool) {
	u.seen = append(u.seen, lang)
	if lang != "up" {
		return "", false
	}
	return strings.ToUpper(code), true
}

func parse(t *testing.T, src string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func TestHighlight_LanguageDetection(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantLang  string
		wantCode  string
		wantPre   string
		wantOuter string
	}{
		{
			name:     "class on code",
			src:      `<pre><code class="language-up">x</code></pre>`,
			wantLang: "up",
			wantCode: "language-up",
			wantPre:  "language-up",
		},
		{
			name:     "short prefix and case",
			src:      `<pre class="wide"><code class="lang-UP big">x</code></pre>`,
			wantLang: "up",
			wantCode: "big language-up",
			wantPre:  "wide language-up",
		},
		{
			name:      "class on ancestor",
			src:       `<div class="language-up note"><pre><code>x</code></pre></div>`,
			wantLang:  "up",
			wantCode:  "language-up",
			wantPre:   "language-up",
			wantOuter: "language-up note",
		},
		{
			name:      "nearest class wins",
			src:       `<div class="language-other"><pre><code class="language-up">x</code></pre></div>`,
			wantLang:  "up",
			wantCode:  "language-up",
			wantPre:   "language-up",
			wantOuter: "language-other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, tt.src)
			h := &upper{}

			stats := Highlight(doc, h)

			assert.Equal(t, []string{tt.wantLang}, h.seen)
			assert.Equal(t, 1, stats.Blocks)
			assert.Equal(t, 1, stats.Highlighted)
			assert.Equal(t, tt.wantCode, doc.Find("code").AttrOr("class", ""))
			assert.Equal(t, tt.wantPre, doc.Find("pre").AttrOr("class", ""))
			assert.Equal(t, "X", doc.Find("code").Text())
			if tt.wantOuter != "" {
				assert.Equal(t, tt.wantOuter, doc.Find("div").AttrOr("class", ""))
			}
		})
	}
}

func TestHighlight_UnknownLanguageKeepsText(t *testing.T) {
	doc := parse(t, `<pre class="line-numbers"><code class="language-nope">&lt;a&gt; &amp;
b</code></pre>`)

	stats := Highlight(doc, &upper{})

	assert.Equal(t, 0, stats.Highlighted)
	assert.Equal(t, map[string]int{"nope": 1}, stats.Unknown)
	assert.Equal(t, 1, stats.Numbered)
	assert.Equal(t, "<a> &\nb", doc.Find("code").Text())
	assert.Equal(t, 2, doc.Find("code span.line").Length())
}

func TestHighlight_EmptyBlockIsSkipped(t *testing.T) {
	doc := parse(t, `<pre class="line-numbers"><code class="language-up"></code></pre>`)

	stats := Highlight(doc, &upper{})

	assert.Equal(t, 1, stats.Blocks)
	assert.Equal(t, 0, stats.Highlighted)
	assert.Equal(t, 0, stats.Numbered)
	_, hasStyle := doc.Find("pre").Attr("style")
	assert.False(t, hasStyle)
}

func TestHighlight_LineNumbers(t *testing.T) {
	doc := parse(t, `<pre class="line-numbers" data-meta='{"linenostart":2,"highlighted":[3]}'><code class="language-up">l0
l1
l2
</code></pre>`)

	stats := Highlight(doc, &upper{})

	assert.Equal(t, 1, stats.Numbered)
	assert.Equal(t, "counter-reset: lineNumber 1", doc.Find("pre").AttrOr("style", ""))

	lines := doc.Find("code span.line")
	require.Equal(t, 3, lines.Length())
	assert.Equal(t, "L2", doc.Find("code span.hl").Text())
	assert.Equal(t, 1, doc.Find("code span.hl").Length())
}

func TestHighlight_NoLineNumbersWithoutClass(t *testing.T) {
	doc := parse(t, `<pre data-meta='{"linenostart":5}'><code class="language-up">a
b</code></pre>`)

	stats := Highlight(doc, &upper{})

	assert.Equal(t, 0, stats.Numbered)
	assert.Equal(t, 0, doc.Find("span.line").Length())
}

func TestHighlight_EachBlockOnce(t *testing.T) {
	doc := parse(t, `<div class="language-up"><pre class="language-up"><code class="language-up">a</code></pre></div>
<p><code>inline, no language</code></p>`)

	stats := Highlight(doc, &upper{})

	assert.Equal(t, 1, stats.Blocks)
	assert.Equal(t, "A", doc.Find("pre code").Text())
	assert.Equal(t, "inline, no language", doc.Find("p code").Text())
}

func TestStats_Add(t *testing.T) {
	var total Stats
	total.Add(Stats{Blocks: 2, Highlighted: 1, Unknown: map[string]int{"x": 1}})
	total.Add(Stats{Blocks: 1, Numbered: 1, Unknown: map[string]int{"x": 2, "y": 1}})

	assert.Equal(t, Stats{
		Blocks:      3,
		Highlighted: 1,
		Numbered:    1,
		Unknown:     map[string]int{"x": 3, "y": 1},
	}, total)
}
