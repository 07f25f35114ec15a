// lines.go numbers the lines of highlighted code blocks.
package page

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// LineMeta is the line-numbering metadata a code block carries in its
// data-meta attribute.
type LineMeta struct {
	LineNoStart int   `json:"linenostart"`
	Highlighted []int `json:"highlighted"`
}

// DefaultLineMeta numbers from 1 and highlights nothing.
func DefaultLineMeta() LineMeta {
	return LineMeta{LineNoStart: 1}
}

// ParseLineMeta decodes raw data-meta JSON. Empty, malformed or null input
// yields DefaultLineMeta; absent fields keep their defaults.
func ParseLineMeta(raw string) LineMeta {
	meta := DefaultLineMeta()
	if strings.TrimSpace(raw) == "" {
		return meta
	}

	var parsed struct {
		LineNoStart *int  `json:"linenostart"`
		Highlighted []int `json:"highlighted"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return meta
	}
	if parsed.LineNoStart != nil {
		meta.LineNoStart = *parsed.LineNoStart
	}
	meta.Highlighted = parsed.Highlighted
	return meta
}

// String returns meta as data-meta JSON.
func (m LineMeta) String() string {
	highlighted := m.Highlighted
	if highlighted == nil {
		highlighted = []int{}
	}
	b, _ := json.Marshal(LineMeta{LineNoStart: m.LineNoStart, Highlighted: highlighted})
	return string(b)
}

// IsHighlighted reports whether line number n is marked.
func (m LineMeta) IsHighlighted(n int) bool {
	for _, h := range m.Highlighted {
		if h == n {
			return true
		}
	}
	return false
}

// NumberLines wraps every line of markup in <span class="line">, or
// <span class="line hl"> for highlighted lines. Trailing whitespace is
// dropped first. The line at index i is numbered LineNoStart+i-1.
func NumberLines(markup string, meta LineMeta) string {
	lines := strings.Split(strings.TrimRightFunc(markup, unicode.IsSpace), "\n")
	for i, line := range lines {
		class := "line"
		if meta.IsHighlighted(meta.LineNoStart + i - 1) {
			class = "line hl"
		}
		lines[i] = `<span class="` + class + `">` + line + `</span>`
	}
	return strings.Join(lines, "\n")
}

// CounterReset returns the inline style that starts the CSS line counter.
func CounterReset(meta LineMeta) string {
	return fmt.Sprintf("counter-reset: lineNumber %d", meta.LineNoStart-1)
}
