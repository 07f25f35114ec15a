// grammar.go defines grammars: ordered sets of named pattern rules.
package prism

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// MatchTimeout bounds a single regexp evaluation. A timed-out match is
// treated as no match.
const MatchTimeout = 2 * time.Second

// Pattern is one way of matching a rule.
type Pattern struct {
	Regexp *regexp2.Regexp

	// Lookbehind drops the first capture group from the match.
	Lookbehind bool
	// Greedy lets the match span several adjacent text tokens.
	Greedy bool
	Alias  []string
	// Inside tokenizes the matched text. Nil keeps it as a literal.
	Inside *Grammar
}

// PatternOption configures a Pattern.
type PatternOption func(*Pattern)

// Greedy marks the pattern as greedy.
func Greedy(p *Pattern) { p.Greedy = true }

// Lookbehind marks the first capture group as lookbehind context.
func Lookbehind(p *Pattern) { p.Lookbehind = true }

// Alias adds display aliases.
func Alias(alias ...string) PatternOption {
	return func(p *Pattern) { p.Alias = append(p.Alias, alias...) }
}

// Inside tokenizes matches with g.
func Inside(g *Grammar) PatternOption {
	return func(p *Pattern) { p.Inside = g }
}

// MustCompile compiles a JavaScript-flavoured regular expression. flags may
// contain "i" (ignore case) and "m" (multiline). It panics on a malformed
// expression: grammars are built at registration time, so a bad pattern is
// a programming error.
func MustCompile(expr, flags string) *regexp2.Regexp {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	for _, f := range flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		default:
			panic(fmt.Sprintf("prism: unsupported regexp flag %q", f))
		}
	}
	re := regexp2.MustCompile(expr, opts)
	re.MatchTimeout = MatchTimeout
	return re
}

// NewPattern compiles expr and applies opts.
func NewPattern(expr, flags string, opts ...PatternOption) *Pattern {
	p := &Pattern{Regexp: MustCompile(expr, flags)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pat is shorthand for a plain pattern without flags or options.
func Pat(expr string) *Pattern {
	return NewPattern(expr, "")
}

// Rule is a named, ordered list of patterns.
type Rule struct {
	Name     string
	Patterns []*Pattern
}

// R builds a rule.
func R(name string, patterns ...*Pattern) *Rule {
	return &Rule{Name: name, Patterns: patterns}
}

// Grammar is an ordered set of rules. Rules are tried in order. Rest, if
// set, contributes its rules after the grammar's own ones.
type Grammar struct {
	rules []*Rule
	Rest  *Grammar
}

// NewGrammar builds a grammar from rules. A later rule with the same name
// replaces an earlier one in place.
func NewGrammar(rules ...*Rule) *Grammar {
	g := &Grammar{}
	for _, r := range rules {
		g.Set(r)
	}
	return g
}

// Names returns rule names in match order.
func (g *Grammar) Names() []string {
	names := make([]string, len(g.rules))
	for i, r := range g.rules {
		names[i] = r.Name
	}
	return names
}

// Get returns the named rule.
func (g *Grammar) Get(name string) (*Rule, bool) {
	i := g.index(name)
	if i < 0 {
		return nil, false
	}
	return g.rules[i], true
}

// Pattern returns the first pattern of the named rule, or nil.
func (g *Grammar) Pattern(name string) *Pattern {
	r, ok := g.Get(name)
	if !ok || len(r.Patterns) == 0 {
		return nil
	}
	return r.Patterns[0]
}

// Set replaces the rule of the same name in place, or appends it.
func (g *Grammar) Set(r *Rule) {
	if i := g.index(r.Name); i >= 0 {
		g.rules[i] = r
		return
	}
	g.rules = append(g.rules, r)
}

// Delete removes the named rule if present.
func (g *Grammar) Delete(name string) {
	if i := g.index(name); i >= 0 {
		g.rules = slices.Delete(g.rules, i, i+1)
	}
}

// InsertBefore inserts rules right before the rule named before. Existing
// rules sharing a name with an inserted one are dropped from their old
// position.
func (g *Grammar) InsertBefore(before string, rules ...*Rule) error {
	if g.index(before) < 0 {
		return fmt.Errorf("prism: rule %q not found", before)
	}
	inserted := make(map[string]bool, len(rules))
	for _, r := range rules {
		inserted[r.Name] = true
	}
	out := make([]*Rule, 0, len(g.rules)+len(rules))
	for _, r := range g.rules {
		if r.Name == before {
			out = append(out, rules...)
		}
		if !inserted[r.Name] {
			out = append(out, r)
		}
	}
	g.rules = out
	return nil
}

// Clone returns a deep copy of g. Nested grammars are copied too, and
// cycles (a grammar reachable from its own patterns) are preserved in the
// copy. Compiled regexps are shared.
func (g *Grammar) Clone() *Grammar {
	return g.clone(make(map[*Grammar]*Grammar))
}

func (g *Grammar) clone(seen map[*Grammar]*Grammar) *Grammar {
	if g == nil {
		return nil
	}
	if c, ok := seen[g]; ok {
		return c
	}
	c := &Grammar{rules: make([]*Rule, 0, len(g.rules))}
	seen[g] = c
	for _, r := range g.rules {
		nr := &Rule{Name: r.Name, Patterns: make([]*Pattern, len(r.Patterns))}
		for i, p := range r.Patterns {
			np := *p
			np.Alias = slices.Clone(p.Alias)
			np.Inside = p.Inside.clone(seen)
			nr.Patterns[i] = &np
		}
		c.rules = append(c.rules, nr)
	}
	c.Rest = g.Rest.clone(seen)
	return c
}

// Extend clones base and applies overrides with Set semantics. Override
// rules are copied, so later edits to the result never reach base or the
// grammar the overrides came from.
func Extend(base *Grammar, overrides ...*Rule) *Grammar {
	g := base.Clone()
	for _, r := range overrides {
		g.Set(r.Copy())
	}
	return g
}

// Rules returns copies of g's rules, for use as overrides in Extend.
func (g *Grammar) Rules() []*Rule {
	out := make([]*Rule, len(g.rules))
	for i, r := range g.rules {
		out[i] = r.Copy()
	}
	return out
}

// String lists rule names, mostly for debugging.
func (g *Grammar) String() string {
	return "{" + strings.Join(g.Names(), ", ") + "}"
}

// Copy returns a copy of r whose patterns can be edited freely. Nested
// grammars stay shared.
func (r *Rule) Copy() *Rule {
	nr := &Rule{Name: r.Name, Patterns: make([]*Pattern, len(r.Patterns))}
	for i, p := range r.Patterns {
		np := *p
		np.Alias = slices.Clone(p.Alias)
		nr.Patterns[i] = &np
	}
	return nr
}

func (g *Grammar) index(name string) int {
	for i, r := range g.rules {
		if r.Name == name {
			return i
		}
	}
	return -1
}

// effective returns the rules used for matching, with Rest merged in.
func (g *Grammar) effective() []*Rule {
	if g.Rest == nil {
		return g.rules
	}
	merged := &Grammar{rules: slices.Clone(g.rules)}
	for _, r := range g.Rest.effective() {
		merged.Set(r)
	}
	return merged.rules
}
