// tokenize.go implements the matching algorithm that turns text into a
// token tree for a grammar.
package prism

// Tokenize splits text into tokens according to g. Concatenating the
// flattened tokens always yields text again. Empty text has no tokens.
func Tokenize(text string, g *Grammar) []*Token {
	if text == "" {
		return []*Token{}
	}
	runes := []rune(text)
	list := newTokenList()
	list.addAfter(list.head, &listNode{text: runes, length: len(runes)})
	matchGrammar(runes, list, g.effective(), list.head, 0, nil)
	return list.tokens()
}

// rematch limits a nested matching pass started after a greedy match
// swallowed more than one node.
type rematch struct {
	rule    string
	pattern int
	reach   int
}

type match struct {
	index  int
	length int
}

func matchGrammar(text []rune, list *tokenList, rules []*Rule, start *listNode, startPos int, rm *rematch) {
	for _, rule := range rules {
		for j, p := range rule.Patterns {
			if rm != nil && rm.rule == rule.Name && rm.pattern == j {
				return
			}

			pos := startPos
			for cur := start.next; cur != list.tail; pos, cur = pos+cur.length, cur.next {
				if rm != nil && pos >= rm.reach {
					break
				}
				if list.size > len(text) {
					// Something went badly wrong; bail out rather than loop.
					return
				}
				if cur.tok != nil {
					continue
				}

				str := cur.text
				removeCount := 1
				var m match

				if p.Greedy {
					found, ok := p.exec(text, pos)
					if !ok || found.index >= len(text) {
						break
					}
					from, to := found.index, found.index+found.length

					// Find the node the match starts in.
					q := pos + cur.length
					for from >= q {
						cur = cur.next
						q += cur.length
					}
					q -= cur.length
					pos = q

					if cur.tok != nil {
						continue
					}

					// Count the nodes the match covers.
					for k := cur; k != list.tail && (q < to || k.tok == nil); k = k.next {
						removeCount++
						q += k.length
					}
					removeCount--

					str = text[pos:q]
					m = match{index: from - pos, length: found.length}
				} else {
					found, ok := p.exec(str, 0)
					if !ok {
						continue
					}
					m = found
				}

				matched := str[m.index : m.index+m.length]
				before := str[:m.index]
				after := str[m.index+m.length:]

				reach := pos + len(str)
				if rm != nil && reach > rm.reach {
					rm.reach = reach
				}

				removeFrom := cur.prev
				if len(before) > 0 {
					removeFrom = list.addAfter(removeFrom, &listNode{text: before, length: len(before)})
					pos += len(before)
				}
				list.removeRange(removeFrom, removeCount)

				wrapped := &Token{Type: rule.Name, Alias: p.Alias}
				if p.Inside != nil {
					wrapped.Content = Tokenize(string(matched), p.Inside)
				} else {
					wrapped.Text = string(matched)
				}
				cur = list.addAfter(removeFrom, &listNode{tok: wrapped, length: len(matched)})

				if len(after) > 0 {
					list.addAfter(cur, &listNode{text: after, length: len(after)})
				}

				if removeCount > 1 {
					nested := &rematch{rule: rule.Name, pattern: j, reach: reach}
					matchGrammar(text, list, rules, cur.prev, pos, nested)
					if rm != nil && nested.reach > rm.reach {
						rm.reach = nested.reach
					}
				}
			}
		}
	}
}

// exec runs the pattern against text starting at rune offset pos. Empty
// matches and regexp timeouts count as no match.
func (p *Pattern) exec(text []rune, pos int) (match, bool) {
	m, err := p.Regexp.FindRunesMatchStartingAt(text, pos)
	if err != nil || m == nil {
		return match{}, false
	}
	res := match{index: m.Index, length: m.Length}
	if p.Lookbehind {
		if g := m.GroupByNumber(1); g != nil && g.Length > 0 {
			res.index += g.Length
			res.length -= g.Length
		}
	}
	if res.length <= 0 {
		return match{}, false
	}
	return res, true
}

// listNode holds either a raw text span or a finished token.
type listNode struct {
	text   []rune
	tok    *Token
	length int

	prev, next *listNode
}

type tokenList struct {
	head, tail *listNode
	size       int
}

func newTokenList() *tokenList {
	l := &tokenList{head: &listNode{}, tail: &listNode{}}
	l.head.next = l.tail
	l.tail.prev = l.head
	return l
}

func (l *tokenList) addAfter(n, nn *listNode) *listNode {
	next := n.next
	nn.prev = n
	nn.next = next
	n.next = nn
	next.prev = nn
	l.size++
	return nn
}

func (l *tokenList) removeRange(n *listNode, count int) {
	next := n.next
	i := 0
	for ; i < count && next != l.tail; i++ {
		next = next.next
	}
	n.next = next
	next.prev = n
	l.size -= i
}

func (l *tokenList) tokens() []*Token {
	out := make([]*Token, 0, l.size)
	for n := l.head.next; n != l.tail; n = n.next {
		if n.tok != nil {
			out = append(out, n.tok)
			continue
		}
		out = append(out, &Token{Text: string(n.text)})
	}
	return out
}
