// coalesce.go reclassifies text between templ tags as plain text.
package languages

import "github.com/open-cli-collective/sitehl/pkg/prism"

// PlainText is the token type given to text between tags.
const PlainText = "plain-text"

// openTag tracks a tag whose body is being scanned.
type openTag struct {
	name string
	// braces counts unclosed { seen at this level while the tag is open.
	braces int
}

// Coalesce rewrites tokens so that any run of tokens found between an
// opening and a closing tag, outside braces, becomes a single plain-text
// token. Nested token sequences are processed the same way, each with its
// own tag stack. Mismatched closing tags are ignored, never reported.
//
// The returned slice may share storage with tokens.
func Coalesce(tokens []*prism.Token) []*prism.Token {
	var stack []*openTag

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		candidate := tok.IsRaw()

		if !candidate {
			switch {
			case isTag(tok):
				name := prism.Stringify(child(tok.Content[0], 1))
				switch {
				case isClosingTag(tok):
					if len(stack) > 0 && stack[len(stack)-1].name == name {
						stack = stack[:len(stack)-1]
					}
				case isSelfClosing(tok):
				default:
					stack = append(stack, &openTag{name: name})
				}
			case len(stack) > 0 && isPunctuation(tok, "{"):
				stack[len(stack)-1].braces++
			case len(stack) > 0 && stack[len(stack)-1].braces > 0 && isPunctuation(tok, "}"):
				stack[len(stack)-1].braces--
			default:
				candidate = true
			}
		}

		if candidate && len(stack) > 0 && stack[len(stack)-1].braces == 0 {
			text := prism.Stringify(tok)
			if i < len(tokens)-1 && isText(tokens[i+1]) {
				text += prism.Stringify(tokens[i+1])
				tokens = append(tokens[:i+1], tokens[i+2:]...)
			}
			if i > 0 && isText(tokens[i-1]) {
				text = prism.Stringify(tokens[i-1]) + text
				tokens = append(tokens[:i-1], tokens[i:]...)
				i--
			}
			tokens[i] = prism.NewToken(PlainText, text)
			continue
		}

		if tok.Nested() {
			tok.Content = Coalesce(tok.Content)
		}
	}

	return tokens
}

// isTag reports whether tok is a whole tag whose first child is the tag
// name token.
func isTag(tok *prism.Token) bool {
	return tok.Type == "tag" && len(tok.Content) > 0 && tok.Content[0].Type == "tag"
}

func isClosingTag(tok *prism.Token) bool {
	marker := child(tok.Content[0], 0)
	return marker != nil && !marker.IsRaw() && !marker.Nested() && marker.Text == "</"
}

// isSelfClosing only looks at the last child of the tag.
func isSelfClosing(tok *prism.Token) bool {
	last := tok.Content[len(tok.Content)-1]
	return !last.IsRaw() && !last.Nested() && last.Text == "/>"
}

func isPunctuation(tok *prism.Token, value string) bool {
	return tok.Type == "punctuation" && !tok.Nested() && tok.Text == value
}

// isText reports whether tok can be merged into a plain-text run.
func isText(tok *prism.Token) bool {
	return tok.IsRaw() || tok.Type == PlainText
}

func child(tok *prism.Token, i int) *prism.Token {
	if tok == nil || i >= len(tok.Content) {
		return nil
	}
	return tok.Content[i]
}
