// registry.go provides the set of named languages a highlighter can use.
package prism

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownLanguage is returned when no grammar is registered for a name.
var ErrUnknownLanguage = errors.New("unknown language")

// Hook rewrites a token sequence after tokenization.
type Hook func(tokens []*Token) []*Token

// Language is a grammar registered under a name.
type Language struct {
	Name    string
	Aliases []string
	Grammar *Grammar
	// AfterTokenize runs only for this language.
	AfterTokenize Hook
}

// Registry maps language names and aliases to languages. A Registry is a
// plain value: building one never touches shared state.
type Registry struct {
	languages map[string]*Language
	aliases   map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		languages: make(map[string]*Language),
		aliases:   make(map[string]string),
	}
}

// Register adds a language. Names and aliases are case-insensitive and
// must be unique.
func (r *Registry) Register(lang *Language) error {
	if lang == nil || lang.Grammar == nil {
		return errors.New("prism: language has no grammar")
	}
	name := strings.ToLower(lang.Name)
	if name == "" {
		return errors.New("prism: language has no name")
	}
	if _, taken := r.resolve(name); taken {
		return fmt.Errorf("prism: language %q already registered", name)
	}
	for _, a := range lang.Aliases {
		if _, taken := r.resolve(strings.ToLower(a)); taken {
			return fmt.Errorf("prism: alias %q already registered", a)
		}
	}
	r.languages[name] = lang
	for _, a := range lang.Aliases {
		r.aliases[strings.ToLower(a)] = name
	}
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(lang *Language) {
	if err := r.Register(lang); err != nil {
		panic(err)
	}
}

// Lookup finds a language by name or alias.
func (r *Registry) Lookup(name string) (*Language, bool) {
	return r.resolve(strings.ToLower(name))
}

func (r *Registry) resolve(name string) (*Language, bool) {
	if l, ok := r.languages[name]; ok {
		return l, true
	}
	if canonical, ok := r.aliases[name]; ok {
		return r.languages[canonical], true
	}
	return nil, false
}

// Languages returns registered languages sorted by name.
func (r *Registry) Languages() []*Language {
	out := make([]*Language, 0, len(r.languages))
	for _, l := range r.languages {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Tokenize tokenizes code with the named language and runs its hook.
func (r *Registry) Tokenize(code, name string) ([]*Token, error) {
	lang, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, name)
	}
	tokens := Tokenize(code, lang.Grammar)
	if lang.AfterTokenize != nil {
		tokens = lang.AfterTokenize(tokens)
	}
	return tokens, nil
}

// Highlight tokenizes code and renders it to HTML.
func (r *Registry) Highlight(code, name string) (string, error) {
	tokens, err := r.Tokenize(code, name)
	if err != nil {
		return "", err
	}
	return Render(tokens), nil
}
