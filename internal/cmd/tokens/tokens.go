// Package tokens provides the command that prints a token tree, for
// checking how a grammar sees a piece of code.
package tokens

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/sitehl/internal/cmd/cmdutil"
	"github.com/open-cli-collective/sitehl/internal/config"
	"github.com/open-cli-collective/sitehl/internal/view"
	"github.com/open-cli-collective/sitehl/pkg/prism"
)

type tokensOptions struct {
	file    string
	lang    string
	html    bool
	globals cmdutil.Globals
	in      io.Reader
	out     io.Writer
}

// langByExt guesses a language with a native grammar when --lang is not
// given. Other files are matched against chroma's lexer filenames.
var langByExt = map[string]string{
	".templ": "templ",
	".go":    "go",
	".html":  "html",
	".htm":   "html",
	".xml":   "xml",
	".svg":   "svg",
}

// NewCmdTokens creates the tokens command.
func NewCmdTokens() *cobra.Command {
	opts := &tokensOptions{}

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token tree of a source file",
		Long: `Tokenize a source file and print the resulting token tree.

Use - as the file to read from standard input. The language is taken
from --lang, or guessed from the file name.`,
		Example: `  # Show how a templ component is tokenized
  sitehl tokens components/card.templ

  # Tokenize stdin as Go, as JSON
  echo 'x := 1' | sitehl tokens - --lang go -o json

  # Print the highlighted HTML instead
  sitehl tokens page.templ --html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.file = args[0]
			opts.globals = cmdutil.GlobalsFrom(cmd)
			opts.in = cmd.InOrStdin()
			opts.out = cmd.OutOrStdout()

			cfg, err := cmdutil.LoadConfig(opts.globals.ResolvedConfigPath())
			if err != nil {
				return err
			}
			return runTokens(opts, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.lang, "lang", "l", "", "Language to tokenize as (default: from file extension)")
	cmd.Flags().BoolVar(&opts.html, "html", false, "Print highlighted HTML instead of the token tree")
	_ = cmd.RegisterFlagCompletionFunc("lang", cmdutil.CompleteLanguages)

	return cmd
}

func runTokens(opts *tokensOptions, cfg *config.Config) error {
	lang := opts.lang
	if lang == "" {
		lang = guessLanguage(opts.file)
	}
	if lang == "" {
		return fmt.Errorf("cannot tell the language of %s: use --lang", opts.file)
	}

	code, err := readSource(opts.file, opts.in)
	if err != nil {
		return err
	}

	h := cmdutil.NewHighlighter(cfg)
	tokens, ok := h.Tokens(code, lang)
	if !ok {
		return fmt.Errorf("unknown language: %s (see 'sitehl lang list')", lang)
	}

	renderer, err := cmdutil.NewRenderer(opts.globals, cfg, opts.out)
	if err != nil {
		return err
	}

	if opts.html {
		renderer.RenderText(prism.Render(tokens))
		return nil
	}

	switch renderer.Format() {
	case view.FormatJSON:
		return renderer.RenderJSON(tokens)
	case view.FormatPlain:
		var rows [][]string
		walk(tokens, 0, func(t *prism.Token, depth int) {
			rows = append(rows, []string{strconv.Itoa(depth), label(t), strconv.Quote(leafText(t))})
		})
		renderer.RenderTable(nil, rows)
	default:
		var rows [][]string
		walk(tokens, 0, func(t *prism.Token, depth int) {
			rows = append(rows, []string{
				strings.Repeat("  ", depth) + label(t),
				view.Truncate(strconv.Quote(leafText(t)), 60),
			})
		})
		renderer.RenderTable([]string{"TOKEN", "TEXT"}, rows)
	}
	return nil
}

func guessLanguage(file string) string {
	if lang, ok := langByExt[strings.ToLower(filepath.Ext(file))]; ok {
		return lang
	}
	if file == "-" {
		return ""
	}
	if l := lexers.Match(filepath.Base(file)); l != nil {
		return l.Config().Name
	}
	return ""
}

func readSource(file string, stdin io.Reader) (string, error) {
	var data []byte
	var err error
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}
	return string(data), nil
}

// walk visits tokens depth first.
func walk(tokens []*prism.Token, depth int, fn func(*prism.Token, int)) {
	for _, t := range tokens {
		fn(t, depth)
		if t.Nested() {
			walk(t.Content, depth+1, fn)
		}
	}
}

// label names a token as type[alias,...], or "text" for raw spans.
func label(t *prism.Token) string {
	if t.IsRaw() {
		return "text"
	}
	if len(t.Alias) == 0 {
		return t.Type
	}
	return t.Type + "[" + strings.Join(t.Alias, ",") + "]"
}

// leafText is the literal of a leaf; nested tokens show their children.
func leafText(t *prism.Token) string {
	if t.Nested() {
		return ""
	}
	return t.Text
}
