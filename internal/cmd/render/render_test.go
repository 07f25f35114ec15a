package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/sitehl/internal/cmd/cmdutil"
	"github.com/open-cli-collective/sitehl/internal/config"
)

const post = "# Hello\n\n```templ {\"linenostart\": 3, \"highlighted\": [4]}\ntempl Hi() {\n\t<p>Hi</p>\n}\n```\n"

func newOpts(file string, out *bytes.Buffer) *renderOptions {
	return &renderOptions{
		file:    file,
		globals: cmdutil.Globals{NoColor: true},
		in:      strings.NewReader(post),
		out:     out,
	}
}

func TestRunRender_Stdout(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runRender(newOpts("-", &out), config.Default()))

	html := out.String()
	assert.Contains(t, html, "<h1>Hello</h1>")
	assert.Contains(t, html, `<pre class="line-numbers language-templ"`)
	assert.Contains(t, html, "counter-reset: lineNumber 2")
	assert.Contains(t, html, `<span class="line hl">`)
	assert.Contains(t, html, `<span class="token keyword">templ</span>`)
	assert.NotContains(t, html, "<!DOCTYPE html>")
}

func TestRunRender_StandaloneToFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "post.md")
	require.NoError(t, os.WriteFile(src, []byte(post), 0644))
	dst := filepath.Join(dir, "out", "post.html")

	var out bytes.Buffer
	opts := newOpts(src, &out)
	opts.outFile = dst
	opts.standalone = true
	require.NoError(t, runRender(opts, config.Default()))
	assert.Empty(t, out.String())

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	html := string(content)
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "<title>Hello</title>")
	assert.Contains(t, html, ".token.keyword")
	assert.Contains(t, html, ".line-numbers .line::before")
}

func TestRunRender_TitleFromFileName(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(src, []byte("no heading"), 0644))

	var out bytes.Buffer
	opts := newOpts(src, &out)
	opts.standalone = true
	require.NoError(t, runRender(opts, config.Default()))
	assert.Contains(t, out.String(), "<title>notes</title>")
}

func TestRunRender_Minify(t *testing.T) {
	var out bytes.Buffer
	opts := newOpts("-", &out)
	opts.in = strings.NewReader("# A\n\n\n\nsome   text\n")
	opts.minify = true
	require.NoError(t, runRender(opts, config.Default()))
	assert.Equal(t, "<h1>A</h1><p>some text</p>", strings.TrimSpace(out.String()))
}

func TestRunRender_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		err := runRender(newOpts(filepath.Join(t.TempDir(), "x.md"), &bytes.Buffer{}), config.Default())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read")
	})

	t.Run("unknown style", func(t *testing.T) {
		opts := newOpts("-", &bytes.Buffer{})
		opts.standalone = true
		opts.style = "no-such-style"
		err := runRender(opts, config.Default())
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown style "no-such-style"`)
	})
}
