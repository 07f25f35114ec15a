package configcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/sitehl/internal/config"
)

func testConfig(t *testing.T, files ...string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("<p></p>"), 0644))
	}
	cfg := config.Default()
	cfg.PublicDir = dir
	return cfg
}

func TestRunTest_Success(t *testing.T) {
	cfg := testConfig(t, "index.html", "posts/a.html", "style.css")

	var out bytes.Buffer
	require.NoError(t, runTest(&out, true, cfg))

	output := out.String()
	assert.Contains(t, output, "✓ Public directory exists")
	assert.Contains(t, output, "**/*.html: 2 files")
	assert.Contains(t, output, "✓ Include patterns match pages")
	assert.Contains(t, output, "✓ Style monokai is available")
	assert.Contains(t, output, "4 native grammars, chroma fallback on")
}

func TestRunTest_NoPages(t *testing.T) {
	cfg := testConfig(t, "style.css")

	var out bytes.Buffer
	require.NoError(t, runTest(&out, true, cfg))
	assert.Contains(t, out.String(), "! No pages match the include patterns")
}

func TestRunTest_MissingDirectory(t *testing.T) {
	cfg := config.Default()
	cfg.PublicDir = filepath.Join(t.TempDir(), "public")

	var out bytes.Buffer
	err := runTest(&out, true, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "public directory not found")
	assert.Contains(t, out.String(), "sitehl init")
}

func TestRunTest_UnknownStyle(t *testing.T) {
	cfg := testConfig(t, "index.html")
	cfg.ChromaStyle = "no-such-style"

	var out bytes.Buffer
	err := runTest(&out, true, cfg)
	require.Error(t, err)
	assert.Contains(t, out.String(), "✗ Unknown style: no-such-style")
}
