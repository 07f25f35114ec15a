package configcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunShow_WithConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "sitehl.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("public_dir: dist\nminify: true\n"), 0644))

	var out bytes.Buffer
	require.NoError(t, runShow(&out, configPath, true))

	output := out.String()
	assert.Contains(t, output, "dist  (source: config)")
	assert.Contains(t, output, "true  (source: config)")
	assert.Contains(t, output, "**/*.html  (source: default)")
	assert.Contains(t, output, "monokai  (source: default)")
	assert.Contains(t, output, "Config file: "+configPath)
	assert.NotContains(t, output, "file not found")
}

func TestRunShow_NoConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "missing.yml")

	var out bytes.Buffer
	require.NoError(t, runShow(&out, configPath, true))

	output := out.String()
	assert.Contains(t, output, "public  (source: default)")
	assert.Contains(t, output, "(file not found)")
}

func TestRunShow_EnvOverride(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "sitehl.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("chroma_style: monokai\n"), 0644))
	t.Setenv("SITEHL_CHROMA_STYLE", "dracula")

	var out bytes.Buffer
	require.NoError(t, runShow(&out, configPath, true))
	assert.Contains(t, out.String(), "dracula  (source: SITEHL_CHROMA_STYLE)")
}

func TestRunShow_InvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "sitehl.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("public_dir: [\n"), 0644))

	err := runShow(&bytes.Buffer{}, configPath, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}
