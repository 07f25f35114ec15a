package lang

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/sitehl/internal/cmd/cmdutil"
	"github.com/open-cli-collective/sitehl/internal/config"
)

func TestRunList(t *testing.T) {
	var out bytes.Buffer
	opts := &listOptions{globals: cmdutil.Globals{Output: "json"}, out: &out}
	require.NoError(t, runList(opts, config.Default()))

	var rows []map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))

	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r["name"]
		assert.Equal(t, "prism", r["engine"])
	}
	assert.Equal(t, []string{"clike", "go", "markup", "templ"}, names)
	assert.Equal(t, "golang", rows[1]["aliases"])
}

func TestRunList_All(t *testing.T) {
	var out bytes.Buffer
	opts := &listOptions{all: true, globals: cmdutil.Globals{Output: "plain"}, out: &out}
	require.NoError(t, runList(opts, config.Default()))

	output := out.String()
	assert.Contains(t, output, "templ\t\tprism")
	assert.Contains(t, output, "Bash\t\tchroma")
	assert.NotContains(t, output, "Go\t\tchroma")
}

func TestRunList_AllWithoutFallback(t *testing.T) {
	cfg := config.Default()
	cfg.ChromaFallback = false

	var out bytes.Buffer
	opts := &listOptions{all: true, globals: cmdutil.Globals{NoColor: true}, out: &out}
	require.NoError(t, runList(opts, cfg))

	output := out.String()
	assert.NotContains(t, output, "chroma\n")
	assert.Contains(t, output, "chroma_fallback is off")
}

func TestRunStyles(t *testing.T) {
	cfg := config.Default()
	cfg.ChromaStyle = "dracula"

	var out bytes.Buffer
	opts := &stylesOptions{globals: cmdutil.Globals{Output: "plain"}, out: &out}
	require.NoError(t, runStyles(opts, cfg))

	output := out.String()
	assert.Contains(t, output, "dracula\t*\n")
	assert.Contains(t, output, "monokai\t\n")
}
