package highlight

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestFindFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"index.html":          "",
		"posts/a.html":        "",
		"posts/deep/b.html":   "",
		"posts/notes.txt":     "",
		"drafts/wip.html":     "",
		"assets/style.css":    "",
		"posts/deep/c.htm":    "",
		"posts/deep.html/x.x": "",
	})

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{
			name:    "all html",
			include: []string{"**/*.html"},
			want:    []string{"drafts/wip.html", "index.html", "posts/a.html", "posts/deep/b.html"},
		},
		{
			name:    "exclude drafts",
			include: []string{"**/*.html"},
			exclude: []string{"drafts/**"},
			want:    []string{"index.html", "posts/a.html", "posts/deep/b.html"},
		},
		{
			name:    "overlapping patterns are deduplicated",
			include: []string{"**/*.html", "posts/**/*.{html,htm}"},
			exclude: []string{"drafts/**"},
			want:    []string{"index.html", "posts/a.html", "posts/deep/b.html", "posts/deep/c.htm"},
		},
		{
			name:    "top level only",
			include: []string{"*.html"},
			want:    []string{"index.html"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := findFiles(root, tt.include, tt.exclude)
			require.NoError(t, err)

			want := make([]string, len(tt.want))
			for i, rel := range tt.want {
				want[i] = filepath.Join(root, filepath.FromSlash(rel))
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestMatches(t *testing.T) {
	root := filepath.Join("site", "public")
	include := []string{"**/*.html"}
	exclude := []string{"drafts/**"}

	assert.True(t, matches(root, filepath.Join(root, "a.html"), include, exclude))
	assert.True(t, matches(root, filepath.Join(root, "x", "y", "a.html"), include, exclude))
	assert.False(t, matches(root, filepath.Join(root, "drafts", "a.html"), include, exclude))
	assert.False(t, matches(root, filepath.Join(root, "a.css"), include, exclude))
}
