package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLexicon(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "empty content",
			content:  "",
			expected: nil,
		},
		{
			name:     "plain terms",
			content:  "terraform\nkubernetes\n",
			expected: []string{"terraform", "kubernetes"},
		},
		{
			name:     "comments and blanks skipped",
			content:  "# infra skills\n\nterraform\n\n# more\nansible\n",
			expected: []string{"terraform", "ansible"},
		},
		{
			name:     "normalized and deduplicated",
			content:  "Terraform\nTERRAFORM\n  terraform  \n",
			expected: []string{"terraform"},
		},
		{
			name:     "multiword terms preserved",
			content:  "site reliability engineering\n",
			expected: []string{"site reliability engineering"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLexicon(tt.content))
		})
	}
}

func TestLoadLexiconFile(t *testing.T) {
	t.Run("no file configured", func(t *testing.T) {
		cfg := &Config{}
		assert.NoError(t, cfg.loadLexiconFile())
	})

	t.Run("missing file is an error", func(t *testing.T) {
		cfg := &Config{Engine: EngineConfig{LexiconFile: "/nonexistent/lexicon.txt"}}
		assert.Error(t, cfg.loadLexiconFile())
	})

	t.Run("valid file loads terms", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "lexicon.txt")
		require.NoError(t, os.WriteFile(path, []byte("terraform\n# comment\npulumi\n"), 0644))

		cfg := &Config{Engine: EngineConfig{LexiconFile: path}}
		require.NoError(t, cfg.loadLexiconFile())
		assert.Equal(t, []string{"terraform", "pulumi"}, cfg.ExtraSkills())
	})

	t.Run("directory is an error", func(t *testing.T) {
		cfg := &Config{Engine: EngineConfig{LexiconFile: t.TempDir()}}
		assert.Error(t, cfg.loadLexiconFile())
	})
}
