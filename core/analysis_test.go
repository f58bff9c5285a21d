package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemindhq/codemind/internal/contract"
)

func collectConfig() *contract.Config {
	return &contract.Config{
		Excludes:     []string{"node_modules/", ".min.js", "go.sum"},
		MaxFileBytes: contract.DefaultMaxFileBytes,
	}
}

func writeFixture(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCollectFilesWalksRecognizedSources(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "app.py", "def run_app():\n    pass\n")
	writeFixture(t, root, "web/index.js", "function render() {}\n")
	writeFixture(t, root, "README.txt", "not code\n")
	writeFixture(t, root, "notes.md", "docs\n")

	files, err := CollectFiles(root, collectConfig())
	require.NoError(t, err)
	require.Len(t, files, 2)

	names := []string{files[0].Filename, files[1].Filename}
	assert.Contains(t, names, "app.py")
	assert.Contains(t, names, "web/index.js")
}

func TestCollectFilesHonorsExcludes(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "main.go", "package main\n")
	writeFixture(t, root, "node_modules/lib/index.js", "function x() {}\n")
	writeFixture(t, root, "bundle.min.js", "var a=1;\n")

	files, err := CollectFiles(root, collectConfig())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "main.go", files[0].Filename)
}

func TestCollectFilesSkipsLargeAndBinary(t *testing.T) {
	root := t.TempDir()
	cfg := collectConfig()
	cfg.MaxFileBytes = 64

	writeFixture(t, root, "small.py", "x = 1\n")
	writeFixture(t, root, "large.py", strings.Repeat("# padding\n", 50))
	writeFixture(t, root, "blob.py", "data\x00binary")

	files, err := CollectFiles(root, cfg)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "small.py", files[0].Filename)
}

func TestCollectFilesSingleFile(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "one.py", "def only_one():\n    pass\n")

	files, err := CollectFiles(filepath.Join(root, "one.py"), collectConfig())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "one.py", files[0].Filename)
}

func TestCollectFilesMissingPath(t *testing.T) {
	_, err := CollectFiles(filepath.Join(t.TempDir(), "missing"), collectConfig())
	assert.Error(t, err)
}
