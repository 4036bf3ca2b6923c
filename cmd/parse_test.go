package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunParseSingleFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sample.py")
	require.NoError(t, os.WriteFile(file, []byte("def add(a, b):\n    return a + b\n"), 0o644))

	err := runParse(parseCmd, []string{file})
	assert.NoError(t, err)
}

func TestRunParseDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.py"), []byte("x = 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.py"), []byte("y = 2\n"), 0o644))

	err := runParse(parseCmd, []string{dir})
	assert.NoError(t, err)
}

func TestRunParseMissingPath(t *testing.T) {
	err := runParse(parseCmd, []string{filepath.Join(t.TempDir(), "missing.py")})
	assert.Error(t, err)
}

func TestRunParseJSONOutput(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "chain.py")
	require.NoError(t, os.WriteFile(file, []byte("x = a < b < c\n"), 0o644))

	parseOutputFormat = "json"
	defer func() { parseOutputFormat = "text" }()

	err := runParse(parseCmd, []string{file})
	assert.NoError(t, err)
}
