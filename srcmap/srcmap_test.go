package srcmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnippetSingleLine(t *testing.T) {
	sm := New("a.py", "def add(a, b):\n    return a + b\n")
	snippet, err := sm.Snippet(1, 1, 1, 15)
	require.NoError(t, err)
	assert.Equal(t, "def add(a, b):", snippet)
}

func TestSnippetMultiline(t *testing.T) {
	sm := New("a.py", "def add(a, b):\n    return a + b\n")
	snippet, err := sm.Snippet(1, 1, 2, 17)
	require.NoError(t, err)
	assert.Equal(t, "def add(a, b):\n    return a + b", snippet)
}

func TestSnippetOutOfRange(t *testing.T) {
	sm := New("a.py", "x = 1\n")
	_, err := sm.Snippet(5, 1, 5, 2)
	assert.Error(t, err)
}

func TestSnippetByteEqualForIdenticalRegions(t *testing.T) {
	sm := New("a.py", "x = 1 + 2\n")
	s1, err1 := sm.Snippet(1, 1, 1, 10)
	s2, err2 := sm.Snippet(1, 1, 1, 10)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, s1, s2)
}

func TestSnippetEndBeforeStartErrors(t *testing.T) {
	sm := New("a.py", "x = 1\n")
	_, err := sm.Snippet(1, 5, 1, 1)
	assert.Error(t, err)
}
