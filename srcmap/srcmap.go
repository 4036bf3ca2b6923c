// Package srcmap extracts exact source snippets by 1-based line/column
// region, the component the translator consults whenever it mints a node
// that needs a physical location.
package srcmap

import (
	"fmt"
	"strings"
)

// SourceMap splits a file's content into lines once and serves snippet
// lookups against that immutable split. Line and column indices are
// 1-based throughout, matching the convention the translator uses for CPG
// locations.
type SourceMap struct {
	file  string
	lines []string
}

// New builds a SourceMap over the given file's content. Line terminators
// are stripped from each line; "\r\n" and "\n" are both recognized.
func New(file, content string) *SourceMap {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	return &SourceMap{
		file:  file,
		lines: strings.Split(normalized, "\n"),
	}
}

// File returns the file path this source map was built from.
func (s *SourceMap) File() string {
	return s.file
}

// LineCount returns the number of lines in the source.
func (s *SourceMap) LineCount() int {
	return len(s.lines)
}

// Line returns the 1-indexed line's text, or "" if out of range.
func (s *SourceMap) Line(n int) string {
	if n < 1 || n > len(s.lines) {
		return ""
	}
	return s.lines[n-1]
}

// Snippet returns the exact character range [startLine:startCol,
// endLine:endCol] from the source, 1-based and inclusive on the start
// column, exclusive on the end column per the half-open tree-sitter
// convention this translator's caller already uses for byte offsets.
// Multiline spans are joined with "\n".
func (s *SourceMap) Snippet(startLine, startCol, endLine, endCol int) (string, error) {
	if startLine < 1 || startLine > len(s.lines) {
		return "", fmt.Errorf("srcmap: start line %d out of range [1,%d]", startLine, len(s.lines))
	}
	if endLine < 1 || endLine > len(s.lines) {
		return "", fmt.Errorf("srcmap: end line %d out of range [1,%d]", endLine, len(s.lines))
	}
	if endLine < startLine || (endLine == startLine && endCol < startCol) {
		return "", fmt.Errorf("srcmap: region end precedes start (%d:%d .. %d:%d)", startLine, startCol, endLine, endCol)
	}

	if startLine == endLine {
		line := s.lines[startLine-1]
		return sliceCols(line, startCol, endCol), nil
	}

	var b strings.Builder
	b.WriteString(sliceCols(s.lines[startLine-1], startCol, -1))
	for l := startLine + 1; l < endLine; l++ {
		b.WriteByte('\n')
		b.WriteString(s.lines[l-1])
	}
	b.WriteByte('\n')
	b.WriteString(sliceCols(s.lines[endLine-1], 1, endCol))
	return b.String(), nil
}

// sliceCols returns line[startCol-1:endCol-1] in 1-based column terms;
// endCol == -1 means "to end of line".
func sliceCols(line string, startCol, endCol int) string {
	runes := []rune(line)
	start := startCol - 1
	if start < 0 {
		start = 0
	}
	if start > len(runes) {
		start = len(runes)
	}
	end := len(runes)
	if endCol >= 0 {
		end = endCol - 1
		if end > len(runes) {
			end = len(runes)
		}
		if end < start {
			end = start
		}
	}
	return string(runes[start:end])
}
