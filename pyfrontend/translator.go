// Package pyfrontend drives the AST-to-CPG translation (spec components
// E through K): it walks the tree-sitter-python concrete syntax tree,
// mints CPG nodes via package cpg, and registers/resolves names through
// package scope.
//
// A Translator is per-file state, matching the single-threaded-per-
// translation-unit concurrency model: the batch driver (ParseDirectory)
// creates a fresh Translator per file rather than sharing one across
// goroutines.
package pyfrontend

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/shivasurya/code-pathfinder/pycpg/cpg"
	"github.com/shivasurya/code-pathfinder/pycpg/scope"
	"github.com/shivasurya/code-pathfinder/pycpg/srcmap"
)

// Translator holds everything one file's translation needs: the source
// map for location/snippet lookups, the scope manager, the raw source
// bytes tree-sitter nodes index into, and the accumulated diagnostics.
type Translator struct {
	file        string
	source      []byte
	sm          *srcmap.SourceMap
	scopes      *scope.Manager
	diagnostics []cpg.Diagnostic

	// pendingDecorators carries a decorated function's translated
	// Annotations across the call into translateFunctionDef, which attaches
	// them to the function it translates. Decorated classes do not use it.
	pendingDecorators []*cpg.Annotation

	// commentSink is the external comment matcher hooked up via
	// WithCommentSink; nil means no comment linking is performed (spec 4.J).
	commentSink CommentSink
}

// WithCommentSink attaches an external comment matcher callback to this
// translator; ParseFile invokes it once per lexical comment after the
// statement translation pass finishes.
func (t *Translator) WithCommentSink(sink CommentSink) *Translator {
	t.commentSink = sink
	return t
}

// NewTranslator builds a fresh translator for one file. scopes may be
// shared in the narrow sense of carrying a cross-file qualified-name
// cache (scope.Manager.CacheQualifiedName); its scope *stack* is always
// reset for this file via ResetToGlobal, so no per-file stack state
// leaks across files in a batch run.
func NewTranslator(file string, source []byte, scopes *scope.Manager) *Translator {
	return &Translator{
		file:   file,
		source: source,
		sm:     srcmap.New(file, string(source)),
		scopes: scopes,
	}
}

// Diagnostics returns the diagnostics accumulated so far.
func (t *Translator) Diagnostics() []cpg.Diagnostic {
	return t.diagnostics
}

func (t *Translator) warn(category cpg.Category, origin string, n *sitter.Node, message string) {
	t.diagnostics = append(t.diagnostics, cpg.NewDiagnostic(cpg.SeverityWarn, category, origin, t.locationOf(n), message))
}

func (t *Translator) error(category cpg.Category, origin string, n *sitter.Node, message string) {
	t.diagnostics = append(t.diagnostics, cpg.NewDiagnostic(cpg.SeverityError, category, origin, t.locationOf(n), message))
}

// locationOf converts a tree-sitter node's 0-based row/column points into
// the CPG's 1-based Location, reading the exact snippet text through the
// source map (component A).
func (t *Translator) locationOf(n *sitter.Node) cpg.Location {
	if n == nil {
		return cpg.NoLocation()
	}
	start := n.StartPoint()
	end := n.EndPoint()
	startLine := int(start.Row) + 1
	startCol := int(start.Column) + 1
	endLine := int(end.Row) + 1
	endCol := int(end.Column) + 1
	code, err := t.sm.Snippet(startLine, startCol, endLine, endCol)
	if err != nil {
		code = ""
	}
	return cpg.Location{
		Present:   true,
		File:      t.file,
		StartLine: startLine,
		StartCol:  startCol,
		EndLine:   endLine,
		EndCol:    endCol,
		Code:      code,
	}
}

// spanLocation builds a location covering [first.start, last.end],
// used for synthetic nodes (like an assembled Compound) that don't
// correspond to a single tree-sitter node.
func (t *Translator) spanLocation(first, last *sitter.Node) cpg.Location {
	if first == nil || last == nil {
		return cpg.NoLocation()
	}
	start := first.StartPoint()
	end := last.EndPoint()
	startLine := int(start.Row) + 1
	startCol := int(start.Column) + 1
	endLine := int(end.Row) + 1
	endCol := int(end.Column) + 1
	code, err := t.sm.Snippet(startLine, startCol, endLine, endCol)
	if err != nil {
		code = ""
	}
	return cpg.Location{Present: true, File: t.file, StartLine: startLine, StartCol: startCol, EndLine: endLine, EndCol: endCol, Code: code}
}

// attach mints a node's location immediately after construction, the
// translator-side half of component B's "builders never attach
// locations" contract.
func attach[N cpg.Node](t *Translator, n N, ts *sitter.Node) N {
	cpg.SetLocation(n, t.locationOf(ts))
	return n
}

// text returns a tree-sitter node's exact source text.
func (t *Translator) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(t.source)
}

// namespaceNameFor derives a translation unit's root namespace name from
// the file's basename with its extension stripped (invariant 2).
func namespaceNameFor(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
