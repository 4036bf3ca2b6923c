package pyfrontend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/shivasurya/code-pathfinder/pycpg/cpg"
	"github.com/shivasurya/code-pathfinder/pycpg/scope"
)

// ParseFile implements the translation-unit driver (spec 4.K): parse one
// file's source into a sealed TranslationUnit, or a TranslationFailed on
// any fatal error. scopes carries state across a batch run (its
// qualified-name cache); its scope stack is always reset here, so passing
// the same Manager to several sequential ParseFile calls is safe as long
// as they do not run concurrently (spec section 5).
func ParseFile(file string, source []byte, scopes *scope.Manager) (*cpg.TranslationUnit, []cpg.Diagnostic, error) {
	return parseFile(file, source, scopes, nil)
}

// ParseFileWithComments is ParseFile plus an external comment matcher
// hooked up for this file (spec 4.J).
func ParseFileWithComments(file string, source []byte, scopes *scope.Manager, sink CommentSink) (*cpg.TranslationUnit, []cpg.Diagnostic, error) {
	return parseFile(file, source, scopes, sink)
}

func parseFile(file string, source []byte, scopes *scope.Manager, sink CommentSink) (*cpg.TranslationUnit, []cpg.Diagnostic, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, nil, &cpg.TranslationFailed{File: file, Cause: err}
	}
	defer tree.Close()
	root := tree.RootNode()

	tu := cpg.NewTranslationUnit(file)
	scopes.ResetToGlobal(tu)

	t := NewTranslator(file, source, scopes)
	if sink != nil {
		t.WithCommentSink(sink)
	}

	namespace := cpg.NewNamespace(namespaceNameFor(file))
	scopes.Enter(scope.Namespace, namespace)

	for _, stmt := range childStatements(root) {
		translated := t.translateStmt(stmt)
		if decl, ok := translated.(*cpg.DeclStmt); ok {
			namespace.AddDeclaration(decl.Declaration)
			if name := topLevelDeclName(decl.Declaration); name != "" {
				scopes.CacheQualifiedName(namespace.Name+"."+name, decl.Declaration.NodeID())
			}
		} else {
			namespace.AddStatement(translated)
		}
	}

	if err := scopes.Leave(namespace); err != nil {
		return nil, nil, &cpg.TranslationFailed{File: file, Cause: err}
	}

	cpg.SetLocation(namespace, t.locationOf(root))
	tu.Root = namespace
	cpg.SetLocation(tu, t.locationOf(root))

	t.runCommentHook(root, tu)

	if !scopes.Balanced() {
		return nil, nil, &cpg.TranslationFailed{File: file, Cause: fmt.Errorf("scope manager left unbalanced after translating %s", file)}
	}

	return tu, t.Diagnostics(), nil
}

// ParseDirectory walks dir for .py files and translates each one,
// dispatching across a small worker pool the way the ported graph
// builder's directory walker does, but with one fresh Translator and
// scope.Manager per file (spec section 5's single-threaded-per-unit
// model) rather than one shared mutable graph. The qualified-name cache
// is the only thing shared across workers.
func ParseDirectory(dir string, workers int) (map[string]*cpg.TranslationUnit, map[string][]cpg.Diagnostic, []error) {
	if workers <= 0 {
		workers = 4
	}

	files, err := pythonFilesUnder(dir)
	if err != nil {
		return nil, nil, []error{err}
	}

	sharedCache := scope.NewSharedCache()

	type result struct {
		file  string
		tu    *cpg.TranslationUnit
		diags []cpg.Diagnostic
		err   error
	}

	fileChan := make(chan string, len(files))
	resultChan := make(chan result, len(files))
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for file := range fileChan {
			source, readErr := os.ReadFile(file)
			if readErr != nil {
				resultChan <- result{file: file, err: &cpg.TranslationFailed{File: file, Cause: readErr}}
				continue
			}
			scopes := scope.NewWithCache(sharedCache)
			tu, diags, parseErr := ParseFile(file, source, scopes)
			resultChan <- result{file: file, tu: tu, diags: diags, err: parseErr}
		}
	}

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go worker()
	}
	for _, f := range files {
		fileChan <- f
	}
	close(fileChan)
	wg.Wait()
	close(resultChan)

	units := make(map[string]*cpg.TranslationUnit, len(files))
	diagnostics := make(map[string][]cpg.Diagnostic, len(files))
	var errs []error
	for r := range resultChan {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		units[r.file] = r.tu
		diagnostics[r.file] = r.diags
	}
	return units, diagnostics, errs
}

// topLevelDeclName returns the name a module-level declaration binds, for
// keying the cross-file qualified-name cache. Declarations that cannot be
// imported by name (bare Import statements) return "".
func topLevelDeclName(d cpg.Decl) string {
	switch v := d.(type) {
	case *cpg.Function:
		return v.Name
	case *cpg.Record:
		return v.Name
	case *cpg.Variable:
		return v.Name
	default:
		return ""
	}
}

func pythonFilesUnder(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !info.IsDir() && filepath.Ext(path) == ".py" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
