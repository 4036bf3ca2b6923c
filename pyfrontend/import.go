package pyfrontend

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/shivasurya/code-pathfinder/pycpg/cpg"
	"github.com/shivasurya/code-pathfinder/pycpg/lexicon"
)

const originImport = "translateImport"

// translateImport implements Import/ImportFrom (spec 4.I): it normalizes
// Python's import shapes to a single Import declaration per module and
// registers an unknown-typed global Variable for each name the import
// binds, so later references to an imported symbol resolve even though
// the frontend never opens the imported module.
func (t *Translator) translateImport(n *sitter.Node) cpg.Stmt {
	switch n.Type() {
	case "import_statement":
		return t.translatePlainImport(n)
	case "import_from_statement":
		return t.translateFromImport(n)
	default:
		t.error(cpg.CategoryShapeMismatch, originImport, n, "unexpected import node kind "+n.Type())
		return attach(t, cpg.NewUnresolvedStmt("import"), n)
	}
}

// translatePlainImport handles `import a, b.c as d` — each comma-separated
// target becomes its own Import declaration; the whole statement becomes
// a Compound of DeclStmts when more than one target is present.
func (t *Translator) translatePlainImport(n *sitter.Node) cpg.Stmt {
	count := int(n.NamedChildCount())
	var stmts []cpg.Stmt
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		var modulePath, alias string
		switch child.Type() {
		case "dotted_name":
			modulePath = t.text(child)
		case "aliased_import":
			modulePath = t.text(child.ChildByFieldName("name"))
			alias = t.text(child.ChildByFieldName("alias"))
		default:
			t.warn(cpg.CategoryUnsupportedConstruct, originImport, child, "import target shape not fully modeled")
			continue
		}
		imp := attach(t, cpg.NewImport(modulePath, alias), child)
		t.scopes.AddDeclaration(imp)
		t.registerImportGlobal(boundName(modulePath, alias), child)
		stmts = append(stmts, attach(t, cpg.NewDeclStmt(imp), child))
	}
	if len(stmts) == 1 {
		return stmts[0]
	}
	return attach(t, cpg.NewCompound(stmts), n)
}

// translateFromImport handles `from m import a, b as c` and `from m
// import *`. A wildcard import cannot enumerate the names it binds, so no
// global Variable is registered for it; a diagnostic records the gap.
func (t *Translator) translateFromImport(n *sitter.Node) cpg.Stmt {
	moduleNode := n.ChildByFieldName("module_name")
	modulePath := t.text(moduleNode)

	count := int(n.NamedChildCount())
	var symbols []*cpg.ImportSymbol
	wildcard := false
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child == moduleNode {
			continue
		}
		switch child.Type() {
		case "wildcard_import":
			wildcard = true
		case "dotted_name", "identifier":
			sym := attach(t, cpg.NewImportSymbol(t.text(child), ""), child)
			symbols = append(symbols, sym)
		case "aliased_import":
			name := t.text(child.ChildByFieldName("name"))
			alias := t.text(child.ChildByFieldName("alias"))
			sym := attach(t, cpg.NewImportSymbol(name, alias), child)
			symbols = append(symbols, sym)
		default:
			t.warn(cpg.CategoryUnsupportedConstruct, originImport, child, "import target shape not fully modeled")
		}
	}

	imp := attach(t, cpg.NewImportFrom(modulePath, symbols, wildcard), n)
	t.scopes.AddDeclaration(imp)

	if wildcard {
		t.warn(cpg.CategoryUnsupportedConstruct, originImport, n, "wildcard import cannot enumerate the names it binds; no globals are registered for it")
	} else {
		for _, sym := range symbols {
			if target, ok := t.scopes.LookupQualifiedName(modulePath + "." + sym.Name); ok {
				sym.Resolve(target)
			}
			t.registerImportGlobal(boundName(sym.Name, sym.Alias), n)
		}
	}
	return attach(t, cpg.NewDeclStmt(imp), n)
}

// boundName is the name a `name [as alias]` clause actually binds: the
// alias when present, otherwise the leading segment of a dotted path
// (`import a.b.c` binds `a`).
func boundName(path, alias string) string {
	if alias != "" {
		return alias
	}
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return path
}

// registerImportGlobal mints the unknown-typed, implicit Variable that
// stands in for an imported symbol (spec 4.I). At module level the
// variable is also added to the namespace's declarations.
func (t *Translator) registerImportGlobal(name string, loc *sitter.Node) {
	if name == "" {
		return
	}
	v := attach(t, cpg.NewVariable(name, lexicon.TypeUnknown, nil, true), loc)
	t.scopes.AddDeclaration(v)
	if s := t.scopes.Current(); s != nil {
		if ns, ok := s.Owner.(*cpg.Namespace); ok {
			ns.AddDeclaration(v)
		}
	}
}
