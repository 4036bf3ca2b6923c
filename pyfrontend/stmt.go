package pyfrontend

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/shivasurya/code-pathfinder/pycpg/cpg"
	"github.com/shivasurya/code-pathfinder/pycpg/lexicon"
)

const originStmt = "translateStmt"

// translateStmt maps one AST statement node to a CPG statement, wrapping
// bare declarations in a DeclStmt so they can sit inside a Compound (spec
// 4.F).
func (t *Translator) translateStmt(n *sitter.Node) cpg.Stmt {
	if n == nil {
		return attach(t, cpg.NewEmptyStmt(), n)
	}
	switch n.Type() {
	case "function_definition":
		fn := t.translateFunctionDef(n)
		t.scopes.AddDeclaration(fn)
		return attach(t, cpg.NewDeclStmt(fn), n)
	case "class_definition":
		rec := t.translateClassDef(n)
		t.scopes.AddDeclaration(rec)
		return attach(t, cpg.NewDeclStmt(rec), n)
	case "decorated_definition":
		return t.translateDecoratedDefinition(n)
	case "return_statement":
		return t.translateReturn(n)
	case "if_statement":
		return t.translateIf(n)
	case "while_statement":
		return t.translateWhile(n)
	case "for_statement":
		return t.translateForEach(n)
	case "try_statement":
		return t.translateTry(n)
	case "raise_statement":
		return t.translateRaise(n)
	case "with_statement":
		t.warn(cpg.CategoryUnsupportedConstruct, originStmt, n, `"with" is not modeled`)
		return attach(t, cpg.NewUnresolvedStmt("with statement"), n)
	case "pass_statement":
		return attach(t, cpg.NewEmptyStmt(), n)
	case "break_statement":
		return attach(t, cpg.NewBreakStmt(), n)
	case "continue_statement":
		t.warn(cpg.CategoryUnsupportedConstruct, originStmt, n, "continue is not modeled")
		return attach(t, cpg.NewUnresolvedStmt("continue"), n)
	case "import_statement", "import_from_statement":
		return t.translateImport(n)
	case "global_statement", "nonlocal_statement":
		kind := "global"
		if n.Type() == "nonlocal_statement" {
			kind = "nonlocal"
		}
		t.warn(cpg.CategoryUnsupportedConstruct, originStmt, n, fmt.Sprintf("%s is recorded structurally; it does not influence resolution", kind))
		return attach(t, cpg.NewUnresolvedStmt(kind), n)
	case "match_statement":
		t.warn(cpg.CategoryUnsupportedConstruct, originStmt, n, "match/case pattern matching is not modeled")
		return attach(t, cpg.NewUnresolvedStmt("match"), n)
	case "expression_statement":
		return t.translateExpressionStatement(n)
	case "block":
		return t.translateCompound(childStatements(n))
	default:
		t.error(cpg.CategoryShapeMismatch, originStmt, n, fmt.Sprintf("unexpected statement node kind %q", n.Type()))
		return attach(t, cpg.NewUnresolvedStmt("DUMMY"), n)
	}
}

// childStatements returns the named children of a `block` node.
func childStatements(block *sitter.Node) []*sitter.Node {
	if block == nil {
		return nil
	}
	count := int(block.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, block.NamedChild(i))
	}
	return out
}

// translateCompound implements compound-statement assembly (spec 4.F):
// one Compound node, children appended in source order. Empty input
// produces a warning and a dummy empty compound, never nil.
func (t *Translator) translateCompound(stmts []*sitter.Node) *cpg.Compound {
	if len(stmts) == 0 {
		t.warn(cpg.CategoryUnsupportedConstruct, originStmt, nil, "empty statement block; emitting a dummy empty compound")
		return cpg.NewCompound([]cpg.Stmt{cpg.NewEmptyStmt()})
	}
	translated := make([]cpg.Stmt, 0, len(stmts))
	for _, s := range stmts {
		translated = append(translated, t.translateStmt(s))
	}
	c := cpg.NewCompound(translated)
	cpg.SetLocation(c, t.spanLocation(stmts[0], stmts[len(stmts)-1]))
	return c
}

// translateExpressionStatement handles Expr (a bare expression used as a
// statement), which covers plain assignments (`x = 1`), augmented
// assignments, and expression-only statements (`f()`).
func (t *Translator) translateExpressionStatement(n *sitter.Node) cpg.Stmt {
	inner := n.NamedChild(0)
	if inner == nil {
		return attach(t, cpg.NewEmptyStmt(), n)
	}
	switch inner.Type() {
	case "assignment":
		return t.translateAssignment(inner)
	case "augmented_assignment":
		return t.translateAugmentedAssignment(inner)
	default:
		expr := t.translateExpr(inner)
		return t.wrapExprAsStmt(expr, n)
	}
}

// wrapExprAsStmt lifts a bare expression (e.g. a variable declaration
// created as a side effect of translating a Name, or a call expression
// used as a statement) into statement position.
func (t *Translator) wrapExprAsStmt(e cpg.Expr, n *sitter.Node) cpg.Stmt {
	if d, ok := e.(cpg.Decl); ok {
		return attach(t, cpg.NewDeclStmt(d), n)
	}
	return attach(t, cpg.NewExprStmt(e), n)
}

func (t *Translator) translateReturn(n *sitter.Node) cpg.Stmt {
	var value cpg.Expr
	if n.NamedChildCount() > 0 {
		value = t.translateExpr(n.NamedChild(0))
	}
	return attach(t, cpg.NewReturnStmt(value), n)
}

// translateIf implements If (spec 4.F): when the else-branch has no
// statements, Else is omitted entirely, never an empty block.
func (t *Translator) translateIf(n *sitter.Node) cpg.Stmt {
	condition := t.translateExpr(n.ChildByFieldName("condition"))
	then := t.translateCompound(childStatements(n.ChildByFieldName("consequence")))
	els := t.translateElseChain(fieldChildren(n, "alternative"))
	return attach(t, cpg.NewIfStmt(condition, then, els), n)
}

// fieldChildren collects every child tagged with the given field name;
// if_statement's `elif`/`else` clauses repeat the "alternative" field as
// direct siblings rather than nesting, so ChildByFieldName alone would
// only see the first one.
func fieldChildren(n *sitter.Node, field string) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.ChildCount())
	var out []*sitter.Node
	for i := 0; i < count; i++ {
		if n.FieldNameForChild(i) == field {
			out = append(out, n.Child(i))
		}
	}
	return out
}

// translateElseChain recursively lowers a flat list of elif_clause nodes
// followed by an optional else_clause. Each elif becomes a nested IfStmt
// wrapped in a single-statement Compound so it can occupy the parent's
// Else slot; a trailing else with no statements is omitted entirely
// rather than producing an empty block.
func (t *Translator) translateElseChain(alts []*sitter.Node) *cpg.Compound {
	if len(alts) == 0 {
		return nil
	}
	head := alts[0]
	switch head.Type() {
	case "else_clause":
		stmts := childStatements(head.ChildByFieldName("body"))
		if len(stmts) == 0 {
			return nil
		}
		return t.translateCompound(stmts)
	case "elif_clause":
		cond := t.translateExpr(head.ChildByFieldName("condition"))
		then := t.translateCompound(childStatements(head.ChildByFieldName("consequence")))
		nested := t.translateElseChain(alts[1:])
		inner := attach(t, cpg.NewIfStmt(cond, then, nested), head)
		return cpg.NewCompound([]cpg.Stmt{inner})
	default:
		return nil
	}
}

// translateWhile implements While (spec 4.F): Python's `while...else` is
// not supported; the loop body is preserved regardless.
func (t *Translator) translateWhile(n *sitter.Node) cpg.Stmt {
	condition := t.translateExpr(n.ChildByFieldName("condition"))
	body := t.translateCompound(childStatements(n.ChildByFieldName("body")))
	if n.ChildByFieldName("alternative") != nil {
		t.warn(cpg.CategoryUnsupportedConstruct, originStmt, n, "while/else is not supported")
	}
	return attach(t, cpg.NewWhileStmt(condition, body), n)
}

// translateForEach implements For/AsyncFor (spec 4.F): if the target
// resolves to a fresh variable declaration, it is wrapped in a
// declaration-statement; `else` on for is not supported.
func (t *Translator) translateForEach(n *sitter.Node) cpg.Stmt {
	left := n.ChildByFieldName("left")
	iterable := t.translateExpr(n.ChildByFieldName("right"))
	body := t.translateCompound(childStatements(n.ChildByFieldName("body")))
	if n.ChildByFieldName("alternative") != nil {
		t.warn(cpg.CategoryUnsupportedConstruct, originStmt, n, "for/else is not supported")
	}

	var variable cpg.Node
	if left != nil && left.Type() == "identifier" {
		ref := attach(t, cpg.NewReference(t.text(left)), left)
		if _, ok := t.scopes.Resolve(ref); ok {
			variable = ref
		} else {
			v := attach(t, cpg.NewVariable(ref.Name, "", nil, false), left)
			t.scopes.AddDeclaration(v)
			variable = cpg.NewDeclStmt(v)
			cpg.SetLocation(variable, t.locationOf(left))
		}
	} else {
		t.warn(cpg.CategoryUnsupportedConstruct, originStmt, left, "multi-target for-loop variables are not fully modeled")
		variable = attach(t, cpg.NewUnsupported("for-loop target"), left)
	}
	return attach(t, cpg.NewForEachStmt(variable, iterable, body), n)
}

// translateTry implements Try (spec 4.F): handlers stored opaquely,
// `else` on try not supported.
func (t *Translator) translateTry(n *sitter.Node) cpg.Stmt {
	body := t.translateCompound(childStatements(n.ChildByFieldName("body")))
	var handlers []cpg.Node
	var finally *cpg.Compound
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "except_clause":
			handlers = append(handlers, attach(t, cpg.NewUnsupported("except handler"), child))
		case "finally_clause":
			finally = t.translateCompound(childStatements(child.ChildByFieldName("body")))
		case "else_clause":
			t.warn(cpg.CategoryUnsupportedConstruct, originStmt, child, "try/else is not supported")
		}
	}
	return attach(t, cpg.NewTryStmt(body, handlers, finally), n)
}

// translateRaise implements Raise (spec 4.F): a unary "raise" with the
// optional exception expression as operand; bare raise has no operand.
func (t *Translator) translateRaise(n *sitter.Node) cpg.Stmt {
	var operand cpg.Expr
	if n.NamedChildCount() > 0 {
		operand = t.translateExpr(n.NamedChild(0))
	}
	unary := cpg.NewUnaryOp(lexicon.Raise, operand)
	cpg.SetLocation(unary, t.locationOf(n))
	return attach(t, cpg.NewRaiseStmt(unary), n)
}
