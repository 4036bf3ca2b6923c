package pyfrontend

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/shivasurya/code-pathfinder/pycpg/cpg"
	"github.com/shivasurya/code-pathfinder/pycpg/lexicon"
)

const originAssign = "translateAssignment"

// translateAssignment implements the assignment discriminator (spec 4.H):
// resolve the target first, then decide between a fresh Field, a fresh
// Variable, or an assignment to an already-resolved binding based on the
// enclosing record/function context and the target's shape.
func (t *Translator) translateAssignment(n *sitter.Node) cpg.Stmt {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	declaredType := t.text(n.ChildByFieldName("type"))

	if right != nil && right.Type() == "assignment" {
		t.warn(cpg.CategoryUnsupportedConstruct, originAssign, n, "chained assignment (a = b = c) only translates the first target")
	}
	value := t.translateAssignmentValue(right)

	if left == nil {
		return attach(t, cpg.NewUnresolvedStmt("assignment with no target"), n)
	}
	switch left.Type() {
	case "identifier":
		return t.assignToName(left, value, declaredType, n)
	case "attribute":
		return t.assignToMember(left, value, declaredType, n)
	default:
		t.warn(cpg.CategoryUnsupportedConstruct, originAssign, left, "tuple, subscript, and starred assignment targets are not fully modeled")
		return attach(t, cpg.NewUnresolvedStmt("assignment target"), n)
	}
}

// translateAssignmentValue recurses through a chain of `a = b = c` nodes
// down to the final right-hand expression.
func (t *Translator) translateAssignmentValue(n *sitter.Node) cpg.Expr {
	if n != nil && n.Type() == "assignment" {
		return t.translateAssignmentValue(n.ChildByFieldName("right"))
	}
	return t.translateExpr(n)
}

// assignToName implements the Reference branch of the discriminator: a
// class-body assignment with no enclosing function becomes a Field; an
// assignment that resolves to an existing binding becomes an assignment
// expression; anything else mints a fresh Variable.
func (t *Translator) assignToName(left *sitter.Node, value cpg.Expr, declaredType string, n *sitter.Node) cpg.Stmt {
	name := t.text(left)
	record := t.scopes.CurrentRecord()
	fn := t.scopes.CurrentFunction()

	if record != nil && fn == nil {
		field := attach(t, cpg.NewField(name, declaredType, value, false, record.NodeID()), left)
		record.AddField(field)
		t.scopes.AddDeclaration(field)
		return attach(t, cpg.NewDeclStmt(field), n)
	}

	ref := attach(t, cpg.NewReference(name), left)
	if _, ok := t.scopes.Resolve(ref); ok {
		bin := cpg.NewBinaryOp(lexicon.Assign, ref, value)
		cpg.SetLocation(bin, t.locationOf(n))
		return attach(t, cpg.NewExprStmt(bin), n)
	}

	v := attach(t, cpg.NewVariable(name, declaredType, value, false), left)
	t.scopes.AddDeclaration(v)
	return attach(t, cpg.NewDeclStmt(v), n)
}

// assignToMember implements the Member branch: `self.x = value` inside a
// method mints a Field on the enclosing record the first time x is seen;
// a later `self.x = ...` that targets an already-declared field, or any
// member target whose base is not the receiver, is a plain assignment
// expression instead.
func (t *Translator) assignToMember(left *sitter.Node, value cpg.Expr, declaredType string, n *sitter.Node) cpg.Stmt {
	base := t.translateExpr(left.ChildByFieldName("object"))
	attrName := t.text(left.ChildByFieldName("attribute"))
	record := t.scopes.CurrentRecord()
	fn := t.scopes.CurrentFunction()
	receiver := t.scopes.CurrentReceiver()

	onReceiver := false
	if ref, ok := base.(*cpg.Reference); ok && receiver != nil && ref.Name == receiver.Name {
		onReceiver = true
	}

	if record != nil && fn != nil && onReceiver {
		if _, exists := record.FieldByName(attrName); !exists {
			field := attach(t, cpg.NewField(attrName, declaredType, value, false, record.NodeID()), left)
			record.AddField(field)
			return attach(t, cpg.NewDeclStmt(field), n)
		}
	}

	member := attach(t, cpg.NewMemberAccess(base, attrName), left)
	bin := cpg.NewBinaryOp(lexicon.Assign, member, value)
	cpg.SetLocation(bin, t.locationOf(n))
	return attach(t, cpg.NewExprStmt(bin), n)
}

// translateAugmentedAssignment implements AugAssign (spec 4.H): always
// lowered to a binary operator whose result is assigned back to the
// target, e.g. `x += y` becomes the assignment expression `x = x + y`.
func (t *Translator) translateAugmentedAssignment(n *sitter.Node) cpg.Stmt {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	opText := t.text(n.ChildByFieldName("operator"))
	code, ok := lexicon.BinaryOpCode(strings.TrimSuffix(opText, "="))
	if !ok {
		t.error(cpg.CategoryShapeMismatch, originAssign, n, "unrecognized augmented assignment operator "+opText)
		code = "DUMMY"
	}

	switch left.Type() {
	case "identifier":
		ref := attach(t, cpg.NewReference(t.text(left)), left)
		if _, ok := t.scopes.Resolve(ref); !ok {
			t.warn(cpg.CategoryUnsupportedConstruct, originAssign, left, "augmented assignment to an unresolved name")
		}
		rhs := t.translateExpr(right)
		inner := attach(t, cpg.NewBinaryOp(code, ref, rhs), n)
		outer := cpg.NewBinaryOp(lexicon.Assign, ref, inner)
		cpg.SetLocation(outer, t.locationOf(n))
		return attach(t, cpg.NewExprStmt(outer), n)
	case "attribute":
		base := t.translateExpr(left.ChildByFieldName("object"))
		attrName := t.text(left.ChildByFieldName("attribute"))
		member := attach(t, cpg.NewMemberAccess(base, attrName), left)
		rhs := t.translateExpr(right)
		inner := attach(t, cpg.NewBinaryOp(code, member, rhs), n)
		outer := cpg.NewBinaryOp(lexicon.Assign, member, inner)
		cpg.SetLocation(outer, t.locationOf(n))
		return attach(t, cpg.NewExprStmt(outer), n)
	default:
		t.warn(cpg.CategoryUnsupportedConstruct, originAssign, left, "augmented assignment target shape not fully modeled")
		return attach(t, cpg.NewUnresolvedStmt("augmented assignment target"), n)
	}
}
