package pyfrontend

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/shivasurya/code-pathfinder/pycpg/cpg"
	"github.com/shivasurya/code-pathfinder/pycpg/lexicon"
)

const originExpr = "translateExpr"

// translateExpr maps one AST expression node to exactly one CPG
// expression variant (spec 4.E). Children are always translated before
// the node they build, matching the ordering guarantee in spec section 5.
func (t *Translator) translateExpr(n *sitter.Node) cpg.Expr {
	if n == nil {
		return attach(t, cpg.NewUnsupported("missing expression"), n)
	}
	switch n.Type() {
	case "identifier":
		return t.translateName(n)
	case "true", "false", "none", "integer", "float", "string", "concatenated_string":
		return t.translateConstant(n)
	case "binary_operator":
		return t.translateBinaryOperator(n)
	case "boolean_operator":
		return t.translateBooleanOperator(n)
	case "comparison_operator":
		return t.translateComparison(n)
	case "not_operator":
		return t.translateNotOperator(n)
	case "unary_operator":
		return t.translateUnaryOperator(n)
	case "conditional_expression":
		return t.translateConditional(n)
	case "dictionary":
		return t.translateDictionary(n)
	case "set":
		t.warn(cpg.CategoryUnsupportedConstruct, originExpr, n, "set literals are not modeled")
		return attach(t, cpg.NewUnsupported("set literal"), n)
	case "list_comprehension", "set_comprehension", "dictionary_comprehension", "generator_expression":
		t.warn(cpg.CategoryUnsupportedConstruct, originExpr, n, "comprehensions and generator expressions are not modeled")
		return attach(t, cpg.NewUnsupported("comprehension"), n)
	case "await":
		t.warn(cpg.CategoryUnsupportedConstruct, originExpr, n, `"await" is not modeled; the inner expression is translated, await information is lost`)
		return t.translateExpr(n.ChildByFieldName("argument"))
	case "yield":
		t.warn(cpg.CategoryUnsupportedConstruct, originExpr, n, "yield is not modeled")
		return attach(t, cpg.NewUnsupported("yield"), n)
	case "call":
		return t.translateCall(n)
	case "attribute":
		return t.translateAttribute(n)
	case "subscript":
		return t.translateSubscript(n)
	case "slice":
		return t.translateRange(n)
	case "list", "tuple":
		return t.translateInitializerList(n)
	case "parenthesized_expression":
		return t.translateExpr(n.NamedChild(0))
	case "lambda":
		t.warn(cpg.CategoryUnsupportedConstruct, originExpr, n, "lambda expressions are not modeled")
		return attach(t, cpg.NewUnsupported("lambda"), n)
	case "named_expression":
		t.warn(cpg.CategoryUnsupportedConstruct, originExpr, n, "walrus assignment expressions are not modeled")
		return attach(t, cpg.NewUnsupported("named expression"), n)
	case "interpolation", "f_string", "string_content":
		t.warn(cpg.CategoryUnsupportedConstruct, originExpr, n, "formatted string interpolation is not modeled")
		return attach(t, cpg.NewUnsupported("formatted value"), n)
	case "starred_expression":
		t.warn(cpg.CategoryUnsupportedConstruct, originExpr, n, "starred expansion is not modeled")
		return attach(t, cpg.NewUnsupported("starred expression"), n)
	default:
		t.error(cpg.CategoryShapeMismatch, originExpr, n, fmt.Sprintf("unexpected expression node kind %q", n.Type()))
		return attach(t, cpg.NewUnsupported("DUMMY"), n)
	}
}

// translateName implements the Name case (spec 4.E): a bare Reference,
// with resolution attempted but no implicit declaration created here —
// that responsibility belongs to the assignment discriminator (H).
func (t *Translator) translateName(n *sitter.Node) cpg.Expr {
	ref := attach(t, cpg.NewReference(t.text(n)), n)
	t.scopes.Resolve(ref)
	if receiver := t.scopes.CurrentReceiver(); receiver != nil && receiver.Name == ref.Name {
		ref.Type = receiver.DeclaredType
	}
	return ref
}

func (t *Translator) translateConstant(n *sitter.Node) cpg.Expr {
	text := t.text(n)
	switch n.Type() {
	case "true":
		return attach(t, cpg.NewLiteral("true", lexicon.TypeBool), n)
	case "false":
		return attach(t, cpg.NewLiteral("false", lexicon.TypeBool), n)
	case "none":
		return attach(t, cpg.NewLiteral("None", lexicon.TypeNone), n)
	case "integer":
		if isComplexLiteralText(text) {
			return attach(t, cpg.NewLiteral(text, lexicon.TypeComplex), n)
		}
		return attach(t, cpg.NewLiteral(text, lexicon.TypeInt), n)
	case "float":
		if isComplexLiteralText(text) {
			return attach(t, cpg.NewLiteral(text, lexicon.TypeComplex), n)
		}
		return attach(t, cpg.NewLiteral(text, lexicon.TypeFloat), n)
	case "string", "concatenated_string":
		if isBytesLiteralText(text) {
			return attach(t, cpg.NewLiteral(text, lexicon.TypeBytes), n)
		}
		return attach(t, cpg.NewLiteral(text, lexicon.TypeStr), n)
	default:
		return attach(t, cpg.NewLiteral(text, lexicon.TypeUnknown), n)
	}
}

// isComplexLiteralText detects Python's trailing j/J suffix that marks a
// numeric literal as complex; tree-sitter-python lexes it as part of the
// integer/float token rather than as its own node kind.
func isComplexLiteralText(text string) bool {
	return strings.HasSuffix(text, "j") || strings.HasSuffix(text, "J")
}

func isBytesLiteralText(text string) bool {
	trimmed := strings.TrimLeft(text, "RrFf")
	return strings.HasPrefix(trimmed, "b") || strings.HasPrefix(trimmed, "B")
}

// translateBinaryOperator implements BinOp (spec 4.E), including the
// lossy complex-literal folding shortcut: `lhs + <complex literal>`
// collapses into a single complex Literal whose value is the textual
// concatenation, never constructing the BinOp node.
func (t *Translator) translateBinaryOperator(n *sitter.Node) cpg.Expr {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	opNode := n.ChildByFieldName("operator")
	opText := t.text(opNode)

	if opText == "+" && right != nil && t.isComplexOperand(right) {
		folded := fmt.Sprintf("(%s+%s)", t.text(left), t.text(right))
		t.warn(cpg.CategoryUnsupportedConstruct, originExpr, n, "complex literal folding is lossy: the original expression structure is discarded")
		return attach(t, cpg.NewLiteral(folded, lexicon.TypeComplex), n)
	}

	code, ok := lexicon.BinaryOpCode(opText)
	if !ok {
		t.error(cpg.CategoryShapeMismatch, originExpr, n, fmt.Sprintf("unrecognized binary operator %q", opText))
		code = "DUMMY"
	}
	return attach(t, cpg.NewBinaryOp(code, t.translateExpr(left), t.translateExpr(right)), n)
}

func (t *Translator) isComplexOperand(n *sitter.Node) bool {
	switch n.Type() {
	case "integer", "float":
		return isComplexLiteralText(t.text(n))
	default:
		return false
	}
}

// translateComparison implements Compare (spec 4.E): a single comparator
// becomes a binary operator; chained comparisons (`a < b < c`) emit a
// DUMMY binary with a diagnostic, matching the source's behavior (spec 9
// leaves the semantically preferable `(a<b) and (b<c)` desugaring
// unspecified).
func (t *Translator) translateComparison(n *sitter.Node) cpg.Expr {
	operands, operators := splitComparisonChain(n)
	if len(operands) != 2 || len(operators) != 1 {
		t.error(cpg.CategoryShapeMismatch, originExpr, n, "chained comparisons are not modeled")
		return attach(t, cpg.NewBinaryOp("DUMMY", t.translateExpr(operands[0]), nil), n)
	}
	code, ok := lexicon.ComparisonOpCode(t.text(operators[0]))
	if !ok {
		t.error(cpg.CategoryShapeMismatch, originExpr, n, fmt.Sprintf("unrecognized comparison operator %q", t.text(operators[0])))
		code = "DUMMY"
	}
	return attach(t, cpg.NewBinaryOp(code, t.translateExpr(operands[0]), t.translateExpr(operands[1])), n)
}

// splitComparisonChain separates a comparison_operator node's named
// children (operands) from its anonymous operator tokens.
func splitComparisonChain(n *sitter.Node) (operands []*sitter.Node, operators []*sitter.Node) {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil || !child.IsNamed() {
			if child != nil && isComparisonToken(child.Type()) {
				operators = append(operators, child)
			}
			continue
		}
		operands = append(operands, child)
	}
	return operands, operators
}

func isComparisonToken(t string) bool {
	switch t {
	case "<", "<=", ">", ">=", "==", "!=", "is", "in", "not", "is not", "not in":
		return true
	default:
		return false
	}
}

// translateBooleanOperator implements BoolOp (spec 4.E): a binary
// operator over the first two operands; three or more operands (Python's
// flat `and`/`or` chain) emits a diagnostic, discarding the tail.
// tree-sitter-python nests same-operator chains as left-recursive binary
// trees, so the chain is flattened first to recover the flat operand
// list the source language's AST module would have produced.
func (t *Translator) translateBooleanOperator(n *sitter.Node) cpg.Expr {
	opText := t.text(n.ChildByFieldName("operator"))
	operands := flattenBooleanChain(n, opText)
	code := lexicon.LogicalAnd
	if opText == "or" {
		code = lexicon.LogicalOr
	}
	if len(operands) > 2 {
		t.warn(cpg.CategoryUnsupportedConstruct, originExpr, n, fmt.Sprintf("%d-ary boolean chain reduced to its first two operands", len(operands)))
	}
	left := t.translateExpr(operands[0])
	right := t.translateExpr(operands[1])
	return attach(t, cpg.NewBinaryOp(code, left, right), n)
}

func flattenBooleanChain(n *sitter.Node, opText string) []*sitter.Node {
	var operands []*sitter.Node
	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if node.Type() == "boolean_operator" && node.ChildByFieldName("operator") != nil &&
			nodeText(node.ChildByFieldName("operator")) == opText {
			walk(node.ChildByFieldName("left"))
			operands = append(operands, node.ChildByFieldName("right"))
			return
		}
		operands = append(operands, node)
	}
	left := n.ChildByFieldName("left")
	walk(left)
	operands = append(operands, n.ChildByFieldName("right"))
	return operands
}

func nodeText(n *sitter.Node) string {
	// operator tokens are ASCII keywords; Content needs source bytes we
	// don't have in this helper, but the token text equals its type name
	// for "and"/"or".
	return n.Type()
}

func (t *Translator) translateNotOperator(n *sitter.Node) cpg.Expr {
	arg := n.ChildByFieldName("argument")
	return attach(t, cpg.NewUnaryOp(lexicon.Not, t.translateExpr(arg)), n)
}

func (t *Translator) translateUnaryOperator(n *sitter.Node) cpg.Expr {
	opNode := n.ChildByFieldName("operator")
	arg := n.ChildByFieldName("argument")
	code, ok := lexicon.UnaryOpCode(t.text(opNode))
	if !ok {
		t.error(cpg.CategoryShapeMismatch, originExpr, n, fmt.Sprintf("unrecognized unary operator %q", t.text(opNode)))
		code = "DUMMY"
	}
	return attach(t, cpg.NewUnaryOp(code, t.translateExpr(arg)), n)
}

// translateConditional implements IfExp (spec 4.E): `consequence if
// condition else alternative`.
func (t *Translator) translateConditional(n *sitter.Node) cpg.Expr {
	condition := t.translateExpr(n.ChildByFieldName("condition"))
	then := t.translateExpr(n.ChildByFieldName("consequence"))
	els := t.translateExpr(n.ChildByFieldName("alternative"))
	return attach(t, cpg.NewConditional(condition, then, els), n)
}

// translateDictionary implements Dict (spec 4.E): a KV-list of KV-pairs.
// `**other` splats inside a dict literal are not modeled.
func (t *Translator) translateDictionary(n *sitter.Node) cpg.Expr {
	var pairs []*cpg.KVPair
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child.Type() != "pair" {
			t.warn(cpg.CategoryUnsupportedConstruct, originExpr, child, "dict splat (**) entries are not modeled")
			continue
		}
		key := t.translateExpr(child.ChildByFieldName("key"))
		value := t.translateExpr(child.ChildByFieldName("value"))
		pairs = append(pairs, attach(t, cpg.NewKVPair(key, value), child))
	}
	return attach(t, cpg.NewKVList(pairs), n)
}

// translateCall implements the call-kind discriminator (spec 4.E):
//  1. translate func to a reference/member.
//  2. member -> member call.
//  3. record_for_name(name) non-empty -> Construct.
//  4. name == "str" with exactly one positional argument -> Cast.
//  5. otherwise -> plain Call.
func (t *Translator) translateCall(n *sitter.Node) cpg.Expr {
	funcNode := n.ChildByFieldName("function")
	argsNode := n.ChildByFieldName("arguments")
	args := t.translateArguments(argsNode)

	if funcNode != nil && funcNode.Type() == "attribute" {
		base := t.translateExpr(funcNode.ChildByFieldName("object"))
		attrName := t.text(funcNode.ChildByFieldName("attribute"))
		memberRef := attach(t, cpg.NewReference(attrName), funcNode)
		call := attach(t, cpg.NewMemberCall(base, args), n)
		call.Callee = memberRef
		return call
	}

	ref := t.translateExpr(funcNode)
	if name, ok := simpleReferenceName(ref); ok {
		if record, found := t.scopes.RecordForName(name); found {
			return attach(t, cpg.NewConstructCall(record.Name, args), n)
		}
		if name == "str" && countPositional(args) == 1 {
			return attach(t, cpg.NewCastCall(lexicon.TypeStr, args), n)
		}
	}
	return attach(t, cpg.NewPlainCall(ref, args), n)
}

func simpleReferenceName(e cpg.Expr) (string, bool) {
	if ref, ok := e.(*cpg.Reference); ok {
		return ref.Name, true
	}
	return "", false
}

func countPositional(args []cpg.Argument) int {
	n := 0
	for _, a := range args {
		if a.Name == "" {
			n++
		}
	}
	return n
}

// translateArguments translates an argument_list's positional and
// keyword_argument children. `**kwargs` expansion is not modeled.
func (t *Translator) translateArguments(n *sitter.Node) []cpg.Argument {
	if n == nil {
		return nil
	}
	var args []cpg.Argument
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "keyword_argument":
			name := t.text(child.ChildByFieldName("name"))
			value := t.translateExpr(child.ChildByFieldName("value"))
			args = append(args, cpg.Argument{Name: name, Value: value})
		case "dictionary_splat":
			t.warn(cpg.CategoryUnsupportedConstruct, originExpr, child, "**kwargs expansion is not modeled")
		case "list_splat":
			t.warn(cpg.CategoryUnsupportedConstruct, originExpr, child, "*args expansion at a call site is not modeled")
		default:
			args = append(args, cpg.Argument{Value: t.translateExpr(child)})
		}
	}
	return args
}

// translateAttribute implements Attribute (spec 4.E): base.attribute.
func (t *Translator) translateAttribute(n *sitter.Node) cpg.Expr {
	base := t.translateExpr(n.ChildByFieldName("object"))
	attr := t.text(n.ChildByFieldName("attribute"))
	return attach(t, cpg.NewMemberAccess(base, attr), n)
}

// translateSubscript implements Subscript (spec 4.E), with slice children
// translated as Range.
func (t *Translator) translateSubscript(n *sitter.Node) cpg.Expr {
	base := t.translateExpr(n.ChildByFieldName("value"))
	idx := n.ChildByFieldName("subscript")
	if idx == nil && n.NamedChildCount() > 1 {
		idx = n.NamedChild(1)
	}
	index := t.translateExpr(idx)
	return attach(t, cpg.NewSubscript(base, index), n)
}

// translateRange implements slice's floor:ceiling:step. Step is not
// modeled (diagnostic), matching spec 4.E.
func (t *Translator) translateRange(n *sitter.Node) cpg.Expr {
	low := n.ChildByFieldName("start")
	high := n.ChildByFieldName("stop")
	step := n.ChildByFieldName("step")
	if step != nil {
		t.warn(cpg.CategoryUnsupportedConstruct, originExpr, n, "slice step is not modeled")
	}
	var lowExpr, highExpr cpg.Expr
	if low != nil {
		lowExpr = t.translateExpr(low)
	}
	if high != nil {
		highExpr = t.translateExpr(high)
	}
	return attach(t, cpg.NewRange(lowExpr, highExpr, nil), n)
}

// translateInitializerList implements List/Tuple (spec 4.E).
func (t *Translator) translateInitializerList(n *sitter.Node) cpg.Expr {
	var elements []cpg.Expr
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		elements = append(elements, t.translateExpr(n.NamedChild(i)))
	}
	return attach(t, cpg.NewInitializerList(elements), n)
}
