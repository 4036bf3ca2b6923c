package pyfrontend

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/shivasurya/code-pathfinder/pycpg/cpg"
	"github.com/shivasurya/code-pathfinder/pycpg/lexicon"
	"github.com/shivasurya/code-pathfinder/pycpg/scope"
)

const originFunc = "translateFunctionDef"
const originClass = "translateClassDef"

const constructorName = "__init__"

// translateFunctionDef implements the function half of spec 4.G:
// determine kind, enter scope, bind the receiver, translate parameters
// and body, attach decorators, leave scope.
func (t *Translator) translateFunctionDef(n *sitter.Node) cpg.Decl {
	name := t.text(n.ChildByFieldName("name"))
	record := t.scopes.CurrentRecord()

	kind := scope.Function
	isMethod := record != nil
	isCtor := isMethod && name == constructorName
	switch {
	case isCtor:
		kind = scope.Constructor
	case isMethod:
		kind = scope.Method
	}

	paramsNode := n.ChildByFieldName("parameters")
	positional, receiverParam := t.splitParameters(paramsNode, isMethod, record)

	var owner cpg.Decl
	switch kind {
	case scope.Constructor:
		owner = cpg.NewConstructor(name, receiverParam, positional, nil, nil, record.NodeID())
	case scope.Method:
		owner = cpg.NewMethod(name, receiverParam, positional, nil, nil, record.NodeID())
	default:
		owner = cpg.NewFunction(name, positional, nil, nil)
	}

	// Take this definition's decorators before the body is translated, so a
	// nested definition in the body cannot pick them up.
	annotations := t.pendingDecorators
	t.pendingDecorators = nil

	var scopeNode cpg.Node = owner
	s := t.scopes.Enter(kind, scopeNode)
	s.Receiver = receiverParam
	for _, p := range positional {
		t.scopes.AddDeclaration(p)
	}
	if receiverParam != nil {
		t.scopes.AddDeclaration(receiverParam)
	}

	body := t.translateCompound(childStatements(n.ChildByFieldName("body")))

	switch v := owner.(type) {
	case *cpg.Constructor:
		v.Body = body
		v.Annotations = annotations
	case *cpg.Method:
		v.Body = body
		v.Annotations = annotations
	case *cpg.Function:
		v.Body = body
		v.Annotations = annotations
	}

	if err := t.scopes.Leave(scopeNode); err != nil {
		t.error(cpg.CategoryShapeMismatch, originFunc, n, "scope imbalance leaving function: "+err.Error())
	}

	// Registering the method on its record is the caller's job (see
	// translateClassDef), since translateFunctionDef is also used for
	// plain free functions with no record at all.
	return attach(t, owner, n)
}

// addMethodToRecord records method on rec if it is in fact a Method or
// Constructor; shared by translateClassDef's direct and decorated cases.
func addMethodToRecord(rec *cpg.Record, decl cpg.Decl) {
	switch v := decl.(type) {
	case *cpg.Constructor:
		rec.AddMethod(&v.Method)
	case *cpg.Method:
		rec.AddMethod(v)
	}
}

// splitParameters implements spec 4.G.3/4.G.4/4.G.5: the first positional
// parameter of a method/constructor becomes the receiver; remaining
// positional parameters are fully modeled, variadic/keyword-only/**kwargs
// partitions are recognized but not modeled beyond a diagnostic.
func (t *Translator) splitParameters(n *sitter.Node, isMethod bool, record *cpg.Record) ([]*cpg.Parameter, *cpg.Parameter) {
	if n == nil {
		return nil, nil
	}
	var positional []*cpg.Parameter
	var receiver *cpg.Parameter
	count := int(n.NamedChildCount())
	seenFirstPositional := false
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "identifier":
			p := t.translateSimpleParameter(child, "")
			if isMethod && !seenFirstPositional {
				receiver = p
				if record != nil {
					receiver.DeclaredType = record.Name
				}
			} else {
				positional = append(positional, p)
			}
			seenFirstPositional = true
		case "typed_parameter":
			inner := child.NamedChild(0)
			typeNode := child.ChildByFieldName("type")
			p := t.translateSimpleParameter(inner, t.text(typeNode))
			if isMethod && !seenFirstPositional {
				receiver = p
				if record != nil {
					receiver.DeclaredType = record.Name
				}
			} else {
				positional = append(positional, p)
			}
			seenFirstPositional = true
		case "default_parameter", "typed_default_parameter":
			nameNode := child.ChildByFieldName("name")
			typeNode := child.ChildByFieldName("type")
			p := t.translateSimpleParameter(nameNode, t.text(typeNode))
			if isMethod && !seenFirstPositional {
				receiver = p
				if record != nil {
					receiver.DeclaredType = record.Name
				}
			} else {
				positional = append(positional, p)
			}
			seenFirstPositional = true
		case "list_splat_pattern":
			t.warn(cpg.CategoryUnsupportedConstruct, originFunc, child, "*args is recognized structurally but not fully modeled")
		case "dictionary_splat_pattern":
			t.warn(cpg.CategoryUnsupportedConstruct, originFunc, child, "**kwargs is recognized structurally but not fully modeled")
		case "keyword_separator", "positional_separator":
			// structural partition markers; nothing to translate.
		default:
			t.warn(cpg.CategoryUnsupportedConstruct, originFunc, child, "parameter shape not fully modeled")
		}
	}
	return positional, receiver
}

func (t *Translator) translateSimpleParameter(nameNode *sitter.Node, declaredType string) *cpg.Parameter {
	typ := declaredType
	if typ == "" {
		typ = lexicon.TypeUnknown
	}
	return attach(t, cpg.NewParameter(t.text(nameNode), typ, false), nameNode)
}

// translateClassDef implements the class half of spec 4.G.
func (t *Translator) translateClassDef(n *sitter.Node) *cpg.Record {
	name := t.text(n.ChildByFieldName("name"))
	var superTypes []string
	if argList := n.ChildByFieldName("superclasses"); argList != nil {
		count := int(argList.NamedChildCount())
		for i := 0; i < count; i++ {
			base := argList.NamedChild(i)
			if base.Type() == "identifier" {
				superTypes = append(superTypes, t.text(base))
			} else if base.Type() == "keyword_argument" {
				t.warn(cpg.CategoryUnsupportedConstruct, originClass, base, "keyword base classes (e.g. metaclass=) are not supported")
			} else {
				t.warn(cpg.CategoryUnsupportedConstruct, originClass, base, "non-name base class expression is not supported")
			}
		}
	}

	rec := cpg.NewRecord(name, superTypes)
	t.scopes.Enter(scope.Record, rec)

	body := n.ChildByFieldName("body")
	for _, stmt := range childStatements(body) {
		switch stmt.Type() {
		case "function_definition":
			method := t.translateFunctionDef(stmt)
			t.scopes.AddDeclaration(method)
			addMethodToRecord(rec, method)
		case "decorated_definition":
			translated := t.translateDecoratedDefinition(stmt)
			if declStmt, ok := translated.(*cpg.DeclStmt); ok {
				addMethodToRecord(rec, declStmt.Declaration)
			}
			rec.InnerStatements = append(rec.InnerStatements, translated)
		default:
			translated := t.translateStmt(stmt)
			rec.InnerStatements = append(rec.InnerStatements, translated)
		}
	}

	if err := t.scopes.Leave(rec); err != nil {
		t.error(cpg.CategoryShapeMismatch, originClass, n, "scope imbalance leaving class: "+err.Error())
	}
	return attach(t, rec, n)
}

// translateDecoratedDefinition implements spec 4.G.7: decorators become
// Annotations; attribute-typed decorators set a `receiver` member,
// positional arguments a `value` member, keyword arguments named members.
func (t *Translator) translateDecoratedDefinition(n *sitter.Node) cpg.Stmt {
	count := int(n.NamedChildCount())
	var decorators []*sitter.Node
	var defNode *sitter.Node
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child.Type() == "decorator" {
			decorators = append(decorators, child)
		} else {
			defNode = child
		}
	}

	var annotations []*cpg.Annotation
	for _, dec := range decorators {
		annotations = append(annotations, t.translateDecorator(dec))
	}

	if defNode == nil {
		return attach(t, cpg.NewUnresolvedStmt("decorated definition with no target"), n)
	}

	t.pendingDecorators = annotations
	switch defNode.Type() {
	case "function_definition":
		fn := t.translateFunctionDef(defNode)
		t.scopes.AddDeclaration(fn)
		return attach(t, cpg.NewDeclStmt(fn), n)
	case "class_definition":
		t.warn(cpg.CategoryUnsupportedConstruct, originClass, n, "decorators on classes are not modeled; their annotations are discarded")
		t.pendingDecorators = nil
		rec := t.translateClassDef(defNode)
		t.scopes.AddDeclaration(rec)
		return attach(t, cpg.NewDeclStmt(rec), n)
	default:
		t.pendingDecorators = nil
		return t.translateStmt(defNode)
	}
}

func (t *Translator) translateDecorator(n *sitter.Node) *cpg.Annotation {
	target := n.NamedChild(0)
	switch target.Type() {
	case "call":
		return t.translateDecoratorCall(target, n)
	case "attribute":
		base := t.translateExpr(target.ChildByFieldName("object"))
		attr := t.text(target.ChildByFieldName("attribute"))
		return attach(t, cpg.NewAnnotation(attr, base, nil), n)
	case "identifier":
		return attach(t, cpg.NewAnnotation(t.text(target), nil, nil), n)
	default:
		t.warn(cpg.CategoryUnsupportedConstruct, originClass, n, "decorator shape not fully modeled")
		return attach(t, cpg.NewAnnotation(t.text(target), nil, nil), n)
	}
}

func (t *Translator) translateDecoratorCall(call, decNode *sitter.Node) *cpg.Annotation {
	funcNode := call.ChildByFieldName("function")
	var name string
	var receiver cpg.Expr
	switch funcNode.Type() {
	case "attribute":
		receiver = t.translateExpr(funcNode.ChildByFieldName("object"))
		name = t.text(funcNode.ChildByFieldName("attribute"))
	case "identifier":
		name = t.text(funcNode)
	default:
		name = t.text(funcNode)
	}

	var members []*cpg.AnnotationMember
	args := call.ChildByFieldName("arguments")
	if args != nil {
		count := int(args.NamedChildCount())
		for i := 0; i < count; i++ {
			arg := args.NamedChild(i)
			if arg.Type() == "keyword_argument" {
				memberName := t.text(arg.ChildByFieldName("name"))
				value := t.translateExpr(arg.ChildByFieldName("value"))
				members = append(members, attach(t, cpg.NewAnnotationMember(memberName, value), arg))
			} else {
				value := t.translateExpr(arg)
				members = append(members, attach(t, cpg.NewAnnotationMember("value", value), arg))
			}
		}
	}
	return attach(t, cpg.NewAnnotation(name, receiver, members), decNode)
}
