// Package cpg implements the code-property-graph node model: a closed set
// of tagged node kinds (declarations, statements, expressions) together
// with the construction helpers (component B) that enforce the structural
// invariants from spec section 3.
//
// Builders are pure constructors. They allocate a node, set its invariant
// attributes, and return it; they never attach a location. Attaching a
// location is the translator's job, done immediately after construction
// with the help of srcmap (component A) — see pyfrontend.Translator.attach.
package cpg

import "github.com/google/uuid"

// NodeID is an opaque, stable identifier minted for every node. References
// hold a NodeID rather than a pointer to the declaration they resolve to
// (spec section 9's "arena allocation with node IDs" redesign note), which
// keeps the graph serializable and safe to read concurrently once sealed.
type NodeID uuid.UUID

// NilNodeID is the zero value, used for "no ID assigned" in builder unit
// tests that construct nodes without a translator.
var NilNodeID NodeID

// NewNodeID mints a fresh node identifier.
func NewNodeID() NodeID {
	return NodeID(uuid.New())
}

func (id NodeID) String() string {
	return uuid.UUID(id).String()
}

// Location is a node's physical source region, or the explicit
// "no-location" marker (spec invariant 6: every node carries a location
// or is explicitly marked as having none — it is never silently absent).
type Location struct {
	Present   bool
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	Code      string
}

// NoLocation is the explicit marker for nodes synthesized without a
// corresponding source region (e.g. the dummy empty Compound emitted for an
// empty statement block).
func NoLocation() Location {
	return Location{Present: false}
}

// Node is implemented by every member of the CPG's closed node-kind set.
// It is intentionally minimal: identity and location are the only
// properties every node shares. Concrete behavior is reached via the
// Decl/Stmt/Expr marker interfaces and a type switch, not dynamic dispatch
// chains, per spec section 9's call to replace chained type tests with a
// closed variant type.
type Node interface {
	NodeID() NodeID
	Location() Location
}

// base is embedded by every concrete node type to satisfy Node.
type base struct {
	id  NodeID
	loc Location
}

func newBase() base {
	return base{id: NewNodeID(), loc: NoLocation()}
}

func (b base) NodeID() NodeID     { return b.id }
func (b base) Location() Location { return b.loc }

// SetLocation attaches a physical location to a node after construction.
// Builders never call this; only the translator does, immediately after
// minting a node, using srcmap to resolve the region to its source text.
func SetLocation(n Node, loc Location) {
	switch v := n.(type) {
	case *Variable:
		v.loc = loc
	case *Field:
		v.loc = loc
	case *Parameter:
		v.loc = loc
	case *Function:
		v.loc = loc
	case *Method:
		v.loc = loc
	case *Constructor:
		v.loc = loc
	case *Record:
		v.loc = loc
	case *Import:
		v.loc = loc
	case *ImportSymbol:
		v.loc = loc
	case *Namespace:
		v.loc = loc
	case *TranslationUnit:
		v.loc = loc
	case *Compound:
		v.loc = loc
	case *DeclStmt:
		v.loc = loc
	case *ExprStmt:
		v.loc = loc
	case *EmptyStmt:
		v.loc = loc
	case *ReturnStmt:
		v.loc = loc
	case *BreakStmt:
		v.loc = loc
	case *IfStmt:
		v.loc = loc
	case *WhileStmt:
		v.loc = loc
	case *ForEachStmt:
		v.loc = loc
	case *TryStmt:
		v.loc = loc
	case *RaiseStmt:
		v.loc = loc
	case *UnresolvedStmt:
		v.loc = loc
	case *Literal:
		v.loc = loc
	case *Reference:
		v.loc = loc
	case *MemberAccess:
		v.loc = loc
	case *Subscript:
		v.loc = loc
	case *Range:
		v.loc = loc
	case *Call:
		v.loc = loc
	case *BinaryOp:
		v.loc = loc
	case *UnaryOp:
		v.loc = loc
	case *Conditional:
		v.loc = loc
	case *InitializerList:
		v.loc = loc
	case *KVPair:
		v.loc = loc
	case *KVList:
		v.loc = loc
	case *Annotation:
		v.loc = loc
	case *AnnotationMember:
		v.loc = loc
	case *Unsupported:
		v.loc = loc
	default:
		// Unknown node type: location cannot be attached. The translator
		// treats this as a programming error, never a runtime one, since
		// the node-kind set is closed.
		panic("cpg: SetLocation called on unrecognized node type")
	}
}

// Decl is implemented by every declaration variant (spec section 3).
type Decl interface {
	Node
	isDecl()
}

// Stmt is implemented by every statement variant.
type Stmt interface {
	Node
	isStmt()
}

// Expr is implemented by every expression variant.
type Expr interface {
	Node
	isExpr()
}
