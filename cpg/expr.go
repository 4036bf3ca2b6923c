package cpg

// Literal carries its primitive type tag from the lexicon (string, int,
// float, complex, bool, bytes, None, unknown). Value is always stored as
// text; complex literals are folded into text per spec 4.D/9, a known
// lossy shortcut.
type Literal struct {
	base
	Value string
	Type  string
}

func (*Literal) isExpr() {}

func NewLiteral(value, typ string) *Literal {
	return &Literal{base: newBase(), Value: value, Type: typ}
}

// Reference is a bare name. ResolvedTo is meaningful only when Resolved
// is true (invariant 8: references resolve or are marked unresolved,
// never dangling).
type Reference struct {
	base
	Name       string
	ResolvedTo NodeID
	Resolved   bool
	Type       string
}

func (*Reference) isExpr() {}

func NewReference(name string) *Reference {
	return &Reference{base: newBase(), Name: name}
}

// Resolve records the reference's target. Called by the scope manager,
// never by the translator directly.
func (r *Reference) Resolve(target NodeID) {
	r.ResolvedTo = target
	r.Resolved = true
}

// MemberAccess is `base.attribute`.
type MemberAccess struct {
	base
	Base      Expr
	Attribute string
	Operator  string
}

func (*MemberAccess) isExpr() {}

func NewMemberAccess(base_ Expr, attribute string) *MemberAccess {
	return &MemberAccess{base: newBase(), Base: base_, Attribute: attribute, Operator: "."}
}

// Range models a slice's floor:ceiling:step; any of the three may be nil.
type Range struct {
	base
	Low  Expr
	High Expr
	Step Expr
}

func (*Range) isExpr() {}

func NewRange(low, high, step Expr) *Range {
	return &Range{base: newBase(), Low: low, High: high, Step: step}
}

// Subscript is `base[index]`; index may itself be a *Range for slices.
type Subscript struct {
	base
	Base  Expr
	Index Expr
}

func (*Subscript) isExpr() {}

func NewSubscript(base_, index Expr) *Subscript {
	return &Subscript{base: newBase(), Base: base_, Index: index}
}

// CallKind discriminates the four shapes a Call can take (spec 4.E).
type CallKind int

const (
	CallPlain CallKind = iota
	CallMember
	CallConstruct
	CallCast
)

func (k CallKind) String() string {
	switch k {
	case CallPlain:
		return "plain"
	case CallMember:
		return "member"
	case CallConstruct:
		return "construct"
	case CallCast:
		return "cast"
	default:
		return "unknown"
	}
}

// Argument is one call argument; Name is "" for positional arguments.
type Argument struct {
	Name  string
	Value Expr
}

// Call is the discriminated call/construct/cast variant. Callee is the
// translated `func` expression for a plain call; for a member call, Base
// is the member's base and Operator is ".". For a construct or cast,
// Type names the resolved record or built-in type.
type Call struct {
	base
	Kind     CallKind
	Callee   Expr
	Base     Expr
	Operator string
	Type     string
	Args     []Argument
}

func (*Call) isExpr() {}

func NewPlainCall(callee Expr, args []Argument) *Call {
	return &Call{base: newBase(), Kind: CallPlain, Callee: callee, Args: args}
}

func NewMemberCall(base_ Expr, args []Argument) *Call {
	return &Call{base: newBase(), Kind: CallMember, Base: base_, Operator: ".", Args: args}
}

func NewConstructCall(typ string, args []Argument) *Call {
	return &Call{base: newBase(), Kind: CallConstruct, Type: typ, Args: args}
}

func NewCastCall(typ string, args []Argument) *Call {
	return &Call{base: newBase(), Kind: CallCast, Type: typ, Args: args}
}

// BinaryOp's Op is a code drawn from the lexicon (invariant 7), or the
// "DUMMY" placeholder the translator emits for an operator it cannot
// translate (chained comparisons, unrecognized operator tokens).
type BinaryOp struct {
	base
	Op    string
	Left  Expr
	Right Expr
}

func (*BinaryOp) isExpr() {}

func NewBinaryOp(op string, left, right Expr) *BinaryOp {
	return &BinaryOp{base: newBase(), Op: op, Left: left, Right: right}
}

// UnaryOp's Operand is nil only for the bare-raise lowering.
type UnaryOp struct {
	base
	Op      string
	Operand Expr
}

func (*UnaryOp) isExpr() {}

func NewUnaryOp(op string, operand Expr) *UnaryOp {
	return &UnaryOp{base: newBase(), Op: op, Operand: operand}
}

type Conditional struct {
	base
	Test Expr
	Then Expr
	Else Expr
}

func (*Conditional) isExpr() {}

func NewConditional(test, then, els Expr) *Conditional {
	return &Conditional{base: newBase(), Test: test, Then: then, Else: els}
}

// InitializerList backs list and tuple literals.
type InitializerList struct {
	base
	Elements []Expr
}

func (*InitializerList) isExpr() {}

func NewInitializerList(elements []Expr) *InitializerList {
	return &InitializerList{base: newBase(), Elements: elements}
}

type KVPair struct {
	base
	Key   Expr
	Value Expr
}

func (*KVPair) isExpr() {}

func NewKVPair(key, value Expr) *KVPair {
	return &KVPair{base: newBase(), Key: key, Value: value}
}

// KVList backs dict literals.
type KVList struct {
	base
	Pairs []*KVPair
}

func (*KVList) isExpr() {}

func NewKVList(pairs []*KVPair) *KVList {
	return &KVList{base: newBase(), Pairs: pairs}
}

// AnnotationMember is one named value inside a decorator's argument list
// (spec 4.G: positional arguments become a "value" member, keyword
// arguments become named members).
type AnnotationMember struct {
	base
	Name  string
	Value Expr
}

func (*AnnotationMember) isExpr() {}

func NewAnnotationMember(name string, value Expr) *AnnotationMember {
	return &AnnotationMember{base: newBase(), Name: name, Value: value}
}

// Annotation models one decorator. Receiver is set when the decorator was
// an attribute access (`@app.route(...)`); its base becomes the receiver.
type Annotation struct {
	base
	Name     string
	Receiver Expr
	Members  []*AnnotationMember
}

func (*Annotation) isExpr() {}

func NewAnnotation(name string, receiver Expr, members []*AnnotationMember) *Annotation {
	return &Annotation{base: newBase(), Name: name, Receiver: receiver, Members: members}
}

// Unsupported is the expression-position placeholder for unsupported and
// shape-mismatched constructs (spec 7). Reason is recorded on the
// diagnostic, not here, but is kept for debugging convenience.
type Unsupported struct {
	base
	Reason string
}

func (*Unsupported) isExpr() {}

func NewUnsupported(reason string) *Unsupported {
	return &Unsupported{base: newBase(), Reason: reason}
}
