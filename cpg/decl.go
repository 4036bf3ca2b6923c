package cpg

// Variable is a name binding with an optional declared type and
// initializer. It backs both ordinary assignment targets and the
// type="unknown" globals minted for imported symbols.
type Variable struct {
	base
	Name         string
	DeclaredType string
	Initializer  Expr
	Implicit     bool
}

func (*Variable) isDecl() {}

// NewVariable allocates a Variable. declaredType is "" when no annotation
// was present; callers that want the lexicon's "unknown" should pass it
// explicitly.
func NewVariable(name, declaredType string, initializer Expr, implicit bool) *Variable {
	return &Variable{base: newBase(), Name: name, DeclaredType: declaredType, Initializer: initializer, Implicit: implicit}
}

// Field is a Variable-shaped declaration bound to a Record. Record holds
// the owning record's NodeID rather than a pointer, so a field can be
// constructed before or after its record exists without aliasing.
type Field struct {
	base
	Name         string
	DeclaredType string
	Initializer  Expr
	Implicit     bool
	Record       NodeID
}

func (*Field) isDecl() {}

func NewField(name, declaredType string, initializer Expr, implicit bool, record NodeID) *Field {
	return &Field{base: newBase(), Name: name, DeclaredType: declaredType, Initializer: initializer, Implicit: implicit, Record: record}
}

// Parameter is a function or method formal parameter.
type Parameter struct {
	base
	Name         string
	DeclaredType string
	Variadic     bool
}

func (*Parameter) isDecl() {}

func NewParameter(name, declaredType string, variadic bool) *Parameter {
	return &Parameter{base: newBase(), Name: name, DeclaredType: declaredType, Variadic: variadic}
}

// Function is a free (non-record-bound) callable declaration.
type Function struct {
	base
	Name        string
	Parameters  []*Parameter
	Receiver    *Parameter
	Body        *Compound
	Annotations []*Annotation
}

func (*Function) isDecl() {}

func NewFunction(name string, parameters []*Parameter, body *Compound, annotations []*Annotation) *Function {
	return &Function{base: newBase(), Name: name, Parameters: parameters, Body: body, Annotations: annotations}
}

// Method is a Function bound to a Record. Its Receiver is the method's
// first positional parameter; it is nil when the method declares no
// positional parameter.
type Method struct {
	Function
	Record NodeID
}

func NewMethod(name string, receiver *Parameter, parameters []*Parameter, body *Compound, annotations []*Annotation, record NodeID) *Method {
	m := &Method{Function: Function{base: newBase(), Name: name, Parameters: parameters, Body: body, Annotations: annotations}, Record: record}
	m.Receiver = receiver
	return m
}

// Constructor is a Method whose name is the record's initializer name
// (invariant 3: every Constructor is a Method).
type Constructor struct {
	Method
}

func NewConstructor(name string, receiver *Parameter, parameters []*Parameter, body *Compound, annotations []*Annotation, record NodeID) *Constructor {
	return &Constructor{Method: *NewMethod(name, receiver, parameters, body, annotations, record)}
}

// Record is a class-like declaration: a name, a super-type list, its own
// fields and methods, and any free statements that appeared in the class
// body alongside method definitions.
type Record struct {
	base
	Name            string
	SuperTypes      []string
	Fields          []*Field
	Methods         []*Method
	InnerStatements []Stmt
}

func (*Record) isDecl() {}

func NewRecord(name string, superTypes []string) *Record {
	return &Record{base: newBase(), Name: name, SuperTypes: superTypes}
}

// AddField appends a field, deduplicating by name per the scope manager's
// record-scope policy (spec invariant 4: a record's field set is a subset
// of the declarations owned by its scope).
func (r *Record) AddField(f *Field) {
	for _, existing := range r.Fields {
		if existing.Name == f.Name {
			return
		}
	}
	r.Fields = append(r.Fields, f)
}

func (r *Record) AddMethod(m *Method) {
	r.Methods = append(r.Methods, m)
}

// FieldByName looks up an already-declared field by name, used by the
// assignment discriminator to distinguish a field's first binding (which
// mints a Field) from a later rebind (which becomes a plain assignment).
func (r *Record) FieldByName(name string) (*Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// ImportSymbol is a single named (and optionally aliased) symbol pulled in
// by a `from m import s [as a]` clause. ResolvedTarget is meaningful only
// when Resolved is true: it is set when the batch directory driver's
// cross-file qualified-name cache already holds the declaration the
// symbol names, which happens when the defining file was translated
// earlier in the same run.
type ImportSymbol struct {
	base
	Name           string
	Alias          string
	ResolvedTarget NodeID
	Resolved       bool
}

func (*ImportSymbol) isDecl() {}

func NewImportSymbol(name, alias string) *ImportSymbol {
	return &ImportSymbol{base: newBase(), Name: name, Alias: alias}
}

// Resolve records the cross-file declaration a qualified-name cache hit
// found for this symbol.
func (s *ImportSymbol) Resolve(target NodeID) {
	s.ResolvedTarget = target
	s.Resolved = true
}

// Import normalizes Python's three import shapes (spec 4.I). Exactly one
// of ModulePath-only, Symbols, or Wildcard describes the shape; invariant
// 5 requires at least one of module path / symbol set / alias to be set.
type Import struct {
	base
	ModulePath string
	Alias      string
	Symbols    []*ImportSymbol
	Wildcard   bool
}

func (*Import) isDecl() {}

func NewImport(modulePath, alias string) *Import {
	return &Import{base: newBase(), ModulePath: modulePath, Alias: alias}
}

func NewImportFrom(modulePath string, symbols []*ImportSymbol, wildcard bool) *Import {
	return &Import{base: newBase(), ModulePath: modulePath, Symbols: symbols, Wildcard: wildcard}
}

// Namespace holds a translation unit's top-level declarations and the
// free-standing statements Python allows at module scope.
type Namespace struct {
	base
	Name         string
	Declarations []Decl
	Statements   []Stmt
}

func (*Namespace) isDecl() {}

func NewNamespace(name string) *Namespace {
	return &Namespace{base: newBase(), Name: name}
}

func (n *Namespace) AddDeclaration(d Decl) {
	n.Declarations = append(n.Declarations, d)
}

func (n *Namespace) AddStatement(s Stmt) {
	n.Statements = append(n.Statements, s)
}

// TranslationUnit is the root of one translated source file. Its name
// equals the original file path (invariant 2).
type TranslationUnit struct {
	base
	FilePath string
	Root     *Namespace
}

func (*TranslationUnit) isDecl() {}

func NewTranslationUnit(filePath string) *TranslationUnit {
	return &TranslationUnit{base: newBase(), FilePath: filePath}
}
