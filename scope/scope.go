// Package scope implements the lexical scope stack that drives name
// resolution and declaration registration for the translator (spec
// component 4.C). A Manager instance is per-translation-unit state: it is
// not safe for concurrent use by more than one translator goroutine at a
// time (spec section 5), so the batch driver in pyfrontend creates one
// fresh Manager per file rather than sharing one.
package scope

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/shivasurya/code-pathfinder/pycpg/cpg"
)

// Kind is one of the lexical scope kinds the data model names.
type Kind int

const (
	Global Kind = iota
	Namespace
	Function
	Method
	Constructor
	Record
	Block
)

func (k Kind) String() string {
	switch k {
	case Global:
		return "global"
	case Namespace:
		return "namespace"
	case Function:
		return "function"
	case Method:
		return "method"
	case Constructor:
		return "constructor"
	case Record:
		return "record"
	case Block:
		return "block"
	default:
		return "unknown"
	}
}

// Scope is one entry in the nested scope tree. Declarations is keyed by
// name to a slice because Python allows rebinding: duplicate names within
// one scope are accepted, except field declarations in a record scope,
// which are deduplicated by AddDeclaration.
type Scope struct {
	Kind         Kind
	Owner        cpg.Node
	Parent       *Scope
	Declarations map[string][]cpg.Decl
	Receiver     *cpg.Parameter
}

func newScope(kind Kind, owner cpg.Node, parent *Scope) *Scope {
	return &Scope{Kind: kind, Owner: owner, Parent: parent, Declarations: make(map[string][]cpg.Decl)}
}

func declName(d cpg.Decl) string {
	switch v := d.(type) {
	case *cpg.Variable:
		return v.Name
	case *cpg.Field:
		return v.Name
	case *cpg.Parameter:
		return v.Name
	case *cpg.Function:
		return v.Name
	case *cpg.Method:
		return v.Name
	case *cpg.Constructor:
		return v.Name
	case *cpg.Record:
		return v.Name
	case *cpg.Import:
		return v.Alias
	case *cpg.ImportSymbol:
		if v.Alias != "" {
			return v.Alias
		}
		return v.Name
	case *cpg.Namespace:
		return v.Name
	case *cpg.TranslationUnit:
		return v.FilePath
	default:
		return ""
	}
}

// Manager holds the live scope stack for a single translation unit plus a
// bounded, optional cache of cross-file qualified-name lookups that the
// batch directory driver shares across the files in one run. The import
// translator consults it to resolve `from m import s` against a module m
// translated earlier in the same batch; Resolve (in-file reference
// resolution) never consults it, so single-file resolution behavior is
// unaffected by whether it is present.
type Manager struct {
	stack          []*Scope
	qualifiedNames *lru.Cache[string, cpg.NodeID]
}

// New creates a Manager with no global scope yet; call ResetToGlobal to
// start a translation unit. Its qualified-name cache is private to this
// Manager; use NewWithCache to share one cache across a batch of files.
func New() *Manager {
	return NewWithCache(NewSharedCache())
}

// NewSharedCache allocates a qualified-name cache sized for a batch
// directory run. hashicorp/golang-lru's Cache is internally synchronized,
// so the same instance can be handed to one Manager per worker goroutine
// in ParseDirectory without any extra locking.
func NewSharedCache() *lru.Cache[string, cpg.NodeID] {
	cache, err := lru.New[string, cpg.NodeID](2048)
	if err != nil {
		// Only returns an error for a non-positive size, which is not the
		// case here.
		return nil
	}
	return cache
}

// NewWithCache creates a Manager backed by an existing qualified-name
// cache (possibly nil, possibly shared with other Managers).
func NewWithCache(cache *lru.Cache[string, cpg.NodeID]) *Manager {
	return &Manager{qualifiedNames: cache}
}

// ResetToGlobal clears any prior scope stack and pushes a fresh global
// scope for the given translation unit (spec 4.C, 4.K step 4).
func (m *Manager) ResetToGlobal(tu *cpg.TranslationUnit) {
	m.stack = []*Scope{newScope(Global, tu, nil)}
}

// Enter pushes a new scope of the given kind owned by owner.
func (m *Manager) Enter(kind Kind, owner cpg.Node) *Scope {
	s := newScope(kind, owner, m.Current())
	m.stack = append(m.stack, s)
	return s
}

// Leave pops the top scope, failing with ScopeMismatch if its owner does
// not match the argument (spec 4.C).
func (m *Manager) Leave(owner cpg.Node) error {
	top := m.Current()
	if top == nil {
		return &cpg.ScopeMismatch{Expected: fmt.Sprintf("%v", owner), Actual: "<empty stack>"}
	}
	if top.Owner == nil || top.Owner.NodeID() != owner.NodeID() {
		return &cpg.ScopeMismatch{Expected: fmt.Sprintf("%v", owner.NodeID()), Actual: fmt.Sprintf("%v", top.Owner)}
	}
	m.stack = m.stack[:len(m.stack)-1]
	return nil
}

// Current returns the top-of-stack scope, or nil if the stack is empty.
func (m *Manager) Current() *Scope {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// Balanced reports whether the stack holds only the global sentinel,
// the postcondition parse_file must leave the manager in (spec 8).
func (m *Manager) Balanced() bool {
	return len(m.stack) == 1 && m.stack[0].Kind == Global
}

// AddDeclaration registers decl in the current scope. Record-scope field
// declarations are deduplicated by name; everything else accepts
// rebinding, matching Python's own name-shadowing rules.
func (m *Manager) AddDeclaration(decl cpg.Decl) {
	s := m.Current()
	if s == nil {
		return
	}
	name := declName(decl)
	if name == "" {
		return
	}
	if s.Kind == Record {
		if _, ok := decl.(*cpg.Field); ok {
			for _, existing := range s.Declarations[name] {
				if _, ok := existing.(*cpg.Field); ok {
					return
				}
			}
		}
	}
	s.Declarations[name] = append(s.Declarations[name], decl)
}

// Resolve searches outward from the current scope for the nearest
// declaration named ref.Name, sets the reference's back-pointer on a hit,
// and reports whether resolution succeeded (spec 4.C, invariant 8).
func (m *Manager) Resolve(ref *cpg.Reference) (cpg.Decl, bool) {
	for s := m.Current(); s != nil; s = s.Parent {
		if decls, ok := s.Declarations[ref.Name]; ok && len(decls) > 0 {
			target := decls[len(decls)-1]
			ref.Resolve(target.NodeID())
			return target, true
		}
	}
	return nil, false
}

// CurrentRecord walks outward from the current scope to the nearest
// enclosing record scope, used by the assignment discriminator (H) and
// the method/constructor translator (G).
func (m *Manager) CurrentRecord() *cpg.Record {
	for s := m.Current(); s != nil; s = s.Parent {
		if s.Kind == Record {
			if r, ok := s.Owner.(*cpg.Record); ok {
				return r
			}
		}
	}
	return nil
}

// CurrentFunction walks outward from the current scope to the nearest
// enclosing function/method/constructor scope.
func (m *Manager) CurrentFunction() cpg.Decl {
	for s := m.Current(); s != nil; s = s.Parent {
		switch s.Kind {
		case Function, Method, Constructor:
			if d, ok := s.Owner.(cpg.Decl); ok {
				return d
			}
			return nil
		}
	}
	return nil
}

// CurrentReceiver returns the receiver of the nearest enclosing
// method/constructor scope, or nil outside of one.
func (m *Manager) CurrentReceiver() *cpg.Parameter {
	for s := m.Current(); s != nil; s = s.Parent {
		if s.Kind == Method || s.Kind == Constructor {
			return s.Receiver
		}
	}
	return nil
}

// RecordForName looks up a record declaration named name, reachable from
// the current scope outward, enabling call-kind discrimination (spec
// 4.E step 3).
func (m *Manager) RecordForName(name string) (*cpg.Record, bool) {
	for s := m.Current(); s != nil; s = s.Parent {
		if decls, ok := s.Declarations[name]; ok {
			for i := len(decls) - 1; i >= 0; i-- {
				if r, ok := decls[i].(*cpg.Record); ok {
					return r, true
				}
			}
		}
	}
	return nil, false
}

// CacheQualifiedName records a resolved cross-file qualified name for
// reuse by later files in the same batch run. A nil receiver or absent
// cache is a silent no-op.
func (m *Manager) CacheQualifiedName(qualifiedName string, id cpg.NodeID) {
	if m == nil || m.qualifiedNames == nil {
		return
	}
	m.qualifiedNames.Add(qualifiedName, id)
}

// LookupQualifiedName consults the cross-file cache populated by
// CacheQualifiedName.
func (m *Manager) LookupQualifiedName(qualifiedName string) (cpg.NodeID, bool) {
	if m == nil || m.qualifiedNames == nil {
		return cpg.NilNodeID, false
	}
	return m.qualifiedNames.Get(qualifiedName)
}
