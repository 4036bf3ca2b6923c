package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivasurya/code-pathfinder/pycpg/cpg"
)

func TestResetToGlobalLeavesBalancedStack(t *testing.T) {
	m := New()
	tu := cpg.NewTranslationUnit("a.py")
	m.ResetToGlobal(tu)
	assert.True(t, m.Balanced())
}

func TestEnterLeaveBalanced(t *testing.T) {
	m := New()
	tu := cpg.NewTranslationUnit("a.py")
	m.ResetToGlobal(tu)

	ns := cpg.NewNamespace("a")
	m.Enter(Namespace, ns)
	assert.False(t, m.Balanced())
	require.NoError(t, m.Leave(ns))
	assert.True(t, m.Balanced())
}

func TestLeaveMismatchReturnsScopeMismatch(t *testing.T) {
	m := New()
	tu := cpg.NewTranslationUnit("a.py")
	m.ResetToGlobal(tu)

	ns := cpg.NewNamespace("a")
	m.Enter(Namespace, ns)

	other := cpg.NewNamespace("b")
	err := m.Leave(other)
	require.Error(t, err)
	var mismatch *cpg.ScopeMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestResolveFindsNearestLexicalBinding(t *testing.T) {
	m := New()
	tu := cpg.NewTranslationUnit("a.py")
	m.ResetToGlobal(tu)

	ns := cpg.NewNamespace("a")
	m.Enter(Namespace, ns)

	outer := cpg.NewVariable("a", "", nil, false)
	m.AddDeclaration(outer)

	fn := cpg.NewFunction("f", nil, nil, nil)
	m.Enter(Function, fn)

	param := cpg.NewParameter("a", "", false)
	m.AddDeclaration(param)

	ref := cpg.NewReference("a")
	resolved, ok := m.Resolve(ref)
	require.True(t, ok)
	assert.Equal(t, param.NodeID(), resolved.NodeID())
	assert.True(t, ref.Resolved)
	assert.Equal(t, param.NodeID(), ref.ResolvedTo)
}

func TestResolveUnresolvedLeavesReferenceUnmarked(t *testing.T) {
	m := New()
	tu := cpg.NewTranslationUnit("a.py")
	m.ResetToGlobal(tu)

	ref := cpg.NewReference("missing")
	_, ok := m.Resolve(ref)
	assert.False(t, ok)
	assert.False(t, ref.Resolved)
}

func TestResolveIsIdempotent(t *testing.T) {
	m := New()
	tu := cpg.NewTranslationUnit("a.py")
	m.ResetToGlobal(tu)
	v := cpg.NewVariable("x", "", nil, false)
	m.AddDeclaration(v)

	ref := cpg.NewReference("x")
	first, ok1 := m.Resolve(ref)
	second, ok2 := m.Resolve(ref)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first.NodeID(), second.NodeID())
}

func TestAddDeclarationDedupesFieldsInRecordScope(t *testing.T) {
	m := New()
	tu := cpg.NewTranslationUnit("a.py")
	m.ResetToGlobal(tu)

	rec := cpg.NewRecord("A", nil)
	m.Enter(Record, rec)
	m.AddDeclaration(cpg.NewField("y", "", nil, false, rec.NodeID()))
	m.AddDeclaration(cpg.NewField("y", "", nil, false, rec.NodeID()))

	s := m.Current()
	assert.Len(t, s.Declarations["y"], 1)
}

func TestAddDeclarationAllowsRebindingOutsideRecordScope(t *testing.T) {
	m := New()
	tu := cpg.NewTranslationUnit("a.py")
	m.ResetToGlobal(tu)

	m.AddDeclaration(cpg.NewVariable("x", "", nil, false))
	m.AddDeclaration(cpg.NewVariable("x", "", nil, false))

	s := m.Current()
	assert.Len(t, s.Declarations["x"], 2)
}

func TestCurrentRecordWalksOutThroughMethodScope(t *testing.T) {
	m := New()
	tu := cpg.NewTranslationUnit("a.py")
	m.ResetToGlobal(tu)

	rec := cpg.NewRecord("A", nil)
	m.Enter(Record, rec)

	method := cpg.NewMethod("m", cpg.NewParameter("self", "A", false), nil, nil, nil, rec.NodeID())
	ms := m.Enter(Method, method)
	ms.Receiver = method.Receiver

	assert.Equal(t, rec.NodeID(), m.CurrentRecord().NodeID())
	assert.Equal(t, "self", m.CurrentReceiver().Name)
}

func TestRecordForNameFindsEnclosingRecord(t *testing.T) {
	m := New()
	tu := cpg.NewTranslationUnit("a.py")
	m.ResetToGlobal(tu)

	rec := cpg.NewRecord("Foo", nil)
	m.AddDeclaration(rec)

	found, ok := m.RecordForName("Foo")
	require.True(t, ok)
	assert.Equal(t, rec.NodeID(), found.NodeID())

	_, ok = m.RecordForName("Bar")
	assert.False(t, ok)
}
