package cpg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNodeIDUnique(t *testing.T) {
	a := NewNodeID()
	b := NewNodeID()
	assert.NotEqual(t, a, b)
}

func TestNoLocationIsNotPresent(t *testing.T) {
	loc := NoLocation()
	assert.False(t, loc.Present)
}

func TestBuildersDoNotAttachLocation(t *testing.T) {
	v := NewVariable("x", "", nil, false)
	assert.False(t, v.Location().Present)
	assert.NotEqual(t, NilNodeID, v.NodeID())
}

func TestSetLocationAttachesLocation(t *testing.T) {
	v := NewVariable("x", "", nil, false)
	loc := Location{Present: true, File: "a.py", StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 2, Code: "x"}
	SetLocation(v, loc)
	assert.True(t, v.Location().Present)
	assert.Equal(t, "a.py", v.Location().File)
}

func TestConstructorIsAMethod(t *testing.T) {
	ctor := NewConstructor("__init__", NewParameter("self", "A", false), nil, nil, nil, NilNodeID)
	var m *Method = &ctor.Method
	assert.Equal(t, "__init__", m.Name)
	assert.NotNil(t, m.Receiver)
	assert.Equal(t, "self", m.Receiver.Name)
}

func TestRecordAddFieldDedupesByName(t *testing.T) {
	r := NewRecord("A", nil)
	f1 := NewField("y", "", nil, false, r.NodeID())
	f2 := NewField("y", "", nil, false, r.NodeID())
	r.AddField(f1)
	r.AddField(f2)
	assert.Len(t, r.Fields, 1)
}

func TestReferenceResolutionMarksResolved(t *testing.T) {
	ref := NewReference("a")
	assert.False(t, ref.Resolved)
	target := NewNodeID()
	ref.Resolve(target)
	assert.True(t, ref.Resolved)
	assert.Equal(t, target, ref.ResolvedTo)
}

func TestCallKindString(t *testing.T) {
	assert.Equal(t, "plain", CallPlain.String())
	assert.Equal(t, "member", CallMember.String())
	assert.Equal(t, "construct", CallConstruct.String())
	assert.Equal(t, "cast", CallCast.String())
}

func TestEmptyCompoundIsNeverNil(t *testing.T) {
	c := NewCompound(nil)
	assert.NotNil(t, c)
	assert.Empty(t, c.Statements)
}

func TestDiagnosticStringIncludesLocation(t *testing.T) {
	d := NewDiagnostic(SeverityWarn, CategoryUnsupportedConstruct, "translateExpr",
		Location{Present: true, File: "a.py", StartLine: 3, StartCol: 5}, "comprehension not modeled")
	s := d.String()
	assert.Contains(t, s, "a.py:3:5")
	assert.Contains(t, s, "comprehension not modeled")
}

func TestTranslationFailedUnwraps(t *testing.T) {
	cause := &ScopeMismatch{Expected: "ns", Actual: "fn"}
	err := &TranslationFailed{File: "a.py", Cause: cause}
	assert.ErrorIs(t, err, cause)
}
