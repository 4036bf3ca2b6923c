package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinaryOpCodeKnownTokens(t *testing.T) {
	cases := map[string]string{
		"+": Add, "-": Sub, "*": Mul, "/": Div, "//": FloorDiv,
		"%": Mod, "**": Pow, "<<": LShift, ">>": RShift,
		"|": BitOr, "^": BitXor, "&": BitAnd,
		"==": Eq, "!=": NotEq, "<": Lt, "<=": LtEq, ">": Gt, ">=": GtEq,
	}
	for token, want := range cases {
		got, ok := BinaryOpCode(token)
		assert.True(t, ok, token)
		assert.Equal(t, want, got, token)
	}
}

func TestMatrixMultiplyUnifiesWithMultiply(t *testing.T) {
	got, ok := BinaryOpCode("@")
	assert.True(t, ok)
	assert.Equal(t, Mul, got)
}

func TestBinaryOpCodeUnknownToken(t *testing.T) {
	_, ok := BinaryOpCode("<=>")
	assert.False(t, ok)
}

func TestComparisonOpCodeMultiWordForms(t *testing.T) {
	got, ok := ComparisonOpCode("is not")
	assert.True(t, ok)
	assert.Equal(t, IsNot, got)

	got, ok = ComparisonOpCode("not in")
	assert.True(t, ok)
	assert.Equal(t, NotIn, got)
}

func TestUnaryOpCode(t *testing.T) {
	got, ok := UnaryOpCode("not")
	assert.True(t, ok)
	assert.Equal(t, Not, got)

	_, ok = UnaryOpCode("raise")
	assert.False(t, ok, "raise is synthesized by the translator, not parsed as a unary token")
}

func TestPrimitiveTypeForLiteral(t *testing.T) {
	assert.Equal(t, TypeBool, PrimitiveTypeForLiteral("true"))
	assert.Equal(t, TypeNone, PrimitiveTypeForLiteral("none"))
	assert.Equal(t, TypeInt, PrimitiveTypeForLiteral("integer"))
	assert.Equal(t, TypeFloat, PrimitiveTypeForLiteral("float"))
	assert.Equal(t, TypeStr, PrimitiveTypeForLiteral("string"))
	assert.Equal(t, TypeUnknown, PrimitiveTypeForLiteral("something_else"))
}
