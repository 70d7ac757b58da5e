package operator

import (
	"testing"

	"github.com/nanodb/nanodb/types"
	"github.com/stretchr/testify/assert"
)

func TestAcceptsArithmetic(t *testing.T) {
	assert.True(t, Accepts(Add, types.Integer, types.BigInt))
	assert.True(t, Accepts(Add, types.Real, types.Numeric))
	assert.False(t, Accepts(Add, types.Bool, types.Integer))
	assert.False(t, Accepts(Add, types.String, types.String))
}

func TestAcceptsComparisonSameFamily(t *testing.T) {
	assert.True(t, Accepts(Eq, types.String, types.String))
	assert.True(t, Accepts(Eq, types.Bool, types.Bool))
	assert.False(t, Accepts(Eq, types.Bool, types.String))
}

func TestAcceptsLogical(t *testing.T) {
	assert.True(t, Accepts(And, types.Bool, types.Bool))
	assert.False(t, Accepts(And, types.Bool, types.Integer))
}

func TestAcceptsBitwise(t *testing.T) {
	assert.True(t, Accepts(BitwiseXor, types.Integer, types.SmallInt))
	assert.False(t, Accepts(BitwiseXor, types.Real, types.Integer))
}

func TestAcceptsPattern(t *testing.T) {
	assert.True(t, Accepts(Like, types.String, types.String))
	assert.False(t, Accepts(Like, types.String, types.Integer))
}

func TestResultFamily(t *testing.T) {
	assert.Equal(t, types.BigInt, ResultFamily(Add, types.Integer, types.BigInt))
	assert.Equal(t, types.Bool, ResultFamily(Eq, types.Integer, types.Integer))
	assert.Equal(t, types.String, ResultFamily(Concat, types.String, types.String))
}

// TestFamilyAcceptance is the property named in spec.md §8: for every
// operator and every family pair, Accepts agrees with whether evaluation
// would succeed on well-typed inputs of those families. Here we check the
// weaker, directly testable half: Accepts is total and never panics, and
// ResultFamily is always one of ResultFamilies() when Accepts is true.
func TestFamilyAcceptanceTotal(t *testing.T) {
	allFamilies := []types.Family{
		types.Unknown, types.SmallInt, types.Integer, types.BigInt,
		types.Real, types.Double, types.Numeric, types.Bool, types.String,
	}
	allOps := []Binary{Add, Sub, Mul, Div, Mod, Exp, Eq, NotEq, Lt, Gt, LtEq, GtEq,
		And, Or, BitwiseAnd, BitwiseOr, BitwiseXor, ShiftLeft, ShiftRight, Like, NotLike, Concat}

	for _, op := range allOps {
		for _, fl := range allFamilies {
			for _, fr := range allFamilies {
				if Accepts(op, fl, fr) {
					rf := ResultFamily(op, fl, fr)
					possible := op.ResultFamilies()
					assert.Contains(t, possible, rf)
				}
			}
		}
	}
}
