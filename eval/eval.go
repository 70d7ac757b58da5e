// Package eval implements the expression evaluator (spec §4.J): it walks an
// ExecutableTree and produces a types.Value given the statement's
// parameters and, for dynamic trees, the current row's datums.
package eval

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nanodb/nanodb/operator"
	"github.com/nanodb/nanodb/tree"
	"github.com/nanodb/nanodb/types"
)

// Eval evaluates t against params (positional parameter values) and row
// (the current row's decoded datums; nil for a static tree that never
// references a column).
func Eval(t *tree.ExecutableTree, params []types.Value, row []types.Datum) (types.Value, error) {
	if t == nil {
		return types.Null(), nil
	}

	payload := t.Payload()

	switch t.Kind.Tag {
	case tree.KindConst:
		return payload.Value, nil

	case tree.KindNull:
		return types.Null(), nil

	case tree.KindParam:
		if payload.ParamIndex >= len(params) {
			return types.Value{}, fmt.Errorf("eval: parameter index %d out of range (have %d)", payload.ParamIndex, len(params))
		}
		return params[payload.ParamIndex], nil

	case tree.KindColumn:
		if payload.ColumnOrdinal >= len(row) {
			return types.Value{}, fmt.Errorf("eval: column ordinal %d out of range (have %d)", payload.ColumnOrdinal, len(row))
		}
		return types.ValueFromDatum(row[payload.ColumnOrdinal], payload.Family), nil

	case tree.KindUnOp:
		return evalUnary(t, params, row)

	case tree.KindBiOp:
		return evalBinary(t, params, row)

	default:
		return types.Value{}, fmt.Errorf("eval: unknown node kind %s", t.Kind.Tag)
	}
}

func evalUnary(t *tree.ExecutableTree, params []types.Value, row []types.Datum) (types.Value, error) {
	child, err := Eval(t.Left, params, row)
	if err != nil {
		return types.Value{}, err
	}

	if t.UnaryOp == operator.Cast {
		return applyCast(child, t.Payload().CastTarget)
	}

	if child.IsNull() {
		return types.Null(), nil
	}

	switch t.UnaryOp {
	case operator.Neg:
		d, ok := child.NumValue()
		if !ok {
			return types.Value{}, ErrDatatypeMismatch.New(t.UnaryOp, "numeric", child.Kind())
		}
		return widenIfNeeded(d.Neg(), child.NumFamily()), nil

	case operator.Pos:
		return child, nil

	case operator.Abs:
		d, ok := child.NumValue()
		if !ok {
			return types.Value{}, ErrDatatypeMismatch.New(t.UnaryOp, "numeric", child.Kind())
		}
		return types.Num(d.Abs(), child.NumFamily()), nil

	case operator.SquareRoot:
		d, _ := child.NumValue()
		f, _ := d.Float64()
		if f < 0 {
			return types.Value{}, ErrInvalidArgumentForPowerFunction.New()
		}
		return types.Num(decimal.NewFromFloat(math.Sqrt(f)), types.Double), nil

	case operator.CubeRoot:
		d, _ := child.NumValue()
		f, _ := d.Float64()
		return types.Num(decimal.NewFromFloat(math.Cbrt(f)), types.Double), nil

	case operator.Factorial:
		return evalFactorial(child)

	case operator.LogicalNot:
		b, ok := child.BoolValue()
		if !ok {
			return types.Value{}, ErrDatatypeMismatch.New(t.UnaryOp, "bool", child.Kind())
		}
		return types.Bool(!b), nil

	case operator.BitwiseNot:
		d, _ := child.NumValue()
		return types.Num(decimal.NewFromInt(^d.IntPart()), child.NumFamily()), nil

	default:
		return types.Value{}, ErrUndefinedFunction.New(t.UnaryOp, child.Kind())
	}
}

func evalFactorial(v types.Value) (types.Value, error) {
	d, ok := v.NumValue()
	if !ok {
		return types.Value{}, ErrDatatypeMismatch.New(operator.Factorial, "integer", v.Kind())
	}
	n := d.IntPart()
	if n < 0 {
		return types.Value{}, ErrInvalidArgumentForPowerFunction.New()
	}
	result := big.NewInt(1)
	for i := int64(2); i <= n; i++ {
		result.Mul(result, big.NewInt(i))
	}
	rd := decimal.NewFromBigInt(result, 0)
	return widenIfNeeded(rd, v.NumFamily()), nil
}

func evalBinary(t *tree.ExecutableTree, params []types.Value, row []types.Datum) (types.Value, error) {
	left, err := Eval(t.Left, params, row)
	if err != nil {
		return types.Value{}, err
	}
	right, err := Eval(t.Right, params, row)
	if err != nil {
		return types.Value{}, err
	}

	op := t.BinaryOp

	// Kleene three-valued logic is checked before the generic null
	// propagation below: And(Null, false) = false, Or(Null, true) = true.
	if op == operator.And {
		lf, lok := left.BoolValue()
		rf, rok := right.BoolValue()
		if (lok && !lf) || (rok && !rf) {
			return types.Bool(false), nil
		}
		if left.IsNull() || right.IsNull() {
			return types.Null(), nil
		}
		return types.Bool(lf && rf), nil
	}
	if op == operator.Or {
		lf, lok := left.BoolValue()
		rf, rok := right.BoolValue()
		if (lok && lf) || (rok && rf) {
			return types.Bool(true), nil
		}
		if left.IsNull() || right.IsNull() {
			return types.Null(), nil
		}
		return types.Bool(lf || rf), nil
	}

	if left.IsNull() || right.IsNull() {
		return types.Null(), nil
	}

	switch {
	case op.IsArithmetic():
		return evalArithmetic(op, left, right, t.Payload().Family)
	case op.IsComparison():
		return evalComparison(op, left, right)
	case op.IsBitwise():
		return evalBitwise(op, left, right, t.Payload().Family)
	case op.IsPattern():
		return evalPattern(op, left, right)
	case op.IsString():
		ls, lok := left.StringValue()
		rs, rok := right.StringValue()
		if !lok || !rok {
			return types.Value{}, ErrDatatypeMismatch.New(op, "string", left.Kind())
		}
		return types.Str(ls + rs), nil
	default:
		return types.Value{}, ErrUndefinedFunction.New(op, left.Kind())
	}
}

func evalArithmetic(op operator.Binary, left, right types.Value, family types.Family) (types.Value, error) {
	ld, lok := left.NumValue()
	rd, rok := right.NumValue()
	if !lok || !rok {
		return types.Value{}, ErrDatatypeMismatch.New(op, "numeric", left.Kind())
	}

	switch op {
	case operator.Add:
		return widenIfNeeded(ld.Add(rd), family), nil
	case operator.Sub:
		return widenIfNeeded(ld.Sub(rd), family), nil
	case operator.Mul:
		return widenIfNeeded(ld.Mul(rd), family), nil
	case operator.Div:
		if rd.IsZero() {
			return types.Value{}, ErrDivisionByZero.New()
		}
		return widenIfNeeded(ld.Div(rd), family), nil
	case operator.Mod:
		if rd.IsZero() {
			return types.Value{}, ErrDivisionByZero.New()
		}
		return widenIfNeeded(ld.Mod(rd), family), nil
	case operator.Exp:
		return evalExp(ld, rd, left.NumFamily(), right.NumFamily(), family)
	default:
		return types.Value{}, ErrUndefinedFunction.New(op, left.Kind())
	}
}

// evalExp follows the convention described in spec §4.G: when both operands
// came from integer families, the result stays integer (widened as needed)
// if it is a whole number that fits; otherwise it falls back to Double.
// Negative bases with a non-integral exponent are rejected as
// InvalidArgumentForPowerFunction, matching PostgreSQL's pow().
func evalExp(base, exponent decimal.Decimal, baseFam, expFam types.Family, resultFam types.Family) (types.Value, error) {
	bf, _ := base.Float64()
	ef, _ := exponent.Float64()

	if bf < 0 && ef != math.Trunc(ef) {
		return types.Value{}, ErrInvalidArgumentForPowerFunction.New()
	}

	res := math.Pow(bf, ef)
	rd := decimal.NewFromFloat(res)

	if baseFam.IsInteger() && expFam.IsInteger() && rd.Equal(rd.Truncate(0)) {
		return widenIfNeeded(rd, resultFam), nil
	}
	return types.Num(rd, types.Double), nil
}

func evalComparison(op operator.Binary, left, right types.Value) (types.Value, error) {
	var cmp int
	switch {
	case left.Kind() == types.KindNum && right.Kind() == types.KindNum:
		ld, _ := left.NumValue()
		rd, _ := right.NumValue()
		cmp = ld.Cmp(rd)
	case left.Kind() == types.KindString && right.Kind() == types.KindString:
		ls, _ := left.StringValue()
		rs, _ := right.StringValue()
		cmp = strings.Compare(ls, rs)
	case left.Kind() == types.KindBool && right.Kind() == types.KindBool:
		lb, _ := left.BoolValue()
		rb, _ := right.BoolValue()
		cmp = 0
		if lb != rb {
			if lb {
				cmp = 1
			} else {
				cmp = -1
			}
		}
	default:
		return types.Value{}, ErrDatatypeMismatch.New(op, left.Kind(), right.Kind())
	}

	switch op {
	case operator.Eq:
		return types.Bool(cmp == 0), nil
	case operator.NotEq:
		return types.Bool(cmp != 0), nil
	case operator.Lt:
		return types.Bool(cmp < 0), nil
	case operator.Gt:
		return types.Bool(cmp > 0), nil
	case operator.LtEq:
		return types.Bool(cmp <= 0), nil
	case operator.GtEq:
		return types.Bool(cmp >= 0), nil
	default:
		return types.Value{}, ErrUndefinedFunction.New(op, left.Kind())
	}
}

func evalBitwise(op operator.Binary, left, right types.Value, family types.Family) (types.Value, error) {
	ld, lok := left.NumValue()
	rd, rok := right.NumValue()
	if !lok || !rok {
		return types.Value{}, ErrDatatypeMismatch.New(op, "integer", left.Kind())
	}
	li, ri := ld.IntPart(), rd.IntPart()

	var res int64
	switch op {
	case operator.BitwiseAnd:
		res = li & ri
	case operator.BitwiseOr:
		res = li | ri
	case operator.BitwiseXor:
		res = li ^ ri
	case operator.ShiftLeft:
		res = li << uint(ri)
	case operator.ShiftRight:
		res = li >> uint(ri)
	default:
		return types.Value{}, ErrUndefinedFunction.New(op, left.Kind())
	}
	return widenIfNeeded(decimal.NewFromInt(res), family), nil
}

func evalPattern(op operator.Binary, left, right types.Value) (types.Value, error) {
	s, sok := left.StringValue()
	pattern, pok := right.StringValue()
	if !sok || !pok {
		return types.Value{}, ErrDatatypeMismatch.New(op, "string", left.Kind())
	}

	matched := likeMatch(s, pattern)
	if op == operator.NotLike {
		matched = !matched
	}
	return types.Bool(matched), nil
}

// likeMatch implements PostgreSQL LIKE semantics: '%' matches any run of
// characters, '_' matches exactly one, everything else matches literally.
func likeMatch(s, pattern string) bool {
	var re strings.Builder
	re.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '%':
			re.WriteString(".*")
		case '_':
			re.WriteString(".")
		default:
			re.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	re.WriteString("$")
	matched, err := regexp.MatchString(re.String(), s)
	if err != nil {
		return false
	}
	return matched
}

// widenIfNeeded bumps an integer family up the widening chain
// (SmallInt -> Integer -> BigInt -> Numeric) until d fits, matching the
// "negating i64::MAX : BigInt widens to Numeric" example in spec §4.J.
// Non-integer families are returned unchanged: floats don't overflow this way.
func widenIfNeeded(d decimal.Decimal, family types.Family) types.Value {
	for family.IsInteger() && !types.FitsInFamily(d, family) {
		family = nextWiderFamily(family)
	}
	return types.Num(d, family)
}

func nextWiderFamily(f types.Family) types.Family {
	switch f {
	case types.SmallInt:
		return types.Integer
	case types.Integer:
		return types.BigInt
	default:
		return types.Numeric
	}
}

// applyCast implements Cast(target, v) at evaluation time (spec §4.J):
// invalid cast-from-string input text surfaces InvalidInputSyntaxForType;
// a numeric value that doesn't fit the target family surfaces
// NumericOutOfRange. Legality of the (from, to) pair was already checked by
// typecheck (spec §4.H); this function only performs the conversion and
// range-checks.
func applyCast(v types.Value, target types.Family) (types.Value, error) {
	if v.IsNull() {
		return types.Null(), nil
	}

	switch v.Kind() {
	case types.KindBool:
		return v, nil

	case types.KindNum:
		d, _ := v.NumValue()
		if target == types.Bool {
			return types.Bool(!d.IsZero()), nil
		}
		if !types.FitsInFamily(d, target) {
			return types.Value{}, ErrNumericOutOfRange.New(target)
		}
		return types.Num(d, target), nil

	case types.KindString:
		s, _ := v.StringValue()
		trimmed := strings.TrimSpace(s)
		if target == types.Bool {
			switch trimmed {
			case "t", "true", "TRUE", "1", "yes", "y":
				return types.Bool(true), nil
			case "f", "false", "FALSE", "0", "no", "n":
				return types.Bool(false), nil
			default:
				return types.Value{}, ErrInvalidInputSyntaxForType.New("bool", s)
			}
		}
		if target.IsNumeric() {
			d, err := decimal.NewFromString(trimmed)
			if err != nil {
				return types.Value{}, ErrInvalidInputSyntaxForType.New(target.String(), s)
			}
			if !types.FitsInFamily(d, target) {
				return types.Value{}, ErrNumericOutOfRange.New(target)
			}
			return types.Num(d, target), nil
		}
		return v, nil

	default:
		return v, nil
	}
}
