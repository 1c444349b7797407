// Package interp implements the typed symbol table, builtin registry, and
// tree-walking evaluator that turn a pkg/lang Program into observable
// effects against a host.
//
// Grounded on the teacher's pkg/tinybasic/interpreter.go (a flat
// variable map plus a switch-per-statement executor), generalised to the
// strongly-typed, no-coercion value model of this language.
package interp

import (
	"fmt"
	"math"

	"github.com/antibyte/endbasic-core/pkg/lang"
	"github.com/antibyte/endbasic-core/pkg/langerr"
)

// Display renders v the way PRINT does: booleans as TRUE/FALSE, doubles
// with Go's shortest round-trippable representation, strings verbatim
// (no added quotes).
func Display(v lang.Value) string {
	switch v.Type {
	case lang.BooleanType:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	case lang.IntegerType:
		return fmt.Sprintf("%d", v.Int)
	case lang.DoubleType:
		return formatDouble(v.Double)
	case lang.StringType:
		return v.Str
	default:
		return ""
	}
}

func formatDouble(d float64) string {
	if math.IsInf(d, 1) {
		return "Infinity"
	}
	if math.IsInf(d, -1) {
		return "-Infinity"
	}
	if math.IsNaN(d) {
		return "NaN"
	}
	s := fmt.Sprintf("%g", d)
	return s
}

// typeMismatch builds the standard "type error" diagnostic for a binary
// or unary operator applied to incompatible operand types (spec.md §7,
// "no implicit coercion between types").
func typeMismatch(pos langerr.Position, op string, types ...lang.VarType) error {
	names := make([]interface{}, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	format := "cannot apply %s to"
	for range types {
		format += " %s"
	}
	args := append([]interface{}{op}, names...)
	return langerr.New(langerr.Type, pos, format, args...)
}

// BinaryArith evaluates +, -, *, /, MOD between two values of the same
// numeric type. Integer + - * wrap modulo 2^32 (two's-complement);
// integer division and MOD by zero raise a runtime error; double
// division by zero per IEEE-754 produces Infinity/NaN rather than an
// error, per spec.md §3.
func BinaryArith(op lang.BinaryOp, l, r lang.Value, pos langerr.Position) (lang.Value, error) {
	if l.Type != r.Type || (l.Type != lang.IntegerType && l.Type != lang.DoubleType) {
		return lang.Value{}, typeMismatch(pos, arithOpName(op), l.Type, r.Type)
	}
	if l.Type == lang.IntegerType {
		return intArith(op, l.Int, r.Int, pos)
	}
	return doubleArith(op, l.Double, r.Double, pos)
}

func arithOpName(op lang.BinaryOp) string {
	switch op {
	case lang.Add:
		return "+"
	case lang.Sub:
		return "-"
	case lang.Mul:
		return "*"
	case lang.Div:
		return "/"
	case lang.Mod:
		return "MOD"
	default:
		return "?"
	}
}

func intArith(op lang.BinaryOp, a, b int32, pos langerr.Position) (lang.Value, error) {
	switch op {
	case lang.Add:
		return lang.IntValue(int32(uint32(a) + uint32(b))), nil
	case lang.Sub:
		return lang.IntValue(int32(uint32(a) - uint32(b))), nil
	case lang.Mul:
		return lang.IntValue(int32(uint32(a) * uint32(b))), nil
	case lang.Div:
		if b == 0 {
			return lang.Value{}, langerr.New(langerr.Runtime, pos, "division by zero")
		}
		if a == math.MinInt32 && b == -1 {
			return lang.IntValue(math.MinInt32), nil
		}
		return lang.IntValue(a / b), nil
	case lang.Mod:
		if b == 0 {
			return lang.Value{}, langerr.New(langerr.Runtime, pos, "division by zero")
		}
		if a == math.MinInt32 && b == -1 {
			return lang.IntValue(0), nil
		}
		return lang.IntValue(a % b), nil
	default:
		return lang.Value{}, langerr.New(langerr.Runtime, pos, "unsupported integer operator")
	}
}

func doubleArith(op lang.BinaryOp, a, b float64, pos langerr.Position) (lang.Value, error) {
	switch op {
	case lang.Add:
		return lang.DoubleValue(a + b), nil
	case lang.Sub:
		return lang.DoubleValue(a - b), nil
	case lang.Mul:
		return lang.DoubleValue(a * b), nil
	case lang.Div:
		return lang.DoubleValue(a / b), nil
	case lang.Mod:
		return lang.DoubleValue(math.Mod(a, b)), nil
	default:
		return lang.Value{}, langerr.New(langerr.Runtime, pos, "unsupported double operator")
	}
}

// Negate evaluates unary '-'. Negating math.MinInt32 saturates at
// math.MaxInt32 rather than wrapping, per spec.md's resolved Open
// Question on signed overflow of unary negation.
func Negate(v lang.Value, pos langerr.Position) (lang.Value, error) {
	switch v.Type {
	case lang.IntegerType:
		if v.Int == math.MinInt32 {
			return lang.IntValue(math.MaxInt32), nil
		}
		return lang.IntValue(-v.Int), nil
	case lang.DoubleType:
		return lang.DoubleValue(-v.Double), nil
	default:
		return lang.Value{}, typeMismatch(pos, "-", v.Type)
	}
}

// LogicalNot evaluates unary NOT; requires a boolean operand.
func LogicalNot(v lang.Value, pos langerr.Position) (lang.Value, error) {
	if v.Type != lang.BooleanType {
		return lang.Value{}, typeMismatch(pos, "NOT", v.Type)
	}
	return lang.BoolValue(!v.Bool), nil
}

// BinaryLogical evaluates AND, OR, XOR between two booleans.
func BinaryLogical(op lang.BinaryOp, l, r lang.Value, pos langerr.Position) (lang.Value, error) {
	if l.Type != lang.BooleanType || r.Type != lang.BooleanType {
		return lang.Value{}, typeMismatch(pos, logicalOpName(op), l.Type, r.Type)
	}
	switch op {
	case lang.LogicalAnd:
		return lang.BoolValue(l.Bool && r.Bool), nil
	case lang.LogicalOr:
		return lang.BoolValue(l.Bool || r.Bool), nil
	case lang.LogicalXor:
		return lang.BoolValue(l.Bool != r.Bool), nil
	default:
		return lang.Value{}, langerr.New(langerr.Runtime, pos, "unsupported logical operator")
	}
}

func logicalOpName(op lang.BinaryOp) string {
	switch op {
	case lang.LogicalAnd:
		return "AND"
	case lang.LogicalOr:
		return "OR"
	case lang.LogicalXor:
		return "XOR"
	default:
		return "?"
	}
}

// Compare evaluates =, <>, <, <=, >, >=. Both operands must share the
// same type; spec.md §9 resolves cross-numeric-type comparisons (e.g.
// INTEGER against DOUBLE) as a type error rather than implicit coercion.
func Compare(op lang.BinaryOp, l, r lang.Value, pos langerr.Position) (lang.Value, error) {
	if l.Type != r.Type {
		return lang.Value{}, typeMismatch(pos, compareOpName(op), l.Type, r.Type)
	}
	var cmp int
	switch l.Type {
	case lang.BooleanType:
		cmp = boolCmp(l.Bool, r.Bool)
	case lang.IntegerType:
		cmp = intCmp(l.Int, r.Int)
	case lang.DoubleType:
		cmp = doubleCmp(l.Double, r.Double)
	case lang.StringType:
		cmp = stringCmp(l.Str, r.Str)
	default:
		return lang.Value{}, typeMismatch(pos, compareOpName(op), l.Type, r.Type)
	}
	switch op {
	case lang.Eq:
		return lang.BoolValue(cmp == 0), nil
	case lang.Ne:
		return lang.BoolValue(cmp != 0), nil
	case lang.Lt:
		return lang.BoolValue(cmp < 0), nil
	case lang.Le:
		return lang.BoolValue(cmp <= 0), nil
	case lang.Gt:
		return lang.BoolValue(cmp > 0), nil
	case lang.Ge:
		return lang.BoolValue(cmp >= 0), nil
	default:
		return lang.Value{}, langerr.New(langerr.Runtime, pos, "unsupported comparison operator")
	}
}

func compareOpName(op lang.BinaryOp) string {
	switch op {
	case lang.Eq:
		return "="
	case lang.Ne:
		return "<>"
	case lang.Lt:
		return "<"
	case lang.Le:
		return "<="
	case lang.Gt:
		return ">"
	case lang.Ge:
		return ">="
	default:
		return "?"
	}
}

func boolCmp(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}

func intCmp(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func doubleCmp(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func stringCmp(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
