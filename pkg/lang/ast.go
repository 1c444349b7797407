package lang

import "github.com/antibyte/endbasic-core/pkg/langerr"

// VarType is one of the four primitive types of spec.md §3, plus Auto for an
// unannotated variable reference (resolved by name alone, per §3).
//
// Named and shaped after the real EndBASIC sources' VarType (see
// original_source/std/src/help.rs, which annotates a VarRef's ref_type()
// against VarType::Auto).
type VarType int

const (
	Auto VarType = iota
	BooleanType
	IntegerType
	DoubleType
	StringType
)

// Annotation returns the sigil for t, or "" for Auto.
func (t VarType) Annotation() string {
	switch t {
	case BooleanType:
		return "?"
	case IntegerType:
		return "%"
	case DoubleType:
		return "#"
	case StringType:
		return "$"
	default:
		return ""
	}
}

func (t VarType) String() string {
	switch t {
	case BooleanType:
		return "BOOLEAN"
	case IntegerType:
		return "INTEGER"
	case DoubleType:
		return "DOUBLE"
	case StringType:
		return "STRING"
	default:
		return "AUTO"
	}
}

// VarTypeFromSigil maps a trailing sigil character to its VarType; ok is
// false if ch is not a sigil (in which case the reference is unannotated).
func VarTypeFromSigil(ch byte) (VarType, bool) {
	switch ch {
	case '?':
		return BooleanType, true
	case '%':
		return IntegerType, true
	case '#':
		return DoubleType, true
	case '$':
		return StringType, true
	default:
		return Auto, false
	}
}

// VarRef is a name plus an optional sigil annotation, per spec.md §3.
type VarRef struct {
	Name string // always upper-cased
	Type VarType
}

// Value is one of the four primitive values. Zero value is an Auto/boolean
// false; callers should always construct via the BoolValue, IntValue,
// DoubleValue and StrValue helpers.
type Value struct {
	Type   VarType
	Bool   bool
	Int    int32
	Double float64
	Str    string
}

func BoolValue(b bool) Value     { return Value{Type: BooleanType, Bool: b} }
func IntValue(i int32) Value     { return Value{Type: IntegerType, Int: i} }
func DoubleValue(d float64) Value { return Value{Type: DoubleType, Double: d} }
func StrValue(s string) Value     { return Value{Type: StringType, Str: s} }

// Zero returns the zero value for t (spec.md §4.2 DIM): FALSE, 0, 0.0, "".
func Zero(t VarType) Value {
	switch t {
	case BooleanType:
		return BoolValue(false)
	case IntegerType:
		return IntValue(0)
	case DoubleType:
		return DoubleValue(0)
	case StringType:
		return StrValue("")
	default:
		return Value{}
	}
}

// --- Expressions ---

// Expr is a node of the expression AST (spec.md §3). The interface is
// sealed with an unexported marker method, in the tagged-node style used
// throughout the pack (e.g. other_examples/leftmike-basic's Expr interface).
type Expr interface {
	exprNode()
	Position() langerr.Position
}

type pos struct{ P langerr.Position }

func (p pos) Position() langerr.Position { return p.P }

type LiteralExpr struct {
	pos
	Value Value
}

type VarRefExpr struct {
	pos
	Ref VarRef
}

// UnaryOp identifies a unary expression operator.
type UnaryOp int

const (
	Neg UnaryOp = iota
	LogicalNot
)

type UnaryExpr struct {
	pos
	Op      UnaryOp
	Operand Expr
}

// BinaryOp identifies a binary expression operator.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	LogicalAnd
	LogicalOr
	LogicalXor
)

type BinaryExpr struct {
	pos
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// CallExpr is a function call used from expression context (spec.md §4.4):
// parenthesised, all arguments evaluated eagerly before dispatch.
type CallExpr struct {
	pos
	Name string
	Args []Expr
}

func (*LiteralExpr) exprNode() {}
func (*VarRefExpr) exprNode()  {}
func (*UnaryExpr) exprNode()   {}
func (*BinaryExpr) exprNode()  {}
func (*CallExpr) exprNode()    {}

// --- Argument groups (spec.md §3 "Argument lists") ---

// ArgSep is the separator that followed an argument slot.
type ArgSep int

const (
	SepEnd   ArgSep = iota // last argument, nothing follows
	SepShort               // ;
	SepLong                // ,
)

// Arg is one slot of a builtin call's argument list. Value is nil for an
// empty slot (e.g. the omitted foreground color in "COLOR ,5"), which
// spec.md §3 requires the parser to preserve rather than collapse.
//
// Modelled directly on the real EndBASIC Command::exec signature found in
// original_source/std/src/help.rs: `args: &[(Option<Expr>, ArgSep)]`.
type Arg struct {
	Value Expr
	Sep   ArgSep
}

// --- Statements ---

// Stmt is a node of the statement AST (spec.md §3).
type Stmt interface {
	stmtNode()
	Position() langerr.Position
}

type AssignStmt struct {
	pos
	Target VarRef
	Value  Expr
}

// CallStmt is a builtin invoked as a statement (a command), with no
// parentheses around its argument list.
type CallStmt struct {
	pos
	Name string
	Args []Arg
}

type IfBranch struct {
	Cond Expr
	Body []Stmt
}

type IfStmt struct {
	pos
	Branches []IfBranch // at least one; first is the IF, rest are ELSEIFs
	Else     []Stmt     // nil if no ELSE
}

type WhileStmt struct {
	pos
	Cond Expr
	Body []Stmt
}

// ForStmt is a FOR/NEXT block. Step is an int32 literal constant, per
// spec.md §4.2 ("the STEP literal must be an integer literal, not an
// expression"); a missing STEP defaults to +1. The control variable's
// type follows Start (INTEGER or DOUBLE, per §4.4); over DOUBLE bounds,
// Step still parses as an integer literal but is widened to float64.
type ForStmt struct {
	pos
	Var   VarRef
	Start Expr
	End   Expr
	Step  int32
	Body  []Stmt
}

type DimStmt struct {
	pos
	Name string
	Type VarType
}

// EndStmt is the end-of-program sentinel statement of spec.md §3. The
// parser appends exactly one to every Program so the evaluator's "falling
// off the end" case is a statement like any other rather than a special
// index check.
type EndStmt struct {
	pos
}

func (*AssignStmt) stmtNode() {}
func (*CallStmt) stmtNode()   {}
func (*IfStmt) stmtNode()     {}
func (*WhileStmt) stmtNode()  {}
func (*ForStmt) stmtNode()    {}
func (*DimStmt) stmtNode()    {}
func (*EndStmt) stmtNode()    {}

// Program is an ordered sequence of statements: the output of the parser.
type Program struct {
	Stmts []Stmt
}
