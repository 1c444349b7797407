package lang

import (
	"strconv"
	"strings"

	"github.com/antibyte/endbasic-core/pkg/langerr"
	"github.com/antibyte/endbasic-core/pkg/logger"
)

// Parser is a recursive-descent parser over a Lexer's token stream,
// producing a Program per spec.md §4.2.
//
// Shaped after the teacher's pkg/tinybasic parser (a hand-written
// recursive-descent parser with a one-token lookahead buffer and a
// precedence-climbing expression parser), generalised from the teacher's
// flat statement set to the full IF/WHILE/FOR block grammar.
type Parser struct {
	lex  *Lexer
	tok  Token
	peeked bool
	err  error
}

// NewParser creates a Parser reading from lex.
func NewParser(lex *Lexer) *Parser {
	return &Parser{lex: lex}
}

// Parse consumes the entire token stream and returns a Program, or the
// first parse (or lex) error encountered.
func (p *Parser) Parse() (*Program, error) {
	var stmts []Stmt
	p.skipEndSt()
	for {
		if p.at(KindEOF) {
			break
		}
		st, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
		if err := p.expectEndOfStmt(); err != nil {
			return nil, err
		}
		p.skipEndSt()
	}
	stmts = append(stmts, &EndStmt{pos: pos{P: p.curPos()}})
	return &Program{Stmts: stmts}, nil
}

// --- token plumbing ---

func (p *Parser) current() (Token, error) {
	if !p.peeked {
		t, err := p.lex.Next()
		if err != nil {
			return Token{}, err
		}
		p.tok = t
		p.peeked = true
	}
	return p.tok, nil
}

func (p *Parser) advance() (Token, error) {
	t, err := p.current()
	if err != nil {
		return Token{}, err
	}
	p.peeked = false
	return t, nil
}

func (p *Parser) at(k Kind) bool {
	t, err := p.current()
	if err != nil {
		return false
	}
	return t.Kind == k
}

func (p *Parser) atKeyword(kw string) bool {
	t, err := p.current()
	if err != nil {
		return false
	}
	return t.Kind == KindKeyword && t.Text == kw
}

func (p *Parser) atOp(op string) bool {
	t, err := p.current()
	if err != nil {
		return false
	}
	return t.Kind == KindOp && t.Text == op
}

func (p *Parser) curPos() langerr.Position {
	t, _ := p.current()
	return langerr.Position{Line: t.Line, Column: t.Col}
}

func (p *Parser) errf(format string, args ...interface{}) error {
	err := langerr.New(langerr.Parse, p.curPos(), format, args...)
	logger.DebugLog(logger.AreaParser, "%s", err.Error())
	return err
}

func (p *Parser) expectKeyword(kw string) error {
	if !p.atKeyword(kw) {
		t, _ := p.current()
		return p.errf("expected %s, found %q", kw, t.Text)
	}
	_, err := p.advance()
	return err
}

func (p *Parser) expectOp(op string) error {
	if !p.atOp(op) {
		t, _ := p.current()
		return p.errf("expected %q, found %q", op, t.Text)
	}
	_, err := p.advance()
	return err
}

// skipEndSt consumes any run of end-of-statement tokens (blank lines,
// stray colons between statements).
func (p *Parser) skipEndSt() {
	for p.at(KindEndSt) {
		p.advance()
	}
}

// expectEndOfStmt requires the statement just parsed to be followed by an
// end-of-statement token, EOF, or a block-closing keyword (END/ELSE/
// ELSEIF/NEXT), without consuming the closing keyword itself.
func (p *Parser) expectEndOfStmt() error {
	if p.at(KindEndSt) || p.at(KindEOF) {
		return nil
	}
	if p.atKeyword("END") || p.atKeyword("ELSE") || p.atKeyword("ELSEIF") || p.atKeyword("NEXT") {
		return nil
	}
	t, _ := p.current()
	return p.errf("expected end of statement, found %q", t.Text)
}

// --- statements ---

func (p *Parser) blockEnds() bool {
	return p.at(KindEOF) || p.atKeyword("END") || p.atKeyword("ELSE") || p.atKeyword("ELSEIF") || p.atKeyword("NEXT")
}

// parseBlock parses statements until the next block-closing keyword,
// which it does not consume.
func (p *Parser) parseBlock() ([]Stmt, error) {
	var stmts []Stmt
	p.skipEndSt()
	for !p.blockEnds() {
		st, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
		if err := p.expectEndOfStmt(); err != nil {
			return nil, err
		}
		p.skipEndSt()
	}
	return stmts, nil
}

func (p *Parser) parseStmt() (Stmt, error) {
	startPos := p.curPos()
	switch {
	case p.atKeyword("IF"):
		return p.parseIf(startPos)
	case p.atKeyword("WHILE"):
		return p.parseWhile(startPos)
	case p.atKeyword("FOR"):
		return p.parseFor(startPos)
	case p.atKeyword("DIM"):
		return p.parseDim(startPos)
	}

	t, err := p.current()
	if err != nil {
		return nil, err
	}
	if t.Kind == KindIdent {
		return p.parseAssignOrCall(startPos)
	}
	return nil, p.errf("expected a statement, found %q", t.Text)
}

// parseAssignOrCall disambiguates "NAME = expr" from "NAME arg, arg" (a
// builtin command call) per spec.md §4.2: an identifier statement is an
// assignment iff the token right after the (possibly annotated) name is
// "=" and not "==" — EndBASIC has no "==", so a bare "=" always wins,
// same as the teacher's parseStatement switch on the second token.
func (p *Parser) parseAssignOrCall(startPos langerr.Position) (Stmt, error) {
	nameTok, err := p.advance()
	if err != nil {
		return nil, err
	}
	ref := parseVarRef(nameTok.Text)

	if p.atOp("=") {
		p.advance()
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &AssignStmt{pos: pos{P: startPos}, Target: ref, Value: val}, nil
	}

	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	return &CallStmt{pos: pos{P: startPos}, Name: ref.Name, Args: args}, nil
}

// parseArgList parses a command's argument groups up to the next
// end-of-statement, preserving empty slots and separators verbatim
// (spec.md §3 "Argument lists").
func (p *Parser) parseArgList() ([]Arg, error) {
	var args []Arg
	if p.at(KindEndSt) || p.at(KindEOF) || p.blockEnds() {
		return args, nil
	}
	for {
		var val Expr
		if !p.at(KindSep) && !p.at(KindEndSt) && !p.at(KindEOF) && !p.blockEnds() {
			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			val = v
		}
		if p.at(KindSep) {
			t, _ := p.advance()
			sep := SepShort
			if t.Text == "," {
				sep = SepLong
			}
			args = append(args, Arg{Value: val, Sep: sep})
			continue
		}
		args = append(args, Arg{Value: val, Sep: SepEnd})
		return args, nil
	}
}

func (p *Parser) parseIf(startPos langerr.Position) (Stmt, error) {
	p.advance() // IF
	var branches []IfBranch
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("THEN"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	branches = append(branches, IfBranch{Cond: cond, Body: body})

	for p.atKeyword("ELSEIF") {
		p.advance()
		c, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("THEN"); err != nil {
			return nil, err
		}
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		branches = append(branches, IfBranch{Cond: c, Body: b})
	}

	var elseBody []Stmt
	if p.atKeyword("ELSE") {
		p.advance()
		elseBody, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	if err := p.expectKeyword("END"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("IF"); err != nil {
		return nil, err
	}
	return &IfStmt{pos: pos{P: startPos}, Branches: branches, Else: elseBody}, nil
}

func (p *Parser) parseWhile(startPos langerr.Position) (Stmt, error) {
	p.advance() // WHILE
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("END"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("WHILE"); err != nil {
		return nil, err
	}
	return &WhileStmt{pos: pos{P: startPos}, Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor(startPos langerr.Position) (Stmt, error) {
	p.advance() // FOR
	nameTok, err := p.current()
	if err != nil {
		return nil, err
	}
	if nameTok.Kind != KindIdent {
		return nil, p.errf("expected loop variable, found %q", nameTok.Text)
	}
	p.advance()
	ref := parseVarRef(nameTok.Text)

	if err := p.expectOp("="); err != nil {
		return nil, err
	}
	start, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("TO"); err != nil {
		return nil, err
	}
	end, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	step := int32(1)
	if p.atKeyword("STEP") {
		p.advance()
		neg := false
		if p.atOp("-") {
			neg = true
			p.advance()
		} else if p.atOp("+") {
			p.advance()
		}
		t, err := p.current()
		if err != nil {
			return nil, err
		}
		if t.Kind != KindInt {
			return nil, p.errf("STEP requires an integer literal, found %q", t.Text)
		}
		p.advance()
		n, err := strconv.ParseInt(t.Text, 10, 32)
		if err != nil {
			return nil, p.errf("invalid STEP literal %q", t.Text)
		}
		step = int32(n)
		if neg {
			step = -step
		}
		if step == 0 {
			return nil, p.errf("STEP must not be zero")
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("NEXT"); err != nil {
		return nil, err
	}
	return &ForStmt{pos: pos{P: startPos}, Var: ref, Start: start, End: end, Step: step, Body: body}, nil
}

func (p *Parser) parseDim(startPos langerr.Position) (Stmt, error) {
	p.advance() // DIM
	nameTok, err := p.current()
	if err != nil {
		return nil, err
	}
	if nameTok.Kind != KindIdent {
		return nil, p.errf("expected variable name, found %q", nameTok.Text)
	}
	p.advance()
	if _, annotated := VarTypeFromSigil(lastByte(nameTok.Text)); annotated {
		return nil, p.errf("DIM variable %q must not carry a type sigil", nameTok.Text)
	}
	if err := p.expectKeyword("AS"); err != nil {
		return nil, err
	}
	t, err := p.current()
	if err != nil {
		return nil, err
	}
	var vt VarType
	switch t.Text {
	case "BOOLEAN":
		vt = BooleanType
	case "INTEGER":
		vt = IntegerType
	case "DOUBLE":
		vt = DoubleType
	case "STRING":
		vt = StringType
	default:
		return nil, p.errf("expected a type name, found %q", t.Text)
	}
	p.advance()
	return &DimStmt{pos: pos{P: startPos}, Name: strings.ToUpper(nameTok.Text), Type: vt}, nil
}

// --- expressions: precedence climbing, lowest to highest ---
//
// OR/XOR < AND < NOT < comparisons < + - < * / MOD < unary - < primary

func (p *Parser) parseExpr() (Expr, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.atKeyword("OR") || p.atKeyword("XOR") {
		t, _ := p.advance()
		op := LogicalOr
		if t.Text == "XOR" {
			op = LogicalXor
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{pos: pos{P: left.Position()}, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.atKeyword("AND") {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{pos: pos{P: left.Position()}, Op: LogicalAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (Expr, error) {
	if p.atKeyword("NOT") {
		startPos := p.curPos()
		p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{pos: pos{P: startPos}, Op: LogicalNot, Operand: operand}, nil
	}
	return p.parseComparison()
}

// parseComparison parses at most one comparison operator: spec.md §4.2
// lists comparisons as non-associative, so "1 < 2 < 3" is a parse error
// rather than silently meaning "(1 < 2) < 3".
func (p *Parser) parseComparison() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	var op BinaryOp
	switch {
	case p.atOp("="):
		op = Eq
	case p.atOp("<>"):
		op = Ne
	case p.atOp("<="):
		op = Le
	case p.atOp("<"):
		op = Lt
	case p.atOp(">="):
		op = Ge
	case p.atOp(">"):
		op = Gt
	default:
		return left, nil
	}
	p.advance()
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	left = &BinaryExpr{pos: pos{P: left.Position()}, Op: op, Left: left, Right: right}

	if p.atOp("=") || p.atOp("<>") || p.atOp("<=") || p.atOp("<") || p.atOp(">=") || p.atOp(">") {
		t, _ := p.current()
		return nil, p.errf("comparisons do not chain, found %q", t.Text)
	}
	return left, nil
}

func (p *Parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.atOp("+") || p.atOp("-") {
		t, _ := p.advance()
		op := Add
		if t.Text == "-" {
			op = Sub
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{pos: pos{P: left.Position()}, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.atOp("*") || p.atOp("/") || p.atKeyword("MOD") {
		t, _ := p.advance()
		var op BinaryOp
		switch t.Text {
		case "*":
			op = Mul
		case "/":
			op = Div
		default:
			op = Mod
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{pos: pos{P: left.Position()}, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Expr, error) {
	if p.atOp("-") {
		startPos := p.curPos()
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{pos: pos{P: startPos}, Op: Neg, Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Expr, error) {
	t, err := p.current()
	if err != nil {
		return nil, err
	}
	startPos := langerr.Position{Line: t.Line, Column: t.Col}

	switch t.Kind {
	case KindInt:
		p.advance()
		n, err := strconv.ParseInt(t.Text, 10, 32)
		if err != nil {
			return nil, p.errf("invalid integer literal %q", t.Text)
		}
		return &LiteralExpr{pos: pos{P: startPos}, Value: IntValue(int32(n))}, nil
	case KindDouble:
		p.advance()
		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, p.errf("invalid double literal %q", t.Text)
		}
		return &LiteralExpr{pos: pos{P: startPos}, Value: DoubleValue(f)}, nil
	case KindString:
		p.advance()
		return &LiteralExpr{pos: pos{P: startPos}, Value: StrValue(t.Text)}, nil
	case KindBool:
		p.advance()
		return &LiteralExpr{pos: pos{P: startPos}, Value: BoolValue(t.Text == "TRUE")}, nil
	case KindOp:
		if t.Text == "(" {
			p.advance()
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectOp(")"); err != nil {
				return nil, err
			}
			return e, nil
		}
	case KindIdent:
		p.advance()
		if p.atOp("(") {
			p.advance()
			var args []Expr
			if !p.atOp(")") {
				for {
					a, err := p.parseExpr()
					if err != nil {
						return nil, err
					}
					args = append(args, a)
					if p.at(KindSep) {
						p.advance()
						continue
					}
					break
				}
			}
			if err := p.expectOp(")"); err != nil {
				return nil, err
			}
			return &CallExpr{pos: pos{P: startPos}, Name: strings.ToUpper(trimSigil(t.Text)), Args: args}, nil
		}
		ref := parseVarRef(t.Text)
		return &VarRefExpr{pos: pos{P: startPos}, Ref: ref}, nil
	}
	return nil, p.errf("expected an expression, found %q", t.Text)
}

// --- VarRef helpers ---

func lastByte(s string) byte {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

func trimSigil(name string) string {
	if len(name) == 0 {
		return name
	}
	if _, ok := VarTypeFromSigil(name[len(name)-1]); ok {
		return name[:len(name)-1]
	}
	return name
}

// parseVarRef splits a lexed identifier (possibly sigil-suffixed) into a
// VarRef, upper-casing the name per spec.md §3 while leaving the
// annotation, if any, attached to the VarRef rather than the name.
func parseVarRef(text string) VarRef {
	vt, ok := VarTypeFromSigil(lastByte(text))
	name := text
	if ok {
		name = text[:len(text)-1]
	} else {
		vt = Auto
	}
	return VarRef{Name: strings.ToUpper(name), Type: vt}
}
