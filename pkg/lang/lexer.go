package lang

import (
	"strconv"
	"strings"

	"github.com/antibyte/endbasic-core/pkg/langerr"
	"github.com/antibyte/endbasic-core/pkg/logger"
)

// Lexer turns a character stream into a lazy sequence of Tokens. Call
// Next repeatedly until it returns a KindEOF token.
//
// Grounded on the teacher's pkg/tinybasic/lexer.go shape (a small struct
// over a string with isSpace/isDigit helpers), generalised to produce a
// full token stream with positions instead of single-character classifiers.
type Lexer struct {
	src  []rune
	pos  int
	line int
	col  int
}

// NewLexer creates a Lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), pos: 0, line: 1, col: 1}
}

// lexErr builds a lex error and debug-logs it; lexing errors are common
// enough while a user is actively typing a program that they belong at
// debug level, not warn.
func lexErr(cat langerr.Category, pos langerr.Position, format string, args ...interface{}) error {
	err := langerr.New(cat, pos, format, args...)
	logger.DebugLog(logger.AreaLexer, "%s", err.Error())
	return err
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) rune {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() rune {
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func isDigit(ch rune) bool      { return ch >= '0' && ch <= '9' }
func isAlpha(ch rune) bool      { return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') }
func isIdentBody(ch rune) bool  { return isAlpha(ch) || isDigit(ch) || ch == '_' }
func isSigil(ch rune) bool      { return ch == '?' || ch == '%' || ch == '#' || ch == '$' }
func isHorizSpace(ch rune) bool { return ch == ' ' || ch == '\t' || ch == '\r' }

// Next returns the next token, or a *langerr.Error on a malformed lexeme.
func (l *Lexer) Next() (Token, error) {
	l.skipHorizSpaceAndComments()

	line, col := l.line, l.col
	if l.atEnd() {
		return Token{Kind: KindEOF, Line: line, Col: col}, nil
	}

	ch := l.peek()
	switch {
	case ch == '\n':
		l.advance()
		return Token{Kind: KindEndSt, Text: "\n", Line: line, Col: col}, nil
	case ch == ':':
		l.advance()
		return Token{Kind: KindEndSt, Text: ":", Line: line, Col: col}, nil
	case ch == ';' || ch == ',':
		l.advance()
		return Token{Kind: KindSep, Text: string(ch), Line: line, Col: col}, nil
	case ch == '"':
		return l.lexString(line, col)
	case isDigit(ch):
		return l.lexNumber(line, col)
	case isAlpha(ch):
		return l.lexIdent(line, col)
	default:
		return l.lexOperator(line, col)
	}
}

// skipHorizSpaceAndComments consumes horizontal whitespace and REM/' comments.
// A comment runs to end of line but does not consume the newline itself, so
// the caller still sees it as an end-of-statement token.
func (l *Lexer) skipHorizSpaceAndComments() {
	for {
		for !l.atEnd() && isHorizSpace(l.peek()) {
			l.advance()
		}
		if l.atEnd() {
			return
		}
		if l.peek() == '\'' {
			l.skipToEOL()
			continue
		}
		if isAlpha(l.peek()) && l.startsKeyword("REM") {
			l.skipToEOL()
			continue
		}
		return
	}
}

// startsKeyword reports whether the upcoming identifier, case-insensitively,
// equals kw and is not itself the prefix of a longer identifier.
func (l *Lexer) startsKeyword(kw string) bool {
	n := len(kw)
	if l.pos+n > len(l.src) {
		return false
	}
	cand := string(l.src[l.pos : l.pos+n])
	if !strings.EqualFold(cand, kw) {
		return false
	}
	if l.pos+n < len(l.src) && isIdentBody(l.src[l.pos+n]) {
		return false
	}
	return true
}

func (l *Lexer) skipToEOL() {
	for !l.atEnd() && l.peek() != '\n' {
		l.advance()
	}
}

func (l *Lexer) lexString(line, col int) (Token, error) {
	l.advance() // opening quote
	var sb strings.Builder
	for {
		if l.atEnd() {
			return Token{}, lexErr(langerr.Lex, langerr.Position{Line: line, Column: col}, "unterminated string literal")
		}
		ch := l.peek()
		if ch == '"' {
			l.advance()
			if l.peek() == '"' {
				sb.WriteRune('"')
				l.advance()
				continue
			}
			return Token{Kind: KindString, Text: sb.String(), Line: line, Col: col}, nil
		}
		if ch == '\n' {
			return Token{}, lexErr(langerr.Lex, langerr.Position{Line: line, Column: col}, "unterminated string literal")
		}
		sb.WriteRune(ch)
		l.advance()
	}
}

func (l *Lexer) lexNumber(line, col int) (Token, error) {
	start := l.pos
	for !l.atEnd() && isDigit(l.peek()) {
		l.advance()
	}
	isDouble := false
	if l.peek() == '.' {
		isDouble = true
		l.advance() // '.'
		for !l.atEnd() && isDigit(l.peek()) {
			l.advance()
		}
	}
	text := string(l.src[start:l.pos])
	pos := langerr.Position{Line: line, Column: col}
	if isDouble {
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			return Token{}, lexErr(langerr.Lex, pos, "invalid double literal %q", text)
		}
		return Token{Kind: KindDouble, Text: text, Line: line, Col: col}, nil
	}
	if _, err := strconv.ParseInt(text, 10, 32); err != nil {
		return Token{}, lexErr(langerr.Lex, pos, "integer literal %q out of 32-bit range", text)
	}
	return Token{Kind: KindInt, Text: text, Line: line, Col: col}, nil
}

func (l *Lexer) lexIdent(line, col int) (Token, error) {
	start := l.pos
	for !l.atEnd() && isIdentBody(l.peek()) {
		l.advance()
	}
	if !l.atEnd() && isSigil(l.peek()) {
		l.advance()
	}
	text := string(l.src[start:l.pos])
	upper := strings.ToUpper(text)
	switch upper {
	case "TRUE", "FALSE":
		return Token{Kind: KindBool, Text: upper, Line: line, Col: col}, nil
	}
	if IsKeyword(upper) {
		return Token{Kind: KindKeyword, Text: upper, Line: line, Col: col}, nil
	}
	return Token{Kind: KindIdent, Text: text, Line: line, Col: col}, nil
}

func (l *Lexer) lexOperator(line, col int) (Token, error) {
	pos := langerr.Position{Line: line, Column: col}
	two := func(second rune, op string) (Token, bool) {
		if l.peekAt(1) == second {
			l.advance()
			l.advance()
			return Token{Kind: KindOp, Text: op, Line: line, Col: col}, true
		}
		return Token{}, false
	}

	ch := l.peek()
	switch ch {
	case '+', '-', '*', '/', '(', ')':
		l.advance()
		return Token{Kind: KindOp, Text: string(ch), Line: line, Col: col}, nil
	case '=':
		l.advance()
		return Token{Kind: KindOp, Text: "=", Line: line, Col: col}, nil
	case '<':
		if t, ok := two('=', "<="); ok {
			return t, nil
		}
		if t, ok := two('>', "<>"); ok {
			return t, nil
		}
		l.advance()
		return Token{Kind: KindOp, Text: "<", Line: line, Col: col}, nil
	case '>':
		if t, ok := two('=', ">="); ok {
			return t, nil
		}
		l.advance()
		return Token{Kind: KindOp, Text: ">", Line: line, Col: col}, nil
	}
	l.advance()
	return Token{}, lexErr(langerr.Lex, pos, "unexpected character %q", ch)
}
