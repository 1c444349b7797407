package lang

import "testing"

func collectTokens(t *testing.T, src string) []Token {
	t.Helper()
	lex := NewLexer(src)
	var toks []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		toks = append(toks, tok)
		if tok.Kind == KindEOF {
			return toks
		}
	}
}

func TestLexerIdentifiersAndSigils(t *testing.T) {
	toks := collectTokens(t, "x% y$ z")
	if len(toks) != 4 { // 3 idents + EOF
		t.Fatalf("expected 4 tokens, got %d", len(toks))
	}
	if toks[0].Kind != KindIdent || toks[0].Text != "x%" {
		t.Errorf("token 0 = %+v", toks[0])
	}
	if toks[1].Text != "y$" {
		t.Errorf("token 1 = %+v", toks[1])
	}
	if toks[2].Text != "z" {
		t.Errorf("token 2 = %+v", toks[2])
	}
}

func TestLexerNumberDisambiguation(t *testing.T) {
	toks := collectTokens(t, "123 4.5 6.")
	if toks[0].Kind != KindInt || toks[0].Text != "123" {
		t.Errorf("token 0 = %+v", toks[0])
	}
	if toks[1].Kind != KindDouble || toks[1].Text != "4.5" {
		t.Errorf("token 1 = %+v", toks[1])
	}
	// "6." has no digit after the dot, but a digit run containing a dot
	// is still a double.
	if toks[2].Kind != KindDouble || toks[2].Text != "6." {
		t.Errorf("token 2 = %+v", toks[2])
	}
}

func TestLexerIntegerOutOfRange(t *testing.T) {
	lex := NewLexer("99999999999")
	_, err := lex.Next()
	if err == nil {
		t.Fatal("expected an out-of-range error")
	}
}

func TestLexerStringEscape(t *testing.T) {
	toks := collectTokens(t, `"say ""hi"""`)
	if toks[0].Kind != KindString {
		t.Fatalf("expected a string token, got %+v", toks[0])
	}
	if toks[0].Text != `say "hi"` {
		t.Errorf("got %q", toks[0].Text)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	lex := NewLexer(`"oops`)
	_, err := lex.Next()
	if err == nil {
		t.Fatal("expected an unterminated string error")
	}
}

func TestLexerKeywordsAreCaseInsensitive(t *testing.T) {
	toks := collectTokens(t, "iF wHiLe")
	if toks[0].Kind != KindKeyword || toks[0].Text != "IF" {
		t.Errorf("token 0 = %+v", toks[0])
	}
	if toks[1].Kind != KindKeyword || toks[1].Text != "WHILE" {
		t.Errorf("token 1 = %+v", toks[1])
	}
}

func TestLexerTrueFalseAreBooleanLiterals(t *testing.T) {
	toks := collectTokens(t, "TRUE false")
	if toks[0].Kind != KindBool || toks[0].Text != "TRUE" {
		t.Errorf("token 0 = %+v", toks[0])
	}
	if toks[1].Kind != KindBool || toks[1].Text != "FALSE" {
		t.Errorf("token 1 = %+v", toks[1])
	}
}

func TestLexerCommentsRunToEndOfLine(t *testing.T) {
	toks := collectTokens(t, "x = 1 ' ignored\ny = 2 REM also ignored\n")
	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	// x = 1 <endst> y = 2 <endst> EOF
	want := []Kind{KindIdent, KindOp, KindInt, KindEndSt, KindIdent, KindOp, KindInt, KindEndSt, KindEOF}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(kinds), toks)
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("token %d: expected kind %v, got %v", i, k, kinds[i])
		}
	}
}

func TestLexerOperators(t *testing.T) {
	toks := collectTokens(t, "<= <> >= <")
	want := []string{"<=", "<>", ">=", "<"}
	for i, w := range want {
		if toks[i].Text != w {
			t.Errorf("token %d: expected %q, got %q", i, w, toks[i].Text)
		}
	}
}

func TestLexerUnexpectedCharacter(t *testing.T) {
	lex := NewLexer("@")
	_, err := lex.Next()
	if err == nil {
		t.Fatal("expected an unexpected-character error")
	}
}
