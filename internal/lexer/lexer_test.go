package lexer

import (
	"testing"

	"github.com/BenKaponz/PPL-Task2/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `(L32 ; comment
  (define x 1.5)
  ((dict (a "s\n") (b #t)) 'a)
  '(x . -2))`

	tests := []struct {
		expectedType   token.TokenType
		expectedLexeme string
	}{
		{token.LPAREN, "("},
		{token.SYMBOL, "L32"},
		{token.LPAREN, "("},
		{token.SYMBOL, "define"},
		{token.SYMBOL, "x"},
		{token.NUMBER, "1.5"},
		{token.RPAREN, ")"},
		{token.LPAREN, "("},
		{token.LPAREN, "("},
		{token.SYMBOL, "dict"},
		{token.LPAREN, "("},
		{token.SYMBOL, "a"},
		{token.STRING, `"s\n"`},
		{token.RPAREN, ")"},
		{token.LPAREN, "("},
		{token.SYMBOL, "b"},
		{token.BOOLEAN, "#t"},
		{token.RPAREN, ")"},
		{token.RPAREN, ")"},
		{token.QUOTE, "'"},
		{token.SYMBOL, "a"},
		{token.RPAREN, ")"},
		{token.QUOTE, "'"},
		{token.LPAREN, "("},
		{token.SYMBOL, "x"},
		{token.DOT, "."},
		{token.NUMBER, "-2"},
		{token.RPAREN, ")"},
		{token.RPAREN, ")"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (%q)", i, tt.expectedType, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestLiterals(t *testing.T) {
	toks, err := New(`42 "hi" #f + -`).Tokenize()
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Literal.(float64) != 42 {
		t.Errorf("number literal = %v", toks[0].Literal)
	}
	if toks[1].Literal.(string) != "hi" {
		t.Errorf("string literal = %v", toks[1].Literal)
	}
	if toks[2].Literal.(bool) != false {
		t.Errorf("boolean literal = %v", toks[2].Literal)
	}
	if toks[3].Type != token.SYMBOL || toks[4].Type != token.SYMBOL {
		t.Errorf("operators should lex as symbols: %v %v", toks[3], toks[4])
	}
}

func TestPositions(t *testing.T) {
	l := New("(a\n  b)")
	l.NextToken()
	l.NextToken()
	b := l.NextToken()
	if b.Line != 2 || b.Column != 3 {
		t.Errorf("b at %d:%d, want 2:3", b.Line, b.Column)
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []string{
		`"unterminated`,
		`"bad \q escape"`,
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := New(input).Tokenize(); err == nil {
				t.Errorf("Tokenize(%q) expected error", input)
			}
		})
	}
}
