package lexer

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/BenKaponz/PPL-Task2/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += w
		l.column++
		return
	}

	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// NextToken returns the next token. Unterminated strings and bad escapes
// come back as ILLEGAL tokens whose Literal holds the error message.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	line, col := l.line, l.column
	switch l.ch {
	case 0:
		return token.Token{Type: token.EOF, Line: line, Column: col}
	case '(', '[':
		l.readChar()
		return token.Token{Type: token.LPAREN, Lexeme: "(", Line: line, Column: col}
	case ')', ']':
		l.readChar()
		return token.Token{Type: token.RPAREN, Lexeme: ")", Line: line, Column: col}
	case '\'':
		l.readChar()
		return token.Token{Type: token.QUOTE, Lexeme: "'", Line: line, Column: col}
	case '"':
		return l.readString(line, col)
	}

	lexeme := l.readAtom()
	tok := token.Token{Lexeme: lexeme, Line: line, Column: col}
	switch {
	case lexeme == ".":
		tok.Type = token.DOT
	case lexeme == "#t" || lexeme == "#true":
		tok.Type = token.BOOLEAN
		tok.Literal = true
	case lexeme == "#f" || lexeme == "#false":
		tok.Type = token.BOOLEAN
		tok.Literal = false
	default:
		if n, ok := parseNumber(lexeme); ok {
			tok.Type = token.NUMBER
			tok.Literal = n
		} else {
			tok.Type = token.SYMBOL
		}
	}
	return tok
}

// Tokenize runs the lexer to EOF.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			return tokens, fmt.Errorf("%d:%d: %v", tok.Line, tok.Column, tok.Literal)
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ';':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case unicode.IsSpace(l.ch):
			l.readChar()
		default:
			return
		}
	}
}

func isDelimiter(ch rune) bool {
	switch ch {
	case 0, '(', ')', '[', ']', '\'', '"', ';':
		return true
	}
	return unicode.IsSpace(ch)
}

func (l *Lexer) readAtom() string {
	start := l.position
	for !isDelimiter(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readString(line, col int) token.Token {
	l.readChar() // opening quote
	var out []rune
	for {
		switch l.ch {
		case 0:
			return token.Token{Type: token.ILLEGAL, Literal: "unterminated string literal", Line: line, Column: col}
		case '"':
			l.readChar()
			s := string(out)
			return token.Token{Type: token.STRING, Lexeme: strconv.Quote(s), Literal: s, Line: line, Column: col}
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '"', '\\':
				out = append(out, l.ch)
			case 0:
				return token.Token{Type: token.ILLEGAL, Literal: "unterminated string literal", Line: line, Column: col}
			default:
				return token.Token{Type: token.ILLEGAL, Literal: fmt.Sprintf("unknown escape \\%c", l.ch), Line: line, Column: col}
			}
			l.readChar()
		default:
			out = append(out, l.ch)
			l.readChar()
		}
	}
}

func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	c := s[0]
	if !(c >= '0' && c <= '9') && c != '-' && c != '+' && c != '.' {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
