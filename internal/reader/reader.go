package reader

import (
	"errors"
	"fmt"

	"github.com/BenKaponz/PPL-Task2/internal/lexer"
	"github.com/BenKaponz/PPL-Task2/internal/token"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// ErrIncomplete is returned when input ends inside an open form.
var ErrIncomplete = errors.New("unexpected end of input")

type Reader struct {
	tokens []token.Token
	pos    int
}

func New(tokens []token.Token) *Reader {
	return &Reader{tokens: tokens}
}

// Read tokenizes src and reads every top-level datum.
func Read(src string) ([]value.Value, error) {
	tokens, err := lexer.New(src).Tokenize()
	if err != nil {
		return nil, err
	}
	return New(tokens).ReadAll()
}

// ReadOne reads src, which must hold exactly one datum.
func ReadOne(src string) (value.Value, error) {
	datums, err := Read(src)
	if err != nil {
		return nil, err
	}
	if len(datums) != 1 {
		return nil, fmt.Errorf("expected exactly one form, got %d", len(datums))
	}
	return datums[0], nil
}

// IsIncomplete reports whether err means more input could complete the form.
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrIncomplete)
}

func (r *Reader) peek() token.Token {
	if r.pos >= len(r.tokens) {
		return token.Token{Type: token.EOF}
	}
	return r.tokens[r.pos]
}

func (r *Reader) next() token.Token {
	tok := r.peek()
	if r.pos < len(r.tokens) {
		r.pos++
	}
	return tok
}

func (r *Reader) ReadAll() ([]value.Value, error) {
	var out []value.Value
	for r.peek().Type != token.EOF {
		d, err := r.ReadForm()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *Reader) ReadForm() (value.Value, error) {
	tok := r.next()
	switch tok.Type {
	case token.EOF:
		return nil, ErrIncomplete
	case token.LPAREN:
		return r.readList()
	case token.RPAREN:
		return nil, fmt.Errorf("%d:%d: unexpected ')'", tok.Line, tok.Column)
	case token.DOT:
		return nil, fmt.Errorf("%d:%d: unexpected '.'", tok.Line, tok.Column)
	case token.QUOTE:
		quoted, err := r.ReadForm()
		if err != nil {
			return nil, err
		}
		return value.List(value.NewSymbol("quote"), quoted), nil
	case token.NUMBER:
		return value.NewNumber(tok.Literal.(float64)), nil
	case token.STRING:
		return value.NewString(tok.Literal.(string)), nil
	case token.BOOLEAN:
		return value.NewBool(tok.Literal.(bool)), nil
	case token.SYMBOL:
		return value.NewSymbol(tok.Lexeme), nil
	default:
		return nil, fmt.Errorf("%d:%d: unexpected token %q", tok.Line, tok.Column, tok.Lexeme)
	}
}

func (r *Reader) readList() (value.Value, error) {
	var items []value.Value
	for {
		tok := r.peek()
		switch tok.Type {
		case token.EOF:
			return nil, ErrIncomplete
		case token.RPAREN:
			r.next()
			return value.List(items...), nil
		case token.DOT:
			r.next()
			if len(items) == 0 {
				return nil, fmt.Errorf("%d:%d: '.' needs a preceding element", tok.Line, tok.Column)
			}
			tail, err := r.ReadForm()
			if err != nil {
				return nil, err
			}
			closing := r.next()
			if closing.Type == token.EOF {
				return nil, ErrIncomplete
			}
			if closing.Type != token.RPAREN {
				return nil, fmt.Errorf("%d:%d: expected ')' after dotted tail", closing.Line, closing.Column)
			}
			out := tail
			for i := len(items) - 1; i >= 0; i-- {
				out = value.Cons(items[i], out)
			}
			return out, nil
		}
		d, err := r.ReadForm()
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
}
