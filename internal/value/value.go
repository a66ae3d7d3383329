package value

import (
	"math"
	"strconv"
	"strings"
)

type Kind string

const (
	NUMBER_KIND  Kind = "NUMBER"
	BOOL_KIND    Kind = "BOOL"
	STRING_KIND  Kind = "STRING"
	SYMBOL_KIND  Kind = "SYMBOL"
	EMPTY_KIND   Kind = "EMPTY"
	PAIR_KIND    Kind = "PAIR"
	PRIMOP_KIND  Kind = "PRIMOP"
	CLOSURE_KIND Kind = "CLOSURE"
	DICT_KIND    Kind = "DICT"
)

// Value is anything an L32 expression can evaluate to. The datum subset
// (Number, Bool, String, Symbol, Empty, Pair) doubles as the S-expression
// type produced by the reader and carried by quoted literals.
type Value interface {
	Kind() Kind
	String() string
}

type Number struct {
	Value float64
}

func (n *Number) Kind() Kind     { return NUMBER_KIND }
func (n *Number) String() string { return FormatNumber(n.Value) }

type Bool struct {
	Value bool
}

func (b *Bool) Kind() Kind { return BOOL_KIND }
func (b *Bool) String() string {
	if b.Value {
		return "#t"
	}
	return "#f"
}

type String struct {
	Value string
}

func (s *String) Kind() Kind     { return STRING_KIND }
func (s *String) String() string { return strconv.Quote(s.Value) }

type Symbol struct {
	Name string
}

func (s *Symbol) Kind() Kind     { return SYMBOL_KIND }
func (s *Symbol) String() string { return s.Name }

type Empty struct{}

func (e *Empty) Kind() Kind     { return EMPTY_KIND }
func (e *Empty) String() string { return "()" }

// Pair owns both of its children.
type Pair struct {
	Car Value
	Cdr Value
}

func (p *Pair) Kind() Kind { return PAIR_KIND }
func (p *Pair) String() string {
	var out strings.Builder
	out.WriteByte('(')
	out.WriteString(p.Car.String())
	rest := p.Cdr
	for {
		switch r := rest.(type) {
		case *Pair:
			out.WriteByte(' ')
			out.WriteString(r.Car.String())
			rest = r.Cdr
			continue
		case *Empty:
		default:
			out.WriteString(" . ")
			out.WriteString(r.String())
		}
		break
	}
	out.WriteByte(')')
	return out.String()
}

type PrimOp struct {
	Op string
}

func (p *PrimOp) Kind() Kind     { return PRIMOP_KIND }
func (p *PrimOp) String() string { return "#<primitive " + p.Op + ">" }

// Constructors

func NewNumber(v float64) *Number { return &Number{Value: v} }
func NewBool(v bool) *Bool        { return &Bool{Value: v} }
func NewString(v string) *String  { return &String{Value: v} }
func NewSymbol(name string) *Symbol {
	return &Symbol{Name: name}
}
func NewEmpty() *Empty { return &Empty{} }

func Cons(car, cdr Value) *Pair {
	return &Pair{Car: car, Cdr: cdr}
}

// List builds a right-nested, Empty-terminated chain.
func List(vals ...Value) Value {
	var out Value = NewEmpty()
	for i := len(vals) - 1; i >= 0; i-- {
		out = Cons(vals[i], out)
	}
	return out
}

// ListToSlice flattens a proper list. ok is false for improper lists.
func ListToSlice(v Value) (vals []Value, ok bool) {
	for {
		switch l := v.(type) {
		case *Empty:
			return vals, true
		case *Pair:
			vals = append(vals, l.Car)
			v = l.Cdr
		default:
			return vals, false
		}
	}
}

func IsEmpty(v Value) bool {
	_, ok := v.(*Empty)
	return ok
}

func IsFalse(v Value) bool {
	b, ok := v.(*Bool)
	return ok && !b.Value
}

// IsTrue reports L32 truthiness: everything except #f.
func IsTrue(v Value) bool {
	return !IsFalse(v)
}

// IsSExp reports whether v belongs to the datum subset.
func IsSExp(v Value) bool {
	switch p := v.(type) {
	case *Number, *Bool, *String, *Symbol, *Empty:
		return true
	case *Pair:
		return IsSExp(p.Car) && IsSExp(p.Cdr)
	default:
		return false
	}
}

// FormatNumber prints integral values without an exponent up to 1e21,
// the point where JavaScript switches notation too.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
