package generators

import (
	"fmt"
	"math/rand"
	"strings"
)

// RandomSource abstracts the source of randomness.
type RandomSource interface {
	Intn(n int) int
}

// RandSource wraps math/rand.
type RandSource struct {
	*rand.Rand
}

// ByteSource uses a byte slice as a source of randomness.
type ByteSource struct {
	data []byte
	pos  int
}

func (s *ByteSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if s.pos >= len(s.data) {
		return 0
	}
	v := int(s.data[s.pos])
	s.pos++
	return v % n
}

// Generator generates random L32 programs. Every program it produces
// parses, and every variable reference is bound, so evaluation always
// terminates; it may still fail at run time (missing keys, type errors).
type Generator struct {
	src   RandomSource
	depth int
	// scope holds the names visible at the current point.
	scope []string
	// defined counts top-level definitions, for fresh names.
	defined int
}

const (
	MaxDepth      = 4
	MaxStatements = 4
)

var keys = []string{"a", "b", "c"}

func New(seed int64) *Generator {
	return &Generator{src: &RandSource{rand.New(rand.NewSource(seed))}}
}

func NewFromData(data []byte) *Generator {
	return &Generator{src: &ByteSource{data: data}}
}

// Intn exposes the random source's Intn method.
func (g *Generator) Intn(n int) int {
	return g.src.Intn(n)
}

// GenerateProgram returns "(L32 <defines...> <expression>)".
func (g *Generator) GenerateProgram() string {
	var sb strings.Builder
	sb.WriteString("(L32")
	count := g.src.Intn(MaxStatements)
	for i := 0; i < count; i++ {
		sb.WriteString("\n  ")
		sb.WriteString(g.GenerateDefine())
	}
	sb.WriteString("\n  ")
	sb.WriteString(g.GenerateExpression())
	sb.WriteString(")")
	return sb.String()
}

func (g *Generator) GenerateDefine() string {
	name := fmt.Sprintf("v%d", g.defined)
	g.defined++
	def := fmt.Sprintf("(define %s %s)", name, g.GenerateExpression())
	g.scope = append(g.scope, name)
	return def
}

func (g *Generator) GenerateExpression() string {
	if g.depth >= MaxDepth {
		return g.GenerateAtom()
	}
	g.depth++
	defer func() { g.depth-- }()

	switch g.src.Intn(10) {
	case 0, 1:
		return g.GenerateAtom()
	case 2:
		return g.GenerateArithmetic()
	case 3:
		return fmt.Sprintf("(if %s %s %s)", g.GenerateExpression(), g.GenerateExpression(), g.GenerateExpression())
	case 4:
		return g.GenerateApplication()
	case 5, 6:
		return g.GenerateDict()
	case 7:
		return g.GenerateLookup()
	case 8:
		return g.GenerateListOp()
	default:
		return g.GenerateComparison()
	}
}

func (g *Generator) GenerateAtom() string {
	if len(g.scope) > 0 && g.src.Intn(3) == 0 {
		return g.scope[g.src.Intn(len(g.scope))]
	}
	switch g.src.Intn(5) {
	case 0:
		return "#t"
	case 1:
		return "#f"
	case 2:
		return fmt.Sprintf("'%s", keys[g.src.Intn(len(keys))])
	case 3:
		return `"s"`
	default:
		return fmt.Sprintf("%d", g.src.Intn(20))
	}
}

func (g *Generator) GenerateArithmetic() string {
	op := []string{"+", "-", "*"}[g.src.Intn(3)]
	return fmt.Sprintf("(%s %s %s)", op, g.GenerateNumeric(), g.GenerateNumeric())
}

// GenerateNumeric prefers expressions that evaluate to numbers.
func (g *Generator) GenerateNumeric() string {
	if g.depth >= MaxDepth || g.src.Intn(2) == 0 {
		return fmt.Sprintf("%d", g.src.Intn(20))
	}
	return g.GenerateExpression()
}

func (g *Generator) GenerateComparison() string {
	op := []string{"<", ">", "=", "number?", "symbol?", "dict?"}[g.src.Intn(6)]
	if op == "number?" || op == "symbol?" || op == "dict?" {
		return fmt.Sprintf("(%s %s)", op, g.GenerateExpression())
	}
	return fmt.Sprintf("(%s %s %s)", op, g.GenerateNumeric(), g.GenerateNumeric())
}

func (g *Generator) GenerateListOp() string {
	switch g.src.Intn(3) {
	case 0:
		return fmt.Sprintf("(cons %s %s)", g.GenerateExpression(), g.GenerateExpression())
	case 1:
		return fmt.Sprintf("(car (list %s %s))", g.GenerateExpression(), g.GenerateExpression())
	default:
		return fmt.Sprintf("(pair? %s)", g.GenerateExpression())
	}
}

// GenerateApplication applies a lambda immediately; the parameter name may
// shadow a name already in scope.
func (g *Generator) GenerateApplication() string {
	param := []string{"x", "y", "k"}[g.src.Intn(3)]
	arg := g.GenerateExpression()
	g.scope = append(g.scope, param)
	body := g.GenerateExpression()
	g.scope = g.scope[:len(g.scope)-1]
	return fmt.Sprintf("((lambda (%s) %s) %s)", param, body, arg)
}

func (g *Generator) GenerateDict() string {
	var sb strings.Builder
	sb.WriteString("(dict")
	n := g.src.Intn(len(keys)) + 1
	for i := 0; i < n; i++ {
		key := keys[i]
		// An occasional repeated key exercises duplicate detection.
		if i > 0 && g.src.Intn(12) == 0 {
			key = keys[0]
		}
		fmt.Fprintf(&sb, " (%s %s)", key, g.GenerateExpression())
	}
	sb.WriteString(")")
	return sb.String()
}

func (g *Generator) GenerateLookup() string {
	key := fmt.Sprintf("'%s", keys[g.src.Intn(len(keys))])
	if g.src.Intn(2) == 0 {
		return fmt.Sprintf("(%s %s)", g.GenerateDict(), key)
	}
	return fmt.Sprintf("(get %s %s)", g.GenerateDict(), key)
}
