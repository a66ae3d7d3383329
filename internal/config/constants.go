package config

const SourceFileExt = ".l32"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".l32", ".l3"}

// Language tags that open a program: (L32 ...)
const (
	LangL3  = "L3"
	LangL32 = "L32"
)

// Special form keywords
const (
	DefineKeyword = "define"
	IfKeyword     = "if"
	LambdaKeyword = "lambda"
	LetKeyword    = "let"
	QuoteKeyword  = "quote"
	DictKeyword   = "dict"
)

// Built-in primitive names
const (
	AddOpName      = "+"
	SubOpName      = "-"
	MulOpName      = "*"
	DivOpName      = "/"
	GtOpName       = ">"
	LtOpName       = "<"
	NumEqOpName    = "="
	NotOpName      = "not"
	AndOpName      = "and"
	OrOpName       = "or"
	EqOpName       = "eq?"
	StringEqOpName = "string=?"
	ConsOpName     = "cons"
	CarOpName      = "car"
	CdrOpName      = "cdr"
	ListOpName     = "list"
	PairPOpName    = "pair?"
	NumberPOpName  = "number?"
	BooleanPOpName = "boolean?"
	SymbolPOpName  = "symbol?"
	StringPOpName  = "string?"
	DictOpName     = "dict"
	DictPOpName    = "dict?"
	GetOpName      = "get"
)

// PrimitiveNames lists every operator the parser turns into a PrimOp node.
var PrimitiveNames = []string{
	AddOpName, SubOpName, MulOpName, DivOpName,
	GtOpName, LtOpName, NumEqOpName,
	NotOpName, AndOpName, OrOpName,
	EqOpName, StringEqOpName,
	ConsOpName, CarOpName, CdrOpName, ListOpName, PairPOpName,
	NumberPOpName, BooleanPOpName, SymbolPOpName, StringPOpName,
	DictOpName, DictPOpName, GetOpName,
}

var primitiveSet = func() map[string]bool {
	m := make(map[string]bool, len(PrimitiveNames))
	for _, n := range PrimitiveNames {
		m[n] = true
	}
	return m
}()

func IsPrimitiveName(name string) bool {
	return primitiveSet[name]
}

// Backend names
const (
	BackendEnvironment  = "env"
	BackendSubstitution = "subst"
)

// Lowering strategy names
const (
	LowerLiteral     = "literal"
	LowerApplication = "application"
	LowerRuntime     = "runtime"
)
