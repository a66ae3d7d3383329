package token

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	LPAREN TokenType = "("
	RPAREN TokenType = ")"
	QUOTE  TokenType = "'"
	DOT    TokenType = "."

	NUMBER  TokenType = "NUMBER"
	STRING  TokenType = "STRING"
	BOOLEAN TokenType = "BOOLEAN"
	SYMBOL  TokenType = "SYMBOL"
)

type Token struct {
	Type    TokenType
	Lexeme  string      // raw source text
	Literal interface{} // float64 for NUMBER, string for STRING, bool for BOOLEAN
	Line    int
	Column  int
}
