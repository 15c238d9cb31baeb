package token

// TokenType identifies the lexical class of a token.
type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"
	NUMBER TokenType = "NUMBER"

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"

	// Delimiters
	SEMICOLON TokenType = ";"
	NEWLINE   TokenType = "NEWLINE"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"

	// Keywords
	LET   TokenType = "LET"
	PRINT TokenType = "PRINT"
)

// Span is a half-open byte interval [Start, End) into the original source.
// Line/column coordinates are derived on demand from the source text by
// whoever renders a span; the front end only ever carries byte offsets.
type Span struct {
	Start int
	End   int
}

// To returns the span covering s through other.
func (s Span) To(other Span) Span {
	return Span{Start: s.Start, End: other.End}
}

func (s Span) Len() int { return s.End - s.Start }

// Token is a single lexeme with its source span.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // float64 for NUMBER, otherwise the lexeme
	Span    Span
}

var keywords = map[string]TokenType{
	"let":   LET,
	"print": PRINT,
}

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return IDENT
}
