package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/calyxlang/calyx/internal/token"
)

// Lexer turns source text into a stream of spanned tokens. It walks the
// input one rune at a time; every token carries the half-open byte interval
// it was read from.
type Lexer struct {
	input        string
	position     int  // byte offset of the current char
	readPosition int  // byte offset after the current char
	ch           rune // current char under examination
}

func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// NextToken returns the next token in the input. Newlines are significant
// (they separate statements) and come back as NEWLINE tokens; all other
// whitespace is skipped.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	start := l.position

	switch l.ch {
	case '\n':
		return l.single(token.NEWLINE, start)
	case '=':
		return l.single(token.ASSIGN, start)
	case '+':
		return l.single(token.PLUS, start)
	case '-':
		return l.single(token.MINUS, start)
	case '*':
		return l.single(token.ASTERISK, start)
	case '/':
		if l.peekChar() == '/' {
			l.skipLineComment()
			return l.NextToken()
		}
		return l.single(token.SLASH, start)
	case ';':
		return l.single(token.SEMICOLON, start)
	case '(':
		return l.single(token.LPAREN, start)
	case ')':
		return l.single(token.RPAREN, start)
	case '{':
		return l.single(token.LBRACE, start)
	case '}':
		return l.single(token.RBRACE, start)
	case 0:
		return token.Token{
			Type: token.EOF,
			Span: token.Span{Start: len(l.input), End: len(l.input)},
		}
	}

	if isLetter(l.ch) {
		lexeme := l.readIdentifier()
		return token.Token{
			Type:    token.LookupIdent(lexeme),
			Lexeme:  lexeme,
			Literal: lexeme,
			Span:    token.Span{Start: start, End: l.position},
		}
	}
	if isDigit(l.ch) {
		return l.readNumber(start)
	}

	tok := token.Token{
		Type:    token.ILLEGAL,
		Lexeme:  string(l.ch),
		Literal: string(l.ch),
		Span:    token.Span{Start: start, End: l.readPosition},
	}
	l.readChar()
	return tok
}

// Tokenize drains the lexer into a slice ending with the EOF token.
func Tokenize(input string) []token.Token {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func (l *Lexer) single(t token.TokenType, start int) token.Token {
	tok := token.Token{
		Type:    t,
		Lexeme:  string(l.ch),
		Literal: string(l.ch),
		Span:    token.Span{Start: start, End: l.readPosition},
	}
	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readNumber(start int) token.Token {
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	lexeme := l.input[start:l.position]
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		// Digits with at most one dot always parse; keep the token usable
		// anyway so the parser can point at it.
		return token.Token{
			Type:    token.ILLEGAL,
			Lexeme:  lexeme,
			Literal: lexeme,
			Span:    token.Span{Start: start, End: l.position},
		}
	}
	return token.Token{
		Type:    token.NUMBER,
		Lexeme:  lexeme,
		Literal: value,
		Span:    token.Span{Start: start, End: l.position},
	}
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
