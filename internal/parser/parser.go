package parser

import (
	"github.com/calyxlang/calyx/internal/ast"
	"github.com/calyxlang/calyx/internal/diagnostics"
	"github.com/calyxlang/calyx/internal/token"
)

// Operator precedence levels, lowest binds loosest.
const (
	_ int = iota
	LOWEST
	SUM     // + -
	PRODUCT // * /
	PREFIX  // -x
)

var precedences = map[token.TokenType]int{
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser builds the spanned AST from a token stream. Syntax problems are
// collected as diagnostics; the parser recovers at statement boundaries and
// keeps going so one bad statement does not hide the rest.
type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	errors []diagnostics.Diagnostic

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:  p.parseIdentifier,
		token.NUMBER: p.parseNumberLiteral,
		token.MINUS:  p.parsePrefixExpression,
		token.LPAREN: p.parseGroupedExpression,
	}
	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.PLUS:     p.parseInfixExpression,
		token.MINUS:    p.parseInfixExpression,
		token.ASTERISK: p.parseInfixExpression,
		token.SLASH:    p.parseInfixExpression,
	}

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the diagnostics collected while parsing.
func (p *Parser) Errors() []diagnostics.Diagnostic { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// expectPeek advances when the next token matches, otherwise records an
// expected/found diagnostic pointing at the offending token.
func (p *Parser) expectPeek(t token.TokenType, expected string) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.expectedFound(expected, p.peekToken)
	return false
}

func (p *Parser) expectedFound(expected string, found token.Token) {
	d := &diagnostics.ExpectedFound{
		Span:     found.Span,
		Expected: []string{expected},
	}
	if found.Type != token.EOF {
		d.Found = found.Lexeme
	}
	p.errors = append(p.errors, d)
}

// ParseProgram parses the whole token stream into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	p.skipSeparators()
	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
			p.expectStatementEnd()
		} else {
			p.skipToStatementBoundary()
		}
		p.nextToken()
		p.skipSeparators()
	}

	program.Span = token.Span{Start: 0, End: p.curToken.Span.End}
	return program
}

// expectStatementEnd checks that a statement is followed by a separator,
// a closing brace or the end of input.
func (p *Parser) expectStatementEnd() {
	switch p.peekToken.Type {
	case token.NEWLINE, token.SEMICOLON, token.RBRACE, token.EOF:
	default:
		p.expectedFound("end of statement", p.peekToken)
		p.skipToStatementBoundary()
	}
}

func (p *Parser) skipSeparators() {
	for p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
}

// skipToStatementBoundary advances to the next likely statement start so a
// single error does not cascade.
func (p *Parser) skipToStatementBoundary() {
	for !p.peekTokenIs(token.NEWLINE) &&
		!p.peekTokenIs(token.SEMICOLON) &&
		!p.peekTokenIs(token.RBRACE) &&
		!p.peekTokenIs(token.EOF) {
		p.nextToken()
	}
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET:
		return p.parseLetStatement()
	case token.PRINT:
		return p.parsePrintStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	letToken := p.curToken

	if !p.expectPeek(token.IDENT, "identifier") {
		return nil
	}
	name := &ast.Identifier{
		Token: p.curToken,
		Value: p.curToken.Lexeme,
		Span:  p.curToken.Span,
	}

	if !p.expectPeek(token.ASSIGN, "'='") {
		return nil
	}
	p.nextToken()

	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}

	return &ast.LetStatement{
		Token: letToken,
		Name:  name,
		Value: value,
		Span:  letToken.Span.To(value.GetSpan()),
	}
}

func (p *Parser) parsePrintStatement() ast.Statement {
	printToken := p.curToken
	p.nextToken()

	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}

	return &ast.PrintStatement{
		Token: printToken,
		Value: value,
		Span:  printToken.Span.To(value.GetSpan()),
	}
}

func (p *Parser) parseBlockStatement() ast.Statement {
	block := &ast.BlockStatement{Token: p.curToken}
	p.nextToken()
	p.skipSeparators()

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
			p.expectStatementEnd()
		} else {
			p.skipToStatementBoundary()
		}
		p.nextToken()
		p.skipSeparators()
	}

	if p.curTokenIs(token.EOF) {
		p.expectedFound("'}'", p.curToken)
		return nil
	}

	block.RBraceToken = p.curToken
	block.Span = block.Token.Span.To(p.curToken.Span)
	return block
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	first := p.curToken
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	return &ast.ExpressionStatement{
		Token:      first,
		Expression: expr,
		Span:       expr.GetSpan(),
	}
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.expectedFound("expression", p.curToken)
		return nil
	}
	leftExp := prefix()

	for leftExp != nil && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}

	return leftExp
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{
		Token: p.curToken,
		Value: p.curToken.Lexeme,
		Span:  p.curToken.Span,
	}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	value, ok := p.curToken.Literal.(float64)
	if !ok {
		p.errors = append(p.errors, &diagnostics.Custom{
			Span:    p.curToken.Span,
			Message: "invalid numeric literal",
		})
		return nil
	}
	return &ast.NumberLiteral{
		Token: p.curToken,
		Value: value,
		Span:  p.curToken.Span,
	}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	opToken := p.curToken
	p.nextToken()

	right := p.parseExpression(PREFIX)
	if right == nil {
		return nil
	}
	return &ast.PrefixExpression{
		Token:    opToken,
		Operator: opToken.Lexeme,
		Right:    right,
		Span:     opToken.Span.To(right.GetSpan()),
	}
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	opToken := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()

	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.InfixExpression{
		Token:    opToken,
		Operator: opToken.Lexeme,
		Left:     left,
		Right:    right,
		Span:     left.GetSpan().To(right.GetSpan()),
	}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()

	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN, "')'") {
		return nil
	}
	// A parenthesized expression keeps the span of the inner node.
	return expr
}
