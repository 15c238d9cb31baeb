package ast

import (
	"github.com/calyxlang/calyx/internal/token"
)

// Node is the base interface for all AST nodes. Every node carries the span
// of the source text it was parsed from.
type Node interface {
	TokenLiteral() string
	GetSpan() token.Span
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of every AST our parser produces.
type Program struct {
	File       string // Source file path
	Statements []Statement
	Span       token.Span
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}
func (p *Program) GetSpan() token.Span { return p.Span }

// ExpressionStatement is a statement that consists of a single expression.
type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
	Span       token.Span
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *ExpressionStatement) GetSpan() token.Span  { return es.Span }

// BlockStatement represents a list of statements within curly braces.
// Bindings introduced inside the block do not escape it.
type BlockStatement struct {
	Token       token.Token // {
	Statements  []Statement
	RBraceToken token.Token // }
	Span        token.Span
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Lexeme }
func (bs *BlockStatement) GetSpan() token.Span  { return bs.Span }

// LetStatement represents a binding: let name = value
type LetStatement struct {
	Token token.Token // The 'let' token
	Name  *Identifier
	Value Expression
	Span  token.Span
}

func (ls *LetStatement) statementNode()       {}
func (ls *LetStatement) TokenLiteral() string { return ls.Token.Lexeme }
func (ls *LetStatement) GetSpan() token.Span  { return ls.Span }

// PrintStatement represents: print expr
type PrintStatement struct {
	Token token.Token // The 'print' token
	Value Expression
	Span  token.Span
}

func (ps *PrintStatement) statementNode()       {}
func (ps *PrintStatement) TokenLiteral() string { return ps.Token.Lexeme }
func (ps *PrintStatement) GetSpan() token.Span  { return ps.Span }

// Identifier represents a variable reference.
type Identifier struct {
	Token token.Token
	Value string
	Span  token.Span
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) GetSpan() token.Span  { return i.Span }

// NumberLiteral represents a numeric literal.
type NumberLiteral struct {
	Token token.Token
	Value float64
	Span  token.Span
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Lexeme }
func (nl *NumberLiteral) GetSpan() token.Span  { return nl.Span }

// PrefixExpression represents a prefix operation, e.g. -x
type PrefixExpression struct {
	Token    token.Token // The operator token
	Operator string
	Right    Expression
	Span     token.Span
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetSpan() token.Span  { return pe.Span }

// InfixExpression represents a binary operation, e.g. a + b
type InfixExpression struct {
	Token    token.Token // The operator token
	Operator string
	Left     Expression
	Right    Expression
	Span     token.Span
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Lexeme }
func (ie *InfixExpression) GetSpan() token.Span  { return ie.Span }
