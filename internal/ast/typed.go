package ast

import (
	"github.com/calyxlang/calyx/internal/token"
	"github.com/calyxlang/calyx/internal/typesystem"
)

// The typed tree is isomorphic to the syntax tree: same shape, same spans,
// but every expression additionally carries its resolved concrete type.
// The checker produces it once per successful check and the caller owns it
// afterwards.

// TypedNode is the base interface for all typed tree nodes.
type TypedNode interface {
	GetSpan() token.Span
}

// TypedStatement is a TypedNode that represents a statement.
type TypedStatement interface {
	TypedNode
	typedStatementNode()
}

// TypedExpression is a TypedNode with a resolved type.
type TypedExpression interface {
	TypedNode
	typedExpressionNode()
	ResolvedType() typesystem.Type
}

// TypedProgram is the root of the typed tree.
type TypedProgram struct {
	File       string
	Statements []TypedStatement
	Span       token.Span
}

func (p *TypedProgram) GetSpan() token.Span { return p.Span }

// TypedExpressionStatement mirrors ExpressionStatement.
type TypedExpressionStatement struct {
	Expression TypedExpression
	Span       token.Span
}

func (s *TypedExpressionStatement) typedStatementNode() {}
func (s *TypedExpressionStatement) GetSpan() token.Span { return s.Span }

// TypedBlockStatement mirrors BlockStatement.
type TypedBlockStatement struct {
	Statements []TypedStatement
	Span       token.Span
}

func (s *TypedBlockStatement) typedStatementNode() {}
func (s *TypedBlockStatement) GetSpan() token.Span { return s.Span }

// TypedLetStatement mirrors LetStatement. NameSpan is the span of the bound
// identifier itself, kept separately from the whole statement's span.
type TypedLetStatement struct {
	Name     string
	NameSpan token.Span
	Value    TypedExpression
	Span     token.Span
}

func (s *TypedLetStatement) typedStatementNode() {}
func (s *TypedLetStatement) GetSpan() token.Span { return s.Span }

// TypedPrintStatement mirrors PrintStatement.
type TypedPrintStatement struct {
	Value TypedExpression
	Span  token.Span
}

func (s *TypedPrintStatement) typedStatementNode() {}
func (s *TypedPrintStatement) GetSpan() token.Span { return s.Span }

// TypedIdentifier mirrors Identifier.
type TypedIdentifier struct {
	Value string
	Type  typesystem.Type
	Span  token.Span
}

func (e *TypedIdentifier) typedExpressionNode()          {}
func (e *TypedIdentifier) ResolvedType() typesystem.Type { return e.Type }
func (e *TypedIdentifier) GetSpan() token.Span           { return e.Span }

// TypedNumberLiteral mirrors NumberLiteral.
type TypedNumberLiteral struct {
	Value float64
	Type  typesystem.Type
	Span  token.Span
}

func (e *TypedNumberLiteral) typedExpressionNode()          {}
func (e *TypedNumberLiteral) ResolvedType() typesystem.Type { return e.Type }
func (e *TypedNumberLiteral) GetSpan() token.Span           { return e.Span }

// TypedPrefixExpression mirrors PrefixExpression.
type TypedPrefixExpression struct {
	Operator string
	Right    TypedExpression
	Type     typesystem.Type
	Span     token.Span
}

func (e *TypedPrefixExpression) typedExpressionNode()          {}
func (e *TypedPrefixExpression) ResolvedType() typesystem.Type { return e.Type }
func (e *TypedPrefixExpression) GetSpan() token.Span           { return e.Span }

// TypedInfixExpression mirrors InfixExpression.
type TypedInfixExpression struct {
	Operator string
	Left     TypedExpression
	Right    TypedExpression
	Type     typesystem.Type
	Span     token.Span
}

func (e *TypedInfixExpression) typedExpressionNode()          {}
func (e *TypedInfixExpression) ResolvedType() typesystem.Type { return e.Type }
func (e *TypedInfixExpression) GetSpan() token.Span           { return e.Span }
