// Package analyzer performs semantic analysis: it walks the syntax tree,
// generates typing constraints, and produces either a typed tree or a set
// of diagnostics.
package analyzer

import (
	"github.com/calyxlang/calyx/internal/ast"
	"github.com/calyxlang/calyx/internal/diagnostics"
	"github.com/calyxlang/calyx/internal/scopes"
	"github.com/calyxlang/calyx/internal/typesystem"
)

// Analyzer checks programs. It holds no state between calls; every Check
// gets a fresh scope table and constraint engine, dropped as a unit when
// the call returns.
type Analyzer struct{}

func New() *Analyzer { return &Analyzer{} }

// Check typechecks a program. On success the returned typed tree is
// isomorphic to the input and span-identical node for node. On failure the
// diagnostic aggregates every independent error found during the walk;
// diagnostics carry their own span and type snapshots and stay valid after
// the engine is gone.
func (a *Analyzer) Check(program *ast.Program) (*ast.TypedProgram, diagnostics.Diagnostic) {
	c := &checker{
		engine:   typesystem.NewEngine(),
		bindings: scopes.New[string, typesystem.TypeID](),
	}

	typed := c.checkProgram(program)
	if d := diagnostics.Combine(c.errors); d != nil {
		return nil, d
	}
	return typed, nil
}

// checker is the per-call walk state: one scope table and one constraint
// engine shared mutably across the whole recursion.
type checker struct {
	engine   *typesystem.Engine
	bindings *scopes.Scopes[string, typesystem.TypeID]
	errors   []diagnostics.Diagnostic
}

func (c *checker) report(d diagnostics.Diagnostic) {
	c.errors = append(c.errors, d)
}

func (c *checker) checkProgram(program *ast.Program) *ast.TypedProgram {
	c.bindings.Push()
	defer c.bindings.Pop()

	typed := &ast.TypedProgram{
		File: program.File,
		Span: program.Span,
	}
	// Statements are checked in order: bindings from earlier statements are
	// visible to later ones. A failed statement is skipped but the walk
	// continues so independent errors accumulate.
	for _, stmt := range program.Statements {
		if ts, ok := c.checkStatement(stmt); ok {
			typed.Statements = append(typed.Statements, ts)
		}
	}
	return typed
}

func (c *checker) checkStatement(stmt ast.Statement) (ast.TypedStatement, bool) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		expr, ok := c.checkExpression(s.Expression)
		if !ok {
			return nil, false
		}
		return &ast.TypedExpressionStatement{Expression: expr, Span: s.Span}, true

	case *ast.BlockStatement:
		c.bindings.Push()
		defer c.bindings.Pop()

		typed := &ast.TypedBlockStatement{Span: s.Span}
		ok := true
		for _, inner := range s.Statements {
			ts, innerOK := c.checkStatement(inner)
			if innerOK {
				typed.Statements = append(typed.Statements, ts)
			} else {
				ok = false
			}
		}
		return typed, ok

	case *ast.LetStatement:
		// The RHS is checked before the name is bound, so the binding is
		// not visible inside its own initializer.
		value, ok := c.checkExpression(s.Value)
		if !ok {
			return nil, false
		}

		valueID := c.engine.InsertType(value.ResolvedType(), value.GetSpan())
		varID := c.engine.InsertUnknown(s.Name.Span)
		if d := c.engine.Unify(valueID, varID); d != nil {
			c.report(d)
			return nil, false
		}

		c.bindings.Insert(s.Name.Value, varID)

		return &ast.TypedLetStatement{
			Name:     s.Name.Value,
			NameSpan: s.Name.Span,
			Value:    value,
			Span:     s.Span,
		}, true

	case *ast.PrintStatement:
		value, ok := c.checkExpression(s.Value)
		if !ok {
			return nil, false
		}
		return &ast.TypedPrintStatement{Value: value, Span: s.Span}, true

	default:
		c.report(&diagnostics.Custom{
			Span:    stmt.GetSpan(),
			Message: "unsupported statement",
		})
		return nil, false
	}
}

func (c *checker) checkExpression(expr ast.Expression) (ast.TypedExpression, bool) {
	switch e := expr.(type) {
	case *ast.Identifier:
		id, found := c.bindings.Get(e.Value)
		if !found {
			c.report(&diagnostics.UndefinedVariable{Name: e.Value, Span: e.Span})
			return nil, false
		}
		ty, d := c.engine.Reconstruct(id)
		if d != nil {
			c.report(d)
			return nil, false
		}
		return &ast.TypedIdentifier{Value: e.Value, Type: ty, Span: e.Span}, true

	case *ast.NumberLiteral:
		return &ast.TypedNumberLiteral{
			Value: e.Value,
			Type:  typesystem.TNum{},
			Span:  e.Span,
		}, true

	case *ast.PrefixExpression:
		right, ok := c.checkExpression(e.Right)
		if !ok {
			return nil, false
		}

		rightID := c.engine.InsertType(right.ResolvedType(), right.GetSpan())
		rightTy, d := c.engine.Reconstruct(rightID)
		if d != nil {
			c.report(d)
			return nil, false
		}

		resultTy, applicable := typesystem.PrefixResult(e.Operator, rightTy)
		if !applicable {
			c.report(&diagnostics.CannotApplyUnaryOperator{
				Span: e.Span,
				Op:   e.Operator,
				Ty:   rightTy.String(),
			})
			return nil, false
		}

		return &ast.TypedPrefixExpression{
			Operator: e.Operator,
			Right:    right,
			Type:     resultTy,
			Span:     e.Span,
		}, true

	case *ast.InfixExpression:
		// Both operands are checked regardless of whether the first fails,
		// so independent operand errors surface together.
		left, leftOK := c.checkExpression(e.Left)
		right, rightOK := c.checkExpression(e.Right)
		if !leftOK || !rightOK {
			return nil, false
		}

		leftID := c.engine.InsertType(left.ResolvedType(), left.GetSpan())
		rightID := c.engine.InsertType(right.ResolvedType(), right.GetSpan())

		// Operands must have the same type; the language has no implicit
		// coercion.
		if d := c.engine.Unify(leftID, rightID); d != nil {
			c.report(d)
			return nil, false
		}

		leftTy, d := c.engine.Reconstruct(leftID)
		if d != nil {
			c.report(d)
			return nil, false
		}
		rightTy, d := c.engine.Reconstruct(rightID)
		if d != nil {
			c.report(d)
			return nil, false
		}

		resultTy, applicable := typesystem.InfixResult(leftTy, rightTy)
		if !applicable {
			c.report(&diagnostics.CannotApplyBinaryOperator{
				Span: e.Span,
				Op:   e.Operator,
				Ty1:  leftTy.String(),
				Ty2:  rightTy.String(),
			})
			return nil, false
		}

		return &ast.TypedInfixExpression{
			Operator: e.Operator,
			Left:     left,
			Right:    right,
			Type:     resultTy,
			Span:     e.Span,
		}, true

	default:
		c.report(&diagnostics.Custom{
			Span:    expr.GetSpan(),
			Message: "unsupported expression",
		})
		return nil, false
	}
}
