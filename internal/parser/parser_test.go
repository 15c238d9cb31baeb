package parser

import (
	"strings"
	"testing"

	"github.com/calyxlang/calyx/internal/ast"
	"github.com/calyxlang/calyx/internal/diagnostics"
	"github.com/calyxlang/calyx/internal/lexer"
	"github.com/calyxlang/calyx/internal/token"
)

func parseWithErrors(input string) (*ast.Program, []diagnostics.Diagnostic) {
	p := New(lexer.Tokenize(input))
	program := p.ParseProgram()
	return program, p.Errors()
}

// parseProgram parses input and fails the test on any syntax error.
func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	program, errs := parseWithErrors(input)
	if len(errs) > 0 {
		var msgs []string
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		t.Fatalf("unexpected parse errors:\n%s\ninput: %s", strings.Join(msgs, "\n"), input)
	}
	return program
}

// expectParseError asserts at least one diagnostic of the wanted shape.
func expectParseError(t *testing.T, input string) []diagnostics.Diagnostic {
	t.Helper()
	_, errs := parseWithErrors(input)
	if len(errs) == 0 {
		t.Fatalf("expected parse errors, got none\ninput: %s", input)
	}
	return errs
}

func TestLetStatement(t *testing.T) {
	program := parseProgram(t, "let x = 5")

	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ast.LetStatement)
	if !ok {
		t.Fatalf("expected *ast.LetStatement, got %T", program.Statements[0])
	}
	if stmt.Name.Value != "x" {
		t.Errorf("expected name 'x', got %q", stmt.Name.Value)
	}
	lit, ok := stmt.Value.(*ast.NumberLiteral)
	if !ok {
		t.Fatalf("expected *ast.NumberLiteral, got %T", stmt.Value)
	}
	if lit.Value != 5 {
		t.Errorf("expected value 5, got %v", lit.Value)
	}
}

func TestPrintStatement(t *testing.T) {
	program := parseProgram(t, "print 1 + 2")

	stmt, ok := program.Statements[0].(*ast.PrintStatement)
	if !ok {
		t.Fatalf("expected *ast.PrintStatement, got %T", program.Statements[0])
	}
	if _, ok := stmt.Value.(*ast.InfixExpression); !ok {
		t.Fatalf("expected *ast.InfixExpression, got %T", stmt.Value)
	}
}

func TestBlockStatement(t *testing.T) {
	program := parseProgram(t, "{ let x = 1\n print x }")

	block, ok := program.Statements[0].(*ast.BlockStatement)
	if !ok {
		t.Fatalf("expected *ast.BlockStatement, got %T", program.Statements[0])
	}
	if len(block.Statements) != 2 {
		t.Fatalf("expected 2 statements in block, got %d", len(block.Statements))
	}
}

func TestStatementSeparators(t *testing.T) {
	for _, input := range []string{
		"let x = 1\nlet y = 2\nprint x + y",
		"let x = 1; let y = 2; print x + y",
		"\n\nlet x = 1;;\n;let y = 2\n\nprint x + y\n",
	} {
		program := parseProgram(t, input)
		if len(program.Statements) != 3 {
			t.Errorf("input %q: expected 3 statements, got %d", input, len(program.Statements))
		}
	}
}

func TestOperatorPrecedence(t *testing.T) {
	// 1 + 2 * 3 parses as 1 + (2 * 3)
	program := parseProgram(t, "1 + 2 * 3")

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	add, ok := stmt.Expression.(*ast.InfixExpression)
	if !ok || add.Operator != "+" {
		t.Fatalf("expected top-level '+', got %T", stmt.Expression)
	}
	mul, ok := add.Right.(*ast.InfixExpression)
	if !ok || mul.Operator != "*" {
		t.Fatalf("expected right operand '*', got %T", add.Right)
	}
}

func TestLeftAssociativity(t *testing.T) {
	// 1 - 2 - 3 parses as (1 - 2) - 3
	program := parseProgram(t, "1 - 2 - 3")

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	outer := stmt.Expression.(*ast.InfixExpression)
	if outer.Operator != "-" {
		t.Fatalf("expected '-', got %q", outer.Operator)
	}
	if _, ok := outer.Left.(*ast.InfixExpression); !ok {
		t.Fatalf("expected nested infix on the left, got %T", outer.Left)
	}
	if _, ok := outer.Right.(*ast.NumberLiteral); !ok {
		t.Fatalf("expected literal on the right, got %T", outer.Right)
	}
}

func TestGroupingOverridesPrecedence(t *testing.T) {
	// (1 + 2) * 3 parses as (1 + 2) * 3
	program := parseProgram(t, "(1 + 2) * 3")

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	mul := stmt.Expression.(*ast.InfixExpression)
	if mul.Operator != "*" {
		t.Fatalf("expected top-level '*', got %q", mul.Operator)
	}
	if _, ok := mul.Left.(*ast.InfixExpression); !ok {
		t.Fatalf("expected nested infix on the left, got %T", mul.Left)
	}
}

func TestPrefixExpression(t *testing.T) {
	program := parseProgram(t, "print -x * 2")

	stmt := program.Statements[0].(*ast.PrintStatement)
	mul := stmt.Value.(*ast.InfixExpression)
	prefix, ok := mul.Left.(*ast.PrefixExpression)
	if !ok {
		t.Fatalf("expected *ast.PrefixExpression, got %T", mul.Left)
	}
	if prefix.Operator != "-" {
		t.Errorf("expected operator '-', got %q", prefix.Operator)
	}
}

func TestNodeSpans(t *testing.T) {
	input := "let x = 1 + 2"
	program := parseProgram(t, input)

	stmt := program.Statements[0].(*ast.LetStatement)
	if stmt.Span != (token.Span{Start: 0, End: len(input)}) {
		t.Errorf("let span: got [%d,%d)", stmt.Span.Start, stmt.Span.End)
	}
	if stmt.Name.Span != (token.Span{Start: 4, End: 5}) {
		t.Errorf("name span: got [%d,%d)", stmt.Name.Span.Start, stmt.Name.Span.End)
	}
	value := stmt.Value.(*ast.InfixExpression)
	if value.Span != (token.Span{Start: 8, End: 13}) {
		t.Errorf("value span: got [%d,%d)", value.Span.Start, value.Span.End)
	}
	if left := value.Left.GetSpan(); left != (token.Span{Start: 8, End: 9}) {
		t.Errorf("left span: got [%d,%d)", left.Start, left.End)
	}
	if right := value.Right.GetSpan(); right != (token.Span{Start: 12, End: 13}) {
		t.Errorf("right span: got [%d,%d)", right.Start, right.End)
	}
}

func TestLetMissingIdentifier(t *testing.T) {
	errs := expectParseError(t, "let = 5")

	ef, ok := errs[0].(*diagnostics.ExpectedFound)
	if !ok {
		t.Fatalf("expected *diagnostics.ExpectedFound, got %T", errs[0])
	}
	if ef.Expected[0] != "identifier" {
		t.Errorf("expected 'identifier', got %q", ef.Expected[0])
	}
	if ef.Found != "=" {
		t.Errorf("expected found '=', got %q", ef.Found)
	}
}

func TestLetMissingAssign(t *testing.T) {
	errs := expectParseError(t, "let x 5")
	ef, ok := errs[0].(*diagnostics.ExpectedFound)
	if !ok {
		t.Fatalf("expected *diagnostics.ExpectedFound, got %T", errs[0])
	}
	if ef.Expected[0] != "'='" {
		t.Errorf("expected \"'='\", got %q", ef.Expected[0])
	}
}

func TestUnclosedParen(t *testing.T) {
	errs := expectParseError(t, "print (1 + 2")
	ef, ok := errs[0].(*diagnostics.ExpectedFound)
	if !ok {
		t.Fatalf("expected *diagnostics.ExpectedFound, got %T", errs[0])
	}
	if ef.Found != "" {
		t.Errorf("expected eof marker, got %q", ef.Found)
	}
}

func TestUnclosedBlock(t *testing.T) {
	errs := expectParseError(t, "{ let x = 1")
	ef, ok := errs[0].(*diagnostics.ExpectedFound)
	if !ok {
		t.Fatalf("expected *diagnostics.ExpectedFound, got %T", errs[0])
	}
	if ef.Expected[0] != "'}'" {
		t.Errorf("expected \"'}'\", got %q", ef.Expected[0])
	}
}

func TestMissingExpression(t *testing.T) {
	errs := expectParseError(t, "let x = ;")
	if _, ok := errs[0].(*diagnostics.ExpectedFound); !ok {
		t.Fatalf("expected *diagnostics.ExpectedFound, got %T", errs[0])
	}
}

func TestRecoveryAcrossStatements(t *testing.T) {
	// The bad first statement must not hide the good ones after it.
	program, errs := parseWithErrors("let = 1\nlet y = 2\nprint y")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if len(program.Statements) != 2 {
		t.Fatalf("expected 2 recovered statements, got %d", len(program.Statements))
	}
}

func TestMissingStatementSeparator(t *testing.T) {
	_, errs := parseWithErrors("let x = 1 let y = 2")
	if len(errs) == 0 {
		t.Fatal("expected an error for missing statement separator")
	}
	ef, ok := errs[0].(*diagnostics.ExpectedFound)
	if !ok {
		t.Fatalf("expected *diagnostics.ExpectedFound, got %T", errs[0])
	}
	if ef.Expected[0] != "end of statement" {
		t.Errorf("expected 'end of statement', got %q", ef.Expected[0])
	}
}

func TestErrorSpanPointsAtOffendingToken(t *testing.T) {
	input := "let x = )"
	errs := expectParseError(t, input)
	ef := errs[0].(*diagnostics.ExpectedFound)
	want := token.Span{Start: strings.Index(input, ")"), End: strings.Index(input, ")") + 1}
	if ef.Span != want {
		t.Errorf("error span: expected [%d,%d), got [%d,%d)", want.Start, want.End, ef.Span.Start, ef.Span.End)
	}
}
