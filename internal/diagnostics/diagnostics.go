package diagnostics

import (
	"fmt"
	"strings"

	"github.com/calyxlang/calyx/internal/token"
)

// Color is a presentation hint attached to a report label. The renderer
// decides how (and whether) to realize it on the terminal.
type Color int

const (
	ColorDefault Color = iota
	ColorYellow
	ColorRed
)

// Label points at a span of source with a short message.
type Label struct {
	Message string
	Color   Color
	Span    token.Span
}

// Report is one fully rendered-able diagnostic: a headline, any number of
// labeled spans, and trailing notes. Reports carry everything needed to
// display the diagnostic; no checker or engine state is consulted again.
type Report struct {
	Headline string
	Labels   []Label
	Notes    []string
}

// Diagnostic is a structured front-end error. Every variant is a value
// holding its own span and type snapshots.
type Diagnostic interface {
	error
	// Code is the numeric category used to derive the process exit status.
	Code() int
	// MakeReport yields one report per leaf diagnostic, aggregates flattened
	// in depth-first, left-to-right order.
	MakeReport() []Report
}

// UndefinedVariable reports a reference to a name with no enclosing binding.
type UndefinedVariable struct {
	Name string
	Span token.Span
}

func (d *UndefinedVariable) Error() string {
	return fmt.Sprintf("undefined variable '%s'", d.Name)
}

func (d *UndefinedVariable) Code() int { return 2 }

func (d *UndefinedVariable) MakeReport() []Report {
	return []Report{{
		Headline: fmt.Sprintf("Undefined variable '%s'", d.Name),
		Labels: []Label{
			{Message: "not found in this scope", Color: ColorYellow, Span: d.Span},
		},
	}}
}

// CannotInferType reports an under-constrained expression whose type slot
// chain terminated in an unresolved marker.
type CannotInferType struct {
	Span token.Span
}

func (d *CannotInferType) Error() string { return "cannot infer type" }

func (d *CannotInferType) Code() int { return 3 }

func (d *CannotInferType) MakeReport() []Report {
	return []Report{{
		Headline: "Cannot infer type",
		Labels: []Label{
			{Message: "Cannot infer the type of this expression", Color: ColorYellow, Span: d.Span},
		},
		Notes: []string{"help: try adding a type annotation"},
	}}
}

// TypeMismatch reports a failed unification of two concrete types. It keeps
// both original spans and stringified type snapshots.
type TypeMismatch struct {
	Span1 token.Span
	Span2 token.Span
	Ty1   string
	Ty2   string
}

func (d *TypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: '%s' vs '%s'", d.Ty1, d.Ty2)
}

func (d *TypeMismatch) Code() int { return 4 }

func (d *TypeMismatch) MakeReport() []Report {
	return []Report{{
		Headline: "Type mismatch",
		Labels: []Label{
			{Message: fmt.Sprintf("Type '%s' here", d.Ty1), Color: ColorYellow, Span: d.Span1},
			{Message: fmt.Sprintf("Type '%s' here", d.Ty2), Color: ColorYellow, Span: d.Span2},
		},
	}}
}

// CannotApplyUnaryOperator reports a prefix operator applied to a type
// outside its applicability table.
type CannotApplyUnaryOperator struct {
	Span token.Span
	Op   string
	Ty   string
}

func (d *CannotApplyUnaryOperator) Error() string {
	return fmt.Sprintf("cannot apply operator '%s' to type '%s'", d.Op, d.Ty)
}

func (d *CannotApplyUnaryOperator) Code() int { return 5 }

func (d *CannotApplyUnaryOperator) MakeReport() []Report {
	return []Report{{
		Headline: fmt.Sprintf("Cannot apply operator '%s' to type '%s'", d.Op, d.Ty),
		Labels: []Label{
			{
				Message: fmt.Sprintf("Cannot apply this operator to type '%s'", d.Ty),
				Color:   ColorYellow,
				Span:    d.Span,
			},
		},
	}}
}

// CannotApplyBinaryOperator reports a binary operator applied to a type
// combination outside its applicability table.
type CannotApplyBinaryOperator struct {
	Span token.Span
	Op   string
	Ty1  string
	Ty2  string
}

func (d *CannotApplyBinaryOperator) Error() string {
	return fmt.Sprintf("cannot apply binary operator '%s' to types '%s' and '%s'", d.Op, d.Ty1, d.Ty2)
}

func (d *CannotApplyBinaryOperator) Code() int { return 6 }

func (d *CannotApplyBinaryOperator) MakeReport() []Report {
	return []Report{{
		Headline: fmt.Sprintf("Cannot apply binary operator '%s' to types '%s' and '%s'", d.Op, d.Ty1, d.Ty2),
		Labels: []Label{
			{
				Message: fmt.Sprintf("Cannot apply this operator to types '%s' and '%s'", d.Ty1, d.Ty2),
				Color:   ColorYellow,
				Span:    d.Span,
			},
		},
	}}
}

// ExpectedFound is a syntactic diagnostic from the parser boundary: the
// token classes that would have been valid, and what was found instead.
// An empty Found means end of input.
type ExpectedFound struct {
	Span     token.Span
	Expected []string
	Found    string
}

func (d *ExpectedFound) Error() string {
	found := d.Found
	if found == "" {
		found = "eof"
	}
	return fmt.Sprintf("expected %s, found '%s'", d.expectedList(), found)
}

func (d *ExpectedFound) Code() int { return 1 }

func (d *ExpectedFound) expectedList() string {
	if len(d.Expected) == 0 {
		return "something else"
	}
	return strings.Join(d.Expected, ", ")
}

func (d *ExpectedFound) MakeReport() []Report {
	headline := "Unexpected token in input"
	found := d.Found
	if found == "" {
		headline = "Unexpected end of input"
		found = "eof"
	}
	return []Report{{
		Headline: fmt.Sprintf("%s, expected %s", headline, d.expectedList()),
		Labels: []Label{
			{Message: fmt.Sprintf("Unexpected token '%s'", found), Color: ColorYellow, Span: d.Span},
		},
	}}
}

// Custom is a free-form diagnostic with a single span.
type Custom struct {
	Span    token.Span
	Message string
}

func (d *Custom) Error() string { return d.Message }

func (d *Custom) Code() int { return 0 }

func (d *Custom) MakeReport() []Report {
	return []Report{{
		Headline: d.Message,
		Labels: []Label{
			{Color: ColorYellow, Span: d.Span},
		},
	}}
}

// List aggregates any number of diagnostics. Its report is exactly the
// concatenation of its members' reports, in order, and its code is the
// maximum code among members (0 when empty).
type List struct {
	Diagnostics []Diagnostic
}

func (d *List) Error() string {
	msgs := make([]string, 0, len(d.Diagnostics))
	for _, sub := range d.Diagnostics {
		msgs = append(msgs, sub.Error())
	}
	return strings.Join(msgs, "; ")
}

func (d *List) Code() int {
	code := 0
	for _, sub := range d.Diagnostics {
		if c := sub.Code(); c > code {
			code = c
		}
	}
	return code
}

func (d *List) MakeReport() []Report {
	var reports []Report
	for _, sub := range d.Diagnostics {
		reports = append(reports, sub.MakeReport()...)
	}
	return reports
}

// Combine folds a slice of diagnostics into a single value: nil when empty,
// the sole element when there is one, a List otherwise. Nested lists are
// kept as-is; MakeReport flattens them depth-first anyway.
func Combine(diags []Diagnostic) Diagnostic {
	switch len(diags) {
	case 0:
		return nil
	case 1:
		return diags[0]
	default:
		return &List{Diagnostics: diags}
	}
}
