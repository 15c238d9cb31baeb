package pipeline

import (
	"testing"

	"github.com/calyxlang/calyx/internal/diagnostics"
	"github.com/calyxlang/calyx/internal/token"
)

type recordingProcessor struct {
	name string
	log  *[]string
	err  diagnostics.Diagnostic
}

func (p *recordingProcessor) Process(ctx *PipelineContext) *PipelineContext {
	*p.log = append(*p.log, p.name)
	if p.err != nil {
		ctx.Errors = append(ctx.Errors, p.err)
	}
	return ctx
}

func TestStagesRunInOrder(t *testing.T) {
	var log []string
	p := New(
		&recordingProcessor{name: "first", log: &log},
		&recordingProcessor{name: "second", log: &log},
		&recordingProcessor{name: "third", log: &log},
	)

	p.Run(&PipelineContext{})

	want := []string{"first", "second", "third"}
	if len(log) != len(want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, log)
		}
	}
}

func TestLaterStagesRunAfterErrors(t *testing.T) {
	var log []string
	failing := &diagnostics.Custom{Span: token.Span{}, Message: "boom"}
	p := New(
		&recordingProcessor{name: "first", log: &log, err: failing},
		&recordingProcessor{name: "second", log: &log},
	)

	ctx := p.Run(&PipelineContext{})

	if len(log) != 2 {
		t.Fatalf("expected both stages to run, got %v", log)
	}
	if len(ctx.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(ctx.Errors))
	}
}

func TestDiagnosticFoldsErrors(t *testing.T) {
	ctx := &PipelineContext{}
	if ctx.Diagnostic() != nil {
		t.Fatal("expected nil diagnostic for a clean run")
	}

	ctx.Errors = append(ctx.Errors,
		&diagnostics.Custom{Message: "a"},
		&diagnostics.UndefinedVariable{Name: "x"},
	)
	d := ctx.Diagnostic()
	if d == nil {
		t.Fatal("expected a diagnostic")
	}
	if d.Code() != 2 {
		t.Fatalf("expected aggregate code 2, got %d", d.Code())
	}
}
