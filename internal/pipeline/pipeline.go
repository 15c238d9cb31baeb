package pipeline

import (
	"github.com/calyxlang/calyx/internal/ast"
	"github.com/calyxlang/calyx/internal/diagnostics"
	"github.com/calyxlang/calyx/internal/token"
)

// PipelineContext carries the artifacts of one source unit through the
// stages: source text in, tokens, AST, typed tree and diagnostics out.
type PipelineContext struct {
	FilePath    string
	Source      string
	TokenStream []token.Token
	Program     *ast.Program
	Typed       *ast.TypedProgram
	Errors      []diagnostics.Diagnostic
}

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors so every stage gets to contribute its
		// diagnostics; stages that cannot run without their input skip
		// themselves.
	}
	return ctx
}

// Diagnostic folds the collected errors into a single value (nil when the
// run was clean).
func (ctx *PipelineContext) Diagnostic() diagnostics.Diagnostic {
	return diagnostics.Combine(ctx.Errors)
}
