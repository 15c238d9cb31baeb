package parser

import (
	"github.com/calyxlang/calyx/internal/diagnostics"
	"github.com/calyxlang/calyx/internal/pipeline"
	"github.com/calyxlang/calyx/internal/token"
)

// ParserProcessor parses ctx.TokenStream into ctx.Program, collecting
// syntax diagnostics into the context.
type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		// Should not happen when the lexer runs first, but as a safeguard:
		ctx.Errors = append(ctx.Errors, &diagnostics.Custom{
			Span:    token.Span{},
			Message: "parser: token stream is nil",
		})
		return ctx
	}

	p := New(ctx.TokenStream)
	program := p.ParseProgram()
	program.File = ctx.FilePath

	ctx.Errors = append(ctx.Errors, p.Errors()...)
	if len(p.Errors()) == 0 {
		ctx.Program = program
	}
	return ctx
}
