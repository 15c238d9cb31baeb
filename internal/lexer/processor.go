package lexer

import (
	"github.com/calyxlang/calyx/internal/pipeline"
)

// LexerProcessor tokenizes ctx.Source into ctx.TokenStream.
type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.TokenStream = Tokenize(ctx.Source)
	return ctx
}
