package analyzer

import (
	"github.com/calyxlang/calyx/internal/diagnostics"
	"github.com/calyxlang/calyx/internal/pipeline"
)

// CheckProcessor runs semantic analysis over ctx.Program. It skips itself
// when parsing produced no tree.
type CheckProcessor struct{}

func (cp *CheckProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Program == nil {
		return ctx
	}

	typed, d := New().Check(ctx.Program)
	if d != nil {
		if list, ok := d.(*diagnostics.List); ok {
			ctx.Errors = append(ctx.Errors, list.Diagnostics...)
		} else {
			ctx.Errors = append(ctx.Errors, d)
		}
		return ctx
	}
	ctx.Typed = typed
	return ctx
}
