// Package prettyprinter renders diagnostic reports as terminal output:
// a headline, caret-underlined source snippets for every labeled span, and
// trailing notes. It consumes report tuples only; line and column numbers
// are derived on demand from the source text, never stored on diagnostics.
package prettyprinter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/calyxlang/calyx/internal/config"
	"github.com/calyxlang/calyx/internal/diagnostics"
	"github.com/calyxlang/calyx/internal/token"
)

// Renderer writes reports for one source unit.
type Renderer struct {
	out    io.Writer
	file   string
	source string
	cfg    config.Config

	headline *color.Color
	yellow   *color.Color
	red      *color.Color
	dim      *color.Color

	lineStarts []int
}

// New builds a renderer for the given source unit. Styling is decided once,
// from the config and the kind of writer.
func New(out io.Writer, file, source string, cfg config.Config) *Renderer {
	r := &Renderer{
		out:      out,
		file:     file,
		source:   source,
		cfg:      cfg,
		headline: color.New(color.FgRed, color.Bold),
		yellow:   color.New(color.FgYellow),
		red:      color.New(color.FgRed),
		dim:      color.New(color.Faint),
	}
	// The color package disables itself globally on non-terminals, so both
	// branches are set explicitly.
	for _, c := range []*color.Color{r.headline, r.yellow, r.red, r.dim} {
		if useColor(out, cfg.Color) {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	r.lineStarts = indexLines(source)
	return r
}

func useColor(out io.Writer, mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Render writes every report of the diagnostic.
func (r *Renderer) Render(d diagnostics.Diagnostic) {
	for _, report := range d.MakeReport() {
		r.renderReport(report)
	}
}

func (r *Renderer) renderReport(report diagnostics.Report) {
	fmt.Fprintf(r.out, "%s %s\n", r.headline.Sprint("error:"), report.Headline)

	for _, label := range report.Labels {
		r.renderLabel(label)
	}
	for _, note := range report.Notes {
		fmt.Fprintf(r.out, "  %s %s\n", r.dim.Sprint("="), note)
	}
	fmt.Fprintln(r.out)
}

func (r *Renderer) renderLabel(label diagnostics.Label) {
	line, col := r.locate(label.Span.Start)
	fmt.Fprintf(r.out, "  %s %s:%d:%d\n", r.dim.Sprint("-->"), r.file, line, col)

	first := line - r.cfg.ContextLines
	if first < 1 {
		first = 1
	}
	last := line + r.cfg.ContextLines
	if last > len(r.lineStarts) {
		last = len(r.lineStarts)
	}

	width := digits(last)
	for n := first; n <= last; n++ {
		text := r.expand(r.lineText(n))
		fmt.Fprintf(r.out, "  %s %s\n", r.dim.Sprintf("%*d |", width, n), text)
		if n == line {
			r.renderCaret(label, width, n, col)
		}
	}
}

func (r *Renderer) renderCaret(label diagnostics.Label, width, line, col int) {
	text := r.lineText(line)
	carets := label.Span.Len()
	if max := len(text) - (col - 1); carets > max {
		carets = max
	}
	if carets < 1 {
		carets = 1
	}

	pad := r.expandWidth(text[:col-1])
	marker := strings.Repeat("^", carets)
	styled := r.style(label.Color).Sprint(marker)

	out := fmt.Sprintf("  %s %s%s", r.dim.Sprintf("%*s |", width, ""), strings.Repeat(" ", pad), styled)
	if label.Message != "" {
		out += " " + r.style(label.Color).Sprint(label.Message)
	}
	fmt.Fprintln(r.out, out)
}

func (r *Renderer) style(c diagnostics.Color) *color.Color {
	switch c {
	case diagnostics.ColorRed:
		return r.red
	default:
		return r.yellow
	}
}

// locate converts a byte offset to 1-based line and column. Offsets past
// the end of input point just past the last line.
func (r *Renderer) locate(offset int) (line, col int) {
	line = 1
	for i, start := range r.lineStarts {
		if start > offset {
			break
		}
		line = i + 1
	}
	return line, offset - r.lineStarts[line-1] + 1
}

// lineText returns the text of a 1-based line without its newline.
func (r *Renderer) lineText(n int) string {
	start := r.lineStarts[n-1]
	end := len(r.source)
	if n < len(r.lineStarts) {
		end = r.lineStarts[n] - 1
	}
	if end < start {
		end = start
	}
	return r.source[start:end]
}

func (r *Renderer) expand(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", r.cfg.TabWidth))
}

func (r *Renderer) expandWidth(s string) int {
	width := 0
	for _, ch := range s {
		if ch == '\t' {
			width += r.cfg.TabWidth
		} else {
			width++
		}
	}
	return width
}

// indexLines returns the byte offset of the start of every line.
func indexLines(source string) []int {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func digits(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}

// Spans returns the label spans of every report, in render order. Useful
// for callers that post-process diagnostics (tests, editors).
func Spans(d diagnostics.Diagnostic) []token.Span {
	var spans []token.Span
	for _, report := range d.MakeReport() {
		for _, label := range report.Labels {
			spans = append(spans, label.Span)
		}
	}
	return spans
}
