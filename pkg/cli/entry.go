// Package cli implements the calyx command line front end: read a source
// file, run it through the lexer/parser/checker pipeline, render any
// diagnostics, and derive the exit status from the worst diagnostic code.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/calyxlang/calyx/internal/analyzer"
	"github.com/calyxlang/calyx/internal/config"
	"github.com/calyxlang/calyx/internal/lexer"
	"github.com/calyxlang/calyx/internal/parser"
	"github.com/calyxlang/calyx/internal/pipeline"
	"github.com/calyxlang/calyx/internal/prettyprinter"
)

// Run executes the CLI with the given arguments and returns the process
// exit code: 0 on a clean check, otherwise the aggregate diagnostic code.
func Run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("calyx", flag.ContinueOnError)
	flags.SetOutput(stderr)
	noColor := flags.Bool("no-color", false, "disable colored diagnostics")
	configPath := flags.String("config", config.DefaultFileName, "path to the config file")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: calyx [flags] FILE\n\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return 1
	}
	path := flags.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "calyx: %s\n", err)
		return 1
	}
	if *noColor {
		cfg.Color = config.ColorNever
	}

	if !isSourceFile(path) {
		fmt.Fprintf(stderr, "calyx: warning: %s does not look like a source file (expected %s)\n",
			path, strings.Join(config.SourceFileExtensions, " or "))
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "calyx: %s\n", err)
		return 1
	}

	return Check(path, string(source), cfg, stdout, stderr)
}

// Check runs the front-end pipeline over one source unit and renders its
// diagnostics to stderr.
func Check(path, source string, cfg config.Config, stdout, stderr io.Writer) int {
	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.CheckProcessor{},
	)

	ctx := p.Run(&pipeline.PipelineContext{
		FilePath: path,
		Source:   source,
	})

	if d := ctx.Diagnostic(); d != nil {
		prettyprinter.New(stderr, path, source, cfg).Render(d)
		return exitCode(d.Code())
	}

	fmt.Fprintf(stdout, "%s: ok\n", path)
	return 0
}

// exitCode maps a diagnostic code onto a process exit status. Codes start
// at 0 (custom messages), so a failed check still exits nonzero.
func exitCode(code int) int {
	if code < 1 {
		return 1
	}
	return code
}

func isSourceFile(path string) bool {
	ext := filepath.Ext(path)
	for _, known := range config.SourceFileExtensions {
		if ext == known {
			return true
		}
	}
	return false
}
