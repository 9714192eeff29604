package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"nylac/internal/diag"
	"nylac/internal/source"
)

// SourcePaths resolves a Span's Unit (an internal path, spec.md §6.4) back
// to the system path its source line can be read from, for context
// preview. internal/project.Program.SystemPath (given a looked-up unit)
// satisfies this once wrapped by the caller.
type SourcePaths func(internalPath string) (systemPath string, ok bool)

// Options configures Pretty's output.
type Options struct {
	Color          bool
	ShowContext    bool
	DisplaySources SourcePaths // nil disables context preview entirely
}

// Pretty renders every diagnostic in items to w as
// "<span>: <severity> <code>: <message>" (the span as source.Span.String
// renders it, e.g. "main:3:5-6"), optionally followed
// by one line of source context underlining the span, then any Notes in
// the same format — the format spec.md §7 calls "suitable for editor
// parsing", colorized the way the teacher's internal/diagfmt.Pretty does.
func Pretty(w io.Writer, items []diag.Diagnostic, opts Options) {
	colors := newPalette()
	prev := color.NoColor
	defer func() { color.NoColor = prev }()
	color.NoColor = !opts.Color

	for i, d := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printOne(w, d.Severity.String(), string(d.Code), d.Message, d.Span, opts, colors)
		for _, n := range d.Notes {
			printOne(w, "note", "", n.Message, n.Span, opts, colors)
		}
	}
}

type palette struct {
	severity  *color.Color
	path      *color.Color
	code      *color.Color
	line      *color.Color
	underline *color.Color
}

func newPalette() palette {
	return palette{
		severity:  color.New(color.FgRed, color.Bold),
		path:      color.New(color.FgWhite, color.Bold),
		code:      color.New(color.FgMagenta),
		line:      color.New(color.FgBlue),
		underline: color.New(color.FgRed, color.Bold),
	}
}

func printOne(w io.Writer, sev, code, message string, span source.Span, opts Options, colors palette) {
	header := fmt.Sprintf("%s: %s", colors.path.Sprint(span.String()), colors.severity.Sprint(sev))
	if code != "" {
		header += " " + colors.code.Sprint(code)
	}
	fmt.Fprintf(w, "%s: %s\n", header, message)

	if opts.ShowContext && opts.DisplaySources != nil {
		printContext(w, span, opts.DisplaySources, colors)
	}
}

// printContext prints the single source line the span starts on plus a
// `^~~~` underline beneath the span's columns, reading the file fresh each
// time (this repo keeps no cached file-content table — spec.md §1 puts
// file I/O out of the semantic layers' scope; report, the outermost layer,
// is the only place besides internal/project that touches disk, and only
// for display).
func printContext(w io.Writer, span source.Span, resolve SourcePaths, colors palette) {
	sysPath, ok := resolve(span.Unit)
	if !ok {
		return
	}
	f, err := os.Open(sysPath)
	if err != nil {
		return
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	lineNum := 0
	var lineText string
	found := false
	for sc.Scan() {
		lineNum++
		if lineNum == span.StartLine {
			lineText = sc.Text()
			found = true
			break
		}
	}
	if !found {
		return
	}

	gutter := fmt.Sprintf("%s | ", colors.line.Sprint(lineNum))
	fmt.Fprintf(w, "%s%s\n", gutter, lineText)

	startCol := span.StartCol
	if startCol < 1 {
		startCol = 1
	}
	endCol := span.EndCol
	if span.EndLine != span.StartLine || endCol <= startCol {
		endCol = startCol + 1
	}

	var underline strings.Builder
	for range len([]rune(fmt.Sprintf("%d | ", lineNum))) {
		underline.WriteByte(' ')
	}
	for i := 1; i < startCol; i++ {
		underline.WriteByte(' ')
	}
	underline.WriteByte('^')
	for i := startCol + 1; i < endCol; i++ {
		underline.WriteByte('~')
	}
	fmt.Fprintln(w, colors.underline.Sprint(underline.String()))
}
