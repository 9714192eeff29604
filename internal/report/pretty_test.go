package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nylac/internal/diag"
	"nylac/internal/source"
)

func TestPrettyRendersHeaderAndMessage(t *testing.T) {
	var buf bytes.Buffer
	items := []diag.Diagnostic{
		{
			Code:     diag.UndeclaredVariable,
			Severity: diag.SeverityError,
			Message:  "undeclared variable 'x'",
			Span:     source.Span{Unit: "main", StartLine: 3, StartCol: 5, EndLine: 3, EndCol: 6},
		},
	}

	Pretty(&buf, items, Options{Color: false})

	out := buf.String()
	if !strings.Contains(out, "main:3:5-6") {
		t.Fatalf("expected span in output, got %q", out)
	}
	if !strings.Contains(out, "error") {
		t.Fatalf("expected severity in output, got %q", out)
	}
	if !strings.Contains(out, "UNDECLARED_VARIABLE") {
		t.Fatalf("expected code in output, got %q", out)
	}
	if !strings.Contains(out, "undeclared variable 'x'") {
		t.Fatalf("expected message in output, got %q", out)
	}
}

func TestPrettyRendersNotes(t *testing.T) {
	var buf bytes.Buffer
	items := []diag.Diagnostic{
		{
			Code:     diag.VariableRedeclaration,
			Severity: diag.SeverityError,
			Message:  "variable 'x' redeclared",
			Span:     source.Span{Unit: "main", StartLine: 5, StartCol: 1, EndLine: 5, EndCol: 2},
			Notes: []diag.Note{
				{Message: "first declared here", Span: source.Span{Unit: "main", StartLine: 2, StartCol: 1, EndLine: 2, EndCol: 2}},
			},
		},
	}

	Pretty(&buf, items, Options{Color: false})

	out := buf.String()
	if !strings.Contains(out, "note") {
		t.Fatalf("expected note severity in output, got %q", out)
	}
	if !strings.Contains(out, "first declared here") {
		t.Fatalf("expected note message in output, got %q", out)
	}
}

func TestPrettyShowsSourceContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.nyla")
	if err := os.WriteFile(path, []byte("module M {\n  func f() { y; }\n}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var buf bytes.Buffer
	items := []diag.Diagnostic{
		{
			Code:     diag.UndeclaredVariable,
			Severity: diag.SeverityError,
			Message:  "undeclared variable 'y'",
			Span:     source.Span{Unit: "main", StartLine: 2, StartCol: 14, EndLine: 2, EndCol: 15},
		},
	}

	Pretty(&buf, items, Options{
		Color:       false,
		ShowContext: true,
		DisplaySources: func(unit string) (string, bool) {
			if unit == "main" {
				return path, true
			}
			return "", false
		},
	})

	out := buf.String()
	if !strings.Contains(out, "func f() { y; }") {
		t.Fatalf("expected source line in output, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected underline caret in output, got %q", out)
	}
}
