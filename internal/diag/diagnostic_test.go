package diag

import (
	"testing"

	"nylac/internal/source"
)

func TestBagHasErrors(t *testing.T) {
	var b Bag
	if b.HasErrors() {
		t.Fatal("empty bag must not report errors")
	}
	New(&b, UndeclaredVariable, source.Span{Unit: "main", StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 2}, "undeclared variable 'x'").Emit()
	if !b.HasErrors() {
		t.Fatal("bag with an error diagnostic must report HasErrors")
	}
	if len(b.Items()) != 1 || b.Items()[0].Code != UndeclaredVariable {
		t.Fatalf("unexpected items: %+v", b.Items())
	}
}

func TestBuilderWithNote(t *testing.T) {
	var b Bag
	New(&b, VariableRedeclaration, source.Span{Unit: "m"}, "redeclared").
		WithNote("first declared here", source.Span{Unit: "m", StartLine: 1}).
		Emit()
	items := b.Items()
	if len(items[0].Notes) != 1 {
		t.Fatalf("expected one note, got %d", len(items[0].Notes))
	}
}
