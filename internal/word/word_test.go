package word

import "testing"

func TestInternIdempotent(t *testing.T) {
	tbl := NewTable()
	a := tbl.Intern("foo")
	b := tbl.Intern("foo")
	if a != b {
		t.Fatalf("Intern not idempotent: %v != %v", a, b)
	}
	if tbl.Reveal(a) != "foo" {
		t.Fatalf("Reveal mismatch: %q", tbl.Reveal(a))
	}
}

func TestInternDense(t *testing.T) {
	tbl := NewTable()
	base := tbl.Len()
	tbl.Intern("alpha")
	tbl.Intern("beta")
	if got := tbl.Len(); got != base+2 {
		t.Fatalf("expected %d words, got %d", base+2, got)
	}
}

func TestKeywordsPreinterned(t *testing.T) {
	tbl := NewTable()
	k, ok := tbl.Keyword("module")
	if !ok {
		t.Fatal("expected 'module' to be a preinterned keyword")
	}
	if tbl.Reveal(k) != "module" {
		t.Fatalf("reveal mismatch for keyword key")
	}
	if _, ok := tbl.Keyword("notakeyword"); ok {
		t.Fatal("unexpected keyword hit for ordinary identifier")
	}
}

func TestRevealPanicsOnUnknownKey(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on unknown key")
		}
	}()
	tbl := NewTable()
	tbl.Reveal(Key(999999))
}
