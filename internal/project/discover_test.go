package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("module M {}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDiscoverDerivesInternalPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.nyla"))
	writeFile(t, filepath.Join(dir, "geometry", "point.nyla"))
	writeFile(t, filepath.Join(dir, "notes.txt"))

	files, err := Discover([]string{dir})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 .nyla files discovered, got %d: %+v", len(files), files)
	}
	if files[0].InternalPath != "geometry/point" {
		t.Fatalf("expected sorted first entry 'geometry/point', got %q", files[0].InternalPath)
	}
	if files[1].InternalPath != "main" {
		t.Fatalf("expected second entry 'main', got %q", files[1].InternalPath)
	}
}

func TestDiscoverConflictingInternalPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "main.nyla"))
	writeFile(t, filepath.Join(dir, "b", "main.nyla"))

	// Both would collapse to internal path "main" if discovered from
	// directories "a" and "b" independently.
	_, err := Discover([]string{filepath.Join(dir, "a"), filepath.Join(dir, "b")})
	if err == nil {
		t.Fatalf("expected conflicting internal path error, got nil")
	}
}

func TestNewProgramBuildsOneUnitPerFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.nyla"))
	writeFile(t, filepath.Join(dir, "geometry", "point.nyla"))

	p, err := NewProgram([]string{dir})
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	units := p.Units()
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	if _, ok := p.Lookup("main"); !ok {
		t.Fatalf("expected Lookup(\"main\") to find a unit")
	}
	if _, ok := p.Lookup("geometry/point"); !ok {
		t.Fatalf("expected Lookup(\"geometry/point\") to find a unit")
	}
}
