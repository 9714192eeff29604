package orchestrator

import (
	"os"
	"path/filepath"
	"testing"

	"nylac/internal/astree"
	"nylac/internal/backend"
	"nylac/internal/project"
	"nylac/internal/symtab"
	"nylac/internal/types"
	"nylac/internal/word"
)

// fakeBackend is a minimal backend.Backend double: every call returns a
// freshly incremented handle and records nothing beyond a call count,
// enough to exercise internal/lower's driver without a real IR backend
// (which is an external collaborator out of scope, spec.md §1).
type fakeBackend struct{ seq uint32 }

func (f *fakeBackend) next() uint32 { f.seq++; return f.seq }

func (f *fakeBackend) DeclareStruct(string, []backend.TypeHandle) backend.TypeHandle {
	return backend.TypeHandle(f.next())
}
func (f *fakeBackend) ScalarType(uint32, bool, bool) backend.TypeHandle { return backend.TypeHandle(f.next()) }
func (f *fakeBackend) PointerType(backend.TypeHandle) backend.TypeHandle { return backend.TypeHandle(f.next()) }
func (f *fakeBackend) VoidType() backend.TypeHandle                     { return backend.TypeHandle(f.next()) }
func (f *fakeBackend) BoolType() backend.TypeHandle                     { return backend.TypeHandle(f.next()) }
func (f *fakeBackend) DeclareFunc(string, backend.TypeHandle, []backend.TypeHandle, backend.Linkage) backend.FuncHandle {
	return backend.FuncHandle(f.next())
}
func (f *fakeBackend) DeclareGlobal(string, backend.TypeHandle, backend.Value) backend.GlobalHandle {
	return backend.GlobalHandle(f.next())
}
func (f *fakeBackend) ConstZero(backend.TypeHandle) backend.Value           { return backend.Value(f.next()) }
func (f *fakeBackend) ConstInt(backend.TypeHandle, uint64) backend.Value    { return backend.Value(f.next()) }
func (f *fakeBackend) ConstFloat(backend.TypeHandle, uint64) backend.Value  { return backend.Value(f.next()) }
func (f *fakeBackend) ConstAggregate(backend.TypeHandle, []backend.Value) backend.Value {
	return backend.Value(f.next())
}
func (f *fakeBackend) GlobalAddr(backend.GlobalHandle) backend.Value { return backend.Value(f.next()) }
func (f *fakeBackend) CreateBlock(backend.FuncHandle, string) backend.BlockHandle {
	return backend.BlockHandle(f.next())
}
func (f *fakeBackend) SetInsertPoint(backend.BlockHandle)                {}
func (f *fakeBackend) Br(backend.BlockHandle)                            {}
func (f *fakeBackend) CondBr(backend.Value, backend.BlockHandle, backend.BlockHandle) {}
func (f *fakeBackend) Ret(backend.Value)                                 {}
func (f *fakeBackend) RetVoid()                                          {}
func (f *fakeBackend) BinaryOp(backend.BinOp, backend.Value, backend.Value) backend.Value {
	return backend.Value(f.next())
}
func (f *fakeBackend) Neg(backend.Value) backend.Value { return backend.Value(f.next()) }
func (f *fakeBackend) Not(backend.Value) backend.Value { return backend.Value(f.next()) }
func (f *fakeBackend) Convert(backend.ConvOp, backend.Value, backend.TypeHandle) backend.Value {
	return backend.Value(f.next())
}
func (f *fakeBackend) Alloca(backend.TypeHandle) backend.Value        { return backend.Value(f.next()) }
func (f *fakeBackend) Load(backend.TypeHandle, backend.Value) backend.Value { return backend.Value(f.next()) }
func (f *fakeBackend) Store(backend.Value, backend.Value)             {}
func (f *fakeBackend) GEP(backend.TypeHandle, backend.Value, backend.Value) backend.Value {
	return backend.Value(f.next())
}
func (f *fakeBackend) StructGEP(backend.TypeHandle, backend.Value, int) backend.Value {
	return backend.Value(f.next())
}
func (f *fakeBackend) Memcpy(backend.Value, backend.Value, uint32) {}
func (f *fakeBackend) Memset(backend.Value, uint8, uint32)         {}
func (f *fakeBackend) Param(backend.FuncHandle, int) backend.Value { return backend.Value(f.next()) }
func (f *fakeBackend) Call(backend.FuncHandle, []backend.Value) backend.Value {
	return backend.Value(f.next())
}
func (f *fakeBackend) FoldConstantInt(backend.Value) (int64, bool) { return 0, false }

// fixtureParser ignores src and installs a hand-built fixture keyed by
// unit.Path, the same way internal/resolve's tests build units by hand
// instead of invoking a real parser (out of scope, spec.md §1).
type fixtureParser struct {
	build map[string]func(unit *symtab.FileUnit)
}

func (p *fixtureParser) Parse(unit *symtab.FileUnit, src []byte) error {
	if build, ok := p.build[unit.Path]; ok {
		build(unit)
	}
	return nil
}

func mainWithEmptyEntrypoint(words *word.Table, in *types.Interner) func(*symtab.FileUnit) {
	return func(unit *symtab.FileUnit) {
		body := unit.Arena.Alloc(astree.Node{Kind: astree.KindBlock})
		fn := astree.FuncDecl{
			NameKey:      words.Intern("main"),
			ReturnType:   in.Primitive(types.KindVoid),
			Body:         body,
			IsEntrypoint: true,
		}
		unit.Modules = append(unit.Modules, &astree.ModuleDecl{
			NameKey:   words.Intern("Program"),
			Functions: []astree.FuncDecl{fn},
		})
	}
}

func writeSrc(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("module Program { func main() {} }\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestRunDrivesMainUnitToBodiesEmitted(t *testing.T) {
	dir := t.TempDir()
	writeSrc(t, filepath.Join(dir, "main.nyla"))

	p, err := project.NewProgram([]string{dir})
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}

	o := New(p, &fakeBackend{}, 0)
	parser := &fixtureParser{build: map[string]func(*symtab.FileUnit){
		"main": mainWithEmptyEntrypoint(p.Words, p.Types),
	}}

	ok, err := o.Run(parser, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !ok {
		t.Fatalf("expected Run to succeed, diagnostics: %+v", o.Diags.Items())
	}

	unit, _ := p.Lookup("main")
	if unit.Phase != symtab.BodiesEmitted {
		t.Fatalf("expected main unit to reach BODIES_EMITTED, got %s", unit.Phase)
	}
}

func TestRunReportsMainFunctionNotFound(t *testing.T) {
	dir := t.TempDir()
	writeSrc(t, filepath.Join(dir, "main.nyla"))

	p, err := project.NewProgram([]string{dir})
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}

	o := New(p, &fakeBackend{}, 0)
	// No fixture installed: Parse leaves unit.Modules empty, so no
	// function anywhere is marked as the program entry.
	parser := &fixtureParser{build: map[string]func(*symtab.FileUnit){}}

	ok, err := o.Run(parser, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ok {
		t.Fatalf("expected Run to fail with no entrypoint present")
	}
	found := false
	for _, d := range o.Diags.Items() {
		if d.Code == "MAIN_FUNCTION_NOT_FOUND" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected MAIN_FUNCTION_NOT_FOUND diagnostic, got %+v", o.Diags.Items())
	}
}
