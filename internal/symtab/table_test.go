package symtab

import (
	"testing"

	"nylac/internal/diag"
	"nylac/internal/source"
	"nylac/internal/symref"
	"nylac/internal/types"
	"nylac/internal/word"
)

func newTestTable() (*Table, *word.Table) {
	words := word.NewTable()
	return NewTable(words, &ModuleIDGen{}), words
}

func TestDeclareLocalRedeclarationFails(t *testing.T) {
	tbl, words := newTestTable()
	scope := tbl.PushScope(symref.NoScope)
	name := words.Intern("x")
	var b diag.Bag
	ok1 := tbl.DeclareLocal(&b, scope, source.Span{}, name, &VariableSymbol{NameKey: name, Role: RoleLocal})
	ok2 := tbl.DeclareLocal(&b, scope, source.Span{}, name, &VariableSymbol{NameKey: name, Role: RoleLocal})
	if !ok1 {
		t.Fatal("first declaration should succeed")
	}
	if ok2 {
		t.Fatal("second declaration in the same scope should fail")
	}
	if !b.HasErrors() || b.Items()[0].Code != diag.VariableRedeclaration {
		t.Fatalf("expected VARIABLE_REDECLARATION, got %+v", b.Items())
	}
}

func TestLookupVariableClimbsScopes(t *testing.T) {
	tbl, words := newTestTable()
	outer := tbl.PushScope(symref.NoScope)
	inner := tbl.PushScope(outer)
	name := words.Intern("y")
	var b diag.Bag
	tbl.DeclareLocal(&b, outer, source.Span{}, name, &VariableSymbol{NameKey: name, Role: RoleLocal})

	if _, ok := tbl.LookupVariable(inner, name); !ok {
		t.Fatal("expected lookup from inner scope to find outer declaration")
	}
	back := tbl.PopScope(inner)
	if back != outer {
		t.Fatalf("PopScope should return the parent scope")
	}
}

func TestModuleUniqueIDsAreGloballyMonotonic(t *testing.T) {
	words := word.NewTable()
	ids := &ModuleIDGen{}
	t1 := NewTable(words, ids)
	t2 := NewTable(words, ids)

	m1 := &ModuleSymbol{NameKey: words.Intern("A")}
	m2 := &ModuleSymbol{NameKey: words.Intern("A")} // same source name, different unit
	t1.RegisterModule(m1)
	t2.RegisterModule(m2)

	if m1.UniqueID == m2.UniqueID {
		t.Fatal("modules with the same source name in different units must have distinct unique ids")
	}
}

func TestFunctionOverloadOrderPreserved(t *testing.T) {
	tbl, words := newTestTable()
	m := &ModuleSymbol{NameKey: words.Intern("M")}
	tbl.RegisterModule(m)
	name := words.Intern("f")
	fn1 := &FunctionSymbol{NameKey: name, ParamTypes: []types.TypeID{1}}
	fn2 := &FunctionSymbol{NameKey: name, ParamTypes: []types.TypeID{2}}
	tbl.RegisterFunction(m, fn1)
	tbl.RegisterFunction(m, fn2)

	set := tbl.FunctionsNamed(m, name)
	if len(set) != 2 || set[0] != fn1 || set[1] != fn2 {
		t.Fatal("expected overload set in declaration order")
	}
}

func TestPhasePrerequisites(t *testing.T) {
	if Prerequisite(Analyzed) != ImportsResolved {
		t.Fatalf("ANALYZED's prerequisite must be IMPORTS_RESOLVED, got %v", Prerequisite(Analyzed))
	}
	if Failed.AtLeast(Discovered) {
		t.Fatal("FAILED must not satisfy any forward prerequisite")
	}
	if !BodiesEmitted.AtLeast(BodyDeclsEmitted) {
		t.Fatal("BODIES_EMITTED must satisfy its own prerequisite chain")
	}
}
