package resolve

import (
	"testing"

	"nylac/internal/astree"
	"nylac/internal/diag"
	"nylac/internal/source"
	"nylac/internal/symtab"
	"nylac/internal/types"
	"nylac/internal/word"
)

func TestLoadImportsWithAlias(t *testing.T) {
	words := word.NewTable()
	ids := &symtab.ModuleIDGen{}

	dep := symtab.NewFileUnit(1, "geometry", words, ids)
	pointName := words.Intern("Point")
	depModule := &symtab.ModuleSymbol{NameKey: pointName}
	dep.Table.RegisterModule(depModule)

	unit := symtab.NewFileUnit(2, "main", words, ids)
	localName := words.Intern("Pt")
	unit.AddImport(&symtab.Import{
		Path:          "geometry",
		ModuleAliases: map[word.Key]word.Key{localName: pointName},
	})

	lookup := func(path string) (*symtab.FileUnit, bool) {
		if path == "geometry" {
			return dep, true
		}
		return nil, false
	}
	var b diag.Bag
	LoadImports(unit, lookup, &b)

	got, ok := unit.LoadedModules[localName]
	if !ok || got != depModule {
		t.Fatalf("expected alias %q to resolve to dependency module, got %+v ok=%v", "Pt", got, ok)
	}
}

func TestResolveTypeRefsReportsMissingModule(t *testing.T) {
	words := word.NewTable()
	ids := &symtab.ModuleIDGen{}
	unit := symtab.NewFileUnit(1, "main", words, ids)
	in := types.NewInterner()

	missingName := words.Intern("Ghost")
	fdID := in.MakeFDModule(uint32(unit.ID), missingName)

	m := &astree.ModuleDecl{
		NameKey: words.Intern("M"),
		Fields: []astree.FieldDecl{
			{NameKey: words.Intern("g"), Type: fdID, Span: source.Span{Unit: "main", StartLine: 1}},
		},
	}
	unit.Modules = append(unit.Modules, m)

	var b diag.Bag
	ResolveTypeRefs(unit, in, &b)
	if !b.HasErrors() || b.Items()[0].Code != diag.CouldNotFindModuleType {
		t.Fatalf("expected COULD_NOT_FIND_MODULE_TYPE, got %+v", b.Items())
	}
}

func TestResolveReturnsConcreteModuleType(t *testing.T) {
	words := word.NewTable()
	ids := &symtab.ModuleIDGen{}
	unit := symtab.NewFileUnit(1, "main", words, ids)
	in := types.NewInterner()

	pointName := words.Intern("Point")
	pointModule := &symtab.ModuleSymbol{NameKey: pointName}
	unit.Table.RegisterModule(pointModule)
	unit.LoadedModules[pointName] = pointModule

	fdID := in.MakeFDModule(uint32(unit.ID), pointName)
	var b diag.Bag
	resolveFD(unit, in, &b, fdID, source.Span{})
	if b.HasErrors() {
		t.Fatalf("unexpected errors: %+v", b.Items())
	}

	resolved := Resolve(unit, in, fdID)
	if in.Lookup(resolved).Kind != types.KindModule {
		t.Fatalf("expected resolved type to be KindModule, got %v", in.Lookup(resolved).Kind)
	}
	if in.Lookup(resolved).ModuleUniqueID != pointModule.UniqueID {
		t.Fatal("resolved module type does not carry the concrete module's unique id")
	}
}
