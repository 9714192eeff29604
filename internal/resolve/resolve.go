// Package resolve implements name & import resolution (spec.md §4.3): it
// runs after parsing and before analysis, loading each import's top-level
// module symbols into the unit's loaded_modules table and resolving
// forward-declared module type references against it.
package resolve

import (
	"fmt"

	"nylac/internal/diag"
	"nylac/internal/source"
	"nylac/internal/symtab"
	"nylac/internal/types"
	"nylac/internal/word"
)

// UnitLookup resolves a dependency's internal path to its FileUnit. The
// orchestrator supplies internal/project's Program.Lookup; resolve has no file
// discovery of its own (out of scope, spec.md §1).
type UnitLookup func(internalPath string) (*symtab.FileUnit, bool)

// LoadImports loads every import target's top-level module symbols into
// unit.LoadedModules under their alias (default: original name), per
// spec.md §4.3. It also makes the unit's own modules visible to itself
// under their own names.
func LoadImports(unit *symtab.FileUnit, lookup UnitLookup, r diag.Reporter) {
	for _, m := range unit.Table.Modules() {
		unit.LoadedModules[m.NameKey] = m
	}

	for _, imp := range unit.OrderedImports {
		dep, ok := lookup(imp.Path)
		if !ok {
			// Structural: the project graph should have already reported
			// a missing dependency; resolution does not duplicate that
			// diagnostic, it simply has nothing to load.
			continue
		}
		reverseAlias := make(map[word.Key]word.Key, len(imp.ModuleAliases))
		for local, remote := range imp.ModuleAliases {
			reverseAlias[remote] = local
		}
		for _, m := range dep.Table.Modules() {
			localName := m.NameKey
			if alias, ok := reverseAlias[m.NameKey]; ok {
				localName = alias
			}
			unit.LoadedModules[localName] = m
		}
	}
}

// ResolveTypeRefs resolves every forward-declared module type reference
// reachable from unit's field, parameter, and return-type declarations
// against unit.LoadedModules, recording the result in
// unit.FDResolutions. Unresolved names are reported as
// ERR_COULD_NOT_FIND_MODULE_TYPE at the declaration's span (spec.md §4.3).
func ResolveTypeRefs(unit *symtab.FileUnit, in *types.Interner, r diag.Reporter) {
	resolveOne := func(id types.TypeID, span source.Span) {
		resolveFD(unit, in, r, id, span)
	}

	for _, mod := range unit.Modules {
		for i := range mod.Fields {
			f := &mod.Fields[i]
			resolveOne(f.Type, f.Span)
		}
		for i := range mod.Functions {
			fn := &mod.Functions[i]
			resolveOne(fn.ReturnType, fn.Span)
			for j := range fn.Params {
				resolveOne(fn.Params[j].Type, fn.Params[j].Span)
			}
		}
		for i := range mod.Constructors {
			fn := &mod.Constructors[i]
			for j := range fn.Params {
				resolveOne(fn.Params[j].Type, fn.Params[j].Span)
			}
		}
	}
}

func resolveFD(unit *symtab.FileUnit, in *types.Interner, r diag.Reporter, id types.TypeID, span source.Span) {
	t := in.Lookup(id)
	if t.Kind != types.KindFDModule {
		return
	}
	if _, already := unit.FDResolutions[id]; already {
		return
	}
	name := t.FDModuleName
	m, ok := unit.LoadedModules[name]
	if !ok {
		diag.New(r, diag.CouldNotFindModuleType, span,
			fmt.Sprintf("could not find module type %q", unit.Table.Words().Reveal(name))).Emit()
		return
	}
	unit.FDResolutions[id] = m
}

// Resolve returns the concrete TypeID for id: if id names a resolved
// forward-declared module, its concrete module TypeID; otherwise id
// unchanged. Analysis and lowering must call this wherever a declared type
// might still be a forward declaration (spec.md §9 Design Notes).
func Resolve(unit *symtab.FileUnit, in *types.Interner, id types.TypeID) types.TypeID {
	t := in.Lookup(id)
	if t.Kind != types.KindFDModule {
		return id
	}
	m, ok := unit.FDResolutions[id]
	if !ok {
		return id // unresolved; a diagnostic was already reported by ResolveTypeRefs
	}
	return in.MakeModule(m.UniqueID)
}
