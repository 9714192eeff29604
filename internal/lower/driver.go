// Package lower implements the lowering driver (spec.md §4.5): it walks
// one unit's analyzed AST and symbol table and drives an
// internal/backend.Backend through the five-step order spec.md
// prescribes (type declarations, function signatures, globals, function
// bodies, startup wiring). It never inspects the backend's own
// representation; everything crosses the internal/backend.Backend
// interface, mirroring how vovakirdan-surge's internal/backend/llvm
// isolates IR emission behind internal/mir rather than letting callers
// reach into LLVM-specific state.
package lower

import (
	"fmt"

	"nylac/internal/astree"
	"nylac/internal/backend"
	"nylac/internal/symref"
	"nylac/internal/symtab"
	"nylac/internal/types"
	"nylac/internal/word"
)

// Driver lowers one unit at a time. Module type handles are cached by
// ModuleSymbol.UniqueID so that a field referencing a module declared in
// an imported unit resolves to the same handle the defining unit already
// declared (spec.md §4.7: "two module types ... are layout-distinct [only
// when they] have distinct unique_ids").
type Driver struct {
	Backend backend.Backend
	Types   *types.Interner
	Words   *word.Table
	IDs     *symtab.ModuleIDGen // global module registry, for declareModuleType's cross-unit lookup

	structTypes map[uint32]backend.TypeHandle // ModuleSymbol.UniqueID -> struct handle
	funcHandles map[symref.SymbolID]backend.FuncHandle

	nameSeq int // globally unique numeric suffix source (spec.md §4.5 step 2)
}

// NewDriver creates a Driver. structTypes/funcHandles are shared across
// every unit lowered in one compilation, since module and function
// identity is global (ModuleSymbol.UniqueID, globally unique mangled
// names), not per-unit.
func NewDriver(b backend.Backend, in *types.Interner, words *word.Table, ids *symtab.ModuleIDGen) *Driver {
	return &Driver{
		Backend:     b,
		Types:       in,
		Words:       words,
		IDs:         ids,
		structTypes: make(map[uint32]backend.TypeHandle),
		funcHandles: make(map[symref.SymbolID]backend.FuncHandle),
	}
}

// DeclareTypes is lowering driver step 1: a named aggregate type per
// module, field types in declaration order, with one byte of padding for
// an empty module so it still has a non-zero address identity.
func (d *Driver) DeclareTypes(unit *symtab.FileUnit) {
	for _, mod := range unit.Table.Modules() {
		d.declareModuleType(mod)
	}
}

// declareModuleType declares mod's backend struct type if it has not been
// declared yet, recursing into any module-typed field first. EnsureState
// only guarantees an import has reached ANALYZED, not TYPE_DECLS_EMITTED,
// before this unit enters TYPE_DECLS_EMITTED (spec.md §4.6's prerequisite
// table), so a field whose type is a module declared in an imported unit
// (spec.md §4.7 "Nested module fields are inlined") may need declaring
// here on demand rather than having already been declared by that unit's
// own DeclareTypes pass. Termination is guaranteed because sema rejects
// circular field layouts before this phase is reached
// (internal/sema/circular.go).
func (d *Driver) declareModuleType(mod *symtab.ModuleSymbol) backend.TypeHandle {
	if h, done := d.structTypes[mod.UniqueID]; done {
		return h
	}
	members := make([]backend.TypeHandle, 0, len(mod.Fields))
	for _, f := range mod.Fields {
		members = append(members, d.typeHandle(f.Type))
	}
	if len(members) == 0 {
		members = append(members, d.Backend.ScalarType(1, false, false))
	}
	name := d.Words.Reveal(mod.NameKey)
	h := d.Backend.DeclareStruct(name, members)
	d.structTypes[mod.UniqueID] = h
	return h
}

// typeHandle maps a resolved types.TypeID onto a backend.TypeHandle.
// Arrays lower to the same representation as pointers (spec.md §4.5
// "Array representation contract": a single pointer to a length-prefixed
// block); the length header and indexing offset are handled at access
// sites in body.go, not in the type itself.
func (d *Driver) typeHandle(id types.TypeID) backend.TypeHandle {
	t := d.Types.Lookup(id)
	switch t.Kind {
	case types.KindVoid:
		return d.Backend.VoidType()
	case types.KindBool:
		return d.Backend.BoolType()
	case types.KindPtr:
		return d.Backend.PointerType(d.typeHandle(t.Elem))
	case types.KindArr:
		base, _ := d.Types.ArrBase(id)
		return d.Backend.PointerType(d.typeHandle(base))
	case types.KindModule:
		if h, ok := d.structTypes[t.ModuleUniqueID]; ok {
			return h
		}
		mod, ok := d.IDs.Lookup(t.ModuleUniqueID)
		if !ok {
			panic(fmt.Sprintf("lower: module unique_id %d is not registered in any unit", t.ModuleUniqueID))
		}
		return d.declareModuleType(mod)
	case types.KindString:
		return d.Backend.PointerType(d.Backend.ScalarType(1, false, false))
	default:
		return d.Backend.ScalarType(t.MemSize(), t.IsFloat(), t.IsSigned())
	}
}

// mangle builds a function's linkage-visible name (spec.md §4.5 step 2):
// main and external declarations keep their bare name; every other
// function gets a globally unique numeric suffix so overloads coexist,
// and a constructor's name is prefixed by a marker.
func (d *Driver) mangle(owner *symtab.ModuleSymbol, fn *astree.FuncDecl) string {
	if fn.IsEntrypoint {
		return "main"
	}
	base := d.Words.Reveal(fn.NameKey)
	if fn.Mods.Has(astree.ModExternal) {
		return base
	}
	if owner != nil {
		base = d.Words.Reveal(owner.NameKey) + "_" + base
	}
	if fn.IsConstructor {
		base = "ctor_" + base
	}
	d.nameSeq++
	return fmt.Sprintf("%s.%d", base, d.nameSeq)
}

func linkageOf(fn *astree.FuncDecl) backend.Linkage {
	switch {
	case fn.Mods.Has(astree.ModExternal) && fn.Mods.Has(astree.ModDLLImport):
		return backend.LinkageDLLImport
	case fn.Mods.Has(astree.ModExternal), fn.Mods.Has(astree.ModPublic), fn.IsEntrypoint:
		return backend.LinkageExternalExport
	default:
		return backend.LinkageInternal
	}
}

// DeclareFuncSignatures is lowering driver step 2. Member functions
// (non-static, non-constructor) take an extra leading parameter: a
// pointer to the owning module's aggregate. Constructors do too, since
// they initialize an already-allocated instance in place.
func (d *Driver) DeclareFuncSignatures(unit *symtab.FileUnit) {
	for _, mod := range unit.Table.Modules() {
		selfPtr := d.Backend.PointerType(d.structTypes[mod.UniqueID])
		for _, fnSym := range mod.Constructors {
			d.declareOne(mod, fnSym, selfPtr, true)
		}
		for name := range mod.Functions {
			for _, fnSym := range mod.Functions[name] {
				d.declareOne(mod, fnSym, selfPtr, fnSym.IsMember)
			}
		}
	}
}

func (d *Driver) declareOne(owner *symtab.ModuleSymbol, fnSym *symtab.FunctionSymbol, selfPtr backend.TypeHandle, member bool) {
	fn := fnSym.Decl
	params := make([]backend.TypeHandle, 0, len(fn.Params)+1)
	if member {
		params = append(params, selfPtr)
	}
	for _, pt := range fnSym.ParamTypes {
		params = append(params, d.typeHandle(pt))
	}
	name := d.mangle(owner, fn)
	h := d.Backend.DeclareFunc(name, d.typeHandle(fnSym.ReturnType), params, linkageOf(fn))
	fnSym.IRHandle = name
	d.funcHandles[fnSym.ID] = h
}
