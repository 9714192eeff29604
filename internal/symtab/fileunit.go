package symtab

import (
	"nylac/internal/astree"
	"nylac/internal/diag"
	"nylac/internal/symref"
	"nylac/internal/types"
	"nylac/internal/word"
)

// Import is spec.md §3 "Import": a dependency unit's internal path plus
// the local-name -> remote-name aliasing for the modules imported from it.
type Import struct {
	Path          string
	ModuleAliases map[word.Key]word.Key // local_name_key -> remote_name_key
}

// FileUnit is spec.md §3 "File unit" plus the "Per-unit state" the
// orchestrator drives (spec.md §4.6).
type FileUnit struct {
	ID   symref.UnitID
	Path string // internal path (spec.md §6.4)

	Table *Table
	Arena *astree.Arena

	Modules []*astree.ModuleDecl
	// GlobalDecls are unit-level variables not owned by any module
	// instance (spec.md GLOSSARY "Global"), checked once per unit that
	// declares at least one module, during the first module's field pass
	// (sema checkModuleFields) and before any constructor/function body
	// (spec.md §4.4 "Walk order").
	GlobalDecls []*astree.GlobalDecl
	// Imports is keyed by the dependency's internal path.
	Imports map[string]*Import
	// OrderedImports gives a stable iteration order for the orchestrator's
	// resumable per-phase cursors (spec.md §4.6 "resumable cursor into its
	// imports").
	OrderedImports []*Import

	LoadedModules map[word.Key]*ModuleSymbol

	// FDResolutions maps a forward-declared module TypeID (canonicalized
	// per unit, see types.Interner.MakeFDModule) to the concrete module
	// symbol it resolves to. Kept as a side map rather than mutating the
	// Type value in place (spec.md §9 Design Notes "Forward-declared
	// module types mutating in place").
	FDResolutions map[types.TypeID]*ModuleSymbol

	Globals          []*VariableSymbol
	StartupFunctions []*FunctionSymbol

	Phase Phase
	Diags diag.Bag

	// started guards the re-entrant ensure_state cascade: each (unit,
	// phase) pair's driving work begins at most once per compilation
	// (spec.md §4.6 "cycle break", spec.md §5).
	started [int(Failed) + 1]bool
	// cursor resumes a phase's dependency-driving loop across
	// re-entrant calls (spec.md §4.2 "iterator cursors").
	cursor [int(Failed) + 1]int
}

// NewFileUnit creates an empty unit rooted at a fresh Table and Arena.
func NewFileUnit(id symref.UnitID, path string, words *word.Table, ids *ModuleIDGen) *FileUnit {
	return &FileUnit{
		ID:            id,
		Path:          path,
		Table:         NewTable(words, ids),
		Arena:         astree.NewArena(),
		Imports:       make(map[string]*Import),
		LoadedModules: make(map[word.Key]*ModuleSymbol),
		FDResolutions: make(map[types.TypeID]*ModuleSymbol),
	}
}

// MarkStarted reports whether phase p's driving work has already begun for
// this unit, and marks it started if not — the re-entrance guard.
func (u *FileUnit) MarkStarted(p Phase) (alreadyStarted bool) {
	if u.started[p] {
		return true
	}
	u.started[p] = true
	return false
}

// Cursor/SetCursor persist a phase's resumable index into OrderedImports.
func (u *FileUnit) Cursor(p Phase) int        { return u.cursor[p] }
func (u *FileUnit) SetCursor(p Phase, v int)  { u.cursor[p] = v }

// Fail marks the unit FAILED. Idempotent.
func (u *FileUnit) Fail() { u.Phase = Failed }

// AddImport registers a dependency import with a stable order.
func (u *FileUnit) AddImport(imp *Import) {
	u.Imports[imp.Path] = imp
	u.OrderedImports = append(u.OrderedImports, imp)
}
