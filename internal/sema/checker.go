package sema

import (
	"nylac/internal/astree"
	"nylac/internal/diag"
	"nylac/internal/symref"
	"nylac/internal/symtab"
	"nylac/internal/types"
	"nylac/internal/word"
)

// Checker walks one unit's AST and annotates it (spec.md §4.4). It is
// constructed fresh per unit by the orchestrator (internal/orchestrator)
// once the unit has reached IMPORTS_RESOLVED.
type Checker struct {
	Unit   *symtab.FileUnit
	Types  *types.Interner
	Words  *word.Table
	Arena  *astree.Arena
	Report diag.Reporter

	// currentModule/staticContext/checkingFields carry walk-order state
	// (spec.md §4.4 "Walk order"): fields are checked with
	// checkingFields=true so field initializers may not reference
	// non-field locals and are considered non-static.
	currentModule  *symtab.ModuleSymbol
	checkingFields bool
	inStaticFunc   bool
	scope          symref.ScopeID

	// currentReturnType is the enclosing function's declared return type,
	// consulted by checkReturnStmt (spec.md §4.4 "Return statements").
	currentReturnType types.TypeID
}

// New constructs a Checker for unit.
func New(unit *symtab.FileUnit, in *types.Interner, words *word.Table, r diag.Reporter) *Checker {
	return &Checker{Unit: unit, Types: in, Words: words, Arena: unit.Arena, Report: r}
}

// Analyze runs the full unit analysis: circular-field detection, then the
// walk order of spec.md §4.4 (fields, globals, constructors, functions per
// module, in declaration order across modules) — satisfying I-A1 (a
// module's struct layout is fully determined before any function body in
// that module is checked, because fields of every module are resolved
// before any module's functions are visited).
func (c *Checker) Analyze() {
	for _, mod := range c.Unit.Modules {
		CheckCircularFields(c, mod)
	}
	for _, mod := range c.Unit.Modules {
		c.checkModuleFields(mod)
	}
	for _, mod := range c.Unit.Modules {
		c.registerModuleFunctions(mod)
	}
	for _, mod := range c.Unit.Modules {
		c.checkModuleFunctions(mod)
	}
}
