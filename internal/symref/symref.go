// Package symref defines the dense handle types shared between the AST
// (internal/astree) and the symbol table (internal/symtab), so that
// neither package needs to import the other: the AST carries resolved
// symbol handles (spec.md §4.4), and the symbol table owns the arenas
// those handles index into.
package symref

// SymbolID is a dense handle into a unit's symbol arena (module, function,
// or variable symbol — the symbol table disambiguates by its own kind
// tag). Zero is reserved.
type SymbolID uint32

// NoSymbol is never a valid resolved reference.
const NoSymbol SymbolID = 0

// ScopeID is a dense handle into a unit's scope arena. Zero is reserved.
type ScopeID uint32

// NoScope is the sentinel scope handle.
const NoScope ScopeID = 0

// UnitID identifies a compilation unit (one source file) across the whole
// program. Zero is reserved.
type UnitID uint32

// NoUnit is the sentinel unit handle.
const NoUnit UnitID = 0
