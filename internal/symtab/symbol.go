package symtab

import (
	"nylac/internal/astree"
	"nylac/internal/symref"
	"nylac/internal/types"
	"nylac/internal/word"
)

// FieldSymbol is one field of a ModuleSymbol, in declaration order (the
// order spec.md §4.7 "Module struct layout" lowers fields in).
type FieldSymbol struct {
	ID      symref.SymbolID
	NameKey word.Key
	Mods    astree.Mods
	Type    types.TypeID
	Index   int // position within the owning module's struct layout
}

// ModuleSymbol is spec.md §3 "Module symbol".
type ModuleSymbol struct {
	ID                        symref.SymbolID
	NameKey                   word.Key
	UniqueID                  uint32 // globally monotonic; identifies the module across the whole program
	Mods                      astree.Mods
	Scope                     symref.ScopeID
	Fields                    []*FieldSymbol
	Functions                 map[word.Key][]*FunctionSymbol // overload sets
	Constructors              []*FunctionSymbol
	HasNoConstructorsDeclared bool
	TypeID                    types.TypeID
}

// FunctionSymbol is spec.md §3 "Function symbol".
type FunctionSymbol struct {
	ID          symref.SymbolID
	NameKey     word.Key
	OwnerModule symref.SymbolID
	Mods        astree.Mods
	ParamTypes  []types.TypeID
	ReturnType  types.TypeID
	IsMember    bool // derived from !static
	IRHandle    string
	Decl        *astree.FuncDecl
	// Scope is the top-level scope sema pushed for this function's
	// parameters, recorded so internal/lower can recover each parameter's
	// VariableSymbol without re-walking the body (internal/sema/module.go
	// "checkFunctionBody").
	Scope symref.ScopeID
}

// VarRole classifies a VariableSymbol (spec.md §3 "Variable symbol").
type VarRole uint8

const (
	RoleField VarRole = iota
	RoleGlobal
	RoleLocal
	RoleParameter
)

// VariableSymbol is spec.md §3 "Variable symbol".
type VariableSymbol struct {
	ID                 symref.SymbolID
	NameKey             word.Key
	Mods                astree.Mods
	Type                types.TypeID
	Role                VarRole
	FieldIndex          int // valid when Role == RoleField
	DeclaredPosition    int // source order position, for I-A4 use-before-declaration
	ComputedArrDimSizes []uint32
	IRHandle            string
}
