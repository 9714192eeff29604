package astree

import (
	"nylac/internal/source"
	"nylac/internal/types"
	"nylac/internal/word"
)

// Mods is the bitmask of declaration modifiers (spec.md §3 Function
// symbol: "mods (static/private/protected/public/external/const/
// comptime)"). Field and module declarations reuse the subset that
// applies to them.
type Mods uint16

const (
	ModStatic Mods = 1 << iota
	ModPrivate
	ModProtected
	ModPublic
	ModExternal
	ModConst
	ModComptime
	// ModDLLImport marks an external function that uses an OS-specific
	// calling convention for cross-DLL linkage (SPEC_FULL.md §6
	// "dll_import external modifier semantics", spec.md §6.2(b)).
	ModDLLImport
	// ModStartup marks a function declared with the `StartUp` modifier,
	// grounded on original_source/nyla/tokens.cpp's startup_ident: such a
	// function takes no parameters and is called once from main's
	// synthetic startup block, after deferred global initializers and
	// before main's first user statement (spec.md §4.5 step 5).
	ModStartup
)

func (m Mods) Has(f Mods) bool { return m&f != 0 }

// ParamDecl is one function parameter as parsed.
type ParamDecl struct {
	NameKey word.Key
	Type    types.TypeID // may be KindFDModule prior to resolution
	Span    source.Span
}

// FuncDecl is a function or constructor declaration as parsed. Analysis
// (internal/sema) walks Body and annotates it; the driver (internal/lower)
// consumes the annotated Body afterward.
type FuncDecl struct {
	NameKey      word.Key
	Mods         Mods
	Params       []ParamDecl
	ReturnType   types.TypeID
	Body         NodeID // KindBlock, or NilNode for an external declaration
	IsConstructor bool
	IsEntrypoint bool // the `main` function (spec.md §4.6 "main detection")
	Span         source.Span
}

// FieldDecl is a module field as parsed. Its Init expression, if any, is
// checked with m_checking_fields semantics (spec.md §4.4 "Walk order").
type FieldDecl struct {
	NameKey word.Key
	Mods    Mods
	Type    types.TypeID // may be KindFDModule prior to resolution
	Dims    []NodeID     // explicit array dimension-size expressions
	Init    NodeID       // NilNode if absent
	Span    source.Span
}

// GlobalDecl is a unit-level variable not owned by any module instance
// (spec.md GLOSSARY "Global").
type GlobalDecl struct {
	NameKey word.Key
	Mods    Mods
	Type    types.TypeID
	Dims    []NodeID
	Init    NodeID
	Span    source.Span
}

// ModuleDecl is one `module` declaration as parsed.
type ModuleDecl struct {
	NameKey      word.Key
	Mods         Mods
	Fields       []FieldDecl
	Functions    []FuncDecl
	Constructors []FuncDecl
	Span         source.Span
}
