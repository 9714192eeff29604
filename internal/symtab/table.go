package symtab

import (
	"fmt"

	"fortio.org/safecast"

	"nylac/internal/astree"
	"nylac/internal/diag"
	"nylac/internal/source"
	"nylac/internal/symref"
	"nylac/internal/word"
)

// ModuleIDGen hands out globally monotonic module unique ids (spec.md §3
// "unique_id (globally monotonic)") and keeps the registry mapping a
// unique id back to its ModuleSymbol. It is shared across every unit's
// Table by internal/project's Program, since module identity must
// be unique across the whole program, not just within one unit, and so a
// module inlined as a field's type in another unit (spec.md §4.7 "Nested
// module fields are inlined") can be resolved back to its ModuleSymbol
// without that unit owning the declaring unit's Table.
type ModuleIDGen struct {
	next uint32
	byID map[uint32]*ModuleSymbol
}

func (g *ModuleIDGen) Next() uint32 {
	g.next++
	return g.next
}

// register records m under its unique id, called by RegisterModule once
// the id has been assigned.
func (g *ModuleIDGen) register(m *ModuleSymbol) {
	if g.byID == nil {
		g.byID = make(map[uint32]*ModuleSymbol)
	}
	g.byID[m.UniqueID] = m
}

// Lookup resolves a module's globally unique id back to its ModuleSymbol,
// regardless of which unit declared it.
func (g *ModuleIDGen) Lookup(id uint32) (*ModuleSymbol, bool) {
	m, ok := g.byID[id]
	return m, ok
}

// Table is the per-unit symbol table (spec.md §4.2): scopes, module
// declarations, and the functions/variables they own.
type Table struct {
	words *word.Table
	ids   *ModuleIDGen

	scopes    []Scope
	variables []*VariableSymbol
	modules   []*ModuleSymbol
	byName    map[word.Key]*ModuleSymbol
}

// NewTable creates an empty per-unit symbol table.
func NewTable(words *word.Table, ids *ModuleIDGen) *Table {
	return &Table{
		words:     words,
		ids:       ids,
		scopes:    make([]Scope, 1), // index 0 reserved
		variables: make([]*VariableSymbol, 1),
		modules:   make([]*ModuleSymbol, 1),
		byName:    make(map[word.Key]*ModuleSymbol),
	}
}

// PushScope creates a new scope whose parent is parent (symref.NoScope for
// a unit's file-root scope) and returns its handle.
func (t *Table) PushScope(parent symref.ScopeID) symref.ScopeID {
	slot, err := safecast.Conv[uint32](len(t.scopes))
	if err != nil {
		panic(fmt.Errorf("scope table overflow: %w", err))
	}
	id := symref.ScopeID(slot)
	t.scopes = append(t.scopes, Scope{Parent: parent, Locals: make(map[word.Key]symref.SymbolID)})
	return id
}

// PopScope returns the parent of id, restoring the caller's walk to the
// enclosing scope. The child scope's bindings remain in the arena (lowering
// reads a function's parameter scope back through FunctionSymbol.Scope;
// freed in bulk with the unit).
func (t *Table) PopScope(id symref.ScopeID) symref.ScopeID {
	return t.scopes[id].Parent
}

func (t *Table) Scope(id symref.ScopeID) *Scope {
	return &t.scopes[id]
}

// DeclareLocal binds name in scope to sym. A duplicate in the same scope
// (not an ancestor) fails with ERR_VARIABLE_REDECLARATION (spec.md §4.2).
func (t *Table) DeclareLocal(r diag.Reporter, scope symref.ScopeID, span source.Span, name word.Key, sym *VariableSymbol) bool {
	s := &t.scopes[scope]
	if _, exists := s.Locals[name]; exists {
		diag.New(r, diag.VariableRedeclaration, span,
			fmt.Sprintf("variable %q is already declared in this scope", t.words.Reveal(name))).Emit()
		return false
	}
	slot, err := safecast.Conv[uint32](len(t.variables))
	if err != nil {
		panic(fmt.Errorf("variable table overflow: %w", err))
	}
	id := symref.SymbolID(slot)
	sym.ID = id
	t.variables = append(t.variables, sym)
	s.Locals[name] = id
	return true
}

// LookupVariable walks scope and its ancestors for name (spec.md §4.2
// "variable lookup starts from the given scope and climbs").
func (t *Table) LookupVariable(scope symref.ScopeID, name word.Key) (*VariableSymbol, bool) {
	for cur := scope; cur != symref.NoScope; cur = t.scopes[cur].Parent {
		if id, ok := t.scopes[cur].Locals[name]; ok {
			return t.variables[id], true
		}
	}
	return nil, false
}

func (t *Table) Variable(id symref.SymbolID) *VariableSymbol {
	return t.variables[id]
}

// NewVariable allocates a VariableSymbol with a fresh id without binding
// it into any scope, for a symbol found via its owning ModuleSymbol or
// FileUnit rather than scope lookup. Nothing in this repository calls it:
// parameters are bound with DeclareLocal, and field and global symbols
// are not given a variable-table id.
func (t *Table) NewVariable(sym *VariableSymbol) symref.SymbolID {
	slot, err := safecast.Conv[uint32](len(t.variables))
	if err != nil {
		panic(fmt.Errorf("variable table overflow: %w", err))
	}
	id := symref.SymbolID(slot)
	sym.ID = id
	t.variables = append(t.variables, sym)
	return id
}

// RegisterModule records a newly declared module, assigning it a globally
// monotonic unique id.
func (t *Table) RegisterModule(m *ModuleSymbol) {
	m.UniqueID = t.ids.Next()
	slot, err := safecast.Conv[uint32](len(t.modules))
	if err != nil {
		panic(fmt.Errorf("module table overflow: %w", err))
	}
	m.ID = symref.SymbolID(slot)
	if m.Functions == nil {
		m.Functions = make(map[word.Key][]*FunctionSymbol)
	}
	t.modules = append(t.modules, m)
	t.byName[m.NameKey] = m
	t.ids.register(m)
}

// FindModule looks up a module declared directly in this unit by name.
func (t *Table) FindModule(name word.Key) (*ModuleSymbol, bool) {
	m, ok := t.byName[name]
	return m, ok
}

func (t *Table) Modules() []*ModuleSymbol {
	return t.modules[1:]
}

// RegisterFunction adds fn to owner's overload set (or constructor list).
func (t *Table) RegisterFunction(owner *ModuleSymbol, fn *FunctionSymbol) {
	fn.OwnerModule = owner.ID
	fn.IsMember = !fn.Mods.Has(astree.ModStatic)
	if fn.Decl != nil && fn.Decl.IsConstructor {
		owner.Constructors = append(owner.Constructors, fn)
		return
	}
	owner.Functions[fn.NameKey] = append(owner.Functions[fn.NameKey], fn)
}

// FunctionsNamed returns module's overload set for name, in declaration
// order (overload resolution ties break on this order, spec.md §4.4).
func (t *Table) FunctionsNamed(module *ModuleSymbol, name word.Key) []*FunctionSymbol {
	return module.Functions[name]
}

// Constructors returns module's declared constructors in declaration
// order.
func (t *Table) Constructors(module *ModuleSymbol) []*FunctionSymbol {
	return module.Constructors
}

// Words exposes the word table for diagnostic rendering.
func (t *Table) Words() *word.Table { return t.words }
