package sema

import (
	"fmt"

	"fortio.org/safecast"

	"nylac/internal/astree"
	"nylac/internal/resolve"
	"nylac/internal/symref"
	"nylac/internal/symtab"
	"nylac/internal/types"
)

// checkModuleFields realizes the field half of spec.md §4.4 "Walk order":
// field types are resolved and FieldSymbols created (idempotently, so a
// second Analyze pass is a no-op) before globals, constructors, or any
// function body is checked (I-A1).
func (c *Checker) checkModuleFields(mod *astree.ModuleDecl) {
	sym, ok := c.Unit.Table.FindModule(mod.NameKey)
	if !ok {
		sym = &symtab.ModuleSymbol{NameKey: mod.NameKey, Mods: mod.Mods, HasNoConstructorsDeclared: len(mod.Constructors) == 0}
		c.Unit.Table.RegisterModule(sym)
	}
	c.currentModule = sym
	c.checkingFields = true
	defer func() { c.checkingFields = false }()

	if len(sym.Fields) == 0 && len(mod.Fields) > 0 {
		for i := range mod.Fields {
			f := &mod.Fields[i]
			resolvedType := resolve.Resolve(c.Unit, c.Types, f.Type)
			fieldSym := &symtab.FieldSymbol{NameKey: f.NameKey, Mods: f.Mods, Type: resolvedType, Index: i}
			slot, err := safecast.Conv[uint32](len(sym.Fields) + 1)
			if err != nil {
				panic(fmt.Errorf("field table overflow: %w", err))
			}
			fieldSym.ID = symref.SymbolID(slot)
			sym.Fields = append(sym.Fields, fieldSym)
		}
	}

	for i := range mod.Fields {
		f := &mod.Fields[i]
		if f.Init != astree.NilNode {
			c.scope = symref.NoScope
			c.CheckExpr(f.Init)
			checkVarDeclAssignability(c, resolve.Resolve(c.Unit, c.Types, f.Type), &f.Init, f.Span)
		}
	}

	if len(c.Unit.GlobalDecls) > 0 && len(c.Unit.Globals) == 0 {
		c.checkingFields = false
		for _, g := range c.Unit.GlobalDecls {
			c.Unit.Globals = append(c.Unit.Globals, &symtab.VariableSymbol{
				NameKey: g.NameKey,
				Mods:    g.Mods,
				Type:    resolve.Resolve(c.Unit, c.Types, g.Type),
				Role:    symtab.RoleGlobal,
			})
		}
		for _, g := range c.Unit.GlobalDecls {
			if g.Init != astree.NilNode {
				c.scope = symref.NoScope
				c.CheckExpr(g.Init)
				checkVarDeclAssignability(c, resolve.Resolve(c.Unit, c.Types, g.Type), &g.Init, g.Span)
			}
		}
	}
}

// registerModuleFunctions builds a FunctionSymbol for every constructor and
// function declared on mod and files it into the module's overload sets
// (symtab.Table.RegisterFunction). This runs for every module in the unit
// before any function body is checked, so a call inside module A's body
// to a function on module B (same unit) always finds B's overload set
// already populated.
func (c *Checker) registerModuleFunctions(mod *astree.ModuleDecl) {
	sym, _ := c.Unit.Table.FindModule(mod.NameKey)

	if len(sym.Constructors) == 0 && len(mod.Constructors) > 0 {
		for i := range mod.Constructors {
			fnSym := c.buildFunctionSymbol(&mod.Constructors[i])
			c.Unit.Table.RegisterFunction(sym, fnSym)
			c.registerIfStartup(fnSym)
		}
	}

	registered := 0
	for _, overloads := range sym.Functions {
		registered += len(overloads)
	}
	if registered == 0 && len(mod.Functions) > 0 {
		for i := range mod.Functions {
			fnSym := c.buildFunctionSymbol(&mod.Functions[i])
			c.Unit.Table.RegisterFunction(sym, fnSym)
			c.registerIfStartup(fnSym)
		}
	}
}

// registerIfStartup files fn into the unit's startup list (spec.md §4.5
// step 5) when it carries the `StartUp` modifier.
func (c *Checker) registerIfStartup(fn *symtab.FunctionSymbol) {
	if fn.Mods.Has(astree.ModStartup) {
		c.Unit.StartupFunctions = append(c.Unit.StartupFunctions, fn)
	}
}

func (c *Checker) buildFunctionSymbol(fn *astree.FuncDecl) *symtab.FunctionSymbol {
	paramTypes := make([]types.TypeID, len(fn.Params))
	for i, p := range fn.Params {
		paramTypes[i] = resolve.Resolve(c.Unit, c.Types, p.Type)
	}
	return &symtab.FunctionSymbol{
		NameKey:    fn.NameKey,
		Mods:       fn.Mods,
		ParamTypes: paramTypes,
		ReturnType: resolve.Resolve(c.Unit, c.Types, fn.ReturnType),
		Decl:       fn,
	}
}

// checkModuleFunctions checks constructors then functions, in declaration
// order, per spec.md §4.4 "Walk order".
func (c *Checker) checkModuleFunctions(mod *astree.ModuleDecl) {
	sym, _ := c.Unit.Table.FindModule(mod.NameKey)
	c.currentModule = sym
	c.checkingFields = false

	for _, fnSym := range sym.Constructors {
		c.checkFunctionBody(sym, fnSym)
	}
	for i := range mod.Functions {
		for _, fnSym := range sym.Functions[mod.Functions[i].NameKey] {
			if fnSym.Decl == &mod.Functions[i] {
				c.checkFunctionBody(sym, fnSym)
			}
		}
	}
}

func (c *Checker) checkFunctionBody(owner *symtab.ModuleSymbol, fnSym *symtab.FunctionSymbol) {
	fn := fnSym.Decl
	c.inStaticFunc = fn.Mods.Has(astree.ModStatic)
	c.currentReturnType = fnSym.ReturnType
	if fn.Body == astree.NilNode {
		return // external declaration, no body to check
	}
	fnScope := c.Unit.Table.PushScope(symref.NoScope)
	c.scope = fnScope
	fnSym.Scope = fnScope
	for i, p := range fn.Params {
		sym := &symtab.VariableSymbol{NameKey: p.NameKey, Type: fnSym.ParamTypes[i], Role: symtab.RoleParameter, DeclaredPosition: -1}
		c.Unit.Table.DeclareLocal(c.Report, fnScope, p.Span, p.NameKey, sym)
	}
	c.checkBlock(fn.Body)
	c.checkReturnCoverage(fn)
}
