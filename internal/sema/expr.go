package sema

import (
	"fmt"

	"fortio.org/safecast"

	"nylac/internal/astree"
	"nylac/internal/diag"
	"nylac/internal/resolve"
	"nylac/internal/symtab"
	"nylac/internal/types"
	"nylac/internal/word"
)

// CheckExpr implements spec.md §4.4's per-expression rules, dispatching by
// Kind. On success every node ends with a non-null (non-NoType) Type
// (I-A3); on failure node.Type becomes the error sentinel and propagation
// halts further checks on that node's parent while siblings still run
// (spec.md §7 propagation policy).
func (c *Checker) CheckExpr(id astree.NodeID) {
	n := c.Arena.Get(id)
	if n.Type != types.NoType {
		return // already analyzed: idempotent re-entry (spec.md §8 round-trips)
	}

	switch n.Kind {
	case astree.KindIntLit:
		if n.IntVal <= 0x7fffffff {
			n.Type = c.Types.Primitive(types.KindInt)
		} else {
			n.Type = c.Types.Primitive(types.KindULong)
		}
		n.LiteralConstant, n.ComptimeCompat = true, true

	case astree.KindFloatLit:
		n.Type = c.Types.Primitive(types.KindDouble)
		n.LiteralConstant, n.ComptimeCompat = true, true

	case astree.KindBoolLit:
		n.Type = c.Types.Primitive(types.KindBool)
		n.LiteralConstant, n.ComptimeCompat = true, true

	case astree.KindStringLit:
		n.Type = c.Types.Primitive(types.KindString)
		n.LiteralConstant, n.ComptimeCompat = true, true

	case astree.KindNullLit:
		n.Type = c.Types.Primitive(types.KindNull)
		n.LiteralConstant, n.ComptimeCompat = true, true

	case astree.KindThis:
		c.checkThisStandalone(n)

	case astree.KindIdent:
		c.checkIdent(id, n)

	case astree.KindUnary:
		c.checkUnary(id, n)

	case astree.KindBinary:
		CheckBinary(c.Arena, c.Types, c.Report, id)

	case astree.KindAssign:
		c.checkAssign(id, n)

	case astree.KindCall:
		c.checkCall(id, n)

	case astree.KindArrayAccess:
		c.checkArrayAccess(id, n)

	case astree.KindDotOp:
		c.checkDotOp(id, n)

	case astree.KindCast:
		c.CheckExpr(n.Children[0])
		n.Type = resolve.Resolve(c.Unit, c.Types, n.DeclaredType)
		n.LiteralConstant = c.Arena.Get(n.Children[0]).LiteralConstant
		n.ComptimeCompat = c.Arena.Get(n.Children[0]).ComptimeCompat

	case astree.KindArrayLit:
		c.checkArrayLit(id, n)

	case astree.KindVarObject:
		c.checkVarObject(id, n)

	default:
		n.Type = c.Types.Primitive(types.KindError)
	}
}

// checkThisStandalone implements spec.md §4.4 "`this` keyword": outside a
// dot expression it is illegal.
func (c *Checker) checkThisStandalone(n *astree.Node) {
	diag.New(c.Report, diag.ThisKeywordExpectsDotOp, n.Span, "'this' may only appear as the first factor of a dot expression").Emit()
	n.Type = c.Types.Primitive(types.KindError)
}

func (c *Checker) checkIdent(id astree.NodeID, n *astree.Node) {
	v, ok := c.Unit.Table.LookupVariable(c.scope, n.NameKey)
	if !ok {
		// Not a local or parameter: fall back to this module's fields,
		// unless we are inside a static function (spec.md §4.4 "this
		// keyword" / ACCESSING_FIELD_FROM_STATIC_CONTEXT applies to bare
		// field references too).
		if c.currentModule != nil {
			if f := findField(c.currentModule, n.NameKey); f != nil {
				if c.inStaticFunc {
					diag.New(c.Report, diag.AccessingFieldFromStaticContext, n.Span,
						fmt.Sprintf("cannot access field %q from a static context", c.Words.Reveal(n.NameKey))).Emit()
					n.Type = c.Types.Primitive(types.KindError)
					return
				}
				n.Type = f.Type
				n.LiteralConstant = false
				n.ComptimeCompat = false
				return
			}
		}
		diag.New(c.Report, diag.UndeclaredVariable, n.Span,
			fmt.Sprintf("undeclared variable %q", c.Words.Reveal(n.NameKey))).Emit()
		n.Type = c.Types.Primitive(types.KindError)
		return
	}
	// I-A4: a local reference whose declaration position exceeds the
	// reference position is rejected. Fields and globals are exempt.
	if v.Role == symtab.RoleLocal && v.DeclaredPosition > n.Span.StartLine {
		diag.New(c.Report, diag.UseBeforeDeclaration, n.Span,
			fmt.Sprintf("use of variable %q before its declaration", c.Words.Reveal(n.NameKey))).Emit()
		n.Type = c.Types.Primitive(types.KindError)
		return
	}
	n.Symbol = v.ID
	n.Type = v.Type
	n.LiteralConstant = false
	n.ComptimeCompat = v.Mods.Has(astree.ModComptime)
}

// findField looks up a field by name on mod, in declaration order.
func findField(mod *symtab.ModuleSymbol, name word.Key) *symtab.FieldSymbol {
	for _, f := range mod.Fields {
		if f.NameKey == name {
			return f
		}
	}
	return nil
}

func (c *Checker) checkUnary(id astree.NodeID, n *astree.Node) {
	operand := n.Children[0]
	c.CheckExpr(operand)
	opT := c.Types.Lookup(c.Arena.Get(operand).Type)
	switch n.UnOp {
	case astree.OpNeg:
		if !opT.IsNumber() {
			diag.New(c.Report, diag.OpCannotApplyTo, n.Span, "unary '-' requires a numeric operand").Emit()
			n.Type = c.Types.Primitive(types.KindError)
			return
		}
		n.Type = c.Arena.Get(operand).Type
	case astree.OpNot:
		if opT.Kind != types.KindBool {
			diag.New(c.Report, diag.OpCannotApplyTo, n.Span, "unary '!' requires a bool operand").Emit()
			n.Type = c.Types.Primitive(types.KindError)
			return
		}
		n.Type = c.Types.Primitive(types.KindBool)
	}
	n.LiteralConstant = c.Arena.Get(operand).LiteralConstant
	n.ComptimeCompat = c.Arena.Get(operand).ComptimeCompat
}

func (c *Checker) checkAssign(id astree.NodeID, n *astree.Node) {
	target, value := n.Children[0], n.Children[1]
	c.CheckExpr(target)
	c.CheckExpr(value)
	targetT := c.Arena.Get(target).Type
	valueT := c.Arena.Get(value).Type
	if targetT == c.Types.Primitive(types.KindError) || valueT == c.Types.Primitive(types.KindError) {
		n.Type = c.Types.Primitive(types.KindError)
		return
	}
	if !IsAssignable(c.Types, targetT, valueT) {
		diag.New(c.Report, diag.CannotAssign, n.Span,
			fmt.Sprintf("cannot assign %s to %s", c.Types.String(valueT), c.Types.String(targetT))).Emit()
		n.Type = c.Types.Primitive(types.KindError)
		return
	}
	if targetT != valueT {
		n.Children[1] = c.Arena.InsertCast(value, targetT)
	}
	n.Type = targetT
}

// checkArrayLit types an array literal's own array type (spec.md §4.4,
// I-T4). Once the last nesting level is reached (every child is a leaf
// expression, not itself an array literal), the element type is the
// `mixed` sentinel, not any one child's concrete type, so a literal like
// {1, 2, 3} stays assignable into a wider-typed destination such as
// double[]. A literal of nested array literals instead propagates the
// first child's own array type, the same way the literal's shape nests.
func (c *Checker) checkArrayLit(id astree.NodeID, n *astree.Node) {
	mixed := c.Types.Primitive(types.KindMixed)
	elemType := mixed
	for i, child := range n.Children {
		c.CheckExpr(child)
		childNode := c.Arena.Get(child)
		if i == 0 && childNode.Kind == astree.KindArrayLit {
			elemType = childNode.Type
		}
	}
	n.Type = c.Types.MakeArr(elemType)
	n.LiteralConstant = true
	for _, child := range n.Children {
		if !c.Arena.Get(child).LiteralConstant {
			n.LiteralConstant = false
			break
		}
	}
	n.ComptimeCompat = n.LiteralConstant
}

// checkCall handles an unqualified call: a function looked up on the
// enclosing module (spec.md §4.4 "Dot expressions" covers the qualified
// form; a bare call is the degenerate one-factor case).
func (c *Checker) checkCall(id astree.NodeID, n *astree.Node) {
	argTypes := c.checkArgs(n.Children)
	if c.currentModule == nil {
		diag.New(c.Report, diag.CouldNotFindFunction, n.Span, "call outside of any module").Emit()
		n.Type = c.Types.Primitive(types.KindError)
		return
	}
	fn := c.resolveMethodCall(n, c.currentModule, argTypes, c.inStaticFunc)
	if fn == nil {
		return
	}
	n.Symbol = fn.ID
	n.Type = fn.ReturnType
}

// checkArgs runs CheckExpr over a call's argument children and collects
// their resolved types.
func (c *Checker) checkArgs(children []astree.NodeID) []types.TypeID {
	argTypes := make([]types.TypeID, len(children))
	for i, child := range children {
		c.CheckExpr(child)
		argTypes[i] = c.Arena.Get(child).Type
	}
	return argTypes
}

// resolveMethodCall finds the best overload of n's callee name on module,
// reporting CouldNotFindFunction or CalledNonStaticFuncFromStatic as
// appropriate. Returns nil (and sets n.Type to error) on failure.
func (c *Checker) resolveMethodCall(n *astree.Node, module *symtab.ModuleSymbol, argTypes []types.TypeID, callerStatic bool) *symtab.FunctionSymbol {
	candidates := module.Functions[n.NameKey]
	fn := FindBestCandidate(c.Types, candidates, argTypes)
	if fn == nil {
		diag.New(c.Report, diag.CouldNotFindFunction, n.Span,
			fmt.Sprintf("could not find function %q matching the given arguments", c.Words.Reveal(n.NameKey))).Emit()
		n.Type = c.Types.Primitive(types.KindError)
		return nil
	}
	if callerStatic && fn.IsMember {
		diag.New(c.Report, diag.CalledNonStaticFuncFromStatic, n.Span,
			fmt.Sprintf("cannot call non-static function %q from a static context", c.Words.Reveal(n.NameKey))).Emit()
		n.Type = c.Types.Primitive(types.KindError)
		return nil
	}
	if fn.Mods.Has(astree.ModPrivate) && module != c.currentModule {
		diag.New(c.Report, diag.FunctionNotVisible, n.Span,
			fmt.Sprintf("function %q is not visible here", c.Words.Reveal(n.NameKey))).Emit()
		n.Type = c.Types.Primitive(types.KindError)
		return nil
	}
	return fn
}

// checkArrayAccess implements spec.md §4.4: base must be ptr or arr; every
// index must be an integer type; the index count may not exceed the base's
// depth (TOO_MANY_ARRAY_ACCESS_INDEXES).
func (c *Checker) checkArrayAccess(id astree.NodeID, n *astree.Node) {
	base := n.Children[0]
	indices := n.Children[1:]
	c.CheckExpr(base)
	baseT := c.Arena.Get(base).Type
	bt := c.Types.Lookup(baseT)

	var elemBase types.TypeID
	var depth uint32
	switch bt.Kind {
	case types.KindArr:
		elemBase, depth = c.Types.ArrBase(baseT)
	case types.KindPtr:
		elemBase, depth = c.Types.PtrBase(baseT)
	default:
		diag.New(c.Report, diag.ArrayAccessOnInvalidType, n.Span, "array access requires a pointer or array operand").Emit()
		n.Type = c.Types.Primitive(types.KindError)
		return
	}

	if len(indices) > int(depth) {
		diag.New(c.Report, diag.TooManyArrayAccessIndexes, n.Span, "too many indices for this array's depth").Emit()
		n.Type = c.Types.Primitive(types.KindError)
		return
	}
	for _, idx := range indices {
		c.CheckExpr(idx)
		idxT := c.Types.Lookup(c.Arena.Get(idx).Type)
		if !idxT.IsInt() {
			diag.New(c.Report, diag.ArrayAccessExpectsInt, c.Arena.Get(idx).Span, "array index must be an integer").Emit()
			n.Type = c.Types.Primitive(types.KindError)
			return
		}
	}

	nIndices, err := safecast.Conv[uint32](len(indices))
	if err != nil {
		panic(fmt.Errorf("array access index count overflow: %w", err))
	}
	remaining := depth - nIndices
	if remaining == 0 {
		n.Type = elemBase
	} else {
		n.Type = c.Types.MakeArrDepth(elemBase, remaining)
	}
	n.LiteralConstant = false
	n.ComptimeCompat = false
}

// findModuleByUniqueID looks up the module symbol naming a module() type
// within this unit's declared and imported modules, used to resume a dot
// expression walk after the first factor.
func (c *Checker) findModuleByUniqueID(uniqueID uint32) *symtab.ModuleSymbol {
	for _, m := range c.Unit.Table.Modules() {
		if m.UniqueID == uniqueID {
			return m
		}
	}
	for _, m := range c.Unit.LoadedModules {
		if m.UniqueID == uniqueID {
			return m
		}
	}
	return nil
}

// checkDotOp implements spec.md §4.4 "Dot expressions": a left-folded
// chain of factors threading ref_scope/ref_module/static_context state.
// The first factor establishes the base (this, a module name for a static
// qualifier, or a plain value); every following factor resolves a field or
// method on the previous factor's module type.
func (c *Checker) checkDotOp(id astree.NodeID, n *astree.Node) {
	if len(n.Children) == 0 {
		n.Type = c.Types.Primitive(types.KindError)
		return
	}

	var curType types.TypeID
	var curModule *symtab.ModuleSymbol
	staticContext := false

	first := c.Arena.Get(n.Children[0])
	switch first.Kind {
	case astree.KindThis:
		if c.inStaticFunc {
			diag.New(c.Report, diag.CannotUseThisInStaticContext, first.Span, "'this' cannot be used in a static context").Emit()
			n.Type = c.Types.Primitive(types.KindError)
			return
		}
		curModule = c.currentModule
		first.Type = c.Types.MakeModule(curModule.UniqueID)
		first.RefModule = curModule.ID
		curType = first.Type
		staticContext = false

	case astree.KindIdent:
		if m, ok := c.lookupModuleName(first.NameKey); ok {
			curModule = m
			staticContext = true
			first.Type = c.Types.MakeModule(m.UniqueID)
			first.RefModule = m.ID
			first.StaticContext = true
		} else {
			c.CheckExpr(n.Children[0])
			curType = first.Type
			t := c.Types.Lookup(curType)
			if t.Kind == types.KindModule {
				curModule = c.findModuleByUniqueID(t.ModuleUniqueID)
			}
		}

	case astree.KindCall:
		c.CheckExpr(n.Children[0])
		curType = first.Type
		t := c.Types.Lookup(curType)
		if t.Kind == types.KindModule {
			curModule = c.findModuleByUniqueID(t.ModuleUniqueID)
		}

	default:
		c.CheckExpr(n.Children[0])
		curType = first.Type
	}

	for i := 1; i < len(n.Children); i++ {
		factor := c.Arena.Get(n.Children[i])
		if curModule == nil {
			diag.New(c.Report, diag.TypeDoesNotHaveField, factor.Span, "expression has no accessible members").Emit()
			factor.Type = c.Types.Primitive(types.KindError)
			n.Type = factor.Type
			return
		}
		switch factor.Kind {
		case astree.KindIdent:
			f := findField(curModule, factor.NameKey)
			if f == nil {
				diag.New(c.Report, diag.TypeDoesNotHaveField, factor.Span,
					fmt.Sprintf("module %q has no field %q", c.Words.Reveal(curModule.NameKey), c.Words.Reveal(factor.NameKey))).Emit()
				factor.Type = c.Types.Primitive(types.KindError)
				n.Type = factor.Type
				return
			}
			if staticContext {
				diag.New(c.Report, diag.AccessingFieldFromStaticContext, factor.Span,
					fmt.Sprintf("cannot access field %q from a static context", c.Words.Reveal(factor.NameKey))).Emit()
				factor.Type = c.Types.Primitive(types.KindError)
				n.Type = factor.Type
				return
			}
			if f.Mods.Has(astree.ModPrivate) && curModule != c.currentModule {
				diag.New(c.Report, diag.FieldNotVisible, factor.Span,
					fmt.Sprintf("field %q is not visible here", c.Words.Reveal(factor.NameKey))).Emit()
				factor.Type = c.Types.Primitive(types.KindError)
				n.Type = factor.Type
				return
			}
			factor.Type = f.Type
			curType = f.Type
			t := c.Types.Lookup(curType)
			curModule = nil
			if t.Kind == types.KindModule {
				curModule = c.findModuleByUniqueID(t.ModuleUniqueID)
			}
			staticContext = false

		case astree.KindCall:
			argTypes := c.checkArgs(factor.Children)
			fn := c.resolveMethodCall(factor, curModule, argTypes, staticContext)
			if fn == nil {
				n.Type = factor.Type
				return
			}
			factor.Symbol = fn.ID
			factor.Type = fn.ReturnType
			curType = fn.ReturnType
			t := c.Types.Lookup(curType)
			curModule = nil
			if t.Kind == types.KindModule {
				curModule = c.findModuleByUniqueID(t.ModuleUniqueID)
			}
			staticContext = false

		default:
			c.CheckExpr(n.Children[i])
			curType = factor.Type
			curModule = nil
		}
	}

	last := c.Arena.Get(n.Children[len(n.Children)-1])
	n.Type = last.Type
	n.LiteralConstant = false
	n.ComptimeCompat = false
}

// lookupModuleName reports whether name names a module visible to this
// unit (declared locally or imported), used to tell a static qualifier
// apart from a plain identifier at the head of a dot expression.
func (c *Checker) lookupModuleName(name word.Key) (*symtab.ModuleSymbol, bool) {
	if m, ok := c.Unit.Table.FindModule(name); ok {
		return m, true
	}
	if m, ok := c.Unit.LoadedModules[name]; ok {
		return m, true
	}
	return nil, false
}

// checkVarObject implements `var X(...)`: X must name a loaded module;
// if it declares no constructors, a zero-argument invocation default-
// constructs it, otherwise the arguments must match one overload exactly
// as spec.md §4.4 "Overload resolution" describes.
func (c *Checker) checkVarObject(id astree.NodeID, n *astree.Node) {
	mod, ok := c.lookupModuleName(n.NameKey)
	if !ok {
		diag.New(c.Report, diag.CouldNotFindModuleType, n.Span,
			fmt.Sprintf("could not find module type %q", c.Words.Reveal(n.NameKey))).Emit()
		n.Type = c.Types.Primitive(types.KindError)
		return
	}
	argTypes := c.checkArgs(n.Children)

	if mod.HasNoConstructorsDeclared {
		if len(n.Children) != 0 {
			diag.New(c.Report, diag.CouldNotFindConstructor, n.Span,
				fmt.Sprintf("module %q declares no constructors but arguments were given", c.Words.Reveal(n.NameKey))).Emit()
			n.Type = c.Types.Primitive(types.KindError)
			return
		}
	} else {
		ctor := FindBestCandidate(c.Types, mod.Constructors, argTypes)
		if ctor == nil {
			diag.New(c.Report, diag.CouldNotFindConstructor, n.Span,
				fmt.Sprintf("could not find a constructor of %q matching the given arguments", c.Words.Reveal(n.NameKey))).Emit()
			n.Type = c.Types.Primitive(types.KindError)
			return
		}
		n.Symbol = ctor.ID
	}

	n.Type = c.Types.MakeModule(mod.UniqueID)
	n.LiteralConstant = false
	n.ComptimeCompat = false
}
