package lower

import (
	"math"

	"nylac/internal/astree"
	"nylac/internal/backend"
	"nylac/internal/symtab"
	"nylac/internal/types"
)

// DeferredInit is a global whose initializer was not a literal constant
// expression: the global gets a zero/null static initializer, and the
// initializer expression is evaluated and stored into it from the
// synthetic startup block instead (spec.md §4.5 step 3/step 5).
type DeferredInit struct {
	Global backend.GlobalHandle
	Type   types.TypeID
	Expr   astree.NodeID
}

// EmitGlobals is lowering driver step 3. unit.Globals and unit.GlobalDecls
// are parallel slices built together by sema (internal/sema/module.go).
func (d *Driver) EmitGlobals(unit *symtab.FileUnit) []DeferredInit {
	var deferred []DeferredInit
	for i, decl := range unit.GlobalDecls {
		sym := unit.Globals[i]
		th := d.typeHandle(sym.Type)

		if decl.Init == astree.NilNode {
			d.Backend.DeclareGlobal(d.Words.Reveal(sym.NameKey), th, d.Backend.ConstZero(th))
			sym.IRHandle = d.Words.Reveal(sym.NameKey)
			continue
		}

		if v, ok := d.evalConst(unit.Arena, decl.Init); ok {
			d.Backend.DeclareGlobal(d.Words.Reveal(sym.NameKey), th, v)
		} else {
			h := d.Backend.DeclareGlobal(d.Words.Reveal(sym.NameKey), th, d.Backend.ConstZero(th))
			deferred = append(deferred, DeferredInit{Global: h, Type: sym.Type, Expr: decl.Init})
		}
		sym.IRHandle = d.Words.Reveal(sym.NameKey)
	}
	return deferred
}

// evalConst folds a literal-constant expression tree to a backend
// constant value (spec.md §4.5 step 3, §6.2(h)). It only handles the
// scalar literal forms and constant casts between them; any other shape
// (including nested module/array aggregates with a non-literal leaf) is
// reported as not foldable so the caller defers it to startup wiring,
// per spec.md §4.5 "Module-in-module initialization": "any non-literal-
// constant field is zero-initialized ... and appended to the deferred
// initializer list."
func (d *Driver) evalConst(a *astree.Arena, id astree.NodeID) (backend.Value, bool) {
	n := a.Get(id)
	if !n.LiteralConstant {
		return 0, false
	}
	switch n.Kind {
	case astree.KindIntLit:
		return d.Backend.ConstInt(d.typeHandle(n.Type), n.IntVal), true
	case astree.KindFloatLit:
		return d.Backend.ConstFloat(d.typeHandle(n.Type), math.Float64bits(n.FloatVal)), true
	case astree.KindBoolLit:
		v := uint64(0)
		if n.BoolVal {
			v = 1
		}
		return d.Backend.ConstInt(d.typeHandle(n.Type), v), true
	case astree.KindNullLit:
		return d.Backend.ConstZero(d.typeHandle(n.Type)), true
	case astree.KindCast:
		// A scalar literal operand is re-folded at the cast's own target
		// type; any other operand shape is not folded.
		operand := a.Get(n.Children[0])
		th, target := d.typeHandle(n.Type), d.Types.Lookup(n.Type)
		switch {
		case operand.Kind == astree.KindIntLit && target.IsInt():
			return d.Backend.ConstInt(th, operand.IntVal), true
		case operand.Kind == astree.KindIntLit && target.IsFloat():
			return d.Backend.ConstFloat(th, math.Float64bits(float64(operand.IntVal))), true
		case operand.Kind == astree.KindFloatLit && target.IsFloat():
			return d.Backend.ConstFloat(th, math.Float64bits(operand.FloatVal)), true
		}
		return 0, false
	case astree.KindArrayLit:
		members := make([]backend.Value, 0, len(n.Children))
		for _, child := range n.Children {
			v, ok := d.evalConst(a, child)
			if !ok {
				return 0, false
			}
			members = append(members, v)
		}
		return d.Backend.ConstAggregate(d.typeHandle(n.Type), members), true
	default:
		return 0, false
	}
}
