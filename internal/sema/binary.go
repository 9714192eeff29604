package sema

import (
	"fmt"

	"nylac/internal/astree"
	"nylac/internal/diag"
	"nylac/internal/types"
)

// CheckBinary implements spec.md §4.4 "Implicit casts" for arithmetic,
// bitwise/shift/modulo, boolean-connective, and comparison operators. It
// mutates node (the KindBinary node at nodeID) in place: casts are
// inserted as new KindCast nodes replacing the original operand children,
// exactly as spec.md §3 requires ("inserted implicit casts at coercion
// points"). Returns false (node.Type == error sentinel) on failure.
func CheckBinary(a *astree.Arena, in *types.Interner, r diag.Reporter, nodeID astree.NodeID) bool {
	node := a.Get(nodeID)
	lhsID, rhsID := node.Children[0], node.Children[1]
	lhsT := a.Get(lhsID).Type
	rhsT := a.Get(rhsID).Type
	lhs, rhs := in.Lookup(lhsT), in.Lookup(rhsT)
	op := node.BinOp

	fail := func(msg string) bool {
		node.Type = in.Primitive(types.KindError)
		diag.New(r, diag.OpCannotApplyTo, node.Span, msg).Emit()
		return false
	}

	switch {
	case op.IsBooleanConnective():
		if lhs.Kind != types.KindBool || rhs.Kind != types.KindBool {
			return fail(fmt.Sprintf("operator requires bool operands, got %s and %s", in.String(lhsT), in.String(rhsT)))
		}
		node.Type = in.Primitive(types.KindBool)

	case op.IsComparison():
		if !lhs.IsNumber() || !rhs.IsNumber() {
			return fail(fmt.Sprintf("comparison requires numeric operands, got %s and %s", in.String(lhsT), in.String(rhsT)))
		}
		node.Type = in.Primitive(types.KindBool)

	case op.IsBitwiseOrShiftOrMod():
		if lhs.IsFloat() || rhs.IsFloat() {
			return fail("bitwise, shift, and modulo operators reject float operands")
		}
		if !lhs.IsInt() || !rhs.IsInt() {
			return fail(fmt.Sprintf("operator requires integer operands, got %s and %s", in.String(lhsT), in.String(rhsT)))
		}
		target := promoteIntWidth(in, lhsT, rhsT)
		insertCastIfNeeded(a, in, node, 0, target)
		insertCastIfNeeded(a, in, node, 1, target)
		node.Type = target

	default: // arithmetic: +, -, *, /
		if !lhs.IsNumber() || !rhs.IsNumber() {
			return fail(fmt.Sprintf("arithmetic operator cannot apply to %s and %s", in.String(lhsT), in.String(rhsT)))
		}
		var target types.TypeID
		if lhs.IsFloat() || rhs.IsFloat() {
			target = promoteFloatWidth(in, lhsT, rhsT)
		} else {
			target = promoteIntWidth(in, lhsT, rhsT)
		}
		insertCastIfNeeded(a, in, node, 0, target)
		insertCastIfNeeded(a, in, node, 1, target)
		node.Type = target
	}

	node.LiteralConstant = a.Get(lhsID).LiteralConstant && a.Get(rhsID).LiteralConstant
	node.ComptimeCompat = a.Get(lhsID).ComptimeCompat && a.Get(rhsID).ComptimeCompat
	return true
}

// promoteIntWidth: target width is max(lhs, rhs); signedness is signed if
// either operand is signed, else unsigned (spec.md §4.4 "Integer rule").
func promoteIntWidth(in *types.Interner, lhsID, rhsID types.TypeID) types.TypeID {
	lhs, rhs := in.Lookup(lhsID), in.Lookup(rhsID)
	width := lhs.MemSize()
	if rhs.MemSize() > width {
		width = rhs.MemSize()
	}
	signed := lhs.IsSigned() || rhs.IsSigned()
	return in.Primitive(types.GetInt(width, signed))
}

// promoteFloatWidth: whichever operand is float dominates; target width is
// max(lhs, rhs); the integer operand (if any) is cast to float (spec.md
// §4.4 "Float rule").
func promoteFloatWidth(in *types.Interner, lhsID, rhsID types.TypeID) types.TypeID {
	lhs, rhs := in.Lookup(lhsID), in.Lookup(rhsID)
	width := uint32(4)
	if lhs.IsFloat() {
		width = lhs.MemSize()
	}
	if rhs.IsFloat() && rhs.MemSize() > width {
		width = rhs.MemSize()
	}
	return in.Primitive(types.GetFloat(width))
}

// insertCastIfNeeded replaces node's childIdx'th child with a cast node to
// target, unless the operand is already target-typed (P3: "if
// type(value) == target, the analyzer must not insert a cast node").
func insertCastIfNeeded(a *astree.Arena, in *types.Interner, node *astree.Node, childIdx int, target types.TypeID) {
	child := node.Children[childIdx]
	if a.Get(child).Type == target {
		return
	}
	node.Children[childIdx] = a.InsertCast(child, target)
}
