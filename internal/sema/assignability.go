// Package sema implements semantic analysis (spec.md §4.4): type checking,
// overload resolution, implicit-conversion insertion, dot-expression
// resolution, cyclic-field detection, and compile-time-eligibility
// inference. Grounded directly on original_source/nyla/analysis.cpp's
// exact algorithms, translated into explicit Go switches and error
// returns in place of the historical C++'s mutation-heavy style.
package sema

import "nylac/internal/types"

// IsAssignable implements spec.md §4.4 "Implicit conversions (assignability
// to <=_ from)". module inheritance is not implemented (spec.md §9 open
// question (c)): module-to-module assignability is strict unique_id
// equality only.
func IsAssignable(in *types.Interner, to, from types.TypeID) bool {
	if in.Equals(to, from) {
		return true
	}
	toT, fromT := in.Lookup(to), in.Lookup(from)

	// null into any pointer.
	if toT.Kind == types.KindPtr && fromT.Kind == types.KindNull {
		return true
	}

	switch {
	case toT.IsInt() && fromT.IsInt():
		// Numeric integers: assignable if destination has >= memory size.
		return toT.MemSize() >= fromT.MemSize()
	case toT.IsFloat() && fromT.IsInt():
		// Integers into floats: always assignable.
		return true
	case toT.IsFloat() && fromT.IsFloat():
		// Floats to floats: larger-or-equal.
		return toT.MemSize() >= fromT.MemSize()
	}

	// Array into pointer: element base type equal and pointer depth
	// equals array depth.
	if toT.Kind == types.KindPtr && fromT.Kind == types.KindArr {
		toBase, toDepth := in.PtrBase(to)
		fromBase, fromDepth := in.ArrBase(from)
		return toDepth == fromDepth && in.Equals(toBase, fromBase)
	}

	// String literal into array of char*: element type must be a
	// character type (length is checked separately, spec.md §4.7).
	if toT.Kind == types.KindArr && fromT.Kind == types.KindString {
		elem := in.Lookup(toT.Elem)
		return elem.IsChar()
	}

	// Array into array: equal depth and equal element base type, OR
	// source element base type is `mixed` (an array literal not yet
	// pinned to a destination type).
	if toT.Kind == types.KindArr && fromT.Kind == types.KindArr {
		toBase, toDepth := in.ArrBase(to)
		fromBase, fromDepth := in.ArrBase(from)
		if toDepth != fromDepth {
			return false
		}
		if in.Lookup(fromBase).Kind == types.KindMixed {
			return true
		}
		return in.Equals(toBase, fromBase)
	}

	// Module into module: equal unique_id (no subtyping).
	if toT.Kind == types.KindModule && fromT.Kind == types.KindModule {
		return toT.ModuleUniqueID == fromT.ModuleUniqueID
	}

	return false
}
