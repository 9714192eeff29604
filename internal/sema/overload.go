package sema

import (
	"nylac/internal/symtab"
	"nylac/internal/types"
)

// FindBestCandidate implements spec.md §4.4 "Overload resolution", grounded
// on original_source/nyla/analysis.cpp's find_best_canidate: a candidate is
// viable if every argument is assignable to the corresponding parameter
// type; the score is the count of positions where arg type != param type
// by identity; the minimum score wins. Ties pick the first declared
// candidate (spec.md §9 open question (a), resolved: current C++ behavior
// kept). Returns nil if no viable candidate exists (P7: deterministic
// given a fixed candidate set and fixed arguments).
func FindBestCandidate(in *types.Interner, candidates []*symtab.FunctionSymbol, argTypes []types.TypeID) *symtab.FunctionSymbol {
	var best *symtab.FunctionSymbol
	bestConflicts := -1

	for _, fn := range candidates {
		if len(fn.ParamTypes) != len(argTypes) {
			continue
		}
		viable := true
		conflicts := 0
		for i, paramT := range fn.ParamTypes {
			argT := argTypes[i]
			if !IsAssignable(in, paramT, argT) {
				viable = false
				break
			}
			if !in.Equals(paramT, argT) {
				conflicts++
			}
		}
		if !viable {
			continue
		}
		if best == nil || conflicts < bestConflicts {
			best = fn
			bestConflicts = conflicts
		}
	}
	return best
}
