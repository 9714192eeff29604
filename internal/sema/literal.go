package sema

import (
	"strconv"

	"nylac/internal/diag"
	"nylac/internal/source"
	"nylac/internal/types"
)

// ClassifyIntLiteral implements spec.md §8 "Boundary behaviors": the
// literal `18446744073709551615` is accepted as ulong; one past that,
// `18446744073709551616`, is rejected as INT_TOO_LARGE. Tokenization
// itself is out of scope (spec.md §1), but the width/signedness this
// function derives is a property of analysis, not of the lexer, so it is
// implemented here as the "dedicated constant evaluator" spec.md §9
// suggests rather than leaked into an external backend.
func ClassifyIntLiteral(r diag.Reporter, span source.Span, text string) (types.Kind, uint64, bool) {
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		diag.New(r, diag.IntTooLarge, span, "integer literal too large").Emit()
		return types.KindInvalid, 0, false
	}
	switch {
	case v <= 0x7fffffff:
		return types.KindInt, v, true
	default:
		return types.KindULong, v, true
	}
}
