// Package astree implements the AST: a tree of expression and statement
// nodes produced by the parser (out of scope, spec.md §1). Every node
// carries a resolved type and the two propagated flags LiteralConstant and
// ComptimeCompat (spec.md §3 "AST").
//
// Nodes are a tagged variant rather than a class hierarchy (spec.md §9
// Design Notes "Polymorphic AST"): one Node struct carries a Kind
// discriminator and the payload fields relevant to that kind, and callers
// dispatch by switching on Kind. This also lets the whole tree live in one
// Arena, built up during a unit's analysis and freed in bulk afterward
// (spec.md §9 "Arena for AST"; spec.md §5 lifecycle).
package astree

import (
	"fmt"

	"fortio.org/safecast"

	"nylac/internal/source"
	"nylac/internal/symref"
	"nylac/internal/types"
	"nylac/internal/word"
)

// Kind discriminates a Node's payload.
type Kind uint16

const (
	KindInvalid Kind = iota

	// Literals and references.
	KindIntLit
	KindFloatLit
	KindBoolLit
	KindStringLit
	KindNullLit
	KindIdent
	KindThis

	// Composite expressions.
	KindUnary
	KindBinary
	KindAssign
	KindCall
	KindArrayAccess
	KindDotOp    // a left-folded chain of factors (spec.md §4.4 "Dot expressions")
	KindCast     // an implicit or explicit cast node
	KindArrayLit
	KindVarObject // `var X(...)`

	// Statements.
	KindBlock
	KindVarDecl
	KindReturn
	KindIf
	KindFor
	KindWhile
	KindExprStmt
)

// BinOp enumerates binary operators relevant to analysis (spec.md §4.4
// implicit casts: arithmetic/bitwise/shift/modulo/boolean/comparison).
type BinOp uint8

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpAnd // boolean &&
	OpOr  // boolean ||
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

// IsBitwiseOrShiftOrMod reports operators that reject float operands
// (spec.md §4.4: "Bitwise/shift/modulo reject float operands").
func (op BinOp) IsBitwiseOrShiftOrMod() bool {
	switch op {
	case OpMod, OpBitAnd, OpBitOr, OpBitXor, OpShl, OpShr:
		return true
	}
	return false
}

// IsBooleanConnective reports `&&`/`||` (spec.md §4.4: "Boolean connectives
// require bool operands"; spec.md §9 open question (d) resolved to
// explicit short-circuit semantics — see internal/lower/body.go emitBinary).
func (op BinOp) IsBooleanConnective() bool {
	return op == OpAnd || op == OpOr
}

// IsComparison reports operators that require numeric operands and yield
// bool.
func (op BinOp) IsComparison() bool {
	switch op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return true
	}
	return false
}

// UnOp enumerates unary operators.
type UnOp uint8

const (
	OpNeg UnOp = iota
	OpNot
)

// NodeID is an index into an Arena. Zero is reserved (sentinel / "no node").
type NodeID uint32

// NilNode is never returned by Arena.Alloc.
const NilNode NodeID = 0

// Node is the tagged-variant AST node.
type Node struct {
	Kind Kind
	Span source.Span

	// Type/LiteralConstant/ComptimeCompat are filled in by analysis
	// (spec.md §3, §4.4). Before analysis Type is types.NoType.
	Type            types.TypeID
	LiteralConstant bool
	ComptimeCompat  bool

	// Payload, interpreted per Kind. Not every field applies to every
	// Kind; see the Kind constants' comments above for which ones do.
	NameKey word.Key // KindIdent, KindCall (callee name), KindVarObject, KindVarDecl, KindArrayLit element hint n/a
	BinOp   BinOp    // KindBinary
	UnOp    UnOp     // KindUnary
	IntVal  uint64   // KindIntLit
	FloatVal float64 // KindFloatLit
	BoolVal bool     // KindBoolLit
	StrVal  string   // KindStringLit

	// Children holds sub-nodes; meaning depends on Kind:
	//   KindUnary:      [operand]
	//   KindBinary:     [lhs, rhs]
	//   KindAssign:     [target, value]
	//   KindCall:       [arg0, arg1, ...]
	//   KindArrayAccess:[base, index0, index1, ...]
	//   KindDotOp:      [factor0, factor1, ...]  (each itself Ident/Call/ArrayAccess/This)
	//   KindCast:       [operand]
	//   KindArrayLit:   [elem0, elem1, ...]       (elements may themselves be KindArrayLit)
	//   KindVarObject:  [arg0, arg1, ...]
	//   KindBlock:      [stmt0, stmt1, ...]
	//   KindVarDecl:    [dimSize0, ..., init?]    (Dims below says how many are sizes)
	//   KindReturn:     [value] or empty for void return
	//   KindIf:         [cond, thenBlock, elseBlock?]
	//   KindFor:        [init?, cond?, post?, body]
	//   KindWhile:      [cond, body]
	//   KindExprStmt:   [expr]
	Children []NodeID

	// Dims is the count of leading Children that are explicit array
	// dimension-size expressions, for KindVarDecl (spec.md §4.4 "Arrays
	// and array literals").
	Dims int

	// DeclaredType is the declared (pre-resolution) type for KindVarDecl,
	// KindCast's target type. May be a KindFDModule type prior to
	// resolution (internal/resolve).
	DeclaredType types.TypeID

	// Symbol is the resolved symbol handle attached by analysis to every
	// identifier, call, and array-access node (spec.md §4.4). Interpreted
	// by internal/symtab; NoSymbol before resolution.
	Symbol symref.SymbolID

	// RefModule/StaticContext carry the dot-expression walk state attached to
	// a KindDotOp's final factor and to a bare KindIdent/KindCall, so
	// lowering can tell a static module-qualified access from an
	// instance access (spec.md §4.4 "Dot expressions").
	RefModule symref.SymbolID
	StaticContext bool
}

// Arena owns a unit's AST nodes. Index 0 is reserved so NilNode is never a
// valid allocation, matching the sentinel-at-zero convention used by the
// word and type tables.
type Arena struct {
	nodes []Node
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{nodes: make([]Node, 1, 256)}
}

// Alloc appends n and returns its NodeID.
func (a *Arena) Alloc(n Node) NodeID {
	slot, err := safecast.Conv[uint32](len(a.nodes))
	if err != nil {
		panic(fmt.Errorf("node arena overflow: %w", err))
	}
	id := NodeID(slot)
	a.nodes = append(a.nodes, n)
	return id
}

// Get returns a mutable pointer to the node at id. Analysis mutates nodes
// in place (Type/LiteralConstant/ComptimeCompat, and Children when
// inserting implicit casts).
func (a *Arena) Get(id NodeID) *Node {
	return &a.nodes[id]
}

// Free releases the arena's backing storage in bulk (spec.md §5: "The AST
// is destroyed immediately after lowering emits the function body").
func (a *Arena) Free() {
	a.nodes = nil
}

// Len reports the number of allocated nodes, excluding the sentinel.
func (a *Arena) Len() int {
	return len(a.nodes) - 1
}

// InsertCast wraps an existing node's slot content into a new KindCast
// node targeting the given type, and returns the new node's id. Callers
// replace the parent's child reference with the returned id. This is how
// analysis implements I-T-following implicit-cast insertion (spec.md §4.4
// "Implicit casts") without needing parent back-pointers: the caller
// already holds the parent and the child index being replaced.
func (a *Arena) InsertCast(operand NodeID, target types.TypeID) NodeID {
	span := a.Get(operand).Span
	return a.Alloc(Node{
		Kind:         KindCast,
		Span:         span,
		Type:         target,
		DeclaredType: target,
		Children:     []NodeID{operand},
	})
}
