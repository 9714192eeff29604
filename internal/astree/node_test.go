package astree

import (
	"testing"

	"nylac/internal/types"
)

func TestArenaAllocAndFree(t *testing.T) {
	a := NewArena()
	lhs := a.Alloc(Node{Kind: KindIntLit, IntVal: 2})
	rhs := a.Alloc(Node{Kind: KindIntLit, IntVal: 3})
	bin := a.Alloc(Node{Kind: KindBinary, BinOp: OpAdd, Children: []NodeID{lhs, rhs}})
	if a.Len() != 3 {
		t.Fatalf("expected 3 nodes, got %d", a.Len())
	}
	got := a.Get(bin)
	if got.Kind != KindBinary || len(got.Children) != 2 {
		t.Fatalf("unexpected binary node: %+v", got)
	}
	a.Free()
	if a.Len() != -1 {
		t.Fatalf("expected freed arena to report empty, got %d", a.Len())
	}
}

func TestInsertCastWrapsOperand(t *testing.T) {
	a := NewArena()
	in := types.NewInterner()
	operand := a.Alloc(Node{Kind: KindIntLit, IntVal: 5, Type: in.Primitive(types.KindInt)})
	castID := a.InsertCast(operand, in.Primitive(types.KindLong))
	cast := a.Get(castID)
	if cast.Kind != KindCast || cast.Children[0] != operand {
		t.Fatalf("InsertCast did not wrap operand correctly: %+v", cast)
	}
	if cast.Type != in.Primitive(types.KindLong) {
		t.Fatal("cast node did not carry target type")
	}
}
