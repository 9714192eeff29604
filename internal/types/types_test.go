package types

import (
	"testing"

	"nylac/internal/word"
)

func TestCanonicalizationP1(t *testing.T) {
	in := NewInterner()
	intID := in.Primitive(KindInt)

	a := in.MakePtr(intID)
	b := in.MakePtr(intID)
	if a != b {
		t.Fatalf("structurally equal ptr(int) types were not interned to the same TypeID")
	}

	arrA := in.MakeArr(a)
	arrB := in.MakeArr(b)
	if arrA != arrB {
		t.Fatalf("structurally equal arr(ptr(int)) types diverged")
	}
}

func TestPtrDepth(t *testing.T) {
	in := NewInterner()
	intID := in.Primitive(KindInt)
	p1 := in.MakePtr(intID)
	p2 := in.MakePtr(p1)
	p3 := in.MakePtr(p2)
	if in.Lookup(p3).Depth != 3 {
		t.Fatalf("expected depth 3, got %d", in.Lookup(p3).Depth)
	}
	base, depth := in.PtrBase(p3)
	if base != intID || depth != 3 {
		t.Fatalf("PtrBase mismatch: base=%v depth=%d", base, depth)
	}
}

func TestModuleIdentityByUniqueID(t *testing.T) {
	in := NewInterner()
	m1 := in.MakeModule(7)
	m2 := in.MakeModule(7)
	m3 := in.MakeModule(8)
	if m1 != m2 {
		t.Fatal("modules with the same unique id must canonicalize identically")
	}
	if m1 == m3 {
		t.Fatal("modules with different unique ids must not collide")
	}
}

func TestFDModuleScopedPerUnit(t *testing.T) {
	in := NewInterner()
	// same name, different owning units: must not alias (spec.md §4.1).
	nameKey := word.Key(42)
	a := in.MakeFDModule(1, nameKey)
	b := in.MakeFDModule(2, nameKey)
	if a == b {
		t.Fatal("fd_module types from different units must not collide")
	}
	c := in.MakeFDModule(1, nameKey)
	if a != c {
		t.Fatal("fd_module types from the same unit and name must canonicalize")
	}
}

func TestEqualsReflexive(t *testing.T) {
	in := NewInterner()
	for _, k := range []Kind{KindByte, KindInt, KindLong, KindFloat, KindDouble, KindBool} {
		id := in.Primitive(k)
		if !in.Equals(id, id) {
			t.Fatalf("expected %v equal to itself", k)
		}
	}
}

func TestMemSizeByteSmallerThanInt(t *testing.T) {
	in := NewInterner()
	byteT := in.Lookup(in.Primitive(KindByte))
	intT := in.Lookup(in.Primitive(KindInt))
	if byteT.MemSize() >= intT.MemSize() {
		t.Fatal("byte must be smaller than int")
	}
}
