// Package types implements the type table: the process-lifetime table that
// canonicalizes structural type values so equality becomes identity.
package types

import (
	"fmt"

	"fortio.org/safecast"

	"nylac/internal/word"
)

// Kind discriminates the Type sum type (SPEC_FULL.md §4, spec.md §3).
type Kind uint8

const (
	KindInvalid Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindUByte
	KindUShort
	KindUInt
	KindULong
	KindFloat
	KindDouble
	KindChar8
	KindChar16
	KindChar32
	KindBool
	KindVoid
	KindPtr
	KindArr
	KindModule
	KindNull
	KindMixed
	KindError
	KindString
	KindFDModule
)

// TypeID is a dense handle into the Interner. Two TypeIDs compare equal iff
// the underlying Type values are structurally equal (I-T1), except for
// fd_module, which is intentionally per-unit (see MakeFDModule below).
type TypeID uint32

// NoType is never returned by Intern.
const NoType TypeID = 0

// Type is an immutable value. Forward-declared module types are NOT
// mutated in place once resolved (contra the historical C++
// implementation's type::resolve_fd_type, see original_source/nyla/type.cpp);
// instead a per-unit resolution map from the fd_module TypeID to its concrete
// module symbol (symtab.FileUnit.FDResolutions) is consulted wherever
// KindFDModule appears, per spec.md §9 Design
// Notes. This keeps every Type value produced by the Interner permanently
// valid.
type Type struct {
	Kind Kind

	// Elem is the element TypeID for KindPtr/KindArr.
	Elem TypeID
	// Depth is one plus the element's depth if the element is the same
	// kind, else one (I-T2). Computed by MakePtr/MakeArr, never by callers.
	Depth uint32

	// ModuleUniqueID identifies a KindModule type across the whole
	// program; globally monotonic, assigned by the symbol table when a
	// module declaration is registered.
	ModuleUniqueID uint32

	// FDModuleName is the interned name of an unresolved forward
	// declaration (KindFDModule only, I-T3).
	FDModuleName word.Key
}

type typeKey struct {
	Kind           Kind
	Elem           TypeID
	ModuleUniqueID uint32
	FDModuleName   word.Key
	fdUnit         uint32 // see Interner.MakeFDModule
}

// Interner is the type table. Its Make* constructors are idempotent: for
// any two structurally equal inputs they return the same TypeID (P1).
type Interner struct {
	byKey map[typeKey]TypeID
	types []Type

	primitives [KindFDModule + 1]TypeID
}

// NewInterner creates a type table with every primitive and sentinel
// singleton pre-interned.
func NewInterner() *Interner {
	in := &Interner{
		byKey: make(map[typeKey]TypeID, 256),
		types: make([]Type, 1, 256), // index 0 reserved as NoType
	}
	for _, k := range []Kind{
		KindByte, KindShort, KindInt, KindLong,
		KindUByte, KindUShort, KindUInt, KindULong,
		KindFloat, KindDouble,
		KindChar8, KindChar16, KindChar32,
		KindBool, KindVoid,
		KindNull, KindMixed, KindError, KindString,
	} {
		in.primitives[k] = in.intern(Type{Kind: k})
	}
	return in
}

// intern must only be called for keys known not to already exist.
func (in *Interner) intern(t Type) TypeID {
	slot, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("type table overflow: %w", err))
	}
	id := TypeID(slot)
	in.types = append(in.types, t)
	in.byKey[keyOf(t, 0)] = id
	return id
}

func keyOf(t Type, fdUnit uint32) typeKey {
	return typeKey{Kind: t.Kind, Elem: t.Elem, ModuleUniqueID: t.ModuleUniqueID, FDModuleName: t.FDModuleName, fdUnit: fdUnit}
}

// Lookup returns the Type value for a TypeID previously returned by this
// Interner. Panics on an unknown id: a caller bug, not a recoverable state.
func (in *Interner) Lookup(id TypeID) Type {
	if id == NoType || int(id) >= len(in.types) {
		panic(fmt.Sprintf("types: Lookup of unknown TypeID %d", id))
	}
	return in.types[id]
}

// Primitive returns the singleton TypeID for a primitive or sentinel kind.
// Panics if kind is not one of the singleton kinds (KindPtr/KindArr/
// KindModule/KindFDModule have no singleton).
func (in *Interner) Primitive(kind Kind) TypeID {
	switch kind {
	case KindPtr, KindArr, KindModule, KindFDModule, KindInvalid:
		panic("types: Primitive called with a non-singleton kind")
	}
	return in.primitives[kind]
}

// MakePtr canonicalizes ptr(elem). Depth follows I-T2: one plus the
// element's depth if the element is itself a pointer, else one.
func (in *Interner) MakePtr(elem TypeID) TypeID {
	et := in.Lookup(elem)
	depth := uint32(1)
	if et.Kind == KindPtr {
		depth = et.Depth + 1
	}
	t := Type{Kind: KindPtr, Elem: elem, Depth: depth}
	if id, ok := in.byKey[keyOf(t, 0)]; ok {
		return id
	}
	return in.intern(t)
}

// MakeArr canonicalizes arr(elem), mirroring MakePtr's depth rule.
func (in *Interner) MakeArr(elem TypeID) TypeID {
	et := in.Lookup(elem)
	depth := uint32(1)
	if et.Kind == KindArr {
		depth = et.Depth + 1
	}
	t := Type{Kind: KindArr, Elem: elem, Depth: depth}
	if id, ok := in.byKey[keyOf(t, 0)]; ok {
		return id
	}
	return in.intern(t)
}

// MakeArrDepth rebuilds arr(base) nested depth times, used when array
// access consumes fewer index expressions than the array's full depth
// (spec.md §4.4 "Arrays and array literals": a partial index yields an
// array of the remaining depth).
func (in *Interner) MakeArrDepth(base TypeID, depth uint32) TypeID {
	cur := base
	for i := uint32(0); i < depth; i++ {
		cur = in.MakeArr(cur)
	}
	return cur
}

// MakeModule canonicalizes module(uniqueID). Structural equality for
// modules is by unique_id alone (I-T1's module case), so two distinct
// modules sharing a source name in different units never collide.
func (in *Interner) MakeModule(uniqueID uint32) TypeID {
	t := Type{Kind: KindModule, ModuleUniqueID: uniqueID}
	if id, ok := in.byKey[keyOf(t, 0)]; ok {
		return id
	}
	return in.intern(t)
}

// MakeFDModule canonicalizes a forward-declared module reference, scoped
// to unitID so that two different units' unresolved references to a
// same-named module never alias each other's resolution-map entries
// (spec.md §4.1: "Forward-declared module types are canonicalized per
// unit").
func (in *Interner) MakeFDModule(unitID uint32, name word.Key) TypeID {
	t := Type{Kind: KindFDModule, FDModuleName: name}
	key := keyOf(t, unitID)
	if id, ok := in.byKey[key]; ok {
		return id
	}
	slot, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("type table overflow: %w", err))
	}
	id := TypeID(slot)
	in.types = append(in.types, t)
	in.byKey[key] = id
	return id
}

// String renders a Type for diagnostics, mirroring the historical
// type::to_string (original_source/nyla/type.cpp), minus module/fd_module
// name rendering, which requires a word table the Interner does not hold:
// a module renders as module#<unique id> and an fd_module as
// fd_module(<name key>).
func (in *Interner) String(id TypeID) string {
	t := in.Lookup(id)
	switch t.Kind {
	case KindByte:
		return "byte"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindUByte:
		return "ubyte"
	case KindUShort:
		return "ushort"
	case KindUInt:
		return "uint"
	case KindULong:
		return "ulong"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindChar8:
		return "char8"
	case KindChar16:
		return "char16"
	case KindChar32:
		return "char32"
	case KindBool:
		return "bool"
	case KindVoid:
		return "void"
	case KindError:
		return "error"
	case KindString:
		return "String"
	case KindMixed:
		return "<T>"
	case KindNull:
		return "null"
	case KindPtr:
		return in.String(t.Elem) + "*"
	case KindArr:
		return in.String(t.Elem) + "[]"
	case KindModule:
		return fmt.Sprintf("module#%d", t.ModuleUniqueID)
	case KindFDModule:
		return fmt.Sprintf("fd_module(%d)", t.FDModuleName)
	}
	return "?"
}
