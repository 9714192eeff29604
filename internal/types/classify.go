package types

// Classification predicates and size queries, grounded directly on
// original_source/nyla/type.cpp's is_number/is_int/is_float/is_signed/
// is_char/mem_size. Characters are deliberately classed as integers so
// arithmetic can operate on them, matching the historical comment in
// type.cpp.

func (t Type) IsNumber() bool {
	switch t.Kind {
	case KindByte, KindShort, KindInt, KindLong,
		KindUByte, KindUShort, KindUInt, KindULong,
		KindFloat, KindDouble,
		KindChar8, KindChar16, KindChar32:
		return true
	}
	return false
}

func (t Type) IsInt() bool {
	switch t.Kind {
	case KindByte, KindShort, KindInt, KindLong,
		KindUByte, KindUShort, KindUInt, KindULong,
		KindChar8, KindChar16, KindChar32:
		return true
	}
	return false
}

func (t Type) IsFloat() bool {
	return t.Kind == KindFloat || t.Kind == KindDouble
}

func (t Type) IsSigned() bool {
	switch t.Kind {
	case KindByte, KindShort, KindInt, KindLong,
		KindFloat, KindDouble,
		KindChar8, KindChar16, KindChar32:
		return true
	}
	return false
}

func (t Type) IsChar() bool {
	switch t.Kind {
	case KindChar8, KindChar16, KindChar32:
		return true
	}
	return false
}

func (t Type) IsPtr() bool    { return t.Kind == KindPtr }
func (t Type) IsArr() bool    { return t.Kind == KindArr }
func (t Type) IsModule() bool { return t.Kind == KindModule }

// MemSize mirrors type::mem_size. Pointers and arrays are represented as a
// single machine pointer (SPEC_FULL.md §5 array representation contract);
// this function reports the pointer-sized 8 bytes used throughout this
// repo's lowering contract, which targets 64-bit hosts exclusively.
func (t Type) MemSize() uint32 {
	switch t.Kind {
	case KindByte, KindUByte, KindChar8:
		return 1
	case KindShort, KindUShort, KindChar16:
		return 2
	case KindInt, KindUInt, KindChar32:
		return 4
	case KindLong, KindULong:
		return 8
	case KindFloat:
		return 4
	case KindDouble:
		return 8
	case KindBool:
		return 1
	case KindVoid:
		return 0
	case KindArr, KindPtr:
		return 8
	default:
		return 0
	}
}

// GetInt picks the integer kind for the given byte width and signedness,
// mirroring type::get_int.
func GetInt(memSize uint32, signed bool) Kind {
	switch memSize {
	case 1:
		if signed {
			return KindByte
		}
		return KindUByte
	case 2:
		if signed {
			return KindShort
		}
		return KindUShort
	case 4:
		if signed {
			return KindInt
		}
		return KindUInt
	case 8:
		if signed {
			return KindLong
		}
		return KindULong
	}
	panic("types: bad integer memory size")
}

// GetFloat mirrors type::get_float.
func GetFloat(memSize uint32) Kind {
	switch memSize {
	case 4:
		return KindFloat
	case 8:
		return KindDouble
	}
	panic("types: bad float memory size")
}

// Equals implements structural equality the way original_source/nyla/type.cpp's
// type::equals does: modules compare by unique id; pointers-to-module
// compare by depth and base type; everything else is identity, which in
// this repo is TypeID equality rather than pointer equality (P1/I-T1).
func (in *Interner) Equals(a, b TypeID) bool {
	if a == b {
		return true
	}
	ta, tb := in.Lookup(a), in.Lookup(b)
	if ta.Kind != tb.Kind {
		return false
	}
	switch ta.Kind {
	case KindModule:
		return ta.ModuleUniqueID == tb.ModuleUniqueID
	case KindPtr:
		baseA, depthA := in.PtrBase(a)
		baseB, depthB := in.PtrBase(b)
		if in.Lookup(baseA).Kind == KindModule {
			return depthA == depthB && in.Equals(baseA, baseB)
		}
		return a == b
	default:
		return a == b
	}
}

// PtrBase walks to the base (non-pointer) element type and returns it with
// the pointer depth, mirroring get_ptr_base_type/calculate_ptr_depth.
func (in *Interner) PtrBase(id TypeID) (base TypeID, depth uint32) {
	t := in.Lookup(id)
	if t.Kind != KindPtr {
		return id, 0
	}
	elem := t.Elem
	for in.Lookup(elem).Kind == KindPtr {
		elem = in.Lookup(elem).Elem
	}
	return elem, t.Depth
}

// ArrBase walks to the base (non-array) element type and returns it with
// the array depth, mirroring get_arr_base_type/calculate_arr_depth.
func (in *Interner) ArrBase(id TypeID) (base TypeID, depth uint32) {
	t := in.Lookup(id)
	if t.Kind != KindArr {
		return id, 0
	}
	elem := t.Elem
	for in.Lookup(elem).Kind == KindArr {
		elem = in.Lookup(elem).Elem
	}
	return elem, t.Depth
}
