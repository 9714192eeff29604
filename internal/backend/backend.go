// Package backend declares the contract a native code generator must
// satisfy to consume this compiler's lowering output (spec.md §6.2). The
// generator itself — IR dialect, object-file writing, and the linker
// invocation — is an external collaborator out of this repo's scope;
// internal/lower drives a Backend through this interface and never
// depends on a concrete implementation.
package backend

// TypeHandle, FuncHandle, GlobalHandle, BlockHandle and Value are opaque
// handles the backend hands back to the lowering driver. Their zero value
// means "no handle" the same way every other handle type in this repo
// reserves zero as a sentinel.
type TypeHandle uint32
type FuncHandle uint32
type GlobalHandle uint32
type BlockHandle uint32
type Value uint32

// Linkage distinguishes an externally visible function from a dll-import
// one using an OS-specific calling convention (spec.md §6.2(b),
// SPEC_FULL.md §6 "dll_import external modifier semantics").
type Linkage uint8

const (
	LinkageInternal Linkage = iota
	LinkageExternalExport
	LinkageDLLImport
)

// ConvOp enumerates the conversions spec.md §6.2(f) requires the backend
// to support.
type ConvOp uint8

const (
	ConvIntTrunc ConvOp = iota
	ConvIntSignExtend
	ConvIntZeroExtend
	ConvIntToFloat
	ConvFloatToInt
	ConvFloatWiden
	ConvFloatNarrow
	ConvIntToPtr
	ConvPtrToInt
	ConvBitcastPtr
)

// BinOp enumerates the arithmetic/bitwise/comparison operations of
// spec.md §6.2(e). The lowering driver maps astree.BinOp onto this set
// after sema has already resolved operand widths and signedness.
type BinOp uint8

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDivSigned
	BinDivUnsigned
	BinDivFloat
	BinModSigned
	BinModUnsigned
	BinAnd
	BinOr
	BinXor
	BinShl
	BinLShr
	BinAShr
	BinICmpEq
	BinICmpNe
	BinICmpSLt
	BinICmpSLe
	BinICmpSGt
	BinICmpSGe
	BinICmpULt
	BinICmpULe
	BinICmpUGt
	BinICmpUGe
	BinFCmpEq
	BinFCmpNe
	BinFCmpLt
	BinFCmpLe
	BinFCmpGt
	BinFCmpGe
)

// Backend is the IR backend contract (spec.md §6.2, lettered a-h below).
// A concrete implementation owns its own module/value representation;
// this repo only ever holds it behind the interface.
type Backend interface {
	// (a) named aggregate types with explicit member-type lists.
	DeclareStruct(name string, members []TypeHandle) TypeHandle
	// Built-in scalar/pointer/array type handles the driver composes
	// struct member lists and signatures from.
	ScalarType(memSize uint32, float, signed bool) TypeHandle
	PointerType(elem TypeHandle) TypeHandle
	VoidType() TypeHandle
	BoolType() TypeHandle

	// (b) function declarations with return type, parameter types,
	// linkage, and a unique mangled name.
	DeclareFunc(mangledName string, ret TypeHandle, params []TypeHandle, linkage Linkage) FuncHandle

	// (c) global variables with a constant initializer.
	DeclareGlobal(mangledName string, t TypeHandle, constInit Value) GlobalHandle
	ConstZero(t TypeHandle) Value
	ConstInt(t TypeHandle, bits uint64) Value
	ConstFloat(t TypeHandle, bits uint64) Value
	ConstAggregate(t TypeHandle, members []Value) Value
	// GlobalAddr yields the address of a declared global as an ordinary
	// Value, so a deferred initializer (spec.md §4.5 steps 3/5) can Store
	// through it the same way it would a local's alloca.
	GlobalAddr(g GlobalHandle) Value

	// (d) an emission cursor: block creation, branches, structured flow.
	CreateBlock(f FuncHandle, label string) BlockHandle
	SetInsertPoint(b BlockHandle)
	Br(target BlockHandle)
	CondBr(cond Value, thenBlock, elseBlock BlockHandle)
	Ret(v Value)
	RetVoid()

	// (e) arithmetic, comparison, bitwise, shift, modulo, negation,
	// logical not.
	BinaryOp(op BinOp, lhs, rhs Value) Value
	Neg(v Value) Value
	Not(v Value) Value

	// (f) conversions.
	Convert(op ConvOp, v Value, to TypeHandle) Value

	// (g) memory ops.
	Alloca(t TypeHandle) Value
	Load(t TypeHandle, addr Value) Value
	Store(addr, v Value)
	GEP(elemType TypeHandle, base Value, index Value) Value
	StructGEP(structType TypeHandle, base Value, fieldIndex int) Value
	Memcpy(dst, src Value, size uint32)
	Memset(dst Value, byteVal uint8, size uint32)

	// Function parameters and calls, needed throughout step 4 of the
	// lowering driver (spec.md §4.5) even though spec.md §6.2 folds them
	// implicitly into "memory ops"/"arithmetic": a backend cannot satisfy
	// the contract without them.
	Param(f FuncHandle, index int) Value
	Call(f FuncHandle, args []Value) Value

	// (h) a constant-folding entry point evaluating a pure expression
	// tree to a constant integer, used for array dimension sizes.
	FoldConstantInt(v Value) (int64, bool)
}
