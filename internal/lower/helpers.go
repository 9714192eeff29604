package lower

import (
	"nylac/internal/astree"
	"nylac/internal/backend"
	"nylac/internal/symref"
	"nylac/internal/symtab"
	"nylac/internal/types"
)

// findModuleByUniqueID mirrors internal/sema/expr.go's helper of the same
// name: module identity is global (spec.md §3 "unique_id"), so the same
// resolution works whether the module was declared in unit or imported
// into it.
func (d *Driver) findModuleByUniqueID(unit *symtab.FileUnit, uniqueID uint32) *symtab.ModuleSymbol {
	for _, m := range unit.Table.Modules() {
		if m.UniqueID == uniqueID {
			return m
		}
	}
	for _, m := range unit.LoadedModules {
		if m.UniqueID == uniqueID {
			return m
		}
	}
	return nil
}

// symbolByFunctionID recovers the FunctionSymbol sema resolved a call onto
// (astree.Node.Symbol), scanning owner's overload sets and constructor
// list. Lowering never needs overload resolution itself since sema already
// picked the candidate; this just reverses id -> *FunctionSymbol.
func (d *Driver) symbolByFunctionID(owner *symtab.ModuleSymbol, id symref.SymbolID) *symtab.FunctionSymbol {
	if owner == nil {
		return nil
	}
	for _, c := range owner.Constructors {
		if c.ID == id {
			return c
		}
	}
	for _, overloads := range owner.Functions {
		for _, fn := range overloads {
			if fn.ID == id {
				return fn
			}
		}
	}
	return nil
}

// backendBinOp maps a sema-resolved astree.BinOp, plus the (already
// implicit-cast-unified) operand type, onto the concrete backend.BinOp
// spec.md §6.2(e) requires.
func backendBinOp(op astree.BinOp, operand types.Type) backend.BinOp {
	float := operand.IsFloat()
	signed := operand.IsSigned()
	switch op {
	case astree.OpAdd:
		return backend.BinAdd
	case astree.OpSub:
		return backend.BinSub
	case astree.OpMul:
		return backend.BinMul
	case astree.OpDiv:
		if float {
			return backend.BinDivFloat
		}
		if signed {
			return backend.BinDivSigned
		}
		return backend.BinDivUnsigned
	case astree.OpMod:
		if signed {
			return backend.BinModSigned
		}
		return backend.BinModUnsigned
	case astree.OpBitAnd, astree.OpAnd:
		return backend.BinAnd
	case astree.OpBitOr, astree.OpOr:
		return backend.BinOr
	case astree.OpBitXor:
		return backend.BinXor
	case astree.OpShl:
		return backend.BinShl
	case astree.OpShr:
		if signed {
			return backend.BinAShr
		}
		return backend.BinLShr
	case astree.OpEq:
		if float {
			return backend.BinFCmpEq
		}
		return backend.BinICmpEq
	case astree.OpNe:
		if float {
			return backend.BinFCmpNe
		}
		return backend.BinICmpNe
	case astree.OpLt:
		if float {
			return backend.BinFCmpLt
		}
		if signed {
			return backend.BinICmpSLt
		}
		return backend.BinICmpULt
	case astree.OpLe:
		if float {
			return backend.BinFCmpLe
		}
		if signed {
			return backend.BinICmpSLe
		}
		return backend.BinICmpULe
	case astree.OpGt:
		if float {
			return backend.BinFCmpGt
		}
		if signed {
			return backend.BinICmpSGt
		}
		return backend.BinICmpUGt
	case astree.OpGe:
		if float {
			return backend.BinFCmpGe
		}
		if signed {
			return backend.BinICmpSGe
		}
		return backend.BinICmpUGe
	}
	return backend.BinAdd
}

// convOpFor picks the conversion spec.md §6.2(f) names for a cast from one
// resolved type to another, mirroring the promotion rules
// internal/sema/binary.go used to decide a cast was needed in the first
// place.
func convOpFor(in *types.Interner, from, to types.TypeID) backend.ConvOp {
	ft, tt := in.Lookup(from), in.Lookup(to)
	switch {
	case ft.IsFloat() && tt.IsInt():
		return backend.ConvFloatToInt
	case ft.IsInt() && tt.IsFloat():
		return backend.ConvIntToFloat
	case ft.IsFloat() && tt.IsFloat():
		if tt.MemSize() > ft.MemSize() {
			return backend.ConvFloatWiden
		}
		return backend.ConvFloatNarrow
	case ft.Kind == types.KindPtr && tt.Kind == types.KindPtr:
		return backend.ConvBitcastPtr
	case ft.IsInt() && tt.Kind == types.KindPtr:
		return backend.ConvIntToPtr
	case ft.Kind == types.KindPtr && tt.IsInt():
		return backend.ConvPtrToInt
	case ft.IsInt() && tt.IsInt():
		if tt.MemSize() > ft.MemSize() {
			if tt.IsSigned() {
				return backend.ConvIntSignExtend
			}
			return backend.ConvIntZeroExtend
		}
		return backend.ConvIntTrunc
	default:
		return backend.ConvBitcastPtr
	}
}
