package lower

import (
	"math"

	"nylac/internal/astree"
	"nylac/internal/backend"
	"nylac/internal/symref"
	"nylac/internal/symtab"
	"nylac/internal/types"
	"nylac/internal/word"
)

// funcEmitter walks one function body, implementing lowering driver step 4
// (spec.md §4.5): lvalue-producing expressions (locals, parameters, fields,
// array accesses) are produced as addresses, and an explicit load is
// inserted wherever an rvalue is required. Mirrors the shape of
// vovakirdan-surge/internal/backend/llvm's per-function funcEmitter, minus
// that emitter's own string-buffer bookkeeping since this repo speaks
// through the internal/backend.Backend interface instead of building LLVM
// text directly.
type funcEmitter struct {
	d     *Driver
	unit  *symtab.FileUnit
	arena *astree.Arena
	f     backend.FuncHandle
	owner *symtab.ModuleSymbol // nil for a unit-level (non-member) function, if ever allowed
	self  backend.Value        // address of the leading self pointer, valid when owner != nil && member
	hasSelf bool

	locals map[symref.SymbolID]backend.Value // address of every local/param this function has seen
}

// EmitFunctionBody lowers one function's body. External declarations
// (fn.Body == NilNode) have nothing to emit beyond their already-declared
// signature. deferred/isEntrypoint wire in the synthetic startup block
// (spec.md §4.5 step 5) when fn is the unit's main.
func (d *Driver) EmitFunctionBody(unit *symtab.FileUnit, owner *symtab.ModuleSymbol, fnSym *symtab.FunctionSymbol, deferred []DeferredInit) {
	fn := fnSym.Decl
	if fn.Body == astree.NilNode {
		return
	}
	h, ok := d.funcHandles[fnSym.ID]
	if !ok {
		return
	}
	entry := d.Backend.CreateBlock(h, "entry")
	d.Backend.SetInsertPoint(entry)

	fe := &funcEmitter{d: d, unit: unit, arena: unit.Arena, f: h, owner: owner, locals: make(map[symref.SymbolID]backend.Value)}

	paramOffset := 0
	if fnSym.IsMember || fn.IsConstructor {
		paramOffset = 1
		fe.hasSelf = true
		fe.self = d.Backend.Param(h, 0)
	}
	for i, p := range fn.Params {
		v := d.Backend.Param(h, i+paramOffset)
		addr := d.Backend.Alloca(d.typeHandle(fnSym.ParamTypes[i]))
		d.Backend.Store(addr, v)
		if sym, ok := lookupParamSymbol(unit, fnSym, p.NameKey); ok {
			fe.locals[sym.ID] = addr
		}
	}

	if fn.IsEntrypoint {
		fe.emitStartupWiring(deferred)
	}

	fe.emitBlock(fn.Body)

	if d.Types.Lookup(fn.ReturnType).Kind == types.KindVoid {
		d.Backend.RetVoid()
	}
}

// lookupParamSymbol recovers the VariableSymbol sema.checkFunctionBody
// declared for parameter name, via the scope it recorded on fnSym.Scope
// (symtab.FunctionSymbol.Scope) — declared directly in that scope, so a
// direct lookup is enough; lowering never needs LookupVariable's climbing
// behavior here.
func lookupParamSymbol(unit *symtab.FileUnit, fnSym *symtab.FunctionSymbol, name word.Key) (*symtab.VariableSymbol, bool) {
	return unit.Table.LookupVariable(fnSym.Scope, name)
}

// emitStartupWiring implements spec.md §4.5 step 5: every deferred global
// initializer runs, in the order EmitGlobals produced them, followed by a
// call to each function this unit registered as a startup function
// (astree.ModStartup), before main's own first statement runs.
func (fe *funcEmitter) emitStartupWiring(deferred []DeferredInit) {
	for _, def := range deferred {
		v := fe.emitExpr(def.Expr)
		fe.d.Backend.Store(fe.d.Backend.GlobalAddr(def.Global), v)
	}
	for _, fn := range fe.unit.StartupFunctions {
		h, ok := fe.d.funcHandles[fn.ID]
		if !ok {
			continue
		}
		fe.d.Backend.Call(h, nil)
	}
}

// --- statements ---

func (fe *funcEmitter) emitBlock(id astree.NodeID) {
	block := fe.arena.Get(id)
	for _, stmtID := range block.Children {
		fe.emitStmt(stmtID)
	}
}

func (fe *funcEmitter) emitStmt(id astree.NodeID) {
	n := fe.arena.Get(id)
	switch n.Kind {
	case astree.KindVarDecl:
		fe.emitVarDecl(n)
	case astree.KindReturn:
		fe.emitReturn(n)
	case astree.KindIf:
		fe.emitIf(n)
	case astree.KindFor:
		fe.emitFor(n)
	case astree.KindWhile:
		fe.emitWhile(n)
	case astree.KindExprStmt:
		fe.emitExpr(n.Children[0])
	case astree.KindBlock:
		fe.emitBlock(id)
	}
}

func (fe *funcEmitter) emitVarDecl(n *astree.Node) {
	th := fe.d.typeHandle(n.Type)
	addr := fe.d.Backend.Alloca(th)
	fe.locals[n.Symbol] = addr

	if len(n.Children) > n.Dims {
		initID := n.Children[n.Dims]
		v := fe.emitExpr(initID)
		fe.d.Backend.Store(addr, v)
	} else {
		fe.d.Backend.Store(addr, fe.d.Backend.ConstZero(th))
	}
}

func (fe *funcEmitter) emitReturn(n *astree.Node) {
	if len(n.Children) == 0 {
		fe.d.Backend.RetVoid()
		return
	}
	v := fe.emitExpr(n.Children[0])
	fe.d.Backend.Ret(v)
}

func (fe *funcEmitter) emitIf(n *astree.Node) {
	cond := fe.emitExpr(n.Children[0])
	thenBlock := fe.d.Backend.CreateBlock(fe.f, "if.then")
	mergeBlock := fe.d.Backend.CreateBlock(fe.f, "if.end")
	elseBlock := mergeBlock
	if len(n.Children) > 2 {
		elseBlock = fe.d.Backend.CreateBlock(fe.f, "if.else")
	}
	fe.d.Backend.CondBr(cond, thenBlock, elseBlock)

	fe.d.Backend.SetInsertPoint(thenBlock)
	fe.emitStmt(n.Children[1])
	fe.d.Backend.Br(mergeBlock)

	if len(n.Children) > 2 {
		fe.d.Backend.SetInsertPoint(elseBlock)
		fe.emitStmt(n.Children[2])
		fe.d.Backend.Br(mergeBlock)
	}

	fe.d.Backend.SetInsertPoint(mergeBlock)
}

func (fe *funcEmitter) emitWhile(n *astree.Node) {
	condBlock := fe.d.Backend.CreateBlock(fe.f, "while.cond")
	bodyBlock := fe.d.Backend.CreateBlock(fe.f, "while.body")
	endBlock := fe.d.Backend.CreateBlock(fe.f, "while.end")

	fe.d.Backend.Br(condBlock)
	fe.d.Backend.SetInsertPoint(condBlock)
	cond := fe.emitExpr(n.Children[0])
	fe.d.Backend.CondBr(cond, bodyBlock, endBlock)

	fe.d.Backend.SetInsertPoint(bodyBlock)
	fe.emitStmt(n.Children[1])
	fe.d.Backend.Br(condBlock)

	fe.d.Backend.SetInsertPoint(endBlock)
}

// emitFor lowers [init?, cond?, post?, body] (astree.Node doc comment on
// KindFor), each slot possibly astree.NilNode.
func (fe *funcEmitter) emitFor(n *astree.Node) {
	if n.Children[0] != astree.NilNode {
		fe.emitStmt(n.Children[0])
	}
	condBlock := fe.d.Backend.CreateBlock(fe.f, "for.cond")
	bodyBlock := fe.d.Backend.CreateBlock(fe.f, "for.body")
	endBlock := fe.d.Backend.CreateBlock(fe.f, "for.end")

	fe.d.Backend.Br(condBlock)
	fe.d.Backend.SetInsertPoint(condBlock)
	if n.Children[1] != astree.NilNode {
		cond := fe.emitExpr(n.Children[1])
		fe.d.Backend.CondBr(cond, bodyBlock, endBlock)
	} else {
		fe.d.Backend.Br(bodyBlock)
	}

	fe.d.Backend.SetInsertPoint(bodyBlock)
	fe.emitStmt(n.Children[3])
	if n.Children[2] != astree.NilNode {
		fe.emitStmt(n.Children[2])
	}
	fe.d.Backend.Br(condBlock)

	fe.d.Backend.SetInsertPoint(endBlock)
}

// --- expressions ---

// emitExpr produces an rvalue: the loaded value of n, inserting a Load
// when n is lvalue-shaped (spec.md §4.5 "lvalue-as-address / rvalue-as-
// load policy").
func (fe *funcEmitter) emitExpr(id astree.NodeID) backend.Value {
	n := fe.arena.Get(id)
	switch n.Kind {
	case astree.KindIntLit:
		return fe.d.Backend.ConstInt(fe.d.typeHandle(n.Type), n.IntVal)
	case astree.KindFloatLit:
		return fe.d.Backend.ConstFloat(fe.d.typeHandle(n.Type), math.Float64bits(n.FloatVal))
	case astree.KindBoolLit:
		v := uint64(0)
		if n.BoolVal {
			v = 1
		}
		return fe.d.Backend.ConstInt(fe.d.typeHandle(n.Type), v)
	case astree.KindNullLit:
		return fe.d.Backend.ConstZero(fe.d.typeHandle(n.Type))
	case astree.KindStringLit:
		return fe.d.Backend.ConstZero(fe.d.typeHandle(n.Type)) // string literal storage is an external collaborator concern (spec.md §1)

	case astree.KindIdent:
		addr, th, ok := fe.emitAddr(id)
		if !ok {
			return fe.d.Backend.ConstZero(fe.d.typeHandle(n.Type))
		}
		return fe.d.Backend.Load(th, addr)

	case astree.KindThis:
		return fe.self

	case astree.KindUnary:
		operand := fe.emitExpr(n.Children[0])
		switch n.UnOp {
		case astree.OpNeg:
			return fe.d.Backend.Neg(operand)
		case astree.OpNot:
			return fe.d.Backend.Not(operand)
		}
		return operand

	case astree.KindBinary:
		return fe.emitBinary(n)

	case astree.KindAssign:
		addr, _, ok := fe.emitAddr(n.Children[0])
		v := fe.emitExpr(n.Children[1])
		if ok {
			fe.d.Backend.Store(addr, v)
		}
		return v

	case astree.KindCall:
		return fe.emitCall(fe.owner, nil, n)

	case astree.KindArrayAccess:
		addr, th, ok := fe.emitAddr(id)
		if !ok {
			return fe.d.Backend.ConstZero(fe.d.typeHandle(n.Type))
		}
		return fe.d.Backend.Load(th, addr)

	case astree.KindDotOp:
		addr, th, isAddr, v, isVal := fe.emitDotOp(n)
		if isVal {
			return v
		}
		if isAddr {
			return fe.d.Backend.Load(th, addr)
		}
		return fe.d.Backend.ConstZero(fe.d.typeHandle(n.Type))

	case astree.KindCast:
		return fe.emitCast(n)

	case astree.KindArrayLit:
		return fe.emitArrayLit(n)

	case astree.KindVarObject:
		return fe.emitVarObject(n)
	}
	return fe.d.Backend.ConstZero(fe.d.typeHandle(n.Type))
}

// emitAddr produces the address of an lvalue-shaped node (idents that name
// a local/parameter/field, and array accesses). ok is false for anything
// else, in which case the caller falls back to treating the node as a
// plain rvalue.
func (fe *funcEmitter) emitAddr(id astree.NodeID) (backend.Value, backend.TypeHandle, bool) {
	n := fe.arena.Get(id)
	switch n.Kind {
	case astree.KindIdent:
		if n.Symbol != 0 {
			if addr, ok := fe.locals[n.Symbol]; ok {
				return addr, fe.d.typeHandle(n.Type), true
			}
		}
		// Not a local/parameter: a bare reference to a field of the
		// implicit `this` (internal/sema/expr.go checkIdent's fallback
		// path never sets n.Symbol for this case).
		if fe.owner != nil && fe.hasSelf {
			if f := fieldByName(fe.owner, n.NameKey); f != nil {
				addr := fe.d.Backend.StructGEP(fe.d.structTypes[fe.owner.UniqueID], fe.self, f.Index)
				return addr, fe.d.typeHandle(f.Type), true
			}
		}
		return 0, 0, false

	case astree.KindArrayAccess:
		return fe.emitArrayAccessAddr(n)

	case astree.KindDotOp:
		addr, th, isAddr, _, _ := fe.emitDotOp(n)
		return addr, th, isAddr

	default:
		return 0, 0, false
	}
}

func fieldByName(mod *symtab.ModuleSymbol, name word.Key) *symtab.FieldSymbol {
	for _, f := range mod.Fields {
		if f.NameKey == name {
			return f
		}
	}
	return nil
}

// arrayHeaderBytes returns the byte size of an array block's length
// header, max(4, element_align) per spec.md §4.5 "Array representation
// contract". Element alignment is approximated by its MemSize, which is
// exact for every scalar kind and for pointers/arrays on the 64-bit
// targets this repo's lowering contract assumes; a module element's
// MemSize is 0, so it gets the 4-byte minimum.
func (d *Driver) arrayHeaderBytes(elem types.TypeID) uint32 {
	align := d.Types.Lookup(elem).MemSize()
	if align < 4 {
		align = 4
	}
	return align
}

// emitArrayAccessAddr computes the address of base[index0][index1]...,
// adjusting past each level's length header (spec.md §4.5 "Array
// representation contract").
func (fe *funcEmitter) emitArrayAccessAddr(n *astree.Node) (backend.Value, backend.TypeHandle, bool) {
	baseID := n.Children[0]
	indices := n.Children[1:]
	baseT := fe.arena.Get(baseID).Type
	bt := fe.d.Types.Lookup(baseT)

	isArr := bt.Kind == types.KindArr
	var addr backend.Value
	if isArr {
		addr = fe.emitExpr(baseID) // array value IS its pointer
	} else {
		a, _, ok := fe.emitAddr(baseID)
		if ok {
			addr = fe.d.Backend.Load(fe.d.typeHandle(baseT), a)
		} else {
			addr = fe.emitExpr(baseID)
		}
	}

	curType := baseT
	for _, idxID := range indices {
		idx := fe.emitExpr(idxID)
		t := fe.d.Types.Lookup(curType)
		var elemType types.TypeID
		switch t.Kind {
		case types.KindArr:
			elemType = t.Elem
			header := fe.d.arrayHeaderBytes(elemType)
			addr = fe.arrayElemAddr(addr, fe.d.typeHandle(elemType), header, idx)
		case types.KindPtr:
			elemType = t.Elem
			addr = fe.d.Backend.GEP(fe.d.typeHandle(elemType), addr, idx)
		default:
			return 0, 0, false
		}
		curType = elemType
	}
	return addr, fe.d.typeHandle(curType), true
}

// arrayElemAddr advances past an array block's length header and indexes
// into its element storage.
func (fe *funcEmitter) arrayElemAddr(arrAddr backend.Value, elemTH backend.TypeHandle, headerBytes uint32, index backend.Value) backend.Value {
	byteType := fe.d.Backend.ScalarType(1, false, false)
	bytePtrType := fe.d.Backend.PointerType(byteType)
	bytePtr := fe.d.Backend.Convert(backend.ConvBitcastPtr, arrAddr, bytePtrType)
	headerOffset := fe.d.Backend.ConstInt(fe.d.Backend.ScalarType(4, false, false), uint64(headerBytes))
	elemsStart := fe.d.Backend.GEP(byteType, bytePtr, headerOffset)
	elemPtr := fe.d.Backend.Convert(backend.ConvBitcastPtr, elemsStart, fe.d.Backend.PointerType(elemTH))
	return fe.d.Backend.GEP(elemTH, elemPtr, index)
}

// emitDotOp lowers a left-folded dot chain (spec.md §4.4 "Dot expressions"),
// mirroring internal/sema/expr.go's checkDotOp walk but producing
// addresses/values instead of diagnostics. Exactly one of (isAddr, isVal)
// is true for the final factor; a plain value (e.g. the result of a
// non-module-returning call) has no address to hand back to a caller that
// wants to assign through it.
func (fe *funcEmitter) emitDotOp(n *astree.Node) (addr backend.Value, th backend.TypeHandle, isAddr bool, val backend.Value, isVal bool) {
	var curAddr backend.Value
	var curModule *symtab.ModuleSymbol
	haveAddr := false

	first := fe.arena.Get(n.Children[0])
	switch first.Kind {
	case astree.KindThis:
		curAddr = fe.self
		curModule = fe.owner
		haveAddr = true
	case astree.KindIdent:
		if first.StaticContext {
			curModule = fe.d.findModuleByUniqueID(fe.unit, fe.d.Types.Lookup(first.Type).ModuleUniqueID)
		} else {
			a, t, ok := fe.emitAddr(n.Children[0])
			if ok {
				curAddr, haveAddr = a, true
				ft := fe.d.Types.Lookup(first.Type)
				if ft.Kind == types.KindModule {
					curModule = fe.d.findModuleByUniqueID(fe.unit, ft.ModuleUniqueID)
				}
				_ = t
			} else {
				val = fe.emitExpr(n.Children[0])
				isVal = true
			}
		}
	case astree.KindCall:
		v := fe.emitCall(fe.owner, nil, first)
		ft := fe.d.Types.Lookup(first.Type)
		if ft.Kind == types.KindModule {
			curModule = fe.d.findModuleByUniqueID(fe.unit, ft.ModuleUniqueID)
			curAddr, haveAddr = v, true
		} else {
			val, isVal = v, true
		}
	default:
		val = fe.emitExpr(n.Children[0])
		isVal = true
	}

	for i := 1; i < len(n.Children); i++ {
		factor := fe.arena.Get(n.Children[i])
		switch factor.Kind {
		case astree.KindIdent:
			if curModule == nil || !haveAddr {
				return 0, 0, false, fe.d.Backend.ConstZero(fe.d.typeHandle(factor.Type)), true
			}
			f := fieldByName(curModule, factor.NameKey)
			if f == nil {
				return 0, 0, false, fe.d.Backend.ConstZero(fe.d.typeHandle(factor.Type)), true
			}
			curAddr = fe.d.Backend.StructGEP(fe.d.structTypes[curModule.UniqueID], curAddr, f.Index)
			ft := fe.d.Types.Lookup(f.Type)
			curModule = nil
			if ft.Kind == types.KindModule {
				curModule = fe.d.findModuleByUniqueID(fe.unit, ft.ModuleUniqueID)
			}
			isVal = false

		case astree.KindCall:
			var selfArg backend.Value
			if haveAddr {
				selfArg = curAddr
			}
			v := fe.emitCall(curModule, &selfArg, factor)
			ft := fe.d.Types.Lookup(factor.Type)
			curModule = nil
			if ft.Kind == types.KindModule {
				curModule = fe.d.findModuleByUniqueID(fe.unit, ft.ModuleUniqueID)
				curAddr, haveAddr = v, true
				isVal = false
			} else {
				val, isVal, haveAddr = v, true, false
			}

		default:
			val = fe.emitExpr(n.Children[i])
			isVal = true
			haveAddr = false
		}
	}

	if isVal {
		return 0, 0, false, val, true
	}
	last := fe.arena.Get(n.Children[len(n.Children)-1])
	return curAddr, fe.d.typeHandle(last.Type), true, 0, false
}

// emitCall lowers a call node whose callee was resolved onto owner
// (n.Symbol set by internal/sema/expr.go). selfOverride, when non-nil,
// supplies the self pointer explicitly (used by the dot-chain walk);
// otherwise a member call uses fe.self.
func (fe *funcEmitter) emitCall(owner *symtab.ModuleSymbol, selfOverride *backend.Value, n *astree.Node) backend.Value {
	fnSym := fe.d.symbolByFunctionID(owner, n.Symbol)
	var h backend.FuncHandle
	var member bool
	if fnSym != nil {
		h = fe.d.funcHandles[fnSym.ID]
		member = fnSym.IsMember
	}
	args := make([]backend.Value, 0, len(n.Children)+1)
	if member {
		if selfOverride != nil {
			args = append(args, *selfOverride)
		} else {
			args = append(args, fe.self)
		}
	}
	for _, child := range n.Children {
		args = append(args, fe.emitExpr(child))
	}
	return fe.d.Backend.Call(h, args)
}

func (fe *funcEmitter) emitBinary(n *astree.Node) backend.Value {
	if n.BinOp.IsBooleanConnective() {
		result, lhs := fe.d.Backend.Alloca(fe.d.Backend.BoolType()), fe.emitExpr(n.Children[0])
		fe.d.Backend.Store(result, lhs)
		rhsBlock, endBlock := fe.d.Backend.CreateBlock(fe.f, "sc.rhs"), fe.d.Backend.CreateBlock(fe.f, "sc.end")
		onTrue, onFalse := rhsBlock, endBlock // `&&` evaluates rhs only when lhs is true
		if n.BinOp == astree.OpOr {
			onTrue, onFalse = endBlock, rhsBlock // `||` evaluates rhs only when lhs is false
		}
		fe.d.Backend.CondBr(lhs, onTrue, onFalse)
		fe.d.Backend.SetInsertPoint(rhsBlock)
		fe.d.Backend.Store(result, fe.emitExpr(n.Children[1]))
		fe.d.Backend.Br(endBlock)
		fe.d.Backend.SetInsertPoint(endBlock)
		return fe.d.Backend.Load(fe.d.Backend.BoolType(), result)
	}
	lhs := fe.emitExpr(n.Children[0])
	rhs := fe.emitExpr(n.Children[1])
	opT := fe.d.Types.Lookup(fe.arena.Get(n.Children[0]).Type)
	return fe.d.Backend.BinaryOp(backendBinOp(n.BinOp, opT), lhs, rhs)
}

// emitCast lowers a cast node. A cast whose operand is an array literal with
// `mixed` element type (spec.md §4.4, e.g. `double[] d = {1, 2, 3};`) cannot
// be handled as a single pointer-level Convert: each element needs its own
// conversion to the destination element type, so that case is handed to
// emitArrayLitAs with the cast's own destination type instead.
func (fe *funcEmitter) emitCast(n *astree.Node) backend.Value {
	src := fe.arena.Get(n.Children[0])
	if src.Kind == astree.KindArrayLit {
		return fe.emitArrayLitAs(src, n.Type)
	}
	v := fe.emitExpr(n.Children[0])
	return fe.d.Backend.Convert(convOpFor(fe.d.Types, src.Type, n.Type), v, fe.d.typeHandle(n.Type))
}

func (fe *funcEmitter) emitArrayLit(n *astree.Node) backend.Value {
	return fe.emitArrayLitAs(n, n.Type)
}

// emitArrayLitAs lowers array literal n, storing each element coerced to
// destType's element type rather than n's own (possibly `mixed`) element
// type. It is the per-element counterpart to the whole-array Convert
// emitCast performs for every other cast shape.
func (fe *funcEmitter) emitArrayLitAs(n *astree.Node, destType types.TypeID) backend.Value {
	dt := fe.d.Types.Lookup(destType)
	elemType := dt.Elem
	elemTH := fe.d.typeHandle(elemType)
	header := fe.d.arrayHeaderBytes(elemType)

	blockPtr := fe.d.Backend.Alloca(fe.d.Backend.ScalarType(1, false, false))
	lenVal := fe.d.Backend.ConstInt(fe.d.Backend.ScalarType(4, false, false), uint64(len(n.Children)))
	fe.d.Backend.Store(blockPtr, lenVal)

	for i, child := range n.Children {
		v := fe.emitExpr(child)
		childType := fe.arena.Get(child).Type
		if !fe.d.Types.Equals(childType, elemType) {
			v = fe.d.Backend.Convert(convOpFor(fe.d.Types, childType, elemType), v, elemTH)
		}
		idx := fe.d.Backend.ConstInt(fe.d.Backend.ScalarType(4, false, false), uint64(i))
		addr := fe.arrayElemAddr(blockPtr, elemTH, header, idx)
		fe.d.Backend.Store(addr, v)
	}
	return blockPtr
}

// emitVarObject lowers `var X(...)`: an instance of X is allocated and, if
// X declares constructors, the resolved one (n.Symbol, set by
// internal/sema/expr.go checkVarObject) runs against it.
func (fe *funcEmitter) emitVarObject(n *astree.Node) backend.Value {
	t := fe.d.Types.Lookup(n.Type)
	mod := fe.d.findModuleByUniqueID(fe.unit, t.ModuleUniqueID)
	th := fe.d.structTypes[t.ModuleUniqueID]
	instance := fe.d.Backend.Alloca(th)

	if n.Symbol != 0 && mod != nil {
		var ctorSym *symtab.FunctionSymbol
		for _, c := range mod.Constructors {
			if c.ID == n.Symbol {
				ctorSym = c
				break
			}
		}
		if ctorSym != nil {
			h := fe.d.funcHandles[ctorSym.ID]
			args := make([]backend.Value, 0, len(n.Children)+1)
			args = append(args, instance)
			for _, child := range n.Children {
				args = append(args, fe.emitExpr(child))
			}
			fe.d.Backend.Call(h, args)
		}
	}
	return instance
}
