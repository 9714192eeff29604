package sema

import (
	"fmt"

	"nylac/internal/astree"
	"nylac/internal/diag"
	"nylac/internal/resolve"
	"nylac/internal/source"
	"nylac/internal/symtab"
	"nylac/internal/types"
)

// checkBlock walks a KindBlock's statements in order, implementing
// spec.md §4.4 "Statements after return": once a return has been seen in
// this block, any further statement is flagged STMTS_AFTER_RETURN (once,
// on the first offending statement) but is still type-checked.
func (c *Checker) checkBlock(blockID astree.NodeID) {
	block := c.Arena.Get(blockID)
	seenReturn, reported := false, false
	for _, stmtID := range block.Children {
		if seenReturn && !reported {
			diag.New(c.Report, diag.StmtsAfterReturn, c.Arena.Get(stmtID).Span, "unreachable statement after return").Emit()
			reported = true // report only once per block
		}
		c.checkStmt(stmtID)
		if c.Arena.Get(stmtID).Kind == astree.KindReturn {
			seenReturn = true
		}
	}
}

func (c *Checker) checkStmt(id astree.NodeID) {
	n := c.Arena.Get(id)
	switch n.Kind {
	case astree.KindVarDecl:
		c.checkVarDeclStmt(n)
	case astree.KindReturn:
		c.checkReturnStmt(n)
	case astree.KindIf:
		c.checkIfStmt(n)
	case astree.KindFor:
		c.checkForStmt(n)
	case astree.KindWhile:
		c.checkWhileStmt(n)
	case astree.KindExprStmt:
		c.CheckExpr(n.Children[0])
	case astree.KindBlock:
		c.checkBlock(id)
	}
}

// checkVarDeclStmt implements spec.md §4.4 "Arrays and array literals" for
// a local declaration: explicit dimension-size expressions must be
// integer-typed, and if an initializer is also an array literal its
// element count must not exceed the declared size (ARR_TOO_MANY_INIT_VALUES).
func (c *Checker) checkVarDeclStmt(n *astree.Node) {
	declType := resolve.Resolve(c.Unit, c.Types, n.DeclaredType)
	dimSizes := n.Children[:n.Dims]
	var init astree.NodeID = astree.NilNode
	if len(n.Children) > n.Dims {
		init = n.Children[n.Dims]
	}

	declaredSize := -1
	for _, d := range dimSizes {
		c.CheckExpr(d)
		dt := c.Types.Lookup(c.Arena.Get(d).Type)
		if !dt.IsInt() {
			diag.New(c.Report, diag.ArrayAccessExpectsInt, c.Arena.Get(d).Span, "array dimension size must be an integer").Emit()
			continue
		}
		if c.Arena.Get(d).Kind == astree.KindIntLit {
			declaredSize = int(c.Arena.Get(d).IntVal)
		}
	}

	if init != astree.NilNode {
		c.CheckExpr(init)
		initNode := c.Arena.Get(init)
		if declaredSize >= 0 && initNode.Kind == astree.KindArrayLit && len(initNode.Children) > declaredSize {
			diag.New(c.Report, diag.ArrTooManyInitValues, initNode.Span, "too many initializer values for the declared array size").Emit()
		}
		checkVarDeclAssignability(c, declType, &n.Children[n.Dims], n.Span)
	}

	sym := &symtab.VariableSymbol{
		NameKey:          n.NameKey,
		Type:             declType,
		Role:             symtab.RoleLocal,
		DeclaredPosition: n.Span.StartLine,
	}
	c.Unit.Table.DeclareLocal(c.Report, c.scope, n.Span, n.NameKey, sym)
	n.Symbol = sym.ID
	n.Type = declType
}

// checkVarDeclAssignability checks that the expression at *initID (already
// type-checked) is assignable to declaredType, rewriting *initID to wrap it
// in an implicit cast when the types differ (spec.md §4.4 "Implicit
// conversions"), and reports ELEMENT_OF_ARRAY_NOT_COMPATIBLE_WITH_ARRAY or
// CANNOT_ASSIGN otherwise.
func checkVarDeclAssignability(c *Checker, declaredType types.TypeID, initID *astree.NodeID, span source.Span) {
	initT := c.Arena.Get(*initID).Type
	if initT == c.Types.Primitive(types.KindError) {
		return
	}
	if IsAssignable(c.Types, declaredType, initT) {
		if declaredType != initT {
			*initID = c.Arena.InsertCast(*initID, declaredType)
		}
		return
	}
	code := diag.CannotAssign
	declT := c.Types.Lookup(declaredType)
	if declT.Kind == types.KindArr {
		code = diag.ElementNotCompatibleWithArray
	}
	diag.New(c.Report, code, span,
		fmt.Sprintf("cannot initialize %s with %s", c.Types.String(declaredType), c.Types.String(initT))).Emit()
}

// checkReturnStmt implements spec.md §4.4 "Return statements": a value-less
// return in a non-void function is FUNCTION_EXPECTS_RETURN_VALUE; a
// returned value not assignable to the function's declared return type is
// RETURN_VALUE_NOT_COMPATIBLE_WITH_RETURN_TYPE.
func (c *Checker) checkReturnStmt(n *astree.Node) {
	voidReturn := c.Types.Lookup(c.currentReturnType).Kind == types.KindVoid
	if len(n.Children) == 0 {
		if !voidReturn {
			diag.New(c.Report, diag.FunctionExpectsReturnValue, n.Span, "function expects a return value").Emit()
		}
		return
	}
	c.CheckExpr(n.Children[0])
	valT := c.Arena.Get(n.Children[0]).Type
	if valT == c.Types.Primitive(types.KindError) {
		return
	}
	if !IsAssignable(c.Types, c.currentReturnType, valT) {
		diag.New(c.Report, diag.ReturnValueIncompatible, n.Span,
			fmt.Sprintf("return value of type %s is not compatible with return type %s", c.Types.String(valT), c.Types.String(c.currentReturnType))).Emit()
		return
	}
	if c.currentReturnType != valT {
		n.Children[0] = c.Arena.InsertCast(n.Children[0], c.currentReturnType)
	}
}

// checkIfStmt checks the condition (must be bool) and both branches.
func (c *Checker) checkIfStmt(n *astree.Node) {
	c.CheckExpr(n.Children[0])
	condT := c.Types.Lookup(c.Arena.Get(n.Children[0]).Type)
	if condT.Kind != types.KindBool {
		diag.New(c.Report, diag.ExpectedBoolCond, c.Arena.Get(n.Children[0]).Span, "if condition must be a bool").Emit()
	}
	c.checkStmt(n.Children[1])
	if len(n.Children) > 2 {
		c.checkStmt(n.Children[2])
	}
}

func (c *Checker) checkForStmt(n *astree.Node) {
	for _, child := range n.Children {
		if child == astree.NilNode {
			continue
		}
		c.checkStmt(child)
	}
}

func (c *Checker) checkWhileStmt(n *astree.Node) {
	c.CheckExpr(n.Children[0])
	condT := c.Types.Lookup(c.Arena.Get(n.Children[0]).Type)
	if condT.Kind != types.KindBool {
		diag.New(c.Report, diag.ExpectedBoolCond, c.Arena.Get(n.Children[0]).Span, "while condition must be a bool").Emit()
	}
	c.checkStmt(n.Children[1])
}

// checkReturnCoverage implements spec.md §4.4 "Return coverage": a
// function whose return type is not void must return a value on every
// path, which for an if-chain requires a trailing else (I-A "if-chain
// return proof").
func (c *Checker) checkReturnCoverage(fn *astree.FuncDecl) {
	if fn.Body == astree.NilNode {
		return
	}
	voidReturn := c.Types.Lookup(fn.ReturnType).Kind == types.KindVoid
	if voidReturn {
		return
	}
	if !blockAlwaysReturns(c.Arena, fn.Body) {
		diag.New(c.Report, diag.FunctionExpectsReturn, fn.Span,
			fmt.Sprintf("function %q must return a value on every path", c.Words.Reveal(fn.NameKey))).Emit()
	}
}

// blockAlwaysReturns reports whether every control path through block ends
// in a return statement.
func blockAlwaysReturns(a *astree.Arena, blockID astree.NodeID) bool {
	block := a.Get(blockID)
	for _, stmtID := range block.Children {
		if stmtAlwaysReturns(a, stmtID) {
			return true
		}
	}
	return false
}

func stmtAlwaysReturns(a *astree.Arena, id astree.NodeID) bool {
	n := a.Get(id)
	switch n.Kind {
	case astree.KindReturn:
		return true
	case astree.KindBlock:
		return blockAlwaysReturns(a, id)
	case astree.KindIf:
		if len(n.Children) < 3 {
			return false // no trailing else: not every path returns
		}
		return stmtAlwaysReturns(a, n.Children[1]) && stmtAlwaysReturns(a, n.Children[2])
	default:
		return false
	}
}
