package sema

import (
	"fmt"

	"nylac/internal/astree"
	"nylac/internal/diag"
	"nylac/internal/resolve"
	"nylac/internal/types"
)

// CheckCircularFields implements I-A2: if field f of module A has type
// module(B), and following the field-type relation from B reaches A again,
// the declaration fails with ERR_CIRCULAR_FIELDS. DFS seeded by the outer
// module, grounded on original_source/nyla/analysis.cpp's
// check_circular_fields.
func CheckCircularFields(c *Checker, mod *astree.ModuleDecl) {
	rootName := c.Words.Reveal(mod.NameKey)
	visited := map[string]bool{}
	if dfsFieldCycle(c, mod, rootName, visited) {
		diag.New(c.Report, diag.CircularFields, mod.Span,
			fmt.Sprintf("module %q has a circular field composition", rootName)).Emit()
	}
}

// dfsFieldCycle walks mod's fields; a field whose resolved type is
// module(M) recurses into M's declaration within this unit. Returns true
// if the walk reaches rootName again.
func dfsFieldCycle(c *Checker, mod *astree.ModuleDecl, rootName string, visited map[string]bool) bool {
	name := c.Words.Reveal(mod.NameKey)
	if visited[name] {
		return false
	}
	visited[name] = true

	for i := range mod.Fields {
		f := &mod.Fields[i]
		resolved := resolve.Resolve(c.Unit, c.Types, f.Type)
		t := c.Types.Lookup(resolved)
		if t.Kind != types.KindModule {
			continue
		}
		fieldModuleSym, ok := c.Unit.FDResolutions[f.Type]
		if !ok {
			continue // same-unit concrete module() field with no fd_module indirection; no cycle info needed to recurse further here
		}
		fieldModuleName := c.Words.Reveal(fieldModuleSym.NameKey)
		if fieldModuleName == rootName {
			return true
		}
		for _, other := range c.Unit.Modules {
			if c.Words.Reveal(other.NameKey) == fieldModuleName {
				if dfsFieldCycle(c, other, rootName, visited) {
					return true
				}
			}
		}
	}
	return false
}
