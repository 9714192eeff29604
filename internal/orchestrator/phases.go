package orchestrator

import (
	"nylac/internal/resolve"
	"nylac/internal/sema"
	"nylac/internal/symtab"
)

// EnsureState advances unit phase by phase until it reaches at least
// target, ensuring at each step that every import target has itself
// reached that phase's dependency prerequisite first (spec.md §4.6 "Entry
// rule"). Returns true once unit.Phase.AtLeast(target); false if the
// advance was aborted by a cycle guard, a dependency failure, or a
// diagnostic raised while entering a phase.
func (o *Orchestrator) EnsureState(unit *symtab.FileUnit, target symtab.Phase) bool {
	if unit.Phase == symtab.Failed {
		return false
	}
	if unit.Phase.AtLeast(target) {
		return true
	}

	for p := unit.Phase + 1; p <= target; p++ {
		if unit.MarkStarted(p) {
			// Cycle break (spec.md §4.6): some outer frame on this same
			// call stack is already driving unit through phase p.
			return false
		}

		prereq := symtab.Prerequisite(p)
		if !o.ensureImportsAtLeast(unit, p, prereq) {
			return false
		}
		if unit.Phase == symtab.Failed {
			return false
		}

		o.enterPhase(unit, p)
		if unit.Phase == symtab.Failed {
			return false
		}
	}
	return unit.Phase.AtLeast(target)
}

// ensureImportsAtLeast walks unit's import targets (starting from the
// resumable cursor recorded for phase), requiring each to reach prereq
// before unit may enter phase. A dependency that ends FAILED propagates
// failure to unit (spec.md §4.6 "Failure propagation").
func (o *Orchestrator) ensureImportsAtLeast(unit *symtab.FileUnit, phase, prereq symtab.Phase) bool {
	imports := unit.OrderedImports
	for i := unit.Cursor(phase); i < len(imports); i++ {
		dep, found := o.Program.Lookup(imports[i].Path)
		if !found {
			// A missing import target was already reported during import
			// resolution (spec.md §4.3); nothing further to drive here.
			continue
		}
		if !o.EnsureState(dep, prereq) {
			if dep.Phase == symtab.Failed {
				unit.Fail()
				return false
			}
			unit.SetCursor(phase, i)
			return false
		}
		if dep.Phase == symtab.Failed {
			unit.Fail()
			return false
		}
	}
	unit.SetCursor(phase, len(imports))
	return true
}

// enterPhase performs the actual work of advancing unit into phase p,
// setting unit.Phase (or failing it) on completion.
func (o *Orchestrator) enterPhase(unit *symtab.FileUnit, p symtab.Phase) {
	switch p {
	case symtab.Parsed:
		// Every unit is parsed eagerly by Program.ParseAll before the
		// phase machine starts (PARSED has no dependency prerequisite,
		// spec.md §4.6); reaching here with Phase still Discovered would
		// mean ParseAll was skipped, which Run never does.
		unit.Phase = symtab.Parsed

	case symtab.ImportsResolved:
		resolve.LoadImports(unit, o.Program.Lookup, &unit.Diags)
		resolve.ResolveTypeRefs(unit, o.Program.Types, &unit.Diags)
		if unit.Diags.HasErrors() {
			unit.Fail()
			return
		}
		unit.Phase = symtab.ImportsResolved

	case symtab.Analyzed:
		sema.New(unit, o.Program.Types, o.Program.Words, &unit.Diags).Analyze()
		if unit.Diags.HasErrors() {
			unit.Fail()
			return
		}
		unit.Phase = symtab.Analyzed

	case symtab.TypeDeclsEmitted:
		o.Lower.DeclareTypes(unit)
		o.Lower.DeclareFuncSignatures(unit)
		unit.Phase = symtab.TypeDeclsEmitted

	case symtab.BodyDeclsEmitted:
		o.deferred[unit.ID] = o.Lower.EmitGlobals(unit)
		unit.Phase = symtab.BodyDeclsEmitted

	case symtab.BodiesEmitted:
		o.emitBodies(unit)
		unit.Phase = symtab.BodiesEmitted
	}
}

// emitBodies runs lowering driver step 4/5 (spec.md §4.5) over every
// function and constructor this unit's modules declare, in declaration
// order across modules, passing along the deferred global initializers
// BodyDeclsEmitted recorded so main's synthetic startup block can wire
// them (internal/lower/body.go emitStartupWiring).
func (o *Orchestrator) emitBodies(unit *symtab.FileUnit) {
	deferred := o.deferred[unit.ID]
	for _, mod := range unit.Table.Modules() {
		for _, fnSym := range mod.Constructors {
			o.Lower.EmitFunctionBody(unit, mod, fnSym, deferred)
		}
		for _, overloads := range mod.Functions {
			for _, fnSym := range overloads {
				o.Lower.EmitFunctionBody(unit, mod, fnSym, deferred)
			}
		}
	}
}
