// Package orchestrator drives the per-unit phase state machine of
// spec.md §4.6. It owns no symbol-table or type mechanics of its own —
// those live in internal/resolve, internal/sema, and internal/lower — it
// only sequences calls into them in dependency order, exactly the role
// original_source/nyla/compiler.cpp's ensure_state/process_file cursor
// walk plays for the historical compiler this spec was distilled from.
package orchestrator

import (
	"fmt"

	"nylac/internal/backend"
	"nylac/internal/diag"
	"nylac/internal/lower"
	"nylac/internal/project"
	"nylac/internal/source"
	"nylac/internal/symref"
	"nylac/internal/symtab"
)

// Orchestrator drives one Program through every phase. Diags holds the
// program-level (not per-unit) diagnostics: main detection and structural
// failures that abort compilation outright (spec.md §7 "Structural
// errors ... are raised to the orchestrator and abort compilation").
type Orchestrator struct {
	Program *project.Program
	Lower   *lower.Driver
	Flags   Flags

	Diags diag.Bag

	deferred map[symref.UnitID][]lower.DeferredInit
}

// New constructs an Orchestrator over an already-discovered Program, ready
// to lower against backend b.
func New(p *project.Program, b backend.Backend, flags Flags) *Orchestrator {
	return &Orchestrator{
		Program:  p,
		Lower:    lower.NewDriver(b, p.Types, p.Words, p.IDs),
		Flags:    flags,
		deferred: make(map[symref.UnitID][]lower.DeferredInit),
	}
}

// Run parses every unit, nominates the unit containing `main`, drives it
// (and whatever it transitively depends on) all the way to BODIES_EMITTED,
// then drives every remaining unit up to ANALYZED only (spec.md §4.6:
// "other units are processed afterward but only up to ANALYZED unless
// they are reached transitively as dependencies"). Returns false if
// compilation must abort: a structural error, a main-detection failure,
// or any unit ending FAILED.
func (o *Orchestrator) Run(parser project.Parser, manifest *project.Manifest) (ok bool, err error) {
	if err := o.Program.ParseAll(parser); err != nil {
		return false, err
	}

	mainUnit := o.nominateMain(manifest)
	if o.Diags.HasErrors() {
		// nominateMain already reported MULTIPLE_MAIN_FUNCTIONS_IN_PROGRAM
		// or FILE_WITH_MAIN_FUNCTION_DOES_NOT_EXIST; every unit still gets
		// analyzed so its own diagnostics surface alongside it.
		o.analyzeAllRemaining(nil)
		return false, nil
	}
	if mainUnit == nil {
		o.analyzeAllRemaining(nil)
		diag.New(&o.Diags, diag.MainFunctionNotFound, noSpan(), "no function marked as the program entry was found in any source file").Emit()
		return false, nil
	}
	if !hasEntrypoint(mainUnit) {
		diag.New(&o.Diags, diag.MainFunctionNotFound, noSpan(),
			fmt.Sprintf("unit %q was nominated to contain the program entry but declares none", mainUnit.Path)).Emit()
		o.analyzeAllRemaining(nil)
		return false, nil
	}

	o.EnsureState(mainUnit, symtab.BodiesEmitted)
	o.analyzeAllRemaining(mainUnit)

	return o.allSucceeded(), nil
}

// analyzeAllRemaining brings every unit other than skip up to at least
// ANALYZED. EnsureState is monotonic (Phase.AtLeast short-circuits), so a
// unit already pulled past ANALYZED as mainUnit's transitive dependency
// costs nothing extra here.
func (o *Orchestrator) analyzeAllRemaining(skip *symtab.FileUnit) {
	for _, u := range o.Program.Units() {
		if u == skip {
			continue
		}
		o.EnsureState(u, symtab.Analyzed)
	}
}

func (o *Orchestrator) allSucceeded() bool {
	if o.Diags.HasErrors() {
		return false
	}
	for _, u := range o.Program.Units() {
		if u.Phase == symtab.Failed {
			return false
		}
	}
	return true
}

// nominateMain scans every parsed unit's top-level functions for the
// entrypoint marker the parser attaches (astree.FuncDecl.IsEntrypoint),
// since that annotation is available immediately after parsing, before
// any unit has been analyzed (spec.md §4.6 "main detection"). A manifest
// entry path takes precedence when present (SPEC_FULL.md §6 "nyla.toml
// project manifest").
func (o *Orchestrator) nominateMain(manifest *project.Manifest) *symtab.FileUnit {
	var found []*symtab.FileUnit
	for _, u := range o.Program.Units() {
		if hasEntrypoint(u) {
			found = append(found, u)
		}
	}
	if len(found) > 1 {
		for _, u := range found {
			u.Fail()
		}
		diag.New(&o.Diags, diag.MultipleMainFunctions, noSpan(), "more than one function is marked as the program entry").Emit()
		return nil
	}

	if manifest != nil && manifest.Entry != "" {
		u, ok := o.Program.Lookup(manifest.Entry)
		if !ok {
			diag.New(&o.Diags, diag.FileWithMainFunctionDoesNotExist, noSpan(),
				fmt.Sprintf("manifest entry %q does not name a discovered source file", manifest.Entry)).Emit()
			return nil
		}
		return u
	}

	if len(found) == 1 {
		return found[0]
	}
	return nil
}

func hasEntrypoint(u *symtab.FileUnit) bool {
	for _, mod := range u.Modules {
		for i := range mod.Functions {
			if mod.Functions[i].IsEntrypoint {
				return true
			}
		}
	}
	return false
}

func noSpan() source.Span { return source.Span{} }
