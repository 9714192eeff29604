package project

import (
	"fmt"
	"os"
	"sort"

	"nylac/internal/symref"
	"nylac/internal/symtab"
	"nylac/internal/types"
	"nylac/internal/word"
)

// Program is the whole set of discovered units plus the tables shared
// across all of them: module identity is global (spec.md §3 "unique_id
// (globally monotonic)"), and the word table interns identifiers once for
// the whole compilation, not per file.
type Program struct {
	Words *word.Table
	Types *types.Interner
	IDs   *symtab.ModuleIDGen

	units   map[string]*symtab.FileUnit
	paths   []string // stable iteration order, sorted by internal path
	systems map[string]string // internal path -> originating system path, for Parse
}

// NewProgram discovers every `.nyla` file under srcDirs and allocates one
// empty FileUnit per file, sharing one word table, type interner, and
// module id generator across the whole program.
func NewProgram(srcDirs []string) (*Program, error) {
	files, err := Discover(srcDirs)
	if err != nil {
		return nil, err
	}

	p := &Program{
		Words:   word.NewTable(),
		Types:   types.NewInterner(),
		IDs:     &symtab.ModuleIDGen{},
		units:   make(map[string]*symtab.FileUnit, len(files)),
		systems: make(map[string]string, len(files)),
	}

	for i, f := range files {
		unit := symtab.NewFileUnit(symref.UnitID(i+1), f.InternalPath, p.Words, p.IDs)
		p.units[f.InternalPath] = unit
		p.systems[f.InternalPath] = f.SystemPath
		p.paths = append(p.paths, f.InternalPath)
	}
	sort.Strings(p.paths)
	return p, nil
}

// Lookup resolves an internal path to its FileUnit, satisfying
// resolve.UnitLookup and the orchestrator's own dependency lookups.
func (p *Program) Lookup(internalPath string) (*symtab.FileUnit, bool) {
	u, ok := p.units[internalPath]
	return u, ok
}

// Units returns every unit in stable, sorted-by-internal-path order.
func (p *Program) Units() []*symtab.FileUnit {
	out := make([]*symtab.FileUnit, len(p.paths))
	for i, path := range p.paths {
		out[i] = p.units[path]
	}
	return out
}

// SystemPath returns the filesystem path a unit was discovered at, for
// diagnostics printing (spec.md §6.1 "display-source-paths") and for
// ParseAll to read the file's bytes.
func (p *Program) SystemPath(unit *symtab.FileUnit) string {
	return p.systems[unit.Path]
}

// ParseAll reads every unit's source file and hands it to parser,
// advancing each unit DISCOVERED -> PARSED and registering a ModuleSymbol
// for every parsed module declaration, so an importer's IMPORTS_RESOLVED
// phase (which only needs its dependencies PARSED) can load them. A read
// failure is a structural error (spec.md §7) and aborts the whole program
// immediately, mirroring FAILED_TO_READ_FILE's propagation policy.
func (p *Program) ParseAll(parser Parser) error {
	for _, unit := range p.Units() {
		src, err := os.ReadFile(p.SystemPath(unit))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p.SystemPath(unit), err)
		}
		if err := parser.Parse(unit, src); err != nil {
			return fmt.Errorf("failed to parse %s: %w", p.SystemPath(unit), err)
		}
		for _, decl := range unit.Modules {
			if _, ok := unit.Table.FindModule(decl.NameKey); !ok {
				unit.Table.RegisterModule(&symtab.ModuleSymbol{NameKey: decl.NameKey, Mods: decl.Mods, HasNoConstructorsDeclared: len(decl.Constructors) == 0})
			}
		}
		unit.Phase = symtab.Parsed
	}
	return nil
}
