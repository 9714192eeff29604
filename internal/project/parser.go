package project

import "nylac/internal/symtab"

// Parser is the external collaborator that turns one source file's bytes
// into AST fed into unit (modules, global declarations, and the import
// list) plus the DISCOVERED -> PARSED transition's diagnostics. The
// lexer and the parser's surface grammar are out of this repo's scope
// (spec.md §1); this interface is the contract the orchestrator drives
// against, exactly the way internal/backend.Backend stands in for the
// IR backend.
type Parser interface {
	Parse(unit *symtab.FileUnit, src []byte) error
}
