package symtab

import (
	"nylac/internal/symref"
	"nylac/internal/word"
)

// Scope is spec.md §3 "Scope".
type Scope struct {
	Parent      symref.ScopeID
	Locals      map[word.Key]symref.SymbolID
	FoundReturn bool
}
