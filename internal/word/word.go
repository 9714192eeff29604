// Package word implements the word table: the process-lifetime interning
// table mapping textual identifiers to dense integer keys.
package word

import "sync"

// Key is a dense, non-negative integer identifying an interned textual
// name. Stable for the process lifetime of one compilation.
type Key uint32

// Invalid is never returned by Intern; it marks the absence of a word.
const Invalid Key = 0

// Table is the word table. Intern and Reveal are safe for concurrent use,
// though the orchestrator only ever drives it from a single goroutine.
type Table struct {
	mu      sync.RWMutex
	byText  map[string]Key
	byKey   []string // index 0 reserved, mirrors the symtab arena sentinel convention
	keywords map[string]Key
}

// NewTable builds an empty word table with the predefined keyword set
// already interned, so a parser could recognize keywords by key alone.
func NewTable() *Table {
	t := &Table{
		byText: make(map[string]Key, 256),
		byKey:  make([]string, 1, 256),
	}
	t.keywords = make(map[string]Key, len(Keywords))
	for _, kw := range Keywords {
		t.keywords[kw] = t.intern(kw)
	}
	return t
}

// Keywords is the predefined set of reserved words a parser would need to
// recognize by key. Listed here because the word table, not the parser, is
// in scope (SPEC_FULL.md §1 puts the parser's surface grammar out of scope).
var Keywords = []string{
	"module", "func", "var", "return", "if", "else", "for", "while",
	"static", "private", "protected", "public", "external", "const",
	"comptime", "this", "new", "null", "true", "false", "StartUp",
	"byte", "short", "int", "long", "ubyte", "ushort", "uint", "ulong",
	"float", "double", "char8", "char16", "char32", "bool", "void", "String",
}

// Intern is pure and idempotent: repeated calls with the same bytes return
// the same key.
func (t *Table) Intern(text string) Key {
	t.mu.RLock()
	if k, ok := t.byText[text]; ok {
		t.mu.RUnlock()
		return k
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if k, ok := t.byText[text]; ok {
		return k
	}
	return t.intern(text)
}

// intern must be called with t.mu held for writing.
func (t *Table) intern(text string) Key {
	k := Key(len(t.byKey))
	t.byKey = append(t.byKey, text)
	t.byText[text] = k
	return k
}

// Reveal is total over keys previously returned by Intern; it panics on an
// out-of-range key, which indicates a caller bug rather than a recoverable
// condition.
func (t *Table) Reveal(k Key) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if k == Invalid || int(k) >= len(t.byKey) {
		panic("word: Reveal of unknown key")
	}
	return t.byKey[k]
}

// Len reports how many distinct words have been interned, excluding the
// reserved sentinel at key 0.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byKey) - 1
}

// Keyword looks up a predefined keyword's key, established at NewTable
// time. The second return value is false for ordinary identifiers.
func (t *Table) Keyword(text string) (Key, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	k, ok := t.keywords[text]
	return k, ok
}
