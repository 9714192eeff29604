package diag

import "nylac/internal/source"

// Note attaches supplementary context to a Diagnostic (e.g. pointing at the
// earlier declaration in a redeclaration error).
type Note struct {
	Message string
	Span    source.Span
}

// Diagnostic is a single reported problem. Local errors carry the
// offending AST node's span as payload (spec.md §7 propagation policy).
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Span     source.Span
	Notes    []Note
}

// Bag collects diagnostics for one unit, in report order.
type Bag struct {
	items []Diagnostic
}

// Reporter is the narrow interface analysis and resolution depend on, so
// they can be tested against a bare Bag without an orchestrator.
type Reporter interface {
	Report(d Diagnostic)
}

func (b *Bag) Report(d Diagnostic) { b.items = append(b.items, d) }

func (b *Bag) Items() []Diagnostic { return b.items }

// HasErrors reports whether any diagnostic in the bag is SeverityError,
// i.e. whether the owning unit must be marked FAILED (spec.md §4.6).
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Builder provides a fluent, single-expression way to construct and file a
// Diagnostic, mirroring the teacher's ReportBuilder convenience without
// carrying over its Fix/TextEdit machinery where nothing in this repo
// offers a mechanical fix.
type Builder struct {
	d Diagnostic
	r Reporter
}

// New starts building a diagnostic of the given code and message at span.
func New(r Reporter, code Code, span source.Span, message string) *Builder {
	return &Builder{r: r, d: Diagnostic{Code: code, Severity: SeverityError, Span: span, Message: message}}
}

// WithNote appends a Note and returns the builder for chaining.
func (b *Builder) WithNote(message string, span source.Span) *Builder {
	b.d.Notes = append(b.d.Notes, Note{Message: message, Span: span})
	return b
}

// Emit files the diagnostic with the underlying Reporter.
func (b *Builder) Emit() {
	b.r.Report(b.d)
}
