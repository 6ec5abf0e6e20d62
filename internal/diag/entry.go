package diag

import "fmt"

// Severity classifies how serious an entry is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityTrace   Severity = "trace"
)

// Kind classifies the category of failure an error-severity Entry
// represents.
type Kind string

const (
	// KindIO covers file-system failures (missing include, unreadable
	// binary, unwritable output).
	KindIO Kind = "io"
	// KindSyntax covers malformed source text that the tokenizer or
	// expression parser cannot make sense of.
	KindSyntax Kind = "syntax"
	// KindSemantic covers well-formed text with an invalid meaning
	// (undefined symbol, unknown mnemonic, unknown directive).
	KindSemantic Kind = "semantic"
	// KindRange covers values that parse fine but don't fit where they're
	// used (immediate out of range, RST argument outside 0-7).
	KindRange Kind = "range"
	// KindStructure covers malformed nesting (unterminated macro, unmatched
	// .if, include recursion too deep).
	KindStructure Kind = "structure"
	// KindUser covers a `.error` directive explicitly raised by the source.
	KindUser Kind = "user"
)

// Entry is a single diagnostic event recorded by the assembler pipeline.
// Entries are append-only — once created, severity/kind/phase/message/
// location are immutable; only the optional With* fields can still be set.
type Entry struct {
	severity Severity
	kind     Kind
	phase    string
	message  string
	location Location
	snippet  string
	hint     string
}

func (e *Entry) Severity() Severity { return e.severity }
func (e *Entry) Kind() Kind         { return e.kind }
func (e *Entry) Phase() string      { return e.phase }
func (e *Entry) Message() string    { return e.message }
func (e *Entry) Location() Location { return e.location }
func (e *Entry) Snippet() string    { return e.snippet }
func (e *Entry) Hint() string       { return e.hint }

// WithSnippet sets the source line text this entry refers to and returns
// the same *Entry for chaining.
func (e *Entry) WithSnippet(text string) *Entry {
	e.snippet = text
	return e
}

// WithHint sets a fix suggestion and returns the same *Entry for chaining.
func (e *Entry) WithHint(text string) *Entry {
	e.hint = text
	return e
}

// String returns a single-line representation for quick debugging:
// "severity [phase] location: message".
func (e *Entry) String() string {
	return fmt.Sprintf("%s [%s] %s: %s", e.severity, e.phase, e.location.String(), e.message)
}
