package diag

// Diagnostics is a passive, append-only data structure that accumulates
// diagnostic entries as the assembler pipeline progresses. Unlike the
// teacher's debugcontext.DebugContext, it carries no mutex: the pipeline
// that owns a Diagnostics is single-threaded end to end, so the lock would
// never contend — see SPEC_FULL.md §5.
//
// Create a Diagnostics exclusively through New(). It is passed through the
// pipeline by reference; every stage records entries into the same
// instance. It performs no I/O or formatting itself — Format renders an
// *Entry for display.
type Diagnostics struct {
	filePath string
	phase    string
	entries  []*Entry
}

// New returns a *Diagnostics initialised with the primary source file path.
func New(filePath string) *Diagnostics {
	return &Diagnostics{filePath: filePath, entries: make([]*Entry, 0)}
}

// SetPhase sets the current pipeline phase. Subsequent entries are tagged
// with it until changed again.
func (d *Diagnostics) SetPhase(name string) { d.phase = name }

// Phase returns the current pipeline phase name.
func (d *Diagnostics) Phase() string { return d.phase }

// Loc creates a Location using the primary file path.
func (d *Diagnostics) Loc(line, column int) Location {
	return Loc(d.filePath, line, column)
}

// LocIn creates a Location with an explicit file path, for lines
// originating from an included file.
func (d *Diagnostics) LocIn(filePath string, line, column int) Location {
	return Loc(filePath, line, column)
}

func (d *Diagnostics) record(severity Severity, kind Kind, location Location, message string) *Entry {
	entry := &Entry{severity: severity, kind: kind, phase: d.phase, message: message, location: location}
	d.entries = append(d.entries, entry)
	return entry
}

// Error records an error-severity entry of the given Kind.
func (d *Diagnostics) Error(kind Kind, location Location, message string) *Entry {
	return d.record(SeverityError, kind, location, message)
}

// Warning records a warning-severity entry.
func (d *Diagnostics) Warning(location Location, message string) *Entry {
	return d.record(SeverityWarning, "", location, message)
}

// Info records an info-severity entry.
func (d *Diagnostics) Info(location Location, message string) *Entry {
	return d.record(SeverityInfo, "", location, message)
}

// Trace records a trace-severity entry.
func (d *Diagnostics) Trace(location Location, message string) *Entry {
	return d.record(SeverityTrace, "", location, message)
}

// Entries returns all recorded entries in insertion order.
func (d *Diagnostics) Entries() []*Entry {
	out := make([]*Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Errors returns only error-severity entries, in insertion order.
func (d *Diagnostics) Errors() []*Entry {
	return d.filter(SeverityError)
}

// Warnings returns only warning-severity entries, in insertion order.
func (d *Diagnostics) Warnings() []*Entry {
	return d.filter(SeverityWarning)
}

// HasErrors reports whether at least one error-severity entry exists — the
// primary check the pipeline uses to decide whether to abort Pass 2.
func (d *Diagnostics) HasErrors() bool {
	for _, e := range d.entries {
		if e.severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the total number of recorded entries.
func (d *Diagnostics) Count() int { return len(d.entries) }

// FilePath returns the primary source file path.
func (d *Diagnostics) FilePath() string { return d.filePath }

func (d *Diagnostics) filter(severity Severity) []*Entry {
	var result []*Entry
	for _, e := range d.entries {
		if e.severity == severity {
			result = append(result, e)
		}
	}
	return result
}
