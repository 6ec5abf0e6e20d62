// Package symtab holds the assembler's symbol tables: immutable constants,
// reassignable .var variables, global labels and per-scope local labels.
package symtab

import (
	"fmt"
	"strconv"
	"strings"
)

// Table is the complete symbol state for one assembly. It has no mutex —
// the pipeline that owns a Table is single-threaded.
type Table struct {
	consts map[string]int64
	vars   map[string]int64
	labels map[string]int64
	locals map[string]map[string]int64 // scopeKey -> "@name" -> address
}

// New returns an empty Table.
func New() *Table {
	return &Table{
		consts: make(map[string]int64),
		vars:   make(map[string]int64),
		labels: make(map[string]int64),
		locals: make(map[string]map[string]int64),
	}
}

// DefineConst records a `name = value` / `name EQU value` constant.
// Constants are immutable: redefining one is an error.
func (t *Table) DefineConst(name string, value int64) error {
	if _, exists := t.consts[name]; exists {
		return fmt.Errorf("constant %q already defined", name)
	}
	if _, exists := t.labels[name]; exists {
		return fmt.Errorf("%q is already defined as a label", name)
	}
	t.consts[name] = value
	return nil
}

// SetVar assigns (or reassigns) a `.var` variable.
func (t *Table) SetVar(name string, value int64) {
	t.vars[name] = value
}

// Var returns the current value of a .var variable.
func (t *Table) Var(name string) (int64, bool) {
	v, ok := t.vars[name]
	return v, ok
}

// DefineLabel records a global label's address. Duplicate global labels are
// an error.
func (t *Table) DefineLabel(name string, address int64) error {
	if _, exists := t.labels[name]; exists {
		return fmt.Errorf("label %q already defined", name)
	}
	if _, exists := t.consts[name]; exists {
		return fmt.Errorf("%q is already defined as a constant", name)
	}
	t.labels[name] = address
	return nil
}

// Label resolves a global label by name.
func (t *Table) Label(name string) (int64, bool) {
	v, ok := t.labels[name]
	return v, ok
}

// ScopeKey builds the scope key for a local-label index: the resolved file
// path plus a directive counter distinguishing successive scopes within the
// same file, plus an optional macro-expansion scope suffix.
func ScopeKey(file string, directiveCounter int, macroScope string) string {
	key := file + "::" + strconv.Itoa(directiveCounter)
	if macroScope != "" {
		key += "::" + macroScope
	}
	return key
}

// DefineLocal records a local label (conventionally written "@name") within
// the given scope. Duplicate local labels within the same scope are an
// error.
func (t *Table) DefineLocal(scopeKey, name string, address int64) error {
	scope, ok := t.locals[scopeKey]
	if !ok {
		scope = make(map[string]int64)
		t.locals[scopeKey] = scope
	}
	if _, exists := scope[name]; exists {
		return fmt.Errorf("local label %q already defined in scope %q", name, scopeKey)
	}
	scope[name] = address
	return nil
}

// Local resolves a local label within the given scope.
func (t *Table) Local(scopeKey, name string) (int64, bool) {
	scope, ok := t.locals[scopeKey]
	if !ok {
		return 0, false
	}
	v, ok := scope[name]
	return v, ok
}

// IsLocalName reports whether an identifier uses the always-local "@name"
// convention.
func IsLocalName(name string) bool {
	return strings.HasPrefix(name, "@")
}

// Resolve looks up an identifier for expression evaluation, searching (in
// order) the current scope's local labels, .var variables, constants, and
// finally global labels. Used as the expr.Env.Resolve callback.
func (t *Table) Resolve(scopeKey, name string) (int64, bool) {
	if IsLocalName(name) {
		return t.Local(scopeKey, name)
	}
	if v, ok := t.vars[name]; ok {
		return v, ok
	}
	if v, ok := t.consts[name]; ok {
		return v, ok
	}
	if v, ok := t.labels[name]; ok {
		return v, ok
	}
	return 0, false
}
