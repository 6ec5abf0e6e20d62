// Package macro implements .macro/.endmacro collection and expansion of
// parenthesized macro calls, including nested calls up to a fixed depth.
package macro

import (
	"regexp"
	"strings"

	"github.com/asmkit/asm8080/internal/diag"
	"github.com/asmkit/asm8080/internal/origin"
	"github.com/asmkit/asm8080/internal/preprocess"
)

// MaxCallDepth bounds nested macro-call expansion.
const MaxCallDepth = 32

// Parameter is a single named macro parameter, optionally defaulted.
type Parameter struct {
	Name         string
	Default      string
	HasDefault   bool
}

// Definition is a collected .macro ... .endmacro block.
type Definition struct {
	Name       string
	Params     []Parameter
	Body       []string // raw body text, one entry per body line
	DefOrigin  origin.Origin
}

var (
	macroStart = regexp.MustCompile(`^\s*\.macro\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(([^)]*)\)\s*$`)
	macroEnd   = regexp.MustCompile(`^\s*\.endmacro\s*$`)
	callLine   = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*\(([^)]*)\)\s*$`)
	labelDef   = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*):`)
)

func parseParams(raw string) []Parameter {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	params := make([]Parameter, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if eq := strings.IndexByte(p, '='); eq >= 0 {
			params = append(params, Parameter{
				Name:       strings.TrimSpace(p[:eq]),
				Default:    strings.TrimSpace(p[eq+1:]),
				HasDefault: true,
			})
		} else {
			params = append(params, Parameter{Name: p})
		}
	}
	return params
}

// Collect scans lines for .macro/.endmacro blocks, returning the table of
// definitions and the line stream with those blocks removed. Unterminated
// macro definitions are recorded as structure errors.
func Collect(lines []preprocess.Line, d *diag.Diagnostics) (map[string]*Definition, []preprocess.Line) {
	d.SetPhase("macro-collect")
	defs := make(map[string]*Definition)
	remaining := make([]preprocess.Line, 0, len(lines))

	i := 0
	for i < len(lines) {
		line := lines[i]
		m := macroStart.FindStringSubmatch(line.Text)
		if m == nil {
			remaining = append(remaining, line)
			i++
			continue
		}

		name := m[1]
		params := parseParams(m[2])
		defOrigin := line.Origin
		body := make([]string, 0)

		i++
		closed := false
		for i < len(lines) {
			if macroEnd.MatchString(lines[i].Text) {
				closed = true
				i++
				break
			}
			body = append(body, lines[i].Text)
			i++
		}
		if !closed {
			d.Error(diag.KindStructure, d.LocIn(defOrigin.File, defOrigin.Line, 0),
				"macro \""+name+"\" has no matching .endmacro")
			continue
		}
		if _, dup := defs[name]; dup {
			d.Error(diag.KindStructure, d.LocIn(defOrigin.File, defOrigin.Line, 0),
				"duplicate macro definition \""+name+"\"")
			continue
		}

		defs[name] = &Definition{Name: name, Params: params, Body: body, DefOrigin: defOrigin}
	}

	return defs, remaining
}
