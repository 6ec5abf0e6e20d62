package macro

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/asmkit/asm8080/internal/diag"
	"github.com/asmkit/asm8080/internal/origin"
	"github.com/asmkit/asm8080/internal/preprocess"
)

// Expand walks lines looking for calls to macros in defs, substituting
// each call with the macro body (parameters replaced, plain label
// definitions rewritten per-invocation so repeated calls don't collide).
// Nested calls (a macro body calling another macro) are expanded
// recursively up to MaxCallDepth.
func Expand(lines []preprocess.Line, defs map[string]*Definition, d *diag.Diagnostics) []preprocess.Line {
	d.SetPhase("macro-expand")
	counters := make(map[string]int)
	out, _ := expandLines(lines, defs, counters, 0, d)
	return out
}

func expandLines(lines []preprocess.Line, defs map[string]*Definition, counters map[string]int, depth int, d *diag.Diagnostics) ([]preprocess.Line, bool) {
	out := make([]preprocess.Line, 0, len(lines))
	for _, line := range lines {
		m := callLine.FindStringSubmatch(line.Text)
		if m == nil {
			out = append(out, line)
			continue
		}
		name := m[1]
		def, ok := defs[name]
		if !ok {
			// Not a macro call — some other parenthesized expression
			// (e.g. an expression statement); pass through unchanged.
			out = append(out, line)
			continue
		}

		if depth+1 > MaxCallDepth {
			d.Error(diag.KindStructure, d.LocIn(line.Origin.File, line.Origin.Line, 0),
				"macro call nesting too deep (limit "+strconv.Itoa(MaxCallDepth)+")")
			continue
		}

		counters[name]++
		ordinal := counters[name]

		args := splitArgs(m[2])
		bindings, err := bindArgs(def, args)
		if err != "" {
			d.Error(diag.KindSemantic, d.LocIn(line.Origin.File, line.Origin.Line, 0), err)
			continue
		}

		localLabels := collectLocalLabels(def.Body)
		scopeSuffix := "_" + name + strconv.Itoa(ordinal)

		expandedBody := make([]preprocess.Line, 0, len(def.Body))
		for bodyIdx, bodyText := range def.Body {
			text := substituteParams(bodyText, bindings)
			text = rewriteLocalLabels(text, localLabels, scopeSuffix)
			bodyOrigin := origin.MacroInstance(name, ordinal, line.Origin, bodyIdx+1)
			expandedBody = append(expandedBody, preprocess.Line{Text: text, Origin: bodyOrigin})
		}

		nested, hitLimit := expandLines(expandedBody, defs, counters, depth+1, d)
		out = append(out, nested...)
		if hitLimit {
			return out, true
		}
	}
	return out, false
}

func splitArgs(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var args []string
	depth := 0
	start := 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(raw[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(raw[start:]))
	return args
}

func bindArgs(def *Definition, args []string) (map[string]string, string) {
	bindings := make(map[string]string, len(def.Params))
	for i, p := range def.Params {
		switch {
		case i < len(args) && args[i] != "":
			bindings[p.Name] = args[i]
		case p.HasDefault:
			bindings[p.Name] = p.Default
		default:
			return nil, "macro \"" + def.Name + "\" missing required argument \"" + p.Name + "\""
		}
	}
	if len(args) > len(def.Params) {
		return nil, "macro \"" + def.Name + "\" called with too many arguments"
	}
	return bindings, ""
}

var placeholder = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

func substituteParams(text string, bindings map[string]string) string {
	return placeholder.ReplaceAllStringFunc(text, func(tok string) string {
		name := tok[1 : len(tok)-1]
		if v, ok := bindings[name]; ok {
			return v
		}
		return tok
	})
}

// collectLocalLabels finds plain (non-@-prefixed) label definitions within
// a macro body; these get a per-invocation scope suffix so repeated macro
// calls don't produce duplicate global labels.
func collectLocalLabels(body []string) map[string]bool {
	labels := make(map[string]bool)
	for _, line := range body {
		if m := labelDef.FindStringSubmatch(line); m != nil {
			labels[m[1]] = true
		}
	}
	return labels
}

func rewriteLocalLabels(text string, labels map[string]bool, suffix string) string {
	if len(labels) == 0 {
		return text
	}
	return identifierRe.ReplaceAllStringFunc(text, func(word string) string {
		if labels[word] {
			return word + suffix
		}
		return word
	})
}

var identifierRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
