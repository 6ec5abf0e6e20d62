// Package loopexpand implements .loop/.endloop expansion: the bound
// expression is evaluated against a restricted symbol table containing
// only the NAME = value / NAME EQU value constants that appear textually
// before the loop in the same stream — labels and locals are never
// available here, since layout hasn't run yet. The body is repeated that
// many times, up to a hard cap.
package loopexpand

import (
	"regexp"
	"strconv"

	"github.com/asmkit/asm8080/internal/diag"
	"github.com/asmkit/asm8080/internal/expr"
	"github.com/asmkit/asm8080/internal/origin"
	"github.com/asmkit/asm8080/internal/preprocess"
)

// MaxIterations bounds a single .loop's iteration count.
const MaxIterations = 100000

var (
	loopStart  = regexp.MustCompile(`^\s*\.loop\s+(.+?)\s*$`)
	loopEnd    = regexp.MustCompile(`^\s*\.endloop\s*$`)
	indexTok   = regexp.MustCompile(`\{LOOP_INDEX\}`)
	assignStmt = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*(?:=|EQU)\s*(.+)$`)
)

// Run expands every .loop/.endloop block in lines. Nested loops are
// expanded outermost-first: the outer body is repeated with any inner
// .loop blocks still in place, then the repeated lines are expanded again.
func Run(lines []preprocess.Line, d *diag.Diagnostics) []preprocess.Line {
	d.SetPhase("loop-expand")
	consts := make(map[string]int64)
	out, _ := expandLines(lines, consts, d)
	return out
}

// loopEnv builds the restricted evaluator for a .loop bound expression:
// known constants resolve to their recorded value, and any other
// identifier (a label, a local, or a constant not yet assigned at this
// point in the stream) is tolerated as null rather than an error.
func loopEnv(consts map[string]int64) expr.Env {
	return expr.Env{
		Resolve: func(name string) (int64, bool) {
			if v, ok := consts[name]; ok {
				return v, true
			}
			return 0, true
		},
	}
}

func expandLines(lines []preprocess.Line, consts map[string]int64, d *diag.Diagnostics) ([]preprocess.Line, bool) {
	out := make([]preprocess.Line, 0, len(lines))
	i := 0
	for i < len(lines) {
		line := lines[i]

		if m := assignStmt.FindStringSubmatch(line.Text); m != nil {
			if v, err := expr.Eval(m[2], loopEnv(consts)); err == nil {
				consts[m[1]] = v
			}
			out = append(out, line)
			i++
			continue
		}

		m := loopStart.FindStringSubmatch(line.Text)
		if m == nil {
			out = append(out, line)
			i++
			continue
		}

		countExpr := m[1]
		bodyStart := i + 1
		depth := 1
		j := bodyStart
		for j < len(lines) && depth > 0 {
			if loopStart.MatchString(lines[j].Text) {
				depth++
			} else if loopEnd.MatchString(lines[j].Text) {
				depth--
				if depth == 0 {
					break
				}
			}
			j++
		}
		if j >= len(lines) {
			d.Error(diag.KindStructure, d.LocIn(line.Origin.File, line.Origin.Line, 0),
				".loop has no matching .endloop")
			return out, true
		}

		body := lines[bodyStart:j]
		i = j + 1 // past .endloop

		count, err := expr.Eval(countExpr, loopEnv(consts))
		if err != nil {
			d.Error(diag.KindSemantic, d.LocIn(line.Origin.File, line.Origin.Line, 0),
				"invalid .loop count expression: "+err.Error())
			continue
		}
		if count < 0 {
			d.Error(diag.KindRange, d.LocIn(line.Origin.File, line.Origin.Line, 0),
				"negative .loop count")
			continue
		}
		if count > MaxIterations {
			d.Error(diag.KindRange, d.LocIn(line.Origin.File, line.Origin.Line, 0),
				"loop iteration count "+strconv.FormatInt(count, 10)+" exceeds limit of "+strconv.Itoa(MaxIterations))
			continue
		}

		expanded := make([]preprocess.Line, 0, int(count)*len(body))
		for iter := int64(0); iter < count; iter++ {
			for bodyIdx, bl := range body {
				text := indexTok.ReplaceAllString(bl.Text, strconv.FormatInt(iter, 10))
				expanded = append(expanded, preprocess.Line{
					Text:   text,
					Origin: origin.LoopInstance(int(iter), line.Origin, bodyIdx+1),
				})
			}
		}

		// Nested .loop blocks inside this body were copied unexpanded;
		// recurse to expand them.
		nested, hitErr := expandLines(expanded, consts, d)
		out = append(out, nested...)
		if hitErr {
			return out, true
		}
	}
	return out, false
}
