package codegen

import (
	"github.com/asmkit/asm8080/internal/diag"
	"github.com/asmkit/asm8080/internal/expr"
	"github.com/asmkit/asm8080/internal/isa"
	"github.com/asmkit/asm8080/internal/preprocess"
	"github.com/asmkit/asm8080/internal/symtab"
)

// Generator runs the two-pass layout/emit engine over a fully
// pre-processed, macro- and loop-expanded line stream.
type Generator struct {
	cpu  isa.CPU
	sym  *symtab.Table
	diag *diag.Diagnostics

	scopeCounter int
	currentFile  string
	ifStack      []ifFrame

	// textEncoding/textCase hold the state ".encoding" sets for subsequent
	// ".text" directives; "" means the default ("ascii", "mixed").
	textEncoding string
	textCase     string
}

// New returns a Generator bound to the given symbol table and
// diagnostics sink. The caller owns both and may inspect them after
// Generate returns.
func New(cpu isa.CPU, sym *symtab.Table, d *diag.Diagnostics) *Generator {
	return &Generator{cpu: cpu, sym: sym, diag: d}
}

// active reports whether the current .if/.endif nesting permits emission.
func (g *Generator) active() bool {
	if len(g.ifStack) == 0 {
		return true
	}
	return g.ifStack[len(g.ifStack)-1].state == ifActive
}

func (g *Generator) scopeKey() string {
	return symtab.ScopeKey(g.currentFile, g.scopeCounter, "")
}

func (g *Generator) env(pc int64) expr.Env {
	scopeKey := g.scopeKey()
	return expr.Env{
		PC: pc,
		Resolve: func(name string) (int64, bool) {
			return g.sym.Resolve(scopeKey, name)
		},
	}
}

// Generate runs Pass 1 (layout) then, if no errors were recorded, Pass 2
// (emit), returning the assembled ROM image and debug metadata.
func (g *Generator) Generate(lines []preprocess.Line) Result {
	g.diag.SetPhase("codegen-pass1")
	res := g.pass1(lines)

	if len(g.ifStack) != 0 {
		g.diag.Error(diag.KindStructure, g.diag.Loc(0, 0), "unterminated .if at end of file")
	}
	if g.diag.HasErrors() {
		return res
	}

	g.diag.SetPhase("codegen-pass2")
	g.resetCursors()
	rom := g.pass2(lines, &res)
	res.ROM = rom
	return res
}

func (g *Generator) resetCursors() {
	g.scopeCounter = 0
	g.currentFile = ""
	g.ifStack = nil
	g.textEncoding = ""
	g.textCase = ""
}
