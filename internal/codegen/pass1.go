package codegen

import (
	"github.com/asmkit/asm8080/internal/diag"
	"github.com/asmkit/asm8080/internal/expr"
	"github.com/asmkit/asm8080/internal/preprocess"
	"github.com/asmkit/asm8080/internal/symtab"
)

// labelForbidden reports whether a leading label on this kind of statement
// is a semantic error: .if/.endif/.print/.error/.var carry no address of
// their own for a label to resolve to.
func labelForbidden(kind stmtKind) bool {
	switch kind {
	case stmtIf, stmtEndif, stmtPrint, stmtErrorRaise, stmtVar:
		return true
	default:
		return false
	}
}

// pass1 walks the expanded line stream assigning addresses and sizes
// without emitting any bytes. It records labels, constants, line
// addresses and data-line placements directly into the returned Result,
// and populates g.sym as it goes so forward-declared symbols used by
// later .org/.if/DS expressions at Pass 1 time still fail the way a
// two-pass assembler's first pass always does: only backward references
// resolve during layout.
func (g *Generator) pass1(lines []preprocess.Line) Result {
	var res Result
	var pc int64

	for _, line := range lines {
		file, lineNo := line.Origin.Root()
		g.currentFile = file
		loc := g.diag.LocIn(file, lineNo, 0)

		s := classify(line.Text)

		if s.label != "" && g.active() {
			if labelForbidden(s.kind) {
				g.diag.Error(diag.KindSemantic, loc, "label not allowed on this directive")
			} else if s.kind != stmtOrg && s.kind != stmtAlign {
				// .org/.align defer label registration until the new
				// address is picked, below.
				g.defineLabel(s.label, pc, file, lineNo, &res, loc)
			}
		}

		switch s.kind {
		case stmtBlank, stmtPrint, stmtErrorRaise:
			// nothing to lay out: .print/.error emit no bytes and are
			// evaluated for real in Pass 2.

		case stmtConst:
			if g.active() {
				v, err := expr.Eval(s.exprText, g.env(pc))
				if err != nil {
					g.diag.Error(diag.KindSemantic, loc, "cannot evaluate constant "+s.mnemonic+": "+err.Error())
				} else if err := g.sym.DefineConst(s.mnemonic, v); err != nil {
					g.diag.Error(diag.KindSemantic, loc, err.Error())
				} else {
					res.Consts = append(res.Consts, ConstInfo{Name: s.mnemonic, Value: v})
				}
			}

		case stmtVar:
			if g.active() {
				v, err := expr.Eval(s.exprText, g.env(pc))
				if err != nil {
					g.diag.Error(diag.KindSemantic, loc, "cannot evaluate .var "+s.mnemonic+": "+err.Error())
				} else {
					g.sym.SetVar(s.mnemonic, v)
				}
			}

		case stmtOrg:
			if g.active() {
				v, err := expr.Eval(s.exprText, g.env(pc))
				if err != nil {
					g.diag.Error(diag.KindSemantic, loc, "cannot evaluate .org target: "+err.Error())
				} else {
					pc = v
					g.scopeCounter++
					if s.label != "" {
						g.defineLabel(s.label, pc, file, lineNo, &res, loc)
					}
				}
			}

		case stmtAlign:
			if g.active() {
				v, err := expr.Eval(s.exprText, g.env(pc))
				if err != nil {
					g.diag.Error(diag.KindSemantic, loc, "cannot evaluate .align boundary: "+err.Error())
				} else if !isPowerOfTwo(v) {
					g.diag.Error(diag.KindRange, loc, ".align boundary must be a positive power of two")
				} else {
					if rem := pc % v; rem != 0 {
						pc += v - rem
					}
					if pc >= 0x10000 {
						g.diag.Error(diag.KindRange, loc, ".align advanced past 0x10000")
					}
					if s.label != "" {
						g.defineLabel(s.label, pc, file, lineNo, &res, loc)
					}
				}
			}

		case stmtIf:
			if !g.active() {
				g.ifStack = append(g.ifStack, ifFrame{state: ifInactiveSuppressed})
				break
			}
			v, err := expr.Eval(s.exprText, g.env(pc))
			if err != nil {
				g.diag.Error(diag.KindSemantic, loc, "cannot evaluate .if condition: "+err.Error())
				g.ifStack = append(g.ifStack, ifFrame{state: ifInactiveByCondition})
				break
			}
			if v != 0 {
				g.ifStack = append(g.ifStack, ifFrame{state: ifActive})
			} else {
				g.ifStack = append(g.ifStack, ifFrame{state: ifInactiveByCondition})
			}

		case stmtEndif:
			if len(g.ifStack) == 0 {
				g.diag.Error(diag.KindStructure, loc, ".endif without matching .if")
				break
			}
			g.ifStack = g.ifStack[:len(g.ifStack)-1]

		case stmtEncoding:
			if g.active() {
				if err := g.applyEncoding(s.dataItems); err != nil {
					g.diag.Error(diag.KindSemantic, loc, err.Error())
				}
			}

		case stmtText:
			if g.active() {
				size := dbSize(s.dataItems)
				res.DataLines = append(res.DataLines, DataLine{File: file, OrigLine: lineNo, Addr: pc, ByteLength: size, UnitBytes: 1})
				res.LineAddresses = append(res.LineAddresses, LineAddr{File: file, OrigLine: lineNo, Addr: pc})
				pc += int64(size)
			}

		case stmtIncbin:
			if g.active() {
				data, err := g.loadIncbin(s, pc)
				if err != nil {
					g.diag.Error(diag.KindIO, loc, "cannot read .incbin: "+err.Error())
					break
				}
				size := len(data)
				res.DataLines = append(res.DataLines, DataLine{File: file, OrigLine: lineNo, Addr: pc, ByteLength: size, UnitBytes: 1})
				res.LineAddresses = append(res.LineAddresses, LineAddr{File: file, OrigLine: lineNo, Addr: pc})
				pc += int64(size)
			}

		case stmtDB:
			if g.active() {
				size := dbSize(s.dataItems)
				res.DataLines = append(res.DataLines, DataLine{File: file, OrigLine: lineNo, Addr: pc, ByteLength: size, UnitBytes: 1})
				res.LineAddresses = append(res.LineAddresses, LineAddr{File: file, OrigLine: lineNo, Addr: pc})
				pc += int64(size)
			}

		case stmtDW:
			if g.active() {
				size := len(s.dataItems) * 2
				res.DataLines = append(res.DataLines, DataLine{File: file, OrigLine: lineNo, Addr: pc, ByteLength: size, UnitBytes: 2})
				res.LineAddresses = append(res.LineAddresses, LineAddr{File: file, OrigLine: lineNo, Addr: pc})
				pc += int64(size)
			}

		case stmtDS:
			if g.active() {
				v, err := expr.Eval(s.exprText, g.env(pc))
				if err != nil {
					g.diag.Error(diag.KindSemantic, loc, "cannot evaluate .space size: "+err.Error())
					break
				}
				if v < 0 {
					g.diag.Error(diag.KindRange, loc, "negative .space size")
					break
				}
				res.DataLines = append(res.DataLines, DataLine{File: file, OrigLine: lineNo, Addr: pc, ByteLength: int(v), UnitBytes: 1})
				res.LineAddresses = append(res.LineAddresses, LineAddr{File: file, OrigLine: lineNo, Addr: pc})
				pc += v
			}

		case stmtInstruction:
			if g.active() {
				size, ok := g.instructionSize(s, loc)
				if ok {
					res.LineAddresses = append(res.LineAddresses, LineAddr{File: file, OrigLine: lineNo, Addr: pc})
					pc += int64(size)
				}
			}
		}
	}

	return res
}

func (g *Generator) defineLabel(name string, addr int64, file string, lineNo int, res *Result, loc diag.Location) {
	if symtab.IsLocalName(name) {
		if err := g.sym.DefineLocal(g.scopeKey(), name, addr); err != nil {
			g.diag.Error(diag.KindSemantic, loc, err.Error())
		}
		return
	}
	if err := g.sym.DefineLabel(name, addr); err != nil {
		g.diag.Error(diag.KindSemantic, loc, err.Error())
		return
	}
	res.Labels = append(res.Labels, LabelInfo{Name: name, Addr: addr, File: file, Line: lineNo})
	g.scopeCounter++
}

// instructionSize resolves the operand shape and returns its encoded
// size, or (0, false) if it could not be resolved (a diagnostic has
// already been recorded).
func (g *Generator) instructionSize(s stmt, loc diag.Location) (int, bool) {
	if s.mnemonic == "RST" {
		if len(s.operands) != 1 {
			g.diag.Error(diag.KindSyntax, loc, "RST requires exactly one operand")
			return 0, false
		}
		return 1, true
	}
	sh, ok := resolveShape(g.cpu, s.mnemonic, s.operands)
	if !ok {
		g.diag.Error(diag.KindSemantic, loc, "unrecognized instruction shape: "+buildKey(s.mnemonic, s.operands))
		return 0, false
	}
	return sh.entry.Size, true
}

func dbSize(items []string) int {
	size := 0
	for _, item := range items {
		item = trimSpaceQuotes(item)
		if len(item) >= 2 && item[0] == '"' && item[len(item)-1] == '"' {
			size += len(item) - 2
		} else {
			size++
		}
	}
	return size
}

func trimSpaceQuotes(s string) string {
	for len(s) > 0 && (s[0] == ' ' || s[0] == '\t') {
		s = s[1:]
	}
	for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t') {
		s = s[:len(s)-1]
	}
	return s
}

func isPowerOfTwo(v int64) bool {
	return v > 0 && v&(v-1) == 0
}
