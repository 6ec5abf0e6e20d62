package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/asmkit/asm8080/internal/diag"
	"github.com/asmkit/asm8080/internal/expr"
	"github.com/asmkit/asm8080/internal/origin"
	"github.com/asmkit/asm8080/internal/preprocess"
)

// pass2 re-walks the expanded line stream now that every label, constant
// and .var is known from Pass 1, evaluating every expression for real and
// encoding instructions and data directives into the ROM image. Prints are
// recorded onto res and errors onto the diagnostics sink as they are
// encountered; a .error aborts emission immediately, returning whatever
// bytes were laid down so far.
func (g *Generator) pass2(lines []preprocess.Line, res *Result) []byte {
	var rom []byte
	var pc int64

	ensure := func(addr int64, n int) {
		need := addr + int64(n)
		if int64(len(rom)) < need {
			rom = append(rom, make([]byte, need-int64(len(rom)))...)
		}
	}

	for _, line := range lines {
		file, lineNo := line.Origin.Root()
		g.currentFile = file
		loc := g.diag.LocIn(file, lineNo, 0)

		s := classify(line.Text)
		labelBumpsScope := s.label != "" && !isLocalLabel(s.label) && g.active()

		switch s.kind {
		case stmtConst, stmtBlank:
			// already resolved in Pass 1; nothing to emit

		case stmtEndif:
			if len(g.ifStack) > 0 {
				g.ifStack = g.ifStack[:len(g.ifStack)-1]
			}

		case stmtVar:
			if g.active() {
				if v, err := expr.Eval(s.exprText, g.env(pc)); err == nil {
					g.sym.SetVar(s.mnemonic, v)
				}
			}

		case stmtOrg:
			if g.active() {
				if v, err := expr.Eval(s.exprText, g.env(pc)); err == nil {
					pc = v
					g.scopeCounter++
				}
			}

		case stmtAlign:
			if g.active() {
				if v, err := expr.Eval(s.exprText, g.env(pc)); err == nil && isPowerOfTwo(v) {
					if rem := pc % v; rem != 0 {
						pc += v - rem
					}
				}
			}

		case stmtIf:
			if !g.active() {
				g.ifStack = append(g.ifStack, ifFrame{state: ifInactiveSuppressed})
				break
			}
			v, err := expr.Eval(s.exprText, g.env(pc))
			if err != nil || v == 0 {
				g.ifStack = append(g.ifStack, ifFrame{state: ifInactiveByCondition})
			} else {
				g.ifStack = append(g.ifStack, ifFrame{state: ifActive})
			}

		case stmtEncoding:
			if g.active() {
				g.applyEncoding(s.dataItems)
			}

		case stmtText:
			if g.active() {
				for _, item := range s.dataItems {
					trimmed := trimSpaceQuotes(item)
					if len(trimmed) >= 2 && trimmed[0] == '"' && trimmed[len(trimmed)-1] == '"' {
						encoded := g.encodeTextBytes(trimmed[1 : len(trimmed)-1])
						ensure(pc, len(encoded))
						copy(rom[pc:], encoded)
						pc += int64(len(encoded))
						continue
					}
					v, err := expr.Eval(item, g.env(pc))
					if err != nil {
						g.diag.Error(diag.KindSemantic, loc, "cannot evaluate .text item: "+err.Error())
						pc++
						continue
					}
					ensure(pc, 1)
					rom[pc] = byte(v)
					pc++
				}
			}

		case stmtIncbin:
			if g.active() {
				data, err := g.loadIncbin(s, pc)
				if err != nil {
					g.diag.Error(diag.KindIO, loc, "cannot read .incbin: "+err.Error())
					break
				}
				ensure(pc, len(data))
				copy(rom[pc:], data)
				pc += int64(len(data))
			}

		case stmtPrint:
			if g.active() {
				msg, ok := evalMessageItems(g, s.dataItems, pc, loc)
				if ok {
					res.Prints = append(res.Prints, msg)
					fmt.Println(msg)
				}
			}

		case stmtErrorRaise:
			if g.active() {
				msg, _ := evalMessageItems(g, s.dataItems, pc, loc)
				entry := g.diag.Error(diag.KindUser, loc, msg)
				if line.Origin.Kind != origin.KindFile {
					entry.WithHint("call stack: " + line.Origin.String())
				}
				return rom
			}

		case stmtDB:
			if g.active() {
				for _, item := range s.dataItems {
					trimmed := trimSpaceQuotes(item)
					if len(trimmed) >= 2 && trimmed[0] == '"' && trimmed[len(trimmed)-1] == '"' {
						text := trimmed[1 : len(trimmed)-1]
						ensure(pc, len(text))
						copy(rom[pc:], text)
						pc += int64(len(text))
						continue
					}
					v, err := expr.Eval(item, g.env(pc))
					if err != nil {
						g.diag.Error(diag.KindSemantic, loc, "cannot evaluate DB item: "+err.Error())
						pc++
						continue
					}
					ensure(pc, 1)
					rom[pc] = byte(v)
					pc++
				}
			}

		case stmtDW:
			if g.active() {
				for _, item := range s.dataItems {
					v, err := expr.Eval(item, g.env(pc))
					if err != nil {
						g.diag.Error(diag.KindSemantic, loc, "cannot evaluate DW item: "+err.Error())
						pc += 2
						continue
					}
					ensure(pc, 2)
					rom[pc] = byte(v)
					rom[pc+1] = byte(v >> 8)
					pc += 2
				}
			}

		case stmtDS:
			if g.active() {
				v, err := expr.Eval(s.exprText, g.env(pc))
				if err != nil || v < 0 {
					break
				}
				ensure(pc, int(v))
				pc += v
			}

		case stmtInstruction:
			if g.active() {
				pc = g.emitInstruction(&rom, ensure, pc, s, loc)
			}
		}

		if labelBumpsScope {
			g.scopeCounter++
		}
	}

	return rom
}

func isLocalLabel(name string) bool {
	return strings.HasPrefix(name, "@")
}

// evalMessageItems builds a .print/.error message: a quoted string item is
// copied verbatim (minus its quotes), anything else is evaluated as an
// expression and rendered as a decimal integer. Items are concatenated with
// no separator. ok is false if there are no items or any item failed to
// evaluate.
func evalMessageItems(g *Generator, items []string, pc int64, loc diag.Location) (string, bool) {
	var sb strings.Builder
	ok := len(items) > 0
	for _, item := range items {
		trimmed := trimSpaceQuotes(item)
		if len(trimmed) >= 2 && trimmed[0] == '"' && trimmed[len(trimmed)-1] == '"' {
			sb.WriteString(trimmed[1 : len(trimmed)-1])
			continue
		}
		v, err := expr.Eval(trimmed, g.env(pc))
		if err != nil {
			g.diag.Error(diag.KindSemantic, loc, "cannot evaluate message item: "+err.Error())
			ok = false
			continue
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	}
	return sb.String(), ok
}

func (g *Generator) emitInstruction(rom *[]byte, ensure func(int64, int), pc int64, s stmt, loc diag.Location) int64 {
	if s.mnemonic == "RST" {
		return g.emitRST(rom, ensure, pc, s, loc)
	}

	sh, ok := resolveShape(g.cpu, s.mnemonic, s.operands)
	if !ok {
		// already reported during Pass 1
		return pc
	}

	ensure(pc, len(sh.entry.Opcode))
	copy((*rom)[pc:], sh.entry.Opcode)
	pc += int64(len(sh.entry.Opcode))

	if sh.exprIndex < 0 {
		return pc
	}

	v, err := expr.Eval(s.operands[sh.exprIndex], g.env(pc))
	if err != nil {
		g.diag.Error(diag.KindSemantic, loc, "cannot evaluate operand: "+err.Error())
		return pc + int64(sh.entry.ImmSize)
	}

	switch sh.entry.ImmSize {
	case 1:
		if v < -128 || v > 255 {
			g.diag.Error(diag.KindRange, loc, "immediate value out of range for 8-bit operand")
		}
		ensure(pc, 1)
		(*rom)[pc] = byte(v)
		pc++
	case 2:
		if v < -32768 || v > 65535 {
			g.diag.Error(diag.KindRange, loc, "address/immediate value out of range for 16-bit operand")
		}
		ensure(pc, 2)
		(*rom)[pc] = byte(v)
		(*rom)[pc+1] = byte(v >> 8)
		pc += 2
	}
	return pc
}

func (g *Generator) emitRST(rom *[]byte, ensure func(int64, int), pc int64, s stmt, loc diag.Location) int64 {
	v, err := expr.Eval(s.operands[0], g.env(pc))
	if err != nil {
		g.diag.Error(diag.KindSemantic, loc, "cannot evaluate RST argument: "+err.Error())
		return pc + 1
	}
	if v < 0 || v > 7 {
		g.diag.Error(diag.KindRange, loc, "RST argument must be between 0 and 7")
		return pc + 1
	}
	opcode := byte(0xC7) | byte(v)<<3
	ensure(pc, 1)
	(*rom)[pc] = opcode
	return pc + 1
}
