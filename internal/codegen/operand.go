package codegen

import (
	"strings"

	"github.com/asmkit/asm8080/internal/isa"
)

// literalOperands is the set of operand tokens the isa table keys on
// verbatim rather than as a placeholder for an evaluated expression:
// the eight registers and the four register-pair/PSW names. Condition
// codes never appear as a separate operand — they're folded into the
// mnemonic itself (JNZ, CNZ, RNZ, ...).
var literalOperands = map[string]bool{
	"A": true, "B": true, "C": true, "D": true, "E": true, "H": true, "L": true, "M": true,
	"SP": true, "PSW": true,
}

// immCandidates lists the placeholder shapes tried, in order, for the
// single expression-valued operand a shape may carry. Every mnemonic in
// the table has at most one such operand, so trying candidates in turn
// until isa.Lookup succeeds is unambiguous.
var immCandidates = []string{"D16", "A16", "D8", "A8"}

// shape is the resolved operand classification for one instruction line:
// which isa.Entry it encodes to, and — if the instruction carries an
// expression operand — its index among operands and the placeholder
// shape it resolved against (so Pass 2 knows how many bytes to encode
// and in what order).
type shape struct {
	entry     isa.Entry
	exprIndex int // -1 if no expression operand
	exprShape string
}

// resolveShape classifies mnemonic+operands against the isa table for
// the given CPU. RST is handled by the caller as a special case since
// its operand is a literal 0-7 digit embedded directly in the key, not
// a placeholder shape.
func resolveShape(cpu isa.CPU, mnemonic string, operands []string) (shape, bool) {
	upper := make([]string, len(operands))
	exprIndex := -1
	for i, op := range operands {
		t := strings.ToUpper(strings.TrimSpace(op))
		if literalOperands[t] {
			upper[i] = t
		} else {
			if exprIndex == -1 {
				exprIndex = i
			}
			upper[i] = "" // filled in per-candidate below
		}
	}

	if exprIndex == -1 {
		key := buildKey(mnemonic, upper)
		e, ok := isa.Lookup(cpu, key)
		return shape{entry: e, exprIndex: -1}, ok
	}

	for _, cand := range immCandidates {
		trial := append([]string(nil), upper...)
		trial[exprIndex] = cand
		key := buildKey(mnemonic, trial)
		if e, ok := isa.Lookup(cpu, key); ok {
			return shape{entry: e, exprIndex: exprIndex, exprShape: cand}, true
		}
	}
	return shape{}, false
}

func buildKey(mnemonic string, operands []string) string {
	if len(operands) == 0 {
		return mnemonic
	}
	return mnemonic + " " + strings.Join(operands, ",")
}
