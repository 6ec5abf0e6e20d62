package macro

import (
	"testing"

	"github.com/asmkit/asm8080/internal/diag"
	"github.com/asmkit/asm8080/internal/origin"
	"github.com/asmkit/asm8080/internal/preprocess"
)

func mkLines(texts ...string) []preprocess.Line {
	out := make([]preprocess.Line, len(texts))
	for i, t := range texts {
		out[i] = preprocess.Line{Text: t, Origin: origin.FileLine("main.asm", i+1)}
	}
	return out
}

func textsOf(lines []preprocess.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestCollectSimpleMacro(t *testing.T) {
	lines := mkLines(
		".macro PUSH_ALL()",
		"PUSH B",
		"PUSH D",
		".endmacro",
		"NOP",
	)
	d := diag.New("main.asm")
	defs, remaining := Collect(lines, d)

	if d.HasErrors() {
		t.Fatalf("unexpected errors: %v", d.Errors())
	}
	if _, ok := defs["PUSH_ALL"]; !ok {
		t.Fatal("expected PUSH_ALL to be collected")
	}
	if len(remaining) != 1 || remaining[0].Text != "NOP" {
		t.Fatalf("remaining = %v, want [NOP]", textsOf(remaining))
	}
}

func TestCollectUnterminatedMacro(t *testing.T) {
	lines := mkLines(".macro FOO()", "NOP")
	d := diag.New("main.asm")
	_, _ = Collect(lines, d)
	if !d.HasErrors() {
		t.Fatal("expected an unterminated-macro error")
	}
}

func TestExpandWithParamsAndDefault(t *testing.T) {
	lines := mkLines(
		".macro DELAY(count, reg=B)",
		"MVI {reg}, {count}",
		"DCR {reg}",
		".endmacro",
		"DELAY(10)",
	)
	d := diag.New("main.asm")
	defs, remaining := Collect(lines, d)
	expanded := Expand(remaining, defs, d)

	if d.HasErrors() {
		t.Fatalf("unexpected errors: %v", d.Errors())
	}
	want := []string{"MVI B, 10", "DCR B"}
	got := textsOf(expanded)
	if len(got) != len(want) {
		t.Fatalf("expanded = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expanded[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if expanded[0].Origin.Kind != origin.KindMacro || expanded[0].Origin.MacroName != "DELAY" {
		t.Fatalf("expanded[0].Origin = %+v, want KindMacro DELAY", expanded[0].Origin)
	}
}

func TestExpandRewritesLocalLabelsPerInvocation(t *testing.T) {
	lines := mkLines(
		".macro WAIT()",
		"loop:",
		"DCR B",
		"JNZ loop",
		".endmacro",
		"WAIT()",
		"WAIT()",
	)
	d := diag.New("main.asm")
	defs, remaining := Collect(lines, d)
	expanded := Expand(remaining, defs, d)

	if d.HasErrors() {
		t.Fatalf("unexpected errors: %v", d.Errors())
	}
	got := textsOf(expanded)
	want := []string{
		"loop_WAIT1:", "DCR B", "JNZ loop_WAIT1",
		"loop_WAIT2:", "DCR B", "JNZ loop_WAIT2",
	}
	if len(got) != len(want) {
		t.Fatalf("expanded = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expanded[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExpandMissingRequiredArgument(t *testing.T) {
	lines := mkLines(
		".macro FOO(a)",
		"MVI A, {a}",
		".endmacro",
		"FOO()",
	)
	d := diag.New("main.asm")
	defs, remaining := Collect(lines, d)
	Expand(remaining, defs, d)

	if !d.HasErrors() {
		t.Fatal("expected a missing-argument error")
	}
}

func TestExpandNestedMacroCalls(t *testing.T) {
	lines := mkLines(
		".macro INNER()",
		"NOP",
		".endmacro",
		".macro OUTER()",
		"INNER()",
		"INNER()",
		".endmacro",
		"OUTER()",
	)
	d := diag.New("main.asm")
	defs, remaining := Collect(lines, d)
	expanded := Expand(remaining, defs, d)

	if d.HasErrors() {
		t.Fatalf("unexpected errors: %v", d.Errors())
	}
	got := textsOf(expanded)
	if len(got) != 2 || got[0] != "NOP" || got[1] != "NOP" {
		t.Fatalf("expanded = %v, want [NOP NOP]", got)
	}
}
