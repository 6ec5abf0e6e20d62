package origin

import "testing"

func TestFileLineRoot(t *testing.T) {
	o := FileLine("main.asm", 7)
	file, line := o.Root()
	if file != "main.asm" || line != 7 {
		t.Fatalf("Root() = %q:%d, want main.asm:7", file, line)
	}
	if o.Depth() != 0 {
		t.Fatalf("Depth() = %d, want 0", o.Depth())
	}
}

func TestMacroInstanceChain(t *testing.T) {
	caller := FileLine("main.asm", 10)
	inst := MacroInstance("DELAY", 2, caller, 3)

	file, line := inst.Root()
	if file != "main.asm" || line != 10 {
		t.Fatalf("Root() = %q:%d, want main.asm:10", file, line)
	}
	if inst.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", inst.Depth())
	}
	want := "macro DELAY#2 body:3 <- main.asm:10"
	if got := inst.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestNestedMacroDepth(t *testing.T) {
	outer := MacroInstance("OUTER", 1, FileLine("main.asm", 1), 1)
	inner := MacroInstance("INNER", 1, outer, 2)

	if inner.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", inner.Depth())
	}
	file, line := inner.Root()
	if file != "main.asm" || line != 1 {
		t.Fatalf("Root() = %q:%d, want main.asm:1", file, line)
	}
}

func TestLoopInstance(t *testing.T) {
	caller := FileLine("main.asm", 5)
	l := LoopInstance(4, caller, 1)
	if l.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", l.Depth())
	}
	want := "loop#4 body:1 <- main.asm:5"
	if got := l.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
