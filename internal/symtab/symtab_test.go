package symtab

import "testing"

func TestConstDefineAndRedefine(t *testing.T) {
	tbl := New()
	if err := tbl.DefineConst("WIDTH", 40); err != nil {
		t.Fatalf("DefineConst: %v", err)
	}
	if err := tbl.DefineConst("WIDTH", 80); err == nil {
		t.Fatal("expected an error redefining a constant")
	}
	v, ok := tbl.Resolve("", "WIDTH")
	if !ok || v != 40 {
		t.Fatalf("Resolve(WIDTH) = %d, %v, want 40, true", v, ok)
	}
}

func TestVarReassignment(t *testing.T) {
	tbl := New()
	tbl.SetVar("COUNT", 1)
	tbl.SetVar("COUNT", 2)
	v, ok := tbl.Var("COUNT")
	if !ok || v != 2 {
		t.Fatalf("Var(COUNT) = %d, %v, want 2, true", v, ok)
	}
}

func TestLabelDuplicate(t *testing.T) {
	tbl := New()
	if err := tbl.DefineLabel("START", 0x100); err != nil {
		t.Fatalf("DefineLabel: %v", err)
	}
	if err := tbl.DefineLabel("START", 0x200); err == nil {
		t.Fatal("expected an error redefining a label")
	}
}

func TestLocalLabelScoping(t *testing.T) {
	tbl := New()
	scopeA := ScopeKey("main.asm", 1, "")
	scopeB := ScopeKey("main.asm", 2, "")

	if err := tbl.DefineLocal(scopeA, "@loop", 0x10); err != nil {
		t.Fatalf("DefineLocal: %v", err)
	}
	if err := tbl.DefineLocal(scopeB, "@loop", 0x20); err != nil {
		t.Fatalf("DefineLocal in a different scope should not collide: %v", err)
	}

	if v, ok := tbl.Resolve(scopeA, "@loop"); !ok || v != 0x10 {
		t.Fatalf("Resolve(scopeA, @loop) = %d, %v, want 0x10, true", v, ok)
	}
	if v, ok := tbl.Resolve(scopeB, "@loop"); !ok || v != 0x20 {
		t.Fatalf("Resolve(scopeB, @loop) = %d, %v, want 0x20, true", v, ok)
	}
}

func TestConstAndLabelNamespaceCollision(t *testing.T) {
	tbl := New()
	if err := tbl.DefineConst("FOO", 1); err != nil {
		t.Fatalf("DefineConst: %v", err)
	}
	if err := tbl.DefineLabel("FOO", 2); err == nil {
		t.Fatal("expected an error defining a label with the same name as a constant")
	}
}
