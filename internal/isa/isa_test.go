package isa

import "testing"

func TestMovTable(t *testing.T) {
	e, ok := Lookup(CPU8080, "MOV B,C")
	if !ok {
		t.Fatal("MOV B,C not found")
	}
	if len(e.Opcode) != 1 || e.Opcode[0] != 0x41 {
		t.Fatalf("MOV B,C opcode = %X, want 0x41", e.Opcode)
	}
}

func TestMovMMRejected(t *testing.T) {
	if _, ok := Lookup(CPU8080, "MOV M,M"); ok {
		t.Fatal("MOV M,M must not be a valid table entry (collides with HLT)")
	}
}

func TestHltOpcode(t *testing.T) {
	e, ok := Lookup(CPU8080, "HLT")
	if !ok || e.Opcode[0] != 0x76 {
		t.Fatalf("HLT = %v, %v, want [0x76] true", e.Opcode, ok)
	}
}

func TestMviSizeAndImm(t *testing.T) {
	e, ok := Lookup(CPU8080, "MVI A,D8")
	if !ok {
		t.Fatal("MVI A,D8 not found")
	}
	if e.Size != 2 || e.ImmSize != 1 {
		t.Fatalf("MVI A,D8 size/imm = %d/%d, want 2/1", e.Size, e.ImmSize)
	}
}

func TestRstEncoding(t *testing.T) {
	cases := map[string]byte{
		"RST 0": 0xC7, "RST 1": 0xCF, "RST 7": 0xFF,
	}
	for key, want := range cases {
		e, ok := Lookup(CPU8080, key)
		if !ok {
			t.Fatalf("%s not found", key)
		}
		if e.Opcode[0] != want {
			t.Fatalf("%s opcode = %#x, want %#x", key, e.Opcode[0], want)
		}
	}
}

func TestConditionalJumpEncoding(t *testing.T) {
	e, ok := Lookup(CPU8080, "JNZ A16")
	if !ok || e.Opcode[0] != 0xC2 || e.Size != 3 || e.ImmSize != 2 {
		t.Fatalf("JNZ A16 = %+v, %v", e, ok)
	}
}

func TestZ80LDAliasesIntoMov(t *testing.T) {
	e, ok := Lookup(CPUZ80, "LD B,C")
	if !ok {
		t.Fatal("LD B,C not resolved under Z80")
	}
	want, _ := Lookup(CPU8080, "MOV B,C")
	if e.Opcode[0] != want.Opcode[0] {
		t.Fatalf("LD B,C opcode = %#x, want %#x (same as MOV B,C)", e.Opcode[0], want.Opcode[0])
	}
}

func TestZ80JPAliasesIntoJmp(t *testing.T) {
	e, ok := Lookup(CPUZ80, "JP A16")
	if !ok || e.Opcode[0] != 0xC3 {
		t.Fatalf("JP A16 under Z80 = %+v, %v, want JMP opcode 0xC3", e, ok)
	}
}

func TestZ80DirectForm(t *testing.T) {
	e, ok := Lookup(CPUZ80, "DJNZ A8")
	if !ok || e.Opcode[0] != 0x10 || e.Size != 2 {
		t.Fatalf("DJNZ A8 = %+v, %v", e, ok)
	}
	if _, ok := Lookup(CPU8080, "DJNZ A8"); ok {
		t.Fatal("DJNZ must not resolve under plain 8080")
	}
}

func TestPushPopPSW(t *testing.T) {
	e, ok := Lookup(CPU8080, "PUSH PSW")
	if !ok || e.Opcode[0] != 0xF5 {
		t.Fatalf("PUSH PSW = %+v, %v, want opcode 0xF5", e, ok)
	}
}
