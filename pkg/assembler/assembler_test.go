package assembler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/asmkit/asm8080/internal/isa"
)

func TestAssembleSimpleProgram(t *testing.T) {
	source := "start:\n  MVI A,5\n  MOV B,A\n  HLT\n"
	result, err := Assemble(source, Options{SourcePath: "prog.asm", CPU: isa.CPU8080})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	want := []byte{0x3E, 5, 0x47, 0x76}
	if string(result.ROM) != string(want) {
		t.Fatalf("ROM = % X, want % X", result.ROM, want)
	}
	if len(result.Debug.Labels) != 1 || result.Debug.Labels[0].Name != "start" {
		t.Fatalf("debug labels = %+v", result.Debug.Labels)
	}
}

func TestAssembleReportsFormattedError(t *testing.T) {
	source := "JMP missing\n"
	_, err := Assemble(source, Options{SourcePath: "prog.asm", CPU: isa.CPU8080})
	if err == nil {
		t.Fatal("expected an error for an unresolved symbol")
	}
}

func TestAssembleWithIncludeAndMacro(t *testing.T) {
	dir := t.TempDir()
	incPath := filepath.Join(dir, "delay.inc")
	if err := os.WriteFile(incPath, []byte(".macro WAIT()\n  NOP\n.endmacro\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	mainPath := filepath.Join(dir, "main.asm")
	source := ".include \"delay.inc\"\nWAIT()\nHLT\n"

	result, err := Assemble(source, Options{SourcePath: mainPath, CPU: isa.CPU8080})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	want := []byte{0x00, 0x76}
	if string(result.ROM) != string(want) {
		t.Fatalf("ROM = % X, want % X", result.ROM, want)
	}
}

func TestAssembleAndWriteProducesRomAndDebugFile(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.rom")
	source := "HLT\n"

	result, err := AssembleAndWrite(source, outPath, Options{SourcePath: "prog.asm", CPU: isa.CPU8080})
	if err != nil {
		t.Fatalf("AssembleAndWrite: %v", err)
	}
	romBytes, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading ROM file: %v", err)
	}
	if string(romBytes) != string(result.ROM) {
		t.Fatalf("written ROM = % X, want % X", romBytes, result.ROM)
	}
	debugPath := filepath.Join(dir, "out.debug.json")
	if _, err := os.Stat(debugPath); err != nil {
		t.Fatalf("expected a debug JSON file alongside the ROM: %v", err)
	}
}
