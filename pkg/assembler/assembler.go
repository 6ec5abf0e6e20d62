// Package assembler is the public entry point to the compiler pipeline:
// preprocess -> macro collect/expand -> loop expand -> two-pass codegen
// -> debug map, composed the way runAssembleFile composes the
// teacher's preProcessIncludes / preProcessMacros / preProcessConditionals
// stages in cmd/cli/cmd/x86_64/assemble_file.go.
package assembler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/asmkit/asm8080/internal/codegen"
	"github.com/asmkit/asm8080/internal/debugwriter"
	"github.com/asmkit/asm8080/internal/diag"
	"github.com/asmkit/asm8080/internal/isa"
	"github.com/asmkit/asm8080/internal/loopexpand"
	"github.com/asmkit/asm8080/internal/macro"
	"github.com/asmkit/asm8080/internal/preprocess"
	"github.com/asmkit/asm8080/internal/symtab"
)

// Options carries the parameters spec.md marks optional, plus the CPU
// selector: an external collaborator's job (project-file loading) in the
// real system, represented here as a field the caller populates directly.
type Options struct {
	// SourcePath is the path used to resolve relative .include directives
	// and to label diagnostics. Empty means relative .include paths resolve
	// against the working directory and diagnostic locations carry an empty
	// file path.
	SourcePath string
	// DebugPathOverride, if set, is used instead of the derived
	// "<outPath-without-extension>.debug.json" by AssembleAndWrite.
	DebugPathOverride string
	// CPU selects the instruction set this source assembles against.
	CPU isa.CPU
}

// Result is everything one Assemble call produces.
type Result struct {
	ROM         []byte
	Debug       *debugwriter.Map
	Diagnostics *diag.Diagnostics
	// Prints holds every .print message in emission order.
	Prints []string
}

// Assemble runs the full pipeline over source text and returns the
// assembled ROM plus debug metadata, or an error built from the first
// recorded diagnostic if assembly failed. Diagnostics accumulated along
// the way (including warnings on an otherwise-successful assembly) are
// always returned on Result.Diagnostics.
func Assemble(source string, opts Options) (*Result, error) {
	d := diag.New(opts.SourcePath)

	lines := preprocess.Run(source, opts.SourcePath, d)

	d.SetPhase("macro")
	defs, stripped := macro.Collect(lines, d)
	expanded := macro.Expand(stripped, defs, d)

	d.SetPhase("loopexpand")
	expanded = loopexpand.Run(expanded, d)

	gen := codegen.New(opts.CPU, symtab.New(), d)
	res := gen.Generate(expanded)

	result := &Result{Diagnostics: d}
	if d.HasErrors() {
		return result, firstError(d)
	}

	result.ROM = res.ROM
	result.Debug = debugwriter.FromResult(&res)
	result.Prints = res.Prints
	return result, nil
}

// deriveDebugPath replaces outPath's final extension with ".debug.json",
// or appends that suffix when outPath has no extension.
func deriveDebugPath(outPath string) string {
	ext := filepath.Ext(outPath)
	if ext == "" {
		return outPath + ".debug.json"
	}
	return strings.TrimSuffix(outPath, ext) + ".debug.json"
}

// AssembleAndWrite runs Assemble and, on success, writes the ROM image to
// outPath and the debug map to outPath's debug path (or
// opts.DebugPathOverride). Every opened file handle is closed via defer
// on all return paths.
func AssembleAndWrite(source, outPath string, opts Options) (*Result, error) {
	result, err := Assemble(source, opts)
	if err != nil {
		return result, err
	}

	if err := writeFile(outPath, result.ROM); err != nil {
		return result, fmt.Errorf("writing ROM to %s: %w", outPath, err)
	}

	debugPath := opts.DebugPathOverride
	if debugPath == "" {
		debugPath = deriveDebugPath(outPath)
	}
	raw, err := json.MarshalIndent(result.Debug, "", "  ")
	if err != nil {
		return result, fmt.Errorf("encoding debug map: %w", err)
	}
	if err := writeFile(debugPath, raw); err != nil {
		return result, fmt.Errorf("writing debug map to %s: %w", debugPath, err)
	}

	return result, nil
}

func writeFile(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(data)
	return err
}

func firstError(d *diag.Diagnostics) error {
	errs := d.Errors()
	if len(errs) == 0 {
		return fmt.Errorf("assembly failed")
	}
	var b strings.Builder
	b.WriteString(diag.Format(errs[0]))
	if len(errs) > 1 {
		fmt.Fprintf(&b, "\n(and %d more error(s))", len(errs)-1)
	}
	return fmt.Errorf("%s", b.String())
}
