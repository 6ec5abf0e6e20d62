package cmd

import (
	"fmt"
	"os"

	"github.com/asmkit/asm8080/internal/diag"
	"github.com/asmkit/asm8080/pkg/assembler"
	"github.com/spf13/cobra"
)

var (
	buildOutPath   string
	buildDebugPath string
	buildCPU       string
)

var buildCmd = &cobra.Command{
	Use:     "build <source-file>",
	GroupID: "assembly",
	Short:   "Assemble a source file into a ROM image and debug map",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(cmd, args[0])
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutPath, "out", "o", "", "output ROM path (default: <source-file>.rom)")
	buildCmd.Flags().StringVar(&buildDebugPath, "debug", "", "debug map output path (default: <out-without-ext>.debug.json)")
	buildCmd.Flags().StringVar(&buildCPU, "cpu", "8080", `target instruction set: "8080" or "z80"`)
}

func runBuild(cmd *cobra.Command, sourcePath string) error {
	cpu, err := parseCPU(buildCPU)
	if err != nil {
		return err
	}

	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", sourcePath, err)
	}

	outPath := buildOutPath
	if outPath == "" {
		outPath = sourcePath + ".rom"
	}

	result, err := assembler.AssembleAndWrite(string(source), outPath, assembler.Options{
		SourcePath:        sourcePath,
		DebugPathOverride: buildDebugPath,
		CPU:               cpu,
	})
	if err != nil {
		printDiagnostics(cmd, result)
		return err
	}

	cmd.Printf("wrote %d byte(s) to %s\n", len(result.ROM), outPath)
	return nil
}

func printDiagnostics(cmd *cobra.Command, result *assembler.Result) {
	if result == nil || result.Diagnostics == nil {
		return
	}
	for _, e := range result.Diagnostics.Errors() {
		cmd.PrintErrln(diag.Format(e))
	}
}
