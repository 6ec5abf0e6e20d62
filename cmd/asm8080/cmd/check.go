package cmd

import (
	"fmt"
	"os"

	"github.com/asmkit/asm8080/internal/diag"
	"github.com/asmkit/asm8080/pkg/assembler"
	"github.com/spf13/cobra"
)

var checkCPU string

var checkCmd = &cobra.Command{
	Use:     "check <source-file>",
	GroupID: "assembly",
	Short:   "Assemble a source file without writing any output, reporting diagnostics only",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd, args[0])
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkCPU, "cpu", "8080", `target instruction set: "8080" or "z80"`)
}

func runCheck(cmd *cobra.Command, sourcePath string) error {
	cpu, err := parseCPU(checkCPU)
	if err != nil {
		return err
	}

	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", sourcePath, err)
	}

	result, err := assembler.Assemble(string(source), assembler.Options{SourcePath: sourcePath, CPU: cpu})
	if err != nil {
		printDiagnostics(cmd, result)
		return err
	}

	for _, w := range result.Diagnostics.Warnings() {
		cmd.PrintErrln(diag.Format(w))
	}
	cmd.Printf("%s: OK (%d byte(s))\n", sourcePath, len(result.ROM))
	return nil
}
