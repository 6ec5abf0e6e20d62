// Package cmd holds the asm8080 Cobra command tree, structured the way
// the teacher's cmd/cli/cmd/root.go + cmd/cli/cmd/x86_64.go group a root
// command around one command-group per concern.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "asm8080",
	Short: "i8080/Z80-subset assembler",
	Long:  `asm8080 assembles Intel 8080 and Z80-subset source into a flat ROM image plus a JSON debug map.`,
}

// Execute runs the root command, exiting non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(&cobra.Group{
		ID:    "assembly",
		Title: "Assembly",
	})

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(checkCmd)
}
