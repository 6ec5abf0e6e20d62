package cmd

import (
	"fmt"
	"strings"

	"github.com/asmkit/asm8080/internal/isa"
)

func parseCPU(s string) (isa.CPU, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "8080":
		return isa.CPU8080, nil
	case "z80":
		return isa.CPUZ80, nil
	default:
		return isa.CPU8080, fmt.Errorf("unknown --cpu %q (want \"8080\" or \"z80\")", s)
	}
}
