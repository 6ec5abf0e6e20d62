package main

import "github.com/asmkit/asm8080/cmd/asm8080/cmd"

func main() {
	cmd.Execute()
}
