// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	_ "embed"
	"log"

	"github.com/spf13/cobra"
)

//go:embed demo.hv1
var demo string

func newRootCmd() (root *cobra.Command) {
	root = &cobra.Command{
		Use:   "hv1",
		Short: "The HV1 virtual machine assembler and emulator",
		Long: `Hv1 assembles and runs programs for the HV1 virtual machine, a
16-bit accumulator machine with a separate program store, a call stack
and an operand stack.

With no arguments, the run command assembles and runs a built-in demo
that prints the Fibonacci sequence.
`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newRunCmd(), newAsmCmd(), newDisCmd())

	return
}

func main() {
	log.SetFlags(0)

	err := newRootCmd().Execute()
	if err != nil {
		log.Fatalf("hv1: %v", err)
	}
}
