package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezrec/hv1/emulator"
)

func newAsmCmd() (cmd *cobra.Command) {
	var output string
	var listing bool
	var verbose bool

	cmd = &cobra.Command{
		Use:   "asm sourceFile",
		Short: "Assemble a program into a program image",
		Long: `Asm assembles a source file into a program image of raw 32-bit
little-endian instruction words. The image is written next to the source,
with a .bin extension, unless an output file is given.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return
			}

			emu := emulator.NewEmulator()
			emu.Verbose = verbose
			err = emu.Assemble(string(source))
			if err != nil {
				return
			}

			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".bin"
			}

			err = emu.SaveRom(output)
			if err != nil {
				return
			}

			if listing {
				err = emu.Program.Listing(cmd.OutOrStdout())
			}

			return
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "Program image file")
	flags.BoolVarP(&listing, "listing", "l", false, "Print a listing")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")

	return
}
