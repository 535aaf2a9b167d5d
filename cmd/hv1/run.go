package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/hv1/emulator"
	"github.com/ezrec/hv1/io"
)

func newRunCmd() (cmd *cobra.Command) {
	var binary bool
	var verbose bool
	var keyboard bool
	var spin int
	var input string

	cmd = &cobra.Command{
		Use:   "run [file]",
		Short: "Assemble and run a program, or the built-in demo",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			emu := emulator.NewEmulator()
			emu.Verbose = verbose
			emu.CycleSpin = spin

			switch {
			case len(args) == 0:
				err = emu.Assemble(demo)
			case binary:
				err = emu.LoadRom(args[0])
			default:
				var source []byte
				source, err = os.ReadFile(args[0])
				if err == nil {
					err = emu.Assemble(string(source))
				}
			}
			if err != nil {
				return
			}

			emu.Console.Input = cmd.InOrStdin()
			emu.Console.Output = cmd.OutOrStdout()
			if input != "" && input != "-" {
				var inf *os.File
				inf, err = os.Open(input)
				if err != nil {
					return
				}
				defer inf.Close()
				emu.Console.Input = inf
			}
			if keyboard {
				emu.Console.Keys = &io.Keyboard{}
			}

			err = emu.Reset()
			if err != nil {
				return
			}

			return emu.Run()
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&binary, "binary", "b", false, "File is an assembled program image")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")
	flags.BoolVarP(&keyboard, "keyboard", "k", false, "Read keypresses from the terminal")
	flags.IntVar(&spin, "spin", 0, "Busy-loop iterations per instruction cycle")
	flags.StringVarP(&input, "input", "i", "-", "Console input file")

	return
}
