package main

import (
	"github.com/spf13/cobra"

	"github.com/ezrec/hv1/emulator"
)

func newDisCmd() (cmd *cobra.Command) {
	cmd = &cobra.Command{
		Use:   "dis imageFile",
		Short: "Disassemble a program image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			emu := emulator.NewEmulator()
			err = emu.LoadRom(args[0])
			if err != nil {
				return
			}

			return emu.Program.Listing(cmd.OutOrStdout())
		},
	}

	return
}
