package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/eon-protocol/zkattest"
	"github.com/eon-protocol/zkattest/host"
)

func newCommand(stdout, stderr io.Writer) *cobra.Command {
	var system string
	cmd := &cobra.Command{
		Use:           "vkey",
		Short:         "Print the program verification key",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := zkattest.ParseBackend(system)
			if err != nil {
				return err
			}
			o, err := host.Bootstrap(stdout, stderr)
			if err != nil {
				return err
			}
			vk, err := o.VerifyingKey(cmd.Context(), b)
			if err != nil {
				return err
			}
			sel := vk.Selector()
			fmt.Fprintf(stdout, "Verification Key: %s\n", vk.Bytes32())
			fmt.Fprintf(stdout, "Verifier Selector: 0x%x\n", sel[:])
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.Flags().StringVar(&system, "system", zkattest.BackendGroth16.String(), "proof system: core, groth16 or plonk")
	return cmd
}

func main() {
	if err := newCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(zkattest.ExitCode(err))
	}
}
