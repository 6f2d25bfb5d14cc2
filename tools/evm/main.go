package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/eon-protocol/zkattest"
	"github.com/eon-protocol/zkattest/fixtures"
	"github.com/eon-protocol/zkattest/host"
)

func newCommand(stdout, stderr io.Writer) *cobra.Command {
	var system string
	var length int
	var exportVerifier bool
	cmd := &cobra.Command{
		Use:           "evm",
		Short:         "Generate an on-chain proof fixture for the zkTLS attestation program",
		Long:          "Generate an on-chain proof fixture for the zkTLS attestation program.\n\n" + host.DATASETS_HELP,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := zkattest.ParseBackend(system)
			if err != nil {
				return err
			}
			size, err := fixtures.ParseSize(length)
			if err != nil {
				return err
			}
			o, err := host.Bootstrap(stdout, stderr)
			if err != nil {
				return err
			}
			_, err = o.GenerateFixture(cmd.Context(), host.FixtureRequest{
				Backend:        b,
				Size:           size,
				ExportVerifier: exportVerifier,
			})
			return err
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.Flags().StringVar(&system, "system", zkattest.BackendGroth16.String(), "proof system: groth16 or plonk")
	cmd.Flags().IntVar(&length, "zktls-length", int(fixtures.DEFAULT_SIZE), "dataset size: 16, 256, 1024 or 2048")
	cmd.Flags().BoolVar(&exportVerifier, "export-verifier", false, "also write the Solidity verifier contract")
	return cmd
}

func main() {
	if err := newCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(zkattest.ExitCode(err))
	}
}
