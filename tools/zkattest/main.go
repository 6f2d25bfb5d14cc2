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
	var execute, prove bool
	var length int
	cmd := &cobra.Command{
		Use:           "zkattest",
		Short:         "Execute or prove the zkTLS attestation program",
		Long:          "Execute or prove the zkTLS attestation program.\n\n" + host.DATASETS_HELP,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := host.ParseMode(execute, prove)
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
			_, err = o.Run(cmd.Context(), host.RunRequest{Mode: mode, Size: size})
			return err
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.Flags().BoolVar(&execute, "execute", false, "execute the program without generating a proof")
	cmd.Flags().BoolVar(&prove, "prove", false, "generate and verify a proof")
	cmd.Flags().IntVar(&length, "zktls-length", int(fixtures.DEFAULT_SIZE), "dataset size: 16, 256, 1024 or 2048")
	return cmd
}

func main() {
	if err := newCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(zkattest.ExitCode(err))
	}
}
