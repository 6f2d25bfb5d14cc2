package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/eon-protocol/zkattest"
	"github.com/eon-protocol/zkattest/attestation"
	"github.com/eon-protocol/zkattest/fixtures"
)

func newCommand(stdout io.Writer) *cobra.Command {
	var out, seed string
	var lengths []int
	cmd := &cobra.Command{
		Use:           "generate_datasets",
		Short:         "Write the attestor key and signed benchmark datasets",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var sizes []fixtures.Size
			for _, n := range lengths {
				s, err := fixtures.ParseSize(n)
				if err != nil {
					return err
				}
				sizes = append(sizes, s)
			}
			signer, err := attestation.NewSigner(seed)
			if err != nil {
				return zkattest.ConfigurationErrorf("invalid seed: %v", err)
			}
			if err := fixtures.WriteDatasets(out, signer, sizes...); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Attestor: %s\n", signer.Address())
			fmt.Fprintf(stdout, "Verifying Key: %s\n", signer.VerifyingKey())
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.Flags().StringVar(&out, "out", fixtures.DEFAULT_ROOT, "fixture root directory")
	cmd.Flags().StringVar(&seed, "seed", fixtures.DEFAULT_SEED, "attestor key seed")
	cmd.Flags().IntSliceVar(&lengths, "zktls-length", nil, "dataset sizes to write (default all)")
	return cmd
}

func main() {
	if err := newCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(zkattest.ExitCode(err))
	}
}
