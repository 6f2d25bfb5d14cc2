package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	kzgbls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	kzgbn254 "github.com/consensys/gnark-crypto/ecc/bn254/kzg"
	"github.com/spf13/cobra"

	"github.com/eon-protocol/zkattest"
)

type srs interface {
	io.WriterTo
	io.ReaderFrom
}

func parseCurve(s string) (ecc.ID, srs, error) {
	switch s {
	case "bn254":
		return ecc.BN254, new(kzgbn254.SRS), nil
	case "bls12-381", "bls12_381":
		return ecc.BLS12_381, new(kzgbls12381.SRS), nil
	}
	return ecc.UNKNOWN, nil, zkattest.ConfigurationErrorf("unsupported curve: %s", s)
}

// generate builds an insecure SRS of the given size from a known tau.
func generate(curve ecc.ID, size uint64, tau *big.Int) (srs, error) {
	switch curve {
	case ecc.BN254:
		return kzgbn254.NewSRS(size, tau)
	case ecc.BLS12_381:
		return kzgbls12381.NewSRS(size, tau)
	}
	return nil, fmt.Errorf("unsupported curve %s", curve)
}

// lagrangeDigests hashes the Lagrange form of every power-of-two prefix of
// the canonical G1 points.
func lagrangeDigests(s srs, emit func(i int, sum []byte)) error {
	switch s := s.(type) {
	case *kzgbn254.SRS:
		for i := 0; (1 << i) <= len(s.Pk.G1); i++ {
			lk, err := kzgbn254.ToLagrangeG1(s.Pk.G1[:1<<i])
			if err != nil {
				return err
			}
			h := sha256.New()
			for _, p := range lk {
				x, y := p.X.Bytes(), p.Y.Bytes()
				h.Write(x[:])
				h.Write(y[:])
			}
			emit(i, h.Sum(nil))
		}
	case *kzgbls12381.SRS:
		for i := 0; (1 << i) <= len(s.Pk.G1); i++ {
			lk, err := kzgbls12381.ToLagrangeG1(s.Pk.G1[:1<<i])
			if err != nil {
				return err
			}
			h := sha256.New()
			for _, p := range lk {
				x, y := p.X.Bytes(), p.Y.Bytes()
				h.Write(x[:])
				h.Write(y[:])
			}
			emit(i, h.Sum(nil))
		}
	}
	return nil
}

func newCommand(stdin io.Reader, stdout io.Writer) *cobra.Command {
	var curveName, dir string
	var size uint64
	var tau int64
	var lagrange bool
	cmd := &cobra.Command{
		Use:           "srs_sha256 [file]",
		Short:         "Print the sha256 of a KZG SRS file, or generate a development SRS",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			curve, s, err := parseCurve(curveName)
			if err != nil {
				return err
			}
			var raw []byte
			if size > 0 {
				if s, err = generate(curve, size, big.NewInt(tau)); err != nil {
					return err
				}
				var buf bytes.Buffer
				if _, err := s.WriteTo(&buf); err != nil {
					return zkattest.SerializationError("encode srs", err)
				}
				raw = buf.Bytes()
				path := filepath.Join(dir, zkattest.SRS_FILES[curve])
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return zkattest.IOError("write srs", err)
				}
				if err := os.WriteFile(path, raw, 0o644); err != nil {
					return zkattest.IOError("write srs", err)
				}
				fmt.Fprintf(stdout, "wrote %s\n", path)
			} else {
				r := stdin
				if len(args) == 1 {
					f, err := os.Open(args[0])
					if err != nil {
						return zkattest.IOError("open srs", err)
					}
					defer f.Close()
					r = f
				}
				if raw, err = io.ReadAll(r); err != nil {
					return zkattest.IOError("read srs", err)
				}
				if _, err := s.ReadFrom(bytes.NewReader(raw)); err != nil {
					return zkattest.SerializationError("decode srs", err)
				}
			}
			sum := sha256.Sum256(raw)
			fmt.Fprintf(stdout, "sha256(SRS) = %s\n", hex.EncodeToString(sum[:]))
			if !lagrange {
				return nil
			}
			return lagrangeDigests(s, func(i int, sum []byte) {
				fmt.Fprintf(stdout, "sha256(SRS.LK[%d]) = %s\n", i, hex.EncodeToString(sum))
			})
		},
	}
	cmd.SetOut(stdout)
	cmd.Flags().StringVar(&curveName, "curve", "bn254", "curve: bn254 or bls12-381")
	cmd.Flags().Uint64Var(&size, "generate", 0, "generate an insecure SRS with this many G1 points")
	cmd.Flags().Int64Var(&tau, "tau", 42, "toxic waste used with --generate")
	cmd.Flags().StringVar(&dir, "dir", ".", "output directory used with --generate")
	cmd.Flags().BoolVar(&lagrange, "lagrange", false, "also print digests of the Lagrange form per power of two")
	return cmd
}

func main() {
	if err := newCommand(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(zkattest.ExitCode(err))
	}
}
