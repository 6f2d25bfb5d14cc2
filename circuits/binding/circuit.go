// Package binding defines the statement every zkattest proof carries: the
// program identity and the committed public values.
//
// Public inputs are (VkeyHash, CommittedValuesDigest). The only constraint with
// teeth is VkeyHash == program digest, a circuit constant, so keys derived for
// one program never verify another. ExecutionDigest and Seal are free
// witnesses: nothing here re-executes the guest, so a holder of the proving key
// can prove any public values under the program vkey. Those values are as
// trustworthy as whoever ran the prover.
package binding

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"

	"github.com/eon-protocol/zkattest/circuits/hasher"
)

type Circuit struct {
	VkeyHash              frontend.Variable `gnark:",public"`
	CommittedValuesDigest frontend.Variable `gnark:",public"`
	ExecutionDigest       frontend.Variable
	Seal                  frontend.Variable

	Program *big.Int `gnark:"-"`
	Curve   ecc.ID   `gnark:"-"`
}

// New returns the placeholder circuit used for compilation.
func New(curve ecc.ID, program [32]byte) *Circuit {
	return &Circuit{Program: new(big.Int).SetBytes(program[:]), Curve: curve}
}

func (me *Circuit) Define(api frontend.API) error {
	api.AssertIsEqual(me.VkeyHash, me.Program)
	seal, err := sum(api, me.Curve, me.VkeyHash, me.CommittedValuesDigest, me.ExecutionDigest)
	if err != nil {
		return err
	}
	api.AssertIsEqual(seal, me.Seal)
	return nil
}

func sum(api frontend.API, curve ecc.ID, vals ...frontend.Variable) (frontend.Variable, error) {
	switch curve {
	case ecc.BLS12_381:
		return hasher.New(api).Sum(vals...), nil
	case ecc.BN254:
		h, err := mimc.NewMiMC(api)
		if err != nil {
			return nil, err
		}
		h.Write(vals...)
		return h.Sum(), nil
	}
	return nil, fmt.Errorf("binding: unsupported curve %s", curve)
}

// Statement is the native view of one binding instance.
type Statement struct {
	VkeyHash              [32]byte
	CommittedValuesDigest [32]byte
	ExecutionDigest       [32]byte
}

// Assignment returns the full witness for st, computing the seal natively.
func (st *Statement) Assignment(curve ecc.ID) (*Circuit, error) {
	seal, err := Seal(curve, st.VkeyHash, st.CommittedValuesDigest, st.ExecutionDigest)
	if err != nil {
		return nil, err
	}
	return &Circuit{
		VkeyHash:              new(big.Int).SetBytes(st.VkeyHash[:]),
		CommittedValuesDigest: new(big.Int).SetBytes(st.CommittedValuesDigest[:]),
		ExecutionDigest:       new(big.Int).SetBytes(st.ExecutionDigest[:]),
		Seal:                  seal,
	}, nil
}

// Public returns the public-only assignment used by verifiers.
func (st *Statement) Public() *Circuit {
	return &Circuit{
		VkeyHash:              new(big.Int).SetBytes(st.VkeyHash[:]),
		CommittedValuesDigest: new(big.Int).SetBytes(st.CommittedValuesDigest[:]),
	}
}
