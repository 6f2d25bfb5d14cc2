package binding

import (
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"
)

func digest(s string) [32]byte {
	d := sha256.Sum256([]byte(s))
	d[0] &= 0x1f
	return d
}

func statement() *Statement {
	return &Statement{
		VkeyHash:              digest("program"),
		CommittedValuesDigest: digest("public values"),
		ExecutionDigest:       digest("trace"),
	}
}

func TestBinding_ValidAndTampered(t *testing.T) {
	for _, curve := range []ecc.ID{ecc.BN254, ecc.BLS12_381} {
		t.Run(curve.String(), func(t *testing.T) {
			assert := test.NewAssert(t)
			st := statement()

			good, err := st.Assignment(curve)
			require.NoError(t, err)

			wrongSeal, err := st.Assignment(curve)
			require.NoError(t, err)
			wrongSeal.Seal = new(big.Int).Add(wrongSeal.Seal.(*big.Int), big.NewInt(1))

			other := *st
			other.VkeyHash = digest("another program")
			wrongProgram, err := other.Assignment(curve)
			require.NoError(t, err)

			assert.CheckCircuit(New(curve, st.VkeyHash),
				test.WithValidAssignment(good),
				test.WithInvalidAssignment(wrongSeal),
				test.WithInvalidAssignment(wrongProgram),
				test.WithCurves(curve),
				test.WithBackends(backend.GROTH16, backend.PLONK),
			)
		})
	}
}

func TestSeal_DependsOnEveryWord(t *testing.T) {
	st := statement()
	for _, curve := range []ecc.ID{ecc.BN254, ecc.BLS12_381} {
		base, err := Seal(curve, st.VkeyHash, st.CommittedValuesDigest, st.ExecutionDigest)
		require.NoError(t, err)

		swapped, err := Seal(curve, st.VkeyHash, st.ExecutionDigest, st.CommittedValuesDigest)
		require.NoError(t, err)
		require.NotZero(t, base.Cmp(swapped), curve.String())
	}
}

func TestSeal_UnsupportedCurve(t *testing.T) {
	_, err := Seal(ecc.BW6_761, digest("x"))
	require.Error(t, err)
}

func TestBinding_ExecutionDigestUnconstrained(t *testing.T) {
	assert := test.NewAssert(t)
	st := statement()
	st.ExecutionDigest = digest("never executed")
	arbitrary, err := st.Assignment(ecc.BN254)
	require.NoError(t, err)

	assert.CheckCircuit(New(ecc.BN254, st.VkeyHash),
		test.WithValidAssignment(arbitrary),
		test.WithCurves(ecc.BN254),
		test.WithBackends(backend.GROTH16),
	)
}
