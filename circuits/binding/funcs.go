package binding

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"

	"github.com/eon-protocol/zkattest/circuits/hasher"
)

// Seal computes off-circuit what Define computes in-circuit.
func Seal(curve ecc.ID, words ...[32]byte) (*big.Int, error) {
	switch curve {
	case ecc.BLS12_381:
		return hasher.SumBytes(words...)
	case ecc.BN254:
		h := mimc.NewMiMC()
		for _, w := range words {
			var e fr.Element
			e.SetBytes(w[:])
			b := e.Bytes()
			if _, err := h.Write(b[:]); err != nil {
				return nil, err
			}
		}
		return new(big.Int).SetBytes(h.Sum(nil)), nil
	}
	return nil, fmt.Errorf("binding: unsupported curve %s", curve)
}
