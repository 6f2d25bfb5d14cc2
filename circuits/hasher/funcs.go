// native (off-circuit) Poseidon2 helpers
package hasher

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Compress returns perm([x,y])[1] + y, the same value the circuit computes.
func Compress(x, y fr.Element) (fr.Element, error) {
	vars := [WIDTH]fr.Element{x, y}
	if err := GetPermutation().Permutation(vars[:]); err != nil {
		return fr.Element{}, err
	}
	var ret fr.Element
	ret.Add(&vars[1], &y)
	return ret, nil
}

// Sum folds val with Compress starting from zero.
func Sum(val ...fr.Element) (fr.Element, error) {
	var acc fr.Element
	for _, v := range val {
		next, err := Compress(acc, v)
		if err != nil {
			return fr.Element{}, err
		}
		acc = next
	}
	return acc, nil
}

// SumBytes interprets each 32-byte word as a big-endian scalar (reduced mod r)
// and returns Sum over them.
func SumBytes(words ...[32]byte) (*big.Int, error) {
	elems := make([]fr.Element, len(words))
	for i := range words {
		elems[i].SetBytes(words[i][:])
	}
	out, err := Sum(elems...)
	if err != nil {
		return nil, err
	}
	var b big.Int
	out.BigInt(&b)
	return &b, nil
}
