// Package hasher provides a width-2 Poseidon2 gadget over BLS12-381 together
// with its native counterpart. It binds execution digests for the native
// (core) proof backend.
package hasher

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/poseidon2"
	"github.com/consensys/gnark/frontend"
)

var ErrInvalidWidth = errors.New("poseidon2: input size must equal the permutation width")

// Permutation is the in-circuit Poseidon2 permutation.
type Permutation struct {
	api       frontend.API
	degree    int
	roundKeys [][]big.Int
}

// New reads the parameters from vars.go and copies the round keys into
// circuit constants.
func New(api frontend.API) *Permutation {
	params := GetParameters()
	keys := make([][]big.Int, len(params.RoundKeys))
	for i := range keys {
		keys[i] = make([]big.Int, len(params.RoundKeys[i]))
		for j := range keys[i] {
			params.RoundKeys[i][j].BigInt(&keys[i][j])
		}
	}
	return &Permutation{api: api, degree: poseidon2.DegreeSBox(), roundKeys: keys}
}

func (h *Permutation) sBox(index int, state []frontend.Variable) {
	x := state[index]
	switch h.degree {
	case 3:
		sq := h.api.Mul(x, x)
		state[index] = h.api.Mul(sq, x)
	case 5:
		sq := h.api.Mul(x, x)
		qu := h.api.Mul(sq, sq)
		state[index] = h.api.Mul(qu, x)
	case 7:
		sq := h.api.Mul(x, x)
		cu := h.api.Mul(sq, x)
		sx := h.api.Mul(cu, cu)
		state[index] = h.api.Mul(sx, x)
	default:
		panic("poseidon2: unsupported sbox degree")
	}
}

// external matrix for t=2 is circ(2,1)
func (h *Permutation) external(state []frontend.Variable) {
	sum := h.api.Add(state[0], state[1])
	state[0] = h.api.Add(sum, state[0])
	state[1] = h.api.Add(sum, state[1])
}

// internal matrix for t=2 is [[2,1],[1,3]], matching gnark-crypto
func (h *Permutation) internal(state []frontend.Variable) {
	sum := h.api.Add(state[0], state[1])
	state[0] = h.api.Add(state[0], sum)
	state[1] = h.api.Add(h.api.Mul(state[1], 2), sum)
}

func (h *Permutation) addRoundKey(round int, state []frontend.Variable) {
	for i := range h.roundKeys[round] {
		state[i] = h.api.Add(state[i], h.roundKeys[round][i])
	}
}

// Permutation applies Poseidon2 to state in place.
func (h *Permutation) Permutation(state []frontend.Variable) error {
	if len(state) != WIDTH {
		return ErrInvalidWidth
	}
	h.external(state)
	half := ROUND_FULL / 2
	for r := 0; r < half; r++ {
		h.addRoundKey(r, state)
		for i := range state {
			h.sBox(i, state)
		}
		h.external(state)
	}
	for r := half; r < half+ROUND_PARTIAL; r++ {
		h.addRoundKey(r, state)
		h.sBox(0, state)
		h.internal(state)
	}
	for r := half + ROUND_PARTIAL; r < ROUND_FULL+ROUND_PARTIAL; r++ {
		h.addRoundKey(r, state)
		for i := range state {
			h.sBox(i, state)
		}
		h.external(state)
	}
	return nil
}

// Compress returns perm([left,right])[1] + right.
func (h *Permutation) Compress(left, right frontend.Variable) frontend.Variable {
	state := []frontend.Variable{left, right}
	if err := h.Permutation(state); err != nil {
		panic(err)
	}
	return h.api.Add(state[1], right)
}

// Sum folds vals from zero with Compress, like the native Sum.
func (h *Permutation) Sum(vals ...frontend.Variable) frontend.Variable {
	var acc frontend.Variable = 0
	for _, v := range vals {
		acc = h.Compress(acc, v)
	}
	return acc
}
