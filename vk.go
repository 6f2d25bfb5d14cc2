package zkattest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/frontend"

	"github.com/eon-protocol/zkattest/circuits/binding"
)

// Vk is the verifying key of one program under one backend.
type Vk struct {
	backend  Backend
	vkeyHash [32]byte
	selector [4]byte
	vk       serializable
}

func newVk(b Backend, vkeyHash [32]byte, vk serializable) (*Vk, error) {
	me := &Vk{backend: b, vkeyHash: vkeyHash, vk: vk}
	if err := me.computeSelector(); err != nil {
		return nil, err
	}
	return me, nil
}

// selector = sha256(serialized gnark verifying key)[:4]; it prefixes on-chain
// proof bytes so a router contract can pick the matching verifier.
func (me *Vk) computeSelector() error {
	h := sha256.New()
	if _, err := me.vk.WriteTo(h); err != nil {
		return SerializationError("vk selector", err)
	}
	copy(me.selector[:], h.Sum(nil))
	return nil
}

func (me *Vk) Backend() Backend {
	return me.backend
}

// HashBytes is the program vkey hash bound into every proof.
func (me *Vk) HashBytes() [32]byte {
	return me.vkeyHash
}

// Bytes32 renders the program vkey hash as 0x-prefixed hex.
func (me *Vk) Bytes32() string {
	return "0x" + hex.EncodeToString(me.vkeyHash[:])
}

func (me *Vk) Selector() [4]byte {
	return me.selector
}

// Verify checks proof against this key. Any mismatch is a VerificationError.
func (me *Vk) Verify(proof *ProofWithPublicValues) error {
	if proof == nil {
		return VerificationError("verify", fmt.Errorf("nil proof"))
	}
	if proof.Backend != me.backend {
		return VerificationError("verify", fmt.Errorf("proof backend %s does not match key backend %s", proof.Backend, me.backend))
	}
	if proof.VkeyHash != me.vkeyHash {
		return VerificationError("verify", fmt.Errorf("program vkey mismatch: proof 0x%x, key %s", proof.VkeyHash, me.Bytes32()))
	}
	if proof.Selector != me.selector {
		return VerificationError("verify", fmt.Errorf("verifier selector mismatch: proof %x, key %x", proof.Selector, me.selector))
	}
	sch, err := backendFor(me.backend)
	if err != nil {
		return err
	}
	gp := sch.newProof()
	n, err := gp.ReadFrom(bytes.NewReader(proof.Proof))
	if err != nil {
		return VerificationError("verify", fmt.Errorf("decode proof: %w", err))
	}
	if n != int64(len(proof.Proof)) {
		return VerificationError("verify", fmt.Errorf("decode proof: %d trailing bytes", int64(len(proof.Proof))-n))
	}
	st := binding.Statement{VkeyHash: me.vkeyHash, CommittedValuesDigest: proof.Values().Digest()}
	public, err := frontend.NewWitness(st.Public(), me.backend.Curve().ScalarField(), frontend.PublicOnly())
	if err != nil {
		return VerificationError("verify", fmt.Errorf("public witness: %w", err))
	}
	if err := sch.verify(gp, me.vk, public); err != nil {
		return VerificationError("verify", err)
	}
	return nil
}

// ExportSolidity writes the EVM verifier contract for on-chain backends.
func (me *Vk) ExportSolidity(w io.Writer) error {
	if !me.backend.OnChain() {
		return ConfigurationErrorf("backend %s has no solidity verifier", me.backend)
	}
	switch vk := me.vk.(type) {
	case plonk.VerifyingKey:
		return vk.ExportSolidity(w)
	case groth16.VerifyingKey:
		return vk.ExportSolidity(w)
	}
	return ConfigurationErrorf("backend %s has no solidity verifier", me.backend)
}

func (me *Vk) WriteTo(w io.Writer) (int64, error) {
	var hdr [33]byte
	hdr[0] = byte(me.backend)
	copy(hdr[1:], me.vkeyHash[:])
	n, err := w.Write(hdr[:])
	if err != nil {
		return int64(n), err
	}
	m, err := me.vk.WriteTo(w)
	return int64(n) + m, err
}

func (me *Vk) ReadFrom(r io.Reader) (int64, error) {
	var hdr [33]byte
	n, err := io.ReadFull(r, hdr[:])
	if err != nil {
		return int64(n), err
	}
	sch, err := backendFor(Backend(hdr[0]))
	if err != nil {
		return int64(n), err
	}
	me.backend = Backend(hdr[0])
	copy(me.vkeyHash[:], hdr[1:])
	me.vk = sch.newVerifyingKey()
	m, err := me.vk.ReadFrom(r)
	if err != nil {
		return int64(n) + m, err
	}
	return int64(n) + m, me.computeSelector()
}
