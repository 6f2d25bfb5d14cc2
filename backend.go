package zkattest

import (
	"fmt"
	"io"
	"strings"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/frontend/cs/scs"
)

// Backend selects the proof system a proof is produced with.
type Backend uint8

const (
	// BackendCore is the native proof: PLONK over BLS12-381.
	BackendCore Backend = iota
	// BackendGroth16 and BackendPlonk target BN254 and on-chain verifiers.
	BackendGroth16
	BackendPlonk
)

func (b Backend) String() string {
	switch b {
	case BackendCore:
		return "core"
	case BackendGroth16:
		return "groth16"
	case BackendPlonk:
		return "plonk"
	}
	return fmt.Sprintf("backend(%d)", uint8(b))
}

// ParseBackend accepts a case-insensitive backend name.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "core":
		return BackendCore, nil
	case "groth16":
		return BackendGroth16, nil
	case "plonk":
		return BackendPlonk, nil
	}
	return 0, ConfigurationErrorf("Unsupported proof system: %s", s)
}

func (b Backend) Curve() ecc.ID {
	if b == BackendCore {
		return ecc.BLS12_381
	}
	return ecc.BN254
}

// OnChain reports whether proofs of this backend have an EVM verifier.
func (b Backend) OnChain() bool {
	return b == BackendGroth16 || b == BackendPlonk
}

type serializable interface {
	io.WriterTo
	io.ReaderFrom
}

// scheme is the stateless per-backend dispatch target.
type scheme interface {
	builder() frontend.NewBuilder
	setup(ccs constraint.ConstraintSystem, srs *SRSProvider) (serializable, serializable, error)
	prove(ccs constraint.ConstraintSystem, pk serializable, w witness.Witness, opts ...backend.ProverOption) (serializable, error)
	verify(proof, vk serializable, public witness.Witness) error
	newProof() serializable
	newVerifyingKey() serializable
}

func backendFor(b Backend) (scheme, error) {
	switch b {
	case BackendCore:
		return plonkScheme{curve: ecc.BLS12_381}, nil
	case BackendGroth16:
		return groth16Scheme{curve: ecc.BN254}, nil
	case BackendPlonk:
		return plonkScheme{curve: ecc.BN254}, nil
	}
	return nil, ConfigurationErrorf("Unsupported proof system: %s", b)
}

type groth16Scheme struct {
	curve ecc.ID
}

func (groth16Scheme) builder() frontend.NewBuilder {
	return r1cs.NewBuilder
}

func (groth16Scheme) setup(ccs constraint.ConstraintSystem, _ *SRSProvider) (serializable, serializable, error) {
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, nil, err
	}
	return pk, vk, nil
}

func (groth16Scheme) prove(ccs constraint.ConstraintSystem, pk serializable, w witness.Witness, opts ...backend.ProverOption) (serializable, error) {
	gpk, ok := pk.(groth16.ProvingKey)
	if !ok {
		return nil, fmt.Errorf("groth16: unexpected proving key %T", pk)
	}
	return groth16.Prove(ccs, gpk, w, opts...)
}

func (groth16Scheme) verify(proof, vk serializable, public witness.Witness) error {
	gp, ok := proof.(groth16.Proof)
	if !ok {
		return fmt.Errorf("groth16: unexpected proof %T", proof)
	}
	gvk, ok := vk.(groth16.VerifyingKey)
	if !ok {
		return fmt.Errorf("groth16: unexpected verifying key %T", vk)
	}
	return groth16.Verify(gp, gvk, public)
}

func (me groth16Scheme) newProof() serializable {
	return groth16.NewProof(me.curve)
}

func (me groth16Scheme) newVerifyingKey() serializable {
	return groth16.NewVerifyingKey(me.curve)
}

type plonkScheme struct {
	curve ecc.ID
}

func (plonkScheme) builder() frontend.NewBuilder {
	return scs.NewBuilder
}

func (me plonkScheme) setup(ccs constraint.ConstraintSystem, srs *SRSProvider) (serializable, serializable, error) {
	canonical, lagrange, err := srs.Load(ccs, me.curve)
	if err != nil {
		return nil, nil, err
	}
	pk, vk, err := plonk.Setup(ccs, canonical, lagrange)
	if err != nil {
		return nil, nil, err
	}
	return pk, vk, nil
}

func (plonkScheme) prove(ccs constraint.ConstraintSystem, pk serializable, w witness.Witness, opts ...backend.ProverOption) (serializable, error) {
	ppk, ok := pk.(plonk.ProvingKey)
	if !ok {
		return nil, fmt.Errorf("plonk: unexpected proving key %T", pk)
	}
	return plonk.Prove(ccs, ppk, w, opts...)
}

func (plonkScheme) verify(proof, vk serializable, public witness.Witness) error {
	pp, ok := proof.(plonk.Proof)
	if !ok {
		return fmt.Errorf("plonk: unexpected proof %T", proof)
	}
	pvk, ok := vk.(plonk.VerifyingKey)
	if !ok {
		return fmt.Errorf("plonk: unexpected verifying key %T", vk)
	}
	return plonk.Verify(pp, pvk, public)
}

func (me plonkScheme) newProof() serializable {
	return plonk.NewProof(me.curve)
}

func (me plonkScheme) newVerifyingKey() serializable {
	return plonk.NewVerifyingKey(me.curve)
}
