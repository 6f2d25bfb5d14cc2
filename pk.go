package zkattest

import (
	"bytes"
	"fmt"

	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"

	"github.com/eon-protocol/zkattest/circuits/binding"
)

// Pk is the proving key of one program under one backend.
type Pk struct {
	program Program
	backend Backend
	ccs     constraint.ConstraintSystem
	pk      serializable
	vk      *Vk
}

func (me *Pk) compile(p Program, b Backend, srs *SRSProvider) error {
	sch, err := backendFor(b)
	if err != nil {
		return err
	}
	digest := ProgramDigest(p)
	ccs, err := frontend.Compile(b.Curve().ScalarField(), sch.builder(), binding.New(b.Curve(), digest))
	if err != nil {
		return fmt.Errorf("compile %s: %w", b, err)
	}
	gpk, gvk, err := sch.setup(ccs, srs)
	if err != nil {
		return fmt.Errorf("setup %s: %w", b, err)
	}
	vk, err := newVk(b, digest, gvk)
	if err != nil {
		return err
	}
	me.program = p
	me.backend = b
	me.ccs = ccs
	me.pk = gpk
	me.vk = vk
	return nil
}

func (me *Pk) Vk() *Vk {
	return me.vk
}

func (me *Pk) Backend() Backend {
	return me.backend
}

func (me *Pk) Program() Program {
	return me.program
}

func (me *Pk) NbConstraints() int {
	return me.ccs.GetNbConstraints()
}

func (me *Pk) prove(st *binding.Statement, values []byte, opts ...backend.ProverOption) (*ProofWithPublicValues, error) {
	sch, err := backendFor(me.backend)
	if err != nil {
		return nil, err
	}
	assignment, err := st.Assignment(me.backend.Curve())
	if err != nil {
		return nil, err
	}
	w, err := frontend.NewWitness(assignment, me.backend.Curve().ScalarField())
	if err != nil {
		return nil, fmt.Errorf("witness: %w", err)
	}
	gp, err := sch.prove(me.ccs, me.pk, w, opts...)
	if err != nil {
		return nil, fmt.Errorf("prove %s: %w", me.backend, err)
	}
	var buf bytes.Buffer
	if _, err := gp.WriteTo(&buf); err != nil {
		return nil, SerializationError("encode proof", err)
	}
	return &ProofWithPublicValues{
		Backend:      me.backend,
		VkeyHash:     st.VkeyHash,
		Selector:     me.vk.selector,
		PublicValues: append([]byte(nil), values...),
		Proof:        buf.Bytes(),
	}, nil
}
