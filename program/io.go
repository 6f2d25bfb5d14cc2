// Package program is the zkTLS attestation guest and the stream schema it
// shares with every host entry point.
package program

import (
	"fmt"

	"github.com/eon-protocol/zkattest"
	"github.com/eon-protocol/zkattest/attestation"
)

// Inputs is everything the host writes to the guest, in stream order.
type Inputs struct {
	VerifyingKey string
	DataSet      *attestation.DataSet
}

// Write appends the inputs to stdin in the order ReadInputs consumes them.
func (in *Inputs) Write(stdin *zkattest.Stdin) error {
	if in.DataSet == nil {
		return zkattest.SerializationError("write inputs", fmt.Errorf("dataset is nil"))
	}
	if err := stdin.Write(in.VerifyingKey); err != nil {
		return err
	}
	return stdin.Write(in.DataSet)
}

func ReadInputs(env *zkattest.Env) (*Inputs, error) {
	in := &Inputs{DataSet: new(attestation.DataSet)}
	if err := env.Read(&in.VerifyingKey); err != nil {
		return nil, err
	}
	if err := env.Read(in.DataSet); err != nil {
		return nil, err
	}
	return in, nil
}

// PublicOutputs is the committed public values: key, records, then outcome.
// The first two values keep the layout of the two-field commit; Verified is
// appended after them.
//
// Verified is what the host's execution computed. The proof binds it to the
// program vkey but does not attest that the signature checks were run.
type PublicOutputs struct {
	VerifyingKey string
	Records      attestation.Records
	Verified     bool
}

func (out *PublicOutputs) Commit(env *zkattest.Env) error {
	if err := env.Commit(out.VerifyingKey); err != nil {
		return err
	}
	if err := env.Commit(out.Records); err != nil {
		return err
	}
	return env.Commit(out.Verified)
}

// DecodePublicValues is the single decoder for what Guest commits.
func DecodePublicValues(pv *zkattest.PublicValues) (*PublicOutputs, error) {
	r := pv.Reader()
	out := new(PublicOutputs)
	if err := r.Read(&out.VerifyingKey); err != nil {
		return nil, err
	}
	if err := r.Read(&out.Records); err != nil {
		return nil, err
	}
	if err := r.Read(&out.Verified); err != nil {
		return nil, err
	}
	if !r.Done() {
		return nil, zkattest.SerializationError("decode public values", fmt.Errorf("trailing frames after outcome"))
	}
	return out, nil
}
