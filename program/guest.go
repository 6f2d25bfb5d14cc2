package program

import (
	"github.com/eon-protocol/zkattest"
)

// ID is the only input to the program digest and so to every vkey. Any change
// to what Run reads, verifies or commits must bump the version suffix.
const ID = "zktls-program@1"

// Guest reads a verifying key and a dataset, verifies the dataset and commits
// the key, the records and whether verification succeeded.
type Guest struct{}

func New() *Guest {
	return &Guest{}
}

func (*Guest) ID() string {
	return ID
}

func (*Guest) Run(env *zkattest.Env) error {
	in, err := ReadInputs(env)
	if err != nil {
		return err
	}
	verr := in.DataSet.Verify(in.VerifyingKey)
	env.Charge(zkattest.CYCLES_PER_RECORD * uint64(len(in.DataSet.Records)))

	out := PublicOutputs{
		VerifyingKey: in.VerifyingKey,
		Records:      in.DataSet.GetRecords(),
		Verified:     verr == nil,
	}
	return out.Commit(env)
}
