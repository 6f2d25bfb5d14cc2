package host

import (
	"github.com/eon-protocol/zkattest"
)

type Mode uint8

const (
	ModeExecute Mode = iota + 1
	ModeProve
)

func (m Mode) String() string {
	switch m {
	case ModeExecute:
		return "execute-only"
	case ModeProve:
		return "prove-full"
	}
	return "unknown"
}

// ParseMode requires exactly one of execute and prove.
func ParseMode(execute, prove bool) (Mode, error) {
	if execute == prove {
		return 0, zkattest.ConfigurationErrorf("Error: You must specify either --execute or --prove")
	}
	if execute {
		return ModeExecute, nil
	}
	return ModeProve, nil
}
