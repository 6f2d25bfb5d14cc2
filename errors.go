package zkattest

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the pipeline can surface. All kinds are fatal
// for a run.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindConfiguration
	KindIO
	KindVerification
	KindSerialization
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrIO            = errors.New("io error")
	ErrVerification  = errors.New("verification error")
	ErrSerialization = errors.New("serialization error")
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "ConfigurationError"
	case KindIO:
		return "IOError"
	case KindVerification:
		return "VerificationError"
	case KindSerialization:
		return "SerializationError"
	}
	return "UnknownError"
}

func (k Kind) sentinel() error {
	switch k {
	case KindConfiguration:
		return ErrConfiguration
	case KindIO:
		return ErrIO
	case KindVerification:
		return ErrVerification
	case KindSerialization:
		return ErrSerialization
	}
	return nil
}

// Error carries a Kind plus the operation that failed. errors.Is matches both
// the Kind sentinel and the wrapped cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() []error {
	if s := e.Kind.sentinel(); s != nil {
		return []error{s, e.Err}
	}
	return []error{e.Err}
}

func newError(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// ConfigurationErrorf builds a user-facing configuration diagnostic. The
// message is printed verbatim by the binaries.
func ConfigurationErrorf(format string, args ...any) error {
	return &Error{Kind: KindConfiguration, Err: fmt.Errorf(format, args...)}
}

func IOError(op string, err error) error {
	return newError(KindIO, op, err)
}

func VerificationError(op string, err error) error {
	return newError(KindVerification, op, err)
}

func SerializationError(op string, err error) error {
	return newError(KindSerialization, op, err)
}

// KindOf returns the Kind of the outermost *Error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ExitCode maps a pipeline result to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
