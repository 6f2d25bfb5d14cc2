package zkattest

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_KindsAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	cases := []struct {
		err      error
		kind     Kind
		sentinel error
	}{
		{IOError("read", cause), KindIO, ErrIO},
		{VerificationError("verify", cause), KindVerification, ErrVerification},
		{SerializationError("encode", cause), KindSerialization, ErrSerialization},
	}
	for _, tc := range cases {
		require.ErrorIs(t, tc.err, tc.sentinel)
		require.ErrorIs(t, tc.err, cause)
		require.Equal(t, tc.kind, KindOf(tc.err))
		require.Equal(t, 1, ExitCode(tc.err))

		wrapped := fmt.Errorf("outer: %w", tc.err)
		require.ErrorIs(t, wrapped, tc.sentinel)
		require.Equal(t, tc.kind, KindOf(wrapped))
	}
	require.Equal(t, "read: boom", IOError("read", cause).Error())
}

func TestError_NilPassesThrough(t *testing.T) {
	require.NoError(t, IOError("read", nil))
	require.Equal(t, 0, ExitCode(nil))
	require.Equal(t, KindUnknown, KindOf(io.EOF))
}

func TestConfigurationErrorf_Verbatim(t *testing.T) {
	err := ConfigurationErrorf("Unsupported length: %d", 17)
	require.EqualError(t, err, "Unsupported length: 17")
	require.ErrorIs(t, err, ErrConfiguration)
	require.Equal(t, "ConfigurationError", KindOf(err).String())
}
