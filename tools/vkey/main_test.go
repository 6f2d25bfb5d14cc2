package main

import (
	"bytes"
	"encoding/hex"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eon-protocol/zkattest"
	"github.com/eon-protocol/zkattest/host"
	"github.com/eon-protocol/zkattest/program"
)

func TestPrintsProgramVkey(t *testing.T) {
	t.Setenv(host.ENV_LOG_LEVEL, "error")
	var out bytes.Buffer
	cmd := newCommand(&out, &bytes.Buffer{})
	cmd.SetArgs([]string{"--system", "groth16"})
	require.NoError(t, cmd.Execute())

	digest := zkattest.ProgramDigest(program.New())
	require.Contains(t, out.String(), "Verification Key: 0x"+hex.EncodeToString(digest[:])+"\n")
	require.Regexp(t, regexp.MustCompile(`Verifier Selector: 0x[0-9a-f]{8}\n`), out.String())
}

func TestUnknownSystem(t *testing.T) {
	cmd := newCommand(&bytes.Buffer{}, &bytes.Buffer{})
	cmd.SetArgs([]string{"--system", "halo2"})
	require.EqualError(t, cmd.Execute(), "Unsupported proof system: halo2")
}
