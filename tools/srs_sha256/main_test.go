package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eon-protocol/zkattest"
)

func TestGenerateThenHash(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	cmd := newCommand(nil, &out)
	cmd.SetArgs([]string{"--generate", "8", "--dir", dir, "--lagrange"})
	require.NoError(t, cmd.Execute())

	raw, err := os.ReadFile(filepath.Join(dir, "srs.bn254.bin"))
	require.NoError(t, err)
	sum := sha256.Sum256(raw)
	require.Contains(t, out.String(), "sha256(SRS) = "+hex.EncodeToString(sum[:]))
	require.Contains(t, out.String(), "sha256(SRS.LK[3])")

	var again bytes.Buffer
	cmd = newCommand(bytes.NewReader(raw), &again)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	require.Equal(t, "sha256(SRS) = "+hex.EncodeToString(sum[:]), strings.TrimSpace(again.String()))
}

func TestUnsupportedCurve(t *testing.T) {
	cmd := newCommand(nil, &bytes.Buffer{})
	cmd.SetArgs([]string{"--curve", "bw6"})
	require.ErrorIs(t, cmd.Execute(), zkattest.ErrConfiguration)
}
