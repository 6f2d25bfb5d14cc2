package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eon-protocol/zkattest"
	"github.com/eon-protocol/zkattest/fixtures"
)

func TestWritesLoadableDatasets(t *testing.T) {
	root := filepath.Join(t.TempDir(), "zktls")
	var out bytes.Buffer
	cmd := newCommand(&out)
	cmd.SetArgs([]string{"--out", root, "--zktls-length", "16,256"})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "Verifying Key: 0x")

	l := fixtures.NewLoader(root)
	for _, size := range []fixtures.Size{fixtures.Size16, fixtures.Size256} {
		in, err := l.Load(context.Background(), size)
		require.NoError(t, err)
		require.NoError(t, in.DataSet.Verify(in.VerifyingKey))
	}
	_, err := l.Load(context.Background(), fixtures.Size1024)
	require.ErrorIs(t, err, zkattest.ErrIO)
}

func TestRejectsUnsupportedLength(t *testing.T) {
	cmd := newCommand(&bytes.Buffer{})
	cmd.SetArgs([]string{"--out", t.TempDir(), "--zktls-length", "17"})
	err := cmd.Execute()
	require.EqualError(t, err, "Unsupported length: 17")
}
