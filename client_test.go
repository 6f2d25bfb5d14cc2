package zkattest

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	kzgbn254 "github.com/consensys/gnark-crypto/ecc/bn254/kzg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type named struct {
	echo
	id string
}

func (me *named) ID() string { return me.id }

func proveEcho(t *testing.T, c *Client, b Backend) (*ProofWithPublicValues, *Vk) {
	t.Helper()
	ctx := context.Background()
	pk, vk, err := c.Setup(ctx, &echo{n: 1}, b)
	require.NoError(t, err)
	require.Equal(t, ProgramDigest(&echo{}), vk.HashBytes())
	proof, err := c.Prove(ctx, pk, stdinOf(t, pair{"hello", 7}))
	require.NoError(t, err)
	return proof, vk
}

func TestProveVerify_AllBackends(t *testing.T) {
	for _, b := range []Backend{BackendCore, BackendGroth16, BackendPlonk} {
		t.Run(b.String(), func(t *testing.T) {
			c := NewClient()
			proof, vk := proveEcho(t, c, b)
			require.NoError(t, c.Verify(proof, vk))

			var got pair
			require.NoError(t, proof.Values().Reader().Read(&got))
			require.Equal(t, pair{"hello", 7}, got)

			raw, err := proof.Bytes()
			require.NoError(t, err)
			sel := vk.Selector()
			require.Equal(t, sel[:], raw[:4])
		})
	}
}

func TestVerify_MismatchedKey(t *testing.T) {
	ctx := context.Background()
	c := NewClient()
	proof, vk := proveEcho(t, c, BackendGroth16)

	_, other, err := c.Setup(ctx, &named{echo: echo{n: 1}, id: "another"}, BackendGroth16)
	require.NoError(t, err)
	require.ErrorIs(t, c.Verify(proof, other), ErrVerification)

	// same program, fresh setup: different verifier selector
	_, again, err := c.Setup(ctx, &echo{n: 1}, BackendGroth16)
	require.NoError(t, err)
	require.ErrorIs(t, c.Verify(proof, again), ErrVerification)

	_, plonkVk, err := c.Setup(ctx, &echo{n: 1}, BackendPlonk)
	require.NoError(t, err)
	require.ErrorIs(t, c.Verify(proof, plonkVk), ErrVerification)

	require.NoError(t, c.Verify(proof, vk))
}

func TestVerify_TamperedPublicValues(t *testing.T) {
	for _, b := range []Backend{BackendCore, BackendGroth16} {
		c := NewClient()
		proof, vk := proveEcho(t, c, b)
		proof.PublicValues = append([]byte(nil), proof.PublicValues...)
		proof.PublicValues[len(proof.PublicValues)-1] ^= 1
		require.ErrorIs(t, c.Verify(proof, vk), ErrVerification, b.String())
	}
}

func TestVerify_SelectorForgedDoesNotHelp(t *testing.T) {
	c := NewClient()
	ctx := context.Background()
	proof, _ := proveEcho(t, c, BackendGroth16)
	_, again, err := c.Setup(ctx, &echo{n: 1}, BackendGroth16)
	require.NoError(t, err)
	proof.Selector = again.Selector()
	require.ErrorIs(t, c.Verify(proof, again), ErrVerification)
}

func TestProof_SaveLoad(t *testing.T) {
	c := NewClient()
	proof, vk := proveEcho(t, c, BackendPlonk)
	path := filepath.Join(t.TempDir(), "proof.bin")
	require.NoError(t, proof.Save(path))

	loaded, err := LoadProof(path)
	require.NoError(t, err)
	require.Equal(t, proof, loaded)
	require.NoError(t, c.Verify(loaded, vk))

	_, err = LoadProof(filepath.Join(t.TempDir(), "missing.bin"))
	require.ErrorIs(t, err, ErrIO)
}

func TestVk_WriteReadVerify(t *testing.T) {
	c := NewClient()
	proof, vk := proveEcho(t, c, BackendGroth16)
	var buf bytes.Buffer
	_, err := vk.WriteTo(&buf)
	require.NoError(t, err)

	var decoded Vk
	_, err = decoded.ReadFrom(&buf)
	require.NoError(t, err)
	require.Equal(t, vk.Bytes32(), decoded.Bytes32())
	require.Equal(t, vk.Selector(), decoded.Selector())
	require.NoError(t, decoded.Verify(proof))
}

func TestVk_ExportSolidity(t *testing.T) {
	c := NewClient()
	ctx := context.Background()
	for _, b := range []Backend{BackendGroth16, BackendPlonk} {
		_, vk, err := c.Setup(ctx, &echo{n: 1}, b)
		require.NoError(t, err)
		var sol bytes.Buffer
		require.NoError(t, vk.ExportSolidity(&sol))
		require.Contains(t, sol.String(), "pragma solidity")
	}
	_, vk, err := c.Setup(ctx, &echo{n: 1}, BackendCore)
	require.NoError(t, err)
	require.ErrorIs(t, vk.ExportSolidity(&bytes.Buffer{}), ErrConfiguration)
}

func TestParseBackend(t *testing.T) {
	b, err := ParseBackend(" Groth16 ")
	require.NoError(t, err)
	require.Equal(t, BackendGroth16, b)
	require.Equal(t, ecc.BN254, b.Curve())
	require.Equal(t, ecc.BLS12_381, BackendCore.Curve())
	require.False(t, BackendCore.OnChain())

	_, err = ParseBackend("stark")
	require.EqualError(t, err, "Unsupported proof system: stark")
}

func writeSRS(t *testing.T, dir string) string {
	t.Helper()
	srs, err := kzgbn254.NewSRS(1<<12+3, big.NewInt(42))
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = srs.WriteTo(&buf)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, SRS_FILES[ecc.BN254]), buf.Bytes(), 0o644))
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}

func TestSRSProvider_FromDir(t *testing.T) {
	dir := t.TempDir()
	digest := writeSRS(t, dir)
	c := NewClient(WithSRS(&SRSProvider{Dir: dir, SHA256: digest, Logger: zerolog.Nop()}))
	proof, vk := proveEcho(t, c, BackendPlonk)
	require.NoError(t, c.Verify(proof, vk))
}

func TestSRSProvider_Rejects(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeSRS(t, dir)

	c := NewClient(WithSRS(&SRSProvider{Dir: dir, SHA256: "00"}))
	_, _, err := c.Setup(ctx, &echo{n: 1}, BackendPlonk)
	require.ErrorIs(t, err, ErrIO)

	c = NewClient(WithSRS(&SRSProvider{Dir: t.TempDir()}))
	_, _, err = c.Setup(ctx, &echo{n: 1}, BackendPlonk)
	require.ErrorIs(t, err, ErrIO)
}

func TestProverOptions_CPUFallback(t *testing.T) {
	c := NewClient(WithAccelerator("icicle"))
	require.Empty(t, c.proverOptions(BackendPlonk))
	require.Empty(t, NewClient().proverOptions(BackendGroth16))
}

func TestLoadProof_OversizedChunk(t *testing.T) {
	dir := t.TempDir()
	for name, size := range map[string]uint32{
		"over limit": 0xFFFFFFF0,
		"truncated":  MAX_CHUNK,
	} {
		raw := make([]byte, 37, 41)
		raw[0] = byte(BackendGroth16)
		raw = binary.BigEndian.AppendUint32(raw, size)
		path := filepath.Join(dir, "corrupt.bin")
		require.NoError(t, os.WriteFile(path, raw, 0o644))

		_, err := LoadProof(path)
		require.ErrorIs(t, err, ErrSerialization, name)
	}

	raw := make([]byte, 37, 45)
	raw = binary.BigEndian.AppendUint32(raw, 16)
	raw = append(raw, 1, 2, 3, 4)
	var proof ProofWithPublicValues
	_, err := proof.ReadFrom(bytes.NewReader(raw))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestVerify_TrailingProofBytes(t *testing.T) {
	for _, b := range []Backend{BackendGroth16, BackendPlonk} {
		c := NewClient()
		proof, vk := proveEcho(t, c, b)
		proof.Proof = append(append([]byte(nil), proof.Proof...), 0xde, 0xad)
		require.ErrorIs(t, c.Verify(proof, vk), ErrVerification, b.String())
	}
}
