package fixtures

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eon-protocol/zkattest"
	"github.com/eon-protocol/zkattest/attestation"
	"github.com/eon-protocol/zkattest/program"
)

func datasets(t *testing.T, sizes ...Size) (string, *attestation.Signer) {
	t.Helper()
	root := t.TempDir()
	s, err := attestation.NewSigner(DEFAULT_SEED)
	require.NoError(t, err)
	require.NoError(t, WriteDatasets(root, s, sizes...))
	return root, s
}

func TestParseSize(t *testing.T) {
	for _, n := range []int{16, 256, 1024, 2048} {
		s, err := ParseSize(n)
		require.NoError(t, err)
		require.Equal(t, n, int(s))
	}
	for _, n := range []int{17, 0, -16, 99999} {
		_, err := ParseSize(n)
		require.ErrorIs(t, err, zkattest.ErrConfiguration)
		require.EqualError(t, err, "Unsupported length: "+Size(n).String())
	}
}

func TestLoad_EverySize(t *testing.T) {
	root, s := datasets(t)
	l := NewLoader(root)
	for _, size := range Sizes() {
		in, err := l.Load(context.Background(), size)
		require.NoError(t, err, size.String())
		require.NotEmpty(t, in.VerifyingKey)
		require.Len(t, in.DataSet.GetRecords(), int(size))
		require.NoError(t, in.DataSet.Verify(in.VerifyingKey))
	}
	in, err := l.Load(context.Background(), Size16)
	require.NoError(t, err)
	require.Equal(t, s.VerifyingKey()+"\n", in.VerifyingKey)
}

func TestLoad_Unsupported(t *testing.T) {
	root, _ := datasets(t, Size16)
	_, err := NewLoader(root).Load(context.Background(), Size(17))
	require.ErrorIs(t, err, zkattest.ErrConfiguration)
}

func TestLoad_MissingSource(t *testing.T) {
	root, _ := datasets(t, Size16)
	_, err := NewLoader(root).Load(context.Background(), Size256)
	require.ErrorIs(t, err, zkattest.ErrIO)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.ErrorContains(t, err, GENERATE_COMMAND)

	require.NoError(t, os.Remove(filepath.Join(root, KEY_FILE)))
	_, err = NewLoader(root).Load(context.Background(), Size16)
	require.ErrorIs(t, err, zkattest.ErrIO)
}

func TestLoad_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":      `{"version":`,
		"missing field": `{"version":1,"attestor":"0x0000000000000000000000000000000000000000","records":[]}`,
		"extra field":   `{"version":1,"attestor":"0x0000000000000000000000000000000000000000","records":[],"records_root":"0x","extra":1}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			root, _ := datasets(t, Size16)
			src, _ := Size16.Source()
			require.NoError(t, os.WriteFile(filepath.Join(root, src.DataPath), []byte(doc), 0o644))
			_, err := NewLoader(root).Load(context.Background(), Size16)
			require.ErrorIs(t, err, zkattest.ErrIO)
		})
	}
}

func TestLoad_EmptyKey(t *testing.T) {
	root, _ := datasets(t, Size16)
	require.NoError(t, os.WriteFile(filepath.Join(root, KEY_FILE), []byte(" \n"), 0o644))
	_, err := NewLoader(root).Load(context.Background(), Size16)
	require.ErrorIs(t, err, zkattest.ErrIO)
}

func TestFill_FeedsGuest(t *testing.T) {
	root, _ := datasets(t, Size16)
	stdin := zkattest.NewStdin()
	in, err := NewLoader(root).Fill(context.Background(), Size16, stdin)
	require.NoError(t, err)
	require.Equal(t, 2, stdin.Len())

	pv, _, err := zkattest.NewClient().Execute(context.Background(), program.New(), stdin)
	require.NoError(t, err)
	out, err := program.DecodePublicValues(pv)
	require.NoError(t, err)
	require.True(t, out.Verified)
	require.Equal(t, in.VerifyingKey, out.VerifyingKey)
}

func TestEmit_Groth16(t *testing.T) {
	root, _ := datasets(t, Size16)
	ctx := context.Background()
	client := zkattest.NewClient()

	stdin := zkattest.NewStdin()
	_, err := NewLoader(root).Fill(ctx, Size16, stdin)
	require.NoError(t, err)
	pk, vk, err := client.Setup(ctx, program.New(), zkattest.BackendGroth16)
	require.NoError(t, err)
	proof, err := client.Prove(ctx, pk, stdin)
	require.NoError(t, err)
	require.NoError(t, client.Verify(proof, vk))

	em := NewEmitter(filepath.Join(t.TempDir(), "nested", "fixtures"))
	path, fx, err := em.Emit(proof, vk)
	require.NoError(t, err)
	require.Equal(t, em.Path(zkattest.BackendGroth16), path)

	onDisk, err := ReadProofFixture(path)
	require.NoError(t, err)
	require.Equal(t, fx, onDisk)
	require.Regexp(t, regexp.MustCompile(`^0x[0-9a-f]+$`), onDisk.Proof)
	require.Equal(t, vk.Bytes32(), onDisk.Vkey)
	require.Len(t, onDisk.Vkey, 66)

	// last write wins
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
	_, _, err = em.Emit(proof, vk)
	require.NoError(t, err)
	again, err := ReadProofFixture(path)
	require.NoError(t, err)
	require.Equal(t, fx, again)

	sol, err := em.EmitVerifier(vk)
	require.NoError(t, err)
	require.Equal(t, "Groth16Verifier.sol", filepath.Base(sol))
}
