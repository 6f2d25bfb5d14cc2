package zkattest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// ProofWithPublicValues is a proof bound to one program vkey and one backend,
// together with the public values it commits to.
type ProofWithPublicValues struct {
	Backend      Backend
	VkeyHash     [32]byte
	Selector     [4]byte
	PublicValues []byte
	Proof        []byte
}

func (me *ProofWithPublicValues) Values() *PublicValues {
	return NewPublicValues(me.PublicValues)
}

type solidityMarshaler interface {
	MarshalSolidity() []byte
}

// Bytes returns the proof as consumed by an on-chain verifier: the 4-byte
// verifier selector followed by the Solidity encoding of the proof. Backends
// without a Solidity encoding fall back to the raw gnark encoding.
func (me *ProofWithPublicValues) Bytes() ([]byte, error) {
	out := append([]byte(nil), me.Selector[:]...)
	if !me.Backend.OnChain() {
		return append(out, me.Proof...), nil
	}
	sch, err := backendFor(me.Backend)
	if err != nil {
		return nil, err
	}
	gp := sch.newProof()
	if _, err := gp.ReadFrom(bytes.NewReader(me.Proof)); err != nil {
		return nil, SerializationError("decode proof", err)
	}
	if sm, ok := gp.(solidityMarshaler); ok {
		return append(out, sm.MarshalSolidity()...), nil
	}
	return append(out, me.Proof...), nil
}

// WriteTo layout: backend(1) vkey(32) selector(4) len(pv)(4) pv len(proof)(4) proof
func (me *ProofWithPublicValues) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteByte(byte(me.Backend))
	buf.Write(me.VkeyHash[:])
	buf.Write(me.Selector[:])
	var size [4]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(me.PublicValues)))
	buf.Write(size[:])
	buf.Write(me.PublicValues)
	binary.BigEndian.PutUint32(size[:], uint32(len(me.Proof)))
	buf.Write(size[:])
	buf.Write(me.Proof)
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

func (me *ProofWithPublicValues) ReadFrom(r io.Reader) (int64, error) {
	var read int64
	var hdr [37]byte
	n, err := io.ReadFull(r, hdr[:])
	read += int64(n)
	if err != nil {
		return read, err
	}
	if _, err := backendFor(Backend(hdr[0])); err != nil {
		return read, err
	}
	me.Backend = Backend(hdr[0])
	copy(me.VkeyHash[:], hdr[1:33])
	copy(me.Selector[:], hdr[33:37])
	if me.PublicValues, n, err = readChunk(r); err != nil {
		return read + int64(n), err
	}
	read += int64(n)
	if me.Proof, n, err = readChunk(r); err != nil {
		return read + int64(n), err
	}
	return read + int64(n), nil
}

func readChunk(r io.Reader) ([]byte, int, error) {
	var size [4]byte
	n, err := io.ReadFull(r, size[:])
	if err != nil {
		return nil, n, err
	}
	want := binary.BigEndian.Uint32(size[:])
	if want > MAX_CHUNK {
		return nil, n, fmt.Errorf("chunk length %d exceeds %d", want, MAX_CHUNK)
	}
	out, err := io.ReadAll(io.LimitReader(r, int64(want)))
	if err == nil && len(out) != int(want) {
		err = io.ErrUnexpectedEOF
	}
	return out, n + len(out), err
}

// Save writes the proof to path.
func (me *ProofWithPublicValues) Save(path string) error {
	var buf bytes.Buffer
	if _, err := me.WriteTo(&buf); err != nil {
		return SerializationError("save proof", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return IOError("save proof", err)
	}
	return nil
}

func LoadProof(path string) (*ProofWithPublicValues, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, IOError("load proof", err)
	}
	var proof ProofWithPublicValues
	if _, err := proof.ReadFrom(bytes.NewReader(raw)); err != nil {
		return nil, SerializationError("load proof", fmt.Errorf("%s: %w", path, err))
	}
	return &proof, nil
}
