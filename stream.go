package zkattest

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

var encMode = sync.OnceValue(func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
})

// Unknown fields are rejected so that a host/guest schema drift fails the run
// instead of being silently dropped.
var decMode = sync.OnceValue(func() cbor.DecMode {
	dm, err := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
})

// Stdin is the ordered input stream handed to a guest program. Values are
// consumed by Env.Read in exactly the order they were written.
type Stdin struct {
	frames [][]byte
}

func NewStdin() *Stdin {
	return &Stdin{}
}

// Write appends one value, encoded as deterministic CBOR.
func (me *Stdin) Write(v any) error {
	frame, err := encMode().Marshal(v)
	if err != nil {
		return SerializationError("stdin write", err)
	}
	me.frames = append(me.frames, frame)
	return nil
}

// WriteFrame appends an already encoded frame.
func (me *Stdin) WriteFrame(frame []byte) {
	me.frames = append(me.frames, append([]byte(nil), frame...))
}

func (me *Stdin) Len() int {
	return len(me.frames)
}

func (me *Stdin) clone() [][]byte {
	out := make([][]byte, len(me.frames))
	copy(out, me.frames)
	return out
}

// PublicValues is the ordered stream of values a guest commits. Its byte
// layout is a sequence of frames, each a 4-byte big-endian length followed by
// the CBOR encoding of the committed value.
type PublicValues struct {
	buf []byte
}

func NewPublicValues(b []byte) *PublicValues {
	return &PublicValues{buf: append([]byte(nil), b...)}
}

func (me *PublicValues) Bytes() []byte {
	return me.buf
}

func (me *PublicValues) Len() int {
	return len(me.buf)
}

func (me *PublicValues) append(frame []byte) {
	var hdr [FRAME_HEADER]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(frame)))
	me.buf = append(me.buf, hdr[:]...)
	me.buf = append(me.buf, frame...)
}

// Digest is the masked sha256 of the raw public values, the value bound into
// every proof as a public input.
func (me *PublicValues) Digest() [32]byte {
	return MaskDigest(sha256.Sum256(me.buf))
}

// Reader returns a decoder that walks the committed frames in order.
func (me *PublicValues) Reader() *PublicValuesReader {
	return &PublicValuesReader{buf: me.buf}
}

type PublicValuesReader struct {
	buf []byte
	off int
	n   int
}

// Read decodes the next committed frame into v.
func (me *PublicValuesReader) Read(v any) error {
	if me.off == len(me.buf) {
		return SerializationError("public values read", fmt.Errorf("frame %d: %w", me.n, io.EOF))
	}
	if len(me.buf)-me.off < FRAME_HEADER {
		return SerializationError("public values read", fmt.Errorf("frame %d: truncated header", me.n))
	}
	size := int(binary.BigEndian.Uint32(me.buf[me.off:]))
	start := me.off + FRAME_HEADER
	if size > len(me.buf)-start {
		return SerializationError("public values read", fmt.Errorf("frame %d: length %d exceeds remaining %d bytes", me.n, size, len(me.buf)-start))
	}
	if err := decMode().Unmarshal(me.buf[start:start+size], v); err != nil {
		return SerializationError("public values read", fmt.Errorf("frame %d: %w", me.n, err))
	}
	me.off = start + size
	me.n++
	return nil
}

// Done reports whether every frame has been consumed.
func (me *PublicValuesReader) Done() bool {
	return me.off == len(me.buf)
}

// MaskDigest clears the top bits of a 32-byte digest so that it is a valid
// scalar on every supported curve.
func MaskDigest(d [32]byte) [32]byte {
	d[0] &= DIGEST_MASK
	return d
}
