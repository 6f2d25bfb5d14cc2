package zkattest

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"hash"
)

// Program is a guest executed by the runtime. Run must be deterministic: it
// may only talk to the outside world through env.
type Program interface {
	// ID names the program image. The program verifying key is derived from it.
	ID() string
	Run(env *Env) error
}

// ProgramDigest is the 32-byte identity of a program, the value exposed as the
// fixture vkey.
func ProgramDigest(p Program) [32]byte {
	h := sha256.New()
	h.Write([]byte(PROGRAM_DOMAIN))
	h.Write([]byte{0})
	h.Write([]byte(p.ID()))
	var out [32]byte
	h.Sum(out[:0])
	return MaskDigest(out)
}

// Env is the guest side of the runtime: the input stream cursor, the public
// values being committed, a cycle meter and the execution transcript.
type Env struct {
	frames [][]byte
	cursor int
	public PublicValues
	cycles uint64
	trace  hash.Hash
}

func newEnv(stdin *Stdin) *Env {
	env := &Env{frames: stdin.clone(), trace: sha256.New()}
	env.trace.Write([]byte(TRACE_DOMAIN))
	return env
}

// Read decodes the next input frame into v. Reading past the end of the
// stream, or into a type that does not match the frame, fails the run.
func (me *Env) Read(v any) error {
	if me.cursor >= len(me.frames) {
		return SerializationError("guest read", fmt.Errorf("input stream exhausted after %d frames", len(me.frames)))
	}
	frame := me.frames[me.cursor]
	if err := decMode().Unmarshal(frame, v); err != nil {
		return SerializationError("guest read", fmt.Errorf("frame %d: %w", me.cursor, err))
	}
	me.cursor++
	me.record(TRACE_READ, frame)
	me.Charge(CYCLES_PER_FRAME + CYCLES_PER_BYTE*uint64(len(frame)))
	return nil
}

// Commit appends v to the public values.
func (me *Env) Commit(v any) error {
	frame, err := encMode().Marshal(v)
	if err != nil {
		return SerializationError("guest commit", err)
	}
	me.public.append(frame)
	me.record(TRACE_COMMIT, frame)
	me.Charge(CYCLES_PER_FRAME + CYCLES_PER_BYTE*uint64(len(frame)))
	return nil
}

// Charge adds n cycles to the meter.
func (me *Env) Charge(n uint64) {
	me.cycles += n
}

func (me *Env) Cycles() uint64 {
	return me.cycles
}

func (me *Env) record(tag byte, frame []byte) {
	var hdr [5]byte
	hdr[0] = tag
	binary.BigEndian.PutUint32(hdr[1:], uint32(len(frame)))
	me.trace.Write(hdr[:])
	me.trace.Write(frame)
}

func (me *Env) unread() int {
	return len(me.frames) - me.cursor
}

// traceDigest seals the transcript with the final cycle count.
func (me *Env) traceDigest() [32]byte {
	var tail [9]byte
	tail[0] = TRACE_CHARGE
	binary.BigEndian.PutUint64(tail[1:], me.cycles)
	h := sha256.New()
	h.Write(me.trace.Sum(nil))
	h.Write(tail[:])
	var out [32]byte
	h.Sum(out[:0])
	return MaskDigest(out)
}
