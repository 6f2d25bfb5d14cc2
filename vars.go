package zkattest

import (
	"github.com/consensys/gnark-crypto/ecc"
)

// Length of the big-endian size prefix in front of every public-values frame.
const FRAME_HEADER = 4

// Upper bound on one length-prefixed chunk of a serialized proof.
const MAX_CHUNK = 64 << 20

// Cycle costs charged by the execution meter.
const CYCLES_PER_FRAME = 64
const CYCLES_PER_BYTE = 4
const CYCLES_PER_RECORD = 12_000

// Digests exposed as public inputs keep only the low 253 bits so that they fit
// both the BN254 and the BLS12-381 scalar fields.
const DIGEST_MASK = 0x1f

const PROGRAM_DOMAIN = "zkattest/program/v1"
const TRACE_DOMAIN = "zkattest/trace/v1"

// Tags mixed into the execution transcript.
const (
	TRACE_READ   byte = 'r'
	TRACE_COMMIT byte = 'c'
	TRACE_CHARGE byte = 'x'
)

var FIELD_BN254 = ecc.BN254.ScalarField()
var FIELD_BLS12_381 = ecc.BLS12_381.ScalarField()

// Default on-disk SRS names, one per curve, under the configured SRS directory.
var SRS_FILES = map[ecc.ID]string{
	ecc.BN254:     "srs.bn254.bin",
	ecc.BLS12_381: "srs.bls12-381.bin",
}
