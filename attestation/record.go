// Package attestation verifies zkTLS attestation records: facts about TLS
// sessions signed by an attestor's secp256k1 key.
package attestation

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

const RECORD_DOMAIN = "zkattest/record/v1"

// Record is a single attested claim about one TLS session.
type Record struct {
	ID        uint64 `json:"id" cbor:"1,keyasint"`
	Session   string `json:"session" cbor:"2,keyasint"`
	Host      string `json:"host" cbor:"3,keyasint"`
	Claim     string `json:"claim" cbor:"4,keyasint"`
	Timestamp uint64 `json:"timestamp" cbor:"5,keyasint"`
	Signature string `json:"signature" cbor:"6,keyasint"`
}

// Records is the ordered collection exposed as a public value.
type Records []Record

// SigningDigest is keccak256 over the domain tag and the length-prefixed
// fields of r, excluding the signature.
func (r *Record) SigningDigest() []byte {
	var num [8]byte
	buf := make([]byte, 0, len(RECORD_DOMAIN)+64+len(r.Session)+len(r.Host)+len(r.Claim))
	buf = append(buf, RECORD_DOMAIN...)
	binary.BigEndian.PutUint64(num[:], r.ID)
	buf = append(buf, num[:]...)
	for _, s := range []string{r.Session, r.Host, r.Claim} {
		binary.BigEndian.PutUint64(num[:], uint64(len(s)))
		buf = append(buf, num[:]...)
		buf = append(buf, s...)
	}
	binary.BigEndian.PutUint64(num[:], r.Timestamp)
	buf = append(buf, num[:]...)
	return crypto.Keccak256(buf)
}

func (r *Record) signatureBytes() ([]byte, error) {
	return hexutil.Decode(r.Signature)
}
