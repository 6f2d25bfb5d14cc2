package attestation

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

const VERSION = 1

var (
	ErrInvalidKey       = errors.New("invalid verifying key")
	ErrVersion          = errors.New("unsupported dataset version")
	ErrEmpty            = errors.New("dataset has no records")
	ErrRootMismatch     = errors.New("records root mismatch")
	ErrAttestor         = errors.New("attestor does not match verifying key")
	ErrInvalidSignature = errors.New("invalid record signature")
)

// DataSet is a batch of attestation records plus the material needed to check
// them as a whole.
type DataSet struct {
	Version     uint32  `json:"version" cbor:"1,keyasint"`
	Attestor    string  `json:"attestor" cbor:"2,keyasint"`
	Records     Records `json:"records" cbor:"3,keyasint"`
	RecordsRoot string  `json:"records_root" cbor:"4,keyasint"`
}

// RecordError reports the first record that failed verification.
type RecordError struct {
	Index int
	ID    uint64
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (id %d): %v", e.Index, e.ID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// GetRecords returns the record collection in dataset order.
func (ds *DataSet) GetRecords() Records {
	return ds.Records
}

// Verify checks every record signature against key and the auxiliary root. It
// is pure and deterministic.
func (ds *DataSet) Verify(key string) error {
	pub, err := ParseVerifyingKey(key)
	if err != nil {
		return err
	}
	if ds.Version != VERSION {
		return fmt.Errorf("%w: %d", ErrVersion, ds.Version)
	}
	if len(ds.Records) == 0 {
		return ErrEmpty
	}
	if ds.Attestor != "" && !strings.EqualFold(ds.Attestor, crypto.PubkeyToAddress(*pub).Hex()) {
		return fmt.Errorf("%w: %s", ErrAttestor, ds.Attestor)
	}
	root := ComputeRoot(ds.Records)
	if !strings.EqualFold(ds.RecordsRoot, hexutil.Encode(root[:])) {
		return fmt.Errorf("%w: have %s, computed %s", ErrRootMismatch, ds.RecordsRoot, hexutil.Encode(root[:]))
	}
	compressed := crypto.CompressPubkey(pub)
	for i := range ds.Records {
		r := &ds.Records[i]
		sig, err := r.signatureBytes()
		if err != nil || len(sig) != crypto.SignatureLength {
			return &RecordError{Index: i, ID: r.ID, Err: ErrInvalidSignature}
		}
		if !crypto.VerifySignature(compressed, r.SigningDigest(), sig[:crypto.RecoveryIDOffset]) {
			return &RecordError{Index: i, ID: r.ID, Err: ErrInvalidSignature}
		}
	}
	return nil
}

// ComputeRoot chains sha256 over every record's signing digest, in order.
func ComputeRoot(records Records) [32]byte {
	var acc [32]byte
	for i := range records {
		h := sha256.New()
		h.Write(acc[:])
		h.Write(records[i].SigningDigest())
		h.Sum(acc[:0])
	}
	return acc
}

// ParseVerifyingKey decodes a hex secp256k1 public key, compressed or not,
// with or without 0x, ignoring surrounding whitespace.
func ParseVerifyingKey(key string) (*ecdsa.PublicKey, error) {
	raw := common.FromHex(strings.TrimSpace(key))
	switch len(raw) {
	case 33:
		pub, err := crypto.DecompressPubkey(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		return pub, nil
	case 65:
		pub, err := crypto.UnmarshalPubkey(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		return pub, nil
	}
	return nil, fmt.Errorf("%w: %d bytes", ErrInvalidKey, len(raw))
}

// Equal reports whether two record collections are identical.
func (rs Records) Equal(other Records) bool {
	if len(rs) != len(other) {
		return false
	}
	for i := range rs {
		a, b := &rs[i], &other[i]
		if *a != *b {
			return false
		}
	}
	return true
}
