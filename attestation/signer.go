package attestation

import (
	"crypto/ecdsa"
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

const BASE_TIMESTAMP = 1_700_000_000

var HOSTS = []string{
	"api.github.com",
	"www.binance.com",
	"accounts.google.com",
	"api.twitter.com",
}

// Signer is an attestor key used to produce benchmark datasets. Signatures
// are RFC 6979 deterministic, so identical seeds give identical datasets.
type Signer struct {
	key *ecdsa.PrivateKey
}

func NewSigner(seed string) (*Signer, error) {
	key, err := crypto.ToECDSA(crypto.Keccak256([]byte(seed)))
	if err != nil {
		return nil, fmt.Errorf("derive attestor key: %w", err)
	}
	return &Signer{key: key}, nil
}

// VerifyingKey is the compressed public key, 0x-prefixed hex.
func (me *Signer) VerifyingKey() string {
	return hexutil.Encode(crypto.CompressPubkey(&me.key.PublicKey))
}

func (me *Signer) Address() string {
	return crypto.PubkeyToAddress(me.key.PublicKey).Hex()
}

// Sign fills r.Signature.
func (me *Signer) Sign(r *Record) error {
	sig, err := crypto.Sign(r.SigningDigest(), me.key)
	if err != nil {
		return fmt.Errorf("sign record %d: %w", r.ID, err)
	}
	r.Signature = hexutil.Encode(sig)
	return nil
}

// BuildDataSet returns a signed dataset of n records.
func (me *Signer) BuildDataSet(n int) (*DataSet, error) {
	records := make(Records, n)
	var id [8]byte
	for i := range records {
		binary.BigEndian.PutUint64(id[:], uint64(i))
		session := crypto.Keccak256(crypto.FromECDSAPub(&me.key.PublicKey), id[:])
		records[i] = Record{
			ID:        uint64(i),
			Session:   hexutil.Encode(session[:16]),
			Host:      HOSTS[i%len(HOSTS)],
			Claim:     fmt.Sprintf(`{"status":200,"path":"/v1/resource/%d"}`, i),
			Timestamp: BASE_TIMESTAMP + uint64(i)*60,
		}
		if err := me.Sign(&records[i]); err != nil {
			return nil, err
		}
	}
	return me.Seal(records), nil
}

// Seal wraps records into a dataset with the attestor and root filled in.
func (me *Signer) Seal(records Records) *DataSet {
	root := ComputeRoot(records)
	return &DataSet{
		Version:     VERSION,
		Attestor:    me.Address(),
		Records:     records,
		RecordsRoot: hexutil.Encode(root[:]),
	}
}
