package fixtures

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/eon-protocol/zkattest"
)

const DEFAULT_OUTPUT_DIR = "contracts/src/fixtures"

// ProofFixture is what downstream contract tests consume for one backend.
type ProofFixture struct {
	Vkey         string `json:"vkey"`
	Proof        string `json:"proof"`
	PublicValues string `json:"publicValues"`
}

// NewProofFixture projects a verified proof and its key into a fixture.
func NewProofFixture(proof *zkattest.ProofWithPublicValues, vk *zkattest.Vk) (*ProofFixture, error) {
	raw, err := proof.Bytes()
	if err != nil {
		return nil, err
	}
	return &ProofFixture{
		Vkey:         vk.Bytes32(),
		Proof:        hexutil.Encode(raw),
		PublicValues: hexutil.Encode(proof.PublicValues),
	}, nil
}

// Emitter writes fixtures under Dir, one file per backend. A write replaces
// whatever was there before.
type Emitter struct {
	Dir string
}

func NewEmitter(dir string) *Emitter {
	if dir == "" {
		dir = DEFAULT_OUTPUT_DIR
	}
	return &Emitter{Dir: dir}
}

func (me *Emitter) Path(b zkattest.Backend) string {
	return filepath.Join(me.Dir, b.String()+"-fixture.json")
}

// Emit writes the fixture for proof and returns its path.
func (me *Emitter) Emit(proof *zkattest.ProofWithPublicValues, vk *zkattest.Vk) (string, *ProofFixture, error) {
	fx, err := NewProofFixture(proof, vk)
	if err != nil {
		return "", nil, err
	}
	doc, err := json.MarshalIndent(fx, "", "  ")
	if err != nil {
		return "", nil, zkattest.SerializationError("encode fixture", err)
	}
	path := me.Path(proof.Backend)
	if err := me.write(path, append(doc, '\n')); err != nil {
		return "", nil, err
	}
	return path, fx, nil
}

// EmitVerifier writes the Solidity verifier of vk next to the fixtures.
func (me *Emitter) EmitVerifier(vk *zkattest.Vk) (string, error) {
	var buf bytes.Buffer
	if err := vk.ExportSolidity(&buf); err != nil {
		return "", err
	}
	name := vk.Backend().String()
	path := filepath.Join(me.Dir, fmt.Sprintf("%s%sVerifier.sol", strings.ToUpper(name[:1]), name[1:]))
	if err := me.write(path, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

func (me *Emitter) write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zkattest.IOError("emit "+path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return zkattest.IOError("emit "+path, err)
	}
	return nil
}

// ReadProofFixture loads a fixture written by Emit.
func ReadProofFixture(path string) (*ProofFixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, zkattest.IOError("read fixture", err)
	}
	fx := new(ProofFixture)
	if err := json.Unmarshal(raw, fx); err != nil {
		return nil, zkattest.SerializationError("decode fixture", err)
	}
	return fx, nil
}
