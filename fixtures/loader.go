package fixtures

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/eon-protocol/zkattest"
	"github.com/eon-protocol/zkattest/attestation"
	"github.com/eon-protocol/zkattest/program"
)

const (
	DEFAULT_ROOT     = "fixtures/zktls"
	GENERATE_COMMAND = "go run ./tools/generate_datasets"
)

// Loader reads benchmark inputs from a fixture root directory.
type Loader struct {
	Root string
}

func NewLoader(root string) *Loader {
	if root == "" {
		root = DEFAULT_ROOT
	}
	return &Loader{Root: root}
}

// Load returns the shared verifying key and the dataset for size. The key is
// returned byte-for-byte as stored.
func (me *Loader) Load(ctx context.Context, size Size) (*program.Inputs, error) {
	src, err := size.Source()
	if err != nil {
		return nil, err
	}
	var key, doc []byte
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		key, err = me.read(src.KeyPath)
		return
	})
	g.Go(func() (err error) {
		doc, err = me.read(src.DataPath)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(key)) == 0 {
		return nil, zkattest.IOError("load "+src.KeyPath, errors.New("verifying key is empty"))
	}
	if err := validate(doc); err != nil {
		return nil, zkattest.IOError("load "+src.DataPath, err)
	}
	ds := new(attestation.DataSet)
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.DisallowUnknownFields()
	if err := dec.Decode(ds); err != nil {
		return nil, zkattest.IOError("load "+src.DataPath, err)
	}
	if len(ds.Records) != int(size) {
		return nil, zkattest.IOError("load "+src.DataPath, fmt.Errorf("expected %d records, found %d", int(size), len(ds.Records)))
	}
	return &program.Inputs{VerifyingKey: string(key), DataSet: ds}, nil
}

// Fill loads size and writes it to stdin through the guest input schema.
func (me *Loader) Fill(ctx context.Context, size Size, stdin *zkattest.Stdin) (*program.Inputs, error) {
	in, err := me.Load(ctx, size)
	if err != nil {
		return nil, err
	}
	if err := in.Write(stdin); err != nil {
		return nil, err
	}
	return in, nil
}

func (me *Loader) read(rel string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(me.Root, rel))
	if errors.Is(err, os.ErrNotExist) {
		return nil, zkattest.IOError("load "+rel, fmt.Errorf("%w (run %q)", err, GENERATE_COMMAND))
	}
	if err != nil {
		return nil, zkattest.IOError("load "+rel, err)
	}
	return b, nil
}
