package fixtures

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/eon-protocol/zkattest"
	"github.com/eon-protocol/zkattest/attestation"
)

const DEFAULT_SEED = "zkattest benchmark attestor"

// WriteDatasets writes the shared key and one signed dataset per size under
// root, in the layout Loader reads.
func WriteDatasets(root string, signer *attestation.Signer, sizes ...Size) error {
	if len(sizes) == 0 {
		sizes = Sizes()
	}
	if err := os.MkdirAll(filepath.Join(root, DATA_DIR), 0o755); err != nil {
		return zkattest.IOError("write datasets", err)
	}
	if err := os.WriteFile(filepath.Join(root, KEY_FILE), []byte(signer.VerifyingKey()+"\n"), 0o644); err != nil {
		return zkattest.IOError("write "+KEY_FILE, err)
	}
	for _, size := range sizes {
		src, err := size.Source()
		if err != nil {
			return err
		}
		ds, err := signer.BuildDataSet(int(size))
		if err != nil {
			return err
		}
		doc, err := json.MarshalIndent(ds, "", "  ")
		if err != nil {
			return zkattest.SerializationError("encode "+src.DataPath, err)
		}
		if err := os.WriteFile(filepath.Join(root, src.DataPath), doc, 0o644); err != nil {
			return zkattest.IOError("write "+src.DataPath, err)
		}
	}
	return nil
}
