// Package fixtures resolves benchmark dataset sizes to their input sources,
// loads them into the guest input stream and emits proof fixtures.
package fixtures

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/eon-protocol/zkattest"
)

// Size is the number of attestation records in a benchmark dataset.
type Size int

const (
	Size16   Size = 16
	Size256  Size = 256
	Size1024 Size = 1024
	Size2048 Size = 2048
)

const DEFAULT_SIZE = Size16

const KEY_FILE = "verifying_k256.key"
const DATA_DIR = "data"

// Source names the two files a size is loaded from, relative to the fixture
// root.
type Source struct {
	KeyPath  string
	DataPath string
}

var SOURCES = map[Size]Source{
	Size16:   source(Size16),
	Size256:  source(Size256),
	Size1024: source(Size1024),
	Size2048: source(Size2048),
}

func source(s Size) Source {
	return Source{
		KeyPath:  KEY_FILE,
		DataPath: filepath.Join(DATA_DIR, fmt.Sprintf("bench%d.json", int(s))),
	}
}

// Sizes lists the supported sizes in ascending order.
func Sizes() []Size {
	return []Size{Size16, Size256, Size1024, Size2048}
}

func ParseSize(n int) (Size, error) {
	s := Size(n)
	if _, ok := SOURCES[s]; !ok {
		return 0, zkattest.ConfigurationErrorf("Unsupported length: %d", n)
	}
	return s, nil
}

func (s Size) Source() (Source, error) {
	src, ok := SOURCES[s]
	if !ok {
		return Source{}, zkattest.ConfigurationErrorf("Unsupported length: %d", int(s))
	}
	return src, nil
}

func (s Size) String() string {
	return strconv.Itoa(int(s))
}
