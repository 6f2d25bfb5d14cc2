package zkattest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/consensys/gnark-crypto/ecc"
	kzgbls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	kzgbn254 "github.com/consensys/gnark-crypto/ecc/bn254/kzg"
	"github.com/consensys/gnark-crypto/kzg"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/test/unsafekzg"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

// SRSProvider resolves the KZG setup for PLONK backends.
//
// With Dir set, the canonical SRS is read from Dir/SRS_FILES[curve] and checked
// against SHA256 when one is configured. A missing or mismatching file is
// downloaded from URL when set. With neither Dir nor URL, a development SRS is
// generated locally; it is not suitable for production verifiers.
type SRSProvider struct {
	Dir    string
	URL    string
	SHA256 string
	Logger zerolog.Logger
}

func (me *SRSProvider) Load(ccs constraint.ConstraintSystem, curve ecc.ID) (kzg.SRS, kzg.SRS, error) {
	if me == nil || (me.Dir == "" && me.URL == "") {
		canonical, lagrange, err := unsafekzg.NewSRS(ccs)
		if err != nil {
			return nil, nil, fmt.Errorf("generate development srs: %w", err)
		}
		return canonical, lagrange, nil
	}
	sizeCanonical, sizeLagrange := plonk.SRSSize(ccs)
	raw, err := me.read(curve)
	if err != nil {
		return nil, nil, err
	}
	switch curve {
	case ecc.BN254:
		var srs kzgbn254.SRS
		if _, err := srs.ReadFrom(bytes.NewReader(raw)); err != nil {
			return nil, nil, SerializationError("decode srs", err)
		}
		if len(srs.Pk.G1) < sizeCanonical {
			return nil, nil, fmt.Errorf("srs too small: %d < %d", len(srs.Pk.G1), sizeCanonical)
		}
		lagrange := kzgbn254.SRS{Vk: srs.Vk}
		if lagrange.Pk.G1, err = kzgbn254.ToLagrangeG1(srs.Pk.G1[:sizeLagrange]); err != nil {
			return nil, nil, err
		}
		srs.Pk.G1 = srs.Pk.G1[:sizeCanonical]
		return &srs, &lagrange, nil
	case ecc.BLS12_381:
		var srs kzgbls12381.SRS
		if _, err := srs.ReadFrom(bytes.NewReader(raw)); err != nil {
			return nil, nil, SerializationError("decode srs", err)
		}
		if len(srs.Pk.G1) < sizeCanonical {
			return nil, nil, fmt.Errorf("srs too small: %d < %d", len(srs.Pk.G1), sizeCanonical)
		}
		lagrange := kzgbls12381.SRS{Vk: srs.Vk}
		if lagrange.Pk.G1, err = kzgbls12381.ToLagrangeG1(srs.Pk.G1[:sizeLagrange]); err != nil {
			return nil, nil, err
		}
		srs.Pk.G1 = srs.Pk.G1[:sizeCanonical]
		return &srs, &lagrange, nil
	}
	return nil, nil, fmt.Errorf("no srs for curve %s", curve)
}

func (me *SRSProvider) read(curve ecc.ID) ([]byte, error) {
	name, ok := SRS_FILES[curve]
	if !ok {
		return nil, fmt.Errorf("no srs for curve %s", curve)
	}
	path := filepath.Join(me.Dir, name)
	raw, err := os.ReadFile(path)
	if err == nil && me.matches(raw) {
		return raw, nil
	}
	if me.URL == "" {
		if err == nil {
			err = errors.New("sha256 mismatch")
		}
		return nil, IOError("read srs "+path, err)
	}
	me.Logger.Info().Str("path", path).Msg("local srs cache not found; downloading ...")
	url := strings.TrimSuffix(me.URL, "/") + "/" + name
	if raw, err = me.download(url); err != nil {
		return nil, IOError("download srs", err)
	}
	if !me.matches(raw) {
		return nil, IOError("download srs", errors.New("sha256 mismatch"))
	}
	if me.Dir != "" {
		if err := os.MkdirAll(me.Dir, 0o755); err != nil {
			return nil, IOError("cache srs", err)
		}
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return nil, IOError("cache srs", err)
		}
	}
	return raw, nil
}

func (me *SRSProvider) matches(raw []byte) bool {
	if me.SHA256 == "" {
		return true
	}
	sum := sha256.Sum256(raw)
	return strings.EqualFold(hex.EncodeToString(sum[:]), me.SHA256)
}

func (me *SRSProvider) download(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	var buf bytes.Buffer
	bar := progressbar.DefaultBytes(resp.ContentLength, "Downloading SRS")
	if _, err := io.Copy(io.MultiWriter(&buf, bar), resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
