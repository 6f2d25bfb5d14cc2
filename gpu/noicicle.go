//go:build !icicle

package gpu

import "errors"

const HasIcicle = false

func WarmUp() error {
	return errors.New("icicle requested but program compiled without 'icicle' build tag")
}
