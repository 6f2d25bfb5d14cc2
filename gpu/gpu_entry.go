//go:build icicle

package gpu

import (
	"fmt"
	"sync"

	icicle_runtime "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/runtime"
)

const HasIcicle = true

var warmUp = sync.OnceValue(func() error {
	if st := icicle_runtime.LoadBackendFromEnvOrDefault(); st != icicle_runtime.Success {
		return fmt.Errorf("icicle: load backend: %v", st)
	}
	dev := icicle_runtime.CreateDevice(DEVICE_TYPE, DEVICE_ID)
	if !icicle_runtime.IsDeviceAvailable(&dev) {
		return fmt.Errorf("icicle: device %s/%d not available", DEVICE_TYPE, DEVICE_ID)
	}
	if st := icicle_runtime.SetDevice(&dev); st != icicle_runtime.Success {
		return fmt.Errorf("icicle: set device: %v", st)
	}
	return nil
})

// WarmUp loads the icicle backend and selects the device once per process.
func WarmUp() error {
	return warmUp()
}
