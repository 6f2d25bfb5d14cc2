// Package gpu detects the icicle GPU backend used to accelerate Groth16 proving.
// Build with -tags icicle to enable it.
package gpu

const DEVICE_TYPE = "CUDA"
const DEVICE_ID = 0
