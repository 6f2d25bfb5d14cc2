package zkattest

import (
	"github.com/consensys/gnark/backend"

	"github.com/eon-protocol/zkattest/gpu"
)

// proverOptions routes Groth16 proving to icicle when requested and available.
func (c *Client) proverOptions(b Backend) []backend.ProverOption {
	if c.accelerator != "icicle" {
		return nil
	}
	if b != BackendGroth16 {
		c.logger.Warn().Stringer("backend", b).Msg("icicle acceleration is only wired for groth16; proving on cpu")
		return nil
	}
	if err := gpu.WarmUp(); err != nil {
		c.logger.Warn().Err(err).Msg("proving on cpu")
		return nil
	}
	return []backend.ProverOption{backend.WithIcicleAcceleration()}
}
