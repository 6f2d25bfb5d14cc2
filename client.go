package zkattest

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eon-protocol/zkattest/circuits/binding"
)

// Client drives guest programs: native execution, key setup, proving and
// local verification.
type Client struct {
	logger      zerolog.Logger
	srs         *SRSProvider
	accelerator string
}

type Option func(*Client)

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithSRS(p *SRSProvider) Option {
	return func(c *Client) { c.srs = p }
}

// WithAccelerator selects a prover accelerator; only "icicle" is recognised.
func WithAccelerator(name string) Option {
	return func(c *Client) { c.accelerator = name }
}

func NewClient(opts ...Option) *Client {
	c := &Client{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ExecutionReport summarises one native run of a guest.
type ExecutionReport struct {
	Cycles          uint64
	InputFrames     int
	PublicValuesLen int
	ExecutionDigest [32]byte
}

func (r *ExecutionReport) TotalInstructionCount() uint64 {
	return r.Cycles
}

// Execute runs p over stdin without proving.
func (c *Client) Execute(ctx context.Context, p Program, stdin *Stdin) (*PublicValues, *ExecutionReport, error) {
	env, err := c.run(ctx, p, stdin)
	if err != nil {
		return nil, nil, err
	}
	report := &ExecutionReport{
		Cycles:          env.cycles,
		InputFrames:     len(env.frames),
		PublicValuesLen: env.public.Len(),
		ExecutionDigest: env.traceDigest(),
	}
	return NewPublicValues(env.public.Bytes()), report, nil
}

// Setup derives a fresh proving/verifying key pair for p under b.
func (c *Client) Setup(ctx context.Context, p Program, b Backend) (*Pk, *Vk, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	start := time.Now()
	var pk Pk
	if err := pk.compile(p, b, c.srs); err != nil {
		return nil, nil, err
	}
	c.logger.Debug().
		Str("program", p.ID()).
		Stringer("backend", b).
		Int("constraints", pk.NbConstraints()).
		Dur("took", time.Since(start)).
		Msg("setup done")
	return &pk, pk.Vk(), nil
}

// Prove executes the guest of pk over stdin and proves the resulting public
// values under pk's backend.
func (c *Client) Prove(ctx context.Context, pk *Pk, stdin *Stdin) (*ProofWithPublicValues, error) {
	env, err := c.run(ctx, pk.program, stdin)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	st := &binding.Statement{
		VkeyHash:              pk.vk.vkeyHash,
		CommittedValuesDigest: env.public.Digest(),
		ExecutionDigest:       env.traceDigest(),
	}
	proof, err := pk.prove(st, env.public.Bytes(), c.proverOptions(pk.backend)...)
	if err != nil {
		return nil, err
	}
	c.logger.Debug().
		Stringer("backend", pk.backend).
		Int("proof_size", len(proof.Proof)).
		Dur("took", time.Since(start)).
		Msg("proof generated")
	return proof, nil
}

// Verify checks proof against vk.
func (c *Client) Verify(proof *ProofWithPublicValues, vk *Vk) error {
	if err := vk.Verify(proof); err != nil {
		c.logger.Error().Err(err).Stringer("backend", vk.backend).Msg("proof rejected")
		return err
	}
	return nil
}

func (c *Client) run(ctx context.Context, p Program, stdin *Stdin) (*Env, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := newEnv(stdin)
	if err := p.Run(env); err != nil {
		return nil, fmt.Errorf("execute %s: %w", p.ID(), err)
	}
	if n := env.unread(); n != 0 {
		return nil, SerializationError("execute "+p.ID(), fmt.Errorf("guest left %d input frames unread", n))
	}
	c.logger.Debug().
		Str("program", p.ID()).
		Uint64("cycles", env.cycles).
		Int("public_values", env.public.Len()).
		Msg("guest executed")
	return env, nil
}
