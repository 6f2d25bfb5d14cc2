package host

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eon-protocol/zkattest"
	"github.com/eon-protocol/zkattest/fixtures"
	"github.com/eon-protocol/zkattest/program"
)

// Orchestrator runs one pipeline per call. Result lines go to Out, logs to the
// logger.
type Orchestrator struct {
	cfg     Config
	logger  zerolog.Logger
	out     io.Writer
	client  *zkattest.Client
	loader  *fixtures.Loader
	emitter *fixtures.Emitter
	guest   zkattest.Program
	verify  func(*zkattest.ProofWithPublicValues, *zkattest.Vk) error
}

func NewOrchestrator(cfg Config, logger zerolog.Logger, out io.Writer) *Orchestrator {
	if out == nil {
		out = os.Stdout
	}
	var srs *zkattest.SRSProvider
	if cfg.SRSDir != "" || cfg.SRSURL != "" {
		srs = &zkattest.SRSProvider{Dir: cfg.SRSDir, URL: cfg.SRSURL, SHA256: cfg.SRSSHA256, Logger: logger}
	}
	client := zkattest.NewClient(
		zkattest.WithLogger(logger),
		zkattest.WithSRS(srs),
		zkattest.WithAccelerator(cfg.Accelerator),
	)
	return &Orchestrator{
		cfg:     cfg,
		logger:  logger,
		out:     out,
		client:  client,
		loader:  fixtures.NewLoader(cfg.FixturesRoot),
		emitter: fixtures.NewEmitter(cfg.OutputDir),
		guest:   program.New(),
		verify:  client.Verify,
	}
}

type RunRequest struct {
	Mode Mode
	Size fixtures.Size
}

type RunResult struct {
	Outputs *program.PublicOutputs
	Report  *zkattest.ExecutionReport
	Proof   *zkattest.ProofWithPublicValues
}

// Run executes or proves the guest over the dataset of the requested size.
func (me *Orchestrator) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	logger := me.runLogger(req.Mode.String(), req.Size)
	stdin := zkattest.NewStdin()
	if _, err := me.loader.Fill(ctx, req.Size, stdin); err != nil {
		return nil, err
	}
	fmt.Fprintf(me.out, "zktls verification length: %d\n", int(req.Size))

	switch req.Mode {
	case ModeExecute:
		pv, report, err := me.client.Execute(ctx, me.guest, stdin)
		if err != nil {
			return nil, err
		}
		out, err := program.DecodePublicValues(pv)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(me.out, "Program executed successfully.")
		logger.Info().
			Bool("verified", out.Verified).
			Int("records", len(out.Records)).
			Msg("public values decoded")
		fmt.Fprintf(me.out, "Number of cycles: %d\n", report.TotalInstructionCount())
		return &RunResult{Outputs: out, Report: report}, nil

	case ModeProve:
		proof, _, err := me.proveAndVerify(ctx, logger, zkattest.BackendCore, stdin)
		if err != nil {
			return nil, err
		}
		out, err := program.DecodePublicValues(proof.Values())
		if err != nil {
			return nil, err
		}
		return &RunResult{Outputs: out, Proof: proof}, nil
	}
	return nil, zkattest.ConfigurationErrorf("Error: You must specify either --execute or --prove")
}

type FixtureRequest struct {
	Backend        zkattest.Backend
	Size           fixtures.Size
	ExportVerifier bool
}

type FixtureResult struct {
	Path         string
	VerifierPath string
	Fixture      *fixtures.ProofFixture
	Outputs      *program.PublicOutputs
}

// GenerateFixture proves for an on-chain backend, verifies locally and writes
// the fixture. Nothing is written unless verification succeeds.
func (me *Orchestrator) GenerateFixture(ctx context.Context, req FixtureRequest) (*FixtureResult, error) {
	if !req.Backend.OnChain() {
		return nil, zkattest.ConfigurationErrorf("Unsupported proof system: %s", req.Backend)
	}
	logger := me.runLogger("fixture", req.Size).With().Stringer("backend", req.Backend).Logger()
	stdin := zkattest.NewStdin()
	if _, err := me.loader.Fill(ctx, req.Size, stdin); err != nil {
		return nil, err
	}
	proof, vk, err := me.proveAndVerify(ctx, logger, req.Backend, stdin)
	if err != nil {
		return nil, err
	}
	out, err := program.DecodePublicValues(proof.Values())
	if err != nil {
		return nil, err
	}
	path, fx, err := me.emitter.Emit(proof, vk)
	if err != nil {
		return nil, err
	}
	res := &FixtureResult{Path: path, Fixture: fx, Outputs: out}
	if req.ExportVerifier {
		if res.VerifierPath, err = me.emitter.EmitVerifier(vk); err != nil {
			return nil, err
		}
	}
	fmt.Fprintf(me.out, "Verification Key: %s\n", fx.Vkey)
	fmt.Fprintf(me.out, "Public Values: %s\n", fx.PublicValues)
	fmt.Fprintf(me.out, "Proof Bytes: %s\n", fx.Proof)
	logger.Info().Str("path", path).Bool("verified", out.Verified).Msg("fixture written")
	return res, nil
}

// VerifyingKey sets up the guest under b and returns its program vkey.
func (me *Orchestrator) VerifyingKey(ctx context.Context, b zkattest.Backend) (*zkattest.Vk, error) {
	_, vk, err := me.client.Setup(ctx, me.guest, b)
	if err != nil {
		return nil, err
	}
	return vk, nil
}

func (me *Orchestrator) proveAndVerify(ctx context.Context, logger zerolog.Logger, b zkattest.Backend, stdin *zkattest.Stdin) (*zkattest.ProofWithPublicValues, *zkattest.Vk, error) {
	pk, vk, err := me.client.Setup(ctx, me.guest, b)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Str("vkey", vk.Bytes32()).Int("constraints", pk.NbConstraints()).Msg("keys derived")
	proof, err := me.client.Prove(ctx, pk, stdin)
	if err != nil {
		return nil, nil, err
	}
	fmt.Fprintln(me.out, "Successfully generated proof!")
	if err := me.verify(proof, vk); err != nil {
		logger.Error().Err(err).Msg("local verification failed")
		return nil, nil, err
	}
	fmt.Fprintln(me.out, "Successfully verified proof!")
	return proof, vk, nil
}

func (me *Orchestrator) runLogger(mode string, size fixtures.Size) zerolog.Logger {
	return me.logger.With().
		Str("run", uuid.NewString()).
		Str("mode", mode).
		Stringer("size", size).
		Logger()
}
