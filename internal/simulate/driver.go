// Package simulate implements the Simulation Driver of spec §4.G: it
// builds the wazero runtime, instantiates the guest component and the
// host ABI module, runs the guest's setup()/run() exports under fuel
// metering, and returns the accumulated ExecutionData.
package simulate

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/experimental"

	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/config"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/hostabi"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/recorder"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/stepper"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/track"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/pkg/options"
)

// StepPeriodUs is the default fixed step period (spec §4.D "typically
// 100 μs → 10 kHz").
const StepPeriodUs = 100

// Options configures one Run call.
type Options struct {
	StepPeriodUs uint32 // 0 defaults to StepPeriodUs
	NoiseSeed    uint64
}

// WithStepPeriodUs overrides the fixed step period.
func WithStepPeriodUs(us uint32) options.Option {
	return func(cfg interface{}) { cfg.(*Options).StepPeriodUs = us }
}

// WithNoiseSeed sets the deterministic RNG seed for sensor noise.
func WithNoiseSeed(seed uint64) options.Option {
	return func(cfg interface{}) { cfg.(*Options).NoiseSeed = seed }
}

// NewOptions builds an Options value via the functional-options
// pattern shared across this module's constructors (pkg/options).
func NewOptions(opts ...options.Option) Options {
	var o Options
	options.ApplyOptions(&o, opts...)
	return o
}

// ExecutionData is everything the driver returns for one run (spec
// §4.E/§4.G): the fixed-step trace, the accumulated log, any output
// artifacts, and the trap reason if the run aborted.
type ExecutionData struct {
	Trace []recorder.Record
	Log   []byte
	Files []recorder.FileArtifact
	Trap  *hostabi.TrapError
}

// Run executes spec §4.G's six-step driver algorithm against wasmBytes
// (a core-wasm module exporting setup() and run(), per the host_module
// doc comment's note on the absent component-model bindgen toolchain).
func Run(ctx context.Context, wasmBytes []byte, trk *track.Track, totalTimeUs uint32, opts Options) (ExecutionData, error) {
	stepPeriod := opts.StepPeriodUs
	if stepPeriod == 0 {
		stepPeriod = StepPeriodUs
	}

	rec := recorder.New()
	placeholder := stepper.NewMockStepper()
	host := hostabi.New(placeholder, stepPeriod, rec)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	meter := hostabi.NewFuelMeter(1000, cancel)
	runCtx = experimental.WithFunctionListenerFactory(runCtx, meter)

	rt := wazero.NewRuntimeWithConfig(runCtx, wazero.NewRuntimeConfig().WithCloseOnContextDone(true))
	defer rt.Close(ctx)

	if _, err := host.Instantiate(runCtx, rt); err != nil {
		return ExecutionData{}, errors.Wrap(err, "instantiating host ABI module")
	}

	guestModule, err := rt.CompileModule(runCtx, wasmBytes)
	if err != nil {
		return ExecutionData{}, errors.Wrap(err, "compiling guest component")
	}

	guest, err := rt.InstantiateModule(runCtx, guestModule, wazero.NewModuleConfig())
	if err != nil {
		return ExecutionData{}, errors.Wrap(err, "instantiating guest component")
	}
	defer guest.Close(ctx)

	// Step 3: fuel_for_time_us(1000) for setup().
	meter.Reset(1000)
	setupFn := guest.ExportedFunction("setup")
	if setupFn == nil {
		return ExecutionData{}, errors.New("guest component does not export setup()")
	}
	setupResults, err := setupFn.Call(runCtx)
	if meter.Exhausted() {
		return ExecutionData{Trap: &hostabi.TrapError{Reason: "fuel exhausted during setup()"}}, nil
	}
	if err != nil {
		return ExecutionData{}, errors.Wrap(err, "calling guest setup()")
	}
	if len(setupResults) != 2 {
		return ExecutionData{}, errors.New("setup() must return (ptr, len)")
	}
	ptr, n := uint32(setupResults[0]), uint32(setupResults[1])
	cfgBytes, ok := guest.Memory().Read(ptr, n)
	if !ok {
		return ExecutionData{}, errors.New("setup() returned an out-of-bounds buffer")
	}
	cfg, err := config.DecodeBotConfiguration(cfgBytes)
	if err != nil {
		return ExecutionData{}, errors.Wrap(err, "invalid bot configuration")
	}

	// Step 4: build the physics world from configuration and track.
	physicsStep := stepper.NewPhysicsStepper(cfg, trk, opts.NoiseSeed)
	host.SetStepper(physicsStep)

	// Step 5: fuel_for_time_us(total_time_us) for run().
	meter.Reset(totalTimeUs)
	runFn := guest.ExportedFunction("run")
	if runFn == nil {
		return ExecutionData{}, errors.New("guest component does not export run()")
	}
	_, err = runFn.Call(runCtx)

	data := ExecutionData{Trace: rec.Trace(), Log: rec.Log(), Files: rec.Files()}

	if meter.Exhausted() {
		data.Trap = &hostabi.TrapError{Reason: "fuel exhausted during run()"}
		return data, nil
	}
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("guest run() returned an error")
		data.Trap = &hostabi.TrapError{Reason: err.Error()}
		return data, nil
	}

	return data, nil
}
