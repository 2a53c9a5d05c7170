package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/config"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/simulate"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/pkg/logging"
)

func main() {
	wasmPath := flag.String("wasm", "", "Path to the guest component's wasm bytes")
	trackPath := flag.String("track", "", "Path to a YAML track description")
	totalTimeUs := flag.Uint("time", 3_000_000, "Total simulated time, in microseconds")
	stepPeriodUs := flag.Uint("step", simulate.StepPeriodUs, "Fixed physics step period, in microseconds")
	seed := flag.Uint64("seed", 1, "Deterministic RNG seed for sensor noise")
	outDir := flag.String("out", "", "Directory to write the log and output artifacts to (if empty, only the log is written, to stdout)")

	flag.Parse()

	if *wasmPath == "" || *trackPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: simulate -wasm <guest.wasm> -track <track.yaml> [-time us] [-out dir]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	wasmBytes, err := os.ReadFile(*wasmPath)
	if err != nil {
		logging.Log.Error().Err(err).Str("path", *wasmPath).Msg("reading guest component")
		os.Exit(1)
	}

	trackBytes, err := os.ReadFile(*trackPath)
	if err != nil {
		logging.Log.Error().Err(err).Str("path", *trackPath).Msg("reading track description")
		os.Exit(1)
	}
	trk, err := config.LoadTrack(trackBytes)
	if err != nil {
		logging.Log.Error().Err(err).Msg("parsing track description")
		os.Exit(1)
	}

	opts := simulate.NewOptions(
		simulate.WithStepPeriodUs(uint32(*stepPeriodUs)),
		simulate.WithNoiseSeed(*seed),
	)

	logging.Log.Info().
		Uint("total_time_us", *totalTimeUs).
		Uint("step_period_us", *stepPeriodUs).
		Msg("starting simulation")

	data, err := simulate.Run(ctx, wasmBytes, trk, uint32(*totalTimeUs), opts)
	if err != nil {
		logging.Log.Error().Err(err).Msg("simulation failed")
		os.Exit(1)
	}
	if data.Trap != nil {
		logging.Log.Warn().Str("reason", data.Trap.Reason).Msg("guest trapped")
	}

	logging.Log.Info().Int("steps", len(data.Trace)).Int("files", len(data.Files)).Msg("simulation finished")

	if *outDir == "" {
		os.Stdout.Write(data.Log)
		return
	}

	if err := writeOutputs(*outDir, data); err != nil {
		logging.Log.Error().Err(err).Msg("writing outputs")
		os.Exit(1)
	}
}

func writeOutputs(dir string, data simulate.ExecutionData) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "run.log"), data.Log, 0o644); err != nil {
		return err
	}
	for _, f := range data.Files {
		if err := os.WriteFile(filepath.Join(dir, f.Name), f.Bytes, 0o644); err != nil {
			return err
		}
	}
	return nil
}
