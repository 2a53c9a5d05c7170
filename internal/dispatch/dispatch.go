// Package dispatch models the one-shot worker handoff from spec §5:
// "the HTTP intake... hands a frozen byte buffer to a worker thread
// that runs a whole simulation in isolation and sends the result back
// through a one-shot channel." HTTP framing itself is out of scope
// (spec §1 Non-goals); this package is the handoff primitive an intake
// layer would sit in front of, grounded on the original source's
// server worker-pool shape (sim/sim/src/server/mod.rs) translated into
// a goroutine-per-job, channel-per-result Go idiom.
package dispatch

import (
	"context"

	"github.com/google/uuid"

	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/simulate"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/track"
)

// Job is one simulation request: an immutable, already-validated byte
// buffer plus the parameters Run needs (spec §5 "an immutable byte
// buffer and an owned channel sender").
type Job struct {
	ID           uuid.UUID
	WasmBytes    []byte
	Track        *track.Track
	TotalTimeUs  uint32
	Options      simulate.Options
}

// Result pairs a job's ID with its outcome so a caller juggling many
// in-flight jobs can match results back up.
type Result struct {
	JobID uuid.UUID
	Data  simulate.ExecutionData
	Err   error
}

// NewJob stamps a fresh job ID onto the given parameters.
func NewJob(wasmBytes []byte, trk *track.Track, totalTimeUs uint32, opts simulate.Options) Job {
	return Job{
		ID:          uuid.New(),
		WasmBytes:   wasmBytes,
		Track:       trk,
		TotalTimeUs: totalTimeUs,
		Options:     opts,
	}
}

// Submit runs job on its own goroutine in isolation from the caller and
// returns a channel that receives exactly one Result. The channel is
// buffered by one so the worker goroutine never blocks on a caller that
// stops listening (e.g. because ctx was cancelled).
func Submit(ctx context.Context, job Job) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		data, err := simulate.Run(ctx, job.WasmBytes, job.Track, job.TotalTimeUs, job.Options)
		out <- Result{JobID: job.ID, Data: data, Err: err}
	}()
	return out
}
