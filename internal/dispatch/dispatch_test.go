package dispatch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/simulate"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/track"
)

// TestSubmit_ReturnsResultForInvalidWasm checks that Submit hands work
// off to its own goroutine and reports back through the channel even
// when the job fails fast (no real wasm bytes needed to exercise the
// handoff plumbing itself).
func TestSubmit_ReturnsResultForInvalidWasm(t *testing.T) {
	trk := track.Build([]track.Segment{track.Start(), track.Straight(1), track.End()})
	job := NewJob([]byte("not a real wasm module"), trk, 1000, simulate.Options{})

	ch := Submit(context.Background(), job)

	select {
	case res := <-ch:
		require.Equal(t, job.ID, res.JobID)
		assert.Error(t, res.Err, "malformed wasm bytes must surface as an error, not a panic")
	case <-time.After(5 * time.Second):
		t.Fatal("Submit did not deliver a result in time")
	}
}

func TestNewJob_AssignsUniqueIDs(t *testing.T) {
	trk := track.Build([]track.Segment{track.Start(), track.End()})
	a := NewJob(nil, trk, 0, simulate.Options{})
	b := NewJob(nil, trk, 0, simulate.Options{})
	assert.NotEqual(t, a.ID, b.ID)
}
