package track

import (
	"testing"

	math32 "github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/mathutil"
)

// TestTrack_ChainClosure checks invariant §8.1: the distance between the
// last origin and the End tip equals TipLength within 1 micron.
func TestTrack_ChainClosure(t *testing.T) {
	tr := Build([]Segment{
		Start(),
		Straight(2.0),
		NinetyDegTurn(0.3, SideLeft),
		Straight(0.5),
		End(),
	})

	last := len(tr.Segments) - 1
	endOrigin := tr.Origins[last]
	endTip := tr.EndPose()

	got := endOrigin.Pos.Distance(endTip.Pos)
	// The End segment itself spans TipLength, so the distance between
	// its own origin and its own end pose must be exactly TipLength.
	assert.InDelta(t, TipLength, got, 1e-6, "End segment span should equal TipLength")
}

// TestTrack_ArcSymmetry checks invariant §8.2: a left turn followed by
// an equal-angle right turn restores heading and places the endpoint on
// the starting heading axis.
func TestTrack_ArcSymmetry(t *testing.T) {
	const radius = 0.5
	const angle = math32.Pi / 4

	tr := Build([]Segment{
		Start(),
		CircleTurn(radius, angle, SideLeft),
		CircleTurn(radius, angle, SideRight),
		End(),
	})

	endOrigin := tr.Origins[len(tr.Segments)-1]
	require.InDelta(t, 0, endOrigin.Heading, 1e-4, "heading should be restored to its initial value")
	assert.InDelta(t, 0, endOrigin.Pos.X, 1e-4, "endpoint should sit on the starting heading axis")
}

// TestTrack_SignedDistanceStraight checks that a straight segment's
// signed distance is simply the local x coordinate.
func TestTrack_SignedDistanceStraight(t *testing.T) {
	tr := Build([]Segment{Start(), Straight(1.0), End()})

	onAxis := tr.Origins[1].TranslateInDirection(mathutil.Vec2{Y: 0.5})
	off := tr.Origins[1].TranslateInDirection(mathutil.Vec2{X: 0.03, Y: 0.5})

	assert.InDelta(t, 0, tr.SignedDistance(1, onAxis.Pos), 1e-6)
	assert.InDelta(t, 0.03, tr.SignedDistance(1, off.Pos), 1e-6)
}
