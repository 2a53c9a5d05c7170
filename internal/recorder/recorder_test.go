package recorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/sensors"
)

func TestRecorder_GatesOnActive(t *testing.T) {
	r := New()
	r.Append(Record{TimeUs: 100, Active: false})
	r.Append(Record{TimeUs: 200, Active: true})
	r.Append(Record{TimeUs: 300, Active: false})

	require.Len(t, r.Trace(), 1, "only active steps are appended")
	assert.Equal(t, uint32(200), r.Trace()[0].TimeUs)
}

func TestRecorder_PositionChanged(t *testing.T) {
	r := New()
	r.Append(Record{TimeUs: 0, Active: true, BotPosition: sensors.OnTrack})
	r.Append(Record{TimeUs: 1, Active: true, BotPosition: sensors.OnTrack})
	r.Append(Record{TimeUs: 2, Active: true, BotPosition: sensors.End})

	trace := r.Trace()
	require.Len(t, trace, 3)
	assert.True(t, trace[0].PositionChanged, "first recorded step is always a change")
	assert.False(t, trace[1].PositionChanged)
	assert.True(t, trace[2].PositionChanged)
}

func TestRecorder_WriteFileOverwritesInPlace(t *testing.T) {
	r := New()
	r.WriteFile("a.csv", []byte("first"), []CSVColumn{{Name: "t", Kind: ColumnU32}})
	r.WriteFile("b.csv", []byte("other"), nil)
	r.WriteFile("a.csv", []byte("second"), []CSVColumn{{Name: "t", Kind: ColumnU32}})

	files := r.Files()
	require.Len(t, files, 2, "overwriting a.csv must not duplicate its entry")
	assert.Equal(t, "a.csv", files[0].Name, "overwrite keeps the original slot position")
	assert.Equal(t, []byte("second"), files[0].Bytes)
	assert.Equal(t, "b.csv", files[1].Name)
}

func TestRecorder_WriteLineAppendsNewlineDelimited(t *testing.T) {
	r := New()
	r.WriteLine("hello")
	r.WriteLine("world")
	assert.Equal(t, "hello\nworld\n", string(r.Log()))
}
