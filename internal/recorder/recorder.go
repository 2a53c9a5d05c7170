// Package recorder implements the Execution Recorder of spec §4.E: an
// append-only per-step trace plus the two persisted output streams (a
// UTF-8 log and named file artifacts), gated by the guest's activity
// flag the same way physics force application is gated in
// internal/physics.
//
// The ordered, overwrite-not-duplicate file registry follows the
// original Rust source's data module (sim/sim/src/data.rs), which
// keeps file writes in first-write order but lets a later write to the
// same name replace the earlier bytes rather than appending a
// duplicate entry.
package recorder

import (
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/mathutil"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/sensors"
)

// ColumnKind is a CSV artifact's column storage type (spec §6).
type ColumnKind int

const (
	ColumnU8 ColumnKind = iota
	ColumnU16
	ColumnI16
	ColumnU32
	ColumnI32
	ColumnF32
)

// CSVColumn names one column of a CSV artifact's schema.
type CSVColumn struct {
	Name string
	Kind ColumnKind
}

// FileArtifact is one named output file registered via write_file (spec
// §4.F), with an optional CSV schema.
type FileArtifact struct {
	Name   string
	Bytes  []byte
	Schema []CSVColumn // nil when the file isn't declared as CSV
}

// Record is one fixed-step trace entry (spec §4.E).
type Record struct {
	TimeUs uint32

	BodyPos mathutil.Vec3
	BodyRot mathutil.Quat

	WheelLeftPos   mathutil.Vec3
	WheelLeftRot   mathutil.Quat
	WheelRightPos  mathutil.Vec3
	WheelRightRot  mathutil.Quat

	LineSensors [sensors.LineSensorCount]float32
	Gyro        mathutil.Vec3
	ImuFused    mathutil.EulerXYZ

	MotorAngleLeft  uint16
	MotorAngleRight uint16
	PWMLeft         int16
	PWMRight        int16

	BotPosition sensors.BotPosition

	// PositionChanged is true when BotPosition differs from the
	// previous recorded step (or this is the first recorded step).
	// The source's bot_position sensor (sim/sim/src/bot/sensors/bot_position.rs)
	// exposes this as a discrete event rather than forcing every
	// consumer to diff consecutive records themselves.
	PositionChanged bool

	Active bool
}

// Recorder accumulates the execution trace and output artifacts for a
// single run.
type Recorder struct {
	records []Record

	log []byte

	files     []FileArtifact
	fileIndex map[string]int

	lastPosition    sensors.BotPosition
	havePosition    bool
}

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{fileIndex: make(map[string]int)}
}

// Append adds one step's record to the trace, but only while active is
// true (spec §4.E: "When inactive, physics still runs but ... trace
// appends are suppressed"). PositionChanged is computed here so callers
// never have to diff consecutive records themselves.
func (r *Recorder) Append(rec Record) {
	if !rec.Active {
		return
	}
	rec.PositionChanged = !r.havePosition || rec.BotPosition != r.lastPosition
	r.lastPosition = rec.BotPosition
	r.havePosition = true
	r.records = append(r.records, rec)
}

// Trace returns the accumulated records in step order.
func (r *Recorder) Trace() []Record { return r.records }

// WriteLine appends one line to the UTF-8 log (spec §4.F write_line),
// newline-delimited per spec §6.
func (r *Recorder) WriteLine(s string) {
	r.log = append(r.log, []byte(s)...)
	r.log = append(r.log, '\n')
}

// Log returns the accumulated log bytes.
func (r *Recorder) Log() []byte { return r.log }

// WriteFile registers or overwrites a named output artifact (spec §4.F
// write_file). A later write to an existing name replaces its bytes
// and schema in place, preserving the name's original position in
// Files().
func (r *Recorder) WriteFile(name string, data []byte, schema []CSVColumn) {
	artifact := FileArtifact{Name: name, Bytes: data, Schema: schema}
	if i, ok := r.fileIndex[name]; ok {
		r.files[i] = artifact
		return
	}
	r.fileIndex[name] = len(r.files)
	r.files = append(r.files, artifact)
}

// Files returns the registered artifacts in first-write order.
func (r *Recorder) Files() []FileArtifact { return r.files }
