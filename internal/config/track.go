package config

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/track"
)

// SegmentSpec is the YAML/wire shape of one track segment (spec §6
// "Track description ... a tagged union"). Kind selects which of the
// remaining fields apply; unused fields are left at their zero value.
type SegmentSpec struct {
	Kind string `yaml:"kind"` // start, end, straight, ninety, circle

	Length         float32 `yaml:"length,omitempty"`
	LineHalfLength float32 `yaml:"line_half_length,omitempty"`
	Radius         float32 `yaml:"radius,omitempty"`
	Angle          float32 `yaml:"angle,omitempty"`
	Side           string  `yaml:"side,omitempty"` // left, right
}

// TrackSpec is the ordered list of segment specs that makes up a track
// description (spec §6), terminated by End preceded by Start.
type TrackSpec struct {
	Segments []SegmentSpec `yaml:"segments"`
}

// ToSegment converts one wire-level SegmentSpec into a track.Segment.
func (s SegmentSpec) ToSegment() (track.Segment, error) {
	side := track.SideLeft
	if s.Side == "right" {
		side = track.SideRight
	}

	switch s.Kind {
	case "start":
		return track.Start(), nil
	case "end":
		return track.End(), nil
	case "straight":
		return track.Straight(s.Length), nil
	case "ninety":
		return track.NinetyDegTurn(s.LineHalfLength, side), nil
	case "circle":
		return track.CircleTurn(s.Radius, s.Angle, side), nil
	default:
		return track.Segment{}, errors.Errorf("unknown segment kind %q", s.Kind)
	}
}

// LoadTrack parses a YAML track description and builds a *track.Track
// from it, rejecting descriptions that are not Start-first, End-last.
func LoadTrack(data []byte) (*track.Track, error) {
	var spec TrackSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.Wrap(err, "parsing track description")
	}
	return BuildTrack(spec)
}

// BuildTrack converts an already-parsed TrackSpec into a *track.Track.
func BuildTrack(spec TrackSpec) (*track.Track, error) {
	if len(spec.Segments) < 2 {
		return nil, errors.New("track must have at least Start and End segments")
	}
	if spec.Segments[0].Kind != "start" {
		return nil, errors.New("track must begin with a start segment")
	}
	if spec.Segments[len(spec.Segments)-1].Kind != "end" {
		return nil, errors.New("track must end with an end segment")
	}

	segs := make([]track.Segment, len(spec.Segments))
	for i, s := range spec.Segments {
		seg, err := s.ToSegment()
		if err != nil {
			return nil, errors.Wrapf(err, "segment %d", i)
		}
		segs[i] = seg
	}
	return track.Build(segs), nil
}
