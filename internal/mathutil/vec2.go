package mathutil

import "github.com/chewxy/math32"

// Vec2 is a point or direction in the track plane.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Dot(o Vec2) float32 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) SumSqr() float32 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Magnitude() float32 { return math32.Sqrt(v.SumSqr()) }

func (v Vec2) Distance(o Vec2) float32 { return v.Sub(o).Magnitude() }

// Rotated returns v rotated counter-clockwise by angle radians.
func (v Vec2) Rotated(angle float32) Vec2 {
	s, c := math32.Sincos(angle)
	return Vec2{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
	}
}

// Transform2D is a 2D pose in the track plane: a position and a heading
// angle in radians, measured counter-clockwise from +Y (the forward
// direction at heading 0).
type Transform2D struct {
	Pos     Vec2
	Heading float32
}

// TranslateInDirection rotates v by the transform's heading and adds it
// to the position, leaving heading unchanged. This mirrors the teacher's
// vec package translate-then-combine shape used throughout
// pkg/core/math/vec.
func (t Transform2D) TranslateInDirection(v Vec2) Transform2D {
	return Transform2D{
		Pos:     t.Pos.Add(v.Rotated(t.Heading)),
		Heading: t.Heading,
	}
}

// Rotate adds delta radians to the transform's heading.
func (t Transform2D) Rotate(delta float32) Transform2D {
	return Transform2D{Pos: t.Pos, Heading: t.Heading + delta}
}

// Local converts a world point into this transform's local frame: x
// perpendicular to heading, y along heading.
func (t Transform2D) Local(world Vec2) Vec2 {
	rel := world.Sub(t.Pos)
	return rel.Rotated(-t.Heading)
}
