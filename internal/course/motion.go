package course

import (
	"math"
	"math/rand"
)

// Vec3 is a point or extent in world units. Y is up, the track runs along -Z.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Pose is an absolute kinematic command: position plus rotation about +Y.
type Pose struct {
	Position Vec3
	Yaw      float64 // Radians
}

// HazardInstance is the per-segment state drawn once when a level is
// instantiated. It never changes afterwards.
type HazardInstance struct {
	Kind        SegmentKind
	Index       int     // Position index in the level
	Base        Vec3    // Segment origin
	PhaseOffset float64 // Uniform in [0, 2π)
	Speed       float64 // Spinner only: |speed| in [0.2, 1.2), random sign
}

// MotionFn computes the commanded pose of a hazard at elapsed seconds.
type MotionFn func(h HazardInstance, elapsed float64) Pose

// NewHazardInstance draws the cosmetic variation for one hazard segment.
func NewHazardInstance(kind SegmentKind, index int, base Vec3, rng *rand.Rand) HazardInstance {
	h := HazardInstance{
		Kind:        kind,
		Index:       index,
		Base:        base,
		PhaseOffset: rng.Float64() * 2 * math.Pi,
	}
	if kind == KindSpinner {
		h.Speed = rng.Float64() + 0.2
		if rng.Float64() < 0.5 {
			h.Speed = -h.Speed
		}
	}
	return h
}

// Rest returns the pose of the hazard body before any motion is applied.
func (h HazardInstance) Rest() Pose {
	o, _ := ObstacleOf(h.Kind)
	return Pose{Position: h.Base.Add(o.Offset)}
}

// SpinnerMotion rotates the bar about the vertical axis at a constant rate.
func SpinnerMotion(h HazardInstance, elapsed float64) Pose {
	return Pose{
		Position: h.Base.Add(Vec3{Y: ObstacleHeight}),
		Yaw:      elapsed * h.Speed,
	}
}

// LimboMotion raises and lowers the bar.
// The height stays within VerticalBias ± 1 above the segment base.
func LimboMotion(h HazardInstance, elapsed float64) Pose {
	y := math.Sin(elapsed+h.PhaseOffset) + VerticalBias
	return Pose{Position: Vec3{X: h.Base.X, Y: h.Base.Y + y, Z: h.Base.Z}}
}

// AxeMotion swings the blade from side to side at a fixed height.
func AxeMotion(h HazardInstance, elapsed float64) Pose {
	x := math.Sin(elapsed+h.PhaseOffset) * SwingAmplitude
	return Pose{Position: Vec3{X: h.Base.X + x, Y: h.Base.Y + AxeHeight, Z: h.Base.Z}}
}
