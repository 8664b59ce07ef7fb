// Package course implements the obstacle course core: the segment catalog,
// the seeded level generator, the kinematic driver for hazard bodies, the run
// phase state machine and the impact feedback relay.
//
// The package has no terminal, physics or audio dependencies. Collaborators
// consume it through Level, Pose commands and intensity values.
package course

import "fmt"

// SegmentKind identifies one track slice variant.
type SegmentKind int

const (
	KindStart SegmentKind = iota
	KindEnd
	KindSpinner
	KindLimbo
	KindAxe
)

// HazardKinds is the selection set for interior segments.
// The order is part of level identity: Generate indexes into it.
var HazardKinds = [...]SegmentKind{KindSpinner, KindAxe, KindLimbo}

// String returns a human-readable name for the kind.
func (k SegmentKind) String() string {
	switch k {
	case KindStart:
		return "Start"
	case KindEnd:
		return "End"
	case KindSpinner:
		return "Spinner"
	case KindLimbo:
		return "Limbo"
	case KindAxe:
		return "Axe"
	default:
		return fmt.Sprintf("SegmentKind(%d)", int(k))
	}
}

// IsHazard reports whether the kind carries a moving body.
func (k SegmentKind) IsHazard() bool {
	return k == KindSpinner || k == KindLimbo || k == KindAxe
}

// Track dimensions in world units.
const (
	SegmentLength = 4.0  // Depth of one segment along -z
	SegmentWidth  = 4.0  // Width of one floor tile along x
	TileThickness = 0.2  // Floor tile height
	HalfWidth     = 2.15 // Wall centre distance from the track axis
	WallThickness = 0.3
	WallHeight    = 1.5
)

// Hazard motion constants.
const (
	VerticalBias   = 1.15 // Limbo rest height above the segment base
	SwingAmplitude = 1.25 // Axe horizontal swing
	AxeHeight      = 0.75 // Axe fixed height above floor
	ObstacleHeight = 0.3  // Spinner and initial hazard height
)

// Footprint is the size of a segment's floor tile.
type Footprint struct {
	W, D, H float64
}

// Material is the restitution/friction pair of a collider.
type Material struct {
	Restitution float64
	Friction    float64
}

// Obstacle describes the moving body of a hazard segment.
type Obstacle struct {
	Size     Vec3     // Box extents (width, height, depth)
	Offset   Vec3     // Rest offset from the segment base
	Material Material // Collider material
}

var (
	hazardMaterial = Material{Restitution: 0.2, Friction: 0}
	finishMaterial = Material{Restitution: 0.2, Friction: 0}

	tileFootprint = Footprint{W: SegmentWidth, D: SegmentLength, H: TileThickness}
)

var obstacles = map[SegmentKind]Obstacle{
	KindSpinner: {
		Size:     Vec3{X: 3.5, Y: 0.3, Z: 0.3},
		Offset:   Vec3{Y: ObstacleHeight},
		Material: hazardMaterial,
	},
	KindLimbo: {
		Size:     Vec3{X: 3.5, Y: 0.3, Z: 0.3},
		Offset:   Vec3{Y: ObstacleHeight},
		Material: hazardMaterial,
	},
	KindAxe: {
		Size:     Vec3{X: 1.5, Y: 1.5, Z: 0.3},
		Offset:   Vec3{Y: AxeHeight},
		Material: hazardMaterial,
	},
}

// Finish is the collider on the End segment that ends the run on contact.
var Finish = Obstacle{
	Size:     Vec3{X: 1, Y: 0.5, Z: 1},
	Offset:   Vec3{Y: 0.25},
	Material: finishMaterial,
}

// FootprintOf returns the floor tile size for a kind.
// Every variant uses the same tile; the lookup still rejects unknown kinds.
func FootprintOf(kind SegmentKind) Footprint {
	mustKnow(kind)
	return tileFootprint
}

// ObstacleOf returns the moving body of a hazard kind.
// Start and End report ok=false.
func ObstacleOf(kind SegmentKind) (Obstacle, bool) {
	mustKnow(kind)
	o, ok := obstacles[kind]
	return o, ok
}

// MotionFor returns the kinematic motion function of a kind, or nil for caps.
func MotionFor(kind SegmentKind) MotionFn {
	mustKnow(kind)
	switch kind {
	case KindSpinner:
		return SpinnerMotion
	case KindLimbo:
		return LimboMotion
	case KindAxe:
		return AxeMotion
	default:
		return nil
	}
}

// mustKnow panics on a kind outside the closed enumeration.
func mustKnow(kind SegmentKind) {
	switch kind {
	case KindStart, KindEnd, KindSpinner, KindLimbo, KindAxe:
		return
	}
	panic(fmt.Sprintf("course: unknown segment kind %d", int(kind)))
}
