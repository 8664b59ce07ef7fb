package course

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidSegmentCount is returned for a negative hazard segment count.
var ErrInvalidSegmentCount = errors.New("course: segment count must not be negative")

// RunConfig is immutable for the lifetime of one run.
type RunConfig struct {
	SegmentCount int   // Hazard segments between the Start and End caps
	Seed         int64 // Source for segment kind selection
}

// Validate rejects configurations that cannot produce a level.
func (c RunConfig) Validate() error {
	if c.SegmentCount < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSegmentCount, c.SegmentCount)
	}
	return nil
}

// Segment is one placed slice of the track.
type Segment struct {
	Kind     SegmentKind
	Index    int  // Position index, 0 for Start
	Position Vec3 // Segment origin (centre of the floor tile top)
}

// Box is an axis-aligned collider: centre position and full extents.
type Box struct {
	Center   Vec3
	Size     Vec3
	Material Material
}

// Min returns the lowest corner of the box.
func (b Box) Min() Vec3 {
	return Vec3{X: b.Center.X - b.Size.X/2, Y: b.Center.Y - b.Size.Y/2, Z: b.Center.Z - b.Size.Z/2}
}

// Max returns the highest corner of the box.
func (b Box) Max() Vec3 {
	return Vec3{X: b.Center.X + b.Size.X/2, Y: b.Center.Y + b.Size.Y/2, Z: b.Center.Z + b.Size.Z/2}
}

// Boundary is the wall set enclosing all segments from Start through End.
type Boundary struct {
	Length    int // Segment count including both caps
	RightWall Box
	LeftWall  Box
	BackWall  Box
	Floor     Box // Collider only, never rendered
}

// Walls returns the rendered walls in a fixed order.
func (b Boundary) Walls() []Box {
	return []Box{b.RightWall, b.LeftWall, b.BackWall}
}

// Level is a pure function of RunConfig.
type Level struct {
	Config   RunConfig
	Segments []Segment
	Boundary Boundary
}

// Kinds returns the ordered kind sequence of the level.
func (l Level) Kinds() []SegmentKind {
	kinds := make([]SegmentKind, len(l.Segments))
	for i, s := range l.Segments {
		kinds[i] = s.Kind
	}
	return kinds
}

// End returns the End segment.
func (l Level) End() Segment {
	return l.Segments[len(l.Segments)-1]
}

// Hazards returns the interior segments in track order.
func (l Level) Hazards() []Segment {
	if len(l.Segments) <= 2 {
		return nil
	}
	return l.Segments[1 : len(l.Segments)-1]
}

// Generate builds the level for cfg. The random source is seeded once from
// cfg.Seed inside the call, so equal configs always produce equal levels.
func Generate(cfg RunConfig) (Level, error) {
	if err := cfg.Validate(); err != nil {
		return Level{}, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	count := cfg.SegmentCount

	segments := make([]Segment, 0, count+2)
	segments = append(segments, placeSegment(KindStart, 0))
	for i := 1; i <= count; i++ {
		kind := HazardKinds[rng.Intn(len(HazardKinds))]
		segments = append(segments, placeSegment(kind, i))
	}
	segments = append(segments, placeSegment(KindEnd, count+1))

	return Level{
		Config:   cfg,
		Segments: segments,
		Boundary: NewBoundary(count + 2),
	}, nil
}

func placeSegment(kind SegmentKind, index int) Segment {
	return Segment{
		Kind:     kind,
		Index:    index,
		Position: Vec3{X: 0, Y: 0, Z: -float64(index) * SegmentLength},
	}
}

// NewBoundary derives the wall transforms for a course of length segments.
// The Start tile is centred on z=0, so the enclosed span runs from z=+2 to
// z=-(4*length)+2.
func NewBoundary(length int) Boundary {
	l := float64(length)
	depth := SegmentLength * l
	centerZ := -(l * SegmentLength / 2) + SegmentLength/2
	wallY := WallHeight / 2

	wallMaterial := Material{Restitution: 0.2, Friction: 0}
	side := func(x float64) Box {
		return Box{
			Center:   Vec3{X: x, Y: wallY, Z: centerZ},
			Size:     Vec3{X: WallThickness, Y: WallHeight, Z: depth},
			Material: wallMaterial,
		}
	}

	return Boundary{
		Length:    length,
		RightWall: side(HalfWidth),
		LeftWall:  side(-HalfWidth),
		BackWall: Box{
			Center:   Vec3{X: 0, Y: wallY, Z: -depth + SegmentLength/2},
			Size:     Vec3{X: SegmentWidth, Y: WallHeight, Z: WallThickness},
			Material: wallMaterial,
		},
		// Friction 1 lets rolling input turn into forward travel.
		Floor: Box{
			Center:   Vec3{X: 0, Y: -TileThickness / 2, Z: centerZ},
			Size:     Vec3{X: SegmentWidth, Y: TileThickness, Z: depth},
			Material: Material{Restitution: 0.2, Friction: 1},
		},
	}
}
