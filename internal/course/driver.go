package course

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrUnboundHazard means a hazard had no body at tick time.
	ErrUnboundHazard = errors.New("course: hazard has no kinematic body")

	// ErrStaleGeneration means the driver outlived the level it was built for.
	ErrStaleGeneration = errors.New("course: driver belongs to a previous level")
)

// KinematicBody accepts absolute next-pose commands once per tick.
type KinematicBody interface {
	SetNextPose(p Pose)
}

// Driver evaluates every hazard's motion function each tick and commands
// the bound bodies. It is built together with a level and discarded with it.
type Driver struct {
	generation uint64
	instances  []HazardInstance
	motions    []MotionFn
	bodies     []KinematicBody
	poses      []Pose
}

// NewDriver draws the per-instance variation for level's hazards from rng.
// rng is independent of the level seed.
func NewDriver(level Level, generation uint64, rng *rand.Rand) *Driver {
	hazards := level.Hazards()
	d := &Driver{
		generation: generation,
		instances:  make([]HazardInstance, len(hazards)),
		motions:    make([]MotionFn, len(hazards)),
		bodies:     make([]KinematicBody, len(hazards)),
		poses:      make([]Pose, len(hazards)),
	}
	for i, seg := range hazards {
		d.instances[i] = NewHazardInstance(seg.Kind, seg.Index, seg.Position, rng)
		d.motions[i] = MotionFor(seg.Kind)
		d.poses[i] = d.instances[i].Rest()
	}
	return d
}

// Generation returns the phase generation the driver was built for.
func (d *Driver) Generation() uint64 {
	return d.generation
}

// Instances returns the hazard instances in track order.
func (d *Driver) Instances() []HazardInstance {
	return d.instances
}

// Bind attaches the body for the i-th hazard.
func (d *Driver) Bind(i int, body KinematicBody) {
	d.bodies[i] = body
}

// Poses returns the poses commanded on the last tick.
func (d *Driver) Poses() []Pose {
	return d.poses
}

// Tick commands every hazard body for the given elapsed seconds.
// generation must match the driver's; a missing body is a lifecycle bug and
// fails the whole frame.
func (d *Driver) Tick(generation uint64, elapsed float64) error {
	if generation != d.generation {
		return fmt.Errorf("%w: built for %d, ticked at %d", ErrStaleGeneration, d.generation, generation)
	}
	for i, h := range d.instances {
		if d.bodies[i] == nil {
			return fmt.Errorf("%w: %s at index %d", ErrUnboundHazard, h.Kind, h.Index)
		}
	}
	for i, h := range d.instances {
		pose := d.motions[i](h, elapsed)
		d.poses[i] = pose
		d.bodies[i].SetNextPose(pose)
	}
	return nil
}
