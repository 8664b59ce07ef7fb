package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/vovakirdan/rollball/internal/course"
)

// HazardBody is a kinematic Chipmunk body driven by absolute pose commands.
// Space angle is the negated world yaw because world z maps to space Y.
type HazardBody struct {
	kind   course.SegmentKind
	body   *cp.Body
	height float64
	y      float64

	target  course.Pose
	pending bool
	placed  bool
}

// SetNextPose records the pose the body must reach at the end of the next step.
func (h *HazardBody) SetNextPose(p course.Pose) {
	h.target = p
	h.pending = true
}

// Kind returns the hazard kind.
func (h *HazardBody) Kind() course.SegmentKind {
	return h.kind
}

// Pose returns the body's current pose in world coordinates.
func (h *HazardBody) Pose() course.Pose {
	p := h.body.Position()
	return course.Pose{
		Position: course.Vec3{X: p.X, Y: h.y, Z: p.Y},
		Yaw:      -h.body.Angle(),
	}
}

// Bottom returns the lowest world height the obstacle occupies.
func (h *HazardBody) Bottom() float64 {
	return h.y - h.height/2
}

// Top returns the highest world height the obstacle occupies.
func (h *HazardBody) Top() float64 {
	return h.y + h.height/2
}

// prepare sets the velocities that carry the body to its target over dt.
// The first command teleports so a fresh level starts at its rest pose.
func (h *HazardBody) prepare(dt float64) {
	if !h.pending {
		h.body.SetVelocity(0, 0)
		h.body.SetAngularVelocity(0)
		return
	}
	goal := toPlane(h.target.Position)
	angle := -h.target.Yaw
	h.y = h.target.Position.Y

	if !h.placed {
		h.body.SetPosition(goal)
		h.body.SetAngle(angle)
		h.body.SetVelocity(0, 0)
		h.body.SetAngularVelocity(0)
		h.placed = true
		return
	}

	v := goal.Sub(h.body.Position()).Mult(1 / dt)
	h.body.SetVelocityVector(v)
	h.body.SetAngularVelocity((angle - h.body.Angle()) / dt)
}

// settle snaps the body onto its target to keep integration error from drifting.
func (h *HazardBody) settle() {
	if !h.pending {
		return
	}
	h.body.SetPosition(toPlane(h.target.Position))
	h.body.SetAngle(-h.target.Yaw)
	h.pending = false
}
