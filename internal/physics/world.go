// Package physics hosts the rigid-body collaborator for a course run.
//
// The course is simulated top-down in a Chipmunk space: world x maps to the
// space X axis and world z maps to the space Y axis. Height is tracked
// separately for the ball with a 1-D ballistic model and for each hazard as
// a vertical span, which decides whether a planar contact is real.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/vovakirdan/rollball/internal/course"
)

const (
	collisionTypeBall cp.CollisionType = iota + 1
	collisionTypeHazard
	collisionTypeWall
	collisionTypeFinish
)

// Config tunes the player ball.
type Config struct {
	BallRadius  float64 // metres
	BallMass    float64
	BallBounce  float64 // restitution
	RollForce   float64 // impulse per second of held input
	JumpSpeed   float64 // initial vertical speed of a hop
	Gravity     float64 // vertical acceleration, negative is down
	Damping     float64 // fraction of planar velocity kept after one second
	Spawn       course.Vec3
	OffCourseAt float64 // z beyond which the ball has left the course
}

// DefaultConfig returns the tuning used by the shipped course.
func DefaultConfig() Config {
	return Config{
		BallRadius:  0.3,
		BallMass:    1,
		BallBounce:  0.2,
		RollForce:   6,
		JumpSpeed:   4,
		Gravity:     -9.81,
		Damping:     0.4,
		Spawn:       course.Vec3{X: 0, Y: 1, Z: 0},
		OffCourseAt: course.SegmentLength/2 + 0.5,
	}
}

// Contact is a ball impact recorded during a step.
type Contact struct {
	Source course.ContactSource
	Force  float64
}

// World owns the Chipmunk space for one level.
// It is rebuilt on every restart and is not safe for concurrent use.
type World struct {
	cfg   Config
	space *cp.Space

	ball      *cp.Body
	ballShape *cp.Shape
	ballY     float64
	ballVY    float64

	hazards     []*HazardBody
	hazardShape map[*cp.Shape]*HazardBody
	wallShapes  map[*cp.Shape]bool

	contacts []Contact
	finished bool
	dt       float64
}

// NewWorld builds the static boundary, the finish sensor and the ball for level.
func NewWorld(level course.Level, cfg Config) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	space.SetDamping(cfg.Damping)

	w := &World{
		cfg:         cfg,
		space:       space,
		hazardShape: make(map[*cp.Shape]*HazardBody),
		wallShapes:  make(map[*cp.Shape]bool),
	}
	w.buildBoundary(level.Boundary)
	w.buildFinish(level.End())
	w.buildBall()
	w.setupHandlers()
	return w
}

func (w *World) buildBoundary(b course.Boundary) {
	for _, wall := range b.Walls() {
		lo, hi := wall.Min(), wall.Max()
		bb := cp.BB{L: lo.X, B: lo.Z, R: hi.X, T: hi.Z}
		shape := cp.NewBox2(w.space.StaticBody, bb, 0)
		shape.SetFriction(wall.Material.Friction)
		shape.SetElasticity(wall.Material.Restitution)
		shape.SetCollisionType(collisionTypeWall)
		w.space.AddShape(shape)
		w.wallShapes[shape] = true
	}
}

func (w *World) buildFinish(end course.Segment) {
	f := course.Finish
	c := end.Position.Add(f.Offset)
	bb := cp.BB{
		L: c.X - f.Size.X/2,
		B: c.Z - f.Size.Z/2,
		R: c.X + f.Size.X/2,
		T: c.Z + f.Size.Z/2,
	}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeFinish)
	w.space.AddShape(shape)
}

func (w *World) buildBall() {
	r := w.cfg.BallRadius
	mass := w.cfg.BallMass
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, r, cp.Vector{}))
	shape := cp.NewCircle(body, r, cp.Vector{})
	shape.SetFriction(1)
	shape.SetElasticity(w.cfg.BallBounce)
	shape.SetCollisionType(collisionTypeBall)

	w.space.AddBody(body)
	w.space.AddShape(shape)
	w.ball = body
	w.ballShape = shape
	w.ResetBall()
}

func (w *World) setupHandlers() {
	hazardHandler := w.space.NewCollisionHandler(collisionTypeBall, collisionTypeHazard)
	hazardHandler.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		_, shapeB := arb.Shapes()
		h := w.hazardShape[shapeB]
		if h == nil {
			return true
		}
		// Pass over or under the obstacle when the heights do not overlap.
		return w.ballOverlaps(h.Bottom(), h.Top())
	}
	// PostSolve receives the handler, not its UserData, so every callback
	// closes over w instead.
	hazardHandler.PostSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
		if !arb.IsFirstContact() {
			return
		}
		_, shapeB := arb.Shapes()
		if h := w.hazardShape[shapeB]; h != nil {
			w.record(course.SourceOf(h.kind), arb)
		}
	}

	wallHandler := w.space.NewCollisionHandler(collisionTypeBall, collisionTypeWall)
	wallHandler.PostSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
		if arb.IsFirstContact() {
			w.record(course.SourceBounds, arb)
		}
	}

	finishHandler := w.space.NewCollisionHandler(collisionTypeBall, collisionTypeFinish)
	finishHandler.BeginFunc = func(_ *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		w.finished = true
		return true
	}
}

func (w *World) record(src course.ContactSource, arb *cp.Arbiter) {
	if w.dt <= 0 {
		return
	}
	force := arb.TotalImpulse().Length() / w.dt
	w.contacts = append(w.contacts, Contact{Source: src, Force: force})
}

func (w *World) ballOverlaps(bottom, top float64) bool {
	r := w.cfg.BallRadius
	return w.ballY-r < top && w.ballY+r > bottom
}

// AddHazard creates the kinematic body for a hazard instance.
// The returned body should be bound to the driver slot of the same instance.
func (w *World) AddHazard(inst course.HazardInstance) *HazardBody {
	obs, ok := course.ObstacleOf(inst.Kind)
	if !ok {
		panic("physics: hazard instance of non-hazard kind " + inst.Kind.String())
	}

	body := cp.NewKinematicBody()
	rest := inst.Rest()
	body.SetPosition(toPlane(rest.Position))
	body.SetAngle(-rest.Yaw)

	shape := cp.NewBox(body, obs.Size.X, obs.Size.Z, 0)
	shape.SetFriction(obs.Material.Friction)
	shape.SetElasticity(obs.Material.Restitution)
	shape.SetCollisionType(collisionTypeHazard)

	w.space.AddBody(body)
	w.space.AddShape(shape)

	h := &HazardBody{
		kind:   inst.Kind,
		body:   body,
		height: obs.Size.Y,
		y:      rest.Position.Y,
	}
	w.hazards = append(w.hazards, h)
	w.hazardShape[shape] = h
	return h
}

// Hazards returns the hazard bodies in creation order.
func (w *World) Hazards() []*HazardBody {
	return w.hazards
}

// Push applies a planar impulse for one step of held input.
// dx and dz are direction components in world units.
func (w *World) Push(dx, dz, dt float64) {
	l := math.Hypot(dx, dz)
	if l == 0 {
		return
	}
	s := w.cfg.RollForce * dt / l
	impulse := cp.Vector{X: dx * s, Y: dz * s}
	w.ball.ApplyImpulseAtWorldPoint(impulse, w.ball.Position())
}

// Grounded reports whether the ball rests on the floor.
func (w *World) Grounded() bool {
	return w.ballY <= w.cfg.BallRadius+1e-6
}

// Jump starts a hop if the ball is grounded.
func (w *World) Jump() bool {
	if !w.Grounded() {
		return false
	}
	w.ballVY = w.cfg.JumpSpeed
	return true
}

// Step advances hazards to their commanded poses and integrates the ball.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	w.dt = dt
	for _, h := range w.hazards {
		h.prepare(dt)
	}

	w.ballVY += w.cfg.Gravity * dt
	w.ballY += w.ballVY * dt
	if w.ballY < w.cfg.BallRadius {
		w.ballY = w.cfg.BallRadius
		w.ballVY = 0
	}

	w.space.Step(dt)

	for _, h := range w.hazards {
		h.settle()
	}
}

// Drain returns and clears the contacts recorded since the last call.
func (w *World) Drain() []Contact {
	out := w.contacts
	w.contacts = nil
	return out
}

// ReachedFinish reports whether the ball has touched the finish collider.
func (w *World) ReachedFinish() bool {
	return w.finished
}

// Ball returns the ball centre in world coordinates.
func (w *World) Ball() course.Vec3 {
	p := w.ball.Position()
	return course.Vec3{X: p.X, Y: w.ballY, Z: p.Y}
}

// BallVelocity returns the planar velocity as world (x, z).
func (w *World) BallVelocity() (float64, float64) {
	v := w.ball.Velocity()
	return v.X, v.Y
}

// OffCourse reports whether the ball rolled off the open Start edge.
func (w *World) OffCourse() bool {
	return w.ball.Position().Y > w.cfg.OffCourseAt
}

// ResetBall returns the ball to the spawn point at rest.
func (w *World) ResetBall() {
	w.PlaceBall(w.cfg.Spawn, 0, 0)
	w.finished = false
}

// PlaceBall moves the ball centre to pos with planar velocity (vx, vz).
// Vertical speed is cleared.
func (w *World) PlaceBall(pos course.Vec3, vx, vz float64) {
	w.ball.SetPosition(toPlane(pos))
	w.ball.SetVelocity(vx, vz)
	w.ball.SetAngularVelocity(0)
	w.ballY = pos.Y
	w.ballVY = 0
}

func toPlane(v course.Vec3) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}
