package physics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/vovakirdan/rollball/internal/course"
)

const dt = 1.0 / 60

func newTestWorld(t *testing.T, count int) (*World, course.Level) {
	t.Helper()
	level, err := course.Generate(course.RunConfig{SegmentCount: count, Seed: 3})
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	return NewWorld(level, DefaultConfig()), level
}

func TestBallSettlesOnFloor(t *testing.T) {
	w, _ := newTestWorld(t, 2)

	if got := w.Ball().Y; got != 1 {
		t.Fatalf("spawn height = %v, expected 1", got)
	}
	for i := 0; i < 120; i++ {
		w.Step(dt)
	}
	if got := w.Ball().Y; got != DefaultConfig().BallRadius {
		t.Errorf("rest height = %v, expected %v", got, DefaultConfig().BallRadius)
	}
	if !w.Grounded() {
		t.Error("ball should be grounded after settling")
	}
}

func TestJumpOnlyWhenGrounded(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	for i := 0; i < 120; i++ {
		w.Step(dt)
	}

	if !w.Jump() {
		t.Fatal("Jump() from the floor should succeed")
	}
	w.Step(dt)
	if w.Jump() {
		t.Error("Jump() in mid-air should fail")
	}
	if w.Ball().Y <= DefaultConfig().BallRadius {
		t.Error("ball should be airborne after a jump")
	}
}

func TestPushRollsForward(t *testing.T) {
	w, _ := newTestWorld(t, 3)

	for i := 0; i < 60; i++ {
		w.Push(0, -1, dt)
		w.Step(dt)
	}
	if z := w.Ball().Z; z >= -0.1 {
		t.Errorf("ball z = %v, expected it to roll toward the end", z)
	}
	if _, vz := w.BallVelocity(); vz >= 0 {
		t.Errorf("velocity z = %v, expected negative", vz)
	}
}

func TestHazardReachesCommandedPose(t *testing.T) {
	w, level := newTestWorld(t, 4)
	d := course.NewDriver(level, 0, rand.New(rand.NewSource(1)))
	for i, inst := range d.Instances() {
		d.Bind(i, w.AddHazard(inst))
	}

	for frame := 0; frame < 30; frame++ {
		if err := d.Tick(0, float64(frame)*dt); err != nil {
			t.Fatalf("Tick() failed: %v", err)
		}
		w.Step(dt)

		for i, h := range w.Hazards() {
			got, want := h.Pose(), d.Poses()[i]
			if math.Abs(got.Position.X-want.Position.X) > 1e-9 ||
				math.Abs(got.Position.Z-want.Position.Z) > 1e-9 ||
				math.Abs(got.Position.Y-want.Position.Y) > 1e-9 ||
				math.Abs(got.Yaw-want.Yaw) > 1e-9 {
				t.Fatalf("frame %d hazard %d pose = %+v, expected %+v", frame, i, got, want)
			}
		}
	}
}

func TestVerticalSpanFiltersContacts(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.ballY = DefaultConfig().BallRadius

	tests := []struct {
		name        string
		bottom, top float64
		expected    bool
	}{
		{"spinner bar", 0.15, 0.45, true},
		{"limbo raised", 1.5, 1.8, false},
		{"limbo lowered", 0.1, 0.4, true},
		{"touching top only", 0.6, 0.9, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.ballOverlaps(tc.bottom, tc.top); got != tc.expected {
				t.Errorf("ballOverlaps(%v, %v) = %v, expected %v", tc.bottom, tc.top, got, tc.expected)
			}
		})
	}
}

func TestWallContactIsRecorded(t *testing.T) {
	w, _ := newTestWorld(t, 2)
	w.ball.SetPosition(cp.Vector{X: 1.2, Y: -4})
	w.ball.SetVelocity(10, 0)

	var contacts []Contact
	for i := 0; i < 30; i++ {
		w.Step(dt)
		contacts = append(contacts, w.Drain()...)
	}

	if len(contacts) == 0 {
		t.Fatal("expected a wall contact")
	}
	if contacts[0].Source != course.SourceBounds {
		t.Errorf("source = %v, expected bounds", contacts[0].Source)
	}
	if contacts[0].Force <= 0 {
		t.Errorf("force = %v, expected positive", contacts[0].Force)
	}
	if len(w.Drain()) != 0 {
		t.Error("Drain() should clear the buffer")
	}
}

func TestHazardContactIsRecorded(t *testing.T) {
	w, _ := newTestWorld(t, 2)
	h := w.AddHazard(course.HazardInstance{Kind: course.KindAxe, Index: 1, Base: course.Vec3{Z: -4}})
	h.SetNextPose(h.Pose())

	r := DefaultConfig().BallRadius
	w.PlaceBall(course.Vec3{X: 0, Y: r, Z: -2.5}, 0, -10)

	var contacts []Contact
	for i := 0; i < 30; i++ {
		w.Step(dt)
		contacts = append(contacts, w.Drain()...)
	}

	var hit *Contact
	for i := range contacts {
		if contacts[i].Source == course.SourceAxe {
			hit = &contacts[i]
			break
		}
	}
	if hit == nil {
		t.Fatalf("expected an axe contact, got %+v", contacts)
	}
	if hit.Force <= 0 {
		t.Errorf("force = %v, expected positive", hit.Force)
	}

	relay := course.NewRelay(nil)
	want := math.Min(hit.Force/course.DefaultImpactScales[course.SourceAxe], 1)
	if got := relay.Intensity(hit.Source, hit.Force); got != want || got <= 0 {
		t.Errorf("intensity = %v, expected %v", got, want)
	}
}

func TestPlaceBall(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.PlaceBall(course.Vec3{X: 0.5, Y: 0.3, Z: -3}, 1, -2)

	if got := w.Ball(); got != (course.Vec3{X: 0.5, Y: 0.3, Z: -3}) {
		t.Errorf("Ball() = %+v", got)
	}
	if vx, vz := w.BallVelocity(); vx != 1 || vz != -2 {
		t.Errorf("velocity = (%v, %v), expected (1, -2)", vx, vz)
	}
	if !w.Grounded() {
		t.Error("ball placed at its radius should be grounded")
	}
}

func TestFinishSensor(t *testing.T) {
	w, level := newTestWorld(t, 2)
	if w.ReachedFinish() {
		t.Fatal("fresh world should not be finished")
	}

	end := level.End().Position
	w.ball.SetPosition(cp.Vector{X: end.X, Y: end.Z})
	w.Step(dt)

	if !w.ReachedFinish() {
		t.Error("ball on the finish collider should finish the run")
	}
	w.ResetBall()
	if w.ReachedFinish() {
		t.Error("ResetBall() should clear the finish flag")
	}
}

func TestOffCourse(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	if w.OffCourse() {
		t.Fatal("spawn should be on course")
	}
	w.ball.SetPosition(cp.Vector{X: 0, Y: 3})
	if !w.OffCourse() {
		t.Error("ball past the start edge should be off course")
	}
	w.ResetBall()
	if w.OffCourse() || w.Ball().Z != 0 {
		t.Errorf("ResetBall() left ball at %+v", w.Ball())
	}
}
