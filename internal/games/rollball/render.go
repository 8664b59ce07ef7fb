package rollball

import (
	"fmt"
	"math"

	"github.com/vovakirdan/rollball/internal/core"
	"github.com/vovakirdan/rollball/internal/course"
	"github.com/vovakirdan/rollball/internal/physics"
)

// Top-down projection: the track runs left to right (world -z), world x runs
// down the screen. Terminal cells are about twice as tall as wide.
const (
	colsPerUnit = 4.0
	rowsPerUnit = 2.0
	hudRows     = 2
	cameraLead  = 0.3 // share of the field width kept behind the ball
)

// Visual characters for rendering
const (
	BallChar     = '●'
	AirborneChar = '○'
	FloorChar    = '·'
	WallChar     = '█'
	FinishChar   = '▓'
	SpinnerChar  = '='
	LimboChar    = '#'
	LimboHigh    = '-'
	AxeChar      = '▒'
)

// view maps world coordinates to screen cells.
type view struct {
	originCol float64 // screen column of camZ
	midRow    float64 // screen row of x = 0
	camZ      float64 // -z at originCol
}

// newView follows the ball along the track but stops at the course ends.
func (g *Game) newView(dst *core.Screen) view {
	ball := g.world.Ball()
	floor := g.level.Boundary.Floor
	fieldH := dst.Height() - hudRows
	return view{
		originCol: float64(dst.Width()) * cameraLead,
		midRow:    float64(hudRows) + float64(fieldH)/2,
		camZ:      core.ClampF(-ball.Z, -floor.Max().Z, -floor.Min().Z),
	}
}

func (v view) toScreen(x, z float64) (int, int) {
	col := v.originCol + (-z-v.camZ)*colsPerUnit
	row := v.midRow + x*rowsPerUnit
	return int(math.Floor(col)), int(math.Floor(row))
}

// toWorld returns the world point at the centre of a cell.
func (v view) toWorld(col, row int) (x, z float64) {
	z = -((float64(col)+0.5-v.originCol)/colsPerUnit + v.camZ)
	x = (float64(row) + 0.5 - v.midRow) / rowsPerUnit
	return x, z
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() < 20 || dst.Height() < hudRows+6 {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		return
	}

	v := g.newView(dst)
	floor := g.level.Boundary.Floor
	lo, hi := floor.Min(), floor.Max()
	walls := g.level.Boundary.Walls()
	end := g.level.End().Position.Add(course.Finish.Offset)
	hazards := g.world.Hazards()

	for row := hudRows; row < dst.Height(); row++ {
		for col := 0; col < dst.Width(); col++ {
			x, z := v.toWorld(col, row)

			if r, c, ok := g.hazardCell(hazards, x, z); ok {
				dst.SetWithColor(col, row, r, c)
				continue
			}
			if inBox(walls, x, z) {
				dst.SetWithColor(col, row, WallChar, core.ColorGray)
				continue
			}
			if math.Abs(x-end.X) <= course.Finish.Size.X/2 && math.Abs(z-end.Z) <= course.Finish.Size.Z/2 {
				dst.SetWithColor(col, row, FinishChar, core.ColorYellow)
				continue
			}
			if x >= lo.X && x <= hi.X && z >= lo.Z && z <= hi.Z {
				dst.SetWithColor(col, row, FloorChar, g.tileColor(z))
			}
		}
	}

	ball := g.world.Ball()
	field := core.NewRect(0, hudRows, dst.Width(), dst.Height()-hudRows)
	if bc, br := v.toScreen(ball.X, ball.Z); field.Contains(bc, br) {
		ch := BallChar
		if !g.world.Grounded() {
			ch = AirborneChar
		}
		dst.SetWithColor(bc, br, ch, core.ColorMagenta)
	}

	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.result != nil {
		g.drawCenteredMessage(dst, "FINISHED", fmt.Sprintf("Time: %.2fs  |  Press R to restart", g.result.Duration.Seconds()))
	}
}

// tileColor tints the Start and End tiles.
func (g *Game) tileColor(z float64) core.Color {
	idx := int(math.Floor((-z + course.SegmentLength/2) / course.SegmentLength))
	if idx < 0 || idx >= len(g.level.Segments) {
		return core.ColorGray
	}
	switch g.level.Segments[idx].Kind {
	case course.KindStart:
		return core.ColorGreen
	case course.KindEnd:
		return core.ColorYellow
	default:
		return core.ColorGray
	}
}

// hazardCell reports the glyph for a point covered by a hazard's footprint.
func (g *Game) hazardCell(hazards []*physics.HazardBody, x, z float64) (rune, core.Color, bool) {
	ballTop := g.world.Ball().Y + g.cfg.Ball.Radius
	for _, h := range hazards {
		pose := h.Pose()
		if math.Abs(pose.Position.Z-z) > course.SegmentLength/2 {
			continue
		}
		obs, _ := course.ObstacleOf(h.Kind())
		if !inFootprint(pose, obs.Size, x, z) {
			continue
		}
		switch h.Kind() {
		case course.KindSpinner:
			return SpinnerChar, core.ColorRed, true
		case course.KindLimbo:
			if h.Bottom() >= ballTop {
				return LimboHigh, core.ColorCyan, true
			}
			return LimboChar, core.ColorCyan, true
		case course.KindAxe:
			return AxeChar, core.ColorOrange, true
		}
	}
	return 0, core.ColorDefault, false
}

// inFootprint tests (x, z) against the obstacle's rotated ground rectangle.
func inFootprint(pose course.Pose, size course.Vec3, x, z float64) bool {
	dx := x - pose.Position.X
	dz := z - pose.Position.Z
	cos, sin := math.Cos(pose.Yaw), math.Sin(pose.Yaw)
	// Undo the rotation about the vertical axis.
	lx := dx*cos - dz*sin
	lz := dx*sin + dz*cos
	return math.Abs(lx) <= size.X/2 && math.Abs(lz) <= size.Z/2
}

func inBox(boxes []course.Box, x, z float64) bool {
	for _, b := range boxes {
		lo, hi := b.Min(), b.Max()
		if x >= lo.X && x <= hi.X && z >= lo.Z && z <= hi.Z {
			return true
		}
	}
	return false
}

// drawHUD renders the timer, phase and audio status.
func (g *Game) drawHUD(dst *core.Screen) {
	cfg := g.phase.Config()
	timer := fmt.Sprintf(" %.2f ", g.phase.Elapsed().Seconds())
	dst.DrawTextColor(1, 0, timer, core.ColorWhite)

	status := fmt.Sprintf("%s  seed %d  %d hazards", g.phase.Phase(), cfg.Seed, cfg.SegmentCount)
	dst.DrawTextColor(len(timer)+3, 0, status, core.ColorGray)

	sound := "M: mute"
	if g.muted {
		sound = "M: unmute"
	}
	dst.DrawTextColor(dst.Width()-len(sound)-1, 0, sound, core.ColorGray)

	if g.phase.Phase() == course.PhaseReady {
		dst.DrawTextCenteredColor(1, "Arrows/WASD to roll, Space to jump, R for a new course", core.ColorGreen)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := min(max(len(title), len(subtitle))+4, w)
	boxH := 5
	boxX := core.Clamp((w-boxW)/2, 0, w-boxW)
	boxY := core.Clamp((h-boxH)/2, hudRows, max(h-boxH, hudRows))

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorWhite)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
