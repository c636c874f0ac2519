// Package bind implements Bind mode: the mouse-down / move / up gesture that
// drags a wall node, a whole wall, an opening or a device, joins the dragged
// wall to its neighbours and commits the resulting wall list.
//
// A Machine owns at most one Gesture. The gesture is created on MouseDown and
// discarded on commit or Cancel; nothing of it survives between gestures.
package bind

import (
	"log/slog"
	"math"

	"github.com/piwi3910/FloorDraft/internal/applog"
	"github.com/piwi3910/FloorDraft/internal/geometry"
	"github.com/piwi3910/FloorDraft/internal/model"
)

// Environment is the editor state the machine reads on every event.
type Environment interface {
	Walls() []model.Wall
	Objects() []model.ObjectMetaData
	Devices() []model.DeviceMetaData
	Mode() model.Mode
}

// Callbacks are invoked to report results back to the editor. Nil entries
// are skipped.
type Callbacks struct {
	SetWalls              func([]model.Wall)
	SetObjects            func([]model.ObjectMetaData)
	SetDevices            func([]model.DeviceMetaData)
	SetCursor             func(model.CursorType)
	SetMeasurementText    func(wall model.Wall, objects []model.ObjectMetaData)
	SetMode               func(model.Mode)
	StartModifyingOpening func(model.ObjectMetaData)
	WallClicked           func(model.Wall)
	Save                  func()

	// UpdateObject repositions an object anchored to a wall that changed
	// from before to after. Objects are left as they are when nil.
	UpdateObject func(o model.ObjectMetaData, before, after model.Wall) model.ObjectMetaData
}

// Target is what a gesture drags.
type Target int

const (
	TargetNone   Target = iota
	TargetNode          // one wall endpoint, with the walls joined to it
	TargetWall          // a whole wall, sliding between its neighbours
	TargetObject        // an in-wall opening
	TargetDevice        // a device
)

func (t Target) String() string {
	switch t {
	case TargetNode:
		return "node"
	case TargetWall:
		return "wall"
	case TargetObject:
		return "object"
	case TargetDevice:
		return "device"
	default:
		return "none"
	}
}

// Result summarizes a finished gesture.
type Result struct {
	Mode      model.Mode
	Walls     []model.Wall
	Objects   []model.ObjectMetaData
	Committed bool
}

// follower is a wall endpoint that moves together with the dragged geometry.
type follower struct {
	wallID string
	end    model.WallEnd // end of the follower that moves
	side   model.WallEnd // end of the dragged wall it stays joined to
}

// Machine is the Bind mode state machine.
type Machine struct {
	env      Environment
	cb       Callbacks
	settings model.EditorSettings
	gesture  *Gesture
}

func New(env Environment, cb Callbacks, settings model.EditorSettings) *Machine {
	return &Machine{env: env, cb: cb, settings: settings}
}

// SetSettings replaces the editor settings used by later gestures.
func (m *Machine) SetSettings(s model.EditorSettings) {
	m.settings = s
}

// Active reports whether a gesture is in progress.
func (m *Machine) Active() bool {
	return m.gesture != nil && m.gesture.active
}

// Gesture returns the gesture in progress, or nil.
func (m *Machine) Gesture() *Gesture {
	if !m.Active() {
		return nil
	}
	return m.gesture
}

// MouseDown starts a gesture on whatever lies under the cursor. It returns
// false, and starts nothing, outside Bind mode or over empty space.
func (m *Machine) MouseDown(snap model.SnapData) bool {
	if m.env.Mode() != model.ModeBind {
		return false
	}
	if m.Active() {
		applog.Logger().Warn("bind: discarding unfinished gesture", slog.String("target", m.gesture.Target.String()))
		m.clear()
	}

	g := m.hitTest(snap)
	if g == nil {
		m.setCursor(model.CursorDefault)
		return false
	}
	g.active = true
	g.startRaw = snap.Raw()
	g.startPoint = snap.Point()
	m.gesture = g

	if g.Target == TargetNode || g.Target == TargetObject {
		m.setCursor(model.CursorGrab)
	} else {
		m.setCursor(model.CursorMove)
	}
	applog.Logger().Debug("bind: gesture started",
		slog.String("target", g.Target.String()),
		slog.String("wall", g.WallID))
	return true
}

// MouseMove updates the live preview. A mode change since MouseDown cancels
// the gesture.
func (m *Machine) MouseMove(snap model.SnapData) {
	if !m.Active() {
		return
	}
	if m.env.Mode() != model.ModeBind {
		m.Cancel()
		return
	}
	m.track(snap)
}

// Cancel drops the gesture in progress without touching the plan.
func (m *Machine) Cancel() {
	if !m.Active() {
		return
	}
	applog.Logger().Debug("bind: gesture cancelled", slog.String("target", m.gesture.Target.String()))
	m.clear()
}

func (m *Machine) clear() {
	if m.gesture != nil {
		m.gesture.Equations.Reset()
		m.gesture.active = false
	}
	m.gesture = nil
}

// hitTest builds a gesture for the item under the cursor: an opening, a
// device, a wall node, a wall body, in that order.
func (m *Machine) hitTest(snap model.SnapData) *Gesture {
	p := snap.Raw()
	bindRange := m.settings.BindRange

	for _, o := range m.env.Objects() {
		if o.InWall() && geometry.Distance(p, o.Position()) <= math.Max(o.Size/2, bindRange) {
			return &Gesture{Target: TargetObject, WallID: o.WallID, Object: o}
		}
	}

	for _, d := range m.env.Devices() {
		if geometry.Distance(p, model.Point2D{X: d.X, Y: d.Y}) <= math.Max(d.Size/2, bindRange) {
			return &Gesture{Target: TargetDevice, Device: d}
		}
	}

	walls := m.env.Walls()
	if ep, ok := geometry.NearestWallEndpoint(p, walls, bindRange); ok {
		w, _ := geometry.FindByID(ep.WallID, walls)
		g := &Gesture{Target: TargetNode, WallID: w.ID, End: ep.End, Original: w, Preview: w}
		eq := geometry.WallEquation(w)
		g.Equations.Equation1 = &eq
		g.followers = m.joinedAt(ep.Point, ep.End, walls, 2, w.ID)
		slots := []**model.WallEquation{&g.Equations.Equation2, &g.Equations.Equation3}
		for i, f := range g.followers {
			fw, _ := geometry.FindByID(f.wallID, walls)
			feq := geometry.WallEquation(fw)
			*slots[i] = &feq
		}
		return g
	}

	if hits := geometry.WallsContainingPoint(p, walls); len(hits) > 0 {
		w := hits[0]
		g := &Gesture{Target: TargetWall, WallID: w.ID, Original: w, Preview: w}
		eq := geometry.WallEquation(w)
		g.Equations.Equation1 = &eq
		g.Equations.Equation2 = m.sideEquation(g, w, model.EndStart, eq, walls)
		g.Equations.Equation3 = m.sideEquation(g, w, model.EndEnd, eq, walls)
		return g
	}
	return nil
}

// joinedAt returns up to limit wall endpoints within bind range of p, skipping
// the excluded walls. Each wall contributes its nearer end only.
func (m *Machine) joinedAt(p model.Point2D, side model.WallEnd, walls []model.Wall, limit int, exclude ...string) []follower {
	var result []follower
	skip := append([]string(nil), exclude...)
	for len(result) < limit {
		ep, ok := geometry.NearestWallEndpoint(p, walls, m.settings.BindRange, skip...)
		if !ok {
			break
		}
		result = append(result, follower{wallID: ep.WallID, end: ep.End, side: side})
		skip = append(skip, ep.WallID)
	}
	return result
}

// sideEquation returns the line an end of a dragged wall slides along: the
// equation of the wall joined there, or the perpendicular through the end
// when nothing is joined or the neighbour runs in the same direction. Only a
// neighbour that is not collinear becomes a follower.
func (m *Machine) sideEquation(g *Gesture, w model.Wall, end model.WallEnd, eq model.WallEquation, walls []model.Wall) *model.WallEquation {
	p := end.Point(w)
	side := geometry.Perpendicular(eq, p.X, p.Y)
	if joined := m.joinedAt(p, end, walls, 1, w.ID); len(joined) == 1 {
		nw, _ := geometry.FindByID(joined[0].wallID, walls)
		// A collinear neighbour stays put: the end detaches from it.
		if neq := geometry.WallEquation(nw); !neq.SameDirection(eq) {
			g.followers = append(g.followers, joined[0])
			side = neq
		}
	}
	return &side
}

func (m *Machine) setCursor(c model.CursorType) {
	if m.cb.SetCursor != nil {
		m.cb.SetCursor(c)
	}
}

func (m *Machine) setMode(mode model.Mode) {
	if m.cb.SetMode != nil {
		m.cb.SetMode(mode)
	}
}

func (m *Machine) save() {
	if m.cb.Save != nil {
		m.cb.Save()
	}
}
