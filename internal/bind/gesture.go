package bind

import (
	"math"
	"slices"

	"github.com/piwi3910/FloorDraft/internal/geometry"
	"github.com/piwi3910/FloorDraft/internal/model"
)

// Gesture is the context of one Bind mode drag. It is built on MouseDown,
// updated on every MouseMove and dropped after MouseUp or Cancel.
type Gesture struct {
	active bool

	Target Target
	WallID string        // dragged wall, or the wall an opening sits in
	End    model.WallEnd // dragged end, for TargetNode

	Original model.Wall // dragged wall as it was on MouseDown
	Preview  model.Wall // dragged wall at the last cursor position

	// Equations holds the dragged wall's live equation in Equation1 and the
	// lines it is being joined to in Equation2 and Equation3. Intersection
	// is the joint found for the last cursor position.
	Equations model.WallEquationGroup

	Object model.ObjectMetaData
	Device model.DeviceMetaData

	followers []follower
	boundWall string // wall whose line, not endpoint, produced the joint
	boundNode string // wall whose endpoint the dragged node snapped to

	startRaw   model.Point2D
	startPoint model.Point2D
	moved      bool
}

// Moved reports whether the cursor left the click tolerance since MouseDown.
func (g *Gesture) Moved() bool {
	return g.moved
}

// Followers returns the ids of the walls whose ends move with the gesture.
func (g *Gesture) Followers() []string {
	ids := make([]string, len(g.followers))
	for i, f := range g.followers {
		ids[i] = f.wallID
	}
	return ids
}

// track recomputes the preview for the cursor position in snap.
func (m *Machine) track(snap model.SnapData) {
	g := m.gesture
	if !g.moved && geometry.Distance(snap.Raw(), g.startRaw) > m.settings.ClickTolerance {
		g.moved = true
	}
	if !g.moved {
		return
	}

	switch g.Target {
	case TargetObject:
		m.trackObject(snap)
	case TargetDevice:
		g.Device.X, g.Device.Y = snap.X, snap.Y
	case TargetNode:
		m.trackNode(snap)
		m.measure()
	case TargetWall:
		m.trackWall(snap)
		m.measure()
	}
}

func (m *Machine) measure() {
	if m.cb.SetMeasurementText == nil {
		return
	}
	g := m.gesture
	m.cb.SetMeasurementText(g.Preview, geometry.ObjectsOnWall(g.Original, m.env.Objects()))
}

// trackObject slides an opening along its wall, keeping it inside the wall.
func (m *Machine) trackObject(snap model.SnapData) {
	g := m.gesture
	w, ok := geometry.FindByID(g.Object.WallID, m.env.Walls())
	if !ok {
		return
	}
	t, _ := geometry.ProjectOnSegment(snap.Point(), w.Start, w.End)
	if length := w.Length(); length > 0 {
		half := math.Min(g.Object.Size/2/length, 0.5)
		t = math.Max(half, math.Min(1-half, t))
	}
	g.Object = geometry.PlaceOnWall(g.Object, w, t)
}

// trackNode moves the dragged end to the cursor, joining it to a nearby
// wall endpoint or to the line of a nearby wall when one is in range.
func (m *Machine) trackNode(snap model.SnapData) {
	g := m.gesture
	raw := snap.Raw()
	target := snap.Point()
	fixed := g.End.Opposite().Point(g.Original)
	walls := m.env.Walls()
	exclude := append([]string{g.WallID}, g.Followers()...)

	eq := geometry.EquationThrough(fixed, target)
	g.Equations.Equation1 = &eq
	g.Equations.Equation2 = nil
	g.Equations.Equation3 = nil
	g.Equations.Intersection = nil
	g.boundWall = ""
	g.boundNode = ""

	joint := target
	if ep, ok := geometry.NearestWallEndpoint(raw, walls, m.settings.BindRange, exclude...); ok {
		joint = ep.Point
		g.boundNode = ep.WallID
		g.Equations.Intersection = &joint
	} else {
		candidates := m.bindCandidates(raw, walls, exclude)
		for i, c := range candidates {
			ceq := geometry.WallEquation(c)
			if i == 0 {
				g.Equations.Equation2 = &ceq
			} else {
				g.Equations.Equation3 = &ceq
			}
		}
		for _, c := range candidates {
			p, ok := geometry.Intersect(eq, geometry.WallEquation(c))
			if ok && finite(p) && geometry.Distance(p, raw) <= m.settings.BindRange {
				joint = p
				g.boundWall = c.ID
				g.Equations.Intersection = &joint
				break
			}
		}
	}

	g.Preview = g.Original
	g.End.Set(&g.Preview, joint)
	g.Preview.Refresh()
}

// bindCandidates returns at most two walls to join the dragged node to:
// walls the cursor is over or near first, then walls whose line, extended
// past their ends, passes within bind range.
func (m *Machine) bindCandidates(p model.Point2D, walls []model.Wall, exclude []string) []model.Wall {
	var near, aligned []model.Wall
	for _, w := range walls {
		if slices.Contains(exclude, w.ID) {
			continue
		}
		switch {
		case geometry.PointInPolygon(p, w.Coords[:]) || geometry.DistanceToSegment(p, w.Start, w.End) <= m.settings.BindRange:
			near = append(near, w)
		case w.Length() > 0:
			if _, proj := geometry.ProjectOnSegment(p, w.Start, w.End); geometry.Distance(p, proj) <= m.settings.BindRange {
				aligned = append(aligned, w)
			}
		}
	}
	result := append(near, aligned...)
	if len(result) > 2 {
		result = result[:2]
	}
	return result
}

// trackWall translates the dragged wall with the cursor and slides its ends
// along Equation2 and Equation3.
func (m *Machine) trackWall(snap model.SnapData) {
	g := m.gesture
	p := snap.Point()
	dx := p.X - g.startPoint.X
	dy := p.Y - g.startPoint.Y

	eq := geometry.Parallel(geometry.WallEquation(g.Original), g.Original.Start.X+dx, g.Original.Start.Y+dy)
	g.Equations.Equation1 = &eq

	start := model.Point2D{X: g.Original.Start.X + dx, Y: g.Original.Start.Y + dy}
	end := model.Point2D{X: g.Original.End.X + dx, Y: g.Original.End.Y + dy}
	if g.Equations.Equation2 != nil {
		if s, ok := geometry.Intersect(eq, *g.Equations.Equation2); ok && finite(s) {
			start = s
		}
	}
	if g.Equations.Equation3 != nil {
		if e, ok := geometry.Intersect(eq, *g.Equations.Equation3); ok && finite(e) {
			end = e
		}
	}
	g.Equations.Intersection = &start

	g.Preview = g.Original
	g.Preview.Start = start
	g.Preview.End = end
	g.Preview.Refresh()
}

func finite(p model.Point2D) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
