package bind

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/piwi3910/FloorDraft/internal/applog"
	"github.com/piwi3910/FloorDraft/internal/geometry"
	"github.com/piwi3910/FloorDraft/internal/model"
)

// MouseUp finishes the gesture. A release within the click tolerance of the
// press is a click: it opens the opening or wall editor instead of moving
// anything. Otherwise the preview is committed to the plan.
func (m *Machine) MouseUp(snap model.SnapData) Result {
	if !m.Active() {
		return Result{Mode: m.env.Mode()}
	}
	if m.env.Mode() != model.ModeBind {
		m.Cancel()
		return Result{Mode: m.env.Mode()}
	}

	g := m.gesture
	m.track(snap)
	m.clear()
	m.setCursor(model.CursorDefault)

	switch g.Target {
	case TargetObject:
		return m.finishObject(g)
	case TargetDevice:
		return m.finishDevice(g)
	}

	if !g.moved {
		if m.cb.WallClicked != nil {
			m.cb.WallClicked(g.Original)
		}
		m.setMode(model.ModeEditWall)
		return Result{Mode: model.ModeEditWall}
	}

	walls, objects, ok := m.commitWalls(g)
	if !ok {
		applog.Logger().Warn("bind: dragged wall no longer exists", slog.String("wall", g.WallID))
		return Result{Mode: model.ModeBind}
	}
	if m.cb.SetWalls != nil {
		m.cb.SetWalls(walls)
	}
	if m.cb.SetObjects != nil {
		m.cb.SetObjects(objects)
	}
	m.setMode(model.ModeSelect)
	m.save()

	applog.Logger().Debug("bind: committed",
		slog.String("target", g.Target.String()),
		slog.String("wall", g.WallID),
		slog.Int("walls", len(walls)))
	return Result{Mode: model.ModeSelect, Walls: walls, Objects: objects, Committed: true}
}

func (m *Machine) finishObject(g *Gesture) Result {
	var objects []model.ObjectMetaData
	if g.moved {
		objects = slices.Clone(m.env.Objects())
		for i := range objects {
			if objects[i].ID == g.Object.ID {
				objects[i] = g.Object
			}
		}
		if m.cb.SetObjects != nil {
			m.cb.SetObjects(objects)
		}
		m.save()
	}
	if m.cb.StartModifyingOpening != nil {
		m.cb.StartModifyingOpening(g.Object)
	}
	m.setMode(model.ModeEditOpening)
	return Result{Mode: model.ModeEditOpening, Objects: objects, Committed: g.moved}
}

func (m *Machine) finishDevice(g *Gesture) Result {
	if g.moved {
		devices := slices.Clone(m.env.Devices())
		for i := range devices {
			if devices[i].ID == g.Device.ID {
				devices[i] = g.Device
			}
		}
		if m.cb.SetDevices != nil {
			m.cb.SetDevices(devices)
		}
		m.save()
	}
	m.setMode(model.ModeSelect)
	return Result{Mode: model.ModeSelect, Committed: g.moved}
}

// commitWalls applies the preview to a copy of the wall list: the dragged
// wall, its followers and, when the dragged node was joined to the line of
// another wall, that wall split or extended to meet the joint. Objects on
// walls whose geometry changed are passed through UpdateObject.
func (m *Machine) commitWalls(g *Gesture) ([]model.Wall, []model.ObjectMetaData, bool) {
	walls := slices.Clone(m.env.Walls())
	objects := slices.Clone(m.env.Objects())

	idx := geometry.IndexByID(g.WallID, walls)
	if idx < 0 {
		return nil, nil, false
	}

	before := map[string]model.Wall{}
	changed := func(i int) {
		if _, seen := before[walls[i].ID]; !seen {
			before[walls[i].ID] = walls[i]
		}
	}

	changed(idx)
	walls[idx].Start = g.Preview.Start
	walls[idx].End = g.Preview.End
	walls[idx].Refresh()

	for _, f := range g.followers {
		i := geometry.IndexByID(f.wallID, walls)
		if i < 0 {
			continue
		}
		changed(i)
		f.end.Set(&walls[i], f.side.Point(g.Preview))
		walls[i].Refresh()
	}

	if g.Target == TargetNode {
		joint := g.End.Point(g.Preview)
		switch {
		case g.boundNode != "":
			link(&walls[idx], g.End, g.boundNode)
		case g.boundWall != "":
			walls, objects = m.joinWall(walls, objects, g.boundWall, joint, changed)
			if i := geometry.IndexByID(g.WallID, walls); i >= 0 {
				link(&walls[i], g.End, g.boundWall)
			}
		}
	}

	if m.cb.UpdateObject != nil {
		for i, o := range objects {
			if !o.InWall() {
				continue
			}
			old, ok := before[o.WallID]
			if !ok {
				continue
			}
			now, ok := geometry.FindByID(o.WallID, walls)
			if !ok || (geometry.PointsEqual(old.Start, now.Start) && geometry.PointsEqual(old.End, now.End)) {
				continue
			}
			objects[i] = m.cb.UpdateObject(o, old, now)
		}
	}
	return walls, objects, true
}

// joinWall makes the wall with the given id meet joint. A joint strictly
// inside the wall splits it in two when splitting is enabled; a joint past
// one of its ends extends that end.
func (m *Machine) joinWall(walls []model.Wall, objects []model.ObjectMetaData, id string, joint model.Point2D, changed func(int)) ([]model.Wall, []model.ObjectMetaData) {
	i := geometry.IndexByID(id, walls)
	if i < 0 {
		return walls, objects
	}
	w := walls[i]
	if geometry.PointsEqual(joint, w.Start) || geometry.PointsEqual(joint, w.End) {
		return walls, objects
	}

	t, _ := geometry.ProjectOnSegment(joint, w.Start, w.End)
	switch {
	case t < 0:
		changed(i)
		walls[i].Start = joint
		walls[i].Refresh()
	case t > 1:
		changed(i)
		walls[i].End = joint
		walls[i].Refresh()
	case m.settings.SplitOnBind:
		tail := w
		tail.ID = splitID(w.ID, joint)
		tail.Start = joint
		tail.Parent = w.ID
		tail.Refresh()

		walls[i].End = joint
		walls[i].Child = tail.ID
		walls[i].Refresh()
		walls = slices.Insert(walls, i+1, tail)

		// Split halves are collinear with the original, so openings keep
		// their position and only change wall.
		for k, o := range objects {
			if o.InWall() && o.WallID == w.ID {
				if ot, _ := geometry.ProjectOnSegment(o.Position(), w.Start, w.End); ot > t {
					objects[k].WallID = tail.ID
				}
			}
		}
		applog.Logger().Debug("bind: split wall", slog.String("wall", w.ID), slog.String("tail", tail.ID))
	}
	return walls, objects
}

// splitID derives the id of the tail of a split wall from the split wall
// and the joint, so repeating a commit yields the same plan.
func splitID(wallID string, joint model.Point2D) string {
	name := fmt.Sprintf("%s@%g,%g", wallID, joint.X, joint.Y)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()[:8]
}

func link(w *model.Wall, end model.WallEnd, other string) {
	if end == model.EndEnd {
		w.Child = other
		return
	}
	w.Parent = other
}
