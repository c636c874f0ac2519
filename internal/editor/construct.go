package editor

import (
	"log/slog"

	"github.com/piwi3910/FloorDraft/internal/applog"
	"github.com/piwi3910/FloorDraft/internal/geometry"
	"github.com/piwi3910/FloorDraft/internal/model"
)

// Draft is a wall being drawn in Line or Partition mode.
type Draft struct {
	Start, End model.Point2D
	Type       string
	Thickness  float64
	chained    bool // started from the end of the previous wall
}

// Draft returns the wall under construction, or nil.
func (e *Editor) Draft() *Draft {
	return e.draft
}

// anchor snaps p onto a nearby wall endpoint.
func (e *Editor) anchor(snap model.SnapData) model.Point2D {
	if ep, ok := geometry.NearestWallEndpoint(snap.Raw(), e.plan.Walls, e.plan.Settings.BindRange); ok {
		return ep.Point
	}
	return snap.Point()
}

func (e *Editor) startDraft(snap model.SnapData) {
	if e.draft != nil {
		return
	}
	d := &Draft{Type: model.WallNormal, Thickness: e.plan.Settings.WallSize}
	if e.mode == model.ModePartition {
		d.Type = model.WallSeparate
		d.Thickness = e.plan.Settings.PartitionSize
	}
	d.Start = e.anchor(snap)
	d.End = d.Start
	e.draft = d
	e.setCursor(model.CursorValidation)
}

func (e *Editor) trackDraft(snap model.SnapData) {
	if e.draft == nil {
		return
	}
	e.draft.End = e.anchor(snap)
	e.setMeasurement(model.Wall{Start: e.draft.Start, End: e.draft.End}, nil)
}

// finishDraft ends the current segment. A release on the start point of a
// fresh draft keeps drawing; one on the start of a chained draft ends the
// chain. A segment shorter than MinWallLength meters is dropped and ends
// construction.
func (e *Editor) finishDraft(snap model.SnapData) {
	d := e.draft
	if d == nil {
		return
	}
	d.End = e.anchor(snap)
	s := e.plan.Settings

	if geometry.Distance(d.Start, d.End) <= s.ClickTolerance {
		if d.chained {
			e.draft = nil
			e.SetMode(model.ModeSelect)
		}
		return
	}

	meter := s.MeterSize
	if meter <= 0 {
		meter = 1
	}
	if geometry.Distance(d.Start, d.End)/meter < s.MinWallLength {
		applog.Logger().Debug("editor: wall too short", slog.Float64("length", geometry.Distance(d.Start, d.End)))
		e.draft = nil
		e.SetMode(model.ModeSelect)
		return
	}

	w := model.NewWall(d.Start, d.End, d.Type, d.Thickness)
	if prev, ok := e.wallEndingAt(d.Start); ok {
		w.Parent = prev
	}
	e.plan.Walls = append(e.plan.Walls, w)
	e.Save("Add wall")

	if s.ContinuousWalls {
		e.draft = &Draft{Start: d.End, End: d.End, Type: d.Type, Thickness: d.Thickness, chained: true}
		return
	}
	e.draft = nil
}

func (e *Editor) wallEndingAt(p model.Point2D) (string, bool) {
	for i := len(e.plan.Walls) - 1; i >= 0; i-- {
		if geometry.PointsEqual(e.plan.Walls[i].End, p) {
			return e.plan.Walls[i].ID, true
		}
	}
	return "", false
}
