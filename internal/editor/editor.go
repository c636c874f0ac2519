// Package editor routes pointer events to the active editing mode and owns
// the plan being edited. It is the single writer of the plan: the bind
// state machine and wall construction report their results through it.
package editor

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/piwi3910/FloorDraft/internal/applog"
	"github.com/piwi3910/FloorDraft/internal/bind"
	"github.com/piwi3910/FloorDraft/internal/geometry"
	"github.com/piwi3910/FloorDraft/internal/model"
)

// Hooks notify the UI. Nil entries are skipped.
type Hooks struct {
	Changed         func()
	ModeChanged     func(model.Mode)
	CursorChanged   func(model.CursorType)
	Measurement     func(text string)
	WallClicked     func(model.Wall)
	OpeningSelected func(model.ObjectMetaData)
}

// Editor holds the plan, the current mode and the view, and dispatches
// pointer events. All methods must be called from the UI goroutine.
type Editor struct {
	plan    model.Plan
	mode    model.Mode
	viewbox geometry.Viewbox
	offset  geometry.OffsetFunc
	hooks   Hooks

	bind      *bind.Machine
	history   *History
	lastSaved Snapshot
	draft     *Draft

	cursor      model.CursorType
	measurement string
	dirty       bool
}

// New returns an editor for plan in Select mode. offset reports where the
// canvas sits on the page; see geometry.Snap.
func New(plan model.Plan, offset geometry.OffsetFunc, hooks Hooks) *Editor {
	e := &Editor{
		plan:    plan,
		mode:    model.ModeSelect,
		viewbox: geometry.DefaultViewbox(),
		offset:  offset,
		hooks:   hooks,
		history: NewHistory(),
		cursor:  model.CursorDefault,
	}
	e.bind = bind.New(e, bind.Callbacks{
		SetWalls:              func(w []model.Wall) { e.plan.Walls = w },
		SetObjects:            func(o []model.ObjectMetaData) { e.plan.Objects = o },
		SetDevices:            func(d []model.DeviceMetaData) { e.plan.Devices = d },
		SetCursor:             e.setCursor,
		SetMeasurementText:    e.setMeasurement,
		SetMode:               e.SetMode,
		StartModifyingOpening: e.openingSelected,
		WallClicked:           e.wallClicked,
		Save:                  func() { e.Save("Move") },
		UpdateObject:          geometry.ReanchorObject,
	}, plan.Settings)
	e.lastSaved = MakeSnapshot(plan, "Open")
	return e
}

// Walls, Objects, Devices and Mode expose the editor state to the bind
// state machine.
func (e *Editor) Walls() []model.Wall             { return e.plan.Walls }
func (e *Editor) Objects() []model.ObjectMetaData { return e.plan.Objects }
func (e *Editor) Devices() []model.DeviceMetaData { return e.plan.Devices }
func (e *Editor) Mode() model.Mode                { return e.mode }

func (e *Editor) Rooms() []model.RoomMetaData { return e.plan.Rooms }

// Plan returns the plan being edited.
func (e *Editor) Plan() model.Plan {
	return e.plan
}

// Load replaces the plan and forgets all history.
func (e *Editor) Load(plan model.Plan) {
	e.SetMode(model.ModeSelect)
	e.plan = plan
	e.bind.SetSettings(plan.Settings)
	e.history.Clear()
	e.lastSaved = MakeSnapshot(plan, "Open")
	e.dirty = false
	e.changed()
}

// SetSettings replaces the editor settings of the plan.
func (e *Editor) SetSettings(s model.EditorSettings) {
	e.plan.Settings = s
	e.bind.SetSettings(s)
	e.changed()
}

func (e *Editor) SetName(name string) {
	e.plan.Name = name
	e.dirty = true
}

// Dirty reports whether the plan changed since Load or MarkClean.
func (e *Editor) Dirty() bool {
	return e.dirty
}

func (e *Editor) MarkClean() {
	e.dirty = false
}

func (e *Editor) Viewbox() geometry.Viewbox {
	return e.viewbox
}

func (e *Editor) SetViewbox(vb geometry.Viewbox) {
	if vb.ZoomFactor <= 0 {
		vb.ZoomFactor = 1
	}
	e.viewbox = vb
}

func (e *Editor) Cursor() model.CursorType {
	return e.cursor
}

func (e *Editor) MeasurementText() string {
	return e.measurement
}

// Bind returns the bind state machine, for previews.
func (e *Editor) Bind() *bind.Machine {
	return e.bind
}

// SetMode switches the editing mode. Leaving Bind cancels the gesture in
// progress; leaving Line or Partition drops the wall under construction.
func (e *Editor) SetMode(mode model.Mode) {
	if mode == e.mode {
		return
	}
	if e.mode == model.ModeBind {
		e.bind.Cancel()
	}
	if e.draft != nil && mode != model.ModeLine && mode != model.ModePartition {
		e.draft = nil
	}
	applog.Logger().Debug("editor: mode", slog.String("from", e.mode.String()), slog.String("to", mode.String()))
	e.mode = mode
	if e.hooks.ModeChanged != nil {
		e.hooks.ModeChanged(mode)
	}
}

func (e *Editor) snap(ev geometry.InputEvent) (model.SnapData, error) {
	state := geometry.SnapOff
	if e.plan.Settings.Snap {
		state = geometry.SnapOn
	}
	snap, err := geometry.Snap(ev, e.viewbox, e.offset, state, e.plan.Settings.GridSize)
	if err != nil {
		e.bind.Cancel()
		applog.Logger().Warn("editor: snap failed", slog.Any("error", err))
		return model.SnapData{}, fmt.Errorf("snap pointer event: %w", err)
	}
	return snap, nil
}

// MouseDown dispatches a press. In Select mode a press on a wall, node,
// opening or device switches to Bind and starts a drag.
func (e *Editor) MouseDown(ev geometry.InputEvent) error {
	snap, err := e.snap(ev)
	if err != nil {
		return err
	}
	switch e.mode {
	case model.ModeSelect:
		if e.grabAt(snap.Raw()) == model.CursorDefault {
			return nil
		}
		e.SetMode(model.ModeBind)
		if !e.bind.MouseDown(snap) {
			e.SetMode(model.ModeSelect)
		}
	case model.ModeBind:
		if !e.bind.MouseDown(snap) {
			e.SetMode(model.ModeSelect)
			e.hover(snap)
		}
	case model.ModeLine, model.ModePartition:
		e.startDraft(snap)
	}
	return nil
}

// MouseMove dispatches a pointer move.
func (e *Editor) MouseMove(ev geometry.InputEvent) error {
	snap, err := e.snap(ev)
	if err != nil {
		return err
	}
	switch e.mode {
	case model.ModeBind:
		e.bind.MouseMove(snap)
	case model.ModeLine, model.ModePartition:
		e.trackDraft(snap)
	case model.ModeSelect:
		e.hover(snap)
	}
	return nil
}

// MouseUp dispatches a release.
func (e *Editor) MouseUp(ev geometry.InputEvent) error {
	snap, err := e.snap(ev)
	if err != nil {
		return err
	}
	switch e.mode {
	case model.ModeBind:
		e.bind.MouseUp(snap)
	case model.ModeLine, model.ModePartition:
		e.finishDraft(snap)
	}
	return nil
}

// hover updates the cursor to show what a press would grab.
func (e *Editor) hover(snap model.SnapData) {
	e.setCursor(e.grabAt(snap.Raw()))
}

// grabAt returns the cursor for the item a press at p would grab, in bind
// hit-test order. CursorDefault means nothing is there.
func (e *Editor) grabAt(p model.Point2D) model.CursorType {
	r := e.plan.Settings.BindRange
	switch {
	case nearObject(p, e.plan.Objects, r) || nearDevice(p, e.plan.Devices, r):
		return model.CursorPointer
	case hasEndpoint(p, e.plan.Walls, r):
		return model.CursorGrab
	case len(geometry.WallsContainingPoint(p, e.plan.Walls)) > 0:
		return model.CursorMove
	default:
		return model.CursorDefault
	}
}

func nearObject(p model.Point2D, objects []model.ObjectMetaData, r float64) bool {
	for _, o := range objects {
		if o.InWall() && geometry.Distance(p, o.Position()) <= math.Max(o.Size/2, r) {
			return true
		}
	}
	return false
}

func nearDevice(p model.Point2D, devices []model.DeviceMetaData, r float64) bool {
	for _, d := range devices {
		if geometry.Distance(p, model.Point2D{X: d.X, Y: d.Y}) <= math.Max(d.Size/2, r) {
			return true
		}
	}
	return false
}

func hasEndpoint(p model.Point2D, walls []model.Wall, r float64) bool {
	_, ok := geometry.NearestWallEndpoint(p, walls, r)
	return ok
}

// Save records the current plan as an undoable step.
func (e *Editor) Save(label string) {
	e.history.Push(e.lastSaved)
	e.lastSaved = MakeSnapshot(e.plan, label)
	e.dirty = true
	applog.Logger().Debug("editor: saved", slog.String("label", label), slog.Int("walls", len(e.plan.Walls)))
	e.changed()
}

// Undo restores the state before the last saved step.
func (e *Editor) Undo() bool {
	return e.restore(e.history.Undo)
}

// Redo reapplies the last undone step.
func (e *Editor) Redo() bool {
	return e.restore(e.history.Redo)
}

func (e *Editor) CanUndo() bool { return e.history.CanUndo() }
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

func (e *Editor) restore(pop func(Snapshot) (Snapshot, bool)) bool {
	e.SetMode(model.ModeSelect)
	s, ok := pop(e.lastSaved)
	if !ok {
		return false
	}
	s.apply(&e.plan)
	e.lastSaved = s
	e.dirty = true
	e.changed()
	return true
}

// AddWalls appends walls, for imports, as one undoable step.
func (e *Editor) AddWalls(walls []model.Wall, label string) {
	if len(walls) == 0 {
		return
	}
	e.plan.Walls = append(e.plan.Walls, walls...)
	e.Save(label)
}

// DeleteWall removes a wall and the openings anchored to it.
func (e *Editor) DeleteWall(id string) bool {
	i := geometry.IndexByID(id, e.plan.Walls)
	if i < 0 {
		return false
	}
	e.plan.Walls = append(e.plan.Walls[:i:i], e.plan.Walls[i+1:]...)
	var kept []model.ObjectMetaData
	for _, o := range e.plan.Objects {
		if !(o.InWall() && o.WallID == id) {
			kept = append(kept, o)
		}
	}
	e.plan.Objects = kept
	e.Save("Delete wall")
	return true
}

// UpdateWall replaces the type and thickness of a wall.
func (e *Editor) UpdateWall(id, wallType string, thickness float64) bool {
	i := geometry.IndexByID(id, e.plan.Walls)
	if i < 0 || thickness <= 0 {
		return false
	}
	e.plan.Walls[i].Type = wallType
	e.plan.Walls[i].Thickness = thickness
	e.plan.Walls[i].Refresh()
	e.Save("Edit wall")
	return true
}

// ResizeOpening changes the width of an in-wall object, keeping its center.
func (e *Editor) ResizeOpening(id string, size float64) bool {
	i := slices.IndexFunc(e.plan.Objects, func(o model.ObjectMetaData) bool { return o.ID == id })
	if i < 0 || size <= 0 {
		return false
	}
	o := e.plan.Objects[i]
	w, ok := geometry.FindByID(o.WallID, e.plan.Walls)
	if !o.InWall() || !ok || size > w.Length() {
		return false
	}
	t, _ := geometry.ProjectOnSegment(o.Position(), w.Start, w.End)
	o.Size = size
	e.plan.Objects[i] = geometry.PlaceOnWall(o, w, t)
	e.Save("Resize opening")
	return true
}

// DeleteObject removes an object or opening.
func (e *Editor) DeleteObject(id string) bool {
	i := slices.IndexFunc(e.plan.Objects, func(o model.ObjectMetaData) bool { return o.ID == id })
	if i < 0 {
		return false
	}
	e.plan.Objects = slices.Delete(slices.Clone(e.plan.Objects), i, i+1)
	e.Save("Delete object")
	return true
}

// FormatLength renders a model length in meters.
func (e *Editor) FormatLength(l float64) string {
	meter := e.plan.Settings.MeterSize
	if meter <= 0 {
		meter = 1
	}
	return fmt.Sprintf("%.2f m", l/meter)
}

func (e *Editor) setCursor(c model.CursorType) {
	e.cursor = c
	if e.hooks.CursorChanged != nil {
		e.hooks.CursorChanged(c)
	}
}

func (e *Editor) setMeasurement(w model.Wall, objects []model.ObjectMetaData) {
	text := e.FormatLength(w.Length())
	if n := len(objects); n == 1 {
		text += " (1 opening)"
	} else if n > 1 {
		text += fmt.Sprintf(" (%d openings)", n)
	}
	e.measurement = text
	if e.hooks.Measurement != nil {
		e.hooks.Measurement(text)
	}
}

func (e *Editor) openingSelected(o model.ObjectMetaData) {
	if e.hooks.OpeningSelected != nil {
		e.hooks.OpeningSelected(o)
	}
}

func (e *Editor) wallClicked(w model.Wall) {
	if e.hooks.WallClicked != nil {
		e.hooks.WallClicked(w)
	}
}

func (e *Editor) changed() {
	if e.hooks.Changed != nil {
		e.hooks.Changed()
	}
}
