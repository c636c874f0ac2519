package widgets

import (
	"image/color"
	"log/slog"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/FloorDraft/internal/applog"
	"github.com/piwi3910/FloorDraft/internal/bind"
	"github.com/piwi3910/FloorDraft/internal/editor"
	"github.com/piwi3910/FloorDraft/internal/geometry"
	"github.com/piwi3910/FloorDraft/internal/model"
)

var (
	backgroundColor = color.NRGBA{R: 250, G: 250, B: 247, A: 255}
	gridColor       = color.NRGBA{R: 225, G: 225, B: 220, A: 255}
	wallColor       = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
	separateColor   = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	previewColor    = color.NRGBA{R: 33, G: 150, B: 243, A: 220}
	jointColor      = color.NRGBA{R: 244, G: 67, B: 54, A: 255}
	openingColor    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	deviceColor     = color.NRGBA{R: 255, G: 152, B: 0, A: 255}
	roomTextColor   = color.NRGBA{R: 90, G: 90, B: 90, A: 255}
)

// zoomStep is the zoom change per scroll notch.
const zoomStep = 1.1

// PlanCanvas draws the plan held by an editor and forwards pointer input to
// it. Page coordinates are the window's absolute positions; the canvas
// offset is the widget's own absolute position.
type PlanCanvas struct {
	widget.BaseWidget
	editor *editor.Editor

	// OnError is called when the editor rejects an event.
	OnError func(error)
}

func NewPlanCanvas(ed *editor.Editor) *PlanCanvas {
	pc := &PlanCanvas{editor: ed}
	pc.ExtendBaseWidget(pc)
	return pc
}

// Offset reports where the canvas sits in the window. It is not available
// until the widget has been laid out.
func (pc *PlanCanvas) Offset() (model.Point2D, bool) {
	if pc.Size().IsZero() || fyne.CurrentApp() == nil {
		return model.Point2D{}, false
	}
	pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(pc)
	return model.Point2D{X: float64(pos.X), Y: float64(pos.Y)}, true
}

func (pc *PlanCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &planCanvasRenderer{pc: pc}
	r.rebuild()
	return r
}

func pageEvent(ev *fyne.PointEvent) geometry.InputEvent {
	return geometry.InputEvent{
		Kind:  geometry.InputMouse,
		PageX: float64(ev.AbsolutePosition.X),
		PageY: float64(ev.AbsolutePosition.Y),
	}
}

func (pc *PlanCanvas) dispatch(handle func(geometry.InputEvent) error, ev *fyne.PointEvent) {
	if err := handle(pageEvent(ev)); err != nil {
		applog.Logger().Warn("canvas: pointer event rejected", slog.Any("error", err))
		if pc.OnError != nil {
			pc.OnError(err)
		}
	}
	pc.Refresh()
}

// MouseDown implements desktop.Mouseable.
func (pc *PlanCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	pc.dispatch(pc.editor.MouseDown, &ev.PointEvent)
}

// MouseUp implements desktop.Mouseable.
func (pc *PlanCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	pc.dispatch(pc.editor.MouseUp, &ev.PointEvent)
}

// MouseIn implements desktop.Hoverable.
func (pc *PlanCanvas) MouseIn(*desktop.MouseEvent) {}

// MouseMoved implements desktop.Hoverable.
func (pc *PlanCanvas) MouseMoved(ev *desktop.MouseEvent) {
	pc.dispatch(pc.editor.MouseMove, &ev.PointEvent)
}

// MouseOut implements desktop.Hoverable.
func (pc *PlanCanvas) MouseOut() {}

// Dragged implements fyne.Draggable. Fyne reports moves with a button held
// as drags, so they are routed to MouseMove too.
func (pc *PlanCanvas) Dragged(ev *fyne.DragEvent) {
	pc.dispatch(pc.editor.MouseMove, &ev.PointEvent)
}

// DragEnd implements fyne.Draggable. The release arrives through MouseUp.
func (pc *PlanCanvas) DragEnd() {}

// Scrolled implements fyne.Scrollable: the wheel zooms around the cursor.
func (pc *PlanCanvas) Scrolled(ev *fyne.ScrollEvent) {
	factor := math.Pow(zoomStep, float64(-ev.Scrolled.DY)/10)
	pos := model.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	pc.editor.SetViewbox(ZoomAt(pc.editor.Viewbox(), pos, factor))
	pc.Refresh()
}

// Cursor implements desktop.Cursorable.
func (pc *PlanCanvas) Cursor() desktop.Cursor {
	switch pc.editor.Cursor() {
	case model.CursorPointer, model.CursorGrab:
		return desktop.PointerCursor
	case model.CursorMove:
		return desktop.HResizeCursor
	case model.CursorValidation:
		return desktop.CrosshairCursor
	default:
		return desktop.DefaultCursor
	}
}

// ZoomAt multiplies the zoom factor of vb, keeping the model point under pos
// (canvas-relative pixels) in place.
func ZoomAt(vb geometry.Viewbox, pos model.Point2D, factor float64) geometry.Viewbox {
	if factor <= 0 {
		return vb
	}
	m := FromScreen(vb, pos)
	vb.ZoomFactor *= factor
	vb.ZoomFactor = math.Max(0.05, math.Min(vb.ZoomFactor, 50))
	vb.OriginX = m.X - pos.X*vb.ZoomFactor
	vb.OriginY = m.Y - pos.Y*vb.ZoomFactor
	return vb
}

// ToScreen maps a model point to canvas-relative pixels.
func ToScreen(vb geometry.Viewbox, p model.Point2D) fyne.Position {
	return fyne.NewPos(
		float32((p.X-vb.OriginX)/vb.ZoomFactor),
		float32((p.Y-vb.OriginY)/vb.ZoomFactor),
	)
}

// FromScreen is the inverse of ToScreen.
func FromScreen(vb geometry.Viewbox, pos model.Point2D) model.Point2D {
	return model.Point2D{X: pos.X*vb.ZoomFactor + vb.OriginX, Y: pos.Y*vb.ZoomFactor + vb.OriginY}
}

type planCanvasRenderer struct {
	pc      *PlanCanvas
	size    fyne.Size
	objects []fyne.CanvasObject
}

func (r *planCanvasRenderer) rebuild() {
	r.objects = nil
	ed := r.pc.editor
	vb := ed.Viewbox()
	plan := ed.Plan()

	bg := canvas.NewRectangle(backgroundColor)
	bg.Resize(r.size)
	r.objects = append(r.objects, bg)
	r.drawGrid(vb, plan.Settings.GridSize)

	for _, room := range plan.Rooms {
		if room.Name == "" || len(room.Polygon) == 0 {
			continue
		}
		min, max := room.Polygon.BoundingBox()
		label := canvas.NewText(room.Name, roomTextColor)
		label.TextSize = 11
		label.Move(ToScreen(vb, model.Point2D{X: (min.X + max.X) / 2, Y: (min.Y + max.Y) / 2}))
		r.objects = append(r.objects, label)
	}

	g := ed.Bind().Gesture()
	if g != nil && !g.Moved() {
		g = nil
	}
	for _, w := range plan.Walls {
		if g != nil && (g.Target == bind.TargetNode || g.Target == bind.TargetWall) && w.ID == g.WallID {
			continue
		}
		r.drawWall(vb, w, wallColor)
	}

	for _, o := range plan.Objects {
		if g != nil && g.Target == bind.TargetObject && o.ID == g.Object.ID {
			o = g.Object
		}
		if !o.InWall() || o.Limits[0] == o.Limits[1] {
			continue
		}
		r.line(vb, o.Limits[0], o.Limits[1], float32(o.Thickness/vb.ZoomFactor*0.8), openingColor)
	}

	for _, d := range plan.Devices {
		if g != nil && g.Target == bind.TargetDevice && d.ID == g.Device.ID {
			d = g.Device
		}
		r.circle(vb, model.Point2D{X: d.X, Y: d.Y}, math.Max(d.Size/2, 3), deviceColor)
	}

	if g != nil {
		r.drawGesture(vb, g)
	}
	if d := ed.Draft(); d != nil && d.Start != d.End {
		r.drawWall(vb, model.Wall{Start: d.Start, End: d.End, Type: d.Type, Thickness: d.Thickness}, previewColor)
	}
}

// drawGesture shows the dragged wall and the joint it would bind to.
func (r *planCanvasRenderer) drawGesture(vb geometry.Viewbox, g *bind.Gesture) {
	if g.Target != bind.TargetNode && g.Target != bind.TargetWall {
		return
	}
	r.drawWall(vb, g.Preview, previewColor)
	if p := g.Equations.Intersection; p != nil {
		r.circle(vb, *p, 4*vb.ZoomFactor, jointColor)
	}
}

func (r *planCanvasRenderer) drawGrid(vb geometry.Viewbox, grid float64) {
	if grid <= 0 || r.size.IsZero() {
		return
	}
	step := grid / vb.ZoomFactor
	for step < 8 {
		step *= 2
	}
	first := func(origin float64) float64 {
		return (math.Ceil(origin/grid)*grid - origin) / vb.ZoomFactor
	}
	for x := first(vb.OriginX); x < float64(r.size.Width); x += step {
		l := canvas.NewLine(gridColor)
		l.Position1 = fyne.NewPos(float32(x), 0)
		l.Position2 = fyne.NewPos(float32(x), r.size.Height)
		r.objects = append(r.objects, l)
	}
	for y := first(vb.OriginY); y < float64(r.size.Height); y += step {
		l := canvas.NewLine(gridColor)
		l.Position1 = fyne.NewPos(0, float32(y))
		l.Position2 = fyne.NewPos(r.size.Width, float32(y))
		r.objects = append(r.objects, l)
	}
}

func (r *planCanvasRenderer) drawWall(vb geometry.Viewbox, w model.Wall, col color.Color) {
	if w.Type == model.WallSeparate && col == wallColor {
		col = separateColor
	}
	width := float32(w.Thickness / vb.ZoomFactor)
	if width < 1 {
		width = 1
	}
	r.line(vb, w.Start, w.End, width, col)
}

func (r *planCanvasRenderer) line(vb geometry.Viewbox, a, b model.Point2D, width float32, col color.Color) {
	l := canvas.NewLine(col)
	l.StrokeWidth = width
	l.Position1 = ToScreen(vb, a)
	l.Position2 = ToScreen(vb, b)
	r.objects = append(r.objects, l)
}

func (r *planCanvasRenderer) circle(vb geometry.Viewbox, c model.Point2D, radius float64, col color.Color) {
	rad := float32(radius / vb.ZoomFactor)
	center := ToScreen(vb, c)
	circle := canvas.NewCircle(col)
	circle.Move(fyne.NewPos(center.X-rad, center.Y-rad))
	circle.Resize(fyne.NewSize(2*rad, 2*rad))
	r.objects = append(r.objects, circle)
}

func (r *planCanvasRenderer) Layout(size fyne.Size) {
	if size != r.size {
		r.size = size
		r.rebuild()
	}
}

func (r *planCanvasRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.pc)
}

func (r *planCanvasRenderer) Destroy()                     {}
func (r *planCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *planCanvasRenderer) MinSize() fyne.Size           { return fyne.NewSize(400, 300) }
