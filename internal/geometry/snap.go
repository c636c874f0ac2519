package geometry

import (
	"errors"
	"math"

	"github.com/piwi3910/FloorDraft/internal/model"
)

var (
	// ErrUnknownInputEvent is returned for events that are neither a mouse
	// event nor a touch end carrying at least one changed touch.
	ErrUnknownInputEvent = errors.New("unknown input event")
	// ErrNoCanvasOffset is returned when the canvas has not been measured yet.
	ErrNoCanvasOffset = errors.New("could not get canvas offset")
)

// InputKind classifies a raw pointer event.
type InputKind int

const (
	InputUnknown InputKind = iota
	InputMouse
	InputTouchEnd
)

// InputEvent is a pointer event in device pixels relative to the page.
type InputEvent struct {
	Kind           InputKind
	PageX, PageY   float64
	ChangedTouches []model.Point2D // touch events only, page coordinates
}

// Viewbox is the current pan and zoom of the canvas.
type Viewbox struct {
	OriginX    float64 `json:"origin_x"`
	OriginY    float64 `json:"origin_y"`
	ZoomFactor float64 `json:"zoom_factor"` // model units per device pixel
}

// DefaultViewbox is an unpanned, unzoomed view.
func DefaultViewbox() Viewbox {
	return Viewbox{ZoomFactor: 1}
}

// OffsetFunc reports the canvas position on the page in device pixels. ok is
// false until the layout has been measured.
type OffsetFunc func() (offset model.Point2D, ok bool)

// SnapState switches grid rounding on or off.
type SnapState bool

const (
	SnapOff SnapState = false
	SnapOn  SnapState = true
)

// roundHalfUp rounds halves toward +Inf: on a 20 grid -10 snaps to 0 and
// +10 snaps to 20.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Snap converts a page-space event to model space and optionally rounds the
// result to the nearest multiple of gridSize. XMouse and YMouse always carry
// the unrounded model position.
func Snap(ev InputEvent, vb Viewbox, offset OffsetFunc, state SnapState, gridSize float64) (model.SnapData, error) {
	var eX, eY float64
	switch ev.Kind {
	case InputTouchEnd:
		if len(ev.ChangedTouches) == 0 {
			return model.SnapData{}, ErrUnknownInputEvent
		}
		eX, eY = ev.ChangedTouches[0].X, ev.ChangedTouches[0].Y
	case InputMouse:
		eX, eY = ev.PageX, ev.PageY
	default:
		return model.SnapData{}, ErrUnknownInputEvent
	}

	if offset == nil {
		return model.SnapData{}, ErrNoCanvasOffset
	}
	off, ok := offset()
	if !ok {
		return model.SnapData{}, ErrNoCanvasOffset
	}

	xMouse := eX*vb.ZoomFactor - off.X*vb.ZoomFactor + vb.OriginX
	yMouse := eY*vb.ZoomFactor - off.Y*vb.ZoomFactor + vb.OriginY

	snap := model.SnapData{X: xMouse, Y: yMouse, XMouse: xMouse, YMouse: yMouse}
	if state == SnapOn && gridSize > 0 {
		snap.X = roundHalfUp(xMouse/gridSize) * gridSize
		snap.Y = roundHalfUp(yMouse/gridSize) * gridSize
	}
	return snap, nil
}
