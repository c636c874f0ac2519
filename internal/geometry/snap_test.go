package geometry

import (
	"testing"

	"github.com/piwi3910/FloorDraft/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedOffset(x, y float64) OffsetFunc {
	return func() (model.Point2D, bool) { return model.Point2D{X: x, Y: y}, true }
}

func TestSnap_MouseOff(t *testing.T) {
	ev := InputEvent{Kind: InputMouse, PageX: 100, PageY: 50}
	vb := Viewbox{OriginX: 10, OriginY: -5, ZoomFactor: 2}

	snap, err := Snap(ev, vb, fixedOffset(20, 10), SnapOff, 20)
	require.NoError(t, err)
	assert.Equal(t, model.SnapData{X: 170, Y: 75, XMouse: 170, YMouse: 75}, snap)
}

func TestSnap_MouseOnRoundsToGrid(t *testing.T) {
	ev := InputEvent{Kind: InputMouse, PageX: 159, PageY: 131}

	snap, err := Snap(ev, DefaultViewbox(), fixedOffset(50, 30), SnapOn, 20)
	require.NoError(t, err)
	assert.Equal(t, 100.0, snap.X)
	assert.Equal(t, 100.0, snap.Y)
	assert.Equal(t, 109.0, snap.XMouse)
	assert.Equal(t, 101.0, snap.YMouse)
}

func TestSnap_HalfGridRoundsUp(t *testing.T) {
	snap, err := Snap(InputEvent{Kind: InputMouse, PageX: -10, PageY: 10}, DefaultViewbox(), fixedOffset(0, 0), SnapOn, 20)
	require.NoError(t, err)
	assert.Equal(t, 0.0, snap.X)
	assert.Equal(t, 20.0, snap.Y)
}

func TestSnap_TouchEndUsesFirstChangedTouch(t *testing.T) {
	ev := InputEvent{
		Kind:           InputTouchEnd,
		ChangedTouches: []model.Point2D{{X: 60, Y: 40}, {X: 500, Y: 500}},
	}
	snap, err := Snap(ev, DefaultViewbox(), fixedOffset(0, 0), SnapOff, 20)
	require.NoError(t, err)
	assert.Equal(t, model.Point2D{X: 60, Y: 40}, snap.Point())
}

func TestSnap_Errors(t *testing.T) {
	vb := DefaultViewbox()

	_, err := Snap(InputEvent{Kind: InputUnknown}, vb, fixedOffset(0, 0), SnapOff, 20)
	assert.ErrorIs(t, err, ErrUnknownInputEvent)

	_, err = Snap(InputEvent{Kind: InputTouchEnd}, vb, fixedOffset(0, 0), SnapOff, 20)
	assert.ErrorIs(t, err, ErrUnknownInputEvent)

	_, err = Snap(InputEvent{Kind: InputMouse}, vb, nil, SnapOff, 20)
	assert.ErrorIs(t, err, ErrNoCanvasOffset)

	notMeasured := func() (model.Point2D, bool) { return model.Point2D{}, false }
	_, err = Snap(InputEvent{Kind: InputMouse}, vb, notMeasured, SnapOff, 20)
	assert.ErrorIs(t, err, ErrNoCanvasOffset)
}
