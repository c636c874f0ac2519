package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/FloorDraft/internal/geometry"
	"github.com/piwi3910/FloorDraft/internal/model"
)

func TestToScreenInvertsSnapTransform(t *testing.T) {
	vb := geometry.Viewbox{OriginX: 40, OriginY: -20, ZoomFactor: 2}
	p := model.Point2D{X: 140, Y: 80}

	pos := ToScreen(vb, p)
	assert.Equal(t, float32(50), pos.X)
	assert.Equal(t, float32(50), pos.Y)

	back := FromScreen(vb, model.Point2D{X: float64(pos.X), Y: float64(pos.Y)})
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
}

func TestZoomAtKeepsPointUnderCursor(t *testing.T) {
	vb := geometry.DefaultViewbox()
	cursor := model.Point2D{X: 200, Y: 100}
	before := FromScreen(vb, cursor)

	zoomed := ZoomAt(vb, cursor, 2)

	assert.Equal(t, 2.0, zoomed.ZoomFactor)
	after := FromScreen(zoomed, cursor)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
}

func TestZoomAtClamps(t *testing.T) {
	vb := geometry.DefaultViewbox()

	assert.Equal(t, 50.0, ZoomAt(vb, model.Point2D{}, 1000).ZoomFactor)
	assert.Equal(t, 0.05, ZoomAt(vb, model.Point2D{}, 0.0001).ZoomFactor)
	assert.Equal(t, vb, ZoomAt(vb, model.Point2D{}, 0))
}
