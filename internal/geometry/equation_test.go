package geometry

import (
	"math"
	"testing"

	"github.com/piwi3910/FloorDraft/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquationThrough(t *testing.T) {
	assert.Equal(t, model.Vertical(100), EquationThrough(model.Point2D{X: 100, Y: 0}, model.Point2D{X: 100, Y: 200}))
	assert.Equal(t, model.Horizontal(150), EquationThrough(model.Point2D{X: 0, Y: 150}, model.Point2D{X: 300, Y: 150}))
	assert.Equal(t, model.Sloped(2, 0), EquationThrough(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 10, Y: 20}))

	same := model.Point2D{X: 7, Y: 7}
	assert.Equal(t, model.Vertical(7), EquationThrough(same, same), "coincident points fall into the vertical branch")
}

func TestIntersect_VerticalAndHorizontalWalls(t *testing.T) {
	vertical := model.NewWall(model.Point2D{X: 100, Y: 0}, model.Point2D{X: 100, Y: 200}, model.WallNormal, 20)
	horizontal := model.NewWall(model.Point2D{X: 0, Y: 150}, model.Point2D{X: 300, Y: 150}, model.WallNormal, 20)

	p, ok := Intersect(WallEquation(vertical), WallEquation(horizontal))
	require.True(t, ok)
	assert.Equal(t, model.Point2D{X: 100, Y: 150}, p)
}

func TestIntersect_Symmetric(t *testing.T) {
	tests := []struct {
		name   string
		e1, e2 model.WallEquation
		want   model.Point2D
	}{
		{"vertical x horizontal", model.Vertical(10), model.Horizontal(-3), model.Point2D{X: 10, Y: -3}},
		{"vertical x sloped", model.Vertical(10), model.Sloped(2, 1), model.Point2D{X: 10, Y: 21}},
		{"horizontal x sloped", model.Horizontal(5), model.Sloped(2, 1), model.Point2D{X: 2, Y: 5}},
		{"sloped x sloped", model.Sloped(1, 0), model.Sloped(-1, 4), model.Point2D{X: 2, Y: 2}},
		{"sloped x sloped fractional", model.Sloped(0.5, 3), model.Sloped(-2, 8), model.Point2D{X: 2, Y: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p1, ok1 := Intersect(tt.e1, tt.e2)
			p2, ok2 := Intersect(tt.e2, tt.e1)
			require.True(t, ok1)
			require.True(t, ok2)
			assert.InDelta(t, tt.want.X, p1.X, 1e-9)
			assert.InDelta(t, tt.want.Y, p1.Y, 1e-9)
			assert.InDelta(t, p1.X, p2.X, 1e-9)
			assert.InDelta(t, p1.Y, p2.Y, 1e-9)
		})
	}
}

func TestIntersect_SameDirectionIsAbsent(t *testing.T) {
	tests := []struct {
		name   string
		e1, e2 model.WallEquation
	}{
		{"two verticals", model.Vertical(1), model.Vertical(2)},
		{"two horizontals", model.Horizontal(1), model.Horizontal(1)},
		{"parallel sloped", model.Sloped(3, 1), model.Sloped(3, 5)},
		{"identical sloped", model.Sloped(-0.5, 2), model.Sloped(-0.5, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Intersect(tt.e1, tt.e2)
			assert.False(t, ok)
		})
	}
}

func TestIntersect_ZeroSlopeIsNotHorizontal(t *testing.T) {
	// A numeric zero slope goes through the slope division branch.
	p, ok := Intersect(model.Sloped(0, 1), model.Horizontal(5))
	require.True(t, ok)
	assert.True(t, math.IsInf(p.X, 1))
	assert.Equal(t, 5.0, p.Y)
}

func TestPerpendicular(t *testing.T) {
	assert.Equal(t, model.Vertical(3), Perpendicular(model.Horizontal(10), 3, 4))
	assert.Equal(t, model.Horizontal(4), Perpendicular(model.Vertical(10), 3, 4))

	perp := Perpendicular(model.Sloped(2, 0), 2, 4)
	assert.Equal(t, model.EquationSloped, perp.Kind)
	assert.InDelta(t, -0.5, perp.A, 1e-12)
	assert.InDelta(t, 5.0, perp.B, 1e-12)
	assert.True(t, OnLine(perp, model.Point2D{X: 2, Y: 4}, 1e-9))
}

func TestPerpendicular_TwiceIsParallel(t *testing.T) {
	for _, e := range []model.WallEquation{
		model.Vertical(5),
		model.Horizontal(-2),
		model.Sloped(2, 3),
		model.Sloped(-4, 1),
		model.Sloped(3, 0),
		model.Sloped(0.25, 9),
	} {
		back := Perpendicular(Perpendicular(e, 7, -3), 7, -3)
		assert.Equal(t, e.Kind, back.Kind, "equation %s", e)
		if e.Kind == model.EquationSloped {
			assert.InDelta(t, e.A, back.A, 1e-9, "equation %s", e)
		}
	}
}

func TestParallel(t *testing.T) {
	assert.Equal(t, model.Horizontal(8), Parallel(model.Horizontal(1), 3, 8))
	assert.Equal(t, model.Vertical(3), Parallel(model.Vertical(1), 3, 8))

	p := Parallel(model.Sloped(2, 1), 1, 10)
	assert.Equal(t, 2.0, p.A)
	assert.Equal(t, 8.0, p.B)
}

func TestLimit_AxisAligned(t *testing.T) {
	pts := Limit(model.Vertical(100), 40, model.Point2D{X: 100, Y: 50})
	assert.Equal(t, [2]model.Point2D{{X: 100, Y: 30}, {X: 100, Y: 70}}, pts)

	pts = Limit(model.Horizontal(20), 10, model.Point2D{X: 0, Y: 20})
	assert.Equal(t, [2]model.Point2D{{X: -5, Y: 20}, {X: 5, Y: 20}}, pts)
}

func TestLimit_SlopedPointsAreOnLineAtHalfSize(t *testing.T) {
	tests := []struct {
		e    model.WallEquation
		size float64
		x    float64
	}{
		{model.Sloped(1, 0), 10, 5},
		{model.Sloped(-2, 7), 30, -4},
		{model.Sloped(0.3, -12), 1, 100},
		{model.Sloped(0, 4), 8, 2},
	}

	for _, tt := range tests {
		c := model.Point2D{X: tt.x, Y: tt.e.A*tt.x + tt.e.B}
		pts := Limit(tt.e, tt.size, c)
		for _, p := range pts {
			assert.InDelta(t, tt.size/2, Distance(p, c), 1e-6, "equation %s", tt.e)
			assert.True(t, OnLine(tt.e, p, 1e-9), "point %v not on %s", p, tt.e)
		}
		assert.Less(t, pts[0].X, pts[1].X)
	}
}

func TestLimit_CircleMissesLine(t *testing.T) {
	pts := Limit(model.Sloped(1, 0), 2, model.Point2D{X: 0, Y: 100})
	assert.True(t, math.IsNaN(pts[0].X))
	assert.True(t, math.IsNaN(pts[1].Y))
}
