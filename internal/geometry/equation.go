// Package geometry implements the line-equation algebra, spatial queries and
// cursor snapping used by the plan editor.
//
// Wall lines are kept in one of three forms (vertical, horizontal, sloped)
// and every operation branches on the form explicitly, so exact axis
// alignment never goes through a slope division.
package geometry

import (
	"math"

	"github.com/piwi3910/FloorDraft/internal/model"
)

// EquationThrough returns the equation of the line through p1 and p2.
// Coincident points produce a vertical line through them.
func EquationThrough(p1, p2 model.Point2D) model.WallEquation {
	if p2.X-p1.X == 0 {
		return model.Vertical(p1.X)
	}
	if p2.Y-p1.Y == 0 {
		return model.Horizontal(p1.Y)
	}
	a := (p2.Y - p1.Y) / (p2.X - p1.X)
	return model.Sloped(a, p2.Y-p2.X*a)
}

// WallEquation returns the equation of the wall's centerline.
func WallEquation(w model.Wall) model.WallEquation {
	return EquationThrough(w.Start, w.End)
}

// Intersect returns the intersection of two lines. The boolean is false when
// both lines have the same direction (parallel or identical).
func Intersect(e1, e2 model.WallEquation) (model.Point2D, bool) {
	if e1.SameDirection(e2) {
		return model.Point2D{}, false
	}
	switch e1.Kind {
	case model.EquationVertical:
		switch e2.Kind {
		case model.EquationHorizontal:
			return model.Point2D{X: e1.B, Y: e2.B}, true
		case model.EquationSloped:
			return model.Point2D{X: e1.B, Y: e2.A*e1.B + e2.B}, true
		}
	case model.EquationHorizontal:
		switch e2.Kind {
		case model.EquationVertical:
			return model.Point2D{X: e2.B, Y: e1.B}, true
		case model.EquationSloped:
			return model.Point2D{X: (e1.B - e2.B) / e2.A, Y: e1.B}, true
		}
	case model.EquationSloped:
		switch e2.Kind {
		case model.EquationHorizontal:
			return model.Point2D{X: (e2.B - e1.B) / e1.A, Y: e2.B}, true
		case model.EquationVertical:
			return model.Point2D{X: e2.B, Y: e1.A*e2.B + e1.B}, true
		case model.EquationSloped:
			x := (e2.B - e1.B) / (e1.A - e2.A)
			return model.Point2D{X: x, Y: e1.A*x + e1.B}, true
		}
	}
	return model.Point2D{}, false
}

// Perpendicular returns the line through (x, y) perpendicular to e.
func Perpendicular(e model.WallEquation, x, y float64) model.WallEquation {
	switch e.Kind {
	case model.EquationHorizontal:
		return model.Vertical(x)
	case model.EquationVertical:
		return model.Horizontal(y)
	default:
		a := -1 / e.A
		return model.Sloped(a, y-a*x)
	}
}

// Parallel returns the line through (x, y) with the same direction as e.
func Parallel(e model.WallEquation, x, y float64) model.WallEquation {
	switch e.Kind {
	case model.EquationHorizontal:
		return model.Horizontal(y)
	case model.EquationVertical:
		return model.Vertical(x)
	default:
		return model.Sloped(e.A, y-e.A*x)
	}
}

// Limit returns the two points of e at distance size/2 on either side of c.
// For a sloped line c is expected on (or near) the line: the points come
// from intersecting e with the circle of radius size/2 around c, and a
// circle that misses the line yields NaN coordinates.
func Limit(e model.WallEquation, size float64, c model.Point2D) [2]model.Point2D {
	pX, pY := c.X, c.Y
	switch e.Kind {
	case model.EquationVertical:
		return [2]model.Point2D{
			{X: pX, Y: pY - size/2},
			{X: pX, Y: pY + size/2},
		}
	case model.EquationHorizontal:
		return [2]model.Point2D{
			{X: pX - size/2, Y: pY},
			{X: pX + size/2, Y: pY},
		}
	}

	eA, eB := e.A, e.B
	a := 1 + eA*eA
	b := -2*pX + 2*eA*eB - 2*pY*eA
	cc := pX*pX + eB*eB - 2*pY*eB + pY*pY - size*size/4
	delta := b*b - 4*a*cc
	x1 := (-b - math.Sqrt(delta)) / (2 * a)
	x2 := (-b + math.Sqrt(delta)) / (2 * a)
	return [2]model.Point2D{
		{X: x1, Y: eA*x1 + eB},
		{X: x2, Y: eA*x2 + eB},
	}
}

// OnLine reports whether p lies on e within tol.
func OnLine(e model.WallEquation, p model.Point2D, tol float64) bool {
	switch e.Kind {
	case model.EquationVertical:
		return math.Abs(p.X-e.B) <= tol
	case model.EquationHorizontal:
		return math.Abs(p.Y-e.B) <= tol
	default:
		return math.Abs(p.Y-(e.A*p.X+e.B)) <= tol
	}
}
