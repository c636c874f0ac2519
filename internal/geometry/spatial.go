package geometry

import (
	"math"
	"slices"

	"github.com/piwi3910/FloorDraft/internal/model"
)

// PointEpsilon is the tolerance used by PointsEqual. Zero means exact
// float equality, which node deduplication relies on.
var PointEpsilon = 0.0

// Distance returns the Euclidean distance between two points.
func Distance(p1, p2 model.Point2D) float64 {
	return math.Hypot(p1.X-p2.X, p1.Y-p2.Y)
}

// PointsEqual compares two points with PointEpsilon.
func PointsEqual(a, b model.Point2D) bool {
	return PointsWithin(a, b, PointEpsilon)
}

// PointsWithin reports whether both coordinates differ by at most eps.
func PointsWithin(a, b model.Point2D, eps float64) bool {
	if eps == 0 {
		return a.X == b.X && a.Y == b.Y
	}
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

// PointArraysEqual compares two point sequences element by element and stops
// at the first mismatch. Sequences of different length are unequal.
func PointArraysEqual(a, b []model.Point2D) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !PointsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Endpoint identifies one end of a wall.
type Endpoint struct {
	Point  model.Point2D
	WallID string
	End    model.WallEnd
}

// NearestWallEndpoint returns the wall endpoint closest to cursor, skipping
// walls whose ID is in exclude. Start is scanned before End and a later
// candidate must be strictly closer to win, so ties keep the first found.
// The boolean is false when nothing lies within maxRange; pass math.Inf(1)
// for an unbounded search.
func NearestWallEndpoint(cursor model.Point2D, walls []model.Wall, maxRange float64, exclude ...string) (Endpoint, bool) {
	var best Endpoint
	bestDistance := math.Inf(1)
	scanned := false

	for _, w := range walls {
		if slices.Contains(exclude, w.ID) {
			continue
		}
		scanned = true
		if d := Distance(w.Start, cursor); d < bestDistance {
			best = Endpoint{Point: w.Start, WallID: w.ID, End: model.EndStart}
			bestDistance = d
		}
		if d := Distance(w.End, cursor); d < bestDistance {
			best = Endpoint{Point: w.End, WallID: w.ID, End: model.EndEnd}
			bestDistance = d
		}
	}

	if !scanned || bestDistance > maxRange {
		return Endpoint{}, false
	}
	return best, true
}

// WallsContainingPoint returns every wall whose footprint contains p, in
// input order. Overlapping footprints all match.
func WallsContainingPoint(p model.Point2D, walls []model.Wall) []model.Wall {
	var result []model.Wall
	for _, w := range walls {
		if PointInPolygon(p, w.Coords[:]) {
			result = append(result, w)
		}
	}
	return result
}

// PointInPolygon runs an even-odd ray cast of p against the polygon.
func PointInPolygon(p model.Point2D, polygon []model.Point2D) bool {
	if len(polygon) < 3 {
		return false
	}
	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		xi, yi := polygon[i].X, polygon[i].Y
		xj, yj := polygon[j].X, polygon[j].Y
		if (yi > p.Y) != (yj > p.Y) && p.X < (xj-xi)*(p.Y-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

// FindByID returns the wall with the given ID.
func FindByID(id string, walls []model.Wall) (model.Wall, bool) {
	if i := IndexByID(id, walls); i >= 0 {
		return walls[i], true
	}
	return model.Wall{}, false
}

// IndexByID returns the index of the wall with the given ID, or -1.
func IndexByID(id string, walls []model.Wall) int {
	for i, w := range walls {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// ProjectOnSegment returns the parameter t of the orthogonal projection of p
// on the line a-b (0 at a, 1 at b) and the projected point. A degenerate
// segment projects everything onto a.
func ProjectOnSegment(p, a, b model.Point2D) (float64, model.Point2D) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return 0, a
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	return t, model.Point2D{X: a.X + t*dx, Y: a.Y + t*dy}
}

// DistanceToSegment returns the shortest distance from p to the segment a-b.
func DistanceToSegment(p, a, b model.Point2D) float64 {
	t, _ := ProjectOnSegment(p, a, b)
	t = math.Max(0, math.Min(1, t))
	return Distance(p, model.Point2D{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)})
}
