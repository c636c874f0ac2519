package geometry

import (
	"math"

	"github.com/piwi3910/FloorDraft/internal/model"
)

// ObjectsOnWall returns the in-wall objects anchored to w.
func ObjectsOnWall(w model.Wall, objects []model.ObjectMetaData) []model.ObjectMetaData {
	var result []model.ObjectMetaData
	for _, o := range objects {
		if o.InWall() && o.WallID == w.ID {
			result = append(result, o)
		}
	}
	return result
}

// ReanchorObject moves an object anchored to before onto after, at the
// foot of the perpendicular from its current position to the new wall line.
// The object is kept within the wall. Objects anchored elsewhere are
// returned unchanged.
func ReanchorObject(o model.ObjectMetaData, before, after model.Wall) model.ObjectMetaData {
	if !o.InWall() || o.WallID != before.ID {
		return o
	}
	pos := o.Position()
	eq := WallEquation(after)
	if foot, ok := Intersect(Perpendicular(eq, pos.X, pos.Y), eq); ok {
		pos = foot
	}
	t, _ := ProjectOnSegment(pos, after.Start, after.End)
	return PlaceOnWall(o, after, clampOnWall(t, o.Size, after.Length()))
}

// clampOnWall limits t so an object of the given size stays on a wall of
// length l. An object longer than the wall is centered.
func clampOnWall(t, size, l float64) float64 {
	if l <= 0 {
		return 0
	}
	half := size / 2 / l
	if half >= 0.5 {
		return 0.5
	}
	return math.Max(half, math.Min(t, 1-half))
}

// PlaceOnWall puts o at parameter t along w (0 at Start, 1 at End), aligns
// its angle with the wall and recomputes its limits.
func PlaceOnWall(o model.ObjectMetaData, w model.Wall, t float64) model.ObjectMetaData {
	pos := model.Point2D{
		X: w.Start.X + t*(w.End.X-w.Start.X),
		Y: w.Start.Y + t*(w.End.Y-w.Start.Y),
	}
	o.X, o.Y = pos.X, pos.Y
	o.WallID = w.ID
	o.Angle = math.Atan2(w.End.Y-w.Start.Y, w.End.X-w.Start.X) * 180 / math.Pi
	o.Limits = Limit(WallEquation(w), o.Size, pos)
	return o
}
