package geometry

import (
	"math"
	"testing"

	"github.com/piwi3910/FloorDraft/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wall(id string, x1, y1, x2, y2 float64) model.Wall {
	w := model.NewWall(model.Point2D{X: x1, Y: y1}, model.Point2D{X: x2, Y: y2}, model.WallNormal, 20)
	w.ID = id
	return w
}

// ─── NearestWallEndpoint ───────────────────────────────────

func TestNearestWallEndpoint_TieKeepsFirst(t *testing.T) {
	walls := []model.Wall{
		wall("w1", 0, 0, 100, 0),
		wall("w2", 100, 0, 100, 100),
	}

	// w1.End and w2.Start coincide; w1 is scanned first.
	ep, ok := NearestWallEndpoint(model.Point2D{X: 98, Y: 3}, walls, math.Inf(1))
	require.True(t, ok)
	assert.Equal(t, "w1", ep.WallID)
	assert.Equal(t, model.EndEnd, ep.End)
	assert.Equal(t, model.Point2D{X: 100, Y: 0}, ep.Point)
}

func TestNearestWallEndpoint_Exclude(t *testing.T) {
	walls := []model.Wall{
		wall("w1", 0, 0, 100, 0),
		wall("w2", 100, 0, 100, 100),
	}

	ep, ok := NearestWallEndpoint(model.Point2D{X: 98, Y: 3}, walls, math.Inf(1), "w1")
	require.True(t, ok)
	assert.Equal(t, "w2", ep.WallID)
	assert.Equal(t, model.EndStart, ep.End)
}

func TestNearestWallEndpoint_OutOfRange(t *testing.T) {
	walls := []model.Wall{wall("w1", 0, 0, 100, 0)}

	_, ok := NearestWallEndpoint(model.Point2D{X: 50, Y: 50}, walls, 10)
	assert.False(t, ok)

	ep, ok := NearestWallEndpoint(model.Point2D{X: 5, Y: 0}, walls, 10)
	require.True(t, ok)
	assert.Equal(t, model.Point2D{X: 0, Y: 0}, ep.Point)
}

func TestNearestWallEndpoint_RangeIsInclusive(t *testing.T) {
	walls := []model.Wall{wall("w1", 0, 0, 100, 0)}
	_, ok := NearestWallEndpoint(model.Point2D{X: 0, Y: 10}, walls, 10)
	assert.True(t, ok)
}

func TestNearestWallEndpoint_NoCandidates(t *testing.T) {
	_, ok := NearestWallEndpoint(model.Point2D{}, nil, math.Inf(1))
	assert.False(t, ok)

	walls := []model.Wall{wall("w1", 0, 0, 100, 0)}
	_, ok = NearestWallEndpoint(model.Point2D{}, walls, math.Inf(1), "w1")
	assert.False(t, ok)
}

// ─── Containment ───────────────────────────────────────────

func TestWallsContainingPoint(t *testing.T) {
	horizontal := wall("h", 0, 0, 100, 0)
	vertical := wall("v", 50, -50, 50, 50)
	walls := []model.Wall{horizontal, vertical}

	got := WallsContainingPoint(model.Point2D{X: 20, Y: 5}, walls)
	require.Len(t, got, 1)
	assert.Equal(t, "h", got[0].ID)

	got = WallsContainingPoint(model.Point2D{X: 50, Y: 0}, walls)
	require.Len(t, got, 2)
	assert.Equal(t, "h", got[0].ID)
	assert.Equal(t, "v", got[1].ID)

	assert.Empty(t, WallsContainingPoint(model.Point2D{X: 20, Y: 15}, walls))
}

func TestPointInPolygon(t *testing.T) {
	square := []model.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	assert.True(t, PointInPolygon(model.Point2D{X: 5, Y: 5}, square))
	assert.False(t, PointInPolygon(model.Point2D{X: 15, Y: 5}, square))
	assert.False(t, PointInPolygon(model.Point2D{X: 5, Y: 5}, square[:2]))
}

func TestFindByID(t *testing.T) {
	walls := []model.Wall{wall("a", 0, 0, 1, 0), wall("b", 0, 0, 0, 1)}

	w, ok := FindByID("b", walls)
	require.True(t, ok)
	assert.Equal(t, "b", w.ID)

	_, ok = FindByID("zz", walls)
	assert.False(t, ok)
	assert.Equal(t, -1, IndexByID("zz", walls))
}

// ─── Equality ──────────────────────────────────────────────

func TestPointsEqual_ExactByDefault(t *testing.T) {
	x := 0.1
	a := model.Point2D{X: x + 0.2, Y: 1}
	b := model.Point2D{X: 0.3, Y: 1}
	assert.False(t, PointsEqual(a, b))
	assert.True(t, PointsWithin(a, b, 1e-9))
	assert.True(t, PointsEqual(b, b))
}

func TestPointArraysEqual(t *testing.T) {
	p := []model.Point2D{{X: 0, Y: 0}, {X: 1, Y: 1}}

	assert.True(t, PointArraysEqual(p, []model.Point2D{{X: 0, Y: 0}, {X: 1, Y: 1}}))
	assert.False(t, PointArraysEqual(p, p[:1]), "different lengths")
	assert.False(t, PointArraysEqual(p, []model.Point2D{{X: 9, Y: 9}, {X: 1, Y: 1}}), "first element differs")
	assert.False(t, PointArraysEqual(p, []model.Point2D{{X: 0, Y: 0}, {X: 1, Y: 2}}), "last element differs")
	assert.True(t, PointArraysEqual(nil, []model.Point2D{}))
}

// ─── Segments ──────────────────────────────────────────────

func TestDistanceToSegment(t *testing.T) {
	a := model.Point2D{X: 0, Y: 0}
	b := model.Point2D{X: 100, Y: 0}

	assert.InDelta(t, 10.0, DistanceToSegment(model.Point2D{X: 50, Y: 10}, a, b), 1e-9)
	assert.InDelta(t, 10.0, DistanceToSegment(model.Point2D{X: 110, Y: 0}, a, b), 1e-9)
	assert.InDelta(t, 5.0, DistanceToSegment(model.Point2D{X: 3, Y: 4}, a, a), 1e-9)
}

func TestProjectOnSegment(t *testing.T) {
	tParam, p := ProjectOnSegment(model.Point2D{X: 25, Y: 7}, model.Point2D{X: 0, Y: 0}, model.Point2D{X: 100, Y: 0})
	assert.InDelta(t, 0.25, tParam, 1e-12)
	assert.Equal(t, model.Point2D{X: 25, Y: 0}, p)
}
