package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FloorDraft/internal/geometry"
	"github.com/piwi3910/FloorDraft/internal/model"
)

func mouse(x, y float64) geometry.InputEvent {
	return geometry.InputEvent{Kind: geometry.InputMouse, PageX: x, PageY: y}
}

func origin() (model.Point2D, bool) { return model.Point2D{}, true }

func planWith(walls ...model.Wall) model.Plan {
	p := model.NewPlan()
	p.Walls = walls
	return p
}

func wall(id string, x1, y1, x2, y2 float64) model.Wall {
	w := model.NewWall(model.Point2D{X: x1, Y: y1}, model.Point2D{X: x2, Y: y2}, model.WallNormal, 20)
	w.ID = id
	return w
}

func TestSelectPressOnNodeStartsBind(t *testing.T) {
	var modes []model.Mode
	var texts []string
	e := New(planWith(wall("w1", 0, 0, 100, 0)), origin, Hooks{
		ModeChanged: func(m model.Mode) { modes = append(modes, m) },
		Measurement: func(s string) { texts = append(texts, s) },
	})

	require.NoError(t, e.MouseDown(mouse(100, 0)))
	assert.Equal(t, model.ModeBind, e.Mode())
	assert.True(t, e.Bind().Active())

	require.NoError(t, e.MouseMove(mouse(120, 0)))
	assert.Equal(t, "2.00 m", e.MeasurementText())

	require.NoError(t, e.MouseUp(mouse(120, 0)))
	assert.Equal(t, model.ModeSelect, e.Mode())
	assert.False(t, e.Bind().Active())
	assert.Equal(t, model.Point2D{X: 120, Y: 0}, e.Plan().Walls[0].End)
	assert.Equal(t, []model.Mode{model.ModeBind, model.ModeSelect}, modes)
	require.NotEmpty(t, texts)
	assert.Equal(t, "2.00 m", texts[len(texts)-1])
	assert.True(t, e.Dirty())
}

func TestSelectPressOnEmptySpaceStaysInSelect(t *testing.T) {
	var modes []model.Mode
	e := New(planWith(wall("w1", 0, 0, 100, 0)), origin, Hooks{
		ModeChanged: func(m model.Mode) { modes = append(modes, m) },
	})

	require.NoError(t, e.MouseDown(mouse(400, 400)))
	assert.Equal(t, model.ModeSelect, e.Mode())
	assert.False(t, e.Bind().Active())
	assert.Empty(t, modes, "a miss does not flip through Bind")
}

func TestBindPressOnEmptySpaceReturnsToSelect(t *testing.T) {
	var modes []model.Mode
	e := New(planWith(wall("w1", 0, 0, 100, 0)), origin, Hooks{
		ModeChanged: func(m model.Mode) { modes = append(modes, m) },
	})
	e.SetMode(model.ModeBind)

	require.NoError(t, e.MouseDown(mouse(400, 400)))
	assert.Equal(t, model.ModeSelect, e.Mode())
	assert.False(t, e.Bind().Active())
	assert.Equal(t, []model.Mode{model.ModeBind, model.ModeSelect}, modes)

	// Back in Select, hovering gives feedback again.
	require.NoError(t, e.MouseMove(mouse(100, 0)))
	assert.Equal(t, model.CursorGrab, e.Cursor())
}

func TestUndoRedoBindCommit(t *testing.T) {
	changes := 0
	e := New(planWith(wall("w1", 0, 0, 100, 0)), origin, Hooks{Changed: func() { changes++ }})

	require.NoError(t, e.MouseDown(mouse(100, 0)))
	require.NoError(t, e.MouseUp(mouse(160, 40)))
	require.Equal(t, model.Point2D{X: 160, Y: 40}, e.Plan().Walls[0].End)
	require.True(t, e.CanUndo())

	require.True(t, e.Undo())
	assert.Equal(t, model.Point2D{X: 100, Y: 0}, e.Plan().Walls[0].End)
	assert.True(t, e.CanRedo())

	require.True(t, e.Redo())
	assert.Equal(t, model.Point2D{X: 160, Y: 40}, e.Plan().Walls[0].End)
	assert.False(t, e.Redo())
	assert.Equal(t, 3, changes)
}

func TestSnapFailureAbortsGesture(t *testing.T) {
	measured := true
	offset := func() (model.Point2D, bool) { return model.Point2D{}, measured }
	e := New(planWith(wall("w1", 0, 0, 100, 0)), offset, Hooks{})

	require.NoError(t, e.MouseDown(mouse(100, 0)))
	require.True(t, e.Bind().Active())

	measured = false
	err := e.MouseMove(mouse(140, 0))
	assert.ErrorIs(t, err, geometry.ErrNoCanvasOffset)
	assert.False(t, e.Bind().Active())
	assert.Equal(t, model.Point2D{X: 100, Y: 0}, e.Plan().Walls[0].End)

	assert.ErrorIs(t, e.MouseUp(geometry.InputEvent{}), geometry.ErrUnknownInputEvent)
}

func TestSetModeCancelsBind(t *testing.T) {
	e := New(planWith(wall("w1", 0, 0, 100, 0)), origin, Hooks{})

	require.NoError(t, e.MouseDown(mouse(100, 0)))
	require.NoError(t, e.MouseMove(mouse(160, 0)))
	e.SetMode(model.ModeLine)

	assert.False(t, e.Bind().Active())
	require.NoError(t, e.MouseUp(mouse(160, 0)))
	assert.Equal(t, model.Point2D{X: 100, Y: 0}, e.Plan().Walls[0].End)
	assert.False(t, e.CanUndo())
}

func TestClickOnWallReportsWall(t *testing.T) {
	var clicked []model.Wall
	e := New(planWith(wall("w1", 0, 0, 200, 0)), origin, Hooks{
		WallClicked: func(w model.Wall) { clicked = append(clicked, w) },
	})

	require.NoError(t, e.MouseDown(mouse(100, 0)))
	require.NoError(t, e.MouseUp(mouse(100, 0)))

	require.Len(t, clicked, 1)
	assert.Equal(t, "w1", clicked[0].ID)
	assert.Equal(t, model.ModeEditWall, e.Mode())
	assert.False(t, e.CanUndo())
}

func TestHoverCursor(t *testing.T) {
	e := New(planWith(wall("w1", 0, 0, 200, 0)), origin, Hooks{})

	require.NoError(t, e.MouseMove(mouse(0, 0)))
	assert.Equal(t, model.CursorGrab, e.Cursor())
	require.NoError(t, e.MouseMove(mouse(100, 0)))
	assert.Equal(t, model.CursorMove, e.Cursor())
	require.NoError(t, e.MouseMove(mouse(100, 200)))
	assert.Equal(t, model.CursorDefault, e.Cursor())
}

func TestDeleteWallRemovesOpenings(t *testing.T) {
	plan := planWith(wall("w1", 0, 0, 200, 0), wall("w2", 200, 0, 200, 200))
	plan.Objects = []model.ObjectMetaData{
		{ID: "d1", Family: model.FamilyInWall, WallID: "w1"},
		{ID: "d2", Family: model.FamilyInWall, WallID: "w2"},
		{ID: "sofa", Family: model.FamilyFree},
	}
	e := New(plan, origin, Hooks{})

	require.True(t, e.DeleteWall("w1"))
	assert.False(t, e.DeleteWall("w1"))

	got := e.Plan()
	require.Len(t, got.Walls, 1)
	assert.Equal(t, "w2", got.Walls[0].ID)
	require.Len(t, got.Objects, 2)
	assert.Equal(t, "d2", got.Objects[0].ID)
	assert.Equal(t, "sofa", got.Objects[1].ID)

	require.True(t, e.Undo())
	assert.Len(t, e.Plan().Walls, 2)
	assert.Len(t, e.Plan().Objects, 3)
}

func TestUpdateWall(t *testing.T) {
	e := New(planWith(wall("w1", 0, 0, 200, 0)), origin, Hooks{})

	assert.False(t, e.UpdateWall("w1", model.WallNormal, 0))
	require.True(t, e.UpdateWall("w1", model.WallSeparate, 8))

	w := e.Plan().Walls[0]
	assert.Equal(t, model.WallSeparate, w.Type)
	assert.Equal(t, model.Footprint(w.Start, w.End, 8), w.Coords)
}

func TestLoadResetsHistory(t *testing.T) {
	e := New(planWith(wall("w1", 0, 0, 200, 0)), origin, Hooks{})
	e.AddWalls([]model.Wall{wall("w2", 0, 100, 200, 100)}, "Import")
	require.True(t, e.CanUndo())

	e.Load(model.NewPlan())
	assert.False(t, e.CanUndo())
	assert.False(t, e.Dirty())
	assert.Empty(t, e.Plan().Walls)
}

func TestResizeOpening(t *testing.T) {
	plan := planWith(wall("w1", 0, 0, 200, 0))
	plan.Objects = []model.ObjectMetaData{{ID: "d1", Family: model.FamilyInWall, WallID: "w1", X: 50, Size: 40}}
	e := New(plan, origin, Hooks{})

	assert.False(t, e.ResizeOpening("d1", 0))
	assert.False(t, e.ResizeOpening("d1", 500))
	assert.False(t, e.ResizeOpening("nope", 30))
	require.True(t, e.ResizeOpening("d1", 60))

	o := e.Plan().Objects[0]
	assert.Equal(t, 60.0, o.Size)
	assert.Equal(t, 50.0, o.X)
	assert.Equal(t, [2]model.Point2D{{X: 20, Y: 0}, {X: 80, Y: 0}}, o.Limits)

	require.True(t, e.Undo())
	assert.Equal(t, 40.0, e.Plan().Objects[0].Size)
}

func TestDeleteObject(t *testing.T) {
	plan := planWith(wall("w1", 0, 0, 200, 0))
	plan.Objects = []model.ObjectMetaData{{ID: "a"}, {ID: "b"}}
	e := New(plan, origin, Hooks{})

	require.True(t, e.DeleteObject("a"))
	assert.False(t, e.DeleteObject("a"))
	require.Len(t, e.Plan().Objects, 1)
	assert.Equal(t, "b", e.Plan().Objects[0].ID)
	assert.Len(t, plan.Objects, 2)
}
