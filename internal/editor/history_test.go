package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FloorDraft/internal/model"
)

func planOf(walls ...model.Wall) model.Plan {
	return model.Plan{Walls: walls}
}

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	assert.Equal(t, defaultMaxDepth, h.maxDepth)
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestUndoRedo(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(planOf(), "empty"))
	h.Push(MakeSnapshot(planOf(wall("a", 0, 0, 1, 0)), "one wall"))

	current := MakeSnapshot(planOf(wall("a", 0, 0, 1, 0), wall("b", 1, 0, 1, 1)), "two walls")

	restored, ok := h.Undo(current)
	require.True(t, ok)
	assert.Len(t, restored.Walls, 1)
	assert.Equal(t, "one wall", restored.Label)

	require.True(t, h.CanRedo())
	redone, ok := h.Redo(restored)
	require.True(t, ok)
	assert.Len(t, redone.Walls, 2)
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(planOf(), "empty"))

	_, ok := h.Undo(MakeSnapshot(planOf(wall("a", 0, 0, 1, 0)), "one wall"))
	require.True(t, ok)
	require.True(t, h.CanRedo())

	h.Push(MakeSnapshot(planOf(), "new action"))
	assert.False(t, h.CanRedo())
}

func TestMaxDepth(t *testing.T) {
	h := &History{maxDepth: 3}
	for i := 0; i < 5; i++ {
		h.Push(MakeSnapshot(planOf(), ""))
	}
	assert.Len(t, h.undoStack, 3)
}

func TestUndoRedoEmpty(t *testing.T) {
	h := NewHistory()
	_, ok := h.Undo(MakeSnapshot(planOf(), "current"))
	assert.False(t, ok)
	_, ok = h.Redo(MakeSnapshot(planOf(), "current"))
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(planOf(), "a"))
	h.Push(MakeSnapshot(planOf(), "b"))
	h.Undo(MakeSnapshot(planOf(), "current"))

	h.Clear()
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestSnapshotIsIndependent(t *testing.T) {
	plan := planOf(wall("a", 0, 0, 1, 0))
	plan.Rooms = []model.RoomMetaData{{ID: "r1", Polygon: model.Outline{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}}}
	snap := MakeSnapshot(plan, "test")

	plan.Walls[0].ID = "changed"
	plan.Rooms[0].Polygon[0].X = 99

	assert.Equal(t, "a", snap.Walls[0].ID)
	assert.Equal(t, 0.0, snap.Rooms[0].Polygon[0].X)
}

func TestSnapshotNilSlices(t *testing.T) {
	snap := MakeSnapshot(planOf(), "nil test")
	assert.Nil(t, snap.Walls)
	assert.Nil(t, snap.Objects)
	assert.Nil(t, snap.Rooms)
}

func TestSnapshotApply(t *testing.T) {
	snap := MakeSnapshot(planOf(wall("a", 0, 0, 1, 0)), "one wall")
	plan := model.NewPlan()
	plan.Name = "kept"

	snap.apply(&plan)
	require.Len(t, plan.Walls, 1)
	assert.Equal(t, "kept", plan.Name)

	plan.Walls[0].ID = "mutated"
	assert.Equal(t, "a", snap.Walls[0].ID)
}
