package editor

import (
	"slices"

	"github.com/piwi3910/FloorDraft/internal/model"
)

const defaultMaxDepth = 50

// Snapshot captures the plan contents at a point in time.
type Snapshot struct {
	Walls   []model.Wall
	Objects []model.ObjectMetaData
	Rooms   []model.RoomMetaData
	Devices []model.DeviceMetaData
	Label   string // Human-readable description (e.g. "Move wall")
}

// History manages undo/redo stacks of plan snapshots.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot
	maxDepth  int
}

// NewHistory creates a History with the default max depth of 50.
func NewHistory() *History {
	return &History{
		maxDepth: defaultMaxDepth,
	}
}

// Push saves a snapshot onto the undo stack and clears the redo stack.
// This should be called with the state before the modification.
func (h *History) Push(s Snapshot) {
	h.undoStack = append(h.undoStack, s)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
	h.redoStack = nil
}

// Undo pops the most recent snapshot from the undo stack and pushes
// the current state onto the redo stack. Returns the snapshot to restore
// and true, or an empty snapshot and false if nothing to undo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current)
	return last, true
}

// Redo pops the most recent snapshot from the redo stack and pushes
// the current state onto the undo stack.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, current)
	return last, true
}

func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// MakeSnapshot copies the plan contents into a snapshot. Room polygons are
// deep-copied; every other element is a plain value.
func MakeSnapshot(plan model.Plan, label string) Snapshot {
	rooms := slices.Clone(plan.Rooms)
	for i := range rooms {
		rooms[i].Polygon = slices.Clone(rooms[i].Polygon)
	}
	return Snapshot{
		Walls:   slices.Clone(plan.Walls),
		Objects: slices.Clone(plan.Objects),
		Rooms:   rooms,
		Devices: slices.Clone(plan.Devices),
		Label:   label,
	}
}

// apply writes the snapshot contents into plan.
func (s Snapshot) apply(plan *model.Plan) {
	restored := MakeSnapshot(model.Plan{Walls: s.Walls, Objects: s.Objects, Rooms: s.Rooms, Devices: s.Devices}, s.Label)
	plan.Walls = restored.Walls
	plan.Objects = restored.Objects
	plan.Rooms = restored.Rooms
	plan.Devices = restored.Devices
}
