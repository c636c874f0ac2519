package model

import (
	"math"

	"github.com/google/uuid"
)

// Mode is the active editor tool.
type Mode int

const (
	ModeSelect      Mode = iota // Pointer: hover, pick and start binds
	ModeLine                    // Draw load-bearing walls
	ModePartition               // Draw thin partition walls
	ModeBind                    // Drag wall nodes, wall bodies and openings
	ModeObject                  // Place a free object
	ModeOpening                 // Place a door or window in a wall
	ModeRoom                    // Pick a room
	ModeEditRoom                // Room properties panel
	ModeEditWall                // Wall properties panel
	ModeEditOpening             // Opening properties panel
	ModeDevice                  // Place or move a device
)

func (m Mode) String() string {
	switch m {
	case ModeLine:
		return "Line"
	case ModePartition:
		return "Partition"
	case ModeBind:
		return "Bind"
	case ModeObject:
		return "Object"
	case ModeOpening:
		return "Opening"
	case ModeRoom:
		return "Room"
	case ModeEditRoom:
		return "EditRoom"
	case ModeEditWall:
		return "EditWall"
	case ModeEditOpening:
		return "EditOpening"
	case ModeDevice:
		return "Device"
	default:
		return "Select"
	}
}

// CursorType names the pointer shape the UI should show.
type CursorType string

const (
	CursorDefault    CursorType = "default"
	CursorMove       CursorType = "move"
	CursorGrab       CursorType = "grab"
	CursorPointer    CursorType = "pointer"
	CursorValidation CursorType = "validation"
)

// Point2D represents a 2D coordinate in model space.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: o[0].X, Y: o[0].Y}
	max = Point2D{X: o[0].X, Y: o[0].Y}
	for _, p := range o[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// Area computes the absolute polygon area using the shoelace formula.
func (o Outline) Area() float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X * o[j].Y
		area -= o[j].X * o[i].Y
	}
	return math.Abs(area) / 2
}

// Wall types.
const (
	WallNormal   = "normal"
	WallSeparate = "separate" // invisible room separator
)

// DXF layer names shared by the exporter and the importer.
const (
	LayerWalls      = "WALLS"
	LayerPartitions = "PARTITIONS"
	LayerOutlines   = "OUTLINES"
	LayerOpenings   = "OPENINGS"
	LayerDevices    = "DEVICES"
	LayerRooms      = "ROOMS"
)

// Wall is a straight wall segment with a rectangular footprint.
type Wall struct {
	ID        string     `json:"id"`
	Start     Point2D    `json:"start"`
	End       Point2D    `json:"end"`
	Coords    [4]Point2D `json:"coords"` // footprint corners, used for hit-testing
	Type      string     `json:"type"`
	Thickness float64    `json:"thickness"`
	Parent    string     `json:"parent,omitempty"` // wall joined at Start
	Child     string     `json:"child,omitempty"`  // wall joined at End
}

func NewWall(start, end Point2D, wallType string, thickness float64) Wall {
	w := Wall{
		ID:        uuid.New().String()[:8],
		Start:     start,
		End:       end,
		Type:      wallType,
		Thickness: thickness,
	}
	w.Refresh()
	return w
}

// Refresh recomputes the footprint from the current endpoints and thickness.
// Call it after moving Start or End.
func (w *Wall) Refresh() {
	w.Coords = Footprint(w.Start, w.End, w.Thickness)
}

// Length returns the centerline length.
func (w Wall) Length() float64 {
	return math.Hypot(w.End.X-w.Start.X, w.End.Y-w.Start.Y)
}

// Footprint returns the four corners of a wall of the given thickness
// around the centerline start-end, in drawing order.
func Footprint(start, end Point2D, thickness float64) [4]Point2D {
	dx := end.X - start.X
	dy := end.Y - start.Y
	length := math.Hypot(dx, dy)
	var nx, ny float64
	if length > 0 {
		nx = -dy / length * thickness / 2
		ny = dx / length * thickness / 2
	}
	return [4]Point2D{
		{X: start.X + nx, Y: start.Y + ny},
		{X: end.X + nx, Y: end.Y + ny},
		{X: end.X - nx, Y: end.Y - ny},
		{X: start.X - nx, Y: start.Y - ny},
	}
}

// WallEnd selects one endpoint of a wall.
type WallEnd int

const (
	EndStart WallEnd = iota
	EndEnd
)

func (e WallEnd) String() string {
	if e == EndEnd {
		return "end"
	}
	return "start"
}

// Point returns the selected endpoint of w.
func (e WallEnd) Point(w Wall) Point2D {
	if e == EndEnd {
		return w.End
	}
	return w.Start
}

// Set moves the selected endpoint of w to p. The footprint is not refreshed.
func (e WallEnd) Set(w *Wall, p Point2D) {
	if e == EndEnd {
		w.End = p
		return
	}
	w.Start = p
}

// Opposite returns the other end.
func (e WallEnd) Opposite() WallEnd {
	if e == EndEnd {
		return EndStart
	}
	return EndEnd
}

// Object families.
const (
	FamilyInWall = "inWall" // doors, windows: anchored to a wall
	FamilyFree   = "free"
)

// ObjectMetaData is a placed door, window or furniture item.
type ObjectMetaData struct {
	ID        string     `json:"id"`
	Class     string     `json:"class"` // door, window, ...
	Family    string     `json:"family"`
	X         float64    `json:"x"`
	Y         float64    `json:"y"`
	Angle     float64    `json:"angle"` // degrees
	Size      float64    `json:"size"`
	Thickness float64    `json:"thickness"`
	WallID    string     `json:"wall_id,omitempty"`
	Limits    [2]Point2D `json:"limits"`
}

func NewObject(class, family string, x, y, size, thickness float64) ObjectMetaData {
	return ObjectMetaData{
		ID:        uuid.New().String()[:8],
		Class:     class,
		Family:    family,
		X:         x,
		Y:         y,
		Size:      size,
		Thickness: thickness,
	}
}

// Position returns the object center.
func (o ObjectMetaData) Position() Point2D {
	return Point2D{X: o.X, Y: o.Y}
}

// InWall reports whether the object is anchored to a wall.
func (o ObjectMetaData) InWall() bool {
	return o.Family == FamilyInWall && o.WallID != ""
}

// RoomMetaData is a closed area bounded by walls.
type RoomMetaData struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Surface     string  `json:"surface"`
	ShowSurface bool    `json:"show_surface"`
	Action      string  `json:"action"`
	Area        float64 `json:"area"` // square model units
	Polygon     Outline `json:"polygon"`
}

// DeviceMetaData is a point device (outlet, sensor, ...) placed on the plan.
type DeviceMetaData struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size"`
}

// SnapData is a model-space cursor position, possibly grid-rounded, plus the
// unrounded position it came from.
type SnapData struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	XMouse float64 `json:"x_mouse"`
	YMouse float64 `json:"y_mouse"`
}

// Point returns the snapped position.
func (s SnapData) Point() Point2D {
	return Point2D{X: s.X, Y: s.Y}
}

// Raw returns the unrounded cursor position.
func (s SnapData) Raw() Point2D {
	return Point2D{X: s.XMouse, Y: s.YMouse}
}

// EditorSettings holds the drawing constants of a plan.
type EditorSettings struct {
	GridSize        float64 `json:"grid_size"`        // snap grid pitch
	MeterSize       float64 `json:"meter_size"`       // model units per meter
	WallSize        float64 `json:"wall_size"`        // wall thickness
	PartitionSize   float64 `json:"partition_size"`   // partition thickness
	BindRange       float64 `json:"bind_range"`       // max distance for joints
	ClickTolerance  float64 `json:"click_tolerance"`  // max raw movement for a click
	MinWallLength   float64 `json:"min_wall_length"`  // meters
	Snap            bool    `json:"snap"`             // grid snapping on/off
	ContinuousWalls bool    `json:"continuous_walls"` // chain walls while drawing
	SplitOnBind     bool    `json:"split_on_bind"`    // split a wall when a node binds to its interior
}

func DefaultSettings() EditorSettings {
	return EditorSettings{
		GridSize:        20,
		MeterSize:       60,
		WallSize:        20,
		PartitionSize:   8,
		BindRange:       20,
		ClickTolerance:  3,
		MinWallLength:   0.3,
		Snap:            true,
		ContinuousWalls: true,
		SplitOnBind:     true,
	}
}

// Plan ties everything together for save/load.
type Plan struct {
	Name     string           `json:"name"`
	Walls    []Wall           `json:"walls"`
	Objects  []ObjectMetaData `json:"objects"`
	Rooms    []RoomMetaData   `json:"rooms"`
	Devices  []DeviceMetaData `json:"devices"`
	Settings EditorSettings   `json:"settings"`
}

func NewPlan() Plan {
	return Plan{
		Name:     "Untitled",
		Walls:    []Wall{},
		Objects:  []ObjectMetaData{},
		Rooms:    []RoomMetaData{},
		Devices:  []DeviceMetaData{},
		Settings: DefaultSettings(),
	}
}
