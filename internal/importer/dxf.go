package importer

import (
	"fmt"
	"math"
	"strings"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/FloorDraft/internal/model"
)

// segment is one wall centerline read from the drawing, in model space.
type segment struct {
	start model.Point2D
	end   model.Point2D
}

// chain is a run of connected segments from one entity.
type chain struct {
	segs     []segment
	wallType string
}

// WallLayers selects the wall layers written by the DXF exporter.
var WallLayers = []string{model.LayerWalls, model.LayerPartitions}

// minSegment is the shortest centerline, in model units, kept as a wall.
const minSegment = 0.01

// ImportDXF imports walls from a DXF file. Every LINE and every edge of an
// LWPOLYLINE becomes a wall centerline. DXF's Y axis points up, the plan's
// points down, so Y is mirrored; the result is translated so the drawing
// starts at the origin. When opts.Layers is set only entities on those
// layers are read; entities on the PARTITIONS layer become separators.
func ImportDXF(path string, opts Options) ImportResult {
	result := ImportResult{}
	opts = opts.normalized()

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	toModel := func(x, y float64) model.Point2D {
		return model.Point2D{X: x * opts.Scale, Y: -y * opts.Scale}
	}

	var chains []chain
	skipped, filtered := 0, 0
	for _, ent := range entities {
		layer := layerName(ent)
		if !opts.acceptsLayer(layer) {
			filtered++
			continue
		}
		wallType := model.WallNormal
		if strings.EqualFold(layer, model.LayerPartitions) {
			wallType = model.WallSeparate
		}

		switch e := ent.(type) {
		case *entity.Line:
			chains = append(chains, chain{wallType: wallType, segs: []segment{{
				start: toModel(e.Start[0], e.Start[1]),
				end:   toModel(e.End[0], e.End[1]),
			}}})

		case *entity.LwPolyline:
			if len(e.Vertices) < 2 {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 2 vertices")
				continue
			}
			pts := make([]model.Point2D, len(e.Vertices))
			for i, v := range e.Vertices {
				pts[i] = toModel(v[0], v[1])
			}
			if e.Closed && pts[0] != pts[len(pts)-1] {
				pts = append(pts, pts[0])
			}
			chains = append(chains, chain{wallType: wallType, segs: pointsToSegments(pts)})

		default:
			skipped++
		}
	}
	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d unsupported entities", skipped))
	}
	if filtered > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Ignored %d entities on other layers", filtered))
	}

	var all []model.Point2D
	for _, c := range chains {
		for _, s := range c.segs {
			all = append(all, s.start, s.end)
		}
	}
	if len(all) == 0 {
		result.Errors = append(result.Errors, "No walls found in DXF file")
		return result
	}
	min, _ := model.Outline(all).BoundingBox()

	for _, c := range chains {
		thickness := opts.DefaultThickness
		if c.wallType == model.WallSeparate {
			thickness = opts.PartitionThickness
		}
		prev := -1
		for _, s := range c.segs {
			start := model.Point2D{X: s.start.X - min.X, Y: s.start.Y - min.Y}
			end := model.Point2D{X: s.end.X - min.X, Y: s.end.Y - min.Y}
			if math.Hypot(end.X-start.X, end.Y-start.Y) < minSegment {
				result.Warnings = append(result.Warnings, "Skipped zero-length segment")
				continue
			}
			w := model.NewWall(start, end, c.wallType, thickness)
			if prev >= 0 && result.Walls[prev].End == w.Start {
				result.Walls[prev].Child = w.ID
				w.Parent = result.Walls[prev].ID
			}
			result.Walls = append(result.Walls, w)
			prev = len(result.Walls) - 1
		}
	}

	if len(result.Walls) == 0 {
		result.Errors = append(result.Errors, "No walls found in DXF file")
	}
	return result
}

// pointsToSegments converts a point sequence to a slice of connected segments.
func pointsToSegments(pts []model.Point2D) []segment {
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

func layerName(e entity.Entity) string {
	if l := e.Layer(); l != nil {
		return l.Name()
	}
	return ""
}
