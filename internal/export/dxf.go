package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/FloorDraft/internal/model"
)

// dxfLayers lists the layers written by ExportDXF, in creation order.
var dxfLayers = []struct {
	name  string
	color color.ColorNumber
}{
	{model.LayerWalls, color.White},
	{model.LayerPartitions, color.Cyan},
	{model.LayerOutlines, color.Blue},
	{model.LayerOpenings, color.Yellow},
	{model.LayerDevices, color.Red},
	{model.LayerRooms, color.Green},
}

// ExportDXF writes the plan as a DXF drawing in meters. Wall centerlines go
// to the WALLS and PARTITIONS layers as LINE entities, so the file can be
// imported back; footprints, openings, devices and room names go to their
// own layers. Y is mirrored to DXF's upward axis.
func ExportDXF(path string, plan model.Plan) error {
	if len(plan.Walls) == 0 {
		return ErrEmptyPlan
	}
	meter := meterSize(plan.Settings)
	xy := func(p model.Point2D) (float64, float64) {
		return p.X / meter, -p.Y / meter
	}

	d := dxf.NewDrawing()
	for _, l := range dxfLayers {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("add layer %s: %w", l.name, err)
		}
	}

	for _, w := range plan.Walls {
		layer := model.LayerWalls
		if w.Type == model.WallSeparate {
			layer = model.LayerPartitions
		}
		if err := d.ChangeLayer(layer); err != nil {
			return fmt.Errorf("select layer %s: %w", layer, err)
		}
		x1, y1 := xy(w.Start)
		x2, y2 := xy(w.End)
		if _, err := d.Line(x1, y1, 0, x2, y2, 0); err != nil {
			return fmt.Errorf("write wall %s: %w", w.ID, err)
		}

		if w.Type == model.WallSeparate {
			continue
		}
		if err := d.ChangeLayer(model.LayerOutlines); err != nil {
			return fmt.Errorf("select layer %s: %w", model.LayerOutlines, err)
		}
		if _, err := d.LwPolyline(true, vertices(w.Coords[:], xy)...); err != nil {
			return fmt.Errorf("write footprint of wall %s: %w", w.ID, err)
		}
	}

	if err := writeOpenings(d, plan.Objects, xy); err != nil {
		return err
	}
	if err := writeDevices(d, plan.Devices, meter, xy); err != nil {
		return err
	}
	if err := writeRooms(d, plan.Rooms, xy); err != nil {
		return err
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("write DXF: %w", err)
	}
	return nil
}

func vertices(pts []model.Point2D, xy func(model.Point2D) (float64, float64)) [][]float64 {
	out := make([][]float64, len(pts))
	for i, p := range pts {
		x, y := xy(p)
		out[i] = []float64{x, y}
	}
	return out
}

func writeOpenings(d *drawing.Drawing, objects []model.ObjectMetaData, xy func(model.Point2D) (float64, float64)) error {
	if err := d.ChangeLayer(model.LayerOpenings); err != nil {
		return fmt.Errorf("select layer %s: %w", model.LayerOpenings, err)
	}
	for _, o := range objects {
		if !o.InWall() || o.Limits[0] == o.Limits[1] {
			continue
		}
		fp := model.Footprint(o.Limits[0], o.Limits[1], o.Thickness)
		if _, err := d.LwPolyline(true, vertices(fp[:], xy)...); err != nil {
			return fmt.Errorf("write opening %s: %w", o.ID, err)
		}
	}
	return nil
}

func writeDevices(d *drawing.Drawing, devices []model.DeviceMetaData, meter float64, xy func(model.Point2D) (float64, float64)) error {
	if err := d.ChangeLayer(model.LayerDevices); err != nil {
		return fmt.Errorf("select layer %s: %w", model.LayerDevices, err)
	}
	for _, dev := range devices {
		x, y := xy(model.Point2D{X: dev.X, Y: dev.Y})
		r := dev.Size / 2 / meter
		if r <= 0 {
			r = 0.05
		}
		if _, err := d.Circle(x, y, 0, r); err != nil {
			return fmt.Errorf("write device %s: %w", dev.ID, err)
		}
	}
	return nil
}

func writeRooms(d *drawing.Drawing, rooms []model.RoomMetaData, xy func(model.Point2D) (float64, float64)) error {
	if err := d.ChangeLayer(model.LayerRooms); err != nil {
		return fmt.Errorf("select layer %s: %w", model.LayerRooms, err)
	}
	for _, r := range rooms {
		if r.Name == "" || len(r.Polygon) == 0 {
			continue
		}
		min, max := r.Polygon.BoundingBox()
		x, y := xy(model.Point2D{X: (min.X + max.X) / 2, Y: (min.Y + max.Y) / 2})
		if _, err := d.Text(r.Name, x, y, 0, 0.25); err != nil {
			return fmt.Errorf("write room %s: %w", r.ID, err)
		}
	}
	return nil
}
