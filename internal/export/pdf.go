// Package export writes plans to printable PDF, DXF drawings and wall
// schedule workbooks.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/FloorDraft/internal/model"
)

// ErrEmptyPlan is returned when a plan has no walls to export.
var ErrEmptyPlan = errors.New("plan has no walls")

// rgb is a fill or stroke color.
type rgb struct {
	R, G, B int
}

// roomColors is used for rooms without a parseable color.
var roomColors = []rgb{
	{R: 232, G: 245, B: 233}, // green
	{R: 227, G: 242, B: 253}, // blue
	{R: 255, G: 243, B: 224}, // orange
	{R: 243, G: 229, B: 245}, // purple
	{R: 224, G: 247, B: 250}, // cyan
	{R: 255, G: 253, B: 231}, // yellow
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	titleHeight  = 32.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	qrSize       = 28.0
)

// PlanSummary is the JSON encoded into the title block QR code.
type PlanSummary struct {
	Name       string  `json:"name"`
	Walls      int     `json:"walls"`
	Openings   int     `json:"openings"`
	Rooms      int     `json:"rooms"`
	WallLength float64 `json:"wall_length_m"`
	FloorArea  float64 `json:"floor_area_m2"`
}

// Summarize computes the figures printed in the title block.
func Summarize(plan model.Plan) PlanSummary {
	meter := meterSize(plan.Settings)
	s := PlanSummary{
		Name:     plan.Name,
		Walls:    len(plan.Walls),
		Openings: len(plan.Objects),
		Rooms:    len(plan.Rooms),
	}
	for _, w := range plan.Walls {
		if w.Type == model.WallNormal {
			s.WallLength += w.Length() / meter
		}
	}
	for _, r := range plan.Rooms {
		area := r.Area
		if area == 0 {
			area = r.Polygon.Area()
		}
		s.FloorArea += area / (meter * meter)
	}
	s.WallLength = math.Round(s.WallLength*100) / 100
	s.FloorArea = math.Round(s.FloorArea*100) / 100
	return s
}

func meterSize(s model.EditorSettings) float64 {
	if s.MeterSize <= 0 {
		return 1
	}
	return s.MeterSize
}

// ExportPDF renders the plan on an A4 landscape page with a title block,
// followed by a wall schedule page.
func ExportPDF(path string, plan model.Plan) error {
	if len(plan.Walls) == 0 {
		return ErrEmptyPlan
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	if err := renderPlanPage(pdf, plan); err != nil {
		return err
	}

	pdf.AddPage()
	renderSchedulePage(pdf, plan)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write PDF: %w", err)
	}
	return nil
}

// pageTransform maps model coordinates into the drawing area.
type pageTransform struct {
	min     model.Point2D
	scale   float64
	offsetX float64
	offsetY float64
}

func (t pageTransform) point(p model.Point2D) fpdf.PointType {
	return fpdf.PointType{
		X: t.offsetX + (p.X-t.min.X)*t.scale,
		Y: t.offsetY + (p.Y-t.min.Y)*t.scale,
	}
}

func (t pageTransform) polygon(pts []model.Point2D) []fpdf.PointType {
	out := make([]fpdf.PointType, len(pts))
	for i, p := range pts {
		out[i] = t.point(p)
	}
	return out
}

// fitPlan scales the footprint of every wall into a w by h area at (x, y).
func fitPlan(walls []model.Wall, x, y, w, h float64) pageTransform {
	var pts model.Outline
	for _, wall := range walls {
		pts = append(pts, wall.Coords[:]...)
	}
	min, max := pts.BoundingBox()
	width := math.Max(max.X-min.X, 1)
	height := math.Max(max.Y-min.Y, 1)
	scale := math.Min(w/width, h/height)
	return pageTransform{
		min:     min,
		scale:   scale,
		offsetX: x + (w-width*scale)/2,
		offsetY: y + (h-height*scale)/2,
	}
}

func renderPlanPage(pdf *fpdf.Fpdf, plan model.Plan) error {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, plan.Name, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - titleHeight
	tr := fitPlan(plan.Walls, marginLeft, drawAreaTop, drawWidth, drawHeight)

	drawRooms(pdf, plan, tr)
	drawWalls(pdf, plan.Walls, tr)
	drawOpenings(pdf, plan.Objects, tr)
	drawDevices(pdf, plan.Devices, tr)
	drawWallDimensions(pdf, plan, tr)

	return drawTitleBlock(pdf, plan)
}

func drawRooms(pdf *fpdf.Fpdf, plan model.Plan, tr pageTransform) {
	meter := meterSize(plan.Settings)
	for i, r := range plan.Rooms {
		if len(r.Polygon) < 3 {
			continue
		}
		col, ok := parseHexColor(r.Color)
		if !ok {
			col = roomColors[i%len(roomColors)]
		}
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(col.R, col.G, col.B)
		pdf.SetLineWidth(0.1)
		pdf.Polygon(tr.polygon(r.Polygon), "F")

		label := r.Name
		if r.ShowSurface {
			area := r.Area
			if area == 0 {
				area = r.Polygon.Area()
			}
			label = fmt.Sprintf("%s %.2f m2", label, area/(meter*meter))
		}
		if label == "" {
			continue
		}
		min, max := r.Polygon.BoundingBox()
		c := tr.point(model.Point2D{X: (min.X + max.X) / 2, Y: (min.Y + max.Y) / 2})
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(60, 60, 60)
		lw := pdf.GetStringWidth(label)
		pdf.SetXY(c.X-lw/2, c.Y-2)
		pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")
	}
}

func drawWalls(pdf *fpdf.Fpdf, walls []model.Wall, tr pageTransform) {
	for _, w := range walls {
		if w.Type == model.WallSeparate {
			a, b := tr.point(w.Start), tr.point(w.End)
			pdf.SetDrawColor(150, 150, 150)
			pdf.SetLineWidth(0.2)
			pdf.SetDashPattern([]float64{1.5, 1}, 0)
			pdf.Line(a.X, a.Y, b.X, b.Y)
			pdf.SetDashPattern([]float64{}, 0)
			continue
		}
		pdf.SetFillColor(60, 60, 60)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Polygon(tr.polygon(w.Coords[:]), "FD")
	}
}

// drawOpenings cuts in-wall objects out of their walls and marks the
// swing side of doors.
func drawOpenings(pdf *fpdf.Fpdf, objects []model.ObjectMetaData, tr pageTransform) {
	for _, o := range objects {
		if !o.InWall() || o.Limits[0] == o.Limits[1] {
			continue
		}
		fp := model.Footprint(o.Limits[0], o.Limits[1], o.Thickness)
		pdf.SetFillColor(255, 255, 255)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.15)
		pdf.Polygon(tr.polygon(fp[:]), "FD")

		a, b := tr.point(o.Limits[0]), tr.point(o.Limits[1])
		switch strings.ToLower(o.Class) {
		case "door":
			r := math.Hypot(b.X-a.X, b.Y-a.Y)
			pdf.SetDrawColor(120, 120, 120)
			pdf.Arc(a.X, a.Y, r, r, 0, 0, 90, "D")
		case "window":
			pdf.SetDrawColor(33, 150, 243)
			pdf.Line(a.X, a.Y, b.X, b.Y)
		}
	}
}

func drawDevices(pdf *fpdf.Fpdf, devices []model.DeviceMetaData, tr pageTransform) {
	for _, d := range devices {
		c := tr.point(model.Point2D{X: d.X, Y: d.Y})
		r := math.Max(d.Size/2*tr.scale, 0.8)
		pdf.SetFillColor(255, 152, 0)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.1)
		pdf.Circle(c.X, c.Y, r, "FD")
	}
}

// drawWallDimensions prints each normal wall's length next to its midpoint,
// on the outer side of the footprint.
func drawWallDimensions(pdf *fpdf.Fpdf, plan model.Plan, tr pageTransform) {
	meter := meterSize(plan.Settings)
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(0, 0, 0)
	for _, w := range plan.Walls {
		length := w.Length()
		if w.Type != model.WallNormal || length*tr.scale < 12 {
			continue
		}
		mid := model.Point2D{X: (w.Coords[0].X + w.Coords[1].X) / 2, Y: (w.Coords[0].Y + w.Coords[1].Y) / 2}
		p := tr.point(mid)
		label := fmt.Sprintf("%.2f", length/meter)
		lw := pdf.GetStringWidth(label)
		pdf.SetXY(p.X-lw/2, p.Y-3)
		pdf.CellFormat(lw, 3, label, "", 0, "C", false, 0, "")
	}
}

// drawTitleBlock fills the strip under the drawing with the plan summary
// and a QR code carrying the same figures as JSON.
func drawTitleBlock(pdf *fpdf.Fpdf, plan model.Plan) error {
	summary := Summarize(plan)
	top := pageHeight - marginBottom - titleHeight + 2
	width := pageWidth - marginLeft - marginRight

	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.3)
	pdf.Rect(marginLeft, top, width, titleHeight-2, "D")

	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal plan summary: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}
	pdf.RegisterImageOptionsReader("plan_qr", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions("plan_qr", marginLeft+width-qrSize-1, top+1, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	lines := []string{
		fmt.Sprintf("Plan: %s", summary.Name),
		fmt.Sprintf("Walls: %d | Openings: %d | Rooms: %d", summary.Walls, summary.Openings, summary.Rooms),
		fmt.Sprintf("Wall length: %.2f m | Floor area: %.2f m2", summary.WallLength, summary.FloorArea),
		fmt.Sprintf("Grid: %.2f m", plan.Settings.GridSize/meterSize(plan.Settings)),
	}
	pdf.SetTextColor(0, 0, 0)
	for i, line := range lines {
		if i == 0 {
			pdf.SetFont("Helvetica", "B", 11)
		} else {
			pdf.SetFont("Helvetica", "", 9)
		}
		pdf.SetXY(marginLeft+3, top+3+float64(i)*6)
		pdf.CellFormat(width-qrSize-8, 6, line, "", 0, "L", false, 0, "")
	}
	return nil
}

// renderSchedulePage lists every wall in a table.
func renderSchedulePage(pdf *fpdf.Fpdf, plan model.Plan) {
	meter := meterSize(plan.Settings)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Wall Schedule", "", 0, "L", false, 0, "")

	cols := []struct {
		title string
		width float64
	}{
		{"ID", 30}, {"Type", 28}, {"Start (m)", 44}, {"End (m)", 44},
		{"Length (m)", 30}, {"Thickness (m)", 32}, {"Openings", 24},
	}

	y := drawAreaTop
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for _, c := range cols {
		pdf.SetXY(x, y)
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", true, 0, "")
		x += c.width
	}
	y += 7

	pdf.SetFont("Helvetica", "", 8)
	for _, w := range plan.Walls {
		if y > pageHeight-marginBottom-6 {
			pdf.AddPage()
			y = marginTop
		}
		openings := 0
		for _, o := range plan.Objects {
			if o.InWall() && o.WallID == w.ID {
				openings++
			}
		}
		cells := []string{
			w.ID,
			w.Type,
			fmt.Sprintf("%.2f, %.2f", w.Start.X/meter, w.Start.Y/meter),
			fmt.Sprintf("%.2f, %.2f", w.End.X/meter, w.End.Y/meter),
			fmt.Sprintf("%.2f", w.Length()/meter),
			fmt.Sprintf("%.2f", w.Thickness/meter),
			strconv.Itoa(openings),
		}
		x = marginLeft
		for i, c := range cols {
			pdf.SetXY(x, y)
			pdf.CellFormat(c.width, 6, cells[i], "1", 0, "C", false, 0, "")
			x += c.width
		}
		y += 6
	}
}

// parseHexColor reads "#rrggbb" or "rrggbb".
func parseHexColor(s string) (rgb, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return rgb{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return rgb{}, false
	}
	return rgb{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, true
}
