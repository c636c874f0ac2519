package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/FloorDraft/internal/model"
)

// Sheet names of the schedule workbook. The walls sheet comes first so the
// workbook can be imported back as a wall schedule.
const (
	SheetWalls    = "Walls"
	SheetOpenings = "Openings"
	SheetRooms    = "Rooms"
)

var wallHeader = []interface{}{"ID", "X1", "Y1", "X2", "Y2", "Thickness", "Type", "Length", "Parent", "Child"}

// ExportSchedule writes walls, openings and rooms to an XLSX workbook, with
// lengths in meters.
func ExportSchedule(path string, plan model.Plan) error {
	if len(plan.Walls) == 0 {
		return ErrEmptyPlan
	}
	meter := meterSize(plan.Settings)
	m := func(v float64) float64 { return round2(v / meter) }

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetWalls); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	rows := [][]interface{}{wallHeader}
	for _, w := range plan.Walls {
		rows = append(rows, []interface{}{
			w.ID, m(w.Start.X), m(w.Start.Y), m(w.End.X), m(w.End.Y),
			m(w.Thickness), w.Type, m(w.Length()), w.Parent, w.Child,
		})
	}
	if err := writeRows(f, SheetWalls, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetOpenings); err != nil {
		return fmt.Errorf("add sheet %s: %w", SheetOpenings, err)
	}
	rows = [][]interface{}{{"ID", "Class", "Wall", "X", "Y", "Width", "Angle"}}
	for _, o := range plan.Objects {
		rows = append(rows, []interface{}{o.ID, o.Class, o.WallID, m(o.X), m(o.Y), m(o.Size), round2(o.Angle)})
	}
	if err := writeRows(f, SheetOpenings, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetRooms); err != nil {
		return fmt.Errorf("add sheet %s: %w", SheetRooms, err)
	}
	rows = [][]interface{}{{"ID", "Name", "Area (m2)", "Surface"}}
	for _, r := range plan.Rooms {
		area := r.Area
		if area == 0 {
			area = r.Polygon.Area()
		}
		rows = append(rows, []interface{}{r.ID, r.Name, round2(area / (meter * meter)), r.Surface})
	}
	if err := writeRows(f, SheetRooms, rows); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
