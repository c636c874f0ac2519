// Package importer reads walls from wall schedules (CSV, Excel) and from
// DXF drawings. Schedules support automatic delimiter detection, flexible
// column mapping and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/FloorDraft/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Walls    []model.Wall
	Errors   []string
	Warnings []string
}

// Options control how file coordinates become model coordinates.
type Options struct {
	Scale              float64  // model units per file unit
	DefaultThickness   float64  // used when a row or entity has none
	PartitionThickness float64  // DXF entities on the PARTITIONS layer
	Layers             []string // DXF layers to read; empty reads all
}

// DefaultOptions reads coordinates in meters for a plan with the given
// settings.
func DefaultOptions(s model.EditorSettings) Options {
	return Options{Scale: s.MeterSize, DefaultThickness: s.WallSize, PartitionThickness: s.PartitionSize}
}

func (o Options) normalized() Options {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.DefaultThickness <= 0 {
		o.DefaultThickness = model.DefaultSettings().WallSize
	}
	if o.PartitionThickness <= 0 {
		o.PartitionThickness = model.DefaultSettings().PartitionSize
	}
	return o
}

func (o Options) acceptsLayer(name string) bool {
	if len(o.Layers) == 0 {
		return true
	}
	return slices.ContainsFunc(o.Layers, func(l string) bool { return strings.EqualFold(l, name) })
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	ID        int
	X1, Y1    int
	X2, Y2    int
	Thickness int
	Type      int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"id":        {"id", "wall", "wall id", "name", "label"},
	"x1":        {"x1", "start x", "startx", "from x", "sx"},
	"y1":        {"y1", "start y", "starty", "from y", "sy"},
	"x2":        {"x2", "end x", "endx", "to x", "ex"},
	"y2":        {"y2", "end y", "endy", "to y", "ey"},
	"thickness": {"thickness", "thick", "t", "width", "w"},
	"type":      {"type", "kind", "wall type"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping x1, y1, x2, y2, thickness, type and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	roles := map[string]int{}
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			if _, seen := roles[role]; seen {
				continue
			}
			for _, alias := range aliases {
				if normalized == alias {
					roles[role] = i
					break
				}
			}
		}
	}

	if len(roles) == 0 {
		return ColumnMapping{ID: -1, X1: 0, Y1: 1, X2: 2, Y2: 3, Thickness: 4, Type: 5}, false
	}

	col := func(role string) int {
		if i, ok := roles[role]; ok {
			return i
		}
		return -1
	}
	return ColumnMapping{
		ID:        col("id"),
		X1:        col("x1"),
		Y1:        col("y1"),
		X2:        col("x2"),
		Y2:        col("y2"),
		Thickness: col("thickness"),
		Type:      col("type"),
	}, true
}

// parseWallType maps a schedule cell to a wall type.
func parseWallType(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "wall", "n":
		return model.WallNormal, true
	case "separate", "partition", "separator", "s", "p":
		return model.WallSeparate, true
	default:
		return model.WallNormal, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseCoord(row []string, idx int, name, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	return v, ""
}

// parseRow extracts a Wall from a row using the given column mapping.
// Returns the wall, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, opts Options) (model.Wall, string, string) {
	var coords [4]float64
	for i, c := range []struct {
		idx  int
		name string
	}{{mapping.X1, "x1"}, {mapping.Y1, "y1"}, {mapping.X2, "x2"}, {mapping.Y2, "y2"}} {
		v, errMsg := parseCoord(row, c.idx, c.name, rowLabel)
		if errMsg != "" {
			return model.Wall{}, errMsg, ""
		}
		coords[i] = v * opts.Scale
	}

	start := model.Point2D{X: coords[0], Y: coords[1]}
	end := model.Point2D{X: coords[2], Y: coords[3]}
	if start == end {
		return model.Wall{}, fmt.Sprintf("%s: Wall has zero length", rowLabel), ""
	}

	thickness := opts.DefaultThickness
	if s := getCell(row, mapping.Thickness); s != "" {
		t, err := strconv.ParseFloat(s, 64)
		if err != nil || t <= 0 {
			return model.Wall{}, fmt.Sprintf("%s: Invalid thickness '%s'", rowLabel, s), ""
		}
		thickness = t * opts.Scale
	}

	var warning string
	typeStr := getCell(row, mapping.Type)
	wallType, ok := parseWallType(typeStr)
	if !ok {
		warning = fmt.Sprintf("%s: Unknown wall type '%s', defaulting to normal", rowLabel, typeStr)
	}

	w := model.NewWall(start, end, wallType, thickness)
	if id := getCell(row, mapping.ID); id != "" {
		w.ID = id
	}
	return w, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports walls from a CSV wall schedule.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string, opts Options) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings, opts)
}

// ImportCSVFromReader imports walls from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, opts Options) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", nil, opts)
}

// ImportExcel imports walls from the first sheet of an Excel workbook.
func ImportExcel(path string, opts Options) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil, opts)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string, opts Options) ImportResult {
	result := ImportResult{Warnings: initialWarnings}
	opts = opts.normalized()

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		for _, c := range []struct {
			idx  int
			name string
		}{{mapping.X1, "X1"}, {mapping.Y1, "Y1"}, {mapping.X2, "X2"}, {mapping.Y2, "Y2"}} {
			if c.idx == -1 {
				missing = append(missing, c.name)
			}
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if _, err := strconv.ParseFloat(getCell(rows[0], 0), 64); err != nil {
		// Unrecognized header: skip it and keep the positional mapping.
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		w, errMsg, warning := parseRow(row, mapping, rowLabel, opts)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Walls = append(result.Walls, w)
	}

	return result
}
