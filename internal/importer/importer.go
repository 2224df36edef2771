// Package importer provides CSV and Excel import functionality for widget
// lists. It supports automatic delimiter detection, flexible column mapping,
// and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/dashgrid/internal/model"
)

const (
	// DefaultType is used for rows that name no widget type.
	DefaultType = "entity"
	// MaxCount is the largest number of copies a single row may request.
	MaxCount = 1000
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Items    []model.GridItem
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// A value of -1 means the column is absent.
type ColumnMapping struct {
	ID     int
	Type   int
	Title  int
	Entity int
	Width  int
	Height int
	X      int
	Y      int
	Count  int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"id":     {"id", "key", "widget id"},
	"type":   {"type", "kind", "widget", "card", "card type"},
	"title":  {"title", "name", "label", "caption"},
	"entity": {"entity", "entity id", "entity_id", "source"},
	"width":  {"width", "w", "cols", "colspan", "columns"},
	"height": {"height", "h", "rowspan", "rows"},
	"x":      {"x", "col", "column", "left"},
	"y":      {"y", "row", "top"},
	"count":  {"count", "qty", "quantity", "copies"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range []rune{',', ';', '\t', '|'} {
		records, err := readCSV(bytes.NewReader(data), delim)
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

		// Consistency first, then more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or the positional
// mapping (type, width, height, title, entity) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{ID: -1, Type: -1, Title: -1, Entity: -1, Width: -1, Height: -1, X: -1, Y: -1, Count: -1}
	slots := map[string]*int{
		"id": &mapping.ID, "type": &mapping.Type, "title": &mapping.Title, "entity": &mapping.Entity,
		"width": &mapping.Width, "height": &mapping.Height, "x": &mapping.X, "y": &mapping.Y, "count": &mapping.Count,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if slot := slots[role]; *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{ID: -1, Type: 0, Width: 1, Height: 2, Title: 3, Entity: 4, X: -1, Y: -1, Count: -1}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseSpan reads a required positive cell count.
func parseSpan(row []string, idx int, name, rowLabel string) (int, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	if n <= 0 {
		return 0, fmt.Sprintf("%s: %s must be positive", rowLabel, strings.ToUpper(name[:1])+name[1:])
	}
	if n > model.MaxExtent {
		return 0, fmt.Sprintf("%s: %s exceeds maximum of %d", rowLabel, strings.ToUpper(name[:1])+name[1:], model.MaxExtent)
	}
	return n, ""
}

// parsePosition reads the optional x/y pair. Both must be present for the
// item to count as placed.
func parsePosition(row []string, mapping ColumnMapping, rowLabel string) (model.Position, bool, string, string) {
	xs, ys := getCell(row, mapping.X), getCell(row, mapping.Y)
	if xs == "" && ys == "" {
		return model.Position{}, false, "", ""
	}
	if xs == "" || ys == "" {
		return model.Position{}, false, "", fmt.Sprintf("%s: Only one of x/y given, widget will be placed automatically", rowLabel)
	}
	x, errX := strconv.Atoi(xs)
	y, errY := strconv.Atoi(ys)
	if errX != nil || errY != nil {
		return model.Position{}, false, fmt.Sprintf("%s: Invalid position '%s,%s'", rowLabel, xs, ys), ""
	}
	if x < 0 || y < 0 {
		return model.Position{}, false, fmt.Sprintf("%s: Position must not be negative", rowLabel), ""
	}
	if x > model.MaxExtent || y > model.MaxExtent {
		return model.Position{}, false, fmt.Sprintf("%s: Position exceeds maximum of %d", rowLabel, model.MaxExtent), ""
	}
	return model.Position{X: x, Y: y}, true, "", ""
}

// parseRow extracts one or more GridItems from a row using the given column
// mapping. Returns the items, any error message, and any warning messages.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) ([]model.GridItem, string, []string) {
	var warnings []string

	width, errMsg := parseSpan(row, mapping.Width, "width", rowLabel)
	if errMsg != "" {
		return nil, errMsg, nil
	}
	height, errMsg := parseSpan(row, mapping.Height, "height", rowLabel)
	if errMsg != "" {
		return nil, errMsg, nil
	}

	count := 1
	if s := getCell(row, mapping.Count); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return nil, fmt.Sprintf("%s: Invalid count '%s'", rowLabel, s), nil
		}
		if n > MaxCount {
			return nil, fmt.Sprintf("%s: Count %d exceeds maximum of %d", rowLabel, n, MaxCount), nil
		}
		count = n
	}

	pos, placed, errMsg, warning := parsePosition(row, mapping, rowLabel)
	if errMsg != "" {
		return nil, errMsg, nil
	}
	if warning != "" {
		warnings = append(warnings, warning)
	}
	if placed && count > 1 {
		warnings = append(warnings, fmt.Sprintf("%s: Position ignored for %d copies", rowLabel, count))
		placed = false
	}

	itemType := getCell(row, mapping.Type)
	if itemType == "" {
		itemType = DefaultType
	}

	items := make([]model.GridItem, 0, count)
	for range count {
		it := model.NewGridItem(itemType, width, height)
		it.Title = getCell(row, mapping.Title)
		it.Entity = getCell(row, mapping.Entity)
		if placed {
			it = it.At(pos)
			if err := it.CheckExtent(); err != nil {
				return nil, fmt.Sprintf("%s: Widget reaches beyond %d cells", rowLabel, model.MaxExtent), nil
			}
		}
		items = append(items, it)
	}
	if id := getCell(row, mapping.ID); id != "" {
		if count > 1 {
			warnings = append(warnings, fmt.Sprintf("%s: Id '%s' ignored for %d copies", rowLabel, id, count))
		} else {
			items[0].ID = id
		}
	}

	return items, "", warnings
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

// Import dispatches on the file extension: .xlsx and .xlsm go through
// ImportExcel, everything else is read as CSV.
func Import(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	default:
		return ImportCSV(path)
	}
}

// ImportCSV imports widgets from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
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

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports widgets from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	records, err := readCSV(reader, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	if len(records) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}
	return importFromRows(records, "Line", nil)
}

// ImportExcel imports widgets from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
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

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into widgets.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Items:    []model.GridItem{},
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// An unrecognized header still has a non-numeric width column
		if _, err := strconv.Atoi(strings.TrimSpace(rows[0][1])); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	seen := make(map[string]bool)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		items, errMsg, warnings := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)

		for _, it := range items {
			if seen[it.ID] {
				fresh := model.NewGridItem(it.Type, it.Width, it.Height).ID
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Duplicate id '%s' renamed to '%s'", rowLabel, it.ID, fresh))
				it.ID = fresh
			}
			seen[it.ID] = true
			result.Items = append(result.Items, it)
		}
	}

	return result
}
