package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/dashgrid/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "Type,Width,Height\nlight,2,1\ngraph,4,2\n", ','},
		{"semicolon", "Type;Width;Height\nlight;2;1\ngraph;4;2\n", ';'},
		{"tab", "Type\tWidth\tHeight\nlight\t2\t1\ngraph\t4\t2\n", '\t'},
		{"pipe", "Type|Width|Height\nlight|2|1\ngraph|4|2\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCSVDelimiter([]byte(tt.data)); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"ID", "Type", "Title", "Entity", "Width", "Height", "X", "Y"})

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{ID: 0, Type: 1, Title: 2, Entity: 3, Width: 4, Height: 5, X: 6, Y: 7, Count: -1}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_AlternativeNames(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{" rowspan ", "COLSPAN", "Card", "Name", "Entity_ID", "Qty"})

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Height != 0 || mapping.Width != 1 || mapping.Type != 2 || mapping.Title != 3 ||
		mapping.Entity != 4 || mapping.Count != 5 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
	if mapping.X != -1 || mapping.Y != -1 || mapping.ID != -1 {
		t.Errorf("absent columns should be -1, got %+v", mapping)
	}
}

func TestDetectColumns_FirstMatchWins(t *testing.T) {
	mapping, _ := DetectColumns([]string{"Width", "W", "Height"})
	if mapping.Width != 0 {
		t.Errorf("expected Width at 0, got %d", mapping.Width)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"light", "2", "1", "Kitchen"})

	if isHeader {
		t.Error("expected no header")
	}
	if mapping.Type != 0 || mapping.Width != 1 || mapping.Height != 2 || mapping.Title != 3 || mapping.Entity != 4 {
		t.Errorf("unexpected positional mapping %+v", mapping)
	}
}

// ─── ImportCSVFromReader Tests ─────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Type,Title,Entity,Width,Height\nlight,Kitchen,light.kitchen,2,1\ngraph,Power,sensor.power,4,2\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	it := result.Items[0]
	if it.Type != "light" || it.Title != "Kitchen" || it.Entity != "light.kitchen" {
		t.Errorf("unexpected payload %+v", it)
	}
	if it.Size() != (model.Size{Width: 2, Height: 1}) {
		t.Errorf("expected 2x1, got %v", it.Size())
	}
	if it.Placed {
		t.Error("items without x/y should be unplaced")
	}
	if result.Items[0].ID == result.Items[1].ID {
		t.Error("expected distinct ids")
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("light,2,1,Kitchen\ncamera,4,3\n"), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[0].Title != "Kitchen" || result.Items[1].Type != "camera" {
		t.Errorf("unexpected items %v", result.Items)
	}
}

func TestImportCSVFromReader_UnrecognizedHeaderSkipped(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Kind-ish,Wide,Tall\nlight,2,1\n"), ',')

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d (errors %v)", len(result.Items), result.Errors)
	}
	if !containsWarning(result.Warnings, "header") {
		t.Errorf("expected header warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_Positions(t *testing.T) {
	data := "id,type,width,height,x,y\nw1,light,2,1,3,4\nw2,light,2,1,,\nw3,light,2,1,1,\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(result.Items))
	}
	w1 := result.Items[0]
	if w1.ID != "w1" || !w1.Placed || w1.Position() != (model.Position{X: 3, Y: 4}) {
		t.Errorf("expected w1 placed at (3, 4), got %v placed=%v", w1.Position(), w1.Placed)
	}
	if result.Items[1].Placed || result.Items[2].Placed {
		t.Error("rows without a full x/y pair should be unplaced")
	}
	if !containsWarning(result.Warnings, "Only one of x/y") {
		t.Errorf("expected partial position warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_NegativePosition(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("type,width,height,x,y\nlight,1,1,-1,0\n"), ',')

	if len(result.Errors) != 1 || len(result.Items) != 0 {
		t.Errorf("expected one error and no items, got %v / %v", result.Errors, result.Items)
	}
}

func TestImportCSVFromReader_InvalidSizes(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{"non-numeric width", "light,abc,1", "Invalid width"},
		{"zero width", "light,0,1", "Width must be positive"},
		{"negative height", "light,2,-1", "Height must be positive"},
		{"missing height", "light,2,", "Missing height"},
		{"fractional width", "light,1.5,1", "Invalid width"},
		{"huge width", "light,5000,1", "Width exceeds maximum"},
		{"huge height", "light,1,900000000000", "Height exceeds maximum"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ImportCSVFromReader(strings.NewReader("type,width,height\n"+tt.row+"\n"), ',')
			if len(result.Items) != 0 {
				t.Errorf("expected no items, got %v", result.Items)
			}
			if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, result.Errors)
			}
		})
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	data := "type,width,height\nlight,2,1\nbad,x,1\ngraph,4,2\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 2 {
		t.Errorf("expected 2 valid items, got %d", len(result.Items))
	}
	if len(result.Errors) != 1 || !strings.HasPrefix(result.Errors[0], "Line 3") {
		t.Errorf("expected one error on line 3, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("type,title,width\nlight,Kitchen,2\n"), ',')

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Height") {
		t.Errorf("expected missing Height error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_EmptyTypeDefaults(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("type,width,height\n,1,1\n"), ',')

	if len(result.Items) != 1 || result.Items[0].Type != DefaultType {
		t.Errorf("expected default type, got %v", result.Items)
	}
}

func TestImportCSVFromReader_CountExpandsRows(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("id,type,width,height,count,x,y\nbtn,button,1,1,3,0,0\n"), ',')

	if len(result.Items) != 3 {
		t.Fatalf("expected 3 copies, got %d", len(result.Items))
	}
	for _, it := range result.Items {
		if it.Placed || it.ID == "btn" {
			t.Errorf("copies must be unplaced with fresh ids, got %v", it)
		}
	}
	if len(result.Warnings) < 3 {
		t.Errorf("expected header, position and id warnings, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_CountAboveMaximum(t *testing.T) {
	data := "type,width,height,count\nlight,1,1,900000000000\ngraph,2,1,2\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 2 {
		t.Fatalf("expected only the second row's 2 copies, got %d", len(result.Items))
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "exceeds maximum of 1000") {
		t.Errorf("expected count error, got %v", result.Errors)
	}

	atLimit := ImportCSVFromReader(strings.NewReader("type,width,height,count\nlight,1,1,1000\n"), ',')
	if len(atLimit.Items) != MaxCount || len(atLimit.Errors) != 0 {
		t.Errorf("expected %d copies, got %d (errors %v)", MaxCount, len(atLimit.Items), atLimit.Errors)
	}
}

func TestImportCSVFromReader_FarPosition(t *testing.T) {
	data := "type,width,height,x,y\nlight,1,1,0,1000000000\nlight,1,2,0,999\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 0 {
		t.Errorf("expected no items, got %v", result.Items)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Position exceeds maximum") {
		t.Errorf("unexpected error %q", result.Errors[0])
	}
	if !strings.Contains(result.Errors[1], "reaches beyond") {
		t.Errorf("unexpected error %q", result.Errors[1])
	}
}

func TestImportCSVFromReader_DuplicateIDRenamed(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("id,type,width,height\na,light,1,1\na,light,1,1\n"), ',')

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[0].ID != "a" || result.Items[1].ID == "a" {
		t.Errorf("expected second id renamed, got %q and %q", result.Items[0].ID, result.Items[1].ID)
	}
	if !containsWarning(result.Warnings, "Duplicate id") {
		t.Errorf("expected duplicate warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_EmptyRows(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("type,width,height\nlight,1,1\n,,\n\ngraph,2,2\n"), ',')

	if len(result.Items) != 2 || len(result.Errors) != 0 {
		t.Errorf("expected 2 items and no errors, got %d / %v", len(result.Items), result.Errors)
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestImportCSVFromReader_OnlyHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("type,width,height\n"), ',')

	if len(result.Items) != 0 || len(result.Errors) != 0 {
		t.Errorf("expected nothing, got %v / %v", result.Items, result.Errors)
	}
}

// ─── File Import Tests ─────────────────────────────────────

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widgets.csv")
	if err := os.WriteFile(path, []byte("Type;Width;Height\nlight;2;1\ngraph;4;2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := Import(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(result.Items))
	}
	if !containsWarning(result.Warnings, "semicolon") {
		t.Errorf("expected semicolon warning, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)
	if len(result.Errors) != 1 || result.Errors[0] != "File is empty" {
		t.Errorf("expected 'File is empty', got %v", result.Errors)
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "widgets.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Title", "Type", "Width", "Height", "X", "Y"},
		{"Kitchen", "light", 2, 1, 0, 0},
		{"Power", "graph", 4, 2},
	})

	result := Import(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[0].Title != "Kitchen" || !result.Items[0].Placed {
		t.Errorf("expected placed Kitchen widget, got %+v", result.Items[0])
	}
	if result.Items[1].Width != 4 || result.Items[1].Placed {
		t.Errorf("expected unplaced 4-wide widget, got %+v", result.Items[1])
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"light", 2, 1},
		{"camera", 4, 3},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(result.Items))
	}
}

func TestImportExcel_InvalidData(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Type", "Width", "Height"},
		{"light", "wide", 1},
	})

	result := ImportExcel(path)

	if len(result.Errors) != 1 || !strings.HasPrefix(result.Errors[0], "Row 2") {
		t.Errorf("expected one error on row 2, got %v", result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func containsWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}
