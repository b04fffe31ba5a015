package parser

import (
	"path/filepath"
	"testing"

	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
	"github.com/xuri/excelize/v2"
)

func TestExtractSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "B2", "Name")
	f.SetCellValue(sheetName, "C2", "Score")
	f.SetCellValue(sheetName, "B3", "Ada")
	f.SetCellValue(sheetName, "C3", 100)
	f.SetCellValue(sheetName, "B4", "Linus")
	f.SetCellValue(sheetName, "C4", 200.5)

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	f2, err := excelize.OpenFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f2.Close()

	rows, err := ExtractRows(f2, sheetName)
	if err != nil {
		t.Fatalf("ExtractRows failed: %v", err)
	}

	region, ok := DetectTable(rows, DefaultTableParams())
	if !ok {
		t.Fatal("DetectTable found no table")
	}
	expected := models.CellRange{
		Start: models.CellPosition{Row: 1, Col: 1},
		End:   models.CellPosition{Row: 3, Col: 2},
	}
	if region != expected {
		t.Fatalf("DetectTable = %+v, expected %+v", region, expected)
	}

	sheet := ExtractSheet(sheetName, rows, region)
	if len(sheet.Header) != 2 || sheet.Header[0] != "Name" || sheet.Header[1] != "Score" {
		t.Errorf("Header = %v", sheet.Header)
	}
	if len(sheet.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(sheet.Rows))
	}
	if sheet.Rows[0][0] != "Ada" {
		t.Errorf("Expected 'Ada', got %v", sheet.Rows[0][0])
	}
	if sheet.Rows[0][1] != float64(100) {
		t.Errorf("Expected float64(100), got %v (type: %T)", sheet.Rows[0][1], sheet.Rows[0][1])
	}
	if sheet.Rows[1][1] != 200.5 {
		t.Errorf("Expected 200.5, got %v", sheet.Rows[1][1])
	}
}

func TestExtractSheetPadsShortRows(t *testing.T) {
	rows := [][]string{
		{"a", "b", "c"},
		{"1"},
	}
	sheet := ExtractSheet("S", rows, models.CellRange{End: models.CellPosition{Row: 1, Col: 2}})
	if len(sheet.Rows[0]) != 3 {
		t.Fatalf("row width = %d", len(sheet.Rows[0]))
	}
	if sheet.Rows[0][2] != "" {
		t.Errorf("padding = %v", sheet.Rows[0][2])
	}
}

func TestDetectTableEmpty(t *testing.T) {
	if _, ok := DetectTable(nil, DefaultTableParams()); ok {
		t.Error("empty sheet should have no table")
	}
	if _, ok := DetectTable([][]string{{"", ""}}, DefaultTableParams()); ok {
		t.Error("blank sheet should have no table")
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", float64(123)},
		{"123.45", 123.45},
		{"-100", float64(-100)},
		{"hello", "hello"},
		{"", ""},
	}

	for _, tt := range tests {
		result := ParseValue(tt.input)
		if result != tt.expected {
			t.Errorf("ParseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}
