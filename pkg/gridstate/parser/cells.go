package parser

import (
	"strconv"

	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
	"github.com/xuri/excelize/v2"
)

// Sheet is the raw cell grid of one worksheet, trimmed to a region.
type Sheet struct {
	// Name is the worksheet name.
	Name string
	// Region is the zero-based area Rows was cut from.
	Region models.CellRange
	// Header is the first row of the region.
	Header []string
	// Rows holds the remaining rows, padded to the header width.
	Rows [][]interface{}
}

// ExtractRows returns the formatted cell text of every row of a sheet.
func ExtractRows(f *excelize.File, sheetName string) ([][]string, error) {
	return f.GetRows(sheetName)
}

// ExtractSheet cuts region out of rows, using its first row as the header.
// Cell text is coerced with ParseValue.
func ExtractSheet(sheetName string, rows [][]string, region models.CellRange) Sheet {
	region = region.Normalize()
	sheet := Sheet{Name: sheetName, Region: region}

	width := region.End.Col - region.Start.Col + 1
	cellAt := func(r, c int) string {
		if r < len(rows) && c < len(rows[r]) {
			return rows[r][c]
		}
		return ""
	}

	sheet.Header = make([]string, width)
	for i := 0; i < width; i++ {
		sheet.Header[i] = cellAt(region.Start.Row, region.Start.Col+i)
	}

	for r := region.Start.Row + 1; r <= region.End.Row; r++ {
		row := make([]interface{}, width)
		for i := 0; i < width; i++ {
			row[i] = ParseValue(cellAt(r, region.Start.Col+i))
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	return sheet
}

// ParseValue parses a cell string as a number when possible.
// Returns float64 for numeric text or the original string.
func ParseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
