package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/gridstate-go/pkg/gridstate/address"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
	"github.com/xuri/excelize/v2"
)

// ExtractPrintAreas extracts print areas from a workbook.
// Returns a map of sheet name to zero-based ranges.
func ExtractPrintAreas(f *excelize.File) map[string][]models.CellRange {
	result := make(map[string][]models.CellRange)

	for _, dn := range f.GetDefinedName() {
		if strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			sheetName, areas := ParseReference(dn.RefersTo)
			if sheetName != "" && len(areas) > 0 {
				result[sheetName] = append(result[sheetName], areas...)
			}
		}
	}

	return result
}

// ParseReference parses a reference string.
// Format: 'SheetName'!$A$1:$D$10 or SheetName!$A$1:$D$10, comma separated.
func ParseReference(ref string) (string, []models.CellRange) {
	var areas []models.CellRange
	var sheetName string

	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if idx := strings.LastIndex(part, "!"); idx >= 0 {
			sheet := strings.Trim(part[:idx], "'")
			if sheetName == "" {
				sheetName = sheet
			}
			part = part[idx+1:]
		}

		if area, err := ParseRange(part); err == nil {
			areas = append(areas, area)
		}
	}

	return sheetName, areas
}

// ParseRange parses an A1 range such as "$A$1:$D$10" or a single cell "B2"
// into a zero-based CellRange.
func ParseRange(rangeStr string) (models.CellRange, error) {
	parts := strings.Split(strings.TrimSpace(rangeStr), ":")
	if len(parts) > 2 {
		return models.CellRange{}, fmt.Errorf("invalid range %q", rangeStr)
	}

	start, err := address.FromCellName(parts[0])
	if err != nil {
		return models.CellRange{}, fmt.Errorf("invalid range %q: %w", rangeStr, err)
	}
	end := start
	if len(parts) == 2 {
		if end, err = address.FromCellName(parts[1]); err != nil {
			return models.CellRange{}, fmt.Errorf("invalid range %q: %w", rangeStr, err)
		}
	}

	return models.CellRange{
		Start: models.CellPosition{Row: start.Row, Col: start.Col},
		End:   models.CellPosition{Row: end.Row, Col: end.Col},
	}, nil
}
