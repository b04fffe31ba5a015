package parser

import (
	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	DensityMin       float64
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		MinNonemptyCells: 1,
	}
}

// DetectTable finds the bounding box of non-empty cells.
// It reports false when the sheet is empty or the block is too sparse to be a table.
func DetectTable(rows [][]string, params TableDetectionParams) (models.CellRange, bool) {
	b, filled := scanBlock(rows)
	if filled == 0 || filled < params.MinNonemptyCells {
		return models.CellRange{}, false
	}

	area := (b.End.Row - b.Start.Row + 1) * (b.End.Col - b.Start.Col + 1)
	if float64(filled)/float64(area) < params.DensityMin {
		return models.CellRange{}, false
	}
	return b, true
}

// scanBlock returns the smallest range holding every non-empty cell and how
// many cells are non-empty.
func scanBlock(rows [][]string) (models.CellRange, int) {
	var b models.CellRange
	filled := 0
	for r, row := range rows {
		for c, v := range row {
			if v == "" {
				continue
			}
			if filled == 0 {
				b = models.CellRange{Start: models.CellPosition{Row: r, Col: c}, End: models.CellPosition{Row: r, Col: c}}
			}
			b.Start.Row, b.End.Row = min(b.Start.Row, r), max(b.End.Row, r)
			b.Start.Col, b.End.Col = min(b.Start.Col, c), max(b.End.Col, c)
			filled++
		}
	}
	return b, filled
}
