// Package parser reads xlsx workbooks into the raw grids a dataset is built from.
package parser

import "math"

// Excel column widths are measured in characters of the default font.
// At the default Calibri 11 a character is 7 pixels plus 5 pixels of padding.
const (
	charWidthPixels     = 7
	columnPaddingPixels = 5
)

// PixelsToColumnWidth converts a pixel width to Excel column width units.
func PixelsToColumnWidth(px int) float64 {
	if px <= columnPaddingPixels {
		return 0
	}
	w := float64(px-columnPaddingPixels) / charWidthPixels
	return math.Round(w*100) / 100
}

// ColumnWidthToPixels converts Excel column width units to pixels.
func ColumnWidthToPixels(width float64) int {
	if width <= 0 {
		return 0
	}
	return int(math.Round(width*charWidthPixels)) + columnPaddingPixels
}
