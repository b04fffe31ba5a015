package models

// GridView is a read-only rendering of the live grid for export.
type GridView struct {
	// Columns is the current column list.
	Columns []Column `json:"columns"`
	// Rows holds the display value of every cell, row-major.
	Rows [][]string `json:"rows"`
	// Overrides holds every touched cell.
	Overrides Overrides `json:"overrides,omitempty"`
	// SelectedCell is the single selected cell, if any.
	SelectedCell *CellPosition `json:"selected_cell,omitempty"`
	// SelectedRange is the selected range, if any.
	SelectedRange *CellRange `json:"selected_range,omitempty"`
}
