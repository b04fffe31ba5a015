package models

import "github.com/ukaji3/gridstate-go/pkg/gridstate/address"

// Overrides is the sparse per-cell override map.
type Overrides map[address.Key]CellOverride

// Snapshot is the committed state of a grid, as recorded in history.
type Snapshot struct {
	// Dataset is the base data at the time of the snapshot.
	Dataset Dataset `json:"dataset"`
	// Overrides holds every touched cell.
	Overrides Overrides `json:"overrides"`
	// SelectedCell is the single selected cell, if any.
	SelectedCell *CellPosition `json:"selected_cell,omitempty"`
	// SelectedRange is the selected range, if any.
	SelectedRange *CellRange `json:"selected_range,omitempty"`
	// EditingCell is the cell in text-edit mode, if any.
	EditingCell *CellPosition `json:"editing_cell,omitempty"`
}
