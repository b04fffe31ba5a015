package gridstate

import "github.com/ukaji3/gridstate-go/pkg/gridstate/models"

// Operation is one entry of the closed dispatch vocabulary.
// Only the types declared in this file implement it.
type Operation interface {
	operation()
}

// SortDirection orders SortColumn.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// At returns a pointer to i, for the optional Index of AddColumn and AddRow.
func At(i int) *int { return &i }

// SetValue validates Value for the cell's column type and writes the result.
type SetValue struct {
	Pos   models.CellPosition
	Value interface{}
}

// SetStyle merges Style into the cell's style. It is not recorded in history.
type SetStyle struct {
	Pos   models.CellPosition
	Style models.CellStyle
}

// SetFormula stores Formula on the cell without evaluating it.
type SetFormula struct {
	Pos     models.CellPosition
	Formula string
}

// AddColumn inserts a text column at Index (nil appends).
// An empty Name becomes "Column N".
type AddColumn struct {
	Index *int
	Name  string
}

// AddRow inserts an empty row at Index (nil appends).
type AddRow struct {
	Index *int
}

// DeleteColumn removes the column at Index.
type DeleteColumn struct {
	Index int
}

// DeleteRow removes the row at Index.
type DeleteRow struct {
	Index int
}

// SelectCell selects a single cell and clears any range selection.
type SelectCell struct {
	Pos models.CellPosition
}

// SelectRange selects a range and clears any single-cell selection.
type SelectRange struct {
	Range models.CellRange
}

// StartEditing puts a cell in text-edit mode.
type StartEditing struct {
	Pos models.CellPosition
}

// StopEditing leaves text-edit mode.
type StopEditing struct{}

// UpdateColumnName renames the column at Index.
type UpdateColumnName struct {
	Index int
	Name  string
}

// UpdateColumnType changes the type of the column at Index and replaces its
// format with Format, or an empty format when Format is nil.
type UpdateColumnType struct {
	Index  int
	Type   models.ColumnType
	Format *models.ColumnFormat
}

// SortColumn reorders rows by the display values of the column at Index.
type SortColumn struct {
	Index     int
	Direction SortDirection
}

// MoveRange relocates the non-empty cells of Source by Destination - Anchor.
type MoveRange struct {
	Anchor      models.CellPosition
	Source      models.CellRange
	Destination models.CellPosition
}

// CopyRange is MoveRange without clearing the source cells.
type CopyRange struct {
	Anchor      models.CellPosition
	Source      models.CellRange
	Destination models.CellPosition
}

// Undo restores the previous history entry.
type Undo struct{}

// Redo restores the next history entry.
type Redo struct{}

// Reset restores the dataset as loaded and drops every override and all history.
type Reset struct{}

func (SetValue) operation()         {}
func (SetStyle) operation()         {}
func (SetFormula) operation()       {}
func (AddColumn) operation()        {}
func (AddRow) operation()           {}
func (DeleteColumn) operation()     {}
func (DeleteRow) operation()        {}
func (SelectCell) operation()       {}
func (SelectRange) operation()      {}
func (StartEditing) operation()     {}
func (StopEditing) operation()      {}
func (UpdateColumnName) operation() {}
func (UpdateColumnType) operation() {}
func (SortColumn) operation()       {}
func (MoveRange) operation()        {}
func (CopyRange) operation()        {}
func (Undo) operation()             {}
func (Redo) operation()             {}
func (Reset) operation()            {}
