package models

// CellPosition is a zero-based (row, col) cell coordinate.
type CellPosition struct {
	// Row is the zero-based row index.
	Row int `json:"row" yaml:"row"`
	// Col is the zero-based column index.
	Col int `json:"col" yaml:"col"`
}

// Add returns p shifted by (dRow, dCol).
func (p CellPosition) Add(dRow, dCol int) CellPosition {
	return CellPosition{Row: p.Row + dRow, Col: p.Col + dCol}
}

// CellRange is a rectangle given by two corner cells.
// Corners are unordered until Normalize is called.
type CellRange struct {
	// Start is the corner where the selection began.
	Start CellPosition `json:"start" yaml:"start"`
	// End is the opposite corner.
	End CellPosition `json:"end" yaml:"end"`
}

// Normalize returns r with Start at the top-left and End at the bottom-right corner.
func (r CellRange) Normalize() CellRange {
	return CellRange{
		Start: CellPosition{Row: min(r.Start.Row, r.End.Row), Col: min(r.Start.Col, r.End.Col)},
		End:   CellPosition{Row: max(r.Start.Row, r.End.Row), Col: max(r.Start.Col, r.End.Col)},
	}
}

// Contains reports whether p lies inside the normalized rectangle.
func (r CellRange) Contains(p CellPosition) bool {
	n := r.Normalize()
	return p.Row >= n.Start.Row && p.Row <= n.End.Row && p.Col >= n.Start.Col && p.Col <= n.End.Col
}

// Shift returns r with both corners moved by (dRow, dCol).
func (r CellRange) Shift(dRow, dCol int) CellRange {
	return CellRange{Start: r.Start.Add(dRow, dCol), End: r.End.Add(dRow, dCol)}
}
