package gridstate

import (
	"github.com/ukaji3/gridstate-go/pkg/gridstate/address"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
	"go.uber.org/zap"
)

// relocation is one non-empty source cell of a range move and where it lands.
type relocation struct {
	source   address.Key
	target   address.Key
	inBounds bool
	value    interface{}
	style    models.CellStyle
	formula  string
}

// planRelocation collects every non-empty cell of src with its target under
// the offset destination - anchor. Targets outside the dataset are kept with
// inBounds false: their sources are still cleared on a move.
func (s *Store) planRelocation(anchor models.CellPosition, src models.CellRange, dest models.CellPosition) ([]relocation, int, int) {
	dRow, dCol := dest.Row-anchor.Row, dest.Col-anchor.Col
	n := src.Normalize()

	startRow, endRow := max(n.Start.Row, 0), min(n.End.Row, s.dataset.RowCount()-1)
	startCol, endCol := max(n.Start.Col, 0), min(n.End.Col, s.dataset.ColumnCount()-1)

	var plan []relocation
	for row := startRow; row <= endRow; row++ {
		for col := startCol; col <= endCol; col++ {
			if s.displayValue(row, col) == "" {
				continue
			}
			ov := s.overrides[address.Encode(row, col)]
			plan = append(plan, relocation{
				source:   address.Encode(row, col),
				target:   address.Encode(row+dRow, col+dCol),
				inBounds: s.dataset.InBounds(row+dRow, col+dCol),
				value:    s.rawValue(row, col),
				style:    ov.Style.Clone(),
				formula:  ov.Formula,
			})
		}
	}
	return plan, dRow, dCol
}

// relocate moves (or copies) a range in two phases: every source is cleared
// before any target is written, so overlapping ranges read original values.
// The selection becomes the relocated range. A range with no content is a no-op.
func (s *Store) relocate(anchor models.CellPosition, src models.CellRange, dest models.CellPosition, move bool) bool {
	plan, dRow, dCol := s.planRelocation(anchor, src, dest)
	if len(plan) == 0 {
		return false
	}

	if move {
		for _, r := range plan {
			s.overrides[r.source] = models.CellOverride{Value: ""}
		}
	}

	for _, r := range plan {
		if !r.inBounds {
			s.log.Debug("relocated cell dropped outside grid",
				zap.Stringer("source", r.source),
				zap.Stringer("target", r.target),
				zap.Bool("move", move))
			continue
		}
		ov := s.overrides[r.target]
		ov.Value = r.value
		ov.Style = r.style.Clone()
		ov.Formula = r.formula
		s.overrides[r.target] = ov
	}

	moved := src.Normalize().Shift(dRow, dCol)
	s.selectedRange = &moved
	s.selectedCell = nil
	return true
}
