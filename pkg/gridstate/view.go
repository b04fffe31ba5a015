package gridstate

import "github.com/ukaji3/gridstate-go/pkg/gridstate/models"

// View renders the live grid: display values for every cell plus the overrides.
func (s *Store) View() models.GridView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := models.GridView{
		Columns:   s.dataset.Clone().Columns,
		Rows:      make([][]string, s.dataset.RowCount()),
		Overrides: make(models.Overrides, len(s.overrides)),
	}
	for r := range v.Rows {
		row := make([]string, s.dataset.ColumnCount())
		for c := range row {
			row[c] = s.displayValue(r, c)
		}
		v.Rows[r] = row
	}
	for k, ov := range s.overrides {
		v.Overrides[k] = ov.Clone()
	}
	if s.selectedCell != nil {
		c := *s.selectedCell
		v.SelectedCell = &c
	}
	if s.selectedRange != nil {
		r := *s.selectedRange
		v.SelectedRange = &r
	}
	return v
}
