package gridstate

import (
	"fmt"

	"github.com/ukaji3/gridstate-go/pkg/gridstate/address"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
	"go.uber.org/zap"
)

// Dispatch applies op to the store. It is synchronous and total: operations
// with out-of-range indices or invalid arguments leave the state unchanged.
// Value, formula, structural and range operations are recorded in history;
// style, selection and editing changes are not.
func (s *Store) Dispatch(op Operation) {
	s.mu.Lock()
	changed, commits := s.apply(op)
	if changed && commits {
		s.commit()
	}
	if !changed {
		s.log.Debug("operation ignored", zap.String("op", fmt.Sprintf("%T", op)))
	}
	warnings := s.warnings
	s.warnings = nil
	s.mu.Unlock()

	if s.opts.OnWarning != nil {
		for _, w := range warnings {
			s.opts.OnWarning(w)
		}
	}
}

// DispatchAll applies ops in order.
func (s *Store) DispatchAll(ops ...Operation) {
	for _, op := range ops {
		s.Dispatch(op)
	}
}

// apply reports whether op changed state and whether the change is committed to history.
func (s *Store) apply(op Operation) (changed, commits bool) {
	switch o := op.(type) {
	case SetValue:
		return s.setValue(o.Pos, o.Value), true
	case SetStyle:
		return s.setStyle(o.Pos, o.Style), false
	case SetFormula:
		return s.setFormula(o.Pos, o.Formula), true
	case AddColumn:
		return s.addColumn(o.Index, o.Name), true
	case AddRow:
		return s.addRow(o.Index), true
	case DeleteColumn:
		return s.deleteColumn(o.Index), true
	case DeleteRow:
		return s.deleteRow(o.Index), true
	case SelectCell:
		return s.selectCell(o.Pos), false
	case SelectRange:
		return s.selectRange(o.Range), false
	case StartEditing:
		if !s.inBounds(o.Pos) {
			return false, false
		}
		p := o.Pos
		s.editingCell = &p
		return true, false
	case StopEditing:
		s.editingCell = nil
		return true, false
	case UpdateColumnName:
		return s.updateColumnName(o.Index, o.Name), true
	case UpdateColumnType:
		return s.updateColumnType(o.Index, o.Type, o.Format), true
	case SortColumn:
		return s.sortColumn(o.Index, o.Direction), true
	case MoveRange:
		return s.relocate(o.Anchor, o.Source, o.Destination, true), true
	case CopyRange:
		return s.relocate(o.Anchor, o.Source, o.Destination, false), true
	case Undo:
		leaving := s.history.CurrentShift()
		snap, ok := s.history.Undo()
		if ok {
			s.carryPending(leaving.Inverse)
			s.restore(snap)
		}
		return ok, false
	case Redo:
		snap, ok := s.history.Redo()
		if ok {
			s.carryPending(s.history.CurrentShift().Forward)
			s.restore(snap)
		}
		return ok, false
	case Reset:
		s.reset()
		return true, false
	}
	return false, false
}

func (s *Store) inBounds(p models.CellPosition) bool {
	return s.dataset.InBounds(p.Row, p.Col)
}

func (s *Store) setValue(pos models.CellPosition, value interface{}) bool {
	if !s.inBounds(pos) {
		return false
	}
	key := address.Encode(pos.Row, pos.Col)
	ov := s.overrides[key]

	input := models.FormatValue(value)
	if input == "" {
		ov.Value = ""
		s.overrides[key] = ov
		return true
	}

	col := s.dataset.Columns[pos.Col]
	res := s.validator.Validate(input, col.Type, col.Format)
	if !res.Valid {
		s.log.Warn("validation failed, committing raw value",
			zap.Int("row", pos.Row),
			zap.Int("col", pos.Col),
			zap.String("column", col.Key),
			zap.String("type", string(col.Type)),
			zap.String("value", input),
			zap.String("error", res.Error))
		s.warnings = append(s.warnings, Warning{
			Row:    pos.Row,
			Col:    pos.Col,
			Column: col.Key,
			Type:   col.Type,
			Value:  input,
			Error:  res.Error,
		})
	}

	if res.FormattedValue != "" {
		ov.Value = res.FormattedValue
	} else {
		ov.Value = input
	}
	s.overrides[key] = ov
	return true
}

func (s *Store) setStyle(pos models.CellPosition, style models.CellStyle) bool {
	if !s.inBounds(pos) {
		return false
	}
	key := address.Encode(pos.Row, pos.Col)
	applyStyle(s.overrides, key, style)
	s.pendingStyles = append(s.pendingStyles, stylePatch{key: key, style: style.Clone()})
	s.history.Amend(func(snap *models.Snapshot) {
		if snap.Overrides == nil {
			snap.Overrides = make(models.Overrides)
		}
		applyStyle(snap.Overrides, key, style)
	})
	return true
}

// applyStyle merges style into the override at key, creating a value-less override if needed.
func applyStyle(overrides models.Overrides, key address.Key, style models.CellStyle) {
	ov := overrides[key]
	ov.Style = ov.Style.Merge(style)
	overrides[key] = ov
}

func (s *Store) setFormula(pos models.CellPosition, formula string) bool {
	if !s.inBounds(pos) {
		return false
	}
	key := address.Encode(pos.Row, pos.Col)
	ov := s.overrides[key]
	ov.Formula = formula
	s.overrides[key] = ov
	return true
}

func (s *Store) selectCell(pos models.CellPosition) bool {
	if !s.inBounds(pos) {
		return false
	}
	s.selectedCell = &pos
	s.selectedRange = nil
	return true
}

func (s *Store) selectRange(r models.CellRange) bool {
	if !s.inBounds(r.Start) || !s.inBounds(r.End) {
		return false
	}
	s.selectedRange = &r
	s.selectedCell = nil
	return true
}

func (s *Store) updateColumnName(index int, name string) bool {
	if index < 0 || index >= len(s.dataset.Columns) {
		return false
	}
	s.dataset.Columns[index].DisplayName = name
	return true
}

func (s *Store) updateColumnType(index int, typ models.ColumnType, format *models.ColumnFormat) bool {
	if index < 0 || index >= len(s.dataset.Columns) || !typ.Valid() {
		return false
	}
	col := &s.dataset.Columns[index]
	col.Type = typ
	col.Format = models.ColumnFormat{}
	if format != nil {
		col.Format = *format
		if format.Decimals != nil {
			n := *format.Decimals
			col.Format.Decimals = &n
		}
	}
	return true
}
