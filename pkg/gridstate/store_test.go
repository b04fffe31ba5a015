package gridstate

import (
	"fmt"
	"testing"

	"github.com/ukaji3/gridstate-go/pkg/gridstate/address"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func pos(row, col int) models.CellPosition {
	return models.CellPosition{Row: row, Col: col}
}

func rng(r1, c1, r2, c2 int) models.CellRange {
	return models.CellRange{Start: pos(r1, c1), End: pos(r2, c2)}
}

func testDataset() models.Dataset {
	return models.Dataset{
		Columns: []models.Column{
			{Key: "name", DisplayName: "Name", Type: models.TypeText},
			{Key: "amount", DisplayName: "Amount", Type: models.TypeNumber},
			{Key: "email", DisplayName: "Email", Type: models.TypeEmail},
		},
		Items: []models.Item{
			{"name": "Ada", "amount": float64(10), "email": "ada@example.com"},
			{"name": "Linus", "amount": float64(20), "email": "linus@example.com"},
			{"name": "Grace", "amount": float64(30), "email": "grace@example.com"},
		},
	}
}

func sequentialKeys() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("new_%d", n)
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(testDataset(), Options{NewColumnKey: sequentialKeys()})
}

func expectDisplay(t *testing.T, s *Store, row, col int, expected string) {
	t.Helper()
	if got := s.DisplayValue(row, col); got != expected {
		t.Errorf("DisplayValue(%d, %d) = %q, expected %q", row, col, got, expected)
	}
}

func TestBaseValuesShowThrough(t *testing.T) {
	s := newTestStore(t)
	expectDisplay(t, s, 0, 0, "Ada")
	expectDisplay(t, s, 1, 1, "20")
	if got := s.RawValue(1, 1); got != float64(20) {
		t.Errorf("RawValue(1, 1) = %v (%T)", got, got)
	}
	expectDisplay(t, s, 9, 9, "")
	expectDisplay(t, s, -1, 0, "")
	if got := s.RawValue(5, 0); got != "" {
		t.Errorf("RawValue out of range = %v", got)
	}
}

func TestNewStoreCopiesDataset(t *testing.T) {
	ds := testDataset()
	s := NewStore(ds, Options{})
	ds.Items[0]["name"] = "changed"
	expectDisplay(t, s, 0, 0, "Ada")
}

func TestSetValueFormatsAndCommits(t *testing.T) {
	s := newTestStore(t)
	s.Dispatch(SetValue{Pos: pos(0, 1), Value: "1234.5"})
	expectDisplay(t, s, 0, 1, "1,234.50")
	if s.HistoryLen() != 2 || s.HistoryIndex() != 1 {
		t.Errorf("history len %d index %d", s.HistoryLen(), s.HistoryIndex())
	}

	s.Dispatch(SetValue{Pos: pos(1, 2), Value: "BOB@Example.com"})
	expectDisplay(t, s, 1, 2, "bob@example.com")

	s.Dispatch(SetValue{Pos: pos(2, 1), Value: float64(7)})
	expectDisplay(t, s, 2, 1, "7.00")
}

func TestSetValueInvalidStillWrites(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	var warnings []Warning
	s := NewStore(testDataset(), Options{
		Logger:    zap.New(core),
		OnWarning: func(w Warning) { warnings = append(warnings, w) },
	})

	s.Dispatch(SetValue{Pos: pos(0, 1), Value: "not a number"})
	expectDisplay(t, s, 0, 1, "not a number")

	if len(warnings) != 1 {
		t.Fatalf("warnings = %v", warnings)
	}
	w := warnings[0]
	if w.Row != 0 || w.Col != 1 || w.Column != "amount" || w.Type != models.TypeNumber || w.Error != "Must be a valid number" {
		t.Errorf("warning = %+v", w)
	}
	if logs.FilterMessage("validation failed, committing raw value").Len() != 1 {
		t.Errorf("expected one warn log, got %v", logs.All())
	}
}

func TestSetValueEmptyBypassesValidation(t *testing.T) {
	var warnings []Warning
	s := NewStore(testDataset(), Options{OnWarning: func(w Warning) { warnings = append(warnings, w) }})
	s.Dispatch(SetValue{Pos: pos(0, 1), Value: ""})
	expectDisplay(t, s, 0, 1, "")
	ov, ok := s.Override(0, 1)
	if !ok || ov.Value != "" {
		t.Errorf("Override = %+v, %v", ov, ok)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings %v", warnings)
	}
}

func TestOutOfRangeOperationsAreNoOps(t *testing.T) {
	s := newTestStore(t)
	before := s.Dataset()

	s.DispatchAll(
		SetValue{Pos: pos(3, 0), Value: "x"},
		SetValue{Pos: pos(0, -1), Value: "x"},
		SetStyle{Pos: pos(10, 10), Style: models.CellStyle{Bold: models.Bool(true)}},
		SetFormula{Pos: pos(-1, 0), Formula: "=A1"},
		AddColumn{Index: At(9)},
		AddRow{Index: At(-2)},
		DeleteColumn{Index: 3},
		DeleteRow{Index: -1},
		UpdateColumnName{Index: 5, Name: "x"},
		UpdateColumnType{Index: 0, Type: "nonsense"},
		SortColumn{Index: 7, Direction: Ascending},
		SortColumn{Index: 0, Direction: "sideways"},
		SelectCell{Pos: pos(4, 0)},
		SelectRange{Range: rng(0, 0, 5, 5)},
		StartEditing{Pos: pos(0, 3)},
		Undo{},
		Redo{},
	)

	if s.HistoryLen() != 1 {
		t.Errorf("no-ops committed: history len %d", s.HistoryLen())
	}
	if len(s.Overrides()) != 0 {
		t.Errorf("no-ops wrote overrides: %v", s.Overrides())
	}
	after := s.Dataset()
	if len(after.Columns) != len(before.Columns) || len(after.Items) != len(before.Items) {
		t.Error("no-ops changed dataset shape")
	}
	if cell, r := s.Selection(); cell != nil || r != nil {
		t.Errorf("selection changed: %v %v", cell, r)
	}
	if s.EditingCell() != nil {
		t.Error("editing changed")
	}
}

func TestStyleMergesWithoutCommit(t *testing.T) {
	s := newTestStore(t)
	s.Dispatch(SetStyle{Pos: pos(0, 0), Style: models.CellStyle{Bold: models.Bool(true)}})
	s.Dispatch(SetStyle{Pos: pos(0, 0), Style: models.CellStyle{TextAlign: models.Align(models.AlignRight)}})

	st := s.Style(0, 0)
	if st.Bold == nil || !*st.Bold || st.TextAlign == nil || *st.TextAlign != models.AlignRight {
		t.Errorf("Style = %+v", st)
	}
	if s.HistoryLen() != 1 {
		t.Errorf("style committed: history len %d", s.HistoryLen())
	}
	expectDisplay(t, s, 0, 0, "Ada")
}

func TestSetFormulaStoresRawText(t *testing.T) {
	s := newTestStore(t)
	s.Dispatch(SetFormula{Pos: pos(1, 1), Formula: "=SUM(B1:B3)"})
	if got := s.Formula(1, 1); got != "=SUM(B1:B3)" {
		t.Errorf("Formula = %q", got)
	}
	expectDisplay(t, s, 1, 1, "20")
	if s.HistoryLen() != 2 {
		t.Errorf("formula not committed")
	}
}

func TestSelectionIsExclusive(t *testing.T) {
	s := newTestStore(t)
	s.Dispatch(SelectCell{Pos: pos(1, 1)})
	cell, r := s.Selection()
	if cell == nil || *cell != pos(1, 1) || r != nil {
		t.Fatalf("Selection = %v, %v", cell, r)
	}

	s.Dispatch(SelectRange{Range: rng(2, 2, 0, 0)})
	cell, r = s.Selection()
	if cell != nil || r == nil || *r != rng(2, 2, 0, 0) {
		t.Fatalf("Selection = %v, %v", cell, r)
	}

	s.Dispatch(SelectCell{Pos: pos(0, 0)})
	if _, r = s.Selection(); r != nil {
		t.Error("SelectCell should clear the range")
	}
	if s.HistoryLen() != 1 {
		t.Error("selection committed")
	}
}

func TestEditingIsIndependentOfSelection(t *testing.T) {
	s := newTestStore(t)
	s.Dispatch(SelectRange{Range: rng(0, 0, 1, 1)})
	s.Dispatch(StartEditing{Pos: pos(2, 2)})

	if e := s.EditingCell(); e == nil || *e != pos(2, 2) {
		t.Fatalf("EditingCell = %v", e)
	}
	if !s.IsEditing() {
		t.Error("IsEditing false")
	}
	if _, r := s.Selection(); r == nil {
		t.Error("StartEditing cleared selection")
	}
	s.Dispatch(StopEditing{})
	if s.IsEditing() {
		t.Error("StopEditing did not clear")
	}
	if s.HistoryLen() != 1 {
		t.Error("editing committed")
	}
}

func TestUpdateColumn(t *testing.T) {
	s := newTestStore(t)
	decimals := 0
	s.Dispatch(UpdateColumnName{Index: 1, Name: "Total"})
	s.Dispatch(UpdateColumnType{Index: 1, Type: models.TypeCurrency, Format: &models.ColumnFormat{Decimals: &decimals, CurrencyCode: "EUR"}})

	cols := s.Columns()
	if cols[1].DisplayName != "Total" || cols[1].Type != models.TypeCurrency || cols[1].Format.CurrencyCode != "EUR" {
		t.Fatalf("column = %+v", cols[1])
	}

	s.Dispatch(UpdateColumnType{Index: 1, Type: models.TypeNumber})
	cols = s.Columns()
	if cols[1].Format.CurrencyCode != "" || cols[1].Format.Decimals != nil {
		t.Errorf("format should be replaced, got %+v", cols[1].Format)
	}
	if s.HistoryLen() != 4 {
		t.Errorf("history len %d", s.HistoryLen())
	}
}

func TestReset(t *testing.T) {
	s := newTestStore(t)
	s.DispatchAll(
		SetValue{Pos: pos(0, 0), Value: "Zed"},
		DeleteRow{Index: 2},
		SelectCell{Pos: pos(0, 0)},
		StartEditing{Pos: pos(0, 0)},
		Reset{},
	)
	expectDisplay(t, s, 0, 0, "Ada")
	if s.RowCount() != 3 || len(s.Overrides()) != 0 {
		t.Errorf("rows %d overrides %v", s.RowCount(), s.Overrides())
	}
	if cell, _ := s.Selection(); cell != nil || s.EditingCell() != nil {
		t.Error("transient state survived reset")
	}
	if s.HistoryLen() != 1 || s.CanUndo() {
		t.Errorf("history len %d", s.HistoryLen())
	}
}

func TestOverrideKeysUseAddress(t *testing.T) {
	s := newTestStore(t)
	s.Dispatch(SetValue{Pos: pos(2, 1), Value: "5"})
	if _, ok := s.Overrides()[address.Encode(2, 1)]; !ok {
		t.Errorf("override not stored under Encode(2, 1): %v", s.Overrides())
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s := newTestStore(t)
	s.Dispatch(SetValue{Pos: pos(0, 0), Value: "x"})
	s.Dispatch(SelectCell{Pos: pos(1, 1)})

	snap := s.Snapshot()
	if snap.SelectedCell == nil || *snap.SelectedCell != pos(1, 1) {
		t.Fatalf("SelectedCell = %v", snap.SelectedCell)
	}
	snap.SelectedCell.Row = 9
	delete(snap.Overrides, address.Encode(0, 0))
	snap.Dataset.Items[0]["name"] = "mutated"

	if got := s.DisplayValue(0, 0); got != "x" {
		t.Errorf("DisplayValue after mutating snapshot = %q", got)
	}
	if cell, _ := s.Selection(); cell == nil || cell.Row != 1 {
		t.Errorf("Selection after mutating snapshot = %v", cell)
	}
}
