package gridstate

import (
	"sync"

	"github.com/ukaji3/gridstate-go/pkg/gridstate/address"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/history"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/validate"
	"go.uber.org/zap"
)

// stylePatch is a style change made since the last commit.
type stylePatch struct {
	key   address.Key
	style models.CellStyle
}

// Store owns the state of one grid session. All mutation goes through Dispatch.
type Store struct {
	mu sync.Mutex

	opts      Options
	log       *zap.Logger
	validator *validate.Service
	history   *history.Manager

	initial   models.Dataset
	dataset   models.Dataset
	overrides models.Overrides

	selectedCell  *models.CellPosition
	selectedRange *models.CellRange
	editingCell   *models.CellPosition

	// pendingStyles are re-applied over states restored by Undo and Redo
	// until the next commit absorbs them.
	pendingStyles []stylePatch
	// lastShift is the index shift of the change about to be committed.
	lastShift *models.IndexShift

	warnings []Warning
}

// NewStore starts a session over a copy of ds.
// The loaded state is the first history entry.
func NewStore(ds models.Dataset, opts Options) *Store {
	s := &Store{
		opts:      opts,
		log:       opts.logger(),
		validator: opts.validator(),
		history:   history.New(opts.MaxHistory),
		initial:   ds.Clone(),
	}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.dataset = s.initial.Clone()
	s.overrides = make(models.Overrides)
	s.selectedCell = nil
	s.selectedRange = nil
	s.editingCell = nil
	s.pendingStyles = nil
	s.lastShift = nil
	s.history.Reset(s.snapshot())
}

// snapshot returns the live state. The history manager copies it.
func (s *Store) snapshot() models.Snapshot {
	return models.Snapshot{
		Dataset:       s.dataset,
		Overrides:     s.overrides,
		SelectedCell:  s.selectedCell,
		SelectedRange: s.selectedRange,
		EditingCell:   s.editingCell,
	}
}

func (s *Store) restore(snap models.Snapshot) {
	s.dataset = snap.Dataset
	s.overrides = snap.Overrides
	if s.overrides == nil {
		s.overrides = make(models.Overrides)
	}
	s.selectedCell = snap.SelectedCell
	s.selectedRange = snap.SelectedRange
	s.editingCell = snap.EditingCell

	for _, p := range s.pendingStyles {
		if s.dataset.InBounds(p.key.Row, p.key.Col) {
			applyStyle(s.overrides, p.key, p.style)
		}
	}
}

func (s *Store) commit() {
	s.pendingStyles = nil
	s.history.CommitShift(s.snapshot(), s.lastShift)
	s.lastShift = nil
}

// carryPending moves pending style patches into the index frame of a restored
// entry. Patches whose cell does not exist there are dropped.
func (s *Store) carryPending(fn func(address.Key) (address.Key, bool)) {
	kept := s.pendingStyles[:0]
	for _, p := range s.pendingStyles {
		if k, ok := fn(p.key); ok {
			p.key = k
			kept = append(kept, p)
		}
	}
	s.pendingStyles = kept
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Snapshot{
		Dataset:       s.dataset.Clone(),
		Overrides:     s.cloneOverrides(),
		SelectedCell:  clonePos(s.selectedCell),
		SelectedRange: cloneRange(s.selectedRange),
		EditingCell:   clonePos(s.editingCell),
	}
}

func (s *Store) cloneOverrides() models.Overrides {
	out := make(models.Overrides, len(s.overrides))
	for k, ov := range s.overrides {
		out[k] = ov.Clone()
	}
	return out
}

func clonePos(p *models.CellPosition) *models.CellPosition {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func cloneRange(r *models.CellRange) *models.CellRange {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

// DisplayValue returns the text shown for a cell: the override value when
// present, the base value otherwise. Out-of-range cells are empty.
func (s *Store) DisplayValue(row, col int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayValue(row, col)
}

// RawValue returns the stored scalar for a cell (string or float64).
// Out-of-range cells return the empty string.
func (s *Store) RawValue(row, col int) interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rawValue(row, col)
}

// Style returns the style of a cell. Untouched and out-of-range cells have the zero style.
func (s *Store) Style(row, col int) models.CellStyle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dataset.InBounds(row, col) {
		return models.CellStyle{}
	}
	return s.overrides[address.Encode(row, col)].Style.Clone()
}

// Formula returns the stored formula text of a cell.
func (s *Store) Formula(row, col int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dataset.InBounds(row, col) {
		return ""
	}
	return s.overrides[address.Encode(row, col)].Formula
}

// Override returns the override of a cell, if one exists.
func (s *Store) Override(row, col int) (models.CellOverride, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ov, ok := s.overrides[address.Encode(row, col)]
	return ov.Clone(), ok
}

// Overrides returns a copy of the override map.
func (s *Store) Overrides() models.Overrides {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloneOverrides()
}

// Dataset returns a copy of the current base dataset.
func (s *Store) Dataset() models.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataset.Clone()
}

// Columns returns a copy of the current columns.
func (s *Store) Columns() []models.Column {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataset.Clone().Columns
}

// RowCount returns the number of rows.
func (s *Store) RowCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataset.RowCount()
}

// ColumnCount returns the number of columns.
func (s *Store) ColumnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataset.ColumnCount()
}

// Selection returns the selected cell or range. At most one is non-nil.
func (s *Store) Selection() (*models.CellPosition, *models.CellRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cell *models.CellPosition
	var rng *models.CellRange
	if s.selectedCell != nil {
		c := *s.selectedCell
		cell = &c
	}
	if s.selectedRange != nil {
		r := *s.selectedRange
		rng = &r
	}
	return cell, rng
}

// EditingCell returns the cell in text-edit mode, or nil.
func (s *Store) EditingCell() *models.CellPosition {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editingCell == nil {
		return nil
	}
	c := *s.editingCell
	return &c
}

// IsEditing reports whether any cell is in text-edit mode.
// Range-drag gestures should not start while it is true.
func (s *Store) IsEditing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingCell != nil
}

// CanUndo reports whether Undo would change state.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would change state.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// HistoryLen returns the number of retained history entries.
func (s *Store) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Len()
}

// HistoryIndex returns the index of the current history entry.
func (s *Store) HistoryIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Index()
}

func (s *Store) rawValue(row, col int) interface{} {
	if !s.dataset.InBounds(row, col) {
		return ""
	}
	if ov, ok := s.overrides[address.Encode(row, col)]; ok && ov.HasValue() {
		return ov.Value
	}
	v, ok := s.dataset.Items[row][s.dataset.Columns[col].Key]
	if !ok || v == nil {
		return ""
	}
	return v
}

func (s *Store) displayValue(row, col int) string {
	return models.FormatValue(s.rawValue(row, col))
}
