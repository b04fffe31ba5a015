// Package history keeps a bounded, linear undo/redo sequence of grid snapshots.
//
// Entries are deep copies, so later mutation of live state cannot reach them:
//
//	h := history.New(50)
//	h.Reset(initial)       // baseline entry at index 0
//	h.Commit(afterEdit)    // drops any redo tail, appends, trims to 50
//	prev, ok := h.Undo()   // copy of the previous entry
package history

import (
	"github.com/tiendc/go-deepcopy"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
)

// DefaultMaxEntries is the retention cap used when none is given.
const DefaultMaxEntries = 50

// entry is a snapshot plus the index shift of the commit that produced it.
type entry struct {
	snap  models.Snapshot
	shift *models.IndexShift
}

// Manager holds the snapshot sequence and the current index.
// It is not safe for concurrent use; the owning store serializes access.
type Manager struct {
	entries    []entry
	index      int
	maxEntries int
}

// New creates an empty history retaining at most maxEntries snapshots.
func New(maxEntries int) *Manager {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Manager{index: -1, maxEntries: maxEntries}
}

// Reset discards every entry and records s as the only one.
func (m *Manager) Reset(s models.Snapshot) {
	m.entries = []entry{{snap: clone(s)}}
	m.index = 0
}

// Commit records s as the newest entry.
// Entries past the current index are discarded first; the oldest entries are
// dropped once the cap is exceeded.
func (m *Manager) Commit(s models.Snapshot) {
	m.CommitShift(s, nil)
}

// CommitShift is Commit for a change that moved row or column indices.
func (m *Manager) CommitShift(s models.Snapshot, shift *models.IndexShift) {
	m.entries = append(m.entries[:m.index+1], entry{snap: clone(s), shift: shift})
	if excess := len(m.entries) - m.maxEntries; excess > 0 {
		m.entries = m.entries[excess:]
	}
	m.index = len(m.entries) - 1
}

// Amend applies fn to the current entry in place.
func (m *Manager) Amend(fn func(*models.Snapshot)) {
	if m.index < 0 || m.index >= len(m.entries) {
		return
	}
	fn(&m.entries[m.index].snap)
}

// Undo steps back one entry and returns a copy of it.
func (m *Manager) Undo() (models.Snapshot, bool) {
	if !m.CanUndo() {
		return models.Snapshot{}, false
	}
	m.index--
	return clone(m.entries[m.index].snap), true
}

// Redo steps forward one entry and returns a copy of it.
func (m *Manager) Redo() (models.Snapshot, bool) {
	if !m.CanRedo() {
		return models.Snapshot{}, false
	}
	m.index++
	return clone(m.entries[m.index].snap), true
}

// CurrentShift returns the index shift recorded with the current entry,
// nil for the baseline and for commits that moved nothing.
func (m *Manager) CurrentShift() *models.IndexShift {
	if m.index < 0 || m.index >= len(m.entries) {
		return nil
	}
	return m.entries[m.index].shift
}

// CanUndo reports whether an earlier entry exists.
func (m *Manager) CanUndo() bool { return m.index > 0 }

// CanRedo reports whether a later entry exists.
func (m *Manager) CanRedo() bool { return m.index < len(m.entries)-1 }

// Len returns the number of retained entries.
func (m *Manager) Len() int { return len(m.entries) }

// Index returns the current index, -1 when empty.
func (m *Manager) Index() int { return m.index }

// MaxEntries returns the retention cap.
func (m *Manager) MaxEntries() int { return m.maxEntries }

// clone deep-copies a snapshot. Snapshots hold only maps, slices, pointers
// and scalars, so a copy failure means a programming error upstream.
func clone(s models.Snapshot) models.Snapshot {
	var out models.Snapshot
	if err := deepcopy.Copy(&out, &s); err != nil {
		panic("history: snapshot copy failed: " + err.Error())
	}
	return out
}
