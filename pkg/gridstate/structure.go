package gridstate

import (
	"fmt"
	"slices"

	"github.com/ukaji3/gridstate-go/pkg/gridstate/address"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
)

// rekey is a single remap decision for an override key.
type rekey struct {
	from address.Key
	to   address.Key
	drop bool
}

// remapOverrides passes every key through fn, which returns the new key, or
// false to drop the override. All decisions are collected before anything is
// written, so a shifted entry never overwrites one that has not moved yet.
func remapOverrides(overrides models.Overrides, fn func(address.Key) (address.Key, bool)) {
	var plan []rekey
	for k := range overrides {
		to, keep := fn(k)
		if !keep {
			plan = append(plan, rekey{from: k, drop: true})
		} else if to != k {
			plan = append(plan, rekey{from: k, to: to})
		}
	}

	moved := make(map[address.Key]models.CellOverride, len(plan))
	for _, p := range plan {
		if !p.drop {
			moved[p.to] = overrides[p.from]
		}
		delete(overrides, p.from)
	}
	for k, v := range moved {
		overrides[k] = v
	}
}

// shiftIndices remaps overrides through shift and records it for the next commit.
func (s *Store) shiftIndices(shift *models.IndexShift) {
	remapOverrides(s.overrides, shift.Forward)
	s.lastShift = shift
}

// insertIndex resolves an optional insert position against n existing entries.
func insertIndex(index *int, n int) (int, bool) {
	if index == nil {
		return n, true
	}
	if *index < 0 || *index > n {
		return 0, false
	}
	return *index, true
}

// maxKeyAttempts bounds calls to a custom key generator before falling back to random keys.
const maxKeyAttempts = 8

func (s *Store) uniqueColumnKey() string {
	for i := 0; i < maxKeyAttempts; i++ {
		if key := s.opts.columnKey(); s.freeColumnKey(key) {
			return key
		}
	}
	s.log.Debug("column key generator exhausted, using a random key")
	for {
		if key := randomColumnKey(); s.freeColumnKey(key) {
			return key
		}
	}
}

func (s *Store) freeColumnKey(key string) bool {
	return key != "" && s.dataset.ColumnIndex(key) < 0
}

func (s *Store) addColumn(index *int, name string) bool {
	at, ok := insertIndex(index, len(s.dataset.Columns))
	if !ok {
		return false
	}
	if name == "" {
		name = fmt.Sprintf("Column %d", len(s.dataset.Columns)+1)
	}
	col := models.Column{
		Key:         s.uniqueColumnKey(),
		DisplayName: name,
		Type:        models.TypeText,
	}
	s.dataset.Columns = slices.Insert(s.dataset.Columns, at, col)
	for _, it := range s.dataset.Items {
		it[col.Key] = ""
	}
	s.shiftIndices(&models.IndexShift{Axis: models.AxisCol, At: at, Delta: 1})
	return true
}

func (s *Store) addRow(index *int) bool {
	at, ok := insertIndex(index, len(s.dataset.Items))
	if !ok {
		return false
	}
	item := make(models.Item, len(s.dataset.Columns))
	for _, c := range s.dataset.Columns {
		item[c.Key] = ""
	}
	s.dataset.Items = slices.Insert(s.dataset.Items, at, item)
	s.shiftIndices(&models.IndexShift{Axis: models.AxisRow, At: at, Delta: 1})
	return true
}

func (s *Store) deleteColumn(index int) bool {
	if index < 0 || index >= len(s.dataset.Columns) {
		return false
	}
	key := s.dataset.Columns[index].Key
	s.dataset.Columns = slices.Delete(s.dataset.Columns, index, index+1)
	for _, it := range s.dataset.Items {
		delete(it, key)
	}
	s.shiftIndices(&models.IndexShift{Axis: models.AxisCol, At: index, Delta: -1})
	return true
}

func (s *Store) deleteRow(index int) bool {
	if index < 0 || index >= len(s.dataset.Items) {
		return false
	}
	s.dataset.Items = slices.Delete(s.dataset.Items, index, index+1)
	s.shiftIndices(&models.IndexShift{Axis: models.AxisRow, At: index, Delta: -1})
	return true
}
