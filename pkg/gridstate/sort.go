package gridstate

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
)

var numericCleaner = strings.NewReplacer(",", "", "$", "", "%", "", " ", "")

// sortNumber parses a display value as a number, ignoring grouping, currency and percent marks.
func sortNumber(v string) (float64, bool) {
	n, err := strconv.ParseFloat(numericCleaner.Replace(v), 64)
	return n, err == nil
}

// lessValue orders two non-empty display values ascending.
func lessValue(a, b string) bool {
	na, okA := sortNumber(a)
	nb, okB := sortNumber(b)
	if okA && okB {
		return na < nb
	}
	return strings.ToLower(a) < strings.ToLower(b)
}

// sortColumn stably reorders rows by the display values of column index.
// Empty values sort last in either direction. Overrides follow their rows.
func (s *Store) sortColumn(index int, dir SortDirection) bool {
	if index < 0 || index >= len(s.dataset.Columns) {
		return false
	}
	if dir != Ascending && dir != Descending {
		return false
	}

	n := len(s.dataset.Items)
	values := make([]string, n)
	order := make([]int, n)
	for row := 0; row < n; row++ {
		values[row] = s.displayValue(row, index)
		order[row] = row
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := values[order[i]], values[order[j]]
		switch {
		case a == "" || b == "":
			return a != "" && b == ""
		case dir == Descending:
			return lessValue(b, a)
		}
		return lessValue(a, b)
	})

	newRow := make([]int, n)
	items := make([]models.Item, n)
	for to, from := range order {
		items[to] = s.dataset.Items[from]
		newRow[from] = to
	}
	s.dataset.Items = items

	s.shiftIndices(&models.IndexShift{Axis: models.AxisRow, Order: newRow})
	return true
}
