package models

// Item is one row of the dataset, mapping column key to a scalar (string or float64).
type Item map[string]interface{}

// Clone returns a shallow copy of the item. Values are immutable scalars.
func (it Item) Clone() Item {
	out := make(Item, len(it))
	for k, v := range it {
		out[k] = v
	}
	return out
}

// Dataset is the base column/item data of a grid.
type Dataset struct {
	// Columns is the ordered column list; order is display order.
	Columns []Column `json:"columns"`
	// Items is the ordered row list.
	Items []Item `json:"items"`
}

// RowCount returns the number of items.
func (d Dataset) RowCount() int { return len(d.Items) }

// ColumnCount returns the number of columns.
func (d Dataset) ColumnCount() int { return len(d.Columns) }

// InBounds reports whether (row, col) addresses a cell of the dataset.
func (d Dataset) InBounds(row, col int) bool {
	return row >= 0 && row < len(d.Items) && col >= 0 && col < len(d.Columns)
}

// ColumnIndex returns the index of the column with the given key, or -1.
func (d Dataset) ColumnIndex(key string) int {
	for i, c := range d.Columns {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the dataset.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Columns: make([]Column, len(d.Columns)),
		Items:   make([]Item, len(d.Items)),
	}
	for i, c := range d.Columns {
		if c.Format.Decimals != nil {
			n := *c.Format.Decimals
			c.Format.Decimals = &n
		}
		out.Columns[i] = c
	}
	for i, it := range d.Items {
		out.Items[i] = it.Clone()
	}
	return out
}
