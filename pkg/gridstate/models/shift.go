package models

import "github.com/ukaji3/gridstate-go/pkg/gridstate/address"

// Axis names the dimension an IndexShift moves.
type Axis string

const (
	AxisRow Axis = "row"
	AxisCol Axis = "col"
)

// IndexShift describes how a committed change moved row or column indices:
// an insert (Delta +1) or delete (Delta -1) at At, or a row permutation where
// Order[old] is the new row.
type IndexShift struct {
	Axis  Axis
	At    int
	Delta int
	Order []int
}

func (s *IndexShift) split(k address.Key) (int, func(int) address.Key) {
	if s.Axis == AxisCol {
		return k.Col, func(c int) address.Key { return address.Encode(k.Row, c) }
	}
	return k.Row, func(r int) address.Key { return address.Encode(r, k.Col) }
}

// Forward maps a key from before the change to after it.
// It reports false when the cell was removed. A nil shift is the identity.
func (s *IndexShift) Forward(k address.Key) (address.Key, bool) {
	if s == nil {
		return k, true
	}
	i, with := s.split(k)
	switch {
	case s.Order != nil:
		if i < 0 || i >= len(s.Order) {
			return k, false
		}
		return with(s.Order[i]), true
	case s.Delta < 0 && i == s.At:
		return k, false
	case s.Delta < 0 && i > s.At, s.Delta > 0 && i >= s.At:
		return with(i + s.Delta), true
	}
	return k, true
}

// Inverse maps a key from after the change back to before it.
// It reports false when the cell did not exist before the change.
func (s *IndexShift) Inverse(k address.Key) (address.Key, bool) {
	if s == nil {
		return k, true
	}
	i, with := s.split(k)
	switch {
	case s.Order != nil:
		for old, to := range s.Order {
			if to == i {
				return with(old), true
			}
		}
		return k, false
	case s.Delta > 0 && i == s.At:
		return k, false
	case s.Delta > 0 && i > s.At, s.Delta < 0 && i >= s.At:
		return with(i - s.Delta), true
	}
	return k, true
}
