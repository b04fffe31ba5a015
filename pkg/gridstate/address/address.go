// Package address maps cell coordinates to the canonical key the override map is indexed by.
//
// Bounds are not checked here; callers own them.
package address

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Key is the canonical override-map key of a cell.
type Key struct {
	Row int
	Col int
}

// Encode returns the key of (row, col).
func Encode(row, col int) Key {
	return Key{Row: row, Col: col}
}

// Decode returns the (row, col) pair k was built from.
func Decode(k Key) (row, col int) {
	return k.Row, k.Col
}

// String returns the textual form "row:col".
func (k Key) String() string {
	return strconv.Itoa(k.Row) + ":" + strconv.Itoa(k.Col)
}

// MarshalText implements encoding.TextMarshaler so keys can index JSON and YAML maps.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Parse parses the "row:col" form produced by Key.String.
func Parse(s string) (Key, error) {
	rowStr, colStr, ok := strings.Cut(s, ":")
	if !ok {
		return Key{}, fmt.Errorf("invalid cell key %q: missing separator", s)
	}
	row, err := strconv.Atoi(rowStr)
	if err != nil {
		return Key{}, fmt.Errorf("invalid cell key %q: %w", s, err)
	}
	col, err := strconv.Atoi(colStr)
	if err != nil {
		return Key{}, fmt.Errorf("invalid cell key %q: %w", s, err)
	}
	return Key{Row: row, Col: col}, nil
}

// CellName returns the A1-style name of a zero-based (row, col), e.g. (0, 0) -> "A1".
func CellName(row, col int) (string, error) {
	return excelize.CoordinatesToCellName(col+1, row+1)
}

// FromCellName parses an A1-style name (with or without "$" anchors) into a zero-based key.
func FromCellName(name string) (Key, error) {
	col, row, err := excelize.CellNameToCoordinates(strings.ReplaceAll(name, "$", ""))
	if err != nil {
		return Key{}, err
	}
	return Key{Row: row - 1, Col: col - 1}, nil
}
