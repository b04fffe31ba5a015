// Package script decodes YAML operation scripts into gridstate operations.
//
// A script is a list of steps:
//
//	- op: set_value
//	  cell: B2
//	  value: "12.5"
//	- op: set_style
//	  row: 0
//	  col: 0
//	  style: {bold: true, text_align: center}
//	- op: move_range
//	  range: A1:B2
//	  anchor: A1
//	  to: C3
//	- op: undo
package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ukaji3/gridstate-go/pkg/gridstate"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/address"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/parser"
	"gopkg.in/yaml.v3"
)

// ErrUnknownOperation indicates a step names an operation outside the vocabulary.
var ErrUnknownOperation = errors.New("unknown operation")

// Step is one entry of a script.
type Step struct {
	Op        string               `yaml:"op"`
	Cell      string               `yaml:"cell,omitempty"`
	Row       int                  `yaml:"row,omitempty"`
	Col       int                  `yaml:"col,omitempty"`
	Value     interface{}          `yaml:"value,omitempty"`
	Formula   string               `yaml:"formula,omitempty"`
	Style     models.CellStyle     `yaml:"style,omitempty"`
	Index     *int                 `yaml:"index,omitempty"`
	Name      string               `yaml:"name,omitempty"`
	Type      models.ColumnType    `yaml:"type,omitempty"`
	Format    *models.ColumnFormat `yaml:"format,omitempty"`
	Direction string               `yaml:"direction,omitempty"`
	Range     string               `yaml:"range,omitempty"`
	Anchor    string               `yaml:"anchor,omitempty"`
	To        string               `yaml:"to,omitempty"`
}

// StepError reports which step of a script failed to decode.
type StepError struct {
	Index int
	Op    string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Decode reads a YAML script and converts every step into an operation.
func Decode(r io.Reader) ([]gridstate.Operation, error) {
	var steps []Step
	if err := yaml.NewDecoder(r).Decode(&steps); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}

	ops := make([]gridstate.Operation, 0, len(steps))
	for i, st := range steps {
		op, err := st.Operation()
		if err != nil {
			return nil, &StepError{Index: i, Op: st.Op, Err: err}
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// DecodeFile reads a script from path.
func DecodeFile(path string) ([]gridstate.Operation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Operation converts the step into an operation.
func (s Step) Operation() (gridstate.Operation, error) {
	switch s.Op {
	case "set_value":
		p, err := s.position()
		return gridstate.SetValue{Pos: p, Value: models.NormalizeValue(s.Value)}, err
	case "set_style":
		p, err := s.position()
		return gridstate.SetStyle{Pos: p, Style: s.Style}, err
	case "set_formula":
		p, err := s.position()
		return gridstate.SetFormula{Pos: p, Formula: s.Formula}, err
	case "add_column":
		return gridstate.AddColumn{Index: s.Index, Name: s.Name}, nil
	case "add_row":
		return gridstate.AddRow{Index: s.Index}, nil
	case "delete_column":
		i, err := s.index()
		return gridstate.DeleteColumn{Index: i}, err
	case "delete_row":
		i, err := s.index()
		return gridstate.DeleteRow{Index: i}, err
	case "select_cell":
		p, err := s.position()
		return gridstate.SelectCell{Pos: p}, err
	case "select_range":
		r, err := s.cellRange()
		return gridstate.SelectRange{Range: r}, err
	case "start_editing":
		p, err := s.position()
		return gridstate.StartEditing{Pos: p}, err
	case "stop_editing":
		return gridstate.StopEditing{}, nil
	case "update_column_name":
		i, err := s.index()
		return gridstate.UpdateColumnName{Index: i, Name: s.Name}, err
	case "update_column_type":
		i, err := s.index()
		return gridstate.UpdateColumnType{Index: i, Type: s.Type, Format: s.Format}, err
	case "sort_column":
		i, err := s.index()
		dir := gridstate.SortDirection(s.Direction)
		if dir == "" {
			dir = gridstate.Ascending
		}
		return gridstate.SortColumn{Index: i, Direction: dir}, err
	case "move_range", "copy_range":
		r, err := s.cellRange()
		if err != nil {
			return nil, err
		}
		anchor := r.Normalize().Start
		if s.Anchor != "" {
			if anchor, err = cellPosition(s.Anchor); err != nil {
				return nil, err
			}
		}
		if s.To == "" {
			return nil, errors.New("missing destination")
		}
		dest, err := cellPosition(s.To)
		if err != nil {
			return nil, err
		}
		if s.Op == "copy_range" {
			return gridstate.CopyRange{Anchor: anchor, Source: r, Destination: dest}, nil
		}
		return gridstate.MoveRange{Anchor: anchor, Source: r, Destination: dest}, nil
	case "undo":
		return gridstate.Undo{}, nil
	case "redo":
		return gridstate.Redo{}, nil
	case "reset":
		return gridstate.Reset{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, s.Op)
}

func (s Step) position() (models.CellPosition, error) {
	if s.Cell != "" {
		return cellPosition(s.Cell)
	}
	return models.CellPosition{Row: s.Row, Col: s.Col}, nil
}

func (s Step) index() (int, error) {
	if s.Index == nil {
		return 0, errors.New("missing index")
	}
	return *s.Index, nil
}

func (s Step) cellRange() (models.CellRange, error) {
	if s.Range == "" {
		return models.CellRange{}, errors.New("missing range")
	}
	return parser.ParseRange(s.Range)
}

func cellPosition(name string) (models.CellPosition, error) {
	k, err := address.FromCellName(name)
	if err != nil {
		return models.CellPosition{}, err
	}
	row, col := address.Decode(k)
	return models.CellPosition{Row: row, Col: col}, nil
}
