// Package gridstate is the state engine behind an editable, typed data grid:
// cell overrides over a base dataset, selection and editing state, bounded
// undo/redo, structural mutation and range relocation.
package gridstate

import (
	"github.com/google/uuid"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/history"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/validate"
	"go.uber.org/zap"
)

// Warning reports a value that failed validation but was committed anyway.
type Warning struct {
	// Row is the zero-based row of the cell.
	Row int
	// Col is the zero-based column of the cell.
	Col int
	// Column is the key of the cell's column.
	Column string
	// Type is the column type the value was validated against.
	Type models.ColumnType
	// Value is the raw input that was written.
	Value string
	// Error is the validation message.
	Error string
}

// Options configures a Store.
type Options struct {
	// MaxHistory caps the retained history entries. Zero means history.DefaultMaxEntries.
	MaxHistory int
	// Validation holds the formatting defaults used when a column format leaves a field unset.
	// If nil, validate.DefaultSettings is used.
	Validation *validate.Settings
	// Logger receives validation warnings (Warn) and ignored operations (Debug).
	// If nil, logging is disabled.
	Logger *zap.Logger
	// OnWarning, if set, is called for every validation warning after the
	// dispatch that produced it has completed.
	OnWarning func(Warning)
	// NewColumnKey generates keys for added columns. If nil, random UUIDs are used.
	NewColumnKey func() string
}

// DefaultOptions returns default store options.
func DefaultOptions() Options {
	return Options{
		MaxHistory: history.DefaultMaxEntries,
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func (o Options) validator() *validate.Service {
	if o.Validation != nil {
		return validate.New(*o.Validation)
	}
	return validate.Default
}

func (o Options) columnKey() string {
	if o.NewColumnKey != nil {
		return o.NewColumnKey()
	}
	return randomColumnKey()
}

func randomColumnKey() string {
	return "col_" + uuid.NewString()
}
