// Package models defines data structures for the grid state engine.
package models

// TextAlign is the horizontal alignment of a cell's content.
type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// Valid reports whether a is one of the known alignments.
func (a TextAlign) Valid() bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight:
		return true
	}
	return false
}

// CellStyle holds per-cell presentation attributes.
// Nil fields are unset; a partial style only names the fields it changes.
type CellStyle struct {
	// Bold renders the cell in bold.
	Bold *bool `json:"bold,omitempty" yaml:"bold,omitempty"`
	// Italic renders the cell in italics.
	Italic *bool `json:"italic,omitempty" yaml:"italic,omitempty"`
	// TextAlign is the horizontal alignment.
	TextAlign *TextAlign `json:"text_align,omitempty" yaml:"text_align,omitempty"`
	// BackgroundColor is a CSS-style color string (e.g. "#FFEE00").
	BackgroundColor *string `json:"background_color,omitempty" yaml:"background_color,omitempty"`
}

// IsZero reports whether no style field is set.
func (s CellStyle) IsZero() bool {
	return s.Bold == nil && s.Italic == nil && s.TextAlign == nil && s.BackgroundColor == nil
}

// Merge returns s with every field set in patch overwritten.
// Fields patch leaves nil keep their value from s.
func (s CellStyle) Merge(patch CellStyle) CellStyle {
	if patch.Bold != nil {
		v := *patch.Bold
		s.Bold = &v
	}
	if patch.Italic != nil {
		v := *patch.Italic
		s.Italic = &v
	}
	if patch.TextAlign != nil {
		v := *patch.TextAlign
		s.TextAlign = &v
	}
	if patch.BackgroundColor != nil {
		v := *patch.BackgroundColor
		s.BackgroundColor = &v
	}
	return s
}

// Clone returns a copy of s that shares no pointers with it.
func (s CellStyle) Clone() CellStyle {
	return CellStyle{}.Merge(s)
}

// CellOverride is the user-edited state of a single cell, shadowing the base dataset.
type CellOverride struct {
	// Value is the committed value (string or float64).
	// Nil means the override only carries style or formula and the base value shows through.
	Value interface{} `json:"value,omitempty"`
	// Style is the merged cell style.
	Style CellStyle `json:"style,omitempty"`
	// Formula is the raw formula text. It is stored, never evaluated.
	Formula string `json:"formula,omitempty"`
}

// HasValue reports whether the override shadows the base value.
func (o CellOverride) HasValue() bool {
	return o.Value != nil
}

// Clone returns a deep copy of o.
func (o CellOverride) Clone() CellOverride {
	o.Style = o.Style.Clone()
	return o
}

// Bool returns a pointer to b, for building partial styles.
func Bool(b bool) *bool { return &b }

// Align returns a pointer to a, for building partial styles.
func Align(a TextAlign) *TextAlign { return &a }

// Color returns a pointer to c, for building partial styles.
func Color(c string) *string { return &c }
