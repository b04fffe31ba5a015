package models

// ColumnType is the value type of a column.
type ColumnType string

const (
	TypeText       ColumnType = "text"
	TypeNumber     ColumnType = "number"
	TypeCurrency   ColumnType = "currency"
	TypePercentage ColumnType = "percentage"
	TypeDate       ColumnType = "date"
	TypeEmail      ColumnType = "email"
	TypeURL        ColumnType = "url"
	TypeBoolean    ColumnType = "boolean"
)

// ColumnTypes lists every column type in declaration order.
var ColumnTypes = []ColumnType{
	TypeText, TypeNumber, TypeCurrency, TypePercentage,
	TypeDate, TypeEmail, TypeURL, TypeBoolean,
}

// Valid reports whether t is a known column type.
func (t ColumnType) Valid() bool {
	for _, known := range ColumnTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Date patterns accepted in ColumnFormat.DatePattern.
const (
	DatePatternUS  = "MM/DD/YYYY"
	DatePatternEU  = "DD/MM/YYYY"
	DatePatternISO = "YYYY-MM-DD"
)

// ColumnFormat holds optional per-column formatting parameters.
type ColumnFormat struct {
	// Decimals is the number of fraction digits for number columns (nil: default).
	Decimals *int `json:"decimals,omitempty" yaml:"decimals,omitempty"`
	// CurrencyCode is the ISO 4217 code for currency columns (empty: default).
	CurrencyCode string `json:"currency_code,omitempty" yaml:"currency_code,omitempty"`
	// DatePattern is one of the DatePattern constants (empty: default).
	DatePattern string `json:"date_pattern,omitempty" yaml:"date_pattern,omitempty"`
}

// Column describes one column of the dataset.
type Column struct {
	// Key is the unique field name the column's values are stored under in each Item.
	Key string `json:"key"`
	// DisplayName is the header text.
	DisplayName string `json:"display_name"`
	// Type is the column value type.
	Type ColumnType `json:"type"`
	// Format holds formatting parameters for Type.
	Format ColumnFormat `json:"format,omitempty"`
}
