package output

import (
	"fmt"
	"strings"

	"github.com/ukaji3/gridstate-go/pkg/gridstate/address"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/parser"
	"github.com/xuri/excelize/v2"
)

// XLSXOptions configures ToXLSX.
type XLSXOptions struct {
	// Sheet is the worksheet name. Empty means "Sheet1".
	Sheet string
	// ColumnWidths maps column index to a pixel width.
	ColumnWidths map[int]int
}

// ToXLSX writes the grid's header and display values to an xlsx file,
// applying cell styles.
func ToXLSX(v models.GridView, path string, opts XLSXOptions) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	} else if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(v.Columns))
	for i, c := range v.Columns {
		header[i] = c.DisplayName
	}
	if len(header) > 0 {
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for r, row := range v.Rows {
		cells := make([]interface{}, len(row))
		for i, val := range row {
			cells[i] = val
		}
		cell, err := address.CellName(r+1, 0)
		if err != nil {
			return err
		}
		if len(cells) > 0 {
			if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
				return fmt.Errorf("write row %d: %w", r, err)
			}
		}
	}

	styles := make(map[string]int)
	for k, ov := range v.Overrides {
		if ov.Style.IsZero() {
			continue
		}
		row, col := address.Decode(k)
		if row < 0 || row >= len(v.Rows) || col < 0 || col >= len(v.Columns) {
			continue
		}
		id, err := styleID(f, styles, ov.Style)
		if err != nil {
			return fmt.Errorf("style %s: %w", k, err)
		}
		cell, err := address.CellName(row+1, col)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, id); err != nil {
			return fmt.Errorf("style %s: %w", k, err)
		}
	}

	for col, px := range opts.ColumnWidths {
		if col < 0 || col >= len(v.Columns) {
			continue
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, parser.PixelsToColumnWidth(px)); err != nil {
			return fmt.Errorf("column width %s: %w", name, err)
		}
	}

	return f.SaveAs(path)
}

// styleID returns an excelize style for s, creating it once per distinct style.
func styleID(f *excelize.File, cache map[string]int, s models.CellStyle) (int, error) {
	st := &excelize.Style{Font: &excelize.Font{}}
	var sig strings.Builder
	if s.Bold != nil {
		st.Font.Bold = *s.Bold
		fmt.Fprintf(&sig, "b%v", *s.Bold)
	}
	if s.Italic != nil {
		st.Font.Italic = *s.Italic
		fmt.Fprintf(&sig, "i%v", *s.Italic)
	}
	if s.TextAlign != nil {
		st.Alignment = &excelize.Alignment{Horizontal: string(*s.TextAlign)}
		fmt.Fprintf(&sig, "a%s", *s.TextAlign)
	}
	if s.BackgroundColor != nil {
		color := strings.TrimPrefix(*s.BackgroundColor, "#")
		st.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
		fmt.Fprintf(&sig, "f%s", color)
	}

	if id, ok := cache[sig.String()]; ok {
		return id, nil
	}
	id, err := f.NewStyle(st)
	if err != nil {
		return 0, err
	}
	cache[sig.String()] = id
	return id, nil
}
