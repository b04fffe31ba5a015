package gridstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/parser"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/validate"
	"github.com/xuri/excelize/v2"
)

// DefaultSampleSize is the number of non-empty values inspected per column
// when inferring column types.
const DefaultSampleSize = 100

// LoadOptions configures dataset loading.
type LoadOptions struct {
	// Sheet is the worksheet to read. Empty means the first sheet.
	Sheet string
	// Range restricts reading to an A1 range such as "A1:F200".
	// Empty means the sheet's print area if one is defined, else the detected data block.
	Range string
	// SampleSize caps the values inspected per column for type inference.
	SampleSize int
	// Validator infers column types. If nil, validate.Default is used.
	Validator *validate.Service
}

func (o LoadOptions) sampleSize() int {
	if o.SampleSize > 0 {
		return o.SampleSize
	}
	return DefaultSampleSize
}

func (o LoadOptions) validator() *validate.Service {
	if o.Validator != nil {
		return o.Validator
	}
	return validate.Default
}

// LoadXLSX reads a worksheet into a Dataset. The first row of the region
// supplies the column names; the column types are inferred from the rest.
func LoadXLSX(path string, opts LoadOptions) (models.Dataset, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return models.Dataset{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	sheetName := opts.Sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}

	rows, err := parser.ExtractRows(f, sheetName)
	if err != nil {
		return models.Dataset{}, NewLoadError(sheetName, "rows", err)
	}

	region, err := resolveRegion(f, sheetName, rows, opts.Range)
	if err != nil {
		return models.Dataset{}, err
	}

	sheet := parser.ExtractSheet(sheetName, rows, region)
	return BuildDataset(sheet.Header, sheet.Rows, opts), nil
}

func resolveRegion(f *excelize.File, sheetName string, rows [][]string, rangeStr string) (models.CellRange, error) {
	if rangeStr != "" {
		r, err := parser.ParseRange(rangeStr)
		if err != nil {
			return models.CellRange{}, NewLoadError(sheetName, "region", err)
		}
		return r, nil
	}
	if areas := parser.ExtractPrintAreas(f)[sheetName]; len(areas) > 0 {
		return areas[0], nil
	}
	r, ok := parser.DetectTable(rows, parser.DefaultTableParams())
	if !ok {
		return models.CellRange{}, NewLoadError(sheetName, "header", ErrNoHeader)
	}
	return r, nil
}

// LoadJSON reads a Dataset document as written by output.DatasetToJSON.
// Integer values are normalized to float64; duplicate or empty column keys are rejected.
func LoadJSON(path string) (models.Dataset, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return models.Dataset{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return models.Dataset{}, err
	}

	var ds models.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return models.Dataset{}, NewLoadError("", "document", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}

	seen := make(map[string]bool, len(ds.Columns))
	for i, c := range ds.Columns {
		if c.Key == "" || seen[c.Key] {
			return models.Dataset{}, NewLoadError("", "document", fmt.Errorf("%w: column %d has a missing or duplicate key %q", ErrInvalidFormat, i, c.Key))
		}
		seen[c.Key] = true
		if c.Type == "" {
			ds.Columns[i].Type = models.TypeText
		} else if !c.Type.Valid() {
			return models.Dataset{}, NewLoadError("", "document", fmt.Errorf("%w: column %q has unknown type %q", ErrInvalidFormat, c.Key, c.Type))
		}
	}
	for _, it := range ds.Items {
		for k, v := range it {
			it[k] = models.NormalizeValue(v)
		}
	}
	return ds, nil
}

// BuildDataset builds a dataset from a header row and value rows, inferring column types.
func BuildDataset(header []string, rows [][]interface{}, opts LoadOptions) models.Dataset {
	ds := models.Dataset{
		Columns: make([]models.Column, len(header)),
		Items:   make([]models.Item, len(rows)),
	}

	used := make(map[string]bool, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Column %d", i+1)
		}
		ds.Columns[i] = models.Column{
			Key:         columnKey(name, used),
			DisplayName: name,
		}
	}

	for r, row := range rows {
		item := make(models.Item, len(header))
		for i, col := range ds.Columns {
			var v interface{} = ""
			if i < len(row) {
				v = models.NormalizeValue(row[i])
			}
			item[col.Key] = v
		}
		ds.Items[r] = item
	}

	svc := opts.validator()
	limit := opts.sampleSize()
	for i, col := range ds.Columns {
		var samples []string
		for _, it := range ds.Items {
			if len(samples) >= limit {
				break
			}
			if s := models.FormatValue(it[col.Key]); strings.TrimSpace(s) != "" {
				samples = append(samples, s)
			}
		}
		ds.Columns[i].Type = svc.Infer(samples)
	}

	return ds
}

var nonKeyChars = regexp.MustCompile(`[^a-z0-9]+`)

// columnKey derives a unique snake_case key from a header name.
func columnKey(name string, used map[string]bool) string {
	base := strings.Trim(nonKeyChars.ReplaceAllString(strings.ToLower(name), "_"), "_")
	if base == "" {
		base = "column"
	}
	key := base
	for n := 2; used[key]; n++ {
		key = base + "_" + strconv.Itoa(n)
	}
	used[key] = true
	return key
}
