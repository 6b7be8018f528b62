// Package source reads the CMF tabular extracts (Excel workbooks or CSV files)
// into fondos tables.
package source

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/fondos"
	"github.com/xuri/excelize/v2"
)

// ErrMissingColumn is returned when an extract lacks a column required by the schema.
var ErrMissingColumn = errors.New("missing column")

// maxLoggedInvalid caps the per-row warnings printed for unreadable cells.
const maxLoggedInvalid = 10

// Read loads the extract at path and projects it on schema.
//
// Workbooks (.xlsx, .xlsm) are read from their first sheet, anything else is
// read as CSV. The first non empty line is the header; header names are
// matched case insensitively and extra columns are ignored.
//
// A missing file is reported with an error wrapping fs.ErrNotExist.
func Read(path string, schema fondos.Schema) (*fondos.Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cannot open extract %q: %w", path, err)
	}

	var (
		lines [][]string
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		lines, err = readWorkbook(path)
	default:
		lines, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}
	return project(filepath.Base(path), lines, schema)
}

// readWorkbook returns the raw cell values of the first sheet of a workbook.
func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook %q: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %q has no sheet", path)
	}
	// raw values: cell formats (percentages, thousands) must not leak in the numbers.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q of %q: %w", sheets[0], path, err)
	}
	return rows, nil
}

// readCSV returns the records of a CSV file. The separator is ';' when the
// header uses it and ',' otherwise.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open extract %q: %w", path, err)
	}
	defer file.Close()

	br := bufio.NewReader(file)
	head, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("cannot read %q: %w", path, err)
	}
	first, _, _ := strings.Cut(string(head), "\n")

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1 // Allow variable number of fields per record
	if strings.Count(first, ";") > strings.Count(first, ",") {
		reader.Comma = ';'
	}
	lines, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse CSV %q: %w", path, err)
	}
	return lines, nil
}

// project converts raw lines into a table, using the first non empty line as header.
func project(name string, lines [][]string, schema fondos.Schema) (*fondos.Table, error) {
	for len(lines) > 0 && blank(lines[0]) {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("extract %q is empty", name)
	}

	// Column index of every schema column.
	index := make(map[string]int)
	for i, h := range lines[0] {
		h = strings.TrimPrefix(h, "\ufeff") // Excel's CSV export starts with a BOM
		if c, ok := schema.Lookup(h); ok {
			if _, dup := index[c.Name]; !dup {
				index[c.Name] = i
			}
		}
	}
	var missing []string
	for _, c := range schema {
		if _, ok := index[c.Name]; !ok {
			missing = append(missing, c.Name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("extract %q: %w: %s", name, ErrMissingColumn, strings.Join(missing, ", "))
	}

	t := fondos.NewTable(name, schema)
	logged := 0
	for _, line := range lines[1:] {
		if blank(line) {
			continue
		}
		cells := make(map[string]string, len(index))
		for col, i := range index {
			if i < len(line) {
				cells[col] = line[i]
			}
		}
		if err := t.Append(cells); err != nil {
			if logged < maxLoggedInvalid {
				log.Printf("warning: %v (treated as not reported)", err)
			}
			logged++
		}
	}
	if logged > maxLoggedInvalid {
		log.Printf("warning: %d more rows of %q with unreadable cells", logged-maxLoggedInvalid, name)
	}
	return t, nil
}

func blank(line []string) bool {
	for _, c := range line {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
