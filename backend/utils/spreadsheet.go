package utils

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table: прочитанная таблица: заголовок и строки в виде колонка -> значение
type Table struct {
	Header []string
	Rows   []map[string]string
}

func (t *Table) HasColumns(columns ...string) []string {
	present := make(map[string]struct{}, len(t.Header))
	for _, h := range t.Header {
		present[h] = struct{}{}
	}
	var missing []string
	for _, col := range columns {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

var ErrEmptyTable = errors.New("table has no header row")

// ReadTable reads an uploaded spreadsheet. Files ending in .xlsx are read with
// excelize (first sheet); everything else is parsed as CSV.
func ReadTable(filename string, r io.Reader) (*Table, error) {
	var records [][]string
	var err error
	if strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		records, err = readXLSX(r)
	} else {
		records, err = readCSV(r)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyTable
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}

	table := &Table{Header: header}
	for _, record := range records[1:] {
		if blankRecord(record) {
			continue
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			} else {
				row[col] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyTable
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return records, nil
}

func blankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// WriteTable renders header and rows into a single-sheet xlsx workbook.
func WriteTable(sheet string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	all := append([][]string{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
