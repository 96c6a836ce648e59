package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"strings"
)

var utf8ByteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// Table is a normalized in-memory view of one CSV export.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// ReadTable parses the CSV file at the supplied path into a Table.
//
// The crawler writes UTF-8 CSVs with a byte order mark, so the mark is
// stripped before parsing. Short records are padded with empty values and
// surplus fields are dropped.
func ReadTable(csvPath string) (*Table, error) {
	fileContent, readError := os.ReadFile(csvPath)
	if readError != nil {
		return nil, readError
	}

	fileContent = bytes.TrimPrefix(fileContent, utf8ByteOrderMark)

	csvReader := csv.NewReader(bytes.NewReader(fileContent))
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	records, parseError := csvReader.ReadAll()
	if parseError != nil {
		return nil, parseError
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	columns := make([]string, len(records[0]))
	for columnIndex, columnName := range records[0] {
		columns[columnIndex] = strings.TrimSpace(columnName)
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(columns))
		for columnIndex, columnName := range columns {
			if columnIndex < len(record) {
				row[columnName] = record[columnIndex]
			} else {
				row[columnName] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Table{Columns: columns, Rows: rows}, nil
}

// HasColumn reports whether the table carries a column with the exact name.
func (table *Table) HasColumn(columnName string) bool {
	for _, candidateColumn := range table.Columns {
		if candidateColumn == columnName {
			return true
		}
	}
	return false
}

// FirstColumnNamed returns the first table column matching any candidate name, or empty.
func (table *Table) FirstColumnNamed(candidateNames ...string) string {
	for _, tableColumn := range table.Columns {
		for _, candidateName := range candidateNames {
			if tableColumn == candidateName {
				return tableColumn
			}
		}
	}
	return ""
}

// RenameColumn renames a column in place, updating every row.
func (table *Table) RenameColumn(currentName string, replacementName string) {
	if currentName == replacementName {
		return
	}
	for columnIndex, columnName := range table.Columns {
		if columnName == currentName {
			table.Columns[columnIndex] = replacementName
		}
	}
	for _, row := range table.Rows {
		if columnValue, exists := row[currentName]; exists {
			row[replacementName] = columnValue
			delete(row, currentName)
		}
	}
}

// TransformColumn applies the transformation to every value in the named column.
func (table *Table) TransformColumn(columnName string, transform func(string) string) {
	for _, row := range table.Rows {
		if columnValue, exists := row[columnName]; exists {
			row[columnName] = transform(columnValue)
		}
	}
}

// FilterRows returns a table containing only rows the predicate accepts.
func (table *Table) FilterRows(keep func(map[string]string) bool) *Table {
	filteredRows := make([]map[string]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		if keep(row) {
			filteredRows = append(filteredRows, row)
		}
	}
	return &Table{Columns: table.Columns, Rows: filteredRows}
}
