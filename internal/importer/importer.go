// Package importer loads the dataset CSV extracts into the database.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gp-wales/internal/db"
	"github.com/gp-wales/internal/debug"
	"github.com/gp-wales/internal/normalize"
)

// Table describes how CSV records map onto one dataset table. Columns are
// looked up in the CSV header by name, case-insensitively, so extra or
// reordered columns are fine.
type Table struct {
	Name    string
	Columns []string
	Convert func(values []string) ([]interface{}, error)
}

// Result counts what one import did.
type Result struct {
	Table    string
	Imported int
	Errors   int
}

// CSVImporter inserts CSV rows inside one transaction per file.
type CSVImporter struct {
	conn  *db.Connection
	debug bool
}

// NewCSVImporter creates a new CSV importer
func NewCSVImporter(conn *db.Connection, localDebug bool) *CSVImporter {
	return &CSVImporter{conn: conn, debug: localDebug}
}

// ImportCSV imports one file into table.
func (ci *CSVImporter) ImportCSV(ctx context.Context, filename string, table Table) (*Result, error) {
	fmt.Printf("Importing %s from %s...\n", table.Name, filename)

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	return ci.Import(ctx, file, table)
}

// Import reads CSV from r and inserts every mappable record. Records that
// fail to parse are counted and skipped. A failed insert rolls the whole
// file back, since PostgreSQL aborts the transaction on the first error.
func (ci *CSVImporter) Import(ctx context.Context, r io.Reader, table Table) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	index, err := columnIndex(header, table.Columns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", table.Name, err)
	}

	tx, err := ci.conn.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(table.Columns)), ", ")
	insert := ci.conn.Rebind(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table.Name, strings.Join(table.Columns, ", "), placeholders))
	debug.DebugQuery(ci.debug, insert)

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	res := &Result{Table: table.Name}
	values := make([]string, len(table.Columns))
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			fmt.Printf("Error reading CSV record: %v\n", err)
			res.Errors++
			continue
		}

		for i, col := range index {
			values[i] = ""
			if col < len(record) {
				values[i] = strings.TrimSpace(record[col])
			}
		}
		args, err := table.Convert(values)
		if err != nil {
			fmt.Printf("Error mapping record on line %d: %v\n", line, err)
			res.Errors++
			continue
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return nil, fmt.Errorf("failed to insert record on line %d: %w", line, err)
		}

		res.Imported++
		if res.Imported%1000 == 0 {
			fmt.Printf("Imported %d records...\n", res.Imported)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit %s import: %w", table.Name, err)
	}
	fmt.Printf("Import complete: %d records imported, %d errors\n", res.Imported, res.Errors)
	return res, nil
}

func columnIndex(header, columns []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	index := make([]int, len(columns))
	var missing []string
	for i, c := range columns {
		p, ok := pos[c]
		if !ok {
			missing = append(missing, c)
			continue
		}
		index[i] = p
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

// AddressTable maps the practice address extract.
var AddressTable = Table{
	Name:    "address",
	Columns: []string{"practiceid", "name", "street", "area", "posttown", "county", "postcode"},
	Convert: func(v []string) ([]interface{}, error) {
		if v[0] == "" {
			return nil, fmt.Errorf("empty practiceid")
		}
		args := make([]interface{}, len(v))
		for i, s := range v {
			args[i] = s
		}
		if v[6] != "" {
			args[6] = normalize.Postcode(v[6])
		}
		return args, nil
	},
}

// PrescribingTable maps the monthly prescribing extract.
var PrescribingTable = Table{
	Name:    "gp_data_up_to_2015",
	Columns: []string{"practiceid", "bnfcode", "bnfname", "items", "nic", "actcost", "quantity", "period"},
	Convert: func(v []string) ([]interface{}, error) {
		if v[0] == "" || v[1] == "" {
			return nil, fmt.Errorf("empty practiceid or bnfcode")
		}
		items, err := parseInt(v[3])
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		nic, err := parseFloat(v[4])
		if err != nil {
			return nil, fmt.Errorf("nic: %w", err)
		}
		act, err := parseFloat(v[5])
		if err != nil {
			return nil, fmt.Errorf("actcost: %w", err)
		}
		qty, err := parseInt(v[6])
		if err != nil {
			return nil, fmt.Errorf("quantity: %w", err)
		}
		period, err := parseInt(v[7])
		if err != nil {
			return nil, fmt.Errorf("period: %w", err)
		}
		return []interface{}{v[0], v[1], v[2], items, nic, act, qty, period}, nil
	},
}

// AchievementTable maps the QOF achievement extract.
var AchievementTable = Table{
	Name:    "qof_achievement",
	Columns: []string{"orgcode", "indicator", "numerator", "denominator", "ratio", "centile"},
	Convert: func(v []string) ([]interface{}, error) {
		if v[0] == "" || v[1] == "" {
			return nil, fmt.Errorf("empty orgcode or indicator")
		}
		args := []interface{}{v[0], strings.ToUpper(v[1])}
		for i, name := range []string{"numerator", "denominator", "ratio", "centile"} {
			f, err := parseFloat(v[i+2])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			args = append(args, f)
		}
		return args, nil
	},
}

// parseInt returns nil for a blank or N/A field so it is stored as NULL.
func parseInt(s string) (interface{}, error) {
	if normalize.IsBlank(s) {
		return nil, nil
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// parseFloat returns nil for a blank or N/A field so it is stored as NULL.
func parseFloat(s string) (interface{}, error) {
	if normalize.IsBlank(s) {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}
