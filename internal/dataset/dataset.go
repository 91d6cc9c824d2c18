package dataset

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

var (
	// ErrMissingColumn indicates a required header column is absent.
	ErrMissingColumn = errors.New("required column missing")
	// ErrBadNumber indicates a value expected to be numeric failed to parse.
	ErrBadNumber = errors.New("value is not numeric")
)

// Options controls how the benchmark table is loaded.
type Options struct {
	// LengthColumn and GasColumn name the two required header columns.
	LengthColumn string
	GasColumn    string
	// MaxRows limits rows loaded; 0 means unlimited.
	MaxRows int
	// XLSX sheet selection. If SheetName is empty, SheetIndex (1-based) is
	// used; if that is also unset, the first sheet is read.
	SheetName  string
	SheetIndex int
}

// DefaultOptions returns the column names the benchmark harness emits.
func DefaultOptions() Options {
	return Options{
		LengthColumn: "Message Length",
		GasColumn:    "Gas Used",
		MaxRows:      100000,
	}
}

// Row is one record of the benchmark table. Both fields are kept as raw
// text: the length column mixes byte counts with named test-case labels.
type Row struct {
	Length string
	Gas    string
}

// NumericRow is a Row whose length field parsed as a byte count.
type NumericRow struct {
	Length int
	Gas    float64
}

// Table is the output of Partition: every input row lands in exactly one
// of the two slices, each preserving original input order.
type Table struct {
	Numeric []NumericRow
	Special []Row
}

// Small returns the numeric rows with length at or below threshold,
// preserving order.
func (t Table) Small(threshold int) []NumericRow {
	var out []NumericRow
	for _, r := range t.Numeric {
		if r.Length <= threshold {
			out = append(out, r)
		}
	}
	return out
}

// MaxLength returns the largest message length among the numeric rows,
// or 0 when there are none.
func (t Table) MaxLength() int {
	max := 0
	for _, r := range t.Numeric {
		if r.Length > max {
			max = r.Length
		}
	}
	return max
}

// LoadCSV reads the benchmark CSV into ordered rows. Both columns are read
// as strings; type decisions are left to Partition.
func LoadCSV(path string, opt Options) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f, dataframe.WithTypes(map[string]series.Type{
		opt.LengthColumn: series.String,
		opt.GasColumn:    series.String,
	}))
	if df.Err != nil {
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}
	return rowsFromFrame(df, opt)
}

func rowsFromFrame(df dataframe.DataFrame, opt Options) ([]Row, error) {
	// Resolve the configured names against the actual header, tolerating
	// case and padding differences.
	resolve := func(want string) (string, error) {
		for _, n := range df.Names() {
			if strings.EqualFold(strings.TrimSpace(n), want) {
				return n, nil
			}
		}
		return "", fmt.Errorf("%w: %q", ErrMissingColumn, want)
	}
	lenCol, err := resolve(opt.LengthColumn)
	if err != nil {
		return nil, err
	}
	gasCol, err := resolve(opt.GasColumn)
	if err != nil {
		return nil, err
	}

	lengths := df.Col(lenCol).Records()
	gases := df.Col(gasCol).Records()
	n := len(lengths)
	if opt.MaxRows > 0 && n > opt.MaxRows {
		n = opt.MaxRows
	}
	rows := make([]Row, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, Row{
			Length: strings.TrimSpace(lengths[i]),
			Gas:    strings.TrimSpace(gases[i]),
		})
	}
	return rows, nil
}

// Partition classifies rows by the length field: a non-empty run of ASCII
// digits is a byte count, anything else is a named test case. Numeric rows
// are converted; a gas field that fails to parse is a data error since the
// harness always writes gas as a number.
func Partition(rows []Row) (Table, error) {
	var t Table
	for _, r := range rows {
		if !isAllDigits(r.Length) {
			t.Special = append(t.Special, r)
			continue
		}
		length, err := strconv.Atoi(r.Length)
		if err != nil {
			return Table{}, fmt.Errorf("%w: message length %q", ErrBadNumber, r.Length)
		}
		gas, err := strconv.ParseFloat(r.Gas, 64)
		if err != nil {
			return Table{}, fmt.Errorf("%w: gas value %q", ErrBadNumber, r.Gas)
		}
		t.Numeric = append(t.Numeric, NumericRow{Length: length, Gas: gas})
	}
	return t, nil
}

// isAllDigits deliberately accepts only non-negative integer strings;
// signed or decimal lengths are treated as labels, matching the harness.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
