package property

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/op/go-logging"
)

// log is the global logging variable.
var log = logging.MustGetLogger("property")

// SymbolColumn is the header of the column holding residue codes. If
// a table has no such column, the first column is used.
const SymbolColumn = "1-letter code"

// DefaultColumns maps property names to the column headers of the
// amino acid properties table.
var DefaultColumns = map[string]string{
	Hydropathy: "hydropathy index (Kyte-Doolittle method)",
	PI:         "pI",
	Surface:    "Accessible surface",
}

// ReadCSV reads property tables from a CSV source with a header
// row. Columns maps a property name to a column header; nil means
// DefaultColumns.
func ReadCSV(rd io.Reader, columns map[string]string) (Lookup, error) {
	if columns == nil {
		columns = DefaultColumns
	}
	if len(columns) == 0 {
		return nil, errors.New("no property columns requested")
	}

	r := csv.NewReader(rd)
	r.TrimLeadingSpace = true
	r.Comment = '#'

	header, err := r.Read()
	if err == io.EOF {
		return nil, errors.New("empty property table")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	symCol, ok := index[SymbolColumn]
	if !ok {
		symCol = 0
	}

	// sorted, so the error for a missing column doesn't depend on
	// map order
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)

	cols := make(map[string]int, len(names))
	for _, name := range names {
		i, ok := index[columns[name]]
		if !ok {
			return nil, fmt.Errorf("property %q: no column %q", name, columns[name])
		}
		cols[name] = i
	}

	lookup := make(Lookup, len(names))
	for _, name := range names {
		lookup[name] = make(Table)
	}

	for row := 2; ; row++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		sym := strings.ToUpper(strings.TrimSpace(rec[symCol]))
		if len(sym) != 1 || sym[0] < 'A' || sym[0] > 'Z' {
			return nil, fmt.Errorf("row %d: bad amino acid code %q", row, rec[symCol])
		}
		for _, name := range names {
			cell := strings.TrimSpace(rec[cols[name]])
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", row, columns[name], err)
			}
			lookup[name][sym[0]] = v
		}
	}

	for _, name := range names {
		log.Debugf("property %s: %d amino acids", name, len(lookup[name]))
	}
	return lookup, nil
}

// ReadCSVFile reads property tables from a CSV file.
func ReadCSVFile(fn string, columns map[string]string) (Lookup, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lookup, err := ReadCSV(f, columns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return lookup, nil
}
