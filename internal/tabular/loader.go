// Package tabular loads delimited classification data and turns it into
// optimizer-ready examples.
package tabular

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/optiprompt/optiprompt/internal/domain"
)

// Row maps a column name to its cell value. Every row loaded from one file
// shares the same key set, taken from the header record.
type Row map[string]string

// LoadCSV reads the full file into header-keyed rows. The first record is the
// header; column names are case-sensitive.
func LoadCSV(path string) ([]string, []Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, domain.NewDomainError(domain.ErrIO, fmt.Sprintf("cannot open %s", path))
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, domain.NewDomainError(domain.ErrFormat, fmt.Sprintf("malformed CSV in %s: %v", path, err))
	}

	if len(records) == 0 {
		return nil, nil, nil
	}

	header := records[0]
	seen := make(map[string]bool, len(header))
	for _, name := range header {
		if seen[name] {
			return nil, nil, domain.Format(fmt.Sprintf("duplicate column %q in %s", name, path))
		}
		seen[name] = true
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(header))
		for i, name := range header {
			row[name] = record[i]
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}
