package output

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ccollicutt/fivegscan/pkg/analyzer"
)

// CSVHeader is the fixed column order of the exported table.
var CSVHeader = []string{"timestamp", "rtt", "type"}

// CSVFormatter renders the retained entries as CSV.
type CSVFormatter struct {
	opts FormatOptions
}

// NewCSVFormatter creates a new CSV formatter. Options are accepted for
// interface symmetry; CSV output is always the full table.
func NewCSVFormatter(opts FormatOptions) *CSVFormatter {
	return &CSVFormatter{opts: opts}
}

// Name returns the format name.
func (f *CSVFormatter) Name() string {
	return "csv"
}

// Format writes the retained entries with a header row.
func (f *CSVFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	return WriteCSV(w, report.Entries)
}

// WriteCSV writes entries as CSV with a header row.
func WriteCSV(w io.Writer, entries []analyzer.LogEntry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, e := range entries {
		row := []string{e.Timestamp, strconv.Itoa(e.RTTMs), string(e.Category)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
