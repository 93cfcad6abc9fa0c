package report

import (
	"encoding/csv"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/fmantz/speedtracker/defs"
)

// WriteCSV writes records as CSV with a header line
func WriteCSV(w io.Writer, records []defs.Record, delimiter rune) error {
	rows := RawRows(records)
	cw := csv.NewWriter(w)
	cw.Comma = delimiter
	return gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(cw))
}

// WriteCSVFile exports records to path, which is replaced only once the
// export is complete
func WriteCSVFile(path string, records []defs.Record, delimiter rune) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteCSV(w, records, delimiter)
	})
}
