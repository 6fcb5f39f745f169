package storage

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// ExportCSV writes entries as CSV with a header row.
func ExportCSV(w io.Writer, entries []ScoreEntry) error {
	if entries == nil {
		entries = []ScoreEntry{}
	}
	if err := gocsv.Marshal(entries, w); err != nil {
		return fmt.Errorf("storage: cannot export scores: %w", err)
	}
	return nil
}

// AppendCSV writes entries as CSV rows without a header, for extending an
// existing export.
func AppendCSV(w io.Writer, entries []ScoreEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(entries, w); err != nil {
		return fmt.Errorf("storage: cannot export scores: %w", err)
	}
	return nil
}
