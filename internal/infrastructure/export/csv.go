package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sync"

	"NPSLabeler/internal/domain"
	"NPSLabeler/internal/ports"
)

// Header matches the warehouse output table; the response column keeps its
// historical uppercase name.
var header = []string{"CUSTOMER_RESPONSE", "main_topic", "sub_topic", "type_service"}

// CSVWriter mirrors saved chunks into a local CSV file, one row per labeled
// record, appending across chunks within a run.
type CSVWriter struct {
	path string
	mu   sync.Mutex
}

var _ ports.Exporter = (*CSVWriter)(nil)

func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Reset removes the previous run's file so a full reload starts clean.
func (w *CSVWriter) Reset(_ context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.Remove(w.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove export file: %w", err)
	}
	return nil
}

// Export appends the records, writing the header when the file is new.
func (w *CSVWriter) Export(_ context.Context, records []domain.LabeledRecord) error {
	if len(records) == 0 {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	_, statErr := os.Stat(w.path)
	fresh := errors.Is(statErr, os.ErrNotExist)

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}

	cw := csv.NewWriter(f)
	if fresh {
		if err := cw.Write(header); err != nil {
			_ = f.Close()
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, rec := range records {
		row := []string{rec.ResponseText, rec.MainTopic, rec.SubTopic, rec.ServiceType}
		if err := cw.Write(row); err != nil {
			_ = f.Close()
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush export file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	return nil
}
