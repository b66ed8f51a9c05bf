package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/r-anthony-graves/taskWolf/internal/domain"
)

// WriterService persists the current run's entries as NDJSON, one entry
// per line. The file is rewritten on every run; the dashboard reads it.
type WriterService struct {
	FilePath string
}

func (w *WriterService) Write(entries []domain.Entry) error {
	f, err := os.OpenFile(w.FilePath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", w.FilePath, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("write entry %s: %w", e.ID, err)
		}
	}
	return nil
}
