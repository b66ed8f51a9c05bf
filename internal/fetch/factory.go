package fetch

import (
	"fmt"
	"os"

	"github.com/r-anthony-graves/taskWolf/internal/domain"
)

// NewFetcher selects the fetch backend from TASKWOLF_FETCH_MODE.
// "browser" (the default) launches Chrome; "mock" serves synthetic
// pages for offline runs.
func NewFetcher(cfg Config) (domain.Fetcher, error) {
	mode := os.Getenv("TASKWOLF_FETCH_MODE")

	switch mode {
	case "", "browser":
		return Launch(cfg)
	case "mock":
		return NewMockSource(), nil
	default:
		return nil, fmt.Errorf("unknown TASKWOLF_FETCH_MODE: %s (use 'browser' or 'mock')", mode)
	}
}
