// Package engine drives the fetch→parse→dedup→advance loop until a
// target count, a page budget, or source exhaustion stops it.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/r-anthony-graves/taskWolf/internal/domain"
)

type Engine struct {
	fetcher domain.Fetcher
	parser  domain.Parser
	log     *slog.Logger
}

func New(fetcher domain.Fetcher, parser domain.Parser, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{fetcher: fetcher, parser: parser, log: log}
}

// Collect runs one collection pass. Exactly one page fetch is
// outstanding at a time; page N+1 is never fetched before page N has
// been merged. The returned State is always usable for reporting, even
// when err is non-nil (a fatal navigation or capture failure).
func (e *Engine) Collect(ctx context.Context, requested, maxPages int) (*State, error) {
	state := NewState(requested, maxPages)
	token := ""

	for {
		pageNo := state.Pages + 1

		content, err := e.fetcher.Fetch(ctx, token)
		if err != nil {
			return state, fmt.Errorf("fetch page %d: %w", pageNo, err)
		}
		if !content.Ready {
			e.log.Warn("rows did not settle in time, parsing anyway", "page", pageNo)
		}

		page, err := e.parser.Parse(content.HTML)
		if err != nil {
			return state, fmt.Errorf("parse page %d: %w", pageNo, err)
		}

		// Soft retry: a page that parses to zero entries gets exactly
		// one reload before it is treated as exhausted.
		retried := false
		if len(page.Entries) == 0 {
			e.log.Warn("empty page, reloading once", "page", pageNo)
			retried = true

			content, err = e.fetcher.Reload(ctx)
			if err != nil {
				return state, fmt.Errorf("reload page %d: %w", pageNo, err)
			}
			page, err = e.parser.Parse(content.HTML)
			if err != nil {
				return state, fmt.Errorf("parse reloaded page %d: %w", pageNo, err)
			}
		}

		state.Merge(page.Entries)
		state.Pages++
		e.log.Info("page merged",
			"page", state.Pages,
			"collected", len(state.Collected),
			"seen", len(state.Seen),
		)

		switch {
		case state.Full():
			return state, nil
		case retried && len(page.Entries) == 0:
			// Still empty after the one reload: the source is treated
			// as exhausted even if a next-page control is present.
			e.log.Warn("page empty after reload, stopping", "page", state.Pages)
			return state, nil
		case page.NextPageToken == "":
			e.log.Info("no next-page control, source exhausted", "page", state.Pages)
			return state, nil
		case state.Pages >= state.MaxPages:
			e.log.Info("page budget reached", "pages", state.Pages)
			return state, nil
		}

		token = page.NextPageToken
	}
}
