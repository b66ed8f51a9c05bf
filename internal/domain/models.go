package domain

import "context"

// Entry is one unique unit of collected data. Identity is ID.
type Entry struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Timestamp string `json:"iso"`
}

// Valid reports whether the entry carries all three required fields.
// Rows that fail this check are dropped during parsing and never
// counted as seen.
func (e Entry) Valid() bool {
	return e.ID != "" && e.Title != "" && e.Timestamp != ""
}

// PageResult is everything the parser extracts from one rendered page.
// NextPageToken is the href of the "more" control, empty when the
// source exposes no further pages.
type PageResult struct {
	Entries       []Entry
	NextPageToken string
}

// PageContent is raw rendered page content handed back by a Fetcher.
// Ready is false when the row selector never settled before the wait
// timeout; the engine parses whatever was captured either way.
type PageContent struct {
	HTML  string
	Ready bool
}

// Fetcher loads source pages. Implementations own navigation, content
// settling and politeness delays. A returned error is fatal to the run;
// transient conditions are reported through PageContent instead.
type Fetcher interface {
	// Fetch navigates to the page identified by token and captures its
	// content. An empty token means the start of the source.
	Fetch(ctx context.Context, token string) (PageContent, error)
	// Reload re-renders the current page. Used by the engine's single
	// soft retry when a page parses to zero entries.
	Reload(ctx context.Context) (PageContent, error)
	// Close releases the underlying session. Must be called on every
	// exit path.
	Close() error
}

// Parser extracts entries and the next-page token from rendered content.
// Implementations must be pure: identical content yields identical results.
type Parser interface {
	Parse(content string) (PageResult, error)
}
