// Package parser extracts entries from rendered board pages. Parsing is
// pure: it touches no network and no browser, so it can be exercised
// against static fixture content.
package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/r-anthony-graves/taskWolf/internal/domain"
)

// RowSelector matches one candidate entry row. Exported so the fetcher
// can use it as its content-readiness probe.
const RowSelector = "tr.athing"

const (
	titleSelector = ".titleline a"
	ageSelector   = "span.age"
	moreSelector  = "a.morelink"
)

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse extracts all valid entries and the next-page token from content.
// A row yields an entry only if id, title and timestamp are all non-empty
// after trimming; anything else is skipped without error.
func (p *Parser) Parse(content string) (domain.PageResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return domain.PageResult{}, fmt.Errorf("parse page content: %w", err)
	}

	var entries []domain.Entry
	doc.Find(RowSelector).Each(func(_ int, row *goquery.Selection) {
		e := domain.Entry{
			ID:        strings.TrimSpace(row.AttrOr("id", "")),
			Title:     strings.TrimSpace(row.Find(titleSelector).First().Text()),
			Timestamp: rowTimestamp(row),
		}
		if e.Valid() {
			entries = append(entries, e)
		}
	})

	return domain.PageResult{
		Entries:       entries,
		NextPageToken: strings.TrimSpace(doc.Find(moreSelector).First().AttrOr("href", "")),
	}, nil
}

// rowTimestamp reads the machine-readable stamp off the row's age
// indicator, falling back to its displayed text. The age element sits
// either inside the row or in the subtext row that follows it.
func rowTimestamp(row *goquery.Selection) string {
	age := row.Find(ageSelector).First()
	if age.Length() == 0 {
		age = row.Next().Find(ageSelector).First()
	}

	ts := strings.TrimSpace(age.AttrOr("title", ""))
	if ts == "" {
		return strings.TrimSpace(age.Text())
	}
	// The title attribute may carry a unix epoch after the ISO stamp.
	if i := strings.IndexByte(ts, ' '); i > 0 {
		ts = ts[:i]
	}
	return ts
}
