package fetch

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/r-anthony-graves/taskWolf/internal/domain"
)

// MockSource serves synthetic board pages without a browser. Pages are
// rendered as the same HTML shape the real source uses, so the full
// parser path is exercised.
type MockSource struct {
	// Pages is how many pages the source exposes before running dry.
	Pages int
	// PerPage is how many rows each page carries.
	PerPage int

	token string
	stamp string
}

func NewMockSource() *MockSource {
	return &MockSource{Pages: 20, PerPage: 30}
}

func (m *MockSource) Fetch(_ context.Context, token string) (domain.PageContent, error) {
	m.token = token
	return domain.PageContent{HTML: m.render(token), Ready: true}, nil
}

func (m *MockSource) Reload(_ context.Context) (domain.PageContent, error) {
	return domain.PageContent{HTML: m.render(m.token), Ready: true}, nil
}

func (m *MockSource) Close() error {
	return nil
}

// render produces one synthetic page. Token "" is page 1; later pages
// use the "?p=N" tokens render itself hands out.
func (m *MockSource) render(token string) string {
	pageNo := 1
	if n, err := strconv.Atoi(strings.TrimPrefix(token, "?p=")); err == nil && n > 0 {
		pageNo = n
	}

	// one stamp per source keeps repeated renders of a page identical
	if m.stamp == "" {
		m.stamp = time.Now().UTC().Format("2006-01-02T15:04:05")
	}

	var b strings.Builder
	b.WriteString("<html><body><table>\n")
	for i := 0; i < m.PerPage; i++ {
		id := (pageNo-1)*m.PerPage + i + 1
		fmt.Fprintf(&b, `<tr class="athing" id="mock%d"><td class="title"><span class="titleline"><a>Simulated entry #%d</a></span></td></tr>`+"\n", id, id)
		fmt.Fprintf(&b, `<tr><td class="subtext"><span class="age" title="%s"><a>just now</a></span></td></tr>`+"\n", m.stamp)
	}
	b.WriteString("</table>\n")
	if pageNo < m.Pages {
		fmt.Fprintf(&b, `<a class="morelink" href="?p=%d">More</a>`+"\n", pageNo+1)
	}
	b.WriteString("</body></html>")
	return b.String()
}
