// Package report turns final engine state into the run's outcome record
// and renders it for machines or humans.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/r-anthony-graves/taskWolf/internal/domain"
	"github.com/r-anthony-graves/taskWolf/internal/engine"
)

// Summary is the count block of an Outcome.
type Summary struct {
	Requested int `json:"requested"`
	Collected int `json:"collected"`
	Pages     int `json:"pages"`
	MaxPages  int `json:"maxPages"`
}

// Outcome is the immutable record of one collection run, created once
// at loop termination.
type Outcome struct {
	OK      bool           `json:"ok"`
	Summary Summary        `json:"summary"`
	Items   []domain.Entry `json:"items"`
	Error   string         `json:"error,omitempty"`

	// Duplicates appears in the text rendering only. It is derived as
	// seen-minus-collected at the moment collection stopped; since both
	// stop growing together at the cap, duplicates on the cap page
	// itself are undercounted. Kept as-is for compatibility.
	Duplicates int `json:"-"`
}

// Build creates the Outcome for a finished run. state may be nil when
// the session never launched; runErr marks a hard failure.
func Build(state *engine.State, requested, maxPages int, runErr error) Outcome {
	o := Outcome{
		Summary: Summary{Requested: requested, MaxPages: maxPages},
		Items:   []domain.Entry{},
	}
	if state != nil {
		o.Summary.Collected = len(state.Collected)
		o.Summary.Pages = state.Pages
		o.Duplicates = state.Duplicates()
		if len(state.Collected) > requested {
			o.Items = state.Collected[:requested]
		} else if state.Collected != nil {
			o.Items = state.Collected
		}
	}
	if runErr != nil {
		o.Error = runErr.Error()
		return o
	}
	o.OK = o.Summary.Collected >= requested
	return o
}

// WriteJSON emits the machine-readable rendering.
func WriteJSON(w io.Writer, o Outcome) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(o)
}

// WriteText emits the line-oriented rendering: one numbered line per
// entry, a summary line, and a status line.
func WriteText(w io.Writer, o Outcome) error {
	for i, e := range o.Items {
		if _, err := fmt.Fprintf(w, "%3d. %s  %s  -  %s\n", i+1, e.Timestamp, e.ID, e.Title); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "Collected: %d | Pages: %d | Dups: %d\n",
		o.Summary.Collected, o.Summary.Pages, o.Duplicates)

	switch {
	case o.Error != "":
		fmt.Fprintf(w, "failed: %s\n", o.Error)
	case o.OK:
		fmt.Fprintln(w, "true")
	default:
		fmt.Fprintf(w, "collected %d of %d - try a larger --max-pages (was %d)\n",
			o.Summary.Collected, o.Summary.Requested, o.Summary.MaxPages)
	}
	return nil
}
