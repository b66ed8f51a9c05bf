package engine

import "github.com/r-anthony-graves/taskWolf/internal/domain"

// State is the bookkeeping for one collection run: the dedup set, the
// ordered output, and the page counter. It is created fresh per run,
// mutated only by the engine loop, and discarded at the end.
//
// Invariants: every entry in Collected has its id in Seen; Seen only
// grows; Collected preserves first-seen order and never exceeds Seen.
type State struct {
	Seen      map[string]struct{}
	Collected []domain.Entry
	Pages     int
	Requested int
	MaxPages  int
}

func NewState(requested, maxPages int) *State {
	return &State{
		Seen:      make(map[string]struct{}),
		Requested: requested,
		MaxPages:  maxPages,
	}
}

// Merge folds parsed entries into the dedup set and the ordered output.
// Both stop growing the instant the requested count is reached: rows on
// the same page past that point are not recorded as seen either. The
// reported duplicate count depends on this, so the cutoff must stay
// symmetric.
func (s *State) Merge(entries []domain.Entry) {
	for _, e := range entries {
		if s.Full() {
			break
		}
		if _, dup := s.Seen[e.ID]; dup {
			continue
		}
		s.Seen[e.ID] = struct{}{}
		s.Collected = append(s.Collected, e)
	}
}

// Full reports whether the requested count has been reached.
func (s *State) Full() bool {
	return len(s.Collected) >= s.Requested
}

// Duplicates is the count of identifiers seen but not retained,
// derived as seen-minus-collected at the moment collection stops.
// Kept with this exact derivation for output compatibility.
func (s *State) Duplicates() int {
	return len(s.Seen) - len(s.Collected)
}
