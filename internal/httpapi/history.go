package httpapi

import (
	"os"
	"strings"

	"github.com/lox/axiomind/internal/handlog"
)

// HandFilter narrows a hand-history query per SPEC_FULL.md §3's
// HandHistoryFilter: any given field restricts the match, and every
// given field must match (logical AND). from/to compare hand_id
// lexicographically, which sorts correctly since hand_id is a
// zero-padded date-and-counter string.
type HandFilter struct {
	From           *string `json:"from,omitempty"`
	To             *string `json:"to,omitempty"`
	ResultContains *string `json:"result_contains,omitempty"`
	MinActions     *int    `json:"min_actions,omitempty"`
}

func (f HandFilter) matches(rec handlog.HandRecord) bool {
	if f.From != nil && rec.HandID < *f.From {
		return false
	}
	if f.To != nil && rec.HandID > *f.To {
		return false
	}
	if f.ResultContains != nil && !strings.Contains(rec.Result, *f.ResultContains) {
		return false
	}
	if f.MinActions != nil && len(rec.Actions) < *f.MinActions {
		return false
	}
	return true
}

// HandStatistics is SPEC_FULL.md §3's HandHistoryStats: a count of
// hands scanned and a tally of results seen, keyed by the record's
// `result` string; records with no result are tallied under "unknown".
type HandStatistics struct {
	Count          int               `json:"count"`
	HandsPerResult map[string]uint64 `json:"hands_per_result"`
}

// History reads hand records from a single JSONL log file. It never
// holds a session lock - history browsing is file-backed and
// independent of live sessions.
type History struct {
	path string
}

// NewHistory opens a history reader backed by the hand log at path.
func NewHistory(path string) *History {
	return &History{path: path}
}

func (h *History) readAll() ([]handlog.HandRecord, error) {
	f, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	return handlog.ReadAll(f)
}

// Recent returns up to limit of the most recently logged hands, most
// recent first. A limit of 0 returns every hand.
func (h *History) Recent(limit int) ([]handlog.HandRecord, error) {
	records, err := h.readAll()
	if err != nil {
		return nil, err
	}
	reversed := make([]handlog.HandRecord, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}
	if limit > 0 && limit < len(reversed) {
		reversed = reversed[:limit]
	}
	return reversed, nil
}

// ByID returns the single hand with the given hand_id, or
// (HandRecord{}, false) if none matches.
func (h *History) ByID(handID string) (handlog.HandRecord, bool, error) {
	records, err := h.readAll()
	if err != nil {
		return handlog.HandRecord{}, false, err
	}
	for _, r := range records {
		if r.HandID == handID {
			return r, true, nil
		}
	}
	return handlog.HandRecord{}, false, nil
}

// Filter returns every hand matching f.
func (h *History) Filter(f HandFilter) ([]handlog.HandRecord, error) {
	records, err := h.readAll()
	if err != nil {
		return nil, err
	}
	var out []handlog.HandRecord
	for _, r := range records {
		if f.matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Stats computes aggregate HandStatistics over the entire log.
func (h *History) Stats() (HandStatistics, error) {
	records, err := h.readAll()
	if err != nil {
		return HandStatistics{}, err
	}
	stats := HandStatistics{HandsPerResult: make(map[string]uint64)}
	stats.Count = len(records)
	for _, r := range records {
		result := r.Result
		if result == "" {
			result = "unknown"
		}
		stats.HandsPerResult[result]++
	}
	return stats, nil
}
