/*
Package search fans a monitoring run out across the configured keywords and
merges the per-keyword results into one candidate set.
*/
package search

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/xcop32221/xhs-auto-search/internal/types"
	"github.com/xcop32221/xhs-auto-search/internal/xhs"
)

// Searcher is the external search collaborator, one call per keyword.
type Searcher interface {
	SearchNotes(ctx context.Context, params xhs.SearchParams) ([]types.PostRecord, error)
}

// Outcome distinguishes "searched and found nothing" from "could not search".
type Outcome int

const (
	// OutcomeFound means the merged candidate set is non-empty.
	OutcomeFound Outcome = iota
	// OutcomeEmpty means at least one keyword searched fine but nothing
	// came back.
	OutcomeEmpty
	// OutcomeFailed means every keyword failed (or none were usable).
	OutcomeFailed
)

// KeywordReport records how a single keyword's search call fared.
type KeywordReport struct {
	Keyword string
	Found   int
	Err     error
}

// Report is the per-run aggregation result alongside the candidates.
type Report struct {
	Outcome  Outcome
	Keywords []KeywordReport
}

// FailureSummary joins the per-keyword errors into one message for the
// failure notification.
func (r Report) FailureSummary() string {
	var parts []string
	for _, kr := range r.Keywords {
		if kr.Err != nil {
			parts = append(parts, fmt.Sprintf("%s: %v", kr.Keyword, kr.Err))
		}
	}
	if len(parts) == 0 {
		return "no usable keywords"
	}
	return strings.Join(parts, "\n")
}

// Aggregator runs one search per keyword with independently randomized
// parameters and merges the results.
type Aggregator struct {
	searcher Searcher
	chooser  *Chooser
	geo      string
}

// NewAggregator builds an aggregator over the given collaborator. The
// chooser supplies the per-keyword randomized search parameters.
func NewAggregator(searcher Searcher, chooser *Chooser, geo string) *Aggregator {
	return &Aggregator{
		searcher: searcher,
		chooser:  chooser,
		geo:      geo,
	}
}

// Aggregate searches every non-empty keyword with an even share of
// totalCount and merges the results, deduplicating by note ID. One keyword
// failing never aborts the rest; each failure lands in the report instead.
func (a *Aggregator) Aggregate(ctx context.Context, keywords []string, totalCount int) ([]types.PostRecord, Report) {
	var usable []string
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw != "" {
			usable = append(usable, kw)
		}
	}

	report := Report{Outcome: OutcomeFailed}
	if len(usable) == 0 {
		return nil, report
	}

	quota := totalCount / len(usable)
	if quota < 1 {
		quota = 1
	}

	var merged []types.PostRecord
	byID := make(map[string]bool)
	anySuccess := false

	for _, kw := range usable {
		params := xhs.SearchParams{
			Keyword: kw,
			Quota:   quota,
			Sort:    a.chooser.Sort(),
			Window:  a.chooser.Window(),
			Geo:     a.geo,
		}

		log.Printf("Searching %q (sort=%s, window=%d, quota=%d)", kw, params.Sort, params.Window, quota)

		posts, err := a.searcher.SearchNotes(ctx, params)
		if err != nil {
			log.Printf("Search failed for %q: %v", kw, err)
			report.Keywords = append(report.Keywords, KeywordReport{Keyword: kw, Err: err})
			continue
		}

		anySuccess = true
		report.Keywords = append(report.Keywords, KeywordReport{Keyword: kw, Found: len(posts)})

		for _, post := range posts {
			// An empty note ID means a malformed summary we cannot
			// identify; keep it rather than collapsing all such
			// posts onto one key.
			if post.NoteID != "" {
				if byID[post.NoteID] {
					continue
				}
				byID[post.NoteID] = true
			}
			merged = append(merged, post)
		}
	}

	switch {
	case len(merged) > 0:
		report.Outcome = OutcomeFound
	case anySuccess:
		report.Outcome = OutcomeEmpty
	default:
		report.Outcome = OutcomeFailed
	}

	return merged, report
}
