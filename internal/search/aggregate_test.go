package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/xcop32221/xhs-auto-search/internal/types"
	"github.com/xcop32221/xhs-auto-search/internal/xhs"
)

// fakeSearcher returns canned results (or errors) per keyword and records
// the params it was called with.
type fakeSearcher struct {
	results map[string][]types.PostRecord
	errs    map[string]error
	calls   []xhs.SearchParams
}

func (f *fakeSearcher) SearchNotes(ctx context.Context, params xhs.SearchParams) ([]types.PostRecord, error) {
	f.calls = append(f.calls, params)
	if err, ok := f.errs[params.Keyword]; ok {
		return nil, err
	}
	return f.results[params.Keyword], nil
}

func notes(ids ...string) []types.PostRecord {
	var out []types.PostRecord
	for _, id := range ids {
		out = append(out, types.PostRecord{NoteID: id, Title: "note " + id})
	}
	return out
}

func TestAggregate_PartialFailureIsolation(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]types.PostRecord{"B": notes("b1", "b2", "b3")},
		errs:    map[string]error{"A": errors.New("connection reset")},
	}
	agg := NewAggregator(searcher, NewSeededChooser(1), "")

	candidates, report := agg.Aggregate(context.Background(), []string{"A", "B"}, 10)

	if report.Outcome != OutcomeFound {
		t.Fatalf("Expected OutcomeFound, got %v", report.Outcome)
	}
	if len(candidates) != 3 {
		t.Errorf("Expected 3 candidates from the surviving keyword, got %d", len(candidates))
	}
	if len(report.Keywords) != 2 {
		t.Fatalf("Expected 2 keyword reports, got %d", len(report.Keywords))
	}
	if report.Keywords[0].Err == nil {
		t.Error("Expected keyword A marked failed in the report")
	}
	if report.Keywords[1].Err != nil || report.Keywords[1].Found != 3 {
		t.Errorf("Expected keyword B marked succeeded with 3 found, got %+v", report.Keywords[1])
	}
}

func TestAggregate_TotalFailure(t *testing.T) {
	searcher := &fakeSearcher{
		errs: map[string]error{
			"A": errors.New("401 unauthorized"),
			"B": errors.New("timeout"),
		},
	}
	agg := NewAggregator(searcher, NewSeededChooser(1), "")

	candidates, report := agg.Aggregate(context.Background(), []string{"A", "B"}, 10)

	if report.Outcome != OutcomeFailed {
		t.Fatalf("Expected OutcomeFailed, got %v", report.Outcome)
	}
	if len(candidates) != 0 {
		t.Errorf("Expected no candidates, got %d", len(candidates))
	}
}

func TestAggregate_EmptyButSearched(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]types.PostRecord{"A": nil},
	}
	agg := NewAggregator(searcher, NewSeededChooser(1), "")

	_, report := agg.Aggregate(context.Background(), []string{"A"}, 5)

	if report.Outcome != OutcomeEmpty {
		t.Fatalf("Expected OutcomeEmpty, got %v", report.Outcome)
	}
}

func TestAggregate_DeduplicatesByNoteID(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]types.PostRecord{
			"A": notes("x1", "x2"),
			"B": notes("x2", "x3"),
		},
	}
	agg := NewAggregator(searcher, NewSeededChooser(1), "")

	candidates, _ := agg.Aggregate(context.Background(), []string{"A", "B"}, 10)

	if len(candidates) != 3 {
		t.Errorf("Expected x2 collapsed across keywords (3 unique), got %d candidates", len(candidates))
	}
}

func TestAggregate_QuotaSplit(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]types.PostRecord{}}
	agg := NewAggregator(searcher, NewSeededChooser(1), "")

	agg.Aggregate(context.Background(), []string{"A", "B", "C"}, 10)

	for _, call := range searcher.calls {
		if call.Quota != 3 {
			t.Errorf("Expected per-keyword quota 10/3=3, got %d for %s", call.Quota, call.Keyword)
		}
	}
}

func TestAggregate_QuotaFloorOfOne(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]types.PostRecord{}}
	agg := NewAggregator(searcher, NewSeededChooser(1), "")

	agg.Aggregate(context.Background(), []string{"A", "B", "C"}, 2)

	for _, call := range searcher.calls {
		if call.Quota != 1 {
			t.Errorf("Expected quota floored at 1, got %d", call.Quota)
		}
	}
}

func TestAggregate_SkipsBlankKeywords(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]types.PostRecord{"A": notes("a1")},
	}
	agg := NewAggregator(searcher, NewSeededChooser(1), "")

	_, report := agg.Aggregate(context.Background(), []string{"  ", "A", ""}, 4)

	if len(searcher.calls) != 1 {
		t.Fatalf("Expected 1 search call after trimming blanks, got %d", len(searcher.calls))
	}
	// Quota splits over the one usable keyword, not the raw list length.
	if searcher.calls[0].Quota != 4 {
		t.Errorf("Expected quota 4, got %d", searcher.calls[0].Quota)
	}
	if report.Outcome != OutcomeFound {
		t.Errorf("Expected OutcomeFound, got %v", report.Outcome)
	}
}

func TestAggregate_NoUsableKeywords(t *testing.T) {
	agg := NewAggregator(&fakeSearcher{}, NewSeededChooser(1), "")

	_, report := agg.Aggregate(context.Background(), []string{" ", ""}, 5)

	if report.Outcome != OutcomeFailed {
		t.Errorf("Expected OutcomeFailed with no usable keywords, got %v", report.Outcome)
	}
}

func TestChooser_SeededSequenceIsStable(t *testing.T) {
	a := NewSeededChooser(42)
	b := NewSeededChooser(42)

	for i := 0; i < 20; i++ {
		if a.Sort() != b.Sort() || a.Window() != b.Window() {
			t.Fatal("Expected identical sequences from equal seeds")
		}
	}
}

func TestChooser_KeywordPicksFromList(t *testing.T) {
	c := NewSeededChooser(7)
	list := []string{"a", "b", "c"}

	for i := 0; i < 10; i++ {
		picked := c.Keyword(list)
		found := false
		for _, kw := range list {
			if kw == picked {
				found = true
			}
		}
		if !found {
			t.Fatalf("Picked keyword %q not in list", picked)
		}
	}
}

func TestReport_FailureSummary(t *testing.T) {
	report := Report{
		Keywords: []KeywordReport{
			{Keyword: "A", Err: fmt.Errorf("API error (code -100): login expired")},
			{Keyword: "B", Found: 2},
		},
	}

	summary := report.FailureSummary()
	if summary != "A: API error (code -100): login expired" {
		t.Errorf("Unexpected failure summary: %q", summary)
	}
}
