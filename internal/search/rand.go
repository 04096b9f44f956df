package search

import (
	"math/rand"
	"time"

	"github.com/xcop32221/xhs-auto-search/internal/xhs"
)

var (
	sortChoices = []xhs.SortChoice{xhs.SortGeneral, xhs.SortNewest, xhs.SortHottest}
	windows     = []xhs.NoteWindow{xhs.WindowAll, xhs.WindowDay, xhs.WindowWeek}
)

// Chooser picks randomized search parameters. Repeated polls of the same
// keyword would otherwise return the same top-ranked notes every run and
// starve discovery of older or differently-ranked matches.
type Chooser struct {
	rng *rand.Rand
}

// NewChooser returns a time-seeded chooser.
func NewChooser() *Chooser {
	return NewSeededChooser(time.Now().UnixNano())
}

// NewSeededChooser returns a chooser with a fixed seed so tests can pin the
// parameter sequence.
func NewSeededChooser(seed int64) *Chooser {
	return &Chooser{rng: rand.New(rand.NewSource(seed))}
}

// Sort picks a sort order uniformly.
func (c *Chooser) Sort() xhs.SortChoice {
	return sortChoices[c.rng.Intn(len(sortChoices))]
}

// Window picks a recency window uniformly.
func (c *Chooser) Window() xhs.NoteWindow {
	return windows[c.rng.Intn(len(windows))]
}

// Keyword picks one entry from a non-empty list.
func (c *Chooser) Keyword(list []string) string {
	return list[c.rng.Intn(len(list))]
}
