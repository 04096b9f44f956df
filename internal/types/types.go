package types

// PostRecord is one Xiaohongshu note as returned by the search or detail
// endpoints. The two endpoints populate different field subsets, so absent
// fields simply stay at their zero values.
type PostRecord struct {
	NoteID       string
	XsecToken    string
	Title        string
	Author       string
	Description  string
	LikeCount    int
	CommentCount int
	CollectCount int
	Tags         []string
	ImageCount   int
	HasVideo     bool
	PublishTime  string
	URL          string
}

// Verdict is the classifier's decision for one unseen candidate.
type Verdict int

const (
	VerdictAccept Verdict = iota
	VerdictReject
)

func (v Verdict) String() string {
	if v == VerdictReject {
		return "REJECT"
	}
	return "ACCEPT"
}

// RunStats holds the counters reported in the end-of-run summary
// notification. New counts every candidate adjudicated this run, accepted
// or rejected.
type RunStats struct {
	Keywords  []string
	Fetched   int
	New       int
	Accepted  int
	Rejected  int
	SeenTotal int
}
