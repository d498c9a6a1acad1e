package domain

import "time"

// Page is the raw result of downloading and extracting a single URL.
type Page struct {
	URL   string
	Title string
	Body  string
}

// Article is a curated feel-good article as returned to callers.
type Article struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
	Rating  int    `json:"rating"`
}

// Description is the result of summarizing a single caller-supplied URL.
type Description struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// LedgerEntry records a URL the pipeline has already processed.
type LedgerEntry struct {
	URL       string
	WatchedAt time.Time
}

// CandidateState enumerates the terminal states of the per-candidate pipeline.
type CandidateState int

const (
	// CandidateSkipped means the ledger already contained the URL; no fetch happened.
	CandidateSkipped CandidateState = iota
	// CandidateRejected means fetch or extraction failed; the candidate was dropped.
	CandidateRejected
	// CandidateAccepted means the article was rated and added to the result set.
	CandidateAccepted
)

func (s CandidateState) String() string {
	switch s {
	case CandidateSkipped:
		return "skipped"
	case CandidateRejected:
		return "rejected"
	case CandidateAccepted:
		return "accepted"
	default:
		return "unknown"
	}
}

// Outcome captures what happened to one candidate URL, making the
// per-candidate state machine explicit instead of relying on caught errors.
type Outcome struct {
	URL     string
	State   CandidateState
	Reason  error
	Article *Article
}
