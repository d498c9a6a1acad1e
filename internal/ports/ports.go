package ports

import (
	"context"
	"time"

	"goodnews/internal/domain"
)

// CandidateSource proposes article URLs for a topic query. Backend failures
// are absorbed: implementations log and return an empty (or shorter) list
// rather than an error. maxResults is a pool-size hint, not a guarantee.
type CandidateSource interface {
	Search(ctx context.Context, query string, maxResults int) []string
}

// Ledger is the persistent record of URLs already processed. MarkSeen is
// idempotent. Implementations wrap backend failures in *domain.StoreError.
type Ledger interface {
	Seen(ctx context.Context, url string) (bool, error)
	MarkSeen(ctx context.Context, url string) error
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ArticleFetcher downloads a URL and extracts title and body text. Failures
// are reported as *domain.FetchError.
type ArticleFetcher interface {
	Fetch(ctx context.Context, url string) (domain.Page, error)
}

// Generator runs a single prompt through an external generative-text service.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Summarizer rewrites article text into a short upbeat summary. It never
// fails: when the generative backend is unavailable it falls back to a
// deterministic truncation. instruction optionally refines the base prompt.
type Summarizer interface {
	Summarize(ctx context.Context, text, instruction string) string
}

// Notifier delivers curated digests to an external channel.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when recurring maintenance jobs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
