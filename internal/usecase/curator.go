package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"goodnews/internal/config"
	"goodnews/internal/domain"
	"goodnews/internal/ports"
	"goodnews/internal/rating"
	"goodnews/internal/summary"
)

// CuratorDeps wires all driven adapters into the curation pipeline.
type CuratorDeps struct {
	Source     ports.CandidateSource
	Ledger     ports.Ledger
	Fetcher    ports.ArticleFetcher
	Summarizer ports.Summarizer
	Logger     *slog.Logger
}

// Curator drives candidate discovery, deduplication, fetching, rating, and
// summarization into a bounded, ordered result list. Per-candidate failures
// never escape it; only empty discovery and ledger failures do.
type Curator struct {
	source     ports.CandidateSource
	ledger     ports.Ledger
	fetcher    ports.ArticleFetcher
	summarizer ports.Summarizer
	logger     *slog.Logger

	query       string
	targetCount int
	poolSize    int
}

// NewCurator constructs the orchestration component.
func NewCurator(cfg config.CurationConfig, deps CuratorDeps) *Curator {
	return &Curator{
		source:      deps.Source,
		ledger:      deps.Ledger,
		fetcher:     deps.Fetcher,
		summarizer:  deps.Summarizer,
		logger:      deps.Logger,
		query:       cfg.Query,
		targetCount: cfg.TargetCount,
		poolSize:    cfg.PoolSize,
	}
}

// Curate runs one curation pass and returns up to targetCount articles in
// discovery order. Fewer than targetCount is not an error. Returns
// domain.ErrNoCandidates when discovery yields nothing, and *domain.StoreError
// when the ledger is unreachable.
func (c *Curator) Curate(ctx context.Context) ([]domain.Article, error) {
	urls := c.source.Search(ctx, c.query, c.poolSize)
	if len(urls) == 0 {
		return nil, domain.ErrNoCandidates
	}
	c.debug("candidates discovered", "count", len(urls))

	articles := make([]domain.Article, 0, c.targetCount)
	for _, url := range urls {
		if len(articles) >= c.targetCount {
			break
		}

		outcome, err := c.processCandidate(ctx, url)
		if err != nil {
			return nil, err
		}

		switch outcome.State {
		case domain.CandidateAccepted:
			articles = append(articles, *outcome.Article)
			c.debug("candidate accepted", "url", url, "rating", outcome.Article.Rating, "collected", len(articles))
		case domain.CandidateSkipped:
			c.debug("candidate skipped, already seen", "url", url)
		case domain.CandidateRejected:
			c.warn("candidate rejected", "url", url, "reason", outcome.Reason)
		}
	}

	if len(articles) < c.targetCount {
		c.warn("collected fewer articles than requested", "collected", len(articles), "target", c.targetCount)
	}

	return articles, nil
}

// processCandidate runs the per-candidate state machine. The returned error is
// non-nil only for ledger failures, which abort the whole run.
func (c *Curator) processCandidate(ctx context.Context, url string) (domain.Outcome, error) {
	seen, err := c.ledger.Seen(ctx, url)
	if err != nil {
		return domain.Outcome{}, err
	}
	if seen {
		return domain.Outcome{URL: url, State: domain.CandidateSkipped}, nil
	}

	page, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return domain.Outcome{URL: url, State: domain.CandidateRejected, Reason: err}, nil
	}

	article := &domain.Article{
		Title:   page.Title,
		Summary: c.summarizer.Summarize(ctx, page.Body, ""),
		URL:     url,
		Rating:  rating.Score(page.Body),
	}

	if err := c.ledger.MarkSeen(ctx, url); err != nil {
		return domain.Outcome{}, err
	}

	return domain.Outcome{URL: url, State: domain.CandidateAccepted, Article: article}, nil
}

// Describe fetches a single caller-supplied URL and returns a short teaser
// for it. A fetch failure is the caller's problem here: it surfaces as
// domain.ErrInvalidInput and the generative service is never invoked.
func (c *Curator) Describe(ctx context.Context, url string) (domain.Description, error) {
	page, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return domain.Description{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	return domain.Description{
		URL:         url,
		Description: c.summarizer.Summarize(ctx, page.Body, summary.TeaserInstruction),
	}, nil
}

func (c *Curator) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func (c *Curator) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
