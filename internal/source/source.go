// Package source aggregates candidate-discovery strategies (search API,
// RSS feeds) behind the CandidateSource port.
package source

import (
	"context"
	"log/slog"

	"goodnews/internal/ports"
)

// Strategy produces candidate article URLs for a topic query.
type Strategy interface {
	Name() string
	Discover(ctx context.Context, query string, maxResults int) ([]string, error)
}

// MultiSource implements ports.CandidateSource over an ordered strategy list.
// Each strategy contributes URLs in its own relevance order; a failing
// strategy is logged and contributes nothing. The aggregate never errors.
type MultiSource struct {
	strategies []Strategy
	logger     *slog.Logger
}

var _ ports.CandidateSource = (*MultiSource)(nil)

// New wires the strategies in priority order.
func New(logger *slog.Logger, strategies ...Strategy) *MultiSource {
	return &MultiSource{strategies: strategies, logger: logger}
}

// Search collects up to maxResults candidate URLs, deduplicated within the
// batch, preserving strategy and relevance order.
func (s *MultiSource) Search(ctx context.Context, query string, maxResults int) []string {
	if maxResults <= 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var urls []string

	for _, strategy := range s.strategies {
		if len(urls) >= maxResults {
			break
		}

		got, err := strategy.Discover(ctx, query, maxResults-len(urls))
		if err != nil {
			s.warn("candidate strategy failed", "strategy", strategy.Name(), "error", err)
			continue
		}
		s.debug("candidate strategy done", "strategy", strategy.Name(), "count", len(got))

		for _, u := range got {
			if u == "" {
				continue
			}
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}
			urls = append(urls, u)
			if len(urls) >= maxResults {
				break
			}
		}
	}

	return urls
}

func (s *MultiSource) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

func (s *MultiSource) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
