// Package feeds provides an RSS/Atom candidate strategy for pre-curated
// feel-good sources. Unlike the search strategy, feeds carry no query: the
// feed itself is the topic filter.
package feeds

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"

	"goodnews/internal/source"
)

// FeedStrategy yields item links from a single configured feed, in feed order.
type FeedStrategy struct {
	name    string
	feedURL string
	parser  *gofeed.Parser
}

var _ source.Strategy = (*FeedStrategy)(nil)

// NewFeedStrategy wires one feed endpoint.
func NewFeedStrategy(name, feedURL string) *FeedStrategy {
	return &FeedStrategy{
		name:    name,
		feedURL: feedURL,
		parser:  gofeed.NewParser(),
	}
}

// Name identifies the strategy inside the aggregate source.
func (f *FeedStrategy) Name() string {
	return "feed/" + f.name
}

// Discover parses the feed and returns up to maxResults item links.
func (f *FeedStrategy) Discover(ctx context.Context, _ string, maxResults int) ([]string, error) {
	feed, err := f.parser.ParseURLWithContext(f.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", f.feedURL, err)
	}

	urls := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}
		urls = append(urls, item.Link)
		if len(urls) >= maxResults {
			break
		}
	}

	return urls, nil
}
