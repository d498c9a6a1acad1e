package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"goodnews/internal/domain"
	"goodnews/internal/ports"
)

// Maintenance runs recurring housekeeping: pruning old ledger entries and,
// when a notifier is configured, publishing a fresh curated digest.
type Maintenance struct {
	driver    ports.Scheduler
	ledger    ports.Ledger
	curator   *Curator
	notifier  ports.Notifier
	retention time.Duration
	logger    *slog.Logger
}

// NewMaintenance wires the scheduler driver with the housekeeping job.
// notifier may be nil, in which case only pruning runs.
func NewMaintenance(driver ports.Scheduler, ledger ports.Ledger, curator *Curator, notifier ports.Notifier, retention time.Duration, logger *slog.Logger) *Maintenance {
	return &Maintenance{
		driver:    driver,
		ledger:    ledger,
		curator:   curator,
		notifier:  notifier,
		retention: retention,
		logger:    logger,
	}
}

// Start registers the recurring job with the driver.
func (m *Maintenance) Start(ctx context.Context) error {
	if m.driver == nil {
		return nil
	}

	return m.driver.Start(ctx, func(trigger time.Time) {
		m.runOnce(ctx, trigger)
	})
}

// Stop gracefully tears down the underlying scheduler.
func (m *Maintenance) Stop(ctx context.Context) error {
	if m.driver == nil {
		return nil
	}

	return m.driver.Stop(ctx)
}

func (m *Maintenance) runOnce(ctx context.Context, trigger time.Time) {
	if m.ledger != nil && m.retention > 0 {
		removed, err := m.ledger.PruneBefore(ctx, trigger.Add(-m.retention))
		if err != nil {
			m.warn("ledger prune failed", "error", err)
		} else if removed > 0 {
			m.info("ledger pruned", "removed", removed)
		}
	}

	if m.notifier == nil || m.curator == nil {
		return
	}

	articles, err := m.curator.Curate(ctx)
	if err != nil {
		m.warn("digest curation failed", "error", err)
		return
	}
	if len(articles) == 0 {
		return
	}

	if err := m.notifier.PublishDigest(ctx, buildDigest(articles)); err != nil {
		m.warn("digest publish failed", "error", err)
	}
}

func buildDigest(articles []domain.Article) string {
	var b strings.Builder
	b.WriteString("Today's feel-good picks:\n\n")
	for _, a := range articles {
		fmt.Fprintf(&b, "• %s (%d/10)\n%s\n%s\n\n", a.Title, a.Rating, a.Summary, a.URL)
	}
	return strings.TrimSpace(b.String())
}

func (m *Maintenance) info(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Info(msg, args...)
	}
}

func (m *Maintenance) warn(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Warn(msg, args...)
	}
}
