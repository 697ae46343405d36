// Package watch periodically re-checks the tokens on the watchlist and raises
// alerts when one of them changes for the worse.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	robfigcron "github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"github.com/tokenguard/tokenguard/internal/adapter"
	"github.com/tokenguard/tokenguard/internal/schema"
	"github.com/tokenguard/tokenguard/internal/store"
)

// History is the part of the store the watcher reads and writes.
type History interface {
	ListWatches(ctx context.Context) ([]store.WatchEntry, error)
	LatestSnapshot(ctx context.Context, address string, kind store.Kind) (*store.Snapshot, error)
	RecordSnapshot(ctx context.Context, s store.Snapshot) (int64, error)
}

// Alerter delivers alerts.
type Alerter interface {
	Notify(ctx context.Context, alert schema.Alert) error
}

// Service runs the watchlist check on a cron schedule.
type Service struct {
	history   History
	risk      *adapter.TokenRisk
	holders   *adapter.HolderConcentration
	alerter   Alerter
	schedule  string
	riskDelta decimal.Decimal
	now       func() time.Time
}

// NewService creates a watch Service. schedule is a standard cron
// expression or descriptor such as "@every 5m"; riskDelta defaults to 2.
func NewService(
	history History,
	risk *adapter.TokenRisk,
	holders *adapter.HolderConcentration,
	alerter Alerter,
	schedule string,
	riskDelta float64,
) *Service {
	if schedule == "" {
		schedule = "@every 5m"
	}
	if riskDelta <= 0 {
		riskDelta = 2
	}
	return &Service{
		history:   history,
		risk:      risk,
		holders:   holders,
		alerter:   alerter,
		schedule:  schedule,
		riskDelta: decimal.NewFromFloat(riskDelta),
		now:       time.Now,
	}
}

// Start schedules the check and blocks until ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	sched, err := robfigcron.ParseStandard(s.schedule)
	if err != nil {
		return fmt.Errorf("watch: invalid schedule %q: %w", s.schedule, err)
	}

	c := robfigcron.New(robfigcron.WithChain(robfigcron.SkipIfStillRunning(robfigcron.DefaultLogger)))
	c.Schedule(sched, robfigcron.FuncJob(func() {
		if _, err := s.RunOnce(ctx); err != nil {
			slog.Error("watch: run failed", "err", err)
		}
	}))
	c.Start()
	slog.Info("watch: started", "schedule", s.schedule)

	<-ctx.Done()

	<-c.Stop().Done()
	slog.Info("watch: stopped")
	return ctx.Err()
}

// RunOnce checks every watched token once and returns the alerts raised.
// A failing token is logged and skipped.
func (s *Service) RunOnce(ctx context.Context) ([]schema.Alert, error) {
	entries, err := s.history.ListWatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list watches: %w", err)
	}

	var alerts []schema.Alert
	for _, e := range entries {
		if ctx.Err() != nil {
			return alerts, ctx.Err()
		}
		alert, err := s.Check(ctx, e)
		if err != nil {
			slog.Warn("watch: check failed", "token", e.Address, "err", err)
		}
		if alert == nil {
			continue
		}
		alerts = append(alerts, *alert)
		if s.alerter != nil {
			_ = s.alerter.Notify(ctx, *alert)
		}
	}
	slog.Debug("watch: run complete", "tokens", len(entries), "alerts", len(alerts))
	return alerts, nil
}

// Check takes fresh snapshots of one token, compares them with the previous
// ones and records them. It returns nil when nothing got worse.
func (s *Service) Check(ctx context.Context, e store.WatchEntry) (*schema.Alert, error) {
	var (
		reasons []string
		errs    []error
	)

	if snap, err := s.risk.Snapshot(ctx, e.Address); err != nil {
		errs = append(errs, err)
	} else {
		// Without the previous snapshot every token would look new.
		if prev, err := s.history.LatestSnapshot(ctx, e.Address, store.KindRisk); err != nil {
			errs = append(errs, fmt.Errorf("previous risk snapshot: %w", err))
		} else {
			reasons = append(reasons, RiskChanges(prev, snap, s.riskDelta)...)
		}
		row := store.TokenSnapshotRow(snap, adapter.FormatTokenRisk(snap))
		row.CreatedAt = s.now()
		if _, err := s.history.RecordSnapshot(ctx, row); err != nil {
			errs = append(errs, err)
		}
	}

	if report, err := s.holders.Analyze(ctx, e.Address); err != nil {
		errs = append(errs, err)
	} else {
		if prev, err := s.history.LatestSnapshot(ctx, e.Address, store.KindHolders); err != nil {
			errs = append(errs, fmt.Errorf("previous holder snapshot: %w", err))
		} else {
			reasons = append(reasons, HolderChanges(prev, report)...)
		}
		row := store.HolderReportRow(report, adapter.FormatHolderReport(report))
		row.CreatedAt = s.now()
		if _, err := s.history.RecordSnapshot(ctx, row); err != nil {
			errs = append(errs, err)
		}
	}

	var alert *schema.Alert
	if len(reasons) > 0 {
		alert = &schema.Alert{Address: e.Address, Label: e.Label, Reasons: reasons, At: s.now()}
	}
	return alert, errors.Join(errs...)
}

// RiskChanges lists what got worse between prev and cur. A token seen rugged
// for the first time is reported even without a previous snapshot.
func RiskChanges(prev *store.Snapshot, cur *schema.TokenSnapshot, delta decimal.Decimal) []string {
	var reasons []string
	if cur.Rugged && (prev == nil || !prev.Rugged) {
		reasons = append(reasons, "token has been rugged")
	}
	if prev != nil && prev.RiskScore.Valid && cur.RiskScore.Valid {
		rise := cur.RiskScore.Decimal.Sub(prev.RiskScore.Decimal)
		if rise.GreaterThanOrEqual(delta) {
			reasons = append(reasons, fmt.Sprintf("risk score rose from %s to %s",
				prev.RiskScore.Decimal.String(), cur.RiskScore.Decimal.String()))
		}
	}
	return reasons
}

// HolderChanges reports the top holders crossing the aggregate limit. The
// first observation only sets the baseline.
func HolderChanges(prev *store.Snapshot, cur *schema.HolderReport) []string {
	if prev == nil || !prev.TopTotal.Valid || !cur.Concentrated {
		return nil
	}
	if adapter.ExceedsAggregate(prev.TopTotal.Decimal) {
		return nil
	}
	return []string{fmt.Sprintf("top %d holders now own %s%% of supply (was %s%%)",
		len(cur.Holders), cur.TopTotal.StringFixed(2), prev.TopTotal.Decimal.StringFixed(2))}
}
