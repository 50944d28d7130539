// Package collector appends one daily snapshot row per run.
package collector

import (
	"context"
	"fmt"
	"time"

	"yt-tracker/internal/config"
	"yt-tracker/internal/core/snapshot"
	"yt-tracker/internal/domain"
	"yt-tracker/internal/logger"
)

type Options struct {
	TableID   string
	ChannelID string
	// HeaderPolicy is config.HeaderPolicyReset or config.HeaderPolicyFail.
	HeaderPolicy string
	Now          func() time.Time
}

type Service struct {
	fetcher  domain.CountersFetcher
	provider domain.TableProvider
	opts     Options
	log      logger.Logger
}

func NewService(fetcher domain.CountersFetcher, provider domain.TableProvider, opts Options, log logger.Logger) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.HeaderPolicy == "" {
		opts.HeaderPolicy = config.HeaderPolicyReset
	}

	return &Service{
		fetcher:  fetcher,
		provider: provider,
		opts:     opts,
		log:      log,
	}
}

// Run fetches the counters, makes sure the table has the expected header
// and appends today's row. The counters are fetched before the table is
// touched, so a failed fetch leaves the table as it was.
func (s *Service) Run(ctx context.Context) (domain.DailySnapshot, error) {
	counters, err := s.fetcher.FetchCounters(ctx, s.opts.ChannelID)
	if err != nil {
		return domain.DailySnapshot{}, fmt.Errorf("fetch counters: %w", err)
	}

	s.log.Info("counters fetched",
		"channel_id", s.opts.ChannelID,
		"views", counters.Views,
		"subscribers", counters.Subscribers,
		"videos", counters.Videos,
	)

	table, err := s.provider.Open(ctx, s.opts.TableID)
	if err != nil {
		return domain.DailySnapshot{}, fmt.Errorf("open table: %w", err)
	}

	if err := s.ensureHeader(ctx, table); err != nil {
		return domain.DailySnapshot{}, err
	}

	rows, err := table.ReadAll(ctx)
	if err != nil {
		return domain.DailySnapshot{}, fmt.Errorf("read table: %w", err)
	}

	prev, hasPrev := snapshot.PreviousTotal(rows)
	if !hasPrev && len(rows) > 1 {
		s.log.Warn("previous total unreadable, daily delta set to 0", "row", len(rows))
	}

	snap := snapshot.New(s.opts.Now(), counters, prev, hasPrev)

	if err := table.Append(ctx, snap.Cells(), domain.InputUserEntered); err != nil {
		return domain.DailySnapshot{}, fmt.Errorf("append row: %w", err)
	}

	s.log.Info("snapshot appended",
		"date", snap.Date.Format(domain.DateLayout),
		"total_views", snap.TotalViews,
		"daily_delta", snap.DailyDelta,
	)

	return snap, nil
}

// ensureHeader checks row 1. With the reset policy a mismatch wipes the
// whole table before the header is rewritten; nothing is backed up.
func (s *Service) ensureHeader(ctx context.Context, table domain.Table) error {
	rows, err := table.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	var first []string
	if len(rows) > 0 {
		first = rows[0]
	}

	if snapshot.HeaderMatches(first) {
		return nil
	}

	if s.opts.HeaderPolicy == config.HeaderPolicyFail {
		s.log.Error("table header mismatch, refusing to reset",
			"found", first,
			"rows", len(rows),
		)
		return fmt.Errorf("%w: found %q, want %q (set HEADER_POLICY=reset to clear the table)", domain.ErrHeaderMismatch, first, domain.Header)
	}

	s.log.Warn("table header mismatch, clearing table",
		"found", first,
		"rows_discarded", len(rows),
	)

	if err := table.Clear(ctx); err != nil {
		return fmt.Errorf("clear table: %w", err)
	}

	header := make([]any, len(domain.Header))
	for i, h := range domain.Header {
		header[i] = h
	}

	if err := table.Append(ctx, header, domain.InputRaw); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	return nil
}
