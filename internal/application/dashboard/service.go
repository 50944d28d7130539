// Package dashboard reads the snapshot table for the viewer. Every call
// reads the table again; nothing is cached between calls.
package dashboard

import (
	"context"
	"fmt"

	"yt-tracker/internal/core/snapshot"
	"yt-tracker/internal/domain"
	"yt-tracker/internal/logger"
)

// Observer is told about every table read. The HTTP layer uses it for metrics.
type Observer interface {
	TableRead(usable, dropped int, err error)
}

type Service struct {
	provider domain.TableProvider
	tableID  string
	log      logger.Logger
	obs      Observer
}

func NewService(provider domain.TableProvider, tableID string, obs Observer, log logger.Logger) *Service {
	return &Service{
		provider: provider,
		tableID:  tableID,
		log:      log,
		obs:      obs,
	}
}

// Load returns every usable record, oldest first, and the latest one.
// domain.ErrEmptyTable means there is nothing to show yet.
func (s *Service) Load(ctx context.Context) (*domain.Dashboard, error) {
	records, dropped, err := s.read(ctx)
	if s.obs != nil {
		s.obs.TableRead(len(records), dropped, err)
	}
	if err != nil {
		return nil, err
	}

	if dropped > 0 {
		s.log.Warn("dropped rows with unreadable dates", "count", dropped)
	}

	if len(records) == 0 {
		return nil, domain.ErrEmptyTable
	}

	return &domain.Dashboard{
		Records: records,
		Latest:  records[len(records)-1],
	}, nil
}

func (s *Service) Series(ctx context.Context, m domain.Metric) (domain.Series, error) {
	d, err := s.Load(ctx)
	if err != nil {
		return domain.Series{}, err
	}
	return snapshot.SeriesOf(d.Records, m), nil
}

func (s *Service) read(ctx context.Context) ([]domain.Record, int, error) {
	table, err := s.provider.Open(ctx, s.tableID)
	if err != nil {
		return nil, 0, fmt.Errorf("open table: %w", err)
	}

	rows, err := table.ReadAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("read table: %w", err)
	}

	records, dropped := snapshot.Records(rows)
	return records, dropped, nil
}

// Cards are the four summary tiles for the latest record.
func Cards(latest domain.Record) []domain.Card {
	cards := make([]domain.Card, 0, len(domain.AllMetrics))
	for _, m := range domain.AllMetrics {
		cards = append(cards, domain.Card{
			Title: cardTitle(m),
			Value: snapshot.Format(m.Of(latest)),
		})
	}
	return cards
}

func cardTitle(m domain.Metric) string {
	switch m {
	case domain.MetricTotalViews:
		return "Toplam İzlenme"
	case domain.MetricDailyDelta:
		return "Günlük Artış"
	case domain.MetricSubscribers:
		return "Abone"
	case domain.MetricVideos:
		return "Video"
	}
	return string(m)
}
