package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	hits "site-analytics-service/internal/hits/core/domain"
	"site-analytics-service/internal/metrics/core/aggregate"
	"site-analytics-service/internal/metrics/core/domain"
	"site-analytics-service/internal/metrics/core/ports"

	"golang.org/x/sync/errgroup"
)

const (
	// MaxPageviewsLoaded caps the pageviews an overview or breakdown reads.
	MaxPageviewsLoaded = 200_000

	RealtimeWindow = 30 * time.Minute
	RealtimeLimit  = 50
	ActiveWindow   = 5 * time.Minute
)

var (
	ErrInvalidMetricsQuery = errors.New("invalid metrics query")
	ErrInvalidTimeRange    = errors.New("invalid time range")
)

type OverviewInput struct {
	SiteID  string
	StartTs int64
	EndTs   int64
}

// DurationObserver records how long an overview took. May be nil.
type DurationObserver interface {
	ObserveOverview(d time.Duration)
}

type GetOverviewUseCase struct {
	reader   ports.MetricsReaderPort
	observer DurationObserver
	now      func() time.Time
}

func NewGetOverviewUseCase(reader ports.MetricsReaderPort, observer DurationObserver) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		reader:   reader,
		observer: observer,
		now:      time.Now,
	}
}

func (uc *GetOverviewUseCase) WithClock(now func() time.Time) *GetOverviewUseCase {
	uc.now = now
	return uc
}

func validateRange(siteID string, start, end int64) error {
	if siteID == "" {
		return ErrInvalidMetricsQuery
	}
	if start < 0 || end < 0 || start > end {
		return ErrInvalidTimeRange
	}
	return nil
}

// Execute loads the pageviews of the range, the realtime feed and the active
// visitor ids concurrently, then aggregates them.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, in OverviewInput) (*domain.Overview, error) {
	if err := validateRange(in.SiteID, in.StartTs, in.EndTs); err != nil {
		return nil, err
	}

	started := uc.now()
	nowMs := started.UnixMilli()

	var (
		pageviews []hits.Hit
		realtime  []hits.Hit
		active    []string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		pageviews, err = uc.reader.QueryHits(gctx, ports.HitFilter{
			SiteID: in.SiteID,
			Type:   hits.HitPageview,
			From:   in.StartTs,
			To:     in.EndTs,
			Limit:  MaxPageviewsLoaded,
		})
		if err != nil {
			return fmt.Errorf("load pageviews: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		realtime, err = uc.reader.QueryHits(gctx, ports.HitFilter{
			SiteID:      in.SiteID,
			Type:        hits.HitPageview,
			From:        max(in.StartTs, nowMs-RealtimeWindow.Milliseconds()),
			To:          in.EndTs,
			Limit:       RealtimeLimit,
			NewestFirst: true,
		})
		if err != nil {
			return fmt.Errorf("load realtime: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		active, err = uc.reader.DistinctVisitors(gctx, ports.HitFilter{
			SiteID: in.SiteID,
			Type:   hits.HitPageview,
			From:   max(in.StartTs, nowMs-ActiveWindow.Milliseconds()),
			To:     in.EndTs,
		})
		if err != nil {
			return fmt.Errorf("load active visitors: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if realtime == nil {
		realtime = []hits.Hit{}
	}

	out := &domain.Overview{
		SiteID:         in.SiteID,
		StartTs:        in.StartTs,
		EndTs:          in.EndTs,
		KPIs:           aggregate.ComputeKPIs(pageviews),
		Series:         aggregate.DailySeries(pageviews),
		Realtime:       realtime,
		ActiveVisitors: len(active),
		TopPages:       aggregate.TopBy(pageviews, func(h *hits.Hit) string { return h.URL }, aggregate.DefaultTopN),
	}

	if uc.observer != nil {
		uc.observer.ObserveOverview(uc.now().Sub(started))
	}
	return out, nil
}
