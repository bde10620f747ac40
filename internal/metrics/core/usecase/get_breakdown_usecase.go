package usecase

import (
	"context"
	"errors"
	"fmt"

	hits "site-analytics-service/internal/hits/core/domain"
	"site-analytics-service/internal/metrics/core/aggregate"
	"site-analytics-service/internal/metrics/core/domain"
	"site-analytics-service/internal/metrics/core/ports"
)

const MaxBreakdownLimit = 100

var (
	ErrInvalidDimension = errors.New("invalid dimension")
	ErrInvalidLimit     = errors.New("limit must be between 1 and 100")
)

type BreakdownInput struct {
	SiteID    string
	StartTs   int64
	EndTs     int64
	Dimension string
	Limit     int // 0 means aggregate.DefaultTopN
}

type GetBreakdownUseCase struct {
	reader ports.MetricsReaderPort
}

func NewGetBreakdownUseCase(reader ports.MetricsReaderPort) *GetBreakdownUseCase {
	return &GetBreakdownUseCase{reader: reader}
}

// Execute ranks the pageviews of the range by one named dimension.
func (uc *GetBreakdownUseCase) Execute(ctx context.Context, in BreakdownInput) (*domain.Breakdown, error) {
	if err := validateRange(in.SiteID, in.StartTs, in.EndTs); err != nil {
		return nil, err
	}

	key, ok := aggregate.Dimension(in.Dimension)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDimension, in.Dimension)
	}

	limit := in.Limit
	if limit == 0 {
		limit = aggregate.DefaultTopN
	}
	if limit < 1 || limit > MaxBreakdownLimit {
		return nil, ErrInvalidLimit
	}

	pageviews, err := uc.reader.QueryHits(ctx, ports.HitFilter{
		SiteID: in.SiteID,
		Type:   hits.HitPageview,
		From:   in.StartTs,
		To:     in.EndTs,
		Limit:  MaxPageviewsLoaded,
	})
	if err != nil {
		return nil, fmt.Errorf("load pageviews: %w", err)
	}

	return &domain.Breakdown{
		SiteID:    in.SiteID,
		StartTs:   in.StartTs,
		EndTs:     in.EndTs,
		Dimension: in.Dimension,
		Items:     aggregate.TopBy(pageviews, key, limit),
	}, nil
}
