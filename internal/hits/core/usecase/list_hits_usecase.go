package usecase

import (
	"context"
	"errors"

	"site-analytics-service/internal/hits/core/domain"
	"site-analytics-service/internal/hits/core/ports"
)

const (
	DefaultListLimit = 5000
	MaxListLimit     = 20000
)

var (
	ErrInvalidHitsQuery = errors.New("invalid hits query")
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrInvalidLimit     = errors.New("limit must be between 1 and 20000")
)

type ListHitsInput struct {
	SiteID  string
	StartTs int64
	EndTs   int64
	Limit   int // 0 means DefaultListLimit
}

type ListHitsUseCase struct {
	repo ports.HitRepositoryPort
}

func NewListHitsUseCase(repo ports.HitRepositoryPort) *ListHitsUseCase {
	return &ListHitsUseCase{repo: repo}
}

// Execute returns the raw hits of a site in [StartTs, EndTs], oldest first.
func (uc *ListHitsUseCase) Execute(ctx context.Context, in ListHitsInput) ([]domain.Hit, error) {
	if in.SiteID == "" {
		return nil, ErrInvalidHitsQuery
	}
	if in.StartTs > in.EndTs {
		return nil, ErrInvalidTimeRange
	}

	limit := in.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 1 || limit > MaxListLimit {
		return nil, ErrInvalidLimit
	}

	hits, err := uc.repo.ListHits(ctx, ports.HitQuery{
		SiteID: in.SiteID,
		From:   in.StartTs,
		To:     in.EndTs,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	if hits == nil {
		hits = []domain.Hit{}
	}
	return hits, nil
}
