package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"site-analytics-service/internal/hits/core/domain"
	"site-analytics-service/internal/hits/core/ports"
	"site-analytics-service/internal/privacy"

	"github.com/google/uuid"
)

const MaxBatchSize = 100

var (
	ErrInvalidHit    = errors.New("invalid hit")
	ErrRateLimited   = errors.New("rate limited")
	ErrInvalidSite   = errors.New("invalid site")
	ErrBatchTooLarge = errors.New("batch too large")
)

// RequestMeta carries what the transport knows about the caller.
type RequestMeta struct {
	DoNotTrack   bool
	ForwardedFor string
	PeerIP       string
}

type CollectHitInput struct {
	Meta RequestMeta
	Hit  domain.Hit
}

type CollectHitResult struct {
	// Stored is false when the hit was dropped because of Do-Not-Track.
	Stored bool
	ID     string
}

type CollectHitUseCase struct {
	repo    ports.HitRepositoryPort
	sites   ports.SiteCheckerPort
	limiter ports.RateLimiterPort

	now   func() time.Time
	newID func() string
}

func NewCollectHitUseCase(
	repo ports.HitRepositoryPort,
	sites ports.SiteCheckerPort,
	limiter ports.RateLimiterPort,
) *CollectHitUseCase {
	return &CollectHitUseCase{
		repo:    repo,
		sites:   sites,
		limiter: limiter,
		now:     time.Now,
		newID:   newHitID,
	}
}

// WithClock replaces the wall clock, mainly for tests.
func (uc *CollectHitUseCase) WithClock(now func() time.Time) *CollectHitUseCase {
	uc.now = now
	return uc
}

// Execute runs a single hit through the ingestion pipeline. Do-Not-Track
// short-circuits before anything else, including validation and rate limiting.
func (uc *CollectHitUseCase) Execute(ctx context.Context, in CollectHitInput) (CollectHitResult, error) {
	if in.Meta.DoNotTrack {
		return CollectHitResult{}, nil
	}

	h := in.Hit
	h.StripNUL()
	if err := uc.validateInput(h); err != nil {
		return CollectHitResult{}, err
	}

	return uc.collect(ctx, in.Meta, h)
}

func (uc *CollectHitUseCase) collect(ctx context.Context, meta RequestMeta, h domain.Hit) (CollectHitResult, error) {
	nowMs := uc.now().UnixMilli()
	ip := privacy.ClientIP(meta.ForwardedFor, meta.PeerIP)

	if !uc.limiter.Allow(h.SiteID+":"+ip, nowMs) {
		return CollectHitResult{}, ErrRateLimited
	}

	active, err := uc.sites.IsSiteActive(ctx, h.SiteID)
	if err != nil {
		return CollectHitResult{}, fmt.Errorf("check site %s: %w", h.SiteID, err)
	}
	if !active {
		return CollectHitResult{}, ErrInvalidSite
	}

	if h.ID == "" {
		h.ID = uc.newID()
	}
	h.IPHash = privacy.IPHash(ip, h.SiteID)
	h.Truncate()

	// Last write wins for concurrent upserts of the same id.
	if err := uc.repo.UpsertHit(ctx, &h); err != nil {
		return CollectHitResult{}, fmt.Errorf("upsert hit %s: %w", h.ID, err)
	}

	return CollectHitResult{Stored: true, ID: h.ID}, nil
}

// newHitID returns "h_" followed by 32 hex chars. Tracker ids contain an
// underscore-separated millisecond suffix and never use this prefix.
func newHitID() string {
	return "h_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

type CollectBatchInput struct {
	Meta RequestMeta
	Hits []domain.Hit
}

type CollectBatchResult struct {
	Stored  int
	Skipped int
}

// CollectBatch validates every hit and checks every distinct site before
// storing any of them, then runs each through the single-hit pipeline. Each
// hit consumes one rate limit slot. When a hit fails midway, Stored counts
// the hits already written.
func (uc *CollectHitUseCase) CollectBatch(ctx context.Context, in CollectBatchInput) (CollectBatchResult, error) {
	var res CollectBatchResult

	if len(in.Hits) > MaxBatchSize {
		return res, ErrBatchTooLarge
	}

	if in.Meta.DoNotTrack {
		res.Skipped = len(in.Hits)
		return res, nil
	}

	hits := make([]domain.Hit, len(in.Hits))
	for i, h := range in.Hits {
		h.StripNUL()
		if err := uc.validateInput(h); err != nil {
			return res, err
		}
		hits[i] = h
	}

	if err := uc.checkSites(ctx, hits); err != nil {
		return res, err
	}

	for _, h := range hits {
		if _, err := uc.collect(ctx, in.Meta, h); err != nil {
			return res, err
		}
		res.Stored++
	}

	return res, nil
}

func (uc *CollectHitUseCase) checkSites(ctx context.Context, hits []domain.Hit) error {
	seen := make(map[string]struct{}, 1)
	for _, h := range hits {
		if _, ok := seen[h.SiteID]; ok {
			continue
		}
		seen[h.SiteID] = struct{}{}

		active, err := uc.sites.IsSiteActive(ctx, h.SiteID)
		if err != nil {
			return fmt.Errorf("check site %s: %w", h.SiteID, err)
		}
		if !active {
			return ErrInvalidSite
		}
	}
	return nil
}

func (uc *CollectHitUseCase) validateInput(h domain.Hit) error {
	if strings.TrimSpace(h.SiteID) == "" || !h.Type.Valid() || h.Ts <= 0 {
		return ErrInvalidHit
	}
	return nil
}
