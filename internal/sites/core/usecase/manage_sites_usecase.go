package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"site-analytics-service/internal/sites/core/domain"
	"site-analytics-service/internal/sites/core/ports"

	"github.com/google/uuid"
)

const MaxListSites = 1000

var (
	ErrInvalidSiteInput = errors.New("invalid site input")
	ErrSiteNotFound     = errors.New("site not found")
)

type CreateSiteInput struct {
	Name              string
	Domain            string
	SessionTimeoutMin int // 0 means DefaultSessionTimeoutMin
}

type ManageSitesUseCase struct {
	repo  ports.SiteRepositoryPort
	hits  ports.HitPurgerPort
	now   func() time.Time
	newID func() string
}

func NewManageSitesUseCase(repo ports.SiteRepositoryPort, hits ports.HitPurgerPort) *ManageSitesUseCase {
	return &ManageSitesUseCase{
		repo:  repo,
		hits:  hits,
		now:   time.Now,
		newID: newSiteID,
	}
}

func (uc *ManageSitesUseCase) WithClock(now func() time.Time) *ManageSitesUseCase {
	uc.now = now
	return uc
}

func newSiteID() string {
	return "site_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func (uc *ManageSitesUseCase) Create(ctx context.Context, in CreateSiteInput) (*domain.Site, error) {
	name := strings.TrimSpace(in.Name)
	host := strings.TrimSpace(in.Domain)
	if name == "" || host == "" || in.SessionTimeoutMin < 0 {
		return nil, ErrInvalidSiteInput
	}

	timeout := in.SessionTimeoutMin
	if timeout == 0 {
		timeout = domain.DefaultSessionTimeoutMin
	}

	s := &domain.Site{
		ID:                uc.newID(),
		Name:              name,
		Domain:            host,
		CreatedAt:         uc.now().UnixMilli(),
		IsActive:          true,
		SessionTimeoutMin: timeout,
	}

	if err := uc.repo.InsertSite(ctx, s); err != nil {
		return nil, fmt.Errorf("insert site: %w", err)
	}
	return s, nil
}

func (uc *ManageSitesUseCase) List(ctx context.Context) ([]domain.Site, error) {
	sites, err := uc.repo.ListSites(ctx, MaxListSites)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	if sites == nil {
		sites = []domain.Site{}
	}
	return sites, nil
}

func (uc *ManageSitesUseCase) SetActive(ctx context.Context, id string, active bool) error {
	found, err := uc.repo.UpdateSiteActive(ctx, id, active)
	if err != nil {
		return fmt.Errorf("update site %s: %w", id, err)
	}
	if !found {
		return ErrSiteNotFound
	}
	return nil
}

// Delete removes the site and then all of its hits. Deleting an unknown id is
// not an error. The site goes first so that no new hits are accepted while the
// purge runs.
func (uc *ManageSitesUseCase) Delete(ctx context.Context, id string) (int64, error) {
	if err := uc.repo.DeleteSite(ctx, id); err != nil {
		return 0, fmt.Errorf("delete site %s: %w", id, err)
	}

	n, err := uc.hits.DeleteSiteHits(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("purge hits of site %s: %w", id, err)
	}
	return n, nil
}

// IsSiteActive reports whether hits may be collected for the site.
func (uc *ManageSitesUseCase) IsSiteActive(ctx context.Context, id string) (bool, error) {
	s, err := uc.repo.FindSite(ctx, id)
	if err != nil {
		return false, err
	}
	return s != nil && s.IsActive, nil
}
