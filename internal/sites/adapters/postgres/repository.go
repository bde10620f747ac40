package postgres

import (
	"context"

	"site-analytics-service/internal/sites/core/domain"
)

const (
	insertSiteSQL = `
		INSERT INTO sites (id, name, domain, created_at, is_active, session_timeout_min)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	listSitesSQL = `
		SELECT id, name, domain, created_at, is_active, session_timeout_min
		FROM sites
		ORDER BY created_at DESC
		LIMIT $1
	`
	findSiteSQL = `
		SELECT id, name, domain, created_at, is_active, session_timeout_min
		FROM sites
		WHERE id = $1
	`
	updateSiteActiveSQL = `UPDATE sites SET is_active = $2 WHERE id = $1`
	deleteSiteSQL       = `DELETE FROM sites WHERE id = $1`
)

type SiteRepository struct {
	db DB
}

func NewSiteRepository(db DB) *SiteRepository {
	return &SiteRepository{db: db}
}

func (r *SiteRepository) InsertSite(ctx context.Context, s *domain.Site) error {
	_, err := r.db.ExecContext(ctx, insertSiteSQL,
		s.ID, s.Name, s.Domain, s.CreatedAt, s.IsActive, s.SessionTimeoutMin,
	)
	return err
}

func scanSite(row RowScanner) (domain.Site, error) {
	var s domain.Site
	err := row.Scan(&s.ID, &s.Name, &s.Domain, &s.CreatedAt, &s.IsActive, &s.SessionTimeoutMin)
	return s, err
}

func (r *SiteRepository) ListSites(ctx context.Context, limit int) ([]domain.Site, error) {
	rows, err := r.db.QueryContext(ctx, listSitesSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sites := []domain.Site{}
	for rows.Next() {
		s, err := scanSite(rows)
		if err != nil {
			return nil, err
		}
		sites = append(sites, s)
	}
	return sites, rows.Err()
}

func (r *SiteRepository) FindSite(ctx context.Context, id string) (*domain.Site, error) {
	rows, err := r.db.QueryContext(ctx, findSiteSQL, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	s, err := scanSite(rows)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SiteRepository) UpdateSiteActive(ctx context.Context, id string, active bool) (bool, error) {
	res, err := r.db.ExecContext(ctx, updateSiteActiveSQL, id, active)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SiteRepository) DeleteSite(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, deleteSiteSQL, id)
	return err
}
