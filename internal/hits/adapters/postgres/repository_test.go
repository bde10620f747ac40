package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"site-analytics-service/internal/hits/core/domain"
	"site-analytics-service/internal/hits/core/ports"
)

// fakeResult implements sql.Result for tests.
type fakeResult struct {
	rowsAffected int64
}

func (f *fakeResult) LastInsertId() (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeResult) RowsAffected() (int64, error) {
	return f.rowsAffected, nil
}

// fakeRows implements RowScanner over json documents.
type fakeRows struct {
	docs [][]byte
	i    int
	err  error
}

func (f *fakeRows) Next() bool {
	return f.i < len(f.docs)
}

func (f *fakeRows) Scan(dest ...any) error {
	if len(dest) != 1 {
		return errors.New("dest length mismatch")
	}
	d, ok := dest[0].(*[]byte)
	if !ok {
		return errors.New("unsupported dest type")
	}
	*d = f.docs[f.i]
	f.i++
	return nil
}

func (f *fakeRows) Err() error {
	return f.err
}

func (f *fakeRows) Close() error {
	return nil
}

// fakeDB implements DB interface for tests.
type fakeDB struct {
	ExecFn    func(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryFn   func(ctx context.Context, query string, args ...any) (RowScanner, error)
	lastQuery string
	lastArgs  []any
}

func (f *fakeDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.lastQuery = query
	f.lastArgs = args
	if f.ExecFn != nil {
		return f.ExecFn(ctx, query, args...)
	}
	return &fakeResult{rowsAffected: 1}, nil
}

func (f *fakeDB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	f.lastQuery = query
	f.lastArgs = args
	if f.QueryFn != nil {
		return f.QueryFn(ctx, query, args...)
	}
	return &fakeRows{}, nil
}

func mustJSON(t *testing.T, h domain.Hit) []byte {
	t.Helper()
	b, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

// ------------------------------------------------------------
// UPSERT
// ------------------------------------------------------------

func TestHitRepository_UpsertHit(t *testing.T) {
	db := &fakeDB{}
	repo := NewHitRepository(db)

	d := int64(4200)
	h := &domain.Hit{
		ID:         "abc_1",
		SiteID:     "site_1",
		Type:       domain.HitPageview,
		Ts:         1_700_000_000_000,
		URL:        "https://example.com/a",
		VisitorID:  "v1",
		SessionID:  "s1",
		DurationMs: &d,
		EventProps: map[string]any{"k": "v"},
		IPHash:     "deadbeef",
	}

	if err := repo.UpsertHit(context.Background(), h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(db.lastQuery, "INSERT INTO hits") || !strings.Contains(db.lastQuery, "ON CONFLICT (id) DO UPDATE") {
		t.Fatalf("expected upsert statement, got: %s", db.lastQuery)
	}
	if len(db.lastArgs) != 6 {
		t.Fatalf("expected 6 args, got %d", len(db.lastArgs))
	}
	if db.lastArgs[0] != "abc_1" || db.lastArgs[1] != "site_1" || db.lastArgs[2] != "pageview" {
		t.Fatalf("unexpected key args: %v", db.lastArgs[:3])
	}

	doc, ok := db.lastArgs[5].(string)
	if !ok {
		t.Fatalf("expected doc passed as string, got %T", db.lastArgs[5])
	}
	var back domain.Hit
	if err := json.Unmarshal([]byte(doc), &back); err != nil {
		t.Fatalf("doc is not valid json: %v", err)
	}
	if back.DurationMs == nil || *back.DurationMs != 4200 || back.IPHash != "deadbeef" {
		t.Fatalf("unexpected stored document: %+v", back)
	}
}

func TestHitRepository_UpsertHit_DBError(t *testing.T) {
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return nil, errors.New("db failure")
		},
	}
	repo := NewHitRepository(db)

	err := repo.UpsertHit(context.Background(), &domain.Hit{ID: "x"})
	if err == nil || err.Error() != "db failure" {
		t.Fatalf("expected db failure, got %v", err)
	}
}

// ------------------------------------------------------------
// LIST
// ------------------------------------------------------------

func TestHitRepository_ListHits(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return &fakeRows{docs: [][]byte{
				mustJSON(t, domain.Hit{ID: "a", Ts: 110, Type: domain.HitPageview}),
				mustJSON(t, domain.Hit{ID: "b", Ts: 120, Type: domain.HitOutbound}),
			}}, nil
		},
	}
	repo := NewHitRepository(db)

	hits, err := repo.ListHits(context.Background(), ports.HitQuery{SiteID: "site_1", From: 100, To: 200, Limit: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 2 || hits[0].ID != "a" || hits[1].Type != domain.HitOutbound {
		t.Fatalf("unexpected hits: %+v", hits)
	}
	if !strings.Contains(db.lastQuery, "ORDER BY ts ASC") {
		t.Fatalf("expected ascending order, got: %s", db.lastQuery)
	}
	if db.lastArgs[0] != "site_1" || db.lastArgs[1] != int64(100) || db.lastArgs[2] != int64(200) || db.lastArgs[3] != 50 {
		t.Fatalf("unexpected args: %v", db.lastArgs)
	}
}

func TestHitRepository_ListHits_Empty(t *testing.T) {
	repo := NewHitRepository(&fakeDB{})

	hits, err := repo.ListHits(context.Background(), ports.HitQuery{SiteID: "site_1", Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hits == nil || len(hits) != 0 {
		t.Fatalf("expected empty slice, got %#v", hits)
	}
}

func TestHitRepository_ListHits_BadDocument(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return &fakeRows{docs: [][]byte{[]byte("{not json")}}, nil
		},
	}
	repo := NewHitRepository(db)

	if _, err := repo.ListHits(context.Background(), ports.HitQuery{SiteID: "s", Limit: 1}); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestHitRepository_ListHits_RowsError(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return &fakeRows{err: errors.New("conn reset")}, nil
		},
	}
	repo := NewHitRepository(db)

	if _, err := repo.ListHits(context.Background(), ports.HitQuery{SiteID: "s", Limit: 1}); err == nil {
		t.Fatalf("expected rows error")
	}
}

// ------------------------------------------------------------
// DELETE
// ------------------------------------------------------------

func TestHitRepository_DeleteSiteHits(t *testing.T) {
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "DELETE FROM hits") {
				t.Fatalf("unexpected query: %s", query)
			}
			return &fakeResult{rowsAffected: 12}, nil
		},
	}
	repo := NewHitRepository(db)

	n, err := repo.DeleteSiteHits(context.Background(), "site_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 12 {
		t.Fatalf("expected 12 deleted, got %d", n)
	}
	if db.lastArgs[0] != "site_1" {
		t.Fatalf("unexpected args: %v", db.lastArgs)
	}
}
