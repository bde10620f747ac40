package fiber

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"site-analytics-service/internal/sites/core/domain"
	"site-analytics-service/internal/sites/core/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type fakeSitesUseCase struct {
	CreateFunc    func(ctx context.Context, in usecase.CreateSiteInput) (*domain.Site, error)
	ListFunc      func(ctx context.Context) ([]domain.Site, error)
	SetActiveFunc func(ctx context.Context, id string, active bool) error
	DeleteFunc    func(ctx context.Context, id string) (int64, error)

	LastCreateInput usecase.CreateSiteInput
	LastID          string
	LastActive      bool
}

func (f *fakeSitesUseCase) Create(ctx context.Context, in usecase.CreateSiteInput) (*domain.Site, error) {
	f.LastCreateInput = in
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, in)
	}
	return &domain.Site{ID: "site_000000000001", Name: in.Name, Domain: in.Domain, IsActive: true}, nil
}

func (f *fakeSitesUseCase) List(ctx context.Context) ([]domain.Site, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx)
	}
	return []domain.Site{}, nil
}

func (f *fakeSitesUseCase) SetActive(ctx context.Context, id string, active bool) error {
	f.LastID = id
	f.LastActive = active
	if f.SetActiveFunc != nil {
		return f.SetActiveFunc(ctx, id, active)
	}
	return nil
}

func (f *fakeSitesUseCase) Delete(ctx context.Context, id string) (int64, error) {
	f.LastID = id
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return 0, nil
}

func setupTestApp(uc ManageSitesUseCase) *fiber.App {
	app := fiber.New()
	h := NewSiteHandler(uc, zap.NewNop())

	app.Get("/sites", h.ListSites)
	app.Post("/sites", h.CreateSite)
	app.Patch("/sites/:id", h.UpdateSite)
	app.Delete("/sites/:id", h.DeleteSite)

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		buf = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	_ = resp.Body.Close()

	return resp, respBody
}

func TestCreateSite_Success(t *testing.T) {
	uc := &fakeSitesUseCase{}
	app := setupTestApp(uc)

	resp, body := doRequest(t, app, http.MethodPost, "/sites", CreateSiteRequest{Name: "Blog", Domain: "blog.test"})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusOK, resp.StatusCode, string(body))
	}

	var site domain.Site
	if err := json.Unmarshal(body, &site); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if site.ID == "" || site.Name != "Blog" || !site.IsActive {
		t.Errorf("unexpected site: %+v", site)
	}
	if uc.LastCreateInput.Domain != "blog.test" {
		t.Errorf("unexpected input: %+v", uc.LastCreateInput)
	}
}

func TestCreateSite_InvalidInput(t *testing.T) {
	uc := &fakeSitesUseCase{
		CreateFunc: func(ctx context.Context, in usecase.CreateSiteInput) (*domain.Site, error) {
			return nil, usecase.ErrInvalidSiteInput
		},
	}
	app := setupTestApp(uc)

	resp, body := doRequest(t, app, http.MethodPost, "/sites", CreateSiteRequest{Name: ""})

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusBadRequest, resp.StatusCode, string(body))
	}
}

func TestCreateSite_InternalError(t *testing.T) {
	uc := &fakeSitesUseCase{
		CreateFunc: func(ctx context.Context, in usecase.CreateSiteInput) (*domain.Site, error) {
			return nil, errors.New("db error")
		},
	}
	app := setupTestApp(uc)

	resp, _ := doRequest(t, app, http.MethodPost, "/sites", CreateSiteRequest{Name: "a", Domain: "a.test"})

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, resp.StatusCode)
	}
}

func TestListSites(t *testing.T) {
	uc := &fakeSitesUseCase{
		ListFunc: func(ctx context.Context) ([]domain.Site, error) {
			return []domain.Site{{ID: "site_b"}, {ID: "site_a"}}, nil
		},
	}
	app := setupTestApp(uc)

	resp, body := doRequest(t, app, http.MethodGet, "/sites", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	var sites []domain.Site
	if err := json.Unmarshal(body, &sites); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if len(sites) != 2 || sites[0].ID != "site_b" {
		t.Errorf("unexpected sites: %+v", sites)
	}
}

func TestListSites_EmptyIsArray(t *testing.T) {
	app := setupTestApp(&fakeSitesUseCase{})

	_, body := doRequest(t, app, http.MethodGet, "/sites", nil)

	if string(body) != "[]" {
		t.Errorf("expected [], got %s", string(body))
	}
}

func TestUpdateSite(t *testing.T) {
	uc := &fakeSitesUseCase{}
	app := setupTestApp(uc)

	resp, body := doRequest(t, app, http.MethodPatch, "/sites/site_a", map[string]any{"isActive": false})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusOK, resp.StatusCode, string(body))
	}
	if uc.LastID != "site_a" || uc.LastActive {
		t.Errorf("unexpected call: id=%q active=%v", uc.LastID, uc.LastActive)
	}
}

func TestUpdateSite_MissingFlag(t *testing.T) {
	app := setupTestApp(&fakeSitesUseCase{})

	resp, _ := doRequest(t, app, http.MethodPatch, "/sites/site_a", map[string]any{})

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestUpdateSite_NotFound(t *testing.T) {
	uc := &fakeSitesUseCase{
		SetActiveFunc: func(ctx context.Context, id string, active bool) error {
			return usecase.ErrSiteNotFound
		},
	}
	app := setupTestApp(uc)

	resp, _ := doRequest(t, app, http.MethodPatch, "/sites/nope", map[string]any{"isActive": true})

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestDeleteSite(t *testing.T) {
	uc := &fakeSitesUseCase{
		DeleteFunc: func(ctx context.Context, id string) (int64, error) { return 3, nil },
	}
	app := setupTestApp(uc)

	resp, body := doRequest(t, app, http.MethodDelete, "/sites/site_a", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusOK, resp.StatusCode, string(body))
	}
	var out DeleteSiteResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if !out.OK || out.DeletedHits != 3 || uc.LastID != "site_a" {
		t.Errorf("unexpected response %+v for id %q", out, uc.LastID)
	}
}

func TestDeleteSite_InternalError(t *testing.T) {
	uc := &fakeSitesUseCase{
		DeleteFunc: func(ctx context.Context, id string) (int64, error) { return 0, errors.New("db error") },
	}
	app := setupTestApp(uc)

	resp, _ := doRequest(t, app, http.MethodDelete, "/sites/site_a", nil)

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, resp.StatusCode)
	}
}
