package fiber

import (
	"context"
	"errors"
	"net/http"

	"site-analytics-service/internal/sites/core/domain"
	"site-analytics-service/internal/sites/core/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ManageSitesUseCase interface {
	Create(ctx context.Context, in usecase.CreateSiteInput) (*domain.Site, error)
	List(ctx context.Context) ([]domain.Site, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) (int64, error)
}

type SiteHandler struct {
	uc  ManageSitesUseCase
	log *zap.Logger
}

func NewSiteHandler(uc ManageSitesUseCase, log *zap.Logger) *SiteHandler {
	return &SiteHandler{uc: uc, log: log}
}

func (h *SiteHandler) internalError(c *fiber.Ctx, msg string, err error) error {
	h.log.Error(msg, zap.String("site_id", c.Params("id")), zap.Error(err))
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{Error: "internal_server_error"})
}

// ListSites godoc
// @Summary List sites
// @Description Returns up to 1000 sites, newest first
// @Tags Sites
// @Produce json
// @Success 200 {array} domain.Site
// @Failure 500 {object} ErrorResponse
// @Router /sites [get]
func (h *SiteHandler) ListSites(c *fiber.Ctx) error {
	sites, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.internalError(c, "list sites failed", err)
	}
	return c.Status(http.StatusOK).JSON(sites)
}

// CreateSite godoc
// @Summary Register a site
// @Tags Sites
// @Accept json
// @Produce json
// @Param request body CreateSiteRequest true "Site"
// @Success 200 {object} domain.Site
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sites [post]
func (h *SiteHandler) CreateSite(c *fiber.Ctx) error {
	var req CreateSiteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "invalid_json"})
	}

	site, err := h.uc.Create(c.UserContext(), usecase.CreateSiteInput{
		Name:              req.Name,
		Domain:            req.Domain,
		SessionTimeoutMin: req.SessionTimeoutMin,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidSiteInput) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_site_input",
				Message: "name and domain are required",
			})
		}
		return h.internalError(c, "create site failed", err)
	}

	return c.Status(http.StatusOK).JSON(site)
}

// UpdateSite godoc
// @Summary Activate or deactivate a site
// @Description Inactive sites reject new hits; stored data is kept
// @Tags Sites
// @Accept json
// @Produce json
// @Param id path string true "Site id"
// @Param request body UpdateSiteRequest true "Active flag"
// @Success 200 {object} OKResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sites/{id} [patch]
func (h *SiteHandler) UpdateSite(c *fiber.Ctx) error {
	var req UpdateSiteRequest
	if err := c.BodyParser(&req); err != nil || req.IsActive == nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "isActive is required"})
	}

	err := h.uc.SetActive(c.UserContext(), c.Params("id"), *req.IsActive)
	if err != nil {
		if errors.Is(err, usecase.ErrSiteNotFound) {
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{Error: "site_not_found"})
		}
		return h.internalError(c, "update site failed", err)
	}

	return c.Status(http.StatusOK).JSON(OKResponse{OK: true})
}

// DeleteSite godoc
// @Summary Delete a site and all of its hits
// @Tags Sites
// @Produce json
// @Param id path string true "Site id"
// @Success 200 {object} DeleteSiteResponse
// @Failure 500 {object} ErrorResponse
// @Router /sites/{id} [delete]
func (h *SiteHandler) DeleteSite(c *fiber.Ctx) error {
	n, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.internalError(c, "delete site failed", err)
	}

	h.log.Info("site deleted", zap.String("site_id", c.Params("id")), zap.Int64("hits", n))
	return c.Status(http.StatusOK).JSON(DeleteSiteResponse{OK: true, DeletedHits: n})
}
