package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"site-analytics-service/internal/metrics/core/domain"
	"site-analytics-service/internal/metrics/core/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GetOverviewUseCase interface {
	Execute(ctx context.Context, in usecase.OverviewInput) (*domain.Overview, error)
}

type GetBreakdownUseCase interface {
	Execute(ctx context.Context, in usecase.BreakdownInput) (*domain.Breakdown, error)
}

type MetricsHandler struct {
	overviewUC  GetOverviewUseCase
	breakdownUC GetBreakdownUseCase
	log         *zap.Logger
}

func NewMetricsHandler(overviewUC GetOverviewUseCase, breakdownUC GetBreakdownUseCase, log *zap.Logger) *MetricsHandler {
	return &MetricsHandler{
		overviewUC:  overviewUC,
		breakdownUC: breakdownUC,
		log:         log,
	}
}

type rangeParams struct {
	siteID  string
	startTs int64
	endTs   int64
}

// parseRange reads siteId, startTs and endTs. On failure the returned message
// is meant for the client.
func parseRange(c *fiber.Ctx) (rangeParams, string) {
	p := rangeParams{siteID: c.Query("siteId", "")}
	if p.siteID == "" {
		return p, "siteId is required"
	}

	startStr := c.Query("startTs", "")
	endStr := c.Query("endTs", "")
	if startStr == "" || endStr == "" {
		return p, "startTs and endTs are required"
	}

	var err error
	if p.startTs, err = strconv.ParseInt(startStr, 10, 64); err != nil {
		return p, "invalid 'startTs' parameter"
	}
	if p.endTs, err = strconv.ParseInt(endStr, 10, 64); err != nil {
		return p, "invalid 'endTs' parameter"
	}
	return p, ""
}

func (h *MetricsHandler) fail(c *fiber.Ctx, err error, msg string) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidMetricsQuery),
		errors.Is(err, usecase.ErrInvalidTimeRange),
		errors.Is(err, usecase.ErrInvalidDimension),
		errors.Is(err, usecase.ErrInvalidLimit):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: err.Error(),
		})
	default:
		h.log.Error(msg, zap.String("site_id", c.Query("siteId")), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

// GetOverview godoc
// @Summary Site overview
// @Description KPIs, daily series, top pages, realtime feed and active visitors for pageviews in [startTs, endTs]
// @Tags Metrics
// @Produce json
// @Param siteId query string true "Site id"
// @Param startTs query int true "Range start, epoch ms"
// @Param endTs query int true "Range end, epoch ms"
// @Success 200 {object} OverviewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /overview [get]
func (h *MetricsHandler) GetOverview(c *fiber.Ctx) error {
	p, msg := parseRange(c)
	if msg != "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: msg})
	}

	res, err := h.overviewUC.Execute(c.UserContext(), usecase.OverviewInput{
		SiteID:  p.siteID,
		StartTs: p.startTs,
		EndTs:   p.endTs,
	})
	if err != nil {
		return h.fail(c, err, "overview failed")
	}

	return c.Status(http.StatusOK).JSON(res)
}

// GetBreakdown godoc
// @Summary Rank pageviews by a dimension
// @Description Dimensions: url, title, referrer, referrerHost, channel, browser, os, deviceType, countryHint, lang, tz, utm_source, utm_medium, utm_campaign
// @Tags Metrics
// @Produce json
// @Param siteId query string true "Site id"
// @Param startTs query int true "Range start, epoch ms"
// @Param endTs query int true "Range end, epoch ms"
// @Param dimension query string true "Dimension"
// @Param limit query int false "Max items (1-100, default 8)"
// @Success 200 {object} BreakdownResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /breakdown [get]
func (h *MetricsHandler) GetBreakdown(c *fiber.Ctx) error {
	p, msg := parseRange(c)
	if msg != "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: msg})
	}

	dimension := c.Query("dimension", "")
	if dimension == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "dimension is required"})
	}

	limit := 0
	if raw := c.Query("limit", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n == 0 {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "invalid 'limit' parameter"})
		}
		limit = n
	}

	res, err := h.breakdownUC.Execute(c.UserContext(), usecase.BreakdownInput{
		SiteID:    p.siteID,
		StartTs:   p.startTs,
		EndTs:     p.endTs,
		Dimension: dimension,
		Limit:     limit,
	})
	if err != nil {
		return h.fail(c, err, "breakdown failed")
	}

	return c.Status(http.StatusOK).JSON(res)
}
