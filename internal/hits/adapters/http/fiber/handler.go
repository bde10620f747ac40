package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"site-analytics-service/internal/hits/core/domain"
	"site-analytics-service/internal/hits/core/usecase"
	"site-analytics-service/internal/observability"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CollectHitUseCase interface {
	Execute(ctx context.Context, in usecase.CollectHitInput) (usecase.CollectHitResult, error)
	CollectBatch(ctx context.Context, in usecase.CollectBatchInput) (usecase.CollectBatchResult, error)
}

type ListHitsUseCase interface {
	Execute(ctx context.Context, in usecase.ListHitsInput) ([]domain.Hit, error)
}

// CollectObserver is notified of every collect outcome. May be nil.
type CollectObserver interface {
	ObserveCollect(outcome string)
}

type HitHandler struct {
	collectUC CollectHitUseCase
	listUC    ListHitsUseCase
	observer  CollectObserver
	log       *zap.Logger
}

func NewHitHandler(collectUC CollectHitUseCase, listUC ListHitsUseCase, observer CollectObserver, log *zap.Logger) *HitHandler {
	return &HitHandler{
		collectUC: collectUC,
		listUC:    listUC,
		observer:  observer,
		log:       log,
	}
}

func requestMeta(c *fiber.Ctx) usecase.RequestMeta {
	return usecase.RequestMeta{
		DoNotTrack:   c.Get("DNT") == "1",
		ForwardedFor: c.Get(fiber.HeaderXForwardedFor),
		PeerIP:       c.Context().RemoteIP().String(),
	}
}

// Collect godoc
// @Summary Collect a hit
// @Description Stores a pageview, event or outbound hit. A repeated id replaces the stored hit. Requests with DNT: 1 are acknowledged and dropped.
// @Tags Hits
// @Accept json
// @Produce json
// @Param DNT header string false "Do Not Track"
// @Param request body CollectRequest true "Hit payload"
// @Success 200 {object} CollectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /collect [post]
func (h *HitHandler) Collect(c *fiber.Ctx) error {
	meta := requestMeta(c)
	if meta.DoNotTrack {
		h.observe(observability.OutcomeDoNotTrack)
		return c.Status(http.StatusOK).JSON(CollectResponse{OK: true})
	}

	var req CollectRequest
	if err := c.BodyParser(&req); err != nil {
		h.observe(observability.OutcomeInvalidHit)
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "invalid_json"})
	}

	_, err := h.collectUC.Execute(c.UserContext(), usecase.CollectHitInput{Meta: meta, Hit: req})
	if err != nil {
		return h.collectError(c, err)
	}

	h.observe(observability.OutcomeStored)
	return c.Status(http.StatusOK).JSON(CollectResponse{OK: true})
}

// CollectBatch godoc
// @Summary Collect several hits
// @Description Validates every hit, then stores them one by one. Each hit consumes one rate limit slot.
// @Tags Hits
// @Accept json
// @Produce json
// @Param DNT header string false "Do Not Track"
// @Param request body CollectBatchRequest true "Hits"
// @Success 200 {object} CollectBatchResponse
// @Failure 400 {object} CollectBatchErrorResponse
// @Failure 422 {object} CollectBatchErrorResponse
// @Failure 429 {object} CollectBatchErrorResponse
// @Failure 500 {object} CollectBatchErrorResponse
// @Router /collect/batch [post]
func (h *HitHandler) CollectBatch(c *fiber.Ctx) error {
	var req CollectBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "invalid_json"})
	}

	if len(req.Hits) == 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "hits_list_required"})
	}

	res, err := h.collectUC.CollectBatch(c.UserContext(), usecase.CollectBatchInput{
		Meta: requestMeta(c),
		Hits: req.Hits,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrBatchTooLarge) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "batch_too_large",
				Message: err.Error(),
			})
		}
		for i := 0; i < res.Stored; i++ {
			h.observe(observability.OutcomeStored)
		}
		status, body := h.collectFailure(err)
		return c.Status(status).JSON(CollectBatchErrorResponse{ErrorResponse: body, Stored: res.Stored})
	}

	for i := 0; i < res.Stored; i++ {
		h.observe(observability.OutcomeStored)
	}
	for i := 0; i < res.Skipped; i++ {
		h.observe(observability.OutcomeDoNotTrack)
	}

	return c.Status(http.StatusOK).JSON(CollectBatchResponse{
		OK:      true,
		Stored:  res.Stored,
		Skipped: res.Skipped,
	})
}

func (h *HitHandler) collectError(c *fiber.Ctx, err error) error {
	status, body := h.collectFailure(err)
	return c.Status(status).JSON(body)
}

// collectFailure maps a pipeline error to its response and records the outcome.
func (h *HitHandler) collectFailure(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, usecase.ErrInvalidHit):
		h.observe(observability.OutcomeInvalidHit)
		return http.StatusUnprocessableEntity, ErrorResponse{Error: "invalid_hit", Message: err.Error()}
	case errors.Is(err, usecase.ErrRateLimited):
		h.observe(observability.OutcomeRateLimited)
		return http.StatusTooManyRequests, ErrorResponse{Error: "rate_limited"}
	case errors.Is(err, usecase.ErrInvalidSite):
		h.observe(observability.OutcomeInvalidSite)
		return http.StatusBadRequest, ErrorResponse{Error: "invalid_site"}
	default:
		h.observe(observability.OutcomeError)
		h.log.Error("collect failed", zap.Error(err))
		return http.StatusInternalServerError, ErrorResponse{Error: "internal_server_error"}
	}
}

func (h *HitHandler) observe(outcome string) {
	if h.observer != nil {
		h.observer.ObserveCollect(outcome)
	}
}

// ListHits godoc
// @Summary List raw hits
// @Description Returns hits of every type for a site in [startTs, endTs], oldest first
// @Tags Hits
// @Produce json
// @Param siteId query string true "Site id"
// @Param startTs query int true "Range start, epoch ms"
// @Param endTs query int true "Range end, epoch ms"
// @Param limit query int false "Max hits (1-20000, default 5000)"
// @Success 200 {object} ListHitsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /hits [get]
func (h *HitHandler) ListHits(c *fiber.Ctx) error {
	siteID := c.Query("siteId", "")
	if siteID == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "siteId is required"})
	}

	startTs, err := strconv.ParseInt(c.Query("startTs", ""), 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "invalid 'startTs' parameter"})
	}
	endTs, err := strconv.ParseInt(c.Query("endTs", ""), 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "invalid 'endTs' parameter"})
	}

	limit := 0
	if raw := c.Query("limit", ""); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "invalid 'limit' parameter"})
		}
		if limit == 0 {
			limit = -1 // explicit zero is out of range
		}
	}

	hits, err := h.listUC.Execute(c.UserContext(), usecase.ListHitsInput{
		SiteID:  siteID,
		StartTs: startTs,
		EndTs:   endTs,
		Limit:   limit,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidHitsQuery),
			errors.Is(err, usecase.ErrInvalidTimeRange),
			errors.Is(err, usecase.ErrInvalidLimit):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_query",
				Message: err.Error(),
			})
		default:
			h.log.Error("list hits failed", zap.String("site_id", siteID), zap.Error(err))
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{Error: "internal_server_error"})
		}
	}

	return c.Status(http.StatusOK).JSON(ListHitsResponse{Hits: hits})
}
