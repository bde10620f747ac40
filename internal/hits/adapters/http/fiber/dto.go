package fiber

import "site-analytics-service/internal/hits/core/domain"

// CollectRequest is the hit payload posted by the tracker. Unknown fields are
// ignored and a client-sent ipHash is always overwritten.
type CollectRequest = domain.Hit

type CollectResponse struct {
	OK bool `json:"ok"`
}

type CollectBatchRequest struct {
	Hits []CollectRequest `json:"hits"`
}

type CollectBatchResponse struct {
	OK      bool `json:"ok"`
	Stored  int  `json:"stored"`
	Skipped int  `json:"skipped"`
}

// CollectBatchErrorResponse reports how many hits were written before the
// batch failed.
type CollectBatchErrorResponse struct {
	ErrorResponse
	Stored int `json:"stored"`
}

type ListHitsResponse struct {
	Hits []domain.Hit `json:"hits"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_site"`
	Message string `json:"message,omitempty" example:"invalid site"`
}
