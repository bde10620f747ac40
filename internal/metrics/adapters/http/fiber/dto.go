package fiber

import "site-analytics-service/internal/metrics/core/domain"

// OverviewResponse is the dashboard document of one site and range.
type OverviewResponse = domain.Overview

type BreakdownResponse = domain.Breakdown

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message,omitempty" example:"invalid time range"`
}
