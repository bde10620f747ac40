package main

import (
	"site-analytics-service/internal/observability"

	hitsHttp "site-analytics-service/internal/hits/adapters/http/fiber"
	metricsHttp "site-analytics-service/internal/metrics/adapters/http/fiber"
	sitesHttp "site-analytics-service/internal/sites/adapters/http/fiber"

	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

type routeDeps struct {
	collectHit  hitsHttp.CollectHitUseCase
	listHits    hitsHttp.ListHitsUseCase
	manageSites sitesHttp.ManageSitesUseCase
	overview    metricsHttp.GetOverviewUseCase
	breakdown   metricsHttp.GetBreakdownUseCase
	metrics     *observability.Metrics
	log         *zap.Logger
}

func registerRoutes(app *fiber.App, d routeDeps) {
	api := app.Group("/api")

	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "site analytics collector"})
	})

	// hits endpoints
	hitHandler := hitsHttp.NewHitHandler(d.collectHit, d.listHits, d.metrics, d.log)
	api.Post("/collect", hitHandler.Collect)
	api.Post("/collect/batch", hitHandler.CollectBatch)
	api.Get("/hits", hitHandler.ListHits)
	api.Get("/i.js", hitsHttp.TrackerScript)

	// metrics endpoints
	metricsHandler := metricsHttp.NewMetricsHandler(d.overview, d.breakdown, d.log)
	api.Get("/overview", metricsHandler.GetOverview)
	api.Get("/breakdown", metricsHandler.GetBreakdown)

	// sites endpoints
	siteHandler := sitesHttp.NewSiteHandler(d.manageSites, d.log)
	api.Get("/sites", siteHandler.ListSites)
	api.Post("/sites", siteHandler.CreateSite)
	api.Patch("/sites/:id", siteHandler.UpdateSite)
	api.Delete("/sites/:id", siteHandler.DeleteSite)

	// Prometheus
	app.Get("/metrics", d.metrics.Handler())

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)
}
