package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"site-analytics-service/internal/config"
	pgstore "site-analytics-service/internal/storage/postgres"
	mongostore "site-analytics-service/internal/storage/mongo"

	hitsRepoMongo "site-analytics-service/internal/hits/adapters/mongo"
	hitsRepoPg "site-analytics-service/internal/hits/adapters/postgres"
	hitsPorts "site-analytics-service/internal/hits/core/ports"

	metricsRepoMongo "site-analytics-service/internal/metrics/adapters/mongo"
	metricsRepoPg "site-analytics-service/internal/metrics/adapters/postgres"
	metricsPorts "site-analytics-service/internal/metrics/core/ports"

	sitesRepoMongo "site-analytics-service/internal/sites/adapters/mongo"
	sitesRepoPg "site-analytics-service/internal/sites/adapters/postgres"
	sitesPorts "site-analytics-service/internal/sites/core/ports"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// hitStore is what the service needs from the hits repository: the
// ingestion and listing port plus purging on site deletion.
type hitStore interface {
	hitsPorts.HitRepositoryPort
	sitesPorts.HitPurgerPort
}

type storage struct {
	hits    hitStore
	sites   sitesPorts.SiteRepositoryPort
	metrics metricsPorts.MetricsReaderPort
	close   func(log *zap.Logger)
}

func openStorage(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.Storage.PostgresDSN, log)
	case config.DriverMongo:
		return openMongo(ctx, cfg.Storage.MongoURL, cfg.Storage.MongoDatabase, log)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

func openPostgres(ctx context.Context, dsn string, log *zap.Logger) (*storage, error) {
	db, err := pgstore.Open(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pgstore.EnsureSchema(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info("postgres ready")

	return &storage{
		hits:    hitsRepoPg.NewHitRepository(hitsRepoPg.NewSQLDB(db)),
		sites:   sitesRepoPg.NewSiteRepository(sitesRepoPg.NewSQLDB(db)),
		metrics: metricsRepoPg.NewMetricsRepository(metricsRepoPg.NewSQLDB(db)),
		close:   closeSQL(db),
	}, nil
}

func closeSQL(db *sql.DB) func(*zap.Logger) {
	return func(log *zap.Logger) {
		if err := db.Close(); err != nil {
			log.Warn("close postgres", zap.Error(err))
		}
	}
}

func openMongo(ctx context.Context, uri, database string, log *zap.Logger) (*storage, error) {
	client, err := mongostore.Connect(ctx, uri)
	if err != nil {
		return nil, err
	}

	db := client.Database(database)
	if failed := mongostore.EnsureIndexes(ctx, db, log); failed > 0 {
		log.Warn("mongo started with missing indexes", zap.Int("failed", failed))
	}
	log.Info("mongo ready", zap.String("database", database))

	hits := db.Collection(mongostore.HitsCollection)
	return &storage{
		hits:    hitsRepoMongo.NewHitRepository(hits),
		sites:   sitesRepoMongo.NewSiteRepository(db.Collection(mongostore.SitesCollection)),
		metrics: metricsRepoMongo.NewMetricsRepository(hits),
		close:   disconnectMongo(client),
	}, nil
}

func disconnectMongo(client *mongo.Client) func(*zap.Logger) {
	return func(log *zap.Logger) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Warn("disconnect mongo", zap.Error(err))
		}
	}
}
