package mongo

import (
	"context"
	"fmt"

	hits "site-analytics-service/internal/hits/core/domain"
	"site-analytics-service/internal/metrics/core/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MetricsRepository struct {
	coll *mongo.Collection
}

// NewMetricsRepository reads from the "hits" collection.
func NewMetricsRepository(coll *mongo.Collection) *MetricsRepository {
	return &MetricsRepository{coll: coll}
}

var _ ports.MetricsReaderPort = (*MetricsRepository)(nil)

func buildFilter(f ports.HitFilter) bson.M {
	filter := bson.M{
		"siteId": f.SiteID,
		"ts":     bson.M{"$gte": f.From, "$lte": f.To},
	}
	if f.Type != "" {
		filter["type"] = string(f.Type)
	}
	return filter
}

func (r *MetricsRepository) QueryHits(ctx context.Context, f ports.HitFilter) ([]hits.Hit, error) {
	dir := 1
	if f.NewestFirst {
		dir = -1
	}

	opts := options.Find().
		SetProjection(bson.M{"_id": 0}).
		SetSort(bson.D{{Key: "ts", Value: dir}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	cursor, err := r.coll.Find(ctx, buildFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query hits: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]hits.Hit, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode hits: %w", err)
	}
	return out, nil
}

func (r *MetricsRepository) DistinctVisitors(ctx context.Context, f ports.HitFilter) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "visitorId", buildFilter(f))
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct visitors: %w", err)
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids, nil
}
