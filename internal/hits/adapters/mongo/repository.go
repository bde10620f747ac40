package mongo

import (
	"context"
	"fmt"

	"site-analytics-service/internal/hits/core/domain"
	"site-analytics-service/internal/hits/core/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HitRepository struct {
	coll *mongo.Collection
}

// NewHitRepository expects the "hits" collection; indexes are created by the
// storage bootstrap.
func NewHitRepository(coll *mongo.Collection) *HitRepository {
	return &HitRepository{coll: coll}
}

var _ ports.HitRepositoryPort = (*HitRepository)(nil)

func (r *HitRepository) UpsertHit(ctx context.Context, h *domain.Hit) error {
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"id": h.ID},
		h,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert hit: %w", err)
	}
	return nil
}

func (r *HitRepository) ListHits(ctx context.Context, q ports.HitQuery) ([]domain.Hit, error) {
	filter := bson.M{
		"siteId": q.SiteID,
		"ts":     bson.M{"$gte": q.From, "$lte": q.To},
	}
	opts := options.Find().
		SetProjection(bson.M{"_id": 0}).
		SetSort(bson.D{{Key: "ts", Value: 1}}).
		SetLimit(int64(q.Limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list hits: %w", err)
	}
	defer cursor.Close(ctx)

	hits := make([]domain.Hit, 0)
	if err := cursor.All(ctx, &hits); err != nil {
		return nil, fmt.Errorf("failed to decode hits: %w", err)
	}
	return hits, nil
}

func (r *HitRepository) DeleteSiteHits(ctx context.Context, siteID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"siteId": siteID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete site hits: %w", err)
	}
	return res.DeletedCount, nil
}
