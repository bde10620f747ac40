package mongo

import (
	"context"
	"errors"
	"fmt"

	"site-analytics-service/internal/sites/core/domain"
	"site-analytics-service/internal/sites/core/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SiteRepository struct {
	coll *mongo.Collection
}

func NewSiteRepository(coll *mongo.Collection) *SiteRepository {
	return &SiteRepository{coll: coll}
}

var _ ports.SiteRepositoryPort = (*SiteRepository)(nil)

func (r *SiteRepository) InsertSite(ctx context.Context, s *domain.Site) error {
	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to insert site: %w", err)
	}
	return nil
}

func (r *SiteRepository) ListSites(ctx context.Context, limit int) ([]domain.Site, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer cursor.Close(ctx)

	sites := make([]domain.Site, 0)
	if err := cursor.All(ctx, &sites); err != nil {
		return nil, fmt.Errorf("failed to decode sites: %w", err)
	}
	return sites, nil
}

func (r *SiteRepository) FindSite(ctx context.Context, id string) (*domain.Site, error) {
	var s domain.Site
	err := r.coll.FindOne(ctx, bson.M{"id": id}, options.FindOne().SetProjection(bson.M{"_id": 0})).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find site: %w", err)
	}
	return &s, nil
}

func (r *SiteRepository) UpdateSiteActive(ctx context.Context, id string, active bool) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"isActive": active}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update site: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *SiteRepository) DeleteSite(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("failed to delete site: %w", err)
	}
	return nil
}
