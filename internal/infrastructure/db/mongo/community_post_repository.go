package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lifeline/response-dashboard/internal/core/domain"
)

type CommunityPostRepository struct {
	col *mongo.Collection
}

func NewCommunityPostRepository(db *mongo.Database) *CommunityPostRepository {
	return &CommunityPostRepository{col: db.Collection(CollectionFor(domain.KindCommunityPosts))}
}

func (r *CommunityPostRepository) Insert(ctx context.Context, p *domain.CommunityPost) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert community post: %w", err)
	}
	return nil
}

// List returns every post, newest first.
func (r *CommunityPostRepository) List(ctx context.Context) ([]domain.CommunityPost, error) {
	return findAll[domain.CommunityPost](ctx, r.col, bson.M{}, newestFirst())
}

func (r *CommunityPostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "post_type", Value: 1}}},
	})
	return err
}
