package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lifeline/response-dashboard/internal/core/domain"
)

type HospitalRepository struct {
	col *mongo.Collection
}

func NewHospitalRepository(db *mongo.Database) *HospitalRepository {
	return &HospitalRepository{col: db.Collection(CollectionFor(domain.KindHospitals))}
}

// List returns hospitals ordered by name.
func (r *HospitalRepository) List(ctx context.Context) ([]domain.Hospital, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findAll[domain.Hospital](ctx, r.col, bson.M{}, opts)
}

func (r *HospitalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}})
	return err
}

type ArticleRepository struct {
	col *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{col: db.Collection(CollectionFor(domain.KindMedicalArticles))}
}

// List returns articles newest first.
func (r *ArticleRepository) List(ctx context.Context) ([]domain.MedicalArticle, error) {
	return findAll[domain.MedicalArticle](ctx, r.col, bson.M{}, newestFirst())
}

func (r *ArticleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	})
	return err
}

type AmbulanceRepository struct {
	col *mongo.Collection
}

func NewAmbulanceRepository(db *mongo.Database) *AmbulanceRepository {
	return &AmbulanceRepository{col: db.Collection(CollectionFor(domain.KindAmbulances))}
}

// List returns the fleet ordered by vehicle number. An empty status lists every vehicle.
func (r *AmbulanceRepository) List(ctx context.Context, status domain.AmbulanceStatus) ([]domain.FleetAmbulance, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "vehicle_number", Value: 1}})
	return findAll[domain.FleetAmbulance](ctx, r.col, filter, opts)
}

func (r *AmbulanceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "vehicle_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	return err
}
