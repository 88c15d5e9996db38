package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
)

type EmergencyRequestRepository struct {
	col *mongo.Collection
}

func NewEmergencyRequestRepository(db *mongo.Database) *EmergencyRequestRepository {
	return &EmergencyRequestRepository{col: db.Collection(CollectionFor(domain.KindEmergencyRequests))}
}

// Insert stores a new request. A reused idempotency key surfaces as ErrSubmissionInFlight.
func (r *EmergencyRequestRepository) Insert(ctx context.Context, req *domain.EmergencyRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, req); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSubmissionInFlight
		}
		return fmt.Errorf("insert emergency request: %w", err)
	}
	return nil
}

// FindByIdempotencyKey retrieves the request created with the given key.
func (r *EmergencyRequestRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.EmergencyRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.EmergencyRequest
	err := r.col.FindOne(ctx, bson.M{"idempotency_key": key}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return &req, nil
}

// List returns requests matching filter, newest first.
func (r *EmergencyRequestRepository) List(ctx context.Context, f ports.EmergencyRequestFilter) ([]domain.EmergencyRequest, error) {
	filter := bson.M{}
	if f.PatientID != "" {
		filter["patient_id"] = f.PatientID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return findAll[domain.EmergencyRequest](ctx, r.col, filter, newestFirst())
}

// EnsureIndexes creates indexes on the emergency_requests collection.
func (r *EmergencyRequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{
			Keys:    bson.D{{Key: "idempotency_key", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
