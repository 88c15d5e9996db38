package ports

import (
	"context"

	"github.com/lifeline/response-dashboard/internal/core/domain"
)

// EmergencyRequestFilter narrows a request listing. Empty PatientID lists every request.
type EmergencyRequestFilter struct {
	PatientID string
	Status    domain.RequestStatus
}

// EmergencyRequestRepository persists dispatch requests.
type EmergencyRequestRepository interface {
	Insert(ctx context.Context, r *domain.EmergencyRequest) error
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.EmergencyRequest, error)
	// List returns requests newest first.
	List(ctx context.Context, filter EmergencyRequestFilter) ([]domain.EmergencyRequest, error)
}

// CommunityPostRepository persists community posts.
type CommunityPostRepository interface {
	Insert(ctx context.Context, p *domain.CommunityPost) error
	// List returns posts newest first.
	List(ctx context.Context) ([]domain.CommunityPost, error)
}

// HospitalRepository reads the hospital directory.
type HospitalRepository interface {
	// List returns hospitals ordered by name.
	List(ctx context.Context) ([]domain.Hospital, error)
}

// ArticleRepository reads the medical library.
type ArticleRepository interface {
	// List returns articles newest first.
	List(ctx context.Context) ([]domain.MedicalArticle, error)
}

// AmbulanceRepository reads the fleet.
type AmbulanceRepository interface {
	List(ctx context.Context, status domain.AmbulanceStatus) ([]domain.FleetAmbulance, error)
}
