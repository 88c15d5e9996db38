package ports

import (
	"context"

	"github.com/lifeline/response-dashboard/internal/core/domain"
)

// EmergencyRequestInput is the typed ambulance request form. Every field and its constraint:
//   - PickupAddress: required, non-empty.
//   - PickupLatitude / PickupLongitude: required unless UseCurrentLocation resolves them;
//     latitude in [-90,90], longitude in [-180,180].
//   - PatientCondition, Notes: optional free text.
//   - Priority: one of low, medium, high, critical; defaults to medium.
type EmergencyRequestInput struct {
	PatientID          string
	PickupAddress      string
	PickupLatitude     *float64
	PickupLongitude    *float64
	UseCurrentLocation bool
	PatientCondition   string
	Priority           domain.Priority
	Notes              string
	IdempotencyKey     string
}

// EmergencyRequestResult is returned after a submission.
type EmergencyRequestResult struct {
	Request *domain.EmergencyRequest
	// AlreadyExisted is true when the Idempotency-Key matched an earlier submission.
	AlreadyExisted bool
}

// ListRequestsInput scopes a listing to the caller's role.
type ListRequestsInput struct {
	Role   string
	UserID string
	Status domain.RequestStatus
}

// EmergencyRequestService submits and lists dispatch requests.
type EmergencyRequestService interface {
	Submit(ctx context.Context, input EmergencyRequestInput, geo Geolocator) (*EmergencyRequestResult, error)
	List(ctx context.Context, input ListRequestsInput) ([]domain.EmergencyRequest, error)
}
