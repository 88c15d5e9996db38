package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
	"github.com/lifeline/response-dashboard/internal/pkg/metrics"
)

// SubmissionGuard abstracts the short-lived idempotency lock (Redis).
type SubmissionGuard interface {
	// Claim takes the lock for key, reporting false when another submission holds it.
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

type emergencyRequestService struct {
	repo      ports.EmergencyRequestRepository
	guard     SubmissionGuard
	publisher ports.ChangePublisher
	log       zerolog.Logger
}

// NewEmergencyRequestService returns an EmergencyRequestService implementation.
func NewEmergencyRequestService(
	repo ports.EmergencyRequestRepository,
	guard SubmissionGuard,
	publisher ports.ChangePublisher,
	log zerolog.Logger,
) ports.EmergencyRequestService {
	return &emergencyRequestService{
		repo:      repo,
		guard:     guard,
		publisher: publisher,
		log:       log,
	}
}

// Submit validates and persists a new ambulance request. With an idempotency key, a repeat
// of an earlier submission returns the stored request instead of inserting again.
func (s *emergencyRequestService) Submit(ctx context.Context, in ports.EmergencyRequestInput, geo ports.Geolocator) (*ports.EmergencyRequestResult, error) {
	address := strings.TrimSpace(in.PickupAddress)
	if address == "" {
		return nil, fmt.Errorf("%w: pickup address is required", domain.ErrInvalidRecord)
	}

	lat, lng, err := s.pickupCoordinates(ctx, in, geo)
	if err != nil {
		return nil, err
	}

	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidRecord, priority)
	}

	key := ""
	if in.IdempotencyKey != "" {
		key = in.PatientID + ":" + in.IdempotencyKey
		if existing := s.replay(ctx, key); existing != nil {
			return existing, nil
		}

		claimed, err := s.claim(ctx, key)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("submission lock unavailable, submitting anyway")
		case !claimed:
			if existing := s.replay(ctx, key); existing != nil {
				return existing, nil
			}
			return nil, domain.ErrSubmissionInFlight
		case s.guard != nil:
			defer func() {
				if err := s.guard.Release(context.WithoutCancel(ctx), key); err != nil {
					s.log.Warn().Err(err).Msg("submission lock release failed")
				}
			}()
		}
		metrics.SubmissionsDedupTotal.WithLabelValues("miss").Inc()
	}

	now := time.Now().UTC()
	req := &domain.EmergencyRequest{
		ID:               uuid.NewString(),
		PatientID:        in.PatientID,
		PickupAddress:    address,
		PickupLatitude:   lat,
		PickupLongitude:  lng,
		PatientCondition: strings.TrimSpace(in.PatientCondition),
		Priority:         priority,
		Status:           domain.RequestPending,
		Notes:            strings.TrimSpace(in.Notes),
		IdempotencyKey:   key,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Insert(ctx, req); err != nil {
		s.log.Error().Err(err).Msg("failed to create emergency request")
		return nil, fmt.Errorf("submit emergency request: %w", err)
	}

	metrics.RecordsCreatedTotal.WithLabelValues(string(domain.KindEmergencyRequests)).Inc()
	s.log.Info().Str("request_id", req.ID).Str("priority", string(priority)).Msg("emergency request created")
	publishChange(ctx, s.publisher, domain.KindEmergencyRequests, s.log)

	return &ports.EmergencyRequestResult{Request: req}, nil
}

func (s *emergencyRequestService) claim(ctx context.Context, key string) (bool, error) {
	if s.guard == nil {
		return true, nil
	}
	return s.guard.Claim(ctx, key)
}

// pickupCoordinates resolves the pickup point from the form or, when asked, the geolocator.
func (s *emergencyRequestService) pickupCoordinates(ctx context.Context, in ports.EmergencyRequestInput, geo ports.Geolocator) (float64, float64, error) {
	if in.UseCurrentLocation {
		if geo == nil {
			return 0, 0, domain.ErrLocationUnavailable
		}
		pos, err := geo.Locate(ctx)
		if err != nil {
			s.log.Debug().Err(err).Msg("geolocation failed")
			return 0, 0, fmt.Errorf("%w: %v", domain.ErrLocationUnavailable, err)
		}
		return pos.Lat, pos.Lng, nil
	}

	if in.PickupLatitude == nil || in.PickupLongitude == nil {
		return 0, 0, domain.ErrMissingCoordinates
	}
	lat, lng := *in.PickupLatitude, *in.PickupLongitude
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, fmt.Errorf("%w: pickup coordinates out of range", domain.ErrInvalidRecord)
	}
	return lat, lng, nil
}

func (s *emergencyRequestService) replay(ctx context.Context, key string) *ports.EmergencyRequestResult {
	existing, err := s.repo.FindByIdempotencyKey(ctx, key)
	if err != nil || existing == nil {
		if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
			s.log.Warn().Err(err).Msg("idempotency lookup failed")
		}
		return nil
	}
	metrics.SubmissionsDedupTotal.WithLabelValues("hit").Inc()
	s.log.Info().Str("request_id", existing.ID).Msg("idempotent replay")
	return &ports.EmergencyRequestResult{Request: existing, AlreadyExisted: true}
}

// List returns requests visible to the caller: patients see their own, staff see all.
func (s *emergencyRequestService) List(ctx context.Context, in ports.ListRequestsInput) ([]domain.EmergencyRequest, error) {
	if in.Status != "" && !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidRecord, in.Status)
	}

	filter := ports.EmergencyRequestFilter{Status: in.Status}
	switch in.Role {
	case domain.RolePatient:
		if in.UserID == "" {
			return nil, domain.ErrUnauthenticated
		}
		filter.PatientID = in.UserID
	case domain.RoleAdmin, domain.RoleDriver, domain.RoleHospitalStaff:
	default:
		return nil, domain.ErrForbidden
	}

	reqs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list emergency requests: %w", err)
	}
	return reqs, nil
}

// publishChange announces an insert. Failures are logged, not returned.
func publishChange(ctx context.Context, p ports.ChangePublisher, kind domain.Kind, log zerolog.Logger) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ports.ChangeEvent{Kind: kind, At: time.Now().UTC()}); err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Msg("change publish failed")
	}
}
