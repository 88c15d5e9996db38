package handler

import (
	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
)

func toEmergencyRequestResponse(r *domain.EmergencyRequest) emergencyRequestResponse {
	return emergencyRequestResponse{
		ID:               r.ID,
		PatientID:        r.PatientID,
		PickupAddress:    r.PickupAddress,
		PickupLatitude:   r.PickupLatitude,
		PickupLongitude:  r.PickupLongitude,
		PatientCondition: r.PatientCondition,
		Priority:         string(r.Priority),
		Status:           string(r.Status),
		AmbulanceID:      r.AmbulanceID,
		HospitalID:       r.HospitalID,
		Notes:            r.Notes,
		CreatedAt:        r.CreatedAt,
		Links: requestLinks{
			Self: "/v1/emergency-requests/" + r.ID,
		},
	}
}

func toEmergencyRequestResponses(reqs []domain.EmergencyRequest) []emergencyRequestResponse {
	out := make([]emergencyRequestResponse, 0, len(reqs))
	for i := range reqs {
		out = append(out, toEmergencyRequestResponse(&reqs[i]))
	}
	return out
}

func toEmergencyRequestInput(req emergencyRequestRequest, patientID, idempotencyKey string) ports.EmergencyRequestInput {
	return ports.EmergencyRequestInput{
		PatientID:          patientID,
		PickupAddress:      req.PickupAddress,
		PickupLatitude:     req.PickupLatitude,
		PickupLongitude:    req.PickupLongitude,
		UseCurrentLocation: req.UseCurrentLocation,
		PatientCondition:   req.PatientCondition,
		Priority:           domain.Priority(req.Priority),
		Notes:              req.Notes,
		IdempotencyKey:     idempotencyKey,
	}
}

func toCreatePostInput(req createPostRequest, userID string) ports.CreatePostInput {
	return ports.CreatePostInput{
		UserID:      userID,
		Title:       req.Title,
		Content:     req.Content,
		PostType:    domain.PostType(req.PostType),
		BloodType:   req.BloodType,
		Location:    req.Location,
		ContactInfo: req.ContactInfo,
		Urgent:      req.Urgent,
	}
}

func toHospitalResponses(entries []ports.HospitalEntry) []hospitalResponse {
	out := make([]hospitalResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, hospitalResponse{
			Hospital:      e.Hospital,
			CallURL:       e.CallURL,
			DirectionsURL: e.DirectionsURL,
		})
	}
	return out
}
