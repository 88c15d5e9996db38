package handler

import (
	"time"

	"github.com/lifeline/response-dashboard/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=6"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"      validate:"omitempty,oneof=patient driver hospital_staff"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// --- Emergency requests ---

type emergencyRequestRequest struct {
	PickupAddress      string   `json:"pickup_address"       validate:"required"`
	PickupLatitude     *float64 `json:"pickup_latitude"      validate:"omitempty,gte=-90,lte=90"`
	PickupLongitude    *float64 `json:"pickup_longitude"     validate:"omitempty,gte=-180,lte=180"`
	UseCurrentLocation bool     `json:"use_current_location"`
	PatientCondition   string   `json:"patient_condition"`
	Priority           string   `json:"priority"             validate:"omitempty,oneof=low medium high critical"`
	Notes              string   `json:"notes"`
}

type requestLinks struct {
	Self string `json:"self"`
}

type emergencyRequestResponse struct {
	ID               string       `json:"id"`
	PatientID        string       `json:"patient_id"`
	PickupAddress    string       `json:"pickup_address"`
	PickupLatitude   float64      `json:"pickup_latitude"`
	PickupLongitude  float64      `json:"pickup_longitude"`
	PatientCondition string       `json:"patient_condition,omitempty"`
	Priority         string       `json:"priority"`
	Status           string       `json:"status"`
	AmbulanceID      string       `json:"ambulance_id,omitempty"`
	HospitalID       string       `json:"hospital_id,omitempty"`
	Notes            string       `json:"notes,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	Links            requestLinks `json:"_links"`
}

// --- Community ---

type createPostRequest struct {
	Title       string `json:"title"        validate:"required"`
	Content     string `json:"content"      validate:"required"`
	PostType    string `json:"post_type"    validate:"omitempty,oneof=blood_request medical_help resource_sharing general"`
	BloodType   string `json:"blood_type"   validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Location    string `json:"location"`
	ContactInfo string `json:"contact_info"`
	Urgent      bool   `json:"urgent"`
}

// --- Directory ---

type hospitalResponse struct {
	domain.Hospital
	CallURL       string `json:"call_url"`
	DirectionsURL string `json:"directions_url"`
}

// listResponse wraps every collection endpoint.
type listResponse[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

func newList[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Data: items, Count: len(items)}
}
