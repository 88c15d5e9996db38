package domain

import (
	"errors"
	"time"
)

// Kind names a backend record collection. Change feeds are scoped to one Kind.
type Kind string

const (
	KindAmbulances        Kind = "ambulances"
	KindEmergencyRequests Kind = "emergency_requests"
	KindHospitals         Kind = "hospitals"
	KindCommunityPosts    Kind = "community_posts"
	KindMedicalArticles   Kind = "medical_articles"
)

// Kinds lists every record kind the dashboard reads.
var Kinds = []Kind{KindAmbulances, KindEmergencyRequests, KindHospitals, KindCommunityPosts, KindMedicalArticles}

// Priority is the urgency of a dispatch.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// AmbulanceStatus is the fleet availability of a vehicle.
type AmbulanceStatus string

const (
	AmbulanceAvailable   AmbulanceStatus = "available"
	AmbulanceBusy        AmbulanceStatus = "busy"
	AmbulanceMaintenance AmbulanceStatus = "maintenance"
)

// RequestStatus is the lifecycle of an emergency request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAssigned  RequestStatus = "assigned"
	RequestInTransit RequestStatus = "in_transit"
	RequestCompleted RequestStatus = "completed"
	RequestCancelled RequestStatus = "cancelled"
)

// PostType classifies a community post.
type PostType string

const (
	PostBloodRequest    PostType = "blood_request"
	PostMedicalHelp     PostType = "medical_help"
	PostResourceSharing PostType = "resource_sharing"
	PostGeneral         PostType = "general"
)

// BloodTypes is the closed set accepted on blood requests.
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

var (
	ErrMissingCoordinates  = errors.New("please provide pickup location coordinates")
	ErrLocationUnavailable = errors.New("unable to get your location, please enter manually")
	ErrInvalidRecord       = errors.New("invalid record")
	ErrRecordNotFound      = errors.New("record not found")
	ErrSubmissionInFlight  = errors.New("an identical request is already being submitted")
)

// FleetAmbulance is a row of the ambulances collection.
type FleetAmbulance struct {
	ID               string          `json:"id" bson:"_id,omitempty"`
	VehicleNumber    string          `json:"vehicle_number" bson:"vehicle_number"`
	Status           AmbulanceStatus `json:"status" bson:"status"`
	CurrentLatitude  *float64        `json:"current_latitude,omitempty" bson:"current_latitude,omitempty"`
	CurrentLongitude *float64        `json:"current_longitude,omitempty" bson:"current_longitude,omitempty"`
	DriverID         string          `json:"driver_id,omitempty" bson:"driver_id,omitempty"`
	Equipment        []string        `json:"equipment" bson:"equipment"`
	CreatedAt        time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" bson:"updated_at"`
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// EmergencyRequest is a row of the emergency_requests collection.
type EmergencyRequest struct {
	ID                   string        `json:"id" bson:"_id,omitempty"`
	PatientID            string        `json:"patient_id" bson:"patient_id"`
	PickupAddress        string        `json:"pickup_address" bson:"pickup_address"`
	PickupLatitude       float64       `json:"pickup_latitude" bson:"pickup_latitude"`
	PickupLongitude      float64       `json:"pickup_longitude" bson:"pickup_longitude"`
	PatientCondition     string        `json:"patient_condition,omitempty" bson:"patient_condition,omitempty"`
	Priority             Priority      `json:"priority" bson:"priority"`
	Status               RequestStatus `json:"status" bson:"status"`
	AmbulanceID          string        `json:"ambulance_id,omitempty" bson:"ambulance_id,omitempty"`
	HospitalID           string        `json:"hospital_id,omitempty" bson:"hospital_id,omitempty"`
	DestinationAddress   string        `json:"destination_address,omitempty" bson:"destination_address,omitempty"`
	DestinationLatitude  *float64      `json:"destination_latitude,omitempty" bson:"destination_latitude,omitempty"`
	DestinationLongitude *float64      `json:"destination_longitude,omitempty" bson:"destination_longitude,omitempty"`
	EstimatedArrivalTime *time.Time    `json:"estimated_arrival_time,omitempty" bson:"estimated_arrival_time,omitempty"`
	Notes                string        `json:"notes,omitempty" bson:"notes,omitempty"`
	IdempotencyKey       string        `json:"-" bson:"idempotency_key,omitempty"`
	CreatedAt            time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at" bson:"updated_at"`
}

// Hospital is a row of the hospitals collection.
type Hospital struct {
	ID                string    `json:"id" bson:"_id,omitempty"`
	Name              string    `json:"name" bson:"name"`
	Address           string    `json:"address" bson:"address"`
	Phone             string    `json:"phone" bson:"phone"`
	Latitude          float64   `json:"latitude" bson:"latitude"`
	Longitude         float64   `json:"longitude" bson:"longitude"`
	AvailableBeds     int       `json:"available_beds" bson:"available_beds"`
	EmergencyCapacity int       `json:"emergency_capacity" bson:"emergency_capacity"`
	Specialties       []string  `json:"specialties" bson:"specialties"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
}

// CommunityPost is a row of the community_posts collection.
type CommunityPost struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Content     string    `json:"content" bson:"content"`
	PostType    PostType  `json:"post_type" bson:"post_type"`
	BloodType   string    `json:"blood_type,omitempty" bson:"blood_type,omitempty"`
	Location    string    `json:"location,omitempty" bson:"location,omitempty"`
	ContactInfo string    `json:"contact_info,omitempty" bson:"contact_info,omitempty"`
	Urgent      bool      `json:"urgent" bson:"urgent"`
	Resolved    bool      `json:"resolved" bson:"resolved"`
	UserID      string    `json:"user_id" bson:"user_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// MedicalArticle is a row of the medical_articles collection.
type MedicalArticle struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	Category  string    `json:"category" bson:"category"`
	Content   string    `json:"content" bson:"content"`
	Tags      []string  `json:"tags" bson:"tags"`
	ImageURL  string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	AuthorID  string    `json:"author_id,omitempty" bson:"author_id,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// ArticleCategories are the library filters offered to readers. "all" disables filtering.
var ArticleCategories = []string{"all", "First Aid", "Emergency", "Cardiac", "Respiratory", "Trauma", "Pediatric"}

// Valid reports whether p is a known Priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Valid reports whether s is a known AmbulanceStatus.
func (s AmbulanceStatus) Valid() bool {
	switch s {
	case AmbulanceAvailable, AmbulanceBusy, AmbulanceMaintenance:
		return true
	}
	return false
}

// Valid reports whether s is a known RequestStatus.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestAssigned, RequestInTransit, RequestCompleted, RequestCancelled:
		return true
	}
	return false
}

// Valid reports whether t is a known PostType.
func (t PostType) Valid() bool {
	switch t {
	case PostBloodRequest, PostMedicalHelp, PostResourceSharing, PostGeneral:
		return true
	}
	return false
}

// ValidBloodType reports whether bt is in BloodTypes.
func ValidBloodType(bt string) bool {
	for _, v := range BloodTypes {
		if v == bt {
			return true
		}
	}
	return false
}
