package simulation

import (
	"time"

	"github.com/lifeline/response-dashboard/internal/core/domain"
)

// The Seed functions return fresh lists on every call so sessions never share backing arrays.

// SeedAmbulances is the tracker panel's initial fleet.
func SeedAmbulances() []domain.Ambulance {
	return []domain.Ambulance{
		{ID: "1", Unit: "AMB-101", Status: domain.UnitEnRoute, Patient: "John Doe", Location: "5th Ave & Main St", ETA: "4 min", Priority: domain.PriorityHigh},
		{ID: "2", Unit: "AMB-205", Status: domain.UnitEnRoute, Patient: "Sarah Smith", Location: "Park Blvd", ETA: "7 min", Priority: domain.PriorityMedium},
		{ID: "3", Unit: "AMB-312", Status: domain.UnitArrived, Patient: "Michael Johnson", Location: "Hospital Bay 2", ETA: "0 min", Priority: domain.PriorityHigh},
		{ID: "4", Unit: "AMB-418", Status: domain.UnitEnRoute, Patient: "Emily Davis", Location: "Downtown Center", ETA: "12 min", Priority: domain.PriorityLow},
	}
}

// SeedLocations is the map panel's initial set of GPS fixes.
func SeedLocations() []domain.AmbulanceLocation {
	return []domain.AmbulanceLocation{
		{ID: "1", Unit: "AMB-101", Lat: 40.7589, Lng: -73.9851, Speed: 45, Heading: 135, Patient: "John Doe", Destination: "City Hospital", ETA: "4 min", Distance: "2.1 km", Status: domain.MovementMoving},
		{ID: "2", Unit: "AMB-205", Lat: 40.7614, Lng: -73.9776, Speed: 38, Heading: 90, Patient: "Sarah Smith", Destination: "Memorial Hospital", ETA: "7 min", Distance: "3.8 km", Status: domain.MovementMoving},
		{ID: "3", Unit: "AMB-312", Lat: 40.7489, Lng: -73.9680, Speed: 0, Heading: 0, Patient: "Michael Johnson", Destination: "Emergency Center", ETA: "0 min", Distance: "0 km", Status: domain.MovementArrived},
		{ID: "4", Unit: "AMB-418", Lat: 40.7549, Lng: -73.9840, Speed: 52, Heading: 270, Patient: "Emily Davis", Destination: "Central Hospital", ETA: "12 min", Distance: "5.4 km", Status: domain.MovementMoving},
	}
}

// SeedPatients is the incoming patient queue.
func SeedPatients() []domain.Patient {
	return []domain.Patient{
		{ID: "1", Name: "John Doe", Age: 45, Condition: "Cardiac Arrest", Severity: domain.SeverityCritical, ArrivalTime: "2 min", Vitals: "HR: 120, BP: 90/60"},
		{ID: "2", Name: "Sarah Smith", Age: 32, Condition: "Fracture", Severity: domain.SeverityStable, ArrivalTime: "5 min", Vitals: "HR: 80, BP: 120/80"},
		{ID: "3", Name: "Michael Johnson", Age: 58, Condition: "Stroke Symptoms", Severity: domain.SeverityCritical, ArrivalTime: "1 min", Vitals: "HR: 95, BP: 160/100"},
		{ID: "4", Name: "Emily Davis", Age: 24, Condition: "Allergic Reaction", Severity: domain.SeverityUrgent, ArrivalTime: "10 min", Vitals: "HR: 110, BP: 115/75"},
	}
}

// SeedNotifications is the initial operations feed, newest first.
func SeedNotifications(now time.Time) []domain.Notification {
	return []domain.Notification{
		{ID: "1", Type: domain.NotificationWarning, Message: "AMB-101 ETA updated: 4 minutes", Timestamp: "Just now", CreatedAt: now},
		{ID: "2", Type: domain.NotificationSuccess, Message: "Patient John Doe checked in successfully", Timestamp: "2 min ago", CreatedAt: now.Add(-2 * time.Minute)},
		{ID: "3", Type: domain.NotificationInfo, Message: "Emergency Room 3 now available", Timestamp: "5 min ago", CreatedAt: now.Add(-5 * time.Minute)},
	}
}
