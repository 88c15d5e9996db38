package domain

import "time"

// UnitStatus is the dispatch state of an ambulance on the tracker panel.
type UnitStatus string

const (
	UnitEnRoute   UnitStatus = "en-route"
	UnitArrived   UnitStatus = "arrived"
	UnitAvailable UnitStatus = "available"
)

// MovementStatus is the GPS state of an ambulance on the map panel.
type MovementStatus string

const (
	MovementMoving  MovementStatus = "moving"
	MovementStopped MovementStatus = "stopped"
	MovementArrived MovementStatus = "arrived"
)

// Severity classifies a patient in the incoming queue.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityUrgent   Severity = "urgent"
	SeverityStable   Severity = "stable"
)

// NotificationType selects the treatment of a feed item.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
)

// NotificationTypes lists every NotificationType in a fixed order.
var NotificationTypes = []NotificationType{NotificationInfo, NotificationSuccess, NotificationWarning}

// Speed and heading bounds for a tracked vehicle.
const (
	MinSpeedKmh = 0
	MaxSpeedKmh = 80
	FullCircle  = 360
)

// Ambulance is a unit on the dispatch tracker.
type Ambulance struct {
	ID       string     `json:"id"`
	Unit     string     `json:"unit"`
	Status   UnitStatus `json:"status"`
	Patient  string     `json:"patient"`
	Location string     `json:"location"`
	ETA      string     `json:"eta"`
	Priority Priority   `json:"priority"`
}

// AmbulanceLocation is a GPS fix for a unit on the live map.
type AmbulanceLocation struct {
	ID          string         `json:"id"`
	Unit        string         `json:"unit"`
	Lat         float64        `json:"lat"`
	Lng         float64        `json:"lng"`
	Speed       int            `json:"speed"`
	Heading     int            `json:"heading"`
	Patient     string         `json:"patient"`
	Destination string         `json:"destination"`
	ETA         string         `json:"eta"`
	Distance    string         `json:"distance"`
	Status      MovementStatus `json:"status"`
}

// Patient is an inbound patient awaiting handover at the emergency room.
type Patient struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Age         int      `json:"age"`
	Condition   string   `json:"condition"`
	Severity    Severity `json:"severity"`
	ArrivalTime string   `json:"arrival_time"`
	Vitals      string   `json:"vitals"`
}

// Notification is an item in the operations feed, newest first.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Timestamp string           `json:"timestamp"`
	CreatedAt time.Time        `json:"created_at"`
}

// Valid reports whether s is a known UnitStatus.
func (s UnitStatus) Valid() bool {
	switch s {
	case UnitEnRoute, UnitArrived, UnitAvailable:
		return true
	}
	return false
}

// Valid reports whether s is a known MovementStatus.
func (s MovementStatus) Valid() bool {
	switch s {
	case MovementMoving, MovementStopped, MovementArrived:
		return true
	}
	return false
}

// Valid reports whether s is a known Severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityUrgent, SeverityStable:
		return true
	}
	return false
}

// Valid reports whether t is a known NotificationType.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationInfo, NotificationSuccess, NotificationWarning:
		return true
	}
	return false
}
