package view

import (
	"fmt"

	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/live"
)

// AmbulanceCard is one unit on the tracker.
type AmbulanceCard struct {
	domain.Ambulance
	StatusClass   string `json:"status_class"`
	PriorityClass string `json:"priority_class"`
}

// Tracker is the ambulance tracker panel.
type Tracker struct {
	Version uint64          `json:"version"`
	EnRoute int             `json:"en_route"`
	Units   []AmbulanceCard `json:"units"`
}

// RenderTracker renders the tracker snapshot.
func RenderTracker(snap live.Snapshot[domain.Ambulance]) Tracker {
	out := Tracker{Version: snap.Version, Units: make([]AmbulanceCard, 0, len(snap.Items))}
	for _, a := range snap.Items {
		if a.Status == domain.UnitEnRoute {
			out.EnRoute++
		}
		out.Units = append(out.Units, AmbulanceCard{
			Ambulance:     a,
			StatusClass:   UnitStatusClass(a.Status),
			PriorityClass: PriorityClass(a.Priority),
		})
	}
	return out
}

// LocationMarker is one unit on the live map.
type LocationMarker struct {
	domain.AmbulanceLocation
	StatusClass string `json:"status_class"`
	Position    string `json:"position"`
	SpeedLabel  string `json:"speed_label"`
}

// Map is the GPS map panel.
type Map struct {
	Version uint64           `json:"version"`
	Moving  int              `json:"moving"`
	Units   []LocationMarker `json:"units"`
}

// RenderMap renders the GPS snapshot.
func RenderMap(snap live.Snapshot[domain.AmbulanceLocation]) Map {
	out := Map{Version: snap.Version, Units: make([]LocationMarker, 0, len(snap.Items))}
	for _, l := range snap.Items {
		if l.Status == domain.MovementMoving {
			out.Moving++
		}
		out.Units = append(out.Units, LocationMarker{
			AmbulanceLocation: l,
			StatusClass:       MovementClass(l.Status),
			Position:          fmt.Sprintf("%.4f, %.4f", l.Lat, l.Lng),
			SpeedLabel:        fmt.Sprintf("%d km/h", l.Speed),
		})
	}
	return out
}

// PatientCard is one entry of the incoming queue.
type PatientCard struct {
	domain.Patient
	SeverityClass string `json:"severity_class"`
}

// PatientQueue is the incoming patient panel.
type PatientQueue struct {
	Version  uint64        `json:"version"`
	Count    int           `json:"count"`
	Patients []PatientCard `json:"patients"`
}

// RenderPatients renders the patient snapshot.
func RenderPatients(snap live.Snapshot[domain.Patient]) PatientQueue {
	out := PatientQueue{Version: snap.Version, Count: len(snap.Items), Patients: make([]PatientCard, 0, len(snap.Items))}
	for _, p := range snap.Items {
		out.Patients = append(out.Patients, PatientCard{Patient: p, SeverityClass: SeverityClass(p.Severity)})
	}
	return out
}

// NotificationItem is one entry of the operations feed.
type NotificationItem struct {
	domain.Notification
	TypeClass string `json:"type_class"`
	Icon      string `json:"icon"`
}

// Feed is the notification panel, newest first.
type Feed struct {
	Version uint64             `json:"version"`
	Items   []NotificationItem `json:"items"`
}

// RenderNotifications renders the notification snapshot.
func RenderNotifications(snap live.Snapshot[domain.Notification]) Feed {
	out := Feed{Version: snap.Version, Items: make([]NotificationItem, 0, len(snap.Items))}
	for _, n := range snap.Items {
		out.Items = append(out.Items, NotificationItem{
			Notification: n,
			TypeClass:    NotificationClass(n.Type),
			Icon:         NotificationIcon(n.Type),
		})
	}
	return out
}

// Records is a panel backed by a refresh bridge: the fetched rows as-is.
type Records[T any] struct {
	Version uint64 `json:"version"`
	Count   int    `json:"count"`
	Items   []T    `json:"items"`
}

// RenderRecords renders a bridged snapshot.
func RenderRecords[T any](snap live.Snapshot[T]) Records[T] {
	items := snap.Items
	if items == nil {
		items = []T{}
	}
	return Records[T]{Version: snap.Version, Count: len(items), Items: items}
}
