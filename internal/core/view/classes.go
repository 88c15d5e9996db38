// Package view renders panel snapshots into the view models pushed to dashboard clients.
// Renderers are pure: they read a snapshot and never touch the store it came from.
package view

import (
	"fmt"

	"github.com/lifeline/response-dashboard/internal/core/domain"
)

var unitStatusClasses = map[domain.UnitStatus]string{
	domain.UnitEnRoute:   "bg-accent text-accent-foreground",
	domain.UnitArrived:   "bg-success text-success-foreground",
	domain.UnitAvailable: "bg-secondary text-secondary-foreground",
}

var priorityClasses = map[domain.Priority]string{
	domain.PriorityHigh:   "border-destructive bg-destructive/10",
	domain.PriorityMedium: "border-warning bg-warning/10",
	domain.PriorityLow:    "border-primary bg-primary/10",
}

var movementClasses = map[domain.MovementStatus]string{
	domain.MovementMoving:  "bg-accent text-accent-foreground",
	domain.MovementStopped: "bg-warning text-warning-foreground",
	domain.MovementArrived: "bg-success text-success-foreground",
}

var severityClasses = map[domain.Severity]string{
	domain.SeverityCritical: "bg-destructive text-destructive-foreground",
	domain.SeverityUrgent:   "bg-warning text-warning-foreground",
	domain.SeverityStable:   "bg-success text-success-foreground",
}

var notificationClasses = map[domain.NotificationType]string{
	domain.NotificationSuccess: "bg-success/10 text-success border-success/20",
	domain.NotificationWarning: "bg-warning/10 text-warning border-warning/20",
	domain.NotificationInfo:    "bg-accent/10 text-accent border-accent/20",
}

var notificationIcons = map[domain.NotificationType]string{
	domain.NotificationSuccess: "check-circle",
	domain.NotificationWarning: "alert-triangle",
	domain.NotificationInfo:    "info",
}

// class looks up the treatment for v. A value outside the table is a programming error.
func class[K ~string](table map[K]string, what string, v K) string {
	c, ok := table[v]
	if !ok {
		panic(fmt.Sprintf("view: unknown %s %q", what, string(v)))
	}
	return c
}

// UnitStatusClass returns the badge classes for a tracker unit status.
func UnitStatusClass(s domain.UnitStatus) string { return class(unitStatusClasses, "unit status", s) }

// PriorityClass returns the card border classes for a dispatch priority.
func PriorityClass(p domain.Priority) string { return class(priorityClasses, "priority", p) }

// MovementClass returns the badge classes for a GPS movement status.
func MovementClass(s domain.MovementStatus) string {
	return class(movementClasses, "movement status", s)
}

// SeverityClass returns the badge classes for a patient severity.
func SeverityClass(s domain.Severity) string { return class(severityClasses, "severity", s) }

// NotificationClass returns the badge classes for a notification type.
func NotificationClass(t domain.NotificationType) string {
	return class(notificationClasses, "notification type", t)
}

// NotificationIcon names the icon shown next to a notification.
func NotificationIcon(t domain.NotificationType) string {
	return class(notificationIcons, "notification type", t)
}
