package simulation

import (
	"time"

	"github.com/google/uuid"

	"github.com/lifeline/response-dashboard/internal/core/domain"
)

// MaxNotifications caps the feed length.
const MaxNotifications = 5

// A draw strictly above the threshold fires the rule.
const (
	// trackerETAThreshold fires on roughly 30% of uniform draws, not 70%.
	trackerETAThreshold = 0.7
	// notificationThreshold fires on roughly 40% of uniform draws.
	notificationThreshold = 0.6
)

const freshNotificationStamp = "Just now"

// NotificationMessages are the synthetic feed messages.
var NotificationMessages = []string{
	"New patient incoming via AMB-418",
	"Medical team assembled for critical patient",
	"Equipment prepared in ER-2",
	"Blood type O+ requested",
	"Specialist consultation scheduled",
}

// StepTracker counts down the ETA of en-route units, each with its own draw.
func StepTracker(units []domain.Ambulance, r Rand) []domain.Ambulance {
	for i := range units {
		if units[i].Status != domain.UnitEnRoute {
			continue
		}
		if r.Float64() > trackerETAThreshold {
			units[i].ETA = CountdownETA(units[i].ETA)
		}
	}
	return units
}

// StepGPS jitters every moving unit.
func StepGPS(locs []domain.AmbulanceLocation, r Rand) []domain.AmbulanceLocation {
	for i := range locs {
		locs[i] = JitterLocation(locs[i], r)
	}
	return locs
}

// StepPatients counts down every patient's arrival time.
func StepPatients(patients []domain.Patient) []domain.Patient {
	for i := range patients {
		patients[i].ArrivalTime = CountdownETA(patients[i].ArrivalTime)
	}
	return patients
}

// StepNotifications maybe prepends a synthetic notification and keeps the newest MaxNotifications.
func StepNotifications(feed []domain.Notification, r Rand, now time.Time) []domain.Notification {
	if r.Float64() <= notificationThreshold {
		return feed
	}
	n := domain.Notification{
		ID:        uuid.NewString(),
		Type:      domain.NotificationTypes[r.IntN(len(domain.NotificationTypes))],
		Message:   NotificationMessages[r.IntN(len(NotificationMessages))],
		Timestamp: freshNotificationStamp,
		CreatedAt: now,
	}
	out := make([]domain.Notification, 0, min(len(feed)+1, MaxNotifications))
	out = append(out, n)
	for _, old := range feed {
		if len(out) == MaxNotifications {
			break
		}
		out = append(out, old)
	}
	return out
}
