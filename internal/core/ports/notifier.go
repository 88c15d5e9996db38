package ports

import "context"

// NoticeLevel selects the toast treatment.
type NoticeLevel string

const (
	NoticeInfo        NoticeLevel = "info"
	NoticeDestructive NoticeLevel = "destructive"
)

// Notice is a transient user-visible message.
type Notice struct {
	Level       NoticeLevel `json:"level"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
}

// Notifier surfaces notices to the user. Implementations must not block for long.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}
