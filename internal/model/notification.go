package model

import "time"

// Notification kinds.
const (
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationFailure = "failure"
)

// Notification records the outcome of an AI generation run so the user
// can review what happened to each project of a batch.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id"`

	// ProjectID links this notification to the project that was processed.
	ProjectID string `json:"project_id"`

	// Action names the generation action (e.g. "describe", "tasks").
	Action string `json:"action"`

	// Kind is one of the Notification* constants.
	Kind string `json:"kind"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"read"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at"`
}
