package ports

import (
	"context"
	"time"
)

// StatusNotice is the DTO handed to the notification pipeline after a
// successful status transition.
type StatusNotice struct {
	ResumeID    string    `json:"resume_id"`
	RecruiterID string    `json:"recruiter_id"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	Reason      string    `json:"reason"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NotificationService delivers status-change notices to interested parties.
type NotificationService interface {
	Notify(ctx context.Context, notice StatusNotice) error
}
