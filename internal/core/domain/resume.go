package domain

import (
	"errors"
	"time"
)

// ResumeStatus represents the review state of a submitted resume.
type ResumeStatus string

const (
	StatusApplied   ResumeStatus = "applied"
	StatusScreening ResumeStatus = "screening"
	StatusInterview ResumeStatus = "interview"
	StatusAccepted  ResumeStatus = "accepted"
	StatusRejected  ResumeStatus = "rejected"
)

var ErrResumeNotFound = errors.New("resume not found")
var ErrInvalidStatus = errors.New("invalid resume status")

// IsValid reports whether s is a known resume status.
func (s ResumeStatus) IsValid() bool {
	switch s {
	case StatusApplied, StatusScreening, StatusInterview, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Resume is the applicant-owned document under review. Status is mutated
// exclusively through the status workflow, never by direct field update.
// Recruiters may move a resume between any two statuses, including the one
// it already has; a re-affirmation is a valid business event and is logged
// like any other transition.
type Resume struct {
	ID           string       `json:"id"`
	AuthorID     string       `json:"author_id"`
	AuthorName   string       `json:"author_name"`
	Title        string       `json:"title"`
	Introduction string       `json:"introduction"`
	Status       ResumeStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ResumeStatusLog is one immutable entry in a resume's audit trail. Entries
// are written in the same transaction as the status update, so the chain of
// OldStatus/NewStatus values reconstructs the full history.
type ResumeStatusLog struct {
	ID          string       `json:"id"`
	ResumeID    string       `json:"resume_id"`
	RecruiterID string       `json:"recruiter_id"`
	OldStatus   ResumeStatus `json:"old_status"`
	NewStatus   ResumeStatus `json:"new_status"`
	Reason      string       `json:"reason"`
	CreatedAt   time.Time    `json:"created_at"`
}
