package handler

import "time"

type createResumeRequest struct {
	Title        string `json:"title"        validate:"required"`
	Introduction string `json:"introduction" validate:"required,min=150"`
}

type updateResumeRequest struct {
	Title        string `json:"title"        validate:"omitempty"`
	Introduction string `json:"introduction" validate:"omitempty,min=150"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=applied screening interview accepted rejected"`
	Reason string `json:"reason" validate:"required"`
}

type statusLogResponse struct {
	ID          string    `json:"id"`
	ResumeID    string    `json:"resume_id"`
	RecruiterID string    `json:"recruiter_id"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}
