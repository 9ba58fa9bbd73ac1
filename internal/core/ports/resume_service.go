package ports

import (
	"context"

	"github.com/careerhub/resume-api/internal/core/domain"
)

// CreateResumeInput carries the data needed to submit a new resume.
type CreateResumeInput struct {
	AuthorID     string
	AuthorName   string
	Title        string
	Introduction string
}

// ListResumesInput carries the parameters for the list endpoint. Role decides
// whether the listing is scoped to the caller's own resumes.
type ListResumesInput struct {
	ActorID string
	Role    string
	Status  string
	Sort    string // "asc" or "desc" (default)
}

// UpdateResumeInput carries a partial owner-side update.
type UpdateResumeInput struct {
	ActorID      string
	ResumeID     string
	Title        string
	Introduction string
}

// TransitionInput carries a recruiter's status-change request. The caller's
// recruiter role is enforced upstream by the RBAC middleware; the service
// assumes it holds and focuses on data consistency.
type TransitionInput struct {
	ActorID  string
	ResumeID string
	Status   domain.ResumeStatus
	Reason   string
}

// ResumeService defines use-case operations for resumes.
type ResumeService interface {
	Create(ctx context.Context, input CreateResumeInput) (*domain.Resume, error)
	List(ctx context.Context, input ListResumesInput) ([]*domain.Resume, error)
	// Get scopes applicants to their own resumes; a resume owned by someone
	// else is indistinguishable from a missing one.
	Get(ctx context.Context, actorID, role, resumeID string) (*domain.Resume, error)
	Update(ctx context.Context, input UpdateResumeInput) (*domain.Resume, error)
	Delete(ctx context.Context, actorID, resumeID string) error

	// UpdateStatus performs the audited status transition. Transitioning to
	// the current status is permitted and still logged.
	UpdateStatus(ctx context.Context, input TransitionInput) (*domain.ResumeStatusLog, error)
	// History returns the audit log newest-first; a resume with no entries
	// fails with domain.ErrResumeNotFound.
	History(ctx context.Context, resumeID string) ([]*domain.ResumeStatusLog, error)
}
