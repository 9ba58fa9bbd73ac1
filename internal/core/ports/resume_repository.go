package ports

import (
	"context"

	"github.com/careerhub/resume-api/internal/core/domain"
)

// ListResumesFilter carries all query parameters for listing resumes.
// AuthorID is enforced by the service layer for applicants.
type ListResumesFilter struct {
	AuthorID string // empty = no filter (recruiter); non-empty = scoped to author
	Status   string // optional: filter by resume status
	SortAsc  bool   // createdAt ordering; default newest-first
}

// ResumeRepository defines persistence operations for resumes and their
// status logs.
type ResumeRepository interface {
	Create(ctx context.Context, r *domain.Resume) error
	// FindByID retrieves a resume. When authorID is non-empty, the query is
	// additionally filtered by author (applicant scoping).
	FindByID(ctx context.Context, id string, authorID string) (*domain.Resume, error)
	List(ctx context.Context, filter ListResumesFilter) ([]*domain.Resume, error)
	// Update applies a partial update to title/introduction, scoped to the
	// author. Empty fields are left untouched.
	Update(ctx context.Context, id, authorID, title, introduction string) (*domain.Resume, error)
	Delete(ctx context.Context, id, authorID string) error

	// TransitionStatus atomically sets the resume's status to entry.NewStatus
	// and appends entry to the audit log, in a single transaction. The status
	// update is conditional on the resume still being in entry.OldStatus, so
	// a concurrent transition cannot break the log chain. Both writes commit
	// together or neither does.
	TransitionStatus(ctx context.Context, entry *domain.ResumeStatusLog) error
	// ListLogs returns a resume's status log entries ordered newest-first.
	ListLogs(ctx context.Context, resumeID string) ([]*domain.ResumeStatusLog, error)
}
