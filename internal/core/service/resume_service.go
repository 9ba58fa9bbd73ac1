package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/careerhub/resume-api/internal/core/domain"
	"github.com/careerhub/resume-api/internal/core/ports"
)

type resumeService struct {
	repo ports.ResumeRepository
	log  zerolog.Logger
}

// NewResumeService returns a ResumeService implementation.
func NewResumeService(repo ports.ResumeRepository, log zerolog.Logger) ports.ResumeService {
	return &resumeService{repo: repo, log: log}
}

func (s *resumeService) Create(ctx context.Context, input ports.CreateResumeInput) (*domain.Resume, error) {
	now := time.Now().UTC()
	resume := &domain.Resume{
		AuthorID:     input.AuthorID,
		AuthorName:   input.AuthorName,
		Title:        input.Title,
		Introduction: input.Introduction,
		Status:       domain.StatusApplied,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, resume); err != nil {
		s.log.Error().Err(err).Msg("failed to create resume")
		return nil, err
	}

	s.log.Info().Str("resume_id", resume.ID).Str("author_id", input.AuthorID).Msg("resume created")
	return resume, nil
}

func (s *resumeService) List(ctx context.Context, input ports.ListResumesInput) ([]*domain.Resume, error) {
	filter := ports.ListResumesFilter{
		Status:  input.Status,
		SortAsc: strings.EqualFold(input.Sort, "asc"),
	}
	// Applicants only ever see their own resumes.
	if input.Role != domain.RoleRecruiter {
		filter.AuthorID = input.ActorID
	}
	return s.repo.List(ctx, filter)
}

func (s *resumeService) Get(ctx context.Context, actorID, role, resumeID string) (*domain.Resume, error) {
	authorID := ""
	if role != domain.RoleRecruiter {
		authorID = actorID
	}
	return s.repo.FindByID(ctx, resumeID, authorID)
}

func (s *resumeService) Update(ctx context.Context, input ports.UpdateResumeInput) (*domain.Resume, error) {
	if _, err := s.repo.FindByID(ctx, input.ResumeID, input.ActorID); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, input.ResumeID, input.ActorID, input.Title, input.Introduction)
}

func (s *resumeService) Delete(ctx context.Context, actorID, resumeID string) error {
	if _, err := s.repo.FindByID(ctx, resumeID, actorID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, resumeID, actorID)
}

// UpdateStatus performs the audited transition. The recruiter role check
// happens upstream in the RBAC middleware; this method assumes the caller is
// authorized and guarantees that the status update and its log entry commit
// together or not at all.
func (s *resumeService) UpdateStatus(ctx context.Context, input ports.TransitionInput) (*domain.ResumeStatusLog, error) {
	if !input.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	resume, err := s.repo.FindByID(ctx, input.ResumeID, "")
	if err != nil {
		return nil, err
	}

	entry := &domain.ResumeStatusLog{
		ResumeID:    resume.ID,
		RecruiterID: input.ActorID,
		OldStatus:   resume.Status,
		NewStatus:   input.Status,
		Reason:      input.Reason,
		CreatedAt:   time.Now().UTC(),
	}

	// Fails fatally on any write error. A partially applied transition is
	// rolled back by the repository, never retried here.
	if err := s.repo.TransitionStatus(ctx, entry); err != nil {
		s.log.Error().Err(err).
			Str("resume_id", input.ResumeID).
			Str("new_status", string(input.Status)).
			Msg("status transition failed")
		return nil, err
	}

	s.log.Info().
		Str("resume_id", resume.ID).
		Str("recruiter_id", input.ActorID).
		Str("old_status", string(entry.OldStatus)).
		Str("new_status", string(entry.NewStatus)).
		Msg("resume status updated")

	return entry, nil
}

func (s *resumeService) History(ctx context.Context, resumeID string) ([]*domain.ResumeStatusLog, error) {
	logs, err := s.repo.ListLogs(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, domain.ErrResumeNotFound
	}
	return logs, nil
}
