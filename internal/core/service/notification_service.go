package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/careerhub/resume-api/internal/core/ports"
)

// NoticePublisher abstracts the outbound notice channel (Redis Pub/Sub).
type NoticePublisher interface {
	Publish(ctx context.Context, notice ports.StatusNotice) error
}

type notificationService struct {
	publisher NoticePublisher
	log       zerolog.Logger
}

// NewNotificationService returns a NotificationService that records each
// notice and publishes it for downstream consumers.
func NewNotificationService(publisher NoticePublisher, log zerolog.Logger) ports.NotificationService {
	return &notificationService{publisher: publisher, log: log}
}

// Notify delivers a single status-change notice. A publish failure is
// non-fatal: the transition has already committed, so the notice is logged
// and dropped rather than surfaced to the caller.
func (s *notificationService) Notify(ctx context.Context, notice ports.StatusNotice) error {
	s.log.Info().
		Str("resume_id", notice.ResumeID).
		Str("recruiter_id", notice.RecruiterID).
		Str("old_status", notice.OldStatus).
		Str("new_status", notice.NewStatus).
		Msg("status change notice")

	if err := s.publisher.Publish(ctx, notice); err != nil {
		s.log.Warn().Err(err).Str("resume_id", notice.ResumeID).Msg("failed to publish status notice")
	}
	return nil
}
