package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/careerhub/resume-api/internal/core/ports"
)

const statusChannel = "resume.status"

// NoticePublisher broadcasts status-change notices on a Redis Pub/Sub channel
// for downstream consumers (mailers, dashboards).
type NoticePublisher struct {
	client *redis.Client
}

func NewNoticePublisher(client *redis.Client) *NoticePublisher {
	return &NoticePublisher{client: client}
}

func (p *NoticePublisher) Publish(ctx context.Context, notice ports.StatusNotice) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}
	if err := p.client.Publish(ctx, statusChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish notice: %w", err)
	}
	return nil
}
