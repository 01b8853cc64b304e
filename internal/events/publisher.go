package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// DefaultChannel is used when no channel is configured.
const DefaultChannel = "trivia:questions"

const (
	TypeQuestionCreated = "question.created"
	TypeQuestionDeleted = "question.deleted"
)

// QuestionEvent is the Pub/Sub payload for question changes.
type QuestionEvent struct {
	Type       string    `json:"type"`
	QuestionID int       `json:"question_id"`
	Category   string    `json:"category,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type publishClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Publisher announces question changes on a Redis channel.
type Publisher struct {
	redis   publishClient
	channel string
	now     func() time.Time
	logger  zerolog.Logger
}

var _ trivia.ChangeNotifier = (*Publisher)(nil)

// NewPublisher creates a Redis backed change notifier.
func NewPublisher(client publishClient, channel string, logger zerolog.Logger) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{
		redis:   client,
		channel: channel,
		now:     time.Now,
		logger:  logger.With().Str("component", "question_events").Logger(),
	}
}

func (p *Publisher) QuestionCreated(ctx context.Context, q trivia.Question) error {
	return p.publish(ctx, QuestionEvent{
		Type:       TypeQuestionCreated,
		QuestionID: q.ID,
		Category:   q.Category,
	})
}

func (p *Publisher) QuestionDeleted(ctx context.Context, id int) error {
	return p.publish(ctx, QuestionEvent{
		Type:       TypeQuestionDeleted,
		QuestionID: id,
	})
}

func (p *Publisher) publish(ctx context.Context, evt QuestionEvent) error {
	evt.OccurredAt = p.now().UTC()
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", evt.Type, err)
	}
	receivers, err := p.redis.Publish(ctx, p.channel, data).Result()
	if err != nil {
		return fmt.Errorf("publish %s event: %w", evt.Type, err)
	}
	p.logger.Debug().
		Str("type", evt.Type).
		Int("question_id", evt.QuestionID).
		Int64("receivers", receivers).
		Msg("question event published")
	return nil
}
