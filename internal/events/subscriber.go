package events

import (
	"context"
	"encoding/json"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var received = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "trivia",
	Name:      "question_events_received_total",
	Help:      "Question change events observed on the Pub/Sub channel.",
}, []string{"type"})

// Subscriber follows the question channel and records every change it sees.
// Running one per instance gives an audit trail of mutations made by any
// replica.
type Subscriber struct {
	redis   *redis.Client
	channel string
	logger  zerolog.Logger
}

func NewSubscriber(client *redis.Client, channel string, logger zerolog.Logger) *Subscriber {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Subscriber{
		redis:   client,
		channel: channel,
		logger:  logger.With().Str("component", "question_events_subscriber").Logger(),
	}
}

// Run subscribes to the channel and blocks until ctx is cancelled.
func (s *Subscriber) Run(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}

	sub := s.redis.Subscribe(ctx, s.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			s.handle(msg.Payload)
		}
	}
}

func (s *Subscriber) handle(payload string) {
	var evt QuestionEvent
	if err := json.Unmarshal([]byte(payload), &evt); err != nil {
		s.logger.Warn().Err(err).Msg("failed to decode question event")
		received.WithLabelValues("invalid").Inc()
		return
	}
	received.WithLabelValues(evt.Type).Inc()
	s.logger.Info().
		Str("type", evt.Type).
		Int("question_id", evt.QuestionID).
		Str("category", evt.Category).
		Time("occurred_at", evt.OccurredAt).
		Msg("question changed")
}
