package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lshigami/talentgate/config"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

const publishTimeout = 5 * time.Second

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitMQSink publishes events as persistent JSON messages on a durable queue.
type RabbitMQSink struct {
	conn    *amqp.Connection
	channel channel
	queue   string
}

func dialRabbitMQ(url, queue string) (*RabbitMQSink, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		queue, // queue name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	return &RabbitMQSink{conn: conn, channel: ch, queue: q.Name}, nil
}

func (s *RabbitMQSink) Publish(ctx context.Context, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("event", event.Type).Msg("Failed to encode notification event")
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err = s.channel.PublishWithContext(
		ctx,
		"",      // exchange
		s.queue, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         event.Type,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		log.Warn().Err(err).Str("event", event.Type).Str("queue", s.queue).Msg("Failed to publish notification event")
	}
}

func (s *RabbitMQSink) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// NewSink connects to RabbitMQ when RABBITMQ_URL is set and falls back to the
// log sink otherwise, or when the broker cannot be reached at startup.
func NewSink(lc fx.Lifecycle, cfg *config.Config) Sink {
	if cfg.Notification.RabbitMQURL == "" {
		log.Info().Msg("RABBITMQ_URL is not set. Notification events will only be logged.")
		return NewLogSink()
	}

	sink, err := dialRabbitMQ(cfg.Notification.RabbitMQURL, cfg.Notification.Queue)
	if err != nil {
		log.Warn().Err(err).Msg("Notification broker unavailable, falling back to log sink")
		return NewLogSink()
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Closing RabbitMQ connection...")
			return sink.Close()
		},
	})
	log.Info().Str("queue", sink.queue).Msg("Connected to RabbitMQ for notification events")
	return sink
}
