// Package events publishes donation lifecycle events to a message broker.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"charity-transparency/internal/config"
	"charity-transparency/internal/models"

	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// channel is the subset of *amqp091.Channel used for publishing
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// AMQPPublisher sends donation events to a durable topic exchange
type AMQPPublisher struct {
	conn     *amqp091.Connection
	channel  channel
	exchange string
	logger   *slog.Logger
}

// NewAMQPPublisher dials the broker and declares the exchange
func NewAMQPPublisher(url, exchange string, logger *slog.Logger) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	publisher, err := newAMQPPublisher(ch, exchange, logger)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	publisher.conn = conn

	return publisher, nil
}

func newAMQPPublisher(ch channel, exchange string, logger *slog.Logger) (*AMQPPublisher, error) {
	err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPPublisher{
		channel:  ch,
		exchange: exchange,
		logger:   logger,
	}, nil
}

// Publish sends the event as persistent JSON routed by its type
func (p *AMQPPublisher) Publish(ctx context.Context, event *models.DonationEvent) error {
	body, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		event.RoutingKey(),
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    event.DonationID.String() + ":" + event.Type,
			Timestamp:    event.OccurredAt,
			Type:         event.Type,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	p.logger.InfoContext(ctx, "published donation event",
		"event_type", event.Type,
		"donation_id", event.DonationID,
		"exchange", p.exchange,
		"routing_key", event.RoutingKey())

	return nil
}

func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// LogPublisher writes events to the log when no broker is configured
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event *models.DonationEvent) error {
	p.logger.InfoContext(ctx, "donation event",
		"event_type", event.Type,
		"donation_id", event.DonationID,
		"amount", event.Amount.String(),
		"activity_id", event.ActivityID,
		"routing_key", event.RoutingKey())
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}

// Publisher is implemented by AMQPPublisher and LogPublisher
type Publisher interface {
	Publish(ctx context.Context, event *models.DonationEvent) error
	Close() error
}

// NewPublisher connects to the configured broker behind a circuit breaker, or
// returns a LogPublisher when no AMQP URL is set
func NewPublisher(cfg *config.MessagingConfig, logger *slog.Logger) (Publisher, error) {
	if cfg.AMQPURL == "" {
		logger.Info("no AMQP URL configured, donation events will only be logged")
		return NewLogPublisher(logger), nil
	}

	publisher, err := NewAMQPPublisher(cfg.AMQPURL, cfg.Exchange, logger)
	if err != nil {
		return nil, err
	}

	breaker := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:  cfg.BreakerMaxFailures,
		ResetTimeout: cfg.BreakerResetTimeout,
	})
	return NewBreakerPublisher(publisher, breaker, logger), nil
}
