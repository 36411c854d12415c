package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	OfferCreated   = "offer.created"
	OfferDeleted   = "offer.deleted"
	CommentCreated = "comment.created"
	FavoriteAdded  = "favorite.added"
)

// Publisher announces domain changes to other services.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }

type OfferEvent struct {
	OfferID  string `json:"offerId"`
	AuthorID string `json:"authorId"`
	City     string `json:"city,omitempty"`
}

type CommentEvent struct {
	CommentID string `json:"commentId"`
	OfferID   string `json:"offerId"`
	AuthorID  string `json:"authorId"`
	Rating    int    `json:"rating"`
}

type FavoriteEvent struct {
	UserID  string `json:"userId"`
	OfferID string `json:"offerId"`
}

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type RabbitConfig struct {
	URL      string
	Exchange string
	Timeout  time.Duration
}

// RabbitPublisher publishes JSON messages to a durable topic exchange.
type RabbitPublisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	timeout  time.Duration
}

func NewRabbitPublisher(cfg RabbitConfig) (*RabbitPublisher, error) {
	if cfg.URL == "" {
		return nil, errors.New("rabbitmq: empty url")
	}
	if cfg.Exchange == "" {
		return nil, errors.New("rabbitmq: empty exchange name")
	}
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: open channel: %w", err)
	}
	err = ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: declare exchange %q: %w", cfg.Exchange, err)
	}
	p := newRabbitPublisher(ch, cfg.Exchange, cfg.Timeout)
	p.conn = conn
	return p, nil
}

func newRabbitPublisher(ch channel, exchange string, timeout time.Duration) *RabbitPublisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RabbitPublisher{ch: ch, exchange: exchange, timeout: timeout}
}

func (p *RabbitPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal %s: %w", routingKey, err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         routingKey,
	}

	publishCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.ch.PublishWithContext(publishCtx, p.exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq: publish %s: %w", routingKey, err)
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	var firstErr error
	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			firstErr = err
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
