// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package broker publishes product events to RabbitMQ.
package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/MKhiriev/go-product-sync/internal/config"
	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/internal/utils"
	"github.com/MKhiriev/go-product-sync/models"
)

// RoutingKeyProductRegistered is the routing key of [ProductRegistered].
const RoutingKeyProductRegistered = "product.registered"

const confirmTimeout = 10 * time.Second

var (
	ErrNacked         = errors.New("broker did not confirm the message")
	ErrConfirmTimeout = errors.New("publisher confirm timeout")
)

// Publisher emits domain events.
//
//go:generate mockgen -source=publisher.go -destination=../mock/broker_mock.go -package=mock
type Publisher interface {
	ProductRegistered(ctx context.Context, product models.ProductRecord) error
	Close() error
}

// ProductRegistered is the body of a product.registered message.
type ProductRegistered struct {
	EventID    string               `json:"event_id"`
	Product    models.ProductRecord `json:"product"`
	OccurredAt time.Time            `json:"occurred_at"`
}

type confirmation interface {
	Done() <-chan struct{}
	Acked() bool
}

type channel interface {
	Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error)
	Close() error
}

type amqpChannel struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func (c *amqpChannel) Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error) {
	deferred, err := c.ch.PublishWithDeferredConfirmWithContext(ctx, exchange, key, false, false, msg)
	if err != nil {
		return nil, err
	}
	return deferred, nil
}

func (c *amqpChannel) Close() error {
	chErr := c.ch.Close()
	connErr := c.conn.Close()
	return errors.Join(chErr, connErr)
}

// RabbitMQPublisher publishes JSON events to a topic exchange with
// publisher confirms.
type RabbitMQPublisher struct {
	channel   channel
	exchange  string
	now       func() time.Time
	closeOnce sync.Once
	logger    *logger.Logger
}

// NewPublisher returns a RabbitMQ publisher when an AMQP URL is configured
// and a no-op publisher otherwise.
func NewPublisher(cfg config.Broker, log *logger.Logger) (Publisher, error) {
	if cfg.AMQPURL == "" {
		log.Info().Str("func", "broker.NewPublisher").Msg("no broker configured, events are not published")
		return NopPublisher{}, nil
	}
	return NewRabbitMQPublisher(cfg, log)
}

// NewRabbitMQPublisher dials the broker, declares the exchange and enables
// publisher confirms.
func NewRabbitMQPublisher(cfg config.Broker, log *logger.Logger) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	if err = ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare topic exchange: %w", err)
	}

	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to activate publisher confirms: %w", err)
	}

	log.Info().Str("exchange", cfg.Exchange).Msg("connected to RabbitMQ")
	return newRabbitMQPublisher(&amqpChannel{conn: conn, ch: ch}, cfg.Exchange, log), nil
}

func newRabbitMQPublisher(ch channel, exchange string, log *logger.Logger) *RabbitMQPublisher {
	return &RabbitMQPublisher{
		channel:  ch,
		exchange: exchange,
		now:      time.Now,
		logger:   log.WithComponent("broker"),
	}
}

// ProductRegistered publishes product and blocks until the broker confirms
// it or ctx ends.
func (p *RabbitMQPublisher) ProductRegistered(ctx context.Context, product models.ProductRecord) error {
	event := ProductRegistered{
		EventID:    utils.NewTraceID(),
		Product:    product,
		OccurredAt: p.now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Timestamp:    event.OccurredAt,
		Body:         body,
	}
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		msg.CorrelationId = traceID
	}

	log := p.logger.With().Str("event_id", event.EventID).Str("routing_key", RoutingKeyProductRegistered).Logger()

	confirm, err := p.channel.Publish(ctx, p.exchange, RoutingKeyProductRegistered, msg)
	if err != nil {
		log.Err(err).Msg("failed to publish message to exchange")
		return fmt.Errorf("publish call failed: %w", err)
	}

	timer := time.NewTimer(confirmTimeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-confirm.Done():
		if !confirm.Acked() {
			return ErrNacked
		}
		log.Debug().Msg("event published")
		return nil
	case <-timer.C:
		return ErrConfirmTimeout
	}
}

// Close shuts the channel and connection down once.
func (p *RabbitMQPublisher) Close() error {
	var err error
	p.closeOnce.Do(func() {
		err = p.channel.Close()
	})
	return err
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) ProductRegistered(context.Context, models.ProductRecord) error { return nil }

func (NopPublisher) Close() error { return nil }
