// Package dispatch publishes recorded notifications to an external broker so
// downstream delivery workers (push, email) can pick them up. The broker is
// optional: when no AMQP URL is configured the service runs without it and
// notifications stay available through the inbox API and the WebSocket feed.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/Dosada05/matchday-system/models"
)

const (
	exchangeName = "matchday.notifications"
	exchangeKind = "topic"
)

type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
}

// NewAMQPPublisher dials the broker and declares the notifications exchange.
// Routing keys follow "notification.<type>" so consumers can bind selectively.
func NewAMQPPublisher(amqpURL string, logger *slog.Logger) (*AMQPPublisher, error) {
	config := amqp.Config{
		Heartbeat: 30 * time.Second,
		Locale:    "en_US",
	}

	conn, err := amqp.DialConfig(amqpURL, config)
	if err != nil {
		return nil, fmt.Errorf("dispatch: dial amqp: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("dispatch: open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchangeName,
		exchangeKind,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("dispatch: declare exchange: %w", err)
	}

	return &AMQPPublisher{conn: conn, channel: channel, logger: logger}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, n *models.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("dispatch: marshal notification %s: %w", n.ID, err)
	}

	routingKey := "notification." + string(n.Type)
	err = p.channel.Publish(
		exchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    n.ID,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("dispatch: publish %s: %w", routingKey, err)
	}

	p.logger.Debug("notification dispatched", "notification_id", n.ID, "routing_key", routingKey)
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
