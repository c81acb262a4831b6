package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lesson-market/pkg/config"
	"lesson-market/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const PurchaseExchange = "purchases"

// PurchaseEvent is published after a purchase row is committed.
type PurchaseEvent struct {
	PurchaseID string    `json:"purchase_id"`
	Kind       string    `json:"kind"`
	ContentID  string    `json:"content_id"`
	UserID     string    `json:"user_id"`
	Amount     int       `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RoutingKey is "purchase.<kind>" so consumers can bind per content type.
func (e PurchaseEvent) RoutingKey() string {
	return "purchase." + e.Kind
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	if cfg.RabbitMQHost == "" {
		return nil, fmt.Errorf("RABBITMQ_HOST is not configured")
	}
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		PurchaseExchange, // name
		"topic",          // type
		true,             // durable
		false,            // auto-deleted
		false,            // internal
		false,            // no-wait
		nil,              // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishPurchase publishes a persistent purchase event.
func (c *Client) PublishPurchase(ctx context.Context, event PurchaseEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal purchase event: %w", err)
	}

	err = c.channel.PublishWithContext(ctx,
		PurchaseExchange,   // exchange
		event.RoutingKey(), // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			MessageId:    event.PurchaseID,
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish purchase %s: %v", event.PurchaseID, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published %s for %s", event.RoutingKey(), event.ContentID)
	return nil
}
