package rabbitmq

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"storefront/pkg/logging"

	amqp "github.com/streadway/amqp"
)

var logger = logging.New(os.Stdout)

const catalogQueue = "catalog_events"

// Client holds the RabbitMQ connection and channel used for catalog events.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares the catalog
// event queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		catalogQueue, // name
		true,         // durable
		false,        // delete when unused
		false,        // exclusive
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", catalogQueue, err)
	}

	logger.Info().Str("queue", catalogQueue).Msg("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishCatalogEvent publishes a catalog change (product.created,
// product.updated, product.deleted) as a persistent JSON message.
func (c *Client) PublishCatalogEvent(event string, payload map[string]interface{}) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(map[string]interface{}{
		"event":   event,
		"payload": payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal catalog event: %w", err)
	}

	err = c.channel.Publish(
		"",           // exchange: default
		catalogQueue, // routing key: the queue name
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish catalog event: %w", err)
	}

	logger.Debug().Str("event", event).Msg("published catalog event")
	return nil
}

// ConsumeCatalogEvents hands every catalog event to messageHandler in a
// background goroutine, acking on success and requeueing on failure.
func (c *Client) ConsumeCatalogEvents(messageHandler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		catalogQueue, // queue
		"",           // consumer tag
		false,        // auto-ack: off, handlers ack manually
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			if err := messageHandler(msg); err != nil {
				logger.Error().Err(err).Uint64("tag", msg.DeliveryTag).Msg("failed to process catalog event")
				if requeueErr := msg.Nack(false, true); requeueErr != nil {
					logger.Error().Err(requeueErr).Uint64("tag", msg.DeliveryTag).Msg("failed to nack catalog event")
				}
			} else if ackErr := msg.Ack(false); ackErr != nil {
				logger.Error().Err(ackErr).Uint64("tag", msg.DeliveryTag).Msg("failed to ack catalog event")
			}
		}
	}()

	return nil
}
