package producers

import (
	"context"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/chrisdamba/heatwavesim/internal/models"
)

const publishTimeout = 5 * time.Second

// Publisher is the part of *amqp.Channel the producer needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQProducer publishes each record to a topic exchange with the record
// topic as routing key.
type RabbitMQProducer struct {
	conn     *amqp.Connection
	channel  Publisher
	exchange string
	prefix   string
}

func NewRabbitMQProducer(config *models.Config) (*RabbitMQProducer, error) {
	conn, err := amqp.DialConfig(config.RabbitMQURL, amqp.Config{
		Heartbeat: 10 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	if err := ch.ExchangeDeclare(config.RabbitMQExchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", config.RabbitMQExchange, err)
	}

	log.Printf("RabbitMQ producer connected, publishing to exchange %s", config.RabbitMQExchange)
	p := NewRabbitMQProducerFrom(ch, config.RabbitMQExchange, config.OutputFolder)
	p.conn = conn
	return p, nil
}

// NewRabbitMQProducerFrom wraps an open channel.
func NewRabbitMQProducerFrom(ch Publisher, exchange, prefix string) *RabbitMQProducer {
	return &RabbitMQProducer{channel: ch, exchange: exchange, prefix: prefix}
}

func (r *RabbitMQProducer) routingKey(topic string) string {
	if r.prefix == "" {
		return topic
	}
	return r.prefix + "." + topic
}

func (r *RabbitMQProducer) WriteMessage(topic string, msg []byte) error {
	if r.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err := r.channel.PublishWithContext(ctx,
		r.exchange,
		r.routingKey(topic),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Type:         topic,
			Body:         msg,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", r.routingKey(topic), err)
	}
	return nil
}

func (r *RabbitMQProducer) Close() error {
	var err error
	if r.channel != nil {
		err = r.channel.Close()
	}
	if r.conn != nil {
		if cerr := r.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
