package rabbitmq

import (
	"context"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher holds the connection and channel for publishing jobs.
// It implements the mq.Publisher interface.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewPublisher(amqpURL string) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		log.Printf("[MQ] publisher dial failed: %v", err)
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("[MQ] publisher channel failed: %v", err)
		_ = conn.Close()
		return nil, err
	}

	log.Println("✅ RabbitMQ publisher connected.")
	return &Publisher{conn: conn, channel: ch}, nil
}

// Publish sends a persistent message to a queue via the default exchange.
func (p *Publisher) Publish(ctx context.Context, queue string, body []byte) error {
	// Declare idempotently so enqueue works before any worker has started.
	if _, err := p.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return err
	}

	err := p.channel.PublishWithContext(ctx,
		"",    // default exchange
		queue, // routing key = queue name
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		log.Printf("[MQ] publish to %s failed: %v", queue, err)
		return err
	}
	return nil
}

func (p *Publisher) Close() {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			log.Printf("[MQ] channel close: %v", err)
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			log.Printf("[MQ] connection close: %v", err)
		}
	}
	log.Println("[MQ] publisher closed.")
}
