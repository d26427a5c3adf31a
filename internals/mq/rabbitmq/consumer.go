package rabbitmq

import (
	"context"
	"log"
	"runtime/debug"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"dormku_backend/internals/mq"
)

// HandlerFunc processes one delivered job body. A returned error schedules a
// retry (up to mq.MaxAttempts, exponential backoff); exhausted messages are
// parked on "<queue>.dead".
type HandlerFunc func(ctx context.Context, body []byte) error

type registration struct {
	prefetch int
	handler  HandlerFunc
}

// Consumer drains registered queues, one channel per queue, with manual
// ack and panic recovery around every handler call.
type Consumer struct {
	conn     *amqp.Connection
	handlers map[string]registration
	done     chan error
}

func NewConsumer(amqpURL string) (*Consumer, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		log.Printf("[MQ] consumer dial failed: %v", err)
		return nil, err
	}

	log.Println("✅ RabbitMQ consumer connected.")
	return &Consumer{
		conn:     conn,
		handlers: make(map[string]registration),
		done:     make(chan error, 1),
	}, nil
}

// RegisterHandler binds a handler to a queue. prefetch bounds the number of
// in-flight deliveries (the worker concurrency for that queue).
func (c *Consumer) RegisterHandler(queueName string, prefetch int, handler HandlerFunc) {
	c.handlers[queueName] = registration{prefetch: prefetch, handler: handler}
}

// Start consumes every registered queue in its own goroutine and blocks
// until the context is cancelled or a queue setup fails.
func (c *Consumer) Start(ctx context.Context) error {
	if len(c.handlers) == 0 {
		log.Println("[MQ] no handlers registered, consumer idle")
		return nil
	}
	for queueName, reg := range c.handlers {
		go c.consumeQueue(ctx, queueName, reg)
	}
	return <-c.done
}

func (c *Consumer) consumeQueue(ctx context.Context, queueName string, reg registration) {
	ch, err := c.conn.Channel()
	if err != nil {
		log.Printf("[MQ] channel open failed (%s): %v", queueName, err)
		c.done <- err
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		log.Printf("[MQ] queue declare failed (%s): %v", queueName, err)
		c.done <- err
		return
	}
	// Dead queue for messages that exhausted their retries.
	if _, err := ch.QueueDeclare(queueName+".dead", true, false, false, false, nil); err != nil {
		log.Printf("[MQ] dead queue declare failed (%s): %v", queueName, err)
		c.done <- err
		return
	}

	if err := ch.Qos(reg.prefetch, 0, false); err != nil {
		log.Printf("[MQ] qos failed (%s): %v", queueName, err)
		c.done <- err
		return
	}

	msgs, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		log.Printf("[MQ] consume failed (%s): %v", queueName, err)
		c.done <- err
		return
	}

	log.Printf("[MQ] consuming queue=%s prefetch=%d", q.Name, reg.prefetch)

	for {
		select {
		case d, ok := <-msgs:
			if !ok {
				c.done <- nil
				return
			}
			c.handleDelivery(ctx, ch, q.Name, reg.handler, d)
		case <-ctx.Done():
			log.Printf("[MQ] stopping consumer queue=%s", q.Name)
			c.done <- nil
			return
		}
	}
}

func (c *Consumer) handleDelivery(ctx context.Context, ch *amqp.Channel, queueName string, handler HandlerFunc, d amqp.Delivery) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[MQ] panic in handler queue=%s: %v\n%s", queueName, r, debug.Stack())
			c.scheduleRetry(ch, queueName, d)
		}
	}()

	if err := handler(ctx, d.Body); err != nil {
		log.Printf("[MQ] handler failed queue=%s attempt=%d: %v", queueName, attemptOf(d), err)
		c.scheduleRetry(ch, queueName, d)
		return
	}
	if err := d.Ack(false); err != nil {
		log.Printf("[MQ] ack failed queue=%s: %v", queueName, err)
	}
}

// scheduleRetry acks the failed delivery and republishes it after the
// backoff, with the attempt counter bumped. After mq.MaxAttempts the
// message goes to the dead queue instead.
func (c *Consumer) scheduleRetry(ch *amqp.Channel, queueName string, d amqp.Delivery) {
	attempt := attemptOf(d)

	if err := d.Ack(false); err != nil {
		log.Printf("[MQ] ack-before-retry failed queue=%s: %v", queueName, err)
		return
	}

	headers := amqp.Table{}
	for k, v := range d.Headers {
		headers[k] = v
	}
	headers[mq.AttemptsHeader] = int32(attempt + 1)

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Headers:      headers,
		Body:         d.Body,
	}

	if attempt >= mq.MaxAttempts {
		log.Printf("[MQ] retries exhausted queue=%s attempts=%d, parking on dead queue", queueName, attempt)
		if err := ch.PublishWithContext(context.Background(), "", queueName+".dead", false, false, pub); err != nil {
			log.Printf("[MQ] dead publish failed queue=%s: %v", queueName, err)
		}
		return
	}

	delay := mq.BackoffFor(attempt)
	log.Printf("[MQ] retrying queue=%s attempt=%d in %s", queueName, attempt+1, delay)
	time.AfterFunc(delay, func() {
		if err := ch.PublishWithContext(context.Background(), "", queueName, false, false, pub); err != nil {
			log.Printf("[MQ] retry publish failed queue=%s: %v", queueName, err)
		}
	})
}

// attemptOf reads the 1-based delivery attempt from the message headers.
func attemptOf(d amqp.Delivery) int {
	if d.Headers != nil {
		switch v := d.Headers[mq.AttemptsHeader].(type) {
		case int32:
			return int(v)
		case int64:
			return int(v)
		case int:
			return v
		}
	}
	return 1
}

func (c *Consumer) Close() {
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			log.Printf("[MQ] consumer close: %v", err)
		}
	}
}
