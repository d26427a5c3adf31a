// Package mq is the job-queue boundary: named jobs with JSON payloads on a
// durable at-least-once broker. Workers retry with exponential backoff and
// park exhausted messages on a dead queue for manual inspection.
package mq

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNoBroker means the process booted without a reachable broker.
var ErrNoBroker = errors.New("mq: no broker configured")

// Publisher is implemented by the RabbitMQ publisher. The interface keeps
// services and the scheduler independent of the broker wiring.
type Publisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
	Close()
}

// PublishJSON marshals a job payload and publishes it. A nil publisher
// (process booted without a broker) is reported, not a panic.
func PublishJSON(ctx context.Context, p Publisher, queue string, payload any) error {
	if p == nil {
		return ErrNoBroker
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.Publish(ctx, queue, body)
}
