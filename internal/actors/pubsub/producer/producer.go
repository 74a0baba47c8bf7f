package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/pubsub"

	"github.com/douglatornell/randopony-tetra-sub000/internal/core/model"
)

// NewProducer creates a new producer.
func NewProducer(topic *pubsub.Topic) (*Producer, error) {
	if topic == nil {
		return nil, errors.New("topic is nil")
	}
	return &Producer{topic: topic}, nil
}

// Producer is the pubsub producer of roster-sync jobs. It implements the
// Enqueuer port.
type Producer struct {
	topic *pubsub.Topic
}

// Enqueue publishes one roster-sync job.
func (p *Producer) Enqueue(ctx context.Context, job model.RosterSyncJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("error marshaling roster-sync job: %w", err)
	}
	result := p.topic.Publish(ctx, &pubsub.Message{
		Data: data,
	})
	// Block until the result is returned and a server-generated
	// ID is returned for the published message.
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("pubsub: result.Get: %w", err)
	}
	return nil
}
