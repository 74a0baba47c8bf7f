package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/pubsub"
	log "github.com/sirupsen/logrus"

	"github.com/douglatornell/randopony-tetra-sub000/internal/core/model"
	"github.com/douglatornell/randopony-tetra-sub000/internal/core/ports"
)

// SubscriberArgs contain the mandatory arguments to build a subscriber.
type SubscriberArgs struct {
	// Subscription is a pubsub subscription
	Subscription *pubsub.Subscription

	// RosterSyncHandler handles decoded roster-sync jobs
	RosterSyncHandler ports.RosterSyncHandler
}

// Subscriber is a pubsub async subscriber for roster-sync jobs.
type Subscriber struct {
	subscription      *pubsub.Subscription
	rosterSyncHandler ports.RosterSyncHandler
}

// NewSubscriber creates a subscriber.
func NewSubscriber(args SubscriberArgs) *Subscriber {
	return &Subscriber{
		subscription:      args.Subscription,
		rosterSyncHandler: args.RosterSyncHandler,
	}
}

// Consume starts the subscriber. This is a blocking method and should be started
// in its own go-routine. The way to terminate the method is to cancel the
// context in input. Handler failures Nack the message so the idempotent sync is
// redelivered and re-run whole.
func (s *Subscriber) Consume(ctx context.Context) error {
	if err := s.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		job, err := decodeMsgIntoJob(msg)
		if err != nil {
			log.WithError(err).Error("error decoding message into roster-sync job")
			// Undecodable payloads can never succeed; drop them.
			msg.Ack()
			return
		}

		if err := s.rosterSyncHandler.Handle(ctx, *job); err != nil {
			log.WithError(err).
				WithField("event_id", job.EventID).
				WithField("event_kind", job.EventKind).
				Error("error in roster-sync handler")
			msg.Nack()
		} else {
			msg.Ack()
		}
	}); err != nil {
		return fmt.Errorf("error receiving messages from subscription: %w", err)
	}
	return nil
}

func decodeMsgIntoJob(msg *pubsub.Message) (*model.RosterSyncJob, error) {
	if msg == nil {
		return nil, errors.New("cannot decode nil pubsub msg")
	}
	job := new(model.RosterSyncJob)
	if err := json.Unmarshal(msg.Data, job); err != nil {
		return nil, fmt.Errorf("json unmarshal error: %w", err)
	}
	if job.RosterDocID == "" {
		return nil, errors.New("roster-sync job missing roster doc reference")
	}
	return job, nil
}
