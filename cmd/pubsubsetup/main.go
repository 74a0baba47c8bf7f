package main

import (
	"context"
	"log"
	"strings"

	"cloud.google.com/go/pubsub"

	"github.com/douglatornell/randopony-tetra-sub000/internal/config"
)

// pubsubsetup provisions the roster-sync topic and worker subscription for
// local development against the Pub/Sub emulator.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, cfg.PubSubProjectID)
	if err != nil {
		log.Fatalf("unable to create client for project %q: %v", cfg.PubSubProjectID, err)
	}
	defer client.Close()

	topic, err := client.CreateTopic(ctx, cfg.RosterSyncTopicID)
	if err != nil && !strings.Contains(err.Error(), "Topic already exists") {
		log.Fatalf("unable to create topic %s: %v", cfg.RosterSyncTopicID, err)
	} else if err != nil {
		topic = client.Topic(cfg.RosterSyncTopicID)
	}

	if _, err := client.CreateSubscription(ctx, cfg.RosterSyncSubscriptionID,
		pubsub.SubscriptionConfig{Topic: topic}); err != nil &&
		!strings.Contains(err.Error(), "Subscription already exists") {
		log.Fatalf("unable to create subscription %s: %v", cfg.RosterSyncSubscriptionID, err)
	}

	log.Printf("project, topic, subscription: [%s, %s, %s]",
		cfg.PubSubProjectID, cfg.RosterSyncTopicID, cfg.RosterSyncSubscriptionID)
}
