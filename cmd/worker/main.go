package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/pubsub"
	"github.com/go-pg/pg/v10"
	log "github.com/sirupsen/logrus"

	"github.com/douglatornell/randopony-tetra-sub000/internal/actors/membership"
	"github.com/douglatornell/randopony-tetra-sub000/internal/actors/postgres"
	subscriberactor "github.com/douglatornell/randopony-tetra-sub000/internal/actors/pubsub/subscriber"
	"github.com/douglatornell/randopony-tetra-sub000/internal/actors/sheets"
	"github.com/douglatornell/randopony-tetra-sub000/internal/config"
	"github.com/douglatornell/randopony-tetra-sub000/internal/core/usecase"
)

func init() {
	// Log as JSON instead of the default ASCII formatter.
	log.SetFormatter(&log.JSONFormatter{})

	// Output to stdout instead of the default stderr
	log.SetOutput(os.Stdout)

	// Only log the DebugLevel severity or above.
	log.SetLevel(log.DebugLevel)
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	opts, err := pg.ParseURL(cfg.PostgresURL)
	if err != nil {
		return err
	}
	db := pg.Connect(opts)
	defer db.Close()
	if err := db.Ping(ctx); err != nil {
		log.WithError(err).Error("db does not appear to be reachable")
		return err
	}
	repo, err := postgres.NewPostgresDB(postgres.PostgresDBArgs{DB: db})
	if err != nil {
		return err
	}

	rosterDoc, err := sheets.NewClient(ctx, cfg.GoogleServiceAccountJSON)
	if err != nil {
		return err
	}

	syncer := usecase.NewRosterSyncer(usecase.RosterSyncerArgs{
		Repository: repo,
		Membership: membership.NewClient(cfg.MembershipLookupURL),
		RosterDoc:  rosterDoc,
	})

	pubsubClient, err := pubsub.NewClient(ctx, cfg.PubSubProjectID)
	if err != nil {
		return err
	}
	defer pubsubClient.Close()

	subscriber := subscriberactor.NewSubscriber(subscriberactor.SubscriberArgs{
		Subscription:      pubsubClient.Subscription(cfg.RosterSyncSubscriptionID),
		RosterSyncHandler: syncer,
	})

	// start subscriber
	go func(ctx context.Context) {
		if err := subscriber.Consume(ctx); err != nil {
			panic(err)
		}
	}(ctx)

	// minimal liveness endpoint
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	go func() {
		if err := http.ListenAndServe(cfg.HTTPAddr, mux); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	log.
		WithField("http-server-addr", cfg.HTTPAddr).
		WithField("subscription", cfg.RosterSyncSubscriptionID).
		Info("worker up or soon to be up. listening to SIGTERM, SIGINT, SIGQUIT for stopping the worker")

	// Wait for signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	<-ch

	return nil
}

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}
