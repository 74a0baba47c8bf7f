package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/go-pg/pg/v10"
	log "github.com/sirupsen/logrus"

	"github.com/douglatornell/randopony-tetra-sub000/internal/actors/httpapi"
	"github.com/douglatornell/randopony-tetra-sub000/internal/actors/mailer"
	"github.com/douglatornell/randopony-tetra-sub000/internal/actors/membership"
	"github.com/douglatornell/randopony-tetra-sub000/internal/actors/postgres"
	produceractor "github.com/douglatornell/randopony-tetra-sub000/internal/actors/pubsub/producer"
	"github.com/douglatornell/randopony-tetra-sub000/internal/config"
	"github.com/douglatornell/randopony-tetra-sub000/internal/core/clock"
	"github.com/douglatornell/randopony-tetra-sub000/internal/core/ports"
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

	clk, err := clock.New(cfg.Timezone)
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
		log.WithError(err).Error("could not initialize postgres actor")
		return err
	}

	pubsubClient, err := pubsub.NewClient(ctx, cfg.PubSubProjectID)
	if err != nil {
		return err
	}
	defer pubsubClient.Close()
	producer, err := produceractor.NewProducer(pubsubClient.Topic(cfg.RosterSyncTopicID))
	if err != nil {
		return err
	}

	var sender ports.Mailer
	if cfg.ResendAPIKey != "" {
		sender, err = mailer.NewResend(cfg.ResendAPIKey)
		if err != nil {
			return err
		}
	} else {
		log.Warn("no mail credentials configured, using noop mailer")
		sender = mailer.NewNoop()
	}

	composer := usecase.NewComposer(cfg.EmailFrom, usecase.Links{
		BaseURL:             cfg.BaseURL,
		MembershipSignupURL: cfg.MembershipSignupURL,
		EntryFormURL:        cfg.EntryFormURL,
	})
	registration := usecase.NewRegistrationService(usecase.RegistrationServiceArgs{
		Repository: repo,
		Mailer:     sender,
		Queue:      producer,
		Membership: membership.NewClient(cfg.MembershipLookupURL),
		Composer:   composer,
	})
	locator := usecase.NewEventLocator(usecase.EventLocatorArgs{Repository: repo, Clock: clk})
	classifier := usecase.NewClassifier(clk)

	apiServer := httpapi.NewServer(httpapi.ServerArgs{
		Locator:      locator,
		Classifier:   classifier,
		Registration: registration,
		Repository:   repo,
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: apiServer.Routes()}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	log.
		WithField("http-server-addr", cfg.HTTPAddr).
		WithField("timezone", cfg.Timezone).
		Info("server up or soon to be up. listening to SIGTERM, SIGINT, SIGQUIT for stopping the server")

	// Wait for signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	<-ch

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}
