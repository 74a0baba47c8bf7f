package main

import (
	"database/sql"
	"errors"
	"flag"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"github.com/douglatornell/randopony-tetra-sub000/internal/config"
)

func main() {
	down := flag.Bool("down", false, "roll the schema back instead of forward")
	dir := flag.String("dir", "db/migrations", "directory holding the migration files")
	flag.Parse()

	db, err := sql.Open("postgres", config.PostgresURL())
	if err != nil {
		log.WithError(err).Fatal("error opening db connection")
	}
	defer db.Close()
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.WithError(err).Fatal("error creating migration driver")
	}

	source := *dir
	if !filepath.IsAbs(source) {
		wd, err := os.Getwd()
		if err != nil {
			log.WithError(err).Fatal("error resolving working directory")
		}
		source = filepath.Join(wd, source)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+source, "postgres", driver)
	if err != nil {
		log.WithError(err).WithField("dir", source).Fatal("error initializing migrations")
	}

	step := m.Up
	if *down {
		step = m.Down
	}
	if err := step(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("schema already up to date")
			return
		}
		log.WithError(err).Fatal("error applying migrations")
	}
	log.WithField("dir", source).Info("migrations applied")
}
