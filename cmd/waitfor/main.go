package main

import (
	"flag"
	"net"
	"time"

	"github.com/go-pg/pg/v10"
	log "github.com/sirupsen/logrus"

	"github.com/douglatornell/randopony-tetra-sub000/internal/config"
)

// waitfor blocks until a TCP endpoint accepts connections. The dev compose
// setup runs it ahead of the server, worker, and migrations; with no -target
// it waits for the configured database.
func main() {
	target := flag.String("target", "", "host:port to wait for; defaults to the configured database address")
	attempts := flag.Int("attempts", 20, "connection attempts before giving up")
	flag.Parse()

	addr := *target
	if addr == "" {
		opts, err := pg.ParseURL(config.PostgresURL())
		if err != nil {
			log.WithError(err).Fatal("error parsing database URL")
		}
		addr = opts.Addr
	}

	for i := 0; i < *attempts; i++ {
		conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
		if err == nil {
			conn.Close()
			log.WithField("addr", addr).Info("endpoint is accepting connections")
			return
		}
		log.WithError(err).WithField("addr", addr).Info("endpoint not yet available")
		time.Sleep(1 * time.Second)
	}
	log.WithField("addr", addr).Fatal("endpoint never became available")
}
