package mailer

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/douglatornell/randopony-tetra-sub000/internal/core/model"
)

// Noop is a mailer for development runs without mail credentials. It logs
// sends but does not deliver anything.
type Noop struct{}

// NewNoop creates a new Noop mailer.
func NewNoop() *Noop {
	return &Noop{}
}

// Send logs the message and drops it.
func (n *Noop) Send(_ context.Context, msg model.Message) error {
	log.WithField("to", msg.To).WithField("subject", msg.Subject).Info("noop mailer: dropping message")
	return nil
}
