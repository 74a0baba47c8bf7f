package ports

import (
	"context"

	"github.com/douglatornell/randopony-tetra-sub000/internal/core/model"
)

// Mailer is the port for sending outbound notification messages. Sends are
// fire-and-forget from the core's perspective; a failed send never unwinds an
// accepted registration.
type Mailer interface {
	// Send delivers the message.
	Send(ctx context.Context, msg model.Message) error
}
