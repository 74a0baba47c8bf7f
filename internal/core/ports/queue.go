package ports

import (
	"context"

	"github.com/douglatornell/randopony-tetra-sub000/internal/core/model"
)

// Enqueuer is the port for handing roster-sync jobs to the background queue.
// Delivery is at-least-once with best-effort submit ordering; the sync itself
// is idempotent so redelivery is safe.
type Enqueuer interface {
	// Enqueue submits one roster-sync job.
	Enqueue(ctx context.Context, job model.RosterSyncJob) error
}
