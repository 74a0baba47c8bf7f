package ports

import (
	"context"

	"github.com/douglatornell/randopony-tetra-sub000/internal/core/model"
)

// RosterSyncHandler handles incoming roster-sync jobs on the worker side.
type RosterSyncHandler interface {
	// Handle will receive an incoming roster-sync job and mirror the rider
	// snapshot into the external roster document.
	Handle(ctx context.Context, job model.RosterSyncJob) error
}
