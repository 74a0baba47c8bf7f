package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/douglatornell/randopony-tetra-sub000/internal/core/model"
	"github.com/douglatornell/randopony-tetra-sub000/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

// Member-status column labels.
const (
	memberYes     = "Yes"
	memberNo      = "No"
	memberUnknown = "Unknown"
)

// RosterSyncerArgs contains the mandatory arguments for the RosterSyncer.
type RosterSyncerArgs struct {
	// Repository caches resolved membership statuses back onto riders.
	Repository ports.Repository

	// Membership is the external club-membership lookup.
	Membership ports.MembershipLookup

	// RosterDoc is the external roster document service.
	RosterDoc ports.RosterDoc
}

// NewRosterSyncer creates a new RosterSyncer.
func NewRosterSyncer(args RosterSyncerArgs) *RosterSyncer {
	return &RosterSyncer{
		repository: args.Repository,
		membership: args.Membership,
		rosterDoc:  args.RosterDoc,
	}
}

// RosterSyncer mirrors a rider snapshot into the external roster document.
// Row identity is purely positional by sort order, so re-running the sync with
// an unchanged snapshot converges to the same rows without duplication.
type RosterSyncer struct {
	repository ports.Repository
	membership ports.MembershipLookup
	rosterDoc  ports.RosterDoc
}

// Handle performs one idempotent upsert-by-position pass: existing rows are
// overwritten in order, riders beyond the current row count are appended. Any
// roster-service error aborts the pass; redelivery re-runs the whole pass safely.
func (s *RosterSyncer) Handle(ctx context.Context, job model.RosterSyncJob) error {
	existingRows, err := s.rosterDoc.RowCount(ctx, job.RosterDocID)
	if err != nil {
		return fmt.Errorf("error counting roster rows in doc [%s]: %w", job.RosterDocID, err)
	}

	for i := range job.Riders {
		row := s.rosterRow(ctx, i+1, &job.Riders[i])
		if i < existingRows {
			err = s.rosterDoc.UpdateRow(ctx, job.RosterDocID, i, row)
		} else {
			err = s.rosterDoc.InsertRow(ctx, job.RosterDocID, row)
		}
		if err != nil {
			return fmt.Errorf("error writing roster row %d in doc [%s]: %w", i+1, job.RosterDocID, err)
		}
	}
	return nil
}

// rosterRow builds one roster row. position is the 1-based ordering rank used
// as the rider-number column.
func (s *RosterSyncer) rosterRow(ctx context.Context, position int, rider *model.RosterRider) []string {
	return []string{
		strconv.Itoa(position),
		rider.DisplayName(),
		rider.Email,
		s.memberStatusLabel(ctx, rider),
		rider.BikeType,
		rider.Distance,
	}
}

// memberStatusLabel computes the member-status column. A cached true is never
// re-queried; false and unset each get at most one lookup per pass. An
// indeterminate lookup leaves a cached false as "No" and an unset status as
// "Unknown".
func (s *RosterSyncer) memberStatusLabel(ctx context.Context, rider *model.RosterRider) string {
	if rider.MemberStatus != nil && *rider.MemberStatus {
		return memberYes
	}

	isMember, err := s.membership.IsMember(ctx, rider.FirstName, rider.LastName)
	if err != nil {
		if !errors.Is(err, model.ErrUnknownMember) {
			log.WithError(err).WithField("rider", rider.Email).
				Warn("membership lookup failed during roster sync")
		}
		if rider.MemberStatus != nil {
			return memberNo
		}
		return memberUnknown
	}

	rider.MemberStatus = &isMember
	if rider.ID != 0 {
		if err := s.repository.UpdateRiderMemberStatus(ctx, rider.ID, isMember); err != nil {
			log.WithError(err).WithField("rider", rider.Email).
				Warn("error caching resolved member status")
		}
	}
	if isMember {
		return memberYes
	}
	return memberNo
}
