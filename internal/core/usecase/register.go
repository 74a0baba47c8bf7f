package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/douglatornell/randopony-tetra-sub000/internal/core/model"
	"github.com/douglatornell/randopony-tetra-sub000/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

// RegistrationServiceArgs contains the mandatory arguments for the RegistrationService.
type RegistrationServiceArgs struct {
	// Repository is the repository for persistence operations.
	Repository ports.Repository

	// Mailer delivers the confirmation and organizer messages.
	Mailer ports.Mailer

	// Queue receives roster-sync jobs for accepted registrations.
	Queue ports.Enqueuer

	// Membership is the external club-membership lookup.
	Membership ports.MembershipLookup

	// Composer builds the notification content.
	Composer *Composer
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(args RegistrationServiceArgs) *RegistrationService {
	return &RegistrationService{
		repository: args.Repository,
		mailer:     args.Mailer,
		queue:      args.Queue,
		membership: args.Membership,
		composer:   args.Composer,
	}
}

// RegistrationService admits rider registrations and orchestrates the side
// effects of an acceptance. The stored rider record is the source of truth; no
// downstream failure rolls it back.
type RegistrationService struct {
	repository ports.Repository
	mailer     ports.Mailer
	queue      ports.Enqueuer
	membership ports.MembershipLookup
	composer   *Composer
}

// Register validates a registration attempt against existing records for the
// event. The duplicate probe is raw equality on the submitted
// (email, first name, last name) triple; on a duplicate the response carries
// the previously stored rider, whose values may differ in case or whitespace
// from the resubmission. The storage layer's per-event uniqueness key closes
// the probe/insert race: a concurrent insert of the same triple surfaces as
// model.ErrAlreadyRegistered and is answered as a duplicate too.
func (s *RegistrationService) Register(ctx context.Context, args model.RegisterArgs) (*model.RegisterResponse, error) {
	if args.Event == nil {
		return nil, errors.New("nil event passed to register")
	}
	key := ports.RiderKey{
		EventKind: args.Event.Kind(),
		EventID:   args.Event.DatabaseID(),
		Email:     args.Email,
		FirstName: args.FirstName,
		LastName:  args.LastName,
	}

	existing, err := s.repository.FindRider(ctx, key)
	if err == nil {
		return &model.RegisterResponse{Outcome: model.OutcomeDuplicate, Rider: *existing}, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("error probing for existing rider: %w", err)
	}

	rider := &model.Rider{
		EventKind:         args.Event.Kind(),
		EventID:           args.Event.DatabaseID(),
		Email:             args.Email,
		FirstName:         args.FirstName,
		LastName:          args.LastName,
		LowercaseLastName: strings.ToLower(args.LastName),
		Comment:           args.Comment,
		BikeType:          args.BikeType,
		Distance:          args.Distance,
	}
	rider.MemberStatus = s.resolveMemberStatus(ctx, args.FirstName, args.LastName)

	if err := s.repository.SaveRider(ctx, rider); err != nil {
		if errors.Is(err, model.ErrAlreadyRegistered) {
			stored, findErr := s.repository.FindRider(ctx, key)
			if findErr != nil {
				return nil, fmt.Errorf("error re-reading rider after admission conflict: %w", findErr)
			}
			return &model.RegisterResponse{Outcome: model.OutcomeDuplicate, Rider: *stored}, nil
		}
		return nil, fmt.Errorf("error saving rider in repository: %w", err)
	}

	s.fanOut(ctx, args.Event, rider)

	return &model.RegisterResponse{Outcome: model.OutcomeAccepted, Rider: *rider}, nil
}

// resolveMemberStatus attempts one membership lookup at registration time. An
// indeterminate answer leaves the status unset for the roster sync to retry.
func (s *RegistrationService) resolveMemberStatus(ctx context.Context, firstName, lastName string) *bool {
	isMember, err := s.membership.IsMember(ctx, firstName, lastName)
	if err != nil {
		if !errors.Is(err, model.ErrUnknownMember) {
			log.WithError(err).Warn("membership lookup failed during registration")
		}
		return nil
	}
	return &isMember
}

// fanOut runs the post-acceptance side effects: both notification messages and
// one roster-sync job. Each downstream call is fenced; failures are logged and
// swallowed so they stay invisible to the registrant.
func (s *RegistrationService) fanOut(ctx context.Context, event model.Event, rider *model.Rider) {
	riders, err := s.repository.ListRiders(ctx, event.Kind(), event.DatabaseID())
	riderCount := len(riders)
	if err != nil {
		log.WithError(err).WithField("event", event.NaturalKey()).
			Error("error listing riders for notification fan-out")
		riders = []model.Rider{*rider}
		riderCount = 0
	}

	if err := s.mailer.Send(ctx, s.composer.RiderConfirmation(event, rider)); err != nil {
		log.WithError(err).WithField("event", event.NaturalKey()).
			Error("error sending rider confirmation")
	}
	if err := s.mailer.Send(ctx, s.composer.OrganizerNotice(event, rider, riderCount)); err != nil {
		log.WithError(err).WithField("event", event.NaturalKey()).
			Error("error sending organizer notice")
	}

	if event.RosterDocRef() == "" {
		return
	}
	if err := s.queue.Enqueue(ctx, buildRosterSyncJob(event, riders)); err != nil {
		log.WithError(err).WithField("event", event.NaturalKey()).
			Error("error enqueueing roster-sync job")
	}
}

// buildRosterSyncJob snapshots the rider list for the background sync. The
// repository returns riders already ordered by lowercase last name, which is
// the positional row order in the external roster.
func buildRosterSyncJob(event model.Event, riders []model.Rider) model.RosterSyncJob {
	snapshot := make([]model.RosterRider, len(riders))
	for i, r := range riders {
		snapshot[i] = model.RosterRider{
			ID:           r.ID,
			Email:        r.Email,
			FirstName:    r.FirstName,
			LastName:     r.LastName,
			Comment:      r.Comment,
			MemberStatus: r.MemberStatus,
			BikeType:     r.BikeType,
			Distance:     r.Distance,
		}
	}
	return model.RosterSyncJob{
		EventKind:   event.Kind(),
		EventID:     event.DatabaseID(),
		RosterDocID: event.RosterDocRef(),
		Riders:      snapshot,
	}
}
