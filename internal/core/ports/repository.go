package ports

import (
	"context"
	"time"

	"github.com/douglatornell/randopony-tetra-sub000/internal/core/model"
)

// Repository is the interface for the persistence layer.
type Repository interface {
	// SaveBrevet durably saves the brevet.
	SaveBrevet(ctx context.Context, brevet *model.Brevet) error

	// SavePopulaire durably saves the populaire.
	SavePopulaire(ctx context.Context, populaire *model.Populaire) error

	// FindBrevet finds the brevet matching region and distance whose start time
	// falls in the half-open day interval [Day 00:00, Day+1 00:00). It returns
	// model.ErrNotFound when no brevet matches.
	FindBrevet(ctx context.Context, query FindBrevetQuery) (*model.Brevet, error)

	// FindPopulaire finds the populaire with the given short name. It returns
	// model.ErrNotFound when no populaire matches.
	FindPopulaire(ctx context.Context, shortName string) (*model.Populaire, error)

	// ListBrevets lists brevets matching the query parameters, ordered by start time.
	ListBrevets(ctx context.Context, query ListEventsQuery) ([]model.Brevet, error)

	// ListPopulaires lists populaires matching the query parameters, ordered by start time.
	ListPopulaires(ctx context.Context, query ListEventsQuery) ([]model.Populaire, error)

	// DeleteBrevet removes the brevet and all of its riders.
	DeleteBrevet(ctx context.Context, id int64) error

	// DeletePopulaire removes the populaire and all of its riders.
	DeletePopulaire(ctx context.Context, id int64) error

	// SetRosterDoc records the external roster document handle for an event.
	SetRosterDoc(ctx context.Context, kind model.EventKind, eventID int64, docID string) error

	// FindRider finds the rider exactly matching the admission key. It returns
	// model.ErrNotFound when no rider matches.
	FindRider(ctx context.Context, key RiderKey) (*model.Rider, error)

	// ListRiders lists all riders of an event ordered by lowercase last name.
	ListRiders(ctx context.Context, kind model.EventKind, eventID int64) ([]model.Rider, error)

	// SaveRider durably saves a new rider. It returns model.ErrAlreadyRegistered
	// when the per-event (email, first name, last name) key already exists.
	SaveRider(ctx context.Context, rider *model.Rider) error

	// UpdateRiderMemberStatus caches a resolved membership status on a rider.
	UpdateRiderMemberStatus(ctx context.Context, riderID int64, isMember bool) error
}

// FindBrevetQuery gathers the natural-key parameters of a brevet lookup.
type FindBrevetQuery struct {
	// Region is the two-letter region code.
	Region string

	// Distance is the brevet distance category in km.
	Distance int

	// Day is local midnight of the requested start day. Matching is against the
	// half-open interval [Day, Day+24h) because admin-entered start times carry
	// a time of day.
	Day time.Time
}

// ListEventsQuery gathers the parameters for listing events.
type ListEventsQuery struct {
	// StartAfter is the left boundary on start time. Zero-value will be ignored as filter.
	StartAfter time.Time

	// StartBefore is the right boundary on start time. Zero-value will be ignored as filter.
	StartBefore time.Time
}

// RiderKey is the admission identity of a rider within one event. Matching is
// raw equality on the triple, not normalized equality.
type RiderKey struct {
	// EventKind is the kind of the owning event.
	EventKind model.EventKind

	// EventID is the storage identifier of the owning event.
	EventID int64

	// Email is the candidate email exactly as submitted.
	Email string

	// FirstName is the candidate first name exactly as submitted.
	FirstName string

	// LastName is the candidate last name exactly as submitted.
	LastName string
}
