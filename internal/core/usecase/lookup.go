package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/douglatornell/randopony-tetra-sub000/internal/core/clock"
	"github.com/douglatornell/randopony-tetra-sub000/internal/core/model"
	"github.com/douglatornell/randopony-tetra-sub000/internal/core/ports"
)

// dateKeyLayout is the fixed textual date format carried in brevet URLs.
const dateKeyLayout = "02Jan2006"

// EventLocatorArgs contains the mandatory arguments for the EventLocator.
type EventLocatorArgs struct {
	// Repository is the repository for persistence operations.
	Repository ports.Repository

	// Clock resolves the configured timezone for day-interval lookups.
	Clock *clock.Clock
}

// NewEventLocator creates a new EventLocator.
func NewEventLocator(args EventLocatorArgs) *EventLocator {
	return &EventLocator{repository: args.Repository, clock: args.Clock}
}

// EventLocator resolves events by their natural composite keys and validates
// the identity token gating the rider-email export sub-resource.
type EventLocator struct {
	repository ports.Repository
	clock      *clock.Clock
}

// FindBrevet resolves a brevet from its natural key (region, distance,
// date-string). Matching on the date is a half-open day interval because
// admin-entered start times carry a time of day. It returns model.ErrNotFound
// when no brevet matches; a malformed date string resolves to the same, since
// it cannot name an existing event.
func (l *EventLocator) FindBrevet(ctx context.Context, region string, distance int, dateKey string) (*model.Brevet, error) {
	day, err := time.ParseInLocation(dateKeyLayout, dateKey, l.clock.Location())
	if err != nil {
		return nil, model.ErrNotFound
	}
	brevet, err := l.repository.FindBrevet(ctx, ports.FindBrevetQuery{
		Region:   region,
		Distance: distance,
		Day:      day,
	})
	if err != nil {
		return nil, fmt.Errorf("error finding brevet %s%d %s: %w", region, distance, dateKey, err)
	}
	return brevet, nil
}

// FindPopulaire resolves a populaire from its short name. It returns
// model.ErrNotFound when no populaire matches.
func (l *EventLocator) FindPopulaire(ctx context.Context, shortName string) (*model.Populaire, error) {
	populaire, err := l.repository.FindPopulaire(ctx, shortName)
	if err != nil {
		return nil, fmt.Errorf("error finding populaire %s: %w", shortName, err)
	}
	return populaire, nil
}

// RequestedYear extracts the year from a brevet date key for phase
// classification of missing events. The zero value is returned for garbage
// input, which never passes the plausibility check.
func RequestedYear(dateKey string) int {
	day, err := time.Parse(dateKeyLayout, dateKey)
	if err != nil {
		return 0
	}
	return day.Year()
}

// AuthorizeRiderExport reports whether the presented token grants access to the
// event's rider-email export. On failure callers must answer "not found", never
// "forbidden", so probing cannot confirm the sub-resource exists.
func AuthorizeRiderExport(event model.Event, presentedUUID string) bool {
	return event != nil && presentedUUID == event.UUID().String()
}
