package model

// Outcome is the result of a registration admission attempt. A duplicate is a
// normal outcome, not an error.
type Outcome int

const (
	// OutcomeAccepted means a new rider record was stored.
	OutcomeAccepted Outcome = iota

	// OutcomeDuplicate means an identical (email, first name, last name) triple
	// was already registered for the event.
	OutcomeDuplicate
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// RegisterArgs contain the arguments of the Register method.
type RegisterArgs struct {
	// Event is the event the candidate wants to register for.
	Event Event

	// Email is the candidate contact address.
	Email string

	// FirstName is the candidate first name.
	FirstName string

	// LastName is the candidate last name.
	LastName string

	// Comment is the optional free-text comment.
	Comment string

	// BikeType is the bike category (brevets only).
	BikeType string

	// Distance is the signed-up distance (populaires only).
	Distance string
}

// RegisterResponse contains the response of the Register method. On a duplicate
// outcome Rider carries the previously stored record, not the submitted values,
// so the caller can show the registrant who already holds the slot.
type RegisterResponse struct {
	// Outcome reports whether the candidate was accepted.
	Outcome Outcome

	// Rider is the stored rider record.
	Rider Rider
}

// Phase is the lifecycle phase of an event page view.
type Phase int

const (
	// PhaseUnknownMaybeUpcoming means no event matched the requested key but the
	// requested year is plausible for a not-yet-announced event.
	PhaseUnknownMaybeUpcoming Phase = iota

	// PhaseUnknownNotFound means no event matched and the requested year is not
	// plausible either.
	PhaseUnknownNotFound

	// PhaseScheduled means a matching event exists and its page is live. The
	// RegistrationClosed and EventStarted flags qualify the view independently.
	PhaseScheduled

	// PhaseArchived means the event started more than seven calendar days ago
	// and the page redirects attention to the results archive.
	PhaseArchived
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseUnknownMaybeUpcoming:
		return "unknown-maybe-upcoming"
	case PhaseUnknownNotFound:
		return "unknown-not-found"
	case PhaseScheduled:
		return "scheduled"
	case PhaseArchived:
		return "archived"
	default:
		return "unknown"
	}
}

// PhaseInfo is the full classification of one page view.
type PhaseInfo struct {
	// Phase is the coarse lifecycle phase.
	Phase Phase

	// RegistrationClosed is true when now is past the registration close
	// instant. Only meaningful for PhaseScheduled.
	RegistrationClosed bool

	// EventStarted is true when now is past the start instant. Independent of
	// RegistrationClosed; only meaningful for PhaseScheduled.
	EventStarted bool
}
