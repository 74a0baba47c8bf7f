package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventKind discriminates the two kinds of organized rides.
type EventKind string

const (
	// KindBrevet is a sanctioned long-distance ride with a fixed distance category.
	KindBrevet EventKind = "brevet"

	// KindPopulaire is an introductory ride identified by a short name.
	KindPopulaire EventKind = "populaire"
)

// eventNamespace prefixes the canonical natural-key string hashed into an event UUID.
const eventNamespace = "randopony/"

// Event is the shared view over Brevet and Populaire used by the lifecycle and
// registration logic. Both kinds share the same registration semantics and only
// differ in natural key and display formatting.
type Event interface {
	// Kind returns the event kind.
	Kind() EventKind

	// DatabaseID returns the storage identifier of the event.
	DatabaseID() int64

	// NaturalKey returns the canonical textual encoding of the event identity.
	NaturalKey() string

	// PagePath returns the URL path of the event's page on the public site,
	// without a leading slash. Links built into messages must use this so they
	// resolve against the server's routes.
	PagePath() string

	// DisplayTitle returns the human-readable event title used in messages.
	DisplayTitle() string

	// UUID returns the deterministic identifier derived from the natural key.
	// It gates unauthenticated access to the rider-email export sub-resource,
	// so it must be a derived hash rather than a guessable counter.
	UUID() uuid.UUID

	// Start returns the event start time as entered by the organizer. The value
	// is naive wall-clock time interpreted in the configured timezone.
	Start() time.Time

	// RegistrationClose returns the instant registration closes. When the
	// organizer supplied no explicit value it defaults to noon on the calendar
	// day before the start time.
	RegistrationClose() time.Time

	// OrganizerRawEmail returns the organizer contact string exactly as stored.
	OrganizerRawEmail() string

	// OrganizerContacts returns the parsed organizer address list.
	OrganizerContacts() []string

	// RosterDocRef returns the external roster document handle. Empty means no
	// roster has been provisioned for the event.
	RosterDocRef() string
}

// Brevet is a sanctioned long-distance event. Its natural key is
// (region, distance, start day).
type Brevet struct {
	// ID is the storage identifier.
	ID int64 `json:"id"`

	// Region is the two-letter club region code, e.g. "LM".
	Region string `json:"region"`

	// Distance is the brevet distance category in km, e.g. 200.
	Distance int `json:"distance"`

	// StartTime is the naive start instant entered by the organizer.
	StartTime time.Time `json:"start_time"`

	// RegistrationCloseTime is the explicit close instant. Zero-valued when the
	// organizer left it to the default.
	RegistrationCloseTime time.Time `json:"registration_close_time,omitempty"`

	// RouteName is the descriptive route name.
	RouteName string `json:"route_name"`

	// OrganizerEmail is the raw comma-delimited organizer contact string.
	OrganizerEmail string `json:"organizer_email"`

	// InfoQuestion is an optional extra question shown on the entry form.
	InfoQuestion string `json:"info_question,omitempty"`

	// RosterDocID is the external roster document handle, empty when absent.
	RosterDocID string `json:"roster_doc_id,omitempty"`

	// ResultsLink points at the external results archive once the event has moved on.
	ResultsLink string `json:"results_link,omitempty"`

	// CreatedAt is the time at which the event was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the time at which the event was last updated.
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Kind returns KindBrevet.
func (b *Brevet) Kind() EventKind { return KindBrevet }

// DatabaseID returns the storage identifier.
func (b *Brevet) DatabaseID() int64 { return b.ID }

// NaturalKey returns e.g. "brevet/LM200/11Nov2012".
func (b *Brevet) NaturalKey() string {
	return fmt.Sprintf("%s/%s%d/%s", KindBrevet, b.Region, b.Distance, b.StartTime.Format("02Jan2006"))
}

// PagePath returns e.g. "brevets/LM200/11Nov2012".
func (b *Brevet) PagePath() string {
	return fmt.Sprintf("brevets/%s%d/%s", b.Region, b.Distance, b.StartTime.Format("02Jan2006"))
}

// DisplayTitle returns e.g. "LM200 11Nov2012".
func (b *Brevet) DisplayTitle() string {
	return fmt.Sprintf("%s%d %s", b.Region, b.Distance, b.StartTime.Format("02Jan2006"))
}

// UUID returns the deterministic UUID derived from the natural key.
func (b *Brevet) UUID() uuid.UUID { return eventUUID(b.NaturalKey()) }

// Start returns the start time.
func (b *Brevet) Start() time.Time { return b.StartTime }

// RegistrationClose returns the explicit close time, or the noon-the-day-before
// default when none was supplied.
func (b *Brevet) RegistrationClose() time.Time {
	return registrationClose(b.RegistrationCloseTime, b.StartTime)
}

// OrganizerRawEmail returns the organizer contact string as stored.
func (b *Brevet) OrganizerRawEmail() string { return b.OrganizerEmail }

// OrganizerContacts returns the parsed organizer address list.
func (b *Brevet) OrganizerContacts() []string { return splitContacts(b.OrganizerEmail) }

// RosterDocRef returns the roster document handle.
func (b *Brevet) RosterDocRef() string { return b.RosterDocID }

// Populaire is an introductory event. Its natural key is the short name.
type Populaire struct {
	// ID is the storage identifier.
	ID int64 `json:"id"`

	// ShortName is the natural key, e.g. "VicPop".
	ShortName string `json:"short_name"`

	// DisplayName is the full event name shown on pages.
	DisplayName string `json:"display_name"`

	// StartTime is the naive start instant entered by the organizer.
	StartTime time.Time `json:"start_time"`

	// RegistrationCloseTime is the explicit close instant. Zero-valued when the
	// organizer left it to the default.
	RegistrationCloseTime time.Time `json:"registration_close_time,omitempty"`

	// Distance is a free-text distance description, e.g. "50 km, 100 km".
	Distance string `json:"distance"`

	// OrganizerEmail is the raw comma-delimited organizer contact string.
	OrganizerEmail string `json:"organizer_email"`

	// EntryFormURL points at the printable entry form for the event.
	EntryFormURL string `json:"entry_form_url,omitempty"`

	// RosterDocID is the external roster document handle, empty when absent.
	RosterDocID string `json:"roster_doc_id,omitempty"`

	// ResultsLink points at the external results archive once the event has moved on.
	ResultsLink string `json:"results_link,omitempty"`

	// CreatedAt is the time at which the event was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the time at which the event was last updated.
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Kind returns KindPopulaire.
func (p *Populaire) Kind() EventKind { return KindPopulaire }

// DatabaseID returns the storage identifier.
func (p *Populaire) DatabaseID() int64 { return p.ID }

// NaturalKey returns e.g. "populaire/VicPop".
func (p *Populaire) NaturalKey() string {
	return fmt.Sprintf("%s/%s", KindPopulaire, p.ShortName)
}

// PagePath returns e.g. "populaires/VicPop".
func (p *Populaire) PagePath() string {
	return fmt.Sprintf("populaires/%s", p.ShortName)
}

// DisplayTitle returns e.g. "VicPop 11-Nov-2012". Note the dashed date format;
// it intentionally differs from the brevet title format.
func (p *Populaire) DisplayTitle() string {
	return fmt.Sprintf("%s %s", p.ShortName, p.StartTime.Format("02-Jan-2006"))
}

// UUID returns the deterministic UUID derived from the natural key.
func (p *Populaire) UUID() uuid.UUID { return eventUUID(p.NaturalKey()) }

// Start returns the start time.
func (p *Populaire) Start() time.Time { return p.StartTime }

// RegistrationClose returns the explicit close time, or the noon-the-day-before
// default when none was supplied.
func (p *Populaire) RegistrationClose() time.Time {
	return registrationClose(p.RegistrationCloseTime, p.StartTime)
}

// OrganizerRawEmail returns the organizer contact string as stored.
func (p *Populaire) OrganizerRawEmail() string { return p.OrganizerEmail }

// OrganizerContacts returns the parsed organizer address list.
func (p *Populaire) OrganizerContacts() []string { return splitContacts(p.OrganizerEmail) }

// RosterDocRef returns the roster document handle.
func (p *Populaire) RosterDocRef() string { return p.RosterDocID }

// Rider is a pre-registration record for one person attending one event.
// Identity within the event is the raw (email, first name, last name) triple.
type Rider struct {
	// ID is the storage identifier.
	ID int64 `json:"id"`

	// EventKind is the kind of the owning event.
	EventKind EventKind `json:"event_kind"`

	// EventID is the storage identifier of the owning event.
	EventID int64 `json:"event_id"`

	// Email is the rider contact address.
	Email string `json:"email"`

	// FirstName is the rider first name.
	FirstName string `json:"first_name"`

	// LastName is the rider last name.
	LastName string `json:"last_name"`

	// LowercaseLastName is the derived sort key; maintained alongside LastName
	// for case-insensitive ordering of rider lists and roster rows.
	LowercaseLastName string `json:"lowercase_last_name"`

	// Comment is optional free text decorated into the display name.
	Comment string `json:"comment,omitempty"`

	// MemberStatus is the cached club-membership state. Nil means not yet
	// resolved; once resolved to true it is never re-queried.
	MemberStatus *bool `json:"member_status,omitempty"`

	// BikeType is the free-form bike category (brevets only).
	BikeType string `json:"bike_type,omitempty"`

	// Distance is the distance the rider signed up for (populaires only).
	Distance string `json:"distance,omitempty"`

	// CreatedAt is the time at which the registration was accepted.
	CreatedAt time.Time `json:"created_at"`
}

// DisplayName returns `First "comment" Last` when a comment is present,
// otherwise "First Last".
func (r *Rider) DisplayName() string {
	if r.Comment != "" {
		return fmt.Sprintf("%s %q %s", r.FirstName, r.Comment, r.LastName)
	}
	return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
}

// Message is an outbound notification. Transport is a collaborator concern;
// the core only builds content.
type Message struct {
	// Subject is the message subject line.
	Subject string `json:"subject"`

	// From is the configured sender address.
	From string `json:"from"`

	// To lists the recipient addresses. All recipients share one copy.
	To []string `json:"to"`

	// ReplyTo is the reply-to header value. For rider confirmations this is the
	// event's raw organizer string, not the parsed list.
	ReplyTo string `json:"reply_to,omitempty"`

	// Body is the plain-text message body.
	Body string `json:"body"`
}

// RosterRider is the snapshot of a rider carried inside a RosterSyncJob.
type RosterRider struct {
	// ID is the storage identifier of the rider, used to write back a resolved
	// member status. Zero when unknown to the enqueuer.
	ID int64 `json:"id"`

	// Email is the rider contact address.
	Email string `json:"email"`

	// FirstName is the rider first name.
	FirstName string `json:"first_name"`

	// LastName is the rider last name.
	LastName string `json:"last_name"`

	// Comment is the optional free-text comment.
	Comment string `json:"comment,omitempty"`

	// MemberStatus is the cached membership state at snapshot time.
	MemberStatus *bool `json:"member_status,omitempty"`

	// BikeType is the bike category (brevets only).
	BikeType string `json:"bike_type,omitempty"`

	// Distance is the signed-up distance (populaires only).
	Distance string `json:"distance,omitempty"`
}

// DisplayName returns the comment-decorated full name of the snapshot rider.
func (r *RosterRider) DisplayName() string {
	rd := Rider{FirstName: r.FirstName, LastName: r.LastName, Comment: r.Comment}
	return rd.DisplayName()
}

// RosterSyncJob is the payload of one roster-sync background task. It carries a
// snapshot of the full rider list, already sorted by lowercase last name, rather
// than a live reference, so later registrations cannot race the sync.
type RosterSyncJob struct {
	// EventKind is the kind of the event being synced.
	EventKind EventKind `json:"event_kind"`

	// EventID is the storage identifier of the event being synced.
	EventID int64 `json:"event_id"`

	// RosterDocID is the external roster document handle.
	RosterDocID string `json:"roster_doc_id"`

	// Riders is the sorted rider snapshot. Row identity in the external roster
	// is purely positional by this order.
	Riders []RosterRider `json:"riders"`
}

func eventUUID(naturalKey string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(eventNamespace+naturalKey))
}

func registrationClose(explicit, start time.Time) time.Time {
	if !explicit.IsZero() {
		return explicit
	}
	prior := start.AddDate(0, 0, -1)
	return time.Date(prior.Year(), prior.Month(), prior.Day(), 12, 0, 0, 0, start.Location())
}

func splitContacts(raw string) []string {
	parts := strings.Split(raw, ",")
	contacts := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			contacts = append(contacts, trimmed)
		}
	}
	return contacts
}
