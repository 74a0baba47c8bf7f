package usecase

import (
	"fmt"
	"strings"

	"github.com/douglatornell/randopony-tetra-sub000/internal/core/model"
)

// Links gathers the configured URLs woven into notification bodies.
type Links struct {
	// BaseURL is the public base URL of the registration site, no trailing slash.
	BaseURL string

	// MembershipSignupURL points at the club membership sign-up page.
	MembershipSignupURL string

	// EntryFormURL points at the generic printable entry-form waiver.
	EntryFormURL string
}

// NewComposer builds a new Composer.
func NewComposer(from string, links Links) *Composer {
	return &Composer{from: from, links: links}
}

// Composer builds the two notification payloads triggered by an accepted
// registration. It only constructs message content; delivery belongs to the
// Mailer port.
type Composer struct {
	from  string
	links Links
}

// RiderConfirmation builds the confirmation message sent to the rider. The
// reply-to is the event's raw organizer string as stored, not the parsed list.
func (c *Composer) RiderConfirmation(event model.Event, rider *model.Rider) model.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "You have pre-registered for the %s.\n\n", event.DisplayTitle())
	fmt.Fprintf(&b, "This is a pre-registration only. You must sign a waiver at the start; a printable entry form is at %s.\n\n", c.entryFormURL(event))
	if c.links.MembershipSignupURL != "" {
		fmt.Fprintf(&b, "If you are not a current club member you can join at %s.\n\n", c.links.MembershipSignupURL)
	}
	fmt.Fprintf(&b, "Event page: %s\n", c.eventPageURL(event))
	return model.Message{
		Subject: fmt.Sprintf("Pre-registration Confirmation for %s", event.DisplayTitle()),
		From:    c.from,
		To:      []string{rider.Email},
		ReplyTo: event.OrganizerRawEmail(),
		Body:    b.String(),
	}
}

// OrganizerNotice builds the notice sent to the event organizers. Every
// organizer address receives the same single message. riderCount is the total
// number of riders registered after this acceptance; zero means the count
// could not be determined and the count sentence is omitted rather than
// understated.
func (c *Composer) OrganizerNotice(event model.Event, rider *model.Rider, riderCount int) model.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "%s <%s> has pre-registered for the %s.\n\n", rider.DisplayName(), rider.Email, event.DisplayTitle())
	if riderCount > 0 {
		fmt.Fprintf(&b, "There %s now %s registered.\n\n", isAre(riderCount), pluralizeRiders(riderCount))
	}
	fmt.Fprintf(&b, "Rider email list: %s\n", c.riderEmailsURL(event))
	return model.Message{
		Subject: fmt.Sprintf("%s has Pre-registered for the %s", rider.DisplayName(), event.DisplayTitle()),
		From:    c.from,
		To:      event.OrganizerContacts(),
		Body:    b.String(),
	}
}

func (c *Composer) eventPageURL(event model.Event) string {
	return fmt.Sprintf("%s/%s", c.links.BaseURL, event.PagePath())
}

// riderEmailsURL is the unauthenticated export endpoint, gated by the event's
// derived UUID instead of a login.
func (c *Composer) riderEmailsURL(event model.Event) string {
	return fmt.Sprintf("%s/%s/rider_emails/%s", c.links.BaseURL, event.PagePath(), event.UUID())
}

func (c *Composer) entryFormURL(event model.Event) string {
	if populaire, ok := event.(*model.Populaire); ok && populaire.EntryFormURL != "" {
		return populaire.EntryFormURL
	}
	return c.links.EntryFormURL
}

func pluralizeRiders(count int) string {
	if count == 1 {
		return "1 rider"
	}
	return fmt.Sprintf("%d riders", count)
}

func isAre(count int) string {
	if count == 1 {
		return "is"
	}
	return "are"
}
