package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/douglatornell/randopony-tetra-sub000/internal/core/model"
)

func testComposer() *Composer {
	return NewComposer("randopony@randonneurs.bc.ca", Links{
		BaseURL:             "https://randopony.randonneurs.bc.ca",
		MembershipSignupURL: "https://ccnbikes.com/membership",
		EntryFormURL:        "https://randonneurs.bc.ca/waiver.pdf",
	})
}

func TestRiderConfirmation(t *testing.T) {
	composer := testComposer()
	brevet := &model.Brevet{
		Region:         "LM",
		Distance:       200,
		StartTime:      time.Date(2012, time.November, 11, 7, 0, 0, 0, time.UTC),
		OrganizerEmail: "mcroy@example.com, dug@example.com",
	}
	rider := &model.Rider{Email: "tom@example.com", FirstName: "Tom", LastName: "Dickson"}

	msg := composer.RiderConfirmation(brevet, rider)

	assert.Equal(t, "Pre-registration Confirmation for LM200 11Nov2012", msg.Subject)
	assert.Equal(t, "randopony@randonneurs.bc.ca", msg.From)
	assert.Equal(t, []string{"tom@example.com"}, msg.To)
	// Reply-to carries the organizer string verbatim, not the parsed list.
	assert.Equal(t, "mcroy@example.com, dug@example.com", msg.ReplyTo)
	assert.Contains(t, msg.Body, "You have pre-registered for the LM200 11Nov2012")
	assert.Contains(t, msg.Body, "https://randonneurs.bc.ca/waiver.pdf")
	assert.Contains(t, msg.Body, "https://randopony.randonneurs.bc.ca/brevets/LM200/11Nov2012")
}

func TestRiderConfirmationPrefersPopulaireEntryForm(t *testing.T) {
	composer := testComposer()
	populaire := &model.Populaire{
		ShortName:      "VicPop",
		StartTime:      time.Date(2013, time.March, 24, 10, 0, 0, 0, time.UTC),
		OrganizerEmail: "mjansson@example.com",
		EntryFormURL:   "https://randonneurs.bc.ca/VicPop_waiver.pdf",
	}
	rider := &model.Rider{Email: "fred@example.com", FirstName: "Fred", LastName: "Dickson"}

	msg := composer.RiderConfirmation(populaire, rider)

	assert.Equal(t, "Pre-registration Confirmation for VicPop 24-Mar-2013", msg.Subject)
	assert.Contains(t, msg.Body, "https://randonneurs.bc.ca/VicPop_waiver.pdf")
	assert.NotContains(t, msg.Body, "https://randonneurs.bc.ca/waiver.pdf")
}

func TestOrganizerNotice(t *testing.T) {
	composer := testComposer()
	brevet := &model.Brevet{
		Region:         "LM",
		Distance:       200,
		StartTime:      time.Date(2012, time.November, 11, 7, 0, 0, 0, time.UTC),
		OrganizerEmail: "mcroy@example.com, dug@example.com",
	}
	rider := &model.Rider{
		Email:     "tom@example.com",
		FirstName: "Tom",
		LastName:  "Dickson",
		Comment:   "hoping for sun",
	}

	msg := composer.OrganizerNotice(brevet, rider, 3)

	assert.Equal(t, `Tom "hoping for sun" Dickson has Pre-registered for the LM200 11Nov2012`, msg.Subject)
	assert.Equal(t, []string{"mcroy@example.com", "dug@example.com"}, msg.To)
	assert.Empty(t, msg.ReplyTo)
	assert.Contains(t, msg.Body, "There are now 3 riders registered.")
	assert.Contains(t, msg.Body,
		"https://randopony.randonneurs.bc.ca/brevets/LM200/11Nov2012/rider_emails/"+brevet.UUID().String())
}

func TestOrganizerNoticeSingularCount(t *testing.T) {
	composer := testComposer()
	populaire := &model.Populaire{
		ShortName:      "VicPop",
		StartTime:      time.Date(2013, time.March, 24, 10, 0, 0, 0, time.UTC),
		OrganizerEmail: "mjansson@example.com",
	}
	rider := &model.Rider{Email: "fred@example.com", FirstName: "Fred", LastName: "Dickson"}

	msg := composer.OrganizerNotice(populaire, rider, 1)

	assert.Contains(t, msg.Body, "There is now 1 rider registered.")
}

func TestOrganizerNoticeUnknownCountOmitsTotal(t *testing.T) {
	composer := testComposer()
	populaire := &model.Populaire{
		ShortName:      "VicPop",
		StartTime:      time.Date(2013, time.March, 24, 10, 0, 0, 0, time.UTC),
		OrganizerEmail: "mjansson@example.com",
	}
	rider := &model.Rider{Email: "fred@example.com", FirstName: "Fred", LastName: "Dickson"}

	msg := composer.OrganizerNotice(populaire, rider, 0)

	assert.NotContains(t, msg.Body, "There ")
	assert.Contains(t, msg.Body, "Rider email list: ")
}
