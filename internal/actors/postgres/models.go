package postgres

import (
	"time"

	"github.com/douglatornell/randopony-tetra-sub000/internal/core/model"
)

type brevetDB struct {
	tableName struct{} `pg:"randopony.brevets"`

	// ID is the storage identifier.
	ID int64 `pg:"id,pk"`

	// Region is the two-letter region code.
	Region string `pg:"region,use_zero"`

	// Distance is the brevet distance category in km.
	Distance int `pg:"distance,use_zero"`

	// StartTime is the naive organizer-entered start instant.
	StartTime time.Time `pg:"start_time,use_zero"`

	// RegistrationCloseTime is the explicit close instant, zero when defaulted.
	RegistrationCloseTime time.Time `pg:"registration_close_time"`

	// RouteName is the descriptive route name.
	RouteName string `pg:"route_name,use_zero"`

	// OrganizerEmail is the raw comma-delimited organizer contact string.
	OrganizerEmail string `pg:"organizer_email,use_zero"`

	// InfoQuestion is the optional extra entry-form question.
	InfoQuestion string `pg:"info_question,use_zero"`

	// RosterDocID is the external roster document handle.
	RosterDocID string `pg:"roster_doc_id,use_zero"`

	// ResultsLink points at the external results archive.
	ResultsLink string `pg:"results_link,use_zero"`

	// CreatedAt is the time at which the event was created.
	CreatedAt time.Time `pg:"created_at,use_zero"`

	// UpdatedAt is the time at which the event was last updated.
	UpdatedAt time.Time `pg:"updated_at"`
}

type populaireDB struct {
	tableName struct{} `pg:"randopony.populaires"`

	// ID is the storage identifier.
	ID int64 `pg:"id,pk"`

	// ShortName is the natural key.
	ShortName string `pg:"short_name,use_zero"`

	// DisplayName is the full event name.
	DisplayName string `pg:"display_name,use_zero"`

	// StartTime is the naive organizer-entered start instant.
	StartTime time.Time `pg:"start_time,use_zero"`

	// RegistrationCloseTime is the explicit close instant, zero when defaulted.
	RegistrationCloseTime time.Time `pg:"registration_close_time"`

	// Distance is the free-text distance description.
	Distance string `pg:"distance,use_zero"`

	// OrganizerEmail is the raw comma-delimited organizer contact string.
	OrganizerEmail string `pg:"organizer_email,use_zero"`

	// EntryFormURL points at the printable entry form.
	EntryFormURL string `pg:"entry_form_url,use_zero"`

	// RosterDocID is the external roster document handle.
	RosterDocID string `pg:"roster_doc_id,use_zero"`

	// ResultsLink points at the external results archive.
	ResultsLink string `pg:"results_link,use_zero"`

	// CreatedAt is the time at which the event was created.
	CreatedAt time.Time `pg:"created_at,use_zero"`

	// UpdatedAt is the time at which the event was last updated.
	UpdatedAt time.Time `pg:"updated_at"`
}

type riderDB struct {
	tableName struct{} `pg:"randopony.riders"`

	// ID is the storage identifier.
	ID int64 `pg:"id,pk"`

	// EventKind is the kind of the owning event.
	EventKind string `pg:"event_kind,use_zero"`

	// EventID is the storage identifier of the owning event.
	EventID int64 `pg:"event_id,use_zero"`

	// Email is the rider contact address.
	Email string `pg:"email,use_zero"`

	// FirstName is the rider first name.
	FirstName string `pg:"first_name,use_zero"`

	// LastName is the rider last name.
	LastName string `pg:"last_name,use_zero"`

	// LowercaseLastName is the derived case-insensitive sort key.
	LowercaseLastName string `pg:"lowercase_last_name,use_zero"`

	// Comment is the optional free-text comment.
	Comment string `pg:"comment,use_zero"`

	// MemberStatus is the cached membership state, NULL when unresolved.
	MemberStatus *bool `pg:"member_status"`

	// BikeType is the bike category (brevets only).
	BikeType string `pg:"bike_type,use_zero"`

	// Distance is the signed-up distance (populaires only).
	Distance string `pg:"distance,use_zero"`

	// CreatedAt is the time at which the registration was accepted.
	CreatedAt time.Time `pg:"created_at,use_zero"`
}

func brevetToDB(brevet *model.Brevet) *brevetDB {
	return &brevetDB{
		ID:                    brevet.ID,
		Region:                brevet.Region,
		Distance:              brevet.Distance,
		StartTime:             brevet.StartTime,
		RegistrationCloseTime: brevet.RegistrationCloseTime,
		RouteName:             brevet.RouteName,
		OrganizerEmail:        brevet.OrganizerEmail,
		InfoQuestion:          brevet.InfoQuestion,
		RosterDocID:           brevet.RosterDocID,
		ResultsLink:           brevet.ResultsLink,
		CreatedAt:             brevet.CreatedAt,
		UpdatedAt:             brevet.UpdatedAt,
	}
}

func brevetFromDB(dbBrevet *brevetDB) *model.Brevet {
	return &model.Brevet{
		ID:                    dbBrevet.ID,
		Region:                dbBrevet.Region,
		Distance:              dbBrevet.Distance,
		StartTime:             dbBrevet.StartTime,
		RegistrationCloseTime: dbBrevet.RegistrationCloseTime,
		RouteName:             dbBrevet.RouteName,
		OrganizerEmail:        dbBrevet.OrganizerEmail,
		InfoQuestion:          dbBrevet.InfoQuestion,
		RosterDocID:           dbBrevet.RosterDocID,
		ResultsLink:           dbBrevet.ResultsLink,
		CreatedAt:             dbBrevet.CreatedAt,
		UpdatedAt:             dbBrevet.UpdatedAt,
	}
}

func populaireToDB(populaire *model.Populaire) *populaireDB {
	return &populaireDB{
		ID:                    populaire.ID,
		ShortName:             populaire.ShortName,
		DisplayName:           populaire.DisplayName,
		StartTime:             populaire.StartTime,
		RegistrationCloseTime: populaire.RegistrationCloseTime,
		Distance:              populaire.Distance,
		OrganizerEmail:        populaire.OrganizerEmail,
		EntryFormURL:          populaire.EntryFormURL,
		RosterDocID:           populaire.RosterDocID,
		ResultsLink:           populaire.ResultsLink,
		CreatedAt:             populaire.CreatedAt,
		UpdatedAt:             populaire.UpdatedAt,
	}
}

func populaireFromDB(dbPopulaire *populaireDB) *model.Populaire {
	return &model.Populaire{
		ID:                    dbPopulaire.ID,
		ShortName:             dbPopulaire.ShortName,
		DisplayName:           dbPopulaire.DisplayName,
		StartTime:             dbPopulaire.StartTime,
		RegistrationCloseTime: dbPopulaire.RegistrationCloseTime,
		Distance:              dbPopulaire.Distance,
		OrganizerEmail:        dbPopulaire.OrganizerEmail,
		EntryFormURL:          dbPopulaire.EntryFormURL,
		RosterDocID:           dbPopulaire.RosterDocID,
		ResultsLink:           dbPopulaire.ResultsLink,
		CreatedAt:             dbPopulaire.CreatedAt,
		UpdatedAt:             dbPopulaire.UpdatedAt,
	}
}

func riderToDB(rider *model.Rider) *riderDB {
	return &riderDB{
		ID:                rider.ID,
		EventKind:         string(rider.EventKind),
		EventID:           rider.EventID,
		Email:             rider.Email,
		FirstName:         rider.FirstName,
		LastName:          rider.LastName,
		LowercaseLastName: rider.LowercaseLastName,
		Comment:           rider.Comment,
		MemberStatus:      rider.MemberStatus,
		BikeType:          rider.BikeType,
		Distance:          rider.Distance,
		CreatedAt:         rider.CreatedAt,
	}
}

func riderFromDB(dbRider *riderDB) *model.Rider {
	return &model.Rider{
		ID:                dbRider.ID,
		EventKind:         model.EventKind(dbRider.EventKind),
		EventID:           dbRider.EventID,
		Email:             dbRider.Email,
		FirstName:         dbRider.FirstName,
		LastName:          dbRider.LastName,
		LowercaseLastName: dbRider.LowercaseLastName,
		Comment:           dbRider.Comment,
		MemberStatus:      dbRider.MemberStatus,
		BikeType:          dbRider.BikeType,
		Distance:          dbRider.Distance,
		CreatedAt:         dbRider.CreatedAt,
	}
}
