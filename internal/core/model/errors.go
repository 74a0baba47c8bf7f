package model

import "errors"

var (
	// ErrNotFound is returned when an entity is required to exist and does not.
	ErrNotFound = errors.New("entity was not found")

	// ErrAlreadyRegistered is returned by the storage layer when inserting a
	// rider collides with the per-event (email, first name, last name) key.
	ErrAlreadyRegistered = errors.New("rider already registered for event")

	// ErrUnknownMember is returned by the membership lookup when it cannot
	// determine whether a person is a current club member.
	ErrUnknownMember = errors.New("membership status unknown")
)
