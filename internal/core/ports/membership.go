package ports

import "context"

// MembershipLookup is the port for the external club-membership service.
type MembershipLookup interface {
	// IsMember reports whether the named person is a current club member. When
	// the service cannot decide (timeout, malformed response) it returns
	// model.ErrUnknownMember rather than a hard failure.
	IsMember(ctx context.Context, firstName, lastName string) (bool, error)
}
