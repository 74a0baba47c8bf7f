// Package membership is the HTTP client for the club membership-lookup service.
package membership

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/douglatornell/randopony-tetra-sub000/internal/core/model"
)

const defaultTimeout = 5 * time.Second

// Client implements the MembershipLookup port. Every failure mode degrades to
// model.ErrUnknownMember so a flaky lookup service can never block or fail a
// registration.
type Client struct {
	httpClient  *http.Client
	urlTemplate string
}

// ClientOpt is an optional argument for building a Client.
type ClientOpt = func(*Client)

// WithHTTPClient can be used to override the HTTP client. Useful for testing.
func WithHTTPClient(httpClient *http.Client) ClientOpt {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new Client. urlTemplate is a format string taking the
// URL-escaped first and last name, e.g.
// "https://membership.example.org/check/%s/%s".
//
// NOTE: TLS certificate verification is disabled to match the membership
// service's long-standing invalid certificate. This is a known weakness, kept
// deliberately so that moving to a verifying client is an explicit operational
// decision rather than a silent behavior change.
func NewClient(urlTemplate string, opts ...ClientOpt) *Client {
	c := &Client{
		urlTemplate: urlTemplate,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// checkResponse is the membership service's answer shape. A missing
// is_current_member field means the service could not decide.
type checkResponse struct {
	IsCurrentMember *bool `json:"is_current_member"`
}

// IsMember reports whether the named person is a current club member. Timeouts,
// transport errors and malformed responses all answer model.ErrUnknownMember.
func (c *Client) IsMember(ctx context.Context, firstName, lastName string) (bool, error) {
	endpoint := fmt.Sprintf(c.urlTemplate, url.PathEscape(firstName), url.PathEscape(lastName))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("error building membership request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Debug("membership lookup transport error")
		return false, model.ErrUnknownMember
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithField("status", resp.StatusCode).Debug("membership lookup non-200 answer")
		return false, model.ErrUnknownMember
	}

	var body checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.WithError(err).Debug("membership lookup malformed answer")
		return false, model.ErrUnknownMember
	}
	if body.IsCurrentMember == nil {
		return false, model.ErrUnknownMember
	}
	return *body.IsCurrentMember, nil
}
