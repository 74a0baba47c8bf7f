// Package httpapi exposes the core call contracts over a small JSON surface:
// event page classification, registration submission and the UUID-gated
// rider-email export. Templating and sessions live elsewhere; this actor only
// translates HTTP to usecase calls.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	log "github.com/sirupsen/logrus"

	"github.com/douglatornell/randopony-tetra-sub000/internal/core/model"
	"github.com/douglatornell/randopony-tetra-sub000/internal/core/ports"
	"github.com/douglatornell/randopony-tetra-sub000/internal/core/usecase"
)

// ServerArgs are the mandatory args to instantiate the Server.
type ServerArgs struct {
	// Locator resolves events by natural key.
	Locator *usecase.EventLocator

	// Classifier computes page lifecycle phases.
	Classifier *usecase.Classifier

	// Registration admits rider registrations.
	Registration *usecase.RegistrationService

	// Repository reads rider lists for the email export.
	Repository ports.Repository
}

// NewServer creates a new Server.
func NewServer(args ServerArgs) *Server {
	return &Server{
		locator:      args.Locator,
		classifier:   args.Classifier,
		registration: args.Registration,
		repository:   args.Repository,
	}
}

// Server implements the HTTP handlers over the registration engine.
type Server struct {
	locator      *usecase.EventLocator
	classifier   *usecase.Classifier
	registration *usecase.RegistrationService
	repository   ports.Repository
}

// Routes returns the request multiplexer.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/brevets/", s.handleBrevet)
	mux.HandleFunc("/populaires/", s.handlePopulaire)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "SERVING"})
}

// handleBrevet serves /brevets/{region}{distance}/{dateKey}[/riders|/rider_emails/{uuid}].
func (s *Server) handleBrevet(w http.ResponseWriter, r *http.Request) {
	parts := splitPath(r.URL.Path, "/brevets/")
	if len(parts) < 2 {
		http.NotFound(w, r)
		return
	}
	region, distance, ok := parseBrevetCode(parts[0])
	if !ok {
		http.NotFound(w, r)
		return
	}
	dateKey := parts[1]

	event, err := s.locator.FindBrevet(r.Context(), region, distance, dateKey)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		log.WithError(err).Error("error invoking brevet lookup")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if event == nil {
		s.serveMissingEvent(w, r, usecase.RequestedYear(dateKey))
		return
	}
	s.serveEvent(w, r, event, parts[2:])
}

// handlePopulaire serves /populaires/{shortName}[/riders|/rider_emails/{uuid}].
func (s *Server) handlePopulaire(w http.ResponseWriter, r *http.Request) {
	parts := splitPath(r.URL.Path, "/populaires/")
	if len(parts) < 1 {
		http.NotFound(w, r)
		return
	}

	event, err := s.locator.FindPopulaire(r.Context(), parts[0])
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		log.WithError(err).Error("error invoking populaire lookup")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if event == nil {
		// Populaire keys carry no date, so a missing short name is a plain 404.
		http.NotFound(w, r)
		return
	}
	s.serveEvent(w, r, event, parts[1:])
}

// serveMissingEvent renders the "coming soon" placeholder for plausible years
// and a not-found answer otherwise. Both use the same classifier the live
// pages use.
func (s *Server) serveMissingEvent(w http.ResponseWriter, r *http.Request, requestedYear int) {
	info := s.classifier.Classify(nil, requestedYear)
	if info.Phase == model.PhaseUnknownMaybeUpcoming {
		writeJSON(w, http.StatusOK, map[string]string{"phase": info.Phase.String()})
		return
	}
	http.NotFound(w, r)
}

func (s *Server) serveEvent(w http.ResponseWriter, r *http.Request, event model.Event, rest []string) {
	switch {
	case len(rest) == 0:
		s.serveEventPage(w, r, event)
	case rest[0] == "riders" && r.Method == http.MethodPost:
		s.serveRegister(w, r, event)
	case rest[0] == "rider_emails" && len(rest) == 2:
		s.serveRiderEmails(w, r, event, rest[1])
	default:
		http.NotFound(w, r)
	}
}

type eventPageResponse struct {
	Phase              string `json:"phase"`
	Title              string `json:"title"`
	RegistrationClosed bool   `json:"registration_closed"`
	EventStarted       bool   `json:"event_started"`
	ResultsLink        string `json:"results_link,omitempty"`
}

func (s *Server) serveEventPage(w http.ResponseWriter, r *http.Request, event model.Event) {
	info := s.classifier.Classify(event, 0)
	resp := eventPageResponse{
		Phase:              info.Phase.String(),
		Title:              event.DisplayTitle(),
		RegistrationClosed: info.RegistrationClosed,
		EventStarted:       info.EventStarted,
	}
	if info.Phase == model.PhaseArchived {
		resp.ResultsLink = resultsLink(event)
	}
	writeJSON(w, http.StatusOK, resp)
}

type registerRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Comment   string `json:"comment"`
	BikeType  string `json:"bike_type"`
	Distance  string `json:"distance"`
}

type registerResponse struct {
	Outcome string `json:"outcome"`
	Rider   string `json:"rider"`
	Email   string `json:"email"`
}

func (s *Server) serveRegister(w http.ResponseWriter, r *http.Request, event model.Event) {
	info := s.classifier.Classify(event, 0)
	if info.Phase != model.PhaseScheduled || info.RegistrationClosed {
		http.Error(w, "registration closed", http.StatusGone)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.FirstName == "" || req.LastName == "" {
		http.Error(w, "email, first_name and last_name are required", http.StatusBadRequest)
		return
	}

	resp, err := s.registration.Register(r.Context(), model.RegisterArgs{
		Event:     event,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Comment:   req.Comment,
		BikeType:  req.BikeType,
		Distance:  req.Distance,
	})
	if err != nil {
		log.WithError(err).Error("error invoking usecase Register")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// On a duplicate the answer names the stored registrant so the rider can
	// self-diagnose a double submission.
	writeJSON(w, http.StatusOK, registerResponse{
		Outcome: resp.Outcome.String(),
		Rider:   resp.Rider.DisplayName(),
		Email:   resp.Rider.Email,
	})
}

// serveRiderEmails is the unauthenticated export of all registered rider
// addresses, gated by the event's derived UUID. A bad token answers "not
// found", never "forbidden", so probing cannot confirm the resource exists.
func (s *Server) serveRiderEmails(w http.ResponseWriter, r *http.Request, event model.Event, token string) {
	if !usecase.AuthorizeRiderExport(event, token) {
		http.NotFound(w, r)
		return
	}
	riders, err := s.repository.ListRiders(r.Context(), event.Kind(), event.DatabaseID())
	if err != nil {
		log.WithError(err).Error("error listing riders for email export")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	emails := make([]string, len(riders))
	for i, rider := range riders {
		emails[i] = rider.Email
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(strings.Join(emails, ", ")))
}

func resultsLink(event model.Event) string {
	switch e := event.(type) {
	case *model.Brevet:
		return e.ResultsLink
	case *model.Populaire:
		return e.ResultsLink
	default:
		return ""
	}
}

// parseBrevetCode splits "LM200" into region "LM" and distance 200.
func parseBrevetCode(code string) (string, int, bool) {
	split := len(code)
	for i, r := range code {
		if unicode.IsDigit(r) {
			split = i
			break
		}
	}
	if split == 0 || split == len(code) {
		return "", 0, false
	}
	distance, err := strconv.Atoi(code[split:])
	if err != nil {
		return "", 0, false
	}
	return code[:split], distance, true
}

func splitPath(path, prefix string) []string {
	trimmed := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("error encoding response body")
	}
}
