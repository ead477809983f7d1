package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	g "maragu.dev/gomponents"

	"github.com/Its-donkey/contractually/internal/ui/components"
	"github.com/Its-donkey/contractually/internal/visit"
	"github.com/Its-donkey/contractually/internal/waitlist"
	"github.com/Its-donkey/contractually/logging"
)

const (
	formAction = "/waitlist"
	apiAction  = "/api/waitlist"
)

type submitRequest struct {
	Visit string `json:"visit"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type visitResponse struct {
	Visit         string                  `json:"visit"`
	Status        waitlist.Status         `json:"status"`
	Input         waitlist.FormInput      `json:"input"`
	Notifications []waitlist.Notification `json:"notifications"`
}

type submitResult struct {
	visit  *visit.Visit
	result waitlist.Result
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	v := s.visits.Start()
	s.renderLanding(w, http.StatusOK, v, nil)
}

// handleSubmitForm is the no-script path: the page is rendered again with the
// resulting state and any notifications as toasts.
func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	res := s.submit(r, r.PostForm.Get(components.FieldVisit), waitlist.FormInput{
		Name:  r.PostForm.Get(components.FieldName),
		Email: r.PostForm.Get(components.FieldEmail),
	})
	s.renderLanding(w, statusForOutcome(res.result.Outcome), res.visit, res.result.Notifications())
}

func (s *Server) handleSubmitAPI(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	body := http.MaxBytesReader(w, r.Body, maxSubmitBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	res := s.submit(r, req.Visit, waitlist.FormInput{Name: req.Name, Email: req.Email})
	writeJSON(w, statusForOutcome(res.result.Outcome), newVisitResponse(res.visit, res.result.Notifications()))
}

func (s *Server) handleVisitStatus(w http.ResponseWriter, r *http.Request) {
	v, ok := s.visits.Get(chi.URLParam(r, "visit"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown visit"})
		return
	}
	writeJSON(w, http.StatusOK, newVisitResponse(v, v.History.Recent()))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"visits": s.visits.Len(),
	})
}

// submit resolves the visit and runs one attempt on its controller. The call
// outlives a disconnected client so the terminal transition still happens.
// The response carries only the notification this attempt emitted.
func (s *Server) submit(r *http.Request, visitID string, input waitlist.FormInput) submitResult {
	v, resumed := s.visits.Resume(visitID)
	if !resumed && visitID != "" {
		s.logger.WithRequestID(logging.RequestIDFromContext(r.Context())).
			WithCategory("waitlist").
			Info("unknown or expired visit, starting a new one")
	}

	res := v.Controller.Attempt(context.WithoutCancel(r.Context()), input)
	s.metrics.RecordSubmit(res.Outcome)
	return submitResult{visit: v, result: res}
}

func statusForOutcome(outcome waitlist.Outcome) int {
	switch outcome {
	case waitlist.OutcomeInvalid:
		return http.StatusUnprocessableEntity
	case waitlist.OutcomeFailed:
		return http.StatusBadGateway
	case waitlist.OutcomeIgnored:
		return http.StatusConflict
	default:
		return http.StatusOK
	}
}

func newVisitResponse(v *visit.Visit, notifications []waitlist.Notification) visitResponse {
	if notifications == nil {
		notifications = []waitlist.Notification{}
	}
	state := v.Controller.Snapshot()
	return visitResponse{
		Visit:         v.ID,
		Status:        state.Status,
		Input:         state.Input,
		Notifications: notifications,
	}
}

func (s *Server) renderLanding(w http.ResponseWriter, status int, v *visit.Visit, notifications []waitlist.Notification) {
	page := components.LandingPage(components.LandingData{
		SiteName: s.siteName(),
		Page: components.PageConfig{
			Title:        s.siteName() + " - Understand Contracts Instantly",
			Description:  s.site.Description,
			CanonicalURL: s.site.CanonicalURL,
		},
		Year: s.now().Year(),
		Waitlist: components.WaitlistView{
			VisitID:   v.ID,
			State:     v.Controller.Snapshot(),
			Action:    formAction,
			APIAction: apiAction,
		},
		Notifications: notifications,
	})
	s.render(w, status, page)
}

func (s *Server) render(w http.ResponseWriter, status int, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := node.Render(w); err != nil {
		s.logger.Error(logCategory, "render page", err, nil)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
