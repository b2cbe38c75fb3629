// ABOUTME: JSON API handlers for contacts, follow-ups, metrics and audits
// ABOUTME: Every write goes through the store's whole-collection replacement
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/harperreed/kinetic/db"
	"github.com/harperreed/kinetic/insights"
	"github.com/harperreed/kinetic/models"
	"github.com/harperreed/kinetic/viz"
)

var errInvalidJSON = errors.New("invalid json")

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSON, false)
		return false
	}
	return true
}

// storeError maps store failures to HTTP statuses. Anything that is not a
// lookup miss or an id clash is a rejected payload.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrContactNotFound), errors.Is(err, db.ErrEventNotFound):
		writeError(w, http.StatusNotFound, err, false)
	case errors.Is(err, db.ErrDuplicateID):
		writeError(w, http.StatusConflict, err, false)
	default:
		writeError(w, http.StatusBadRequest, err, false)
	}
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var status models.Status
	if raw := q.Get("status"); raw != "" {
		parsed, err := models.ParseStatus(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err, false)
			return
		}
		status = parsed
	}

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, errors.New("limit must be a non-negative integer"), false)
			return
		}
		limit = n
	}

	contacts := s.store.FindContacts(q.Get("q"), status, limit)
	if contacts == nil {
		contacts = []models.Contact{}
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.GetContact(chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleAddContact(w http.ResponseWriter, r *http.Request) {
	var c models.Contact
	if !decode(w, r, &c) {
		return
	}
	if err := s.store.AddContact(&c); err != nil {
		storeError(w, err)
		return
	}
	s.logger.Info("contact added", zap.String("id", c.ID), zap.String("name", c.Name))
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var c models.Contact
	if !decode(w, r, &c) {
		return
	}
	if err := s.store.UpdateContact(id, &c); err != nil {
		storeError(w, err)
		return
	}
	updated, err := s.store.GetContact(id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteContact(chi.URLParam(r, "id")); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decode(w, r, &req) {
		return
	}
	status, err := models.ParseStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, err, false)
		return
	}
	c, err := s.store.SetStatus(chi.URLParam(r, "id"), status)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleSetCadence(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FollowUpInterval int `json:"followUpInterval"`
	}
	if !decode(w, r, &req) {
		return
	}
	c, err := s.store.SetFollowUpInterval(chi.URLParam(r, "id"), req.FollowUpInterval)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleLogInteraction(w http.ResponseWriter, r *http.Request) {
	var in models.Interaction
	if !decode(w, r, &in) {
		return
	}
	c, err := s.store.LogInteraction(chi.URLParam(r, "id"), &in)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleAddEvent(w http.ResponseWriter, r *http.Request) {
	var ev models.OneOffEvent
	if !decode(w, r, &ev) {
		return
	}
	c, err := s.store.AddEvent(chi.URLParam(r, "id"), &ev)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleCompleteEvent(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.CompleteEvent(chi.URLParam(r, "id"), chi.URLParam(r, "eventID"))
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, db.Board(s.store.Contacts()))
}

func (s *Server) handleFollowups(w http.ResponseWriter, r *http.Request) {
	queue := db.FollowUpQueue(s.store.Contacts(), s.store.Today())
	if queue == nil {
		queue = []db.FollowUpItem{}
	}
	writeJSON(w, http.StatusOK, queue)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, db.ComputeStats(s.store.Contacts()))
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	weeks := viz.TrendWeeks
	if raw := r.URL.Query().Get("weeks"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 52 {
			writeError(w, http.StatusBadRequest, errors.New("weeks must be between 1 and 52"), false)
			return
		}
		weeks = n
	}
	trend, err := db.GrowthTrend(s.store.Contacts(), s.store.Today(), weeks)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err, false)
		return
	}
	writeJSON(w, http.StatusOK, trend)
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("period")
	if raw == "" {
		raw = string(models.PeriodMonthly)
	}
	period, err := models.ParseReviewPeriod(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err, false)
		return
	}

	report, err := s.auditor.Audit(r.Context(), s.store.Contacts(), period)
	if err != nil {
		status, retryable := auditStatus(err)
		writeError(w, status, err, retryable)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// auditStatus maps audit failures to an HTTP status and whether the client
// should offer a retry.
func auditStatus(err error) (int, bool) {
	var auditErr *insights.AuditError
	switch {
	case errors.Is(err, insights.ErrNoContacts):
		return http.StatusUnprocessableEntity, true
	case errors.Is(err, insights.ErrInvalidPeriod):
		return http.StatusBadRequest, false
	case errors.Is(err, insights.ErrAuditInProgress):
		return http.StatusConflict, true
	case errors.Is(err, insights.ErrNoModel):
		return http.StatusServiceUnavailable, false
	case errors.As(err, &auditErr):
		return http.StatusBadGateway, auditErr.Retryable()
	}
	return http.StatusInternalServerError, false
}

type auditStatusResponse struct {
	Running  bool   `json:"running"`
	LatestID string `json:"latest_id,omitempty"`
}

// handleAuditStatus lets clients disable the run control while an audit is
// in flight.
func (s *Server) handleAuditStatus(w http.ResponseWriter, r *http.Request) {
	resp := auditStatusResponse{Running: s.auditor.Running()}
	if latest := s.auditor.Latest(); latest != nil {
		resp.LatestID = latest.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLatestAudit(w http.ResponseWriter, r *http.Request) {
	report := s.auditor.Latest()
	if report == nil {
		writeError(w, http.StatusNotFound, errors.New("no audit has been run yet"), false)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
