package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rbhz/dictionary-lookup/app/db"
	"github.com/rbhz/dictionary-lookup/app/lookup"
	"github.com/rs/zerolog/log"
)

// SessionResponse represents component state in API response
type SessionResponse struct {
	Token  string           `json:"token,omitempty"`
	Query  string           `json:"query"`
	Result *db.LookupResult `json:"result"`
	Error  *string          `json:"error"`
}

// QueryRequest is a body for query update
type QueryRequest struct {
	Query string `json:"query"`
}

func newSessionResponse(session db.Session) SessionResponse {
	resp := SessionResponse{Query: session.Query, Result: session.Result}
	if session.Error != "" {
		resp.Error = &session.Error
	}
	return resp
}

// sessionService implements JSON API for lookup sessions
type sessionService struct {
	lookup *lookup.Service
	auth   *authService
}

// Mount creates session and returns its token
func (s sessionService) Mount(w http.ResponseWriter, r *http.Request) {
	session, err := s.lookup.Mount()
	if err != nil {
		log.Error().Err(err).Msg("failed to mount session")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	token, err := s.auth.createToken(session.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to create token")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	resp := newSessionResponse(session)
	resp.Token = token
	writeJSON(w, http.StatusCreated, resp)
}

// State returns session state
func (s sessionService) State(w http.ResponseWriter, r *http.Request) {
	session, err := s.lookup.State(sessionID(r))
	s.respond(w, session, err)
}

// TextChange updates session query
func (s sessionService) TextChange(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeText(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	session, err := s.lookup.TextChange(sessionID(r), req.Query)
	s.respond(w, session, err)
}

// Trigger looks up the session query
func (s sessionService) Trigger(w http.ResponseWriter, r *http.Request) {
	session, err := s.lookup.Trigger(r.Context(), sessionID(r))
	s.respond(w, session, err)
}

// Unmount deletes session
func (s sessionService) Unmount(w http.ResponseWriter, r *http.Request) {
	if err := s.lookup.Unmount(sessionID(r)); err != nil {
		log.Error().Err(err).Msg("failed to unmount session")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s sessionService) respond(w http.ResponseWriter, session db.Session, err error) {
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeText(w, http.StatusNotFound, "session not found")
			return
		}
		log.Error().Err(err).Msg("failed to process session")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(session))
}

func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(ctxSessionIDKey).(string)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	response, jerr := json.Marshal(v)
	if jerr != nil {
		log.Error().Err(jerr).Msg("failed to marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(response); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}
