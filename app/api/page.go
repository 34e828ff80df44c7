package api

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/rbhz/dictionary-lookup/app/db"
	"github.com/rbhz/dictionary-lookup/app/lookup"
	"github.com/rs/zerolog/log"
)

const sessionCookie = "session"

// pageService renders the lookup page, session token is kept in a cookie
type pageService struct {
	lookup   *lookup.Service
	auth     *authService
	template *template.Template
}

// Show renders current session state, mounting a new session if needed
func (p pageService) Show(w http.ResponseWriter, r *http.Request) {
	session, err := p.session(w, r)
	if err != nil {
		log.Error().Err(err).Msg("failed to get session")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	p.render(w, session)
}

// Search applies submitted text and triggers lookup
func (p pageService) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeText(w, http.StatusBadRequest, "invalid form")
		return
	}
	session, err := p.session(w, r)
	if err != nil {
		log.Error().Err(err).Msg("failed to get session")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if _, err := p.lookup.TextChange(session.ID, r.PostForm.Get("word")); err != nil {
		log.Error().Err(err).Str("session", session.ID).Msg("failed to update query")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if _, err := p.lookup.Trigger(r.Context(), session.ID); err != nil {
		log.Error().Err(err).Str("session", session.ID).Msg("failed to lookup word")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Unmount drops session and its cookie
func (p pageService) Unmount(w http.ResponseWriter, r *http.Request) {
	if id, ok := p.cookieSession(r); ok {
		if err := p.lookup.Unmount(id); err != nil {
			log.Error().Err(err).Str("session", id).Msg("failed to unmount session")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	w.WriteHeader(http.StatusNoContent)
}

func (p pageService) render(w http.ResponseWriter, session db.Session) {
	buf := &bytes.Buffer{}
	if err := p.template.Execute(buf, session); err != nil {
		log.Error().Err(err).Str("session", session.ID).Msg("failed to format page template")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

// session returns the cookie session or mounts a new one
func (p pageService) session(w http.ResponseWriter, r *http.Request) (db.Session, error) {
	if id, ok := p.cookieSession(r); ok {
		session, err := p.lookup.State(id)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, db.ErrNotFound) {
			return db.Session{}, err
		}
	}
	session, err := p.lookup.Mount()
	if err != nil {
		return db.Session{}, err
	}
	token, err := p.auth.createToken(session.ID)
	if err != nil {
		return db.Session{}, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(tokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return session, nil
}

func (p pageService) cookieSession(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", false
	}
	id, err := p.auth.parseToken(cookie.Value)
	if err != nil {
		log.Debug().Err(err).Msg("ignoring invalid session cookie")
		return "", false
	}
	return id, true
}
