// Package lookup implements the word lookup component: input handling,
// the dictionary request and the resulting state transitions.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rbhz/dictionary-lookup/app/clients/dictionaryapi"
	"github.com/rbhz/dictionary-lookup/app/db"

	"github.com/rs/zerolog/log"
)

// Fetcher fetches dictionary entries for a word
type Fetcher interface {
	Get(ctx context.Context, word string) ([]dictionaryapi.WordResponse, error)
}

// FetcherFunc is an adapter to use ordinary functions as Fetcher
type FetcherFunc func(ctx context.Context, word string) ([]dictionaryapi.WordResponse, error)

// Get calls f(ctx, word)
func (f FetcherFunc) Get(ctx context.Context, word string) ([]dictionaryapi.WordResponse, error) {
	return f(ctx, word)
}

// Service manages lookup sessions.
// The mutex guards read-modify-write of sessions and is never held during fetch.
type Service struct {
	fetcher Fetcher
	storage db.Storage
	mx      sync.Mutex
}

// Mount creates session with empty state
func (s *Service) Mount() (db.Session, error) {
	session := db.NewSession()
	if err := s.storage.SaveSession(session); err != nil {
		return db.Session{}, fmt.Errorf("save session: %w", err)
	}
	log.Debug().Str("session", session.ID).Msg("session mounted")
	return session, nil
}

// MountAs returns session with the given id, creating it when missing
func (s *Service) MountAs(id string) (db.Session, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	session, err := s.storage.GetSession(id)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return db.Session{}, err
	}
	session = db.NewSession()
	session.ID = id
	if err := s.storage.SaveSession(session); err != nil {
		return db.Session{}, fmt.Errorf("save session: %w", err)
	}
	log.Debug().Str("session", id).Msg("session mounted")
	return session, nil
}

// Unmount drops session state
func (s *Service) Unmount(id string) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	if err := s.storage.DeleteSession(id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	log.Debug().Str("session", id).Msg("session unmounted")
	return nil
}

// State returns current session state
func (s *Service) State(id string) (db.Session, error) {
	return s.storage.GetSession(id)
}

// TextChange replaces session query as is
func (s *Service) TextChange(id string, text string) (db.Session, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	session, err := s.storage.GetSession(id)
	if err != nil {
		return db.Session{}, err
	}
	session.Query = text
	if err := s.storage.SaveSession(session); err != nil {
		return db.Session{}, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// Trigger looks up the current session query
func (s *Service) Trigger(ctx context.Context, id string) (db.Session, error) {
	session, seq, err := s.begin(id)
	if err != nil {
		return db.Session{}, err
	}
	return s.settle(ctx, id, seq, session.Query)
}

// Lookup fetches the word and stores either the result or the error message.
// The query is reset in both cases. Errors are returned only for storage failures.
func (s *Service) Lookup(ctx context.Context, id string, word string) (db.Session, error) {
	_, seq, err := s.begin(id)
	if err != nil {
		return db.Session{}, err
	}
	return s.settle(ctx, id, seq, word)
}

// begin registers a new lookup and returns its sequence number
func (s *Service) begin(id string) (db.Session, uint64, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	session, err := s.storage.GetSession(id)
	if err != nil {
		return db.Session{}, 0, err
	}
	session.Seq++
	if err := s.storage.SaveSession(session); err != nil {
		return db.Session{}, 0, fmt.Errorf("save session: %w", err)
	}
	return session, session.Seq, nil
}

func (s *Service) settle(ctx context.Context, id string, seq uint64, word string) (db.Session, error) {
	result, lookupErr := s.fetch(ctx, word)

	s.mx.Lock()
	defer s.mx.Unlock()
	session, err := s.storage.GetSession(id)
	if err != nil {
		return db.Session{}, err
	}
	if session.Seq != seq {
		log.Debug().Str("session", id).Str("word", word).Msg("discarding outdated lookup")
		return session, nil
	}
	if lookupErr != nil {
		log.Warn().Err(lookupErr).Str("session", id).Str("word", word).Msg("lookup failed")
		session.SetFailed()
	} else {
		session.SetResult(result)
	}
	session.Query = ""
	if err := s.storage.SaveSession(session); err != nil {
		return db.Session{}, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

func (s *Service) fetch(ctx context.Context, word string) (db.LookupResult, error) {
	items, err := s.fetcher.Get(ctx, word)
	if err != nil {
		return db.LookupResult{}, fmt.Errorf("get dictionary info: %w", err)
	}
	return db.NewLookupResult(items)
}

// NewService creates lookup service
func NewService(fetcher Fetcher, storage db.Storage) *Service {
	return &Service{fetcher: fetcher, storage: storage}
}
