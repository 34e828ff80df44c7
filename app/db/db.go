package db

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/rbhz/dictionary-lookup/app/clients/dictionaryapi"

	"github.com/google/uuid"
)

// NotFoundMessage is the only error text shown to users
const NotFoundMessage = "Word not found"

const (
	noPhoneticText  = "No phonetic available"
	noDefinitionText = "undefined"
)

var (
	// ErrNotFound is returned when object not found
	ErrNotFound error = errors.New("not found")
	// ErrMalformed is returned when a dictionary response lacks required fields
	ErrMalformed error = errors.New("malformed dictionary response")
)

// GenerateID generates new uuid and encodes it to base64
func GenerateID() string {
	id := [16]byte(uuid.New())
	return base64.RawURLEncoding.EncodeToString(id[:])
}

// Storage defines method provided by database interfaces
type Storage interface {
	// GetSession returns session by ID
	GetSession(string) (Session, error)
	// SaveSession creates or replaces session
	SaveSession(Session) error
	// DeleteSession removes session, missing sessions are ignored
	DeleteSession(string) error
}

// Session holds the state of one mounted lookup component
type Session struct {
	ID      string
	Query   string
	Result  *LookupResult
	Error   string
	Seq     uint64
	Created time.Time
}

// NewSession creates session with empty state
func NewSession() Session {
	return Session{ID: GenerateID(), Created: time.Now().UTC()}
}

// SetResult stores successful lookup result and clears error
func (s *Session) SetResult(r LookupResult) {
	s.Result = &r
	s.Error = ""
}

// SetFailed clears result and sets the error message
func (s *Session) SetFailed() {
	s.Result = nil
	s.Error = NotFoundMessage
}

// Phonetics holds pronunciation data
type Phonetics struct {
	Text  string `json:"text"`
	Audio string `json:"audio,omitempty"`
}

// LookupResult hold display data for a single looked up word
type LookupResult struct {
	Word       string     `json:"word"`
	Phonetics  *Phonetics `json:"phonetics,omitempty"`
	Definition string     `json:"definition,omitempty"`
	Example    string     `json:"example,omitempty"`
	Synonym    string     `json:"synonym,omitempty"`
}

// PhoneticText returns phonetic text with placeholder for empty value
func (r LookupResult) PhoneticText() string {
	if r.Phonetics == nil || r.Phonetics.Text == "" {
		return noPhoneticText
	}
	return r.Phonetics.Text
}

// DefinitionText returns definition, missing value is shown as "undefined"
func (r LookupResult) DefinitionText() string {
	if r.Definition == "" {
		return noDefinitionText
	}
	return r.Definition
}

// HasAudio returns true if phonetics carry an audio URL
func (r LookupResult) HasAudio() bool {
	return r.Phonetics != nil && r.Phonetics.Audio != ""
}

// NewLookupResult creates display data from dictionary response.
// Only the first entry and its first meaning are used.
func NewLookupResult(dictionaryResponse []dictionaryapi.WordResponse) (LookupResult, error) {
	if len(dictionaryResponse) == 0 {
		return LookupResult{}, fmt.Errorf("empty response: %w", ErrMalformed)
	}
	ri := dictionaryResponse[0]
	if len(ri.Meanings) == 0 {
		return LookupResult{}, fmt.Errorf("no meanings: %w", ErrMalformed)
	}
	m := ri.Meanings[0]
	if len(m.Definitions) == 0 {
		return LookupResult{}, fmt.Errorf("no definitions: %w", ErrMalformed)
	}
	if m.Synonyms == nil {
		return LookupResult{}, fmt.Errorf("no synonyms: %w", ErrMalformed)
	}

	item := LookupResult{Word: ri.Word}
	if p := preferSecond(ri.Phonetics); p != nil {
		item.Phonetics = &Phonetics{Text: p.Text}
		if p.Audio != nil {
			item.Phonetics.Audio = *p.Audio
		}
	}
	// definition and example fall back independently, both from the same list
	first := m.Definitions[0]
	item.Definition, item.Example = first.Definition, first.Example
	if len(m.Definitions) > 1 {
		second := m.Definitions[1]
		if second.Definition != "" {
			item.Definition = second.Definition
		}
		if second.Example != "" {
			item.Example = second.Example
		}
	}
	if len(m.Synonyms) > 0 {
		item.Synonym = m.Synonyms[0]
	}
	return item, nil
}

func preferSecond[T any](items []T) *T {
	switch {
	case len(items) > 1:
		return &items[1]
	case len(items) == 1:
		return &items[0]
	}
	return nil
}
