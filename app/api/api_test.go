package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rbhz/dictionary-lookup/app/clients/dictionaryapi"
	"github.com/rbhz/dictionary-lookup/app/db"
	"github.com/rbhz/dictionary-lookup/app/lookup"
)

const testJWTSecret = "tokentokentokentoken"

const helloResponse = `[{"word":"hello","phonetics":[{"text":"/həˈloʊ/"}],` +
	`"meanings":[{"definitions":[{"definition":"A greeting","example":"Hello, how are you?"}],"synonyms":["hi"]}]}]`

const audioResponse = `[{"word":"test","phonetics":[{"text":"/tɛst/"},{"text":"/test/","audio":"https://example.com/test.mp3"}],` +
	`"meanings":[{"definitions":[{"definition":"first"},{"definition":"second","example":"a test"}],"synonyms":[]}]}]`

// ErrorStorage is a dummy storage for testing storage error handling.
type ErrorStorage struct {
	*db.InMemoryStorage
}

func (d ErrorStorage) SaveSession(db.Session) error {
	return errors.New("test")
}

// fakeDictionary answers with helloResponse for "hello",
// audioResponse for "test" and 404 for anything else.
func fakeDictionary(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasSuffix(r.URL.Path, "/hello"):
		_, _ = w.Write([]byte(helloResponse))
	case strings.HasSuffix(r.URL.Path, "/test"):
		_, _ = w.Write([]byte(audioResponse))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// getTestServer returns a test server.
func getTestServer(storage db.Storage) (*httptest.Server, func()) {
	if storage == nil {
		storage = db.NewInMemoryStorage()
	}
	dict := httptest.NewServer(http.HandlerFunc(fakeDictionary))
	client := dictionaryapi.NewClient(dict.Client(), dict.URL+"/api/v2/entries/en/")
	server := NewServer(lookup.NewService(client, storage), testJWTSecret)
	srv := httptest.NewServer(server.router)
	return srv, func() {
		srv.Close()
		dict.Close()
	}
}

// getTestToken returns a bearer header for the session
func getTestToken(t *testing.T, sessionID string) string {
	token, err := (&authService{jwtSecret: []byte(testJWTSecret)}).createToken(sessionID)
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + token
}
