package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/rbhz/dictionary-lookup/app/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionPath = "/api/v1/session"

func doRequest(t *testing.T, method, url, token, body string) (*http.Response, string) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	r, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer r.Body.Close()
	data, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	return r, string(data)
}

func mountSession(t *testing.T, baseURL string) (string, SessionResponse) {
	r, body := doRequest(t, http.MethodPost, baseURL+sessionPath, "", "")
	require.Equal(t, http.StatusCreated, r.StatusCode)
	var resp SessionResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.NotEmpty(t, resp.Token)
	return "Bearer " + resp.Token, resp
}

func TestMountSession(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ts, cancel := getTestServer(nil)
		defer cancel()
		r, body := doRequest(t, http.MethodPost, ts.URL+sessionPath, "", "")
		assert.Equal(t, http.StatusCreated, r.StatusCode)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var resp SessionResponse
		require.NoError(t, json.Unmarshal([]byte(body), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Empty(t, resp.Query)
		assert.Nil(t, resp.Result)
		assert.Nil(t, resp.Error)
	})
	t.Run("storage error", func(t *testing.T) {
		ts, cancel := getTestServer(ErrorStorage{db.NewInMemoryStorage()})
		defer cancel()
		r, _ := doRequest(t, http.MethodPost, ts.URL+sessionPath, "", "")
		assert.Equal(t, http.StatusInternalServerError, r.StatusCode)
	})
}

func TestSessionState(t *testing.T) {
	t.Run("initial", func(t *testing.T) {
		ts, cancel := getTestServer(nil)
		defer cancel()
		token, _ := mountSession(t, ts.URL)
		r, body := doRequest(t, http.MethodGet, ts.URL+sessionPath, token, "")
		assert.Equal(t, http.StatusOK, r.StatusCode)
		assert.Equal(t, `{"query":"","result":null,"error":null}`, body)
	})
	t.Run("unknown session", func(t *testing.T) {
		ts, cancel := getTestServer(nil)
		defer cancel()
		r, _ := doRequest(t, http.MethodGet, ts.URL+sessionPath, getTestToken(t, "missing"), "")
		assert.Equal(t, http.StatusNotFound, r.StatusCode)
	})
	t.Run("unauthorized", func(t *testing.T) {
		ts, cancel := getTestServer(nil)
		defer cancel()
		r, body := doRequest(t, http.MethodGet, ts.URL+sessionPath, "", "")
		assert.Equal(t, http.StatusUnauthorized, r.StatusCode)
		assert.Equal(t, "unauthorized", body)
	})
}

func TestSessionTextChange(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ts, cancel := getTestServer(nil)
		defer cancel()
		token, _ := mountSession(t, ts.URL)
		r, body := doRequest(t, http.MethodPut, ts.URL+sessionPath+"/query", token, `{"query":" hel"}`)
		assert.Equal(t, http.StatusOK, r.StatusCode)
		assert.Equal(t, `{"query":" hel","result":null,"error":null}`, body)
	})
	t.Run("invalid json", func(t *testing.T) {
		ts, cancel := getTestServer(nil)
		defer cancel()
		token, _ := mountSession(t, ts.URL)
		r, _ := doRequest(t, http.MethodPut, ts.URL+sessionPath+"/query", token, `NOT JSON`)
		assert.Equal(t, http.StatusBadRequest, r.StatusCode)
	})
}

func TestSessionTrigger(t *testing.T) {
	t.Run("hello", func(t *testing.T) {
		ts, cancel := getTestServer(nil)
		defer cancel()
		token, _ := mountSession(t, ts.URL)
		doRequest(t, http.MethodPut, ts.URL+sessionPath+"/query", token, `{"query":"hello"}`)
		r, body := doRequest(t, http.MethodPost, ts.URL+sessionPath+"/lookup", token, "")
		assert.Equal(t, http.StatusOK, r.StatusCode)
		expected := `{"query":"","result":{"word":"hello","phonetics":{"text":"/həˈloʊ/"},` +
			`"definition":"A greeting","example":"Hello, how are you?","synonym":"hi"},"error":null}`
		assert.Equal(t, expected, body)
	})
	t.Run("not found", func(t *testing.T) {
		ts, cancel := getTestServer(nil)
		defer cancel()
		token, _ := mountSession(t, ts.URL)
		doRequest(t, http.MethodPut, ts.URL+sessionPath+"/query", token, `{"query":"zzznotaword"}`)
		r, body := doRequest(t, http.MethodPost, ts.URL+sessionPath+"/lookup", token, "")
		assert.Equal(t, http.StatusOK, r.StatusCode)
		assert.Equal(t, `{"query":"","result":null,"error":"Word not found"}`, body)
	})
}

func TestUnmountSession(t *testing.T) {
	ts, cancel := getTestServer(nil)
	defer cancel()
	token, _ := mountSession(t, ts.URL)
	r, _ := doRequest(t, http.MethodDelete, ts.URL+sessionPath, token, "")
	assert.Equal(t, http.StatusNoContent, r.StatusCode)

	r, _ = doRequest(t, http.MethodGet, ts.URL+sessionPath, token, "")
	assert.Equal(t, http.StatusNotFound, r.StatusCode)
}
