package archivist

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

const testToken = "authauthauth"

// recordedRequest is one request seen by the fake server.
type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// recorder captures requests and delegates responses to a handler.
type recorder struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (r *recorder) add(req recordedRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
}

func (r *recorder) all() []recordedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedRequest(nil), r.requests...)
}

// newTestClient starts a fake Archivist. handler receives the request with
// its body already read into rec.
func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request, rec recordedRequest)) (*Client, *recorder) {
	t.Helper()

	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		req := recordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     body,
		}
		rec.add(req)
		handler(w, r, req)
	}))
	t.Cleanup(server.Close)

	client, err := New(&Config{
		BaseURL:             server.URL,
		AuthToken:           testToken,
		PollInitialInterval: time.Millisecond,
		PollMaxInterval:     5 * time.Millisecond,
		ConfirmTimeout:      500 * time.Millisecond,
		Logger:              hclog.NewNullLogger(),
	})
	require.NoError(t, err)

	return client, rec
}

// writeJSON writes v with the given status.
func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// decodeBody decodes a recorded JSON request body.
func decodeBody(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m))
	return m
}
