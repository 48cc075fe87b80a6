package forwarder

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/oszuidwest/zwfm-authpages/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest captures what the fake backend received.
type recordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Body        []byte
}

// backendRecorder collects requests seen by a fake backend.
type backendRecorder struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (b *backendRecorder) add(r recordedRequest) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, r)
}

// Requests returns a copy of the requests received so far.
func (b *backendRecorder) Requests() []recordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]recordedRequest(nil), b.requests...)
}

// newBackend starts a fake backend answering every request with status and body.
func newBackend(t *testing.T, status int, body string) (*httptest.Server, *backendRecorder) {
	t.Helper()
	rec := &backendRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		rec.add(recordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			ContentType: r.Header.Get("Content-Type"),
			Body:        b,
		})
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestForwardSendsOneJSONPost(t *testing.T) {
	srv, rec := newBackend(t, http.StatusOK, `{"msg":"Login success","username":"alice"}`)
	f := NewHTTPForwarder(config.BackendConfig{BaseURL: srv.URL})

	res := f.Forward(context.Background(), EndpointLogin, Credentials{Username: "alice", Password: " s3cret "})

	requests := rec.Requests()
	require.Len(t, requests, 1)
	got := requests[0]
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/api/login", got.Path)
	assert.Equal(t, "application/json", got.ContentType)
	assert.JSONEq(t, `{"username":"alice","password":" s3cret "}`, string(got.Body))

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, map[string]any{"msg": "Login success", "username": "alice"}, res.Body)
}

func TestForwardTokenResponse(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, `{"token": "abc"}`)
	f := NewHTTPForwarder(config.BackendConfig{BaseURL: srv.URL + "/"})

	res := f.Forward(context.Background(), EndpointSignup, Credentials{Username: "bob", Password: "pw"})

	assert.Equal(t, 200, res.StatusCode)
	assert.Equal(t, map[string]any{"token": "abc"}, res.Body)
}

func TestForwardBodyNormalization(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   any
	}{
		{
			name:   "plain text",
			status: http.StatusOK,
			body:   "Internal thing happened",
			want:   map[string]any{"raw": "Internal thing happened"},
		},
		{
			name:   "empty body",
			status: http.StatusNoContent,
			body:   "",
			want:   map[string]any{"raw": ""},
		},
		{
			name:   "malformed json",
			status: http.StatusBadGateway,
			body:   `{"detail": `,
			want:   map[string]any{"raw": `{"detail": `},
		},
		{
			name:   "json null",
			status: http.StatusOK,
			body:   "null",
			want:   map[string]any{"raw": "null"},
		},
		{
			name:   "trailing garbage",
			status: http.StatusOK,
			body:   `{"a":1} tail`,
			want:   map[string]any{"raw": `{"a":1} tail`},
		},
		{
			name:   "invalid utf-8",
			status: http.StatusOK,
			body:   "\"\xff\"",
			want:   map[string]any{"raw": "\"\xff\""},
		},
		{
			name:   "backend error passed through",
			status: http.StatusUnauthorized,
			body:   `{"detail":"Invalid username or password"}`,
			want:   map[string]any{"detail": "Invalid username or password"},
		},
		{
			name:   "json array",
			status: http.StatusOK,
			body:   `["a", true]`,
			want:   []any{"a", true},
		},
		{
			name:   "large integer kept exact",
			status: http.StatusCreated,
			body:   `{"id": 12345678901234567890}`,
			want:   map[string]any{"id": json.Number("12345678901234567890")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newBackend(t, tt.status, tt.body)
			f := NewHTTPForwarder(config.BackendConfig{BaseURL: srv.URL})

			res := f.Forward(context.Background(), EndpointLogin, Credentials{Username: "u", Password: "p"})

			assert.Equal(t, tt.status, res.StatusCode)
			assert.Equal(t, tt.want, res.Body)
		})
	}
}

func TestForwardUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	f := NewHTTPForwarder(config.BackendConfig{BaseURL: url})
	res := f.Forward(context.Background(), EndpointLogin, Credentials{Username: "u", Password: "p"})

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	body, ok := res.Body.(map[string]any)
	require.True(t, ok)
	msg, ok := body["error"].(string)
	require.True(t, ok)
	assert.Contains(t, msg, "Transport error")
}

func TestForwardTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	f := NewHTTPForwarder(config.BackendConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	res := f.Forward(context.Background(), EndpointLogin, Credentials{Username: "u", Password: "p"})

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Contains(t, res.Body.(map[string]any)["error"], "Transport error")
}

func TestForwardNoRetryOnErrorStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	f := NewHTTPForwarderWithClient(srv.URL, srv.Client())
	res := f.Forward(context.Background(), EndpointSignup, Credentials{Username: "u", Password: "p"})

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	assert.Equal(t, map[string]any{"raw": ""}, res.Body)
}

func TestForwardIsIdempotent(t *testing.T) {
	srv, rec := newBackend(t, http.StatusBadRequest, `{"detail":"Username already exists"}`)
	f := NewHTTPForwarder(config.BackendConfig{BaseURL: srv.URL})
	creds := Credentials{Username: "carol", Password: "hunter22"}

	first := f.Forward(context.Background(), EndpointSignup, creds)
	second := f.Forward(context.Background(), EndpointSignup, creds)

	assert.Equal(t, first, second)
	requests := rec.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, requests[0].Body, requests[1].Body)
}

func TestForwardKeepsUnicodeUnescaped(t *testing.T) {
	srv, rec := newBackend(t, http.StatusOK, `{"msg":"Đăng nhập thành công","username":"Nguyễn <Văn>"}`)
	f := NewHTTPForwarder(config.BackendConfig{BaseURL: srv.URL})

	res := f.Forward(context.Background(), EndpointLogin, Credentials{Username: "Nguyễn <Văn>", Password: "mật khẩu&"})

	requests := rec.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, `{"username":"Nguyễn <Văn>","password":"mật khẩu&"}`, string(requests[0].Body))

	body := res.Body.(map[string]any)
	assert.Equal(t, "Đăng nhập thành công", body["msg"])
	assert.Contains(t, res.Pretty(), `"username": "Nguyễn <Văn>"`)
}

func TestForwardKeepsBackendKeyOrder(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, `{"b":1,"a":{"z":[1.50,"\u00e9"],"y":{}},"c":null}`)
	f := NewHTTPForwarder(config.BackendConfig{BaseURL: srv.URL})

	res := f.Forward(context.Background(), EndpointLogin, Credentials{Username: "u", Password: "p"})

	want := "{\n" +
		"    \"b\": 1,\n" +
		"    \"a\": {\n" +
		"        \"z\": [\n" +
		"            1.50,\n" +
		"            \"é\"\n" +
		"        ],\n" +
		"        \"y\": {}\n" +
		"    },\n" +
		"    \"c\": null\n" +
		"}"
	assert.Equal(t, want, res.Pretty())
}

func TestForwardCancelledContext(t *testing.T) {
	srv, rec := newBackend(t, http.StatusOK, `{}`)
	f := NewHTTPForwarder(config.BackendConfig{BaseURL: srv.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := f.Forward(ctx, EndpointLogin, Credentials{Username: "u", Password: "p"})

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Empty(t, rec.Requests())
}
