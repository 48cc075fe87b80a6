// Package forwarder posts credentials to the authentication backend and
// normalizes every outcome into a Result.
package forwarder

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/oszuidwest/zwfm-authpages/internal/apperrors"
	"github.com/oszuidwest/zwfm-authpages/internal/config"
	"github.com/oszuidwest/zwfm-authpages/pkg/logger"
)

// Backend endpoints credentials can be forwarded to.
const (
	EndpointLogin  = "/api/login"
	EndpointSignup = "/api/signup"
)

// Credentials is the payload sent to the backend. It lives for a single
// request and must never be logged.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Forwarder sends credentials to a backend endpoint. Implementations never
// fail: transport problems are reported inside the Result.
type Forwarder interface {
	Forward(ctx context.Context, endpoint string, payload Credentials) Result
}

// HTTPForwarder is the Forwarder backed by a JSON-over-HTTP API.
type HTTPForwarder struct {
	baseURL string
	client  *http.Client
}

// NewHTTPForwarder creates a forwarder for the configured backend.
// A zero timeout keeps the transport default.
func NewHTTPForwarder(cfg config.BackendConfig) *HTTPForwarder {
	return &HTTPForwarder{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// NewHTTPForwarderWithClient creates a forwarder using the given client.
func NewHTTPForwarderWithClient(baseURL string, client *http.Client) *HTTPForwarder {
	return &HTTPForwarder{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Forward performs exactly one POST of payload to baseURL+endpoint.
// The backend status is kept as-is; the body is decoded JSON when possible
// and otherwise wrapped as {"raw": text}.
func (f *HTTPForwarder) Forward(ctx context.Context, endpoint string, payload Credentials) Result {
	body, err := encodeJSON(payload)
	if err != nil {
		return transportFailure(endpoint, err)
	}

	url := f.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return transportFailure(endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	//nolint:gosec // G107: base URL is operator configuration, endpoint is a package constant
	resp, err := f.client.Do(req)
	if err != nil {
		return transportFailure(endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportFailure(endpoint, err)
	}

	logger.Debug("POST %s returned %d (%d bytes)", endpoint, resp.StatusCode, len(respBody))
	return decodeResult(resp.StatusCode, respBody)
}

// decodeResult parses the backend body. JSON null and invalid UTF-8 are
// treated like an unparsable body.
func decodeResult(status int, body []byte) Result {
	if !utf8.Valid(body) || !json.Valid(body) {
		return rawResult(status, body)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil || v == nil {
		return rawResult(status, body)
	}
	return Result{StatusCode: status, Body: v, raw: body}
}

func rawResult(status int, body []byte) Result {
	return Result{StatusCode: status, Body: map[string]any{"raw": string(body)}}
}

func transportFailure(endpoint string, err error) Result {
	appErr := apperrors.Transport(err).WithInternal("endpoint %s", endpoint)
	logger.Debug("forward failed: %s (%s)", appErr.Message, appErr.Internal)
	return ErrorResult(http.StatusInternalServerError, appErr.Message)
}

// encodeJSON marshals v without escaping non-ASCII or HTML characters.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
