// Package utils provides shared HTTP response helpers.
package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ProblemDetail is the RFC 9457 body sent for requests that never reach a
// page handler, and for pages that fail to render.
type ProblemDetail struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail,omitempty"`
	Instance  string `json:"instance,omitempty"` // request path
	Timestamp string `json:"timestamp"`          // RFC 3339, UTC
	TraceID   string `json:"trace_id,omitempty"` // X-Request-ID of the request
}

const problemBase = "https://authpages.local/problems/"

// Problem types served by this service.
const (
	ProblemTypeResourceNotFound    = problemBase + "resource-not-found"
	ProblemTypeMethodNotAllowed    = problemBase + "method-not-allowed"
	ProblemTypeInternalServerError = problemBase + "internal-server-error"
)

// TraceIDKey is the gin context key holding the request's trace ID.
const TraceIDKey = "trace_id"

// NewProblemDetail stamps a problem with the current time.
func NewProblemDetail(problemType, title string, status int, detail, instance string) *ProblemDetail {
	return &ProblemDetail{
		Type:      problemType,
		Title:     title,
		Status:    status,
		Detail:    detail,
		Instance:  instance,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// NewNotFoundProblem reports an unknown route, e.g. "Page not found".
func NewNotFoundProblem(resource, instance string) *ProblemDetail {
	return NewProblemDetail(ProblemTypeResourceNotFound, http.StatusText(http.StatusNotFound),
		http.StatusNotFound, resource+" not found", instance)
}

// NewMethodNotAllowedProblem reports a method the route does not accept.
func NewMethodNotAllowedProblem(method, instance string) *ProblemDetail {
	return NewProblemDetail(ProblemTypeMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed),
		http.StatusMethodNotAllowed, method+" is not supported on this route", instance)
}

// NewInternalServerProblem reports a page that could not be produced.
func NewInternalServerProblem(detail, instance string) *ProblemDetail {
	return NewProblemDetail(ProblemTypeInternalServerError, http.StatusText(http.StatusInternalServerError),
		http.StatusInternalServerError, detail, instance)
}

// WithTraceID sets the trace ID and returns p.
func (p *ProblemDetail) WithTraceID(traceID string) *ProblemDetail {
	p.TraceID = traceID
	return p
}

// SendProblem writes problem as application/problem+json. An empty Instance
// defaults to the request path.
func SendProblem(c *gin.Context, problem *ProblemDetail) {
	c.Header("Content-Type", "application/problem+json")
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}

	c.JSON(problem.Status, problem)
}

// GetTraceID returns the request ID stored by the request ID middleware.
func GetTraceID(c *gin.Context) string {
	if traceID, exists := c.Get(TraceIDKey); exists {
		if id, ok := traceID.(string); ok {
			return id
		}
	}
	return ""
}
