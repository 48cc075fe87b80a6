package utils

import (
	"github.com/gin-gonic/gin"
)

// RFC 9457 Problem Details compatible error response functions.

// ProblemNotFound responds with HTTP 404 Not Found.
func ProblemNotFound(c *gin.Context, resource string) {
	if c == nil {
		return
	}
	sendWithTrace(c, NewNotFoundProblem(resource, c.Request.URL.Path))
}

// ProblemMethodNotAllowed responds with HTTP 405 Method Not Allowed.
func ProblemMethodNotAllowed(c *gin.Context) {
	if c == nil {
		return
	}
	sendWithTrace(c, NewMethodNotAllowedProblem(c.Request.Method, c.Request.URL.Path))
}

// ProblemInternalServer responds with HTTP 500 Internal Server Error.
func ProblemInternalServer(c *gin.Context, detail string) {
	if c == nil {
		return
	}
	sendWithTrace(c, NewInternalServerProblem(detail, c.Request.URL.Path))
}

func sendWithTrace(c *gin.Context, problem *ProblemDetail) {
	if traceID := GetTraceID(c); traceID != "" {
		problem.WithTraceID(traceID)
	}
	SendProblem(c, problem)
}
