package api

import (
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/oszuidwest/zwfm-authpages/internal/config"
	"github.com/oszuidwest/zwfm-authpages/internal/utils"
)

// RequestIDHeader carries the trace ID in requests and responses.
const RequestIDHeader = "X-Request-ID"

// requestIDMiddleware assigns every request a trace ID, reusing a valid
// UUID supplied by an upstream proxy.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(utils.TraceIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// securityMiddleware sets browser security headers. HSTS and HTTPS
// redirects are only enabled when the server itself terminates TLS.
func securityMiddleware(cfg *config.Config) gin.HandlerFunc {
	secureConfig := secure.Config{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; img-src 'self' data:; form-action 'self'; frame-ancestors 'none'",
	}

	if cfg.Server.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}

	return secure.New(secureConfig)
}
