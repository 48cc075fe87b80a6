// Package api wires the page handlers, middleware and auxiliary routes.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oszuidwest/zwfm-authpages/internal/api/handlers"
	"github.com/oszuidwest/zwfm-authpages/internal/config"
	"github.com/oszuidwest/zwfm-authpages/internal/forwarder"
	"github.com/oszuidwest/zwfm-authpages/internal/utils"
	"github.com/oszuidwest/zwfm-authpages/pkg/version"
)

// SetupRouter configures and returns the router with all routes and middleware.
func SetupRouter(cfg *config.Config, fwd forwarder.Forwarder) (*gin.Engine, error) {
	renderer, err := handlers.NewRenderer()
	if err != nil {
		return nil, err
	}
	h := handlers.NewHandlers(fwd, renderer, handlers.NewLocalizer(cfg.Locale))

	// Set Gin mode based on environment; tests pin their own mode
	if gin.Mode() != gin.TestMode {
		if cfg.Environment.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		} else {
			gin.SetMode(gin.DebugMode)
		}
	}

	r := gin.Default()
	r.HandleMethodNotAllowed = true

	r.Use(requestIDMiddleware())
	r.Use(securityMiddleware(cfg))

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, handlers.LoginPage.Path)
	})

	for _, page := range []handlers.Page{handlers.LoginPage, handlers.SignupPage} {
		r.GET(page.Path, h.ShowPage(page))
		r.POST(page.Path, h.SubmitPage(page))
	}

	r.GET("/static/*filepath", handlers.StaticHandler("/static"))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "authpages",
			"version": version.Version,
		})
	})

	r.NoRoute(func(c *gin.Context) {
		utils.ProblemNotFound(c, "Page")
	})
	r.NoMethod(func(c *gin.Context) {
		utils.ProblemMethodNotAllowed(c)
	})

	return r, nil
}
