// Package handlers provides the HTTP handlers for the login and signup pages.
package handlers

import (
	"github.com/oszuidwest/zwfm-authpages/internal/forwarder"
)

// Handlers contains all the dependencies needed by the page handlers.
type Handlers struct {
	forwarder forwarder.Forwarder
	renderer  *Renderer
	localizer *Localizer
}

// NewHandlers creates a new Handlers instance with all required dependencies.
func NewHandlers(fwd forwarder.Forwarder, renderer *Renderer, localizer *Localizer) *Handlers {
	return &Handlers{
		forwarder: fwd,
		renderer:  renderer,
		localizer: localizer,
	}
}
