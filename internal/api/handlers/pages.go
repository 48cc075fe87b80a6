package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oszuidwest/zwfm-authpages/internal/apperrors"
	"github.com/oszuidwest/zwfm-authpages/internal/forwarder"
	"github.com/oszuidwest/zwfm-authpages/internal/utils"
	"github.com/oszuidwest/zwfm-authpages/internal/validation"
	"github.com/oszuidwest/zwfm-authpages/pkg/logger"
)

// PageKind distinguishes the two credential forms.
type PageKind int

const (
	KindLogin PageKind = iota
	KindSignup
)

// Page binds a route to the backend endpoint its form is forwarded to.
type Page struct {
	Kind     PageKind
	Path     string
	Endpoint string
}

// The two credential pages.
var (
	LoginPage  = Page{Kind: KindLogin, Path: "/login", Endpoint: forwarder.EndpointLogin}
	SignupPage = Page{Kind: KindSignup, Path: "/signup", Endpoint: forwarder.EndpointSignup}
)

// ShowPage renders the blank form.
func (h *Handlers) ShowPage(page Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := h.localizer.Resolve(c.GetHeader("Accept-Language"))
		h.render(c, pageData(page, locale, h.localizer.Messages(locale)))
	}
}

// SubmitPage reads the posted credentials, forwards them and renders the
// form together with the outcome.
func (h *Handlers) SubmitPage(page Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := h.localizer.Resolve(c.GetHeader("Accept-Language"))
		msgs := h.localizer.Messages(locale)

		username := strings.TrimSpace(c.PostForm("username"))
		password := c.PostForm("password")

		res := h.Submit(c.Request.Context(), page, username, password, msgs)

		data := pageData(page, locale, msgs)
		data.Username = username
		data.Result = newResultView(res)
		h.render(c, data)
	}
}

// Submit validates already-trimmed credentials and forwards them to the
// page's endpoint. Missing fields yield a local 400 without a backend call.
func (h *Handlers) Submit(ctx context.Context, page Page, username, password string, msgs Messages) forwarder.Result {
	v := validation.New().
		Required("username", username).
		Required("password", password)
	if v.HasErrors() {
		logger.Debug("%s: rejected submission: %v", page.Path, v.ToError())
		return forwarder.ErrorResult(http.StatusBadRequest, msgs.MissingFields)
	}

	return h.forwarder.Forward(ctx, page.Endpoint, forwarder.Credentials{
		Username: username,
		Password: password,
	})
}

func (h *Handlers) render(c *gin.Context, data PageData) {
	body, err := h.renderer.Render(data)
	if err != nil {
		logger.Error("Failed to render %s: [%s] %v (%v)", data.Action, apperrors.CodeOf(err), err, errors.Unwrap(err))
		utils.ProblemInternalServer(c, "Failed to render page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}
