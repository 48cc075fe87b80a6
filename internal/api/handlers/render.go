package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oszuidwest/zwfm-authpages/internal/apperrors"
	"github.com/oszuidwest/zwfm-authpages/internal/config"
	"github.com/oszuidwest/zwfm-authpages/internal/forwarder"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// PageData is the view model for the login and signup templates.
type PageData struct {
	Lang     string
	Title    string
	Action   string
	Submit   string
	Hint     string
	LinkHref string
	LinkText string
	// Username is echoed back after a submission; the password never is.
	Username string
	T        Messages
	Result   *ResultView
}

// ResultView is a Result prepared for display.
type ResultView struct {
	StatusCode int
	Body       string
	Succeeded  bool
}

func newResultView(res forwarder.Result) *ResultView {
	return &ResultView{
		StatusCode: res.StatusCode,
		Body:       res.Pretty(),
		Succeeded:  res.Succeeded(),
	}
}

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates once.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, apperrors.Template("pages", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the page into a buffer first so a failing template never
// produces a half-written response.
func (r *Renderer) Render(data PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return nil, apperrors.Template("layout.html", err)
	}
	return buf.Bytes(), nil
}

func pageData(page Page, locale config.Locale, msgs Messages) PageData {
	data := PageData{
		Lang:   string(locale),
		Action: page.Path,
		T:      msgs,
	}
	switch page.Kind {
	case KindSignup:
		data.Title = msgs.SignupTitle
		data.Submit = msgs.SignupSubmit
		data.Hint = msgs.SignupHint
		data.LinkHref = LoginPage.Path
		data.LinkText = msgs.ToLogin
	default:
		data.Title = msgs.LoginTitle
		data.Submit = msgs.LoginSubmit
		data.Hint = msgs.LoginHint
		data.LinkHref = SignupPage.Path
		data.LinkText = msgs.ToSignup
	}
	return data
}

// StaticHandler serves the embedded stylesheet and other assets under prefix.
func StaticHandler(prefix string) gin.HandlerFunc {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("failed to create embedded static filesystem: " + err.Error())
	}
	fileServer := http.FileServer(http.FS(sub))

	return func(c *gin.Context) {
		path := strings.TrimPrefix(c.Request.URL.Path, prefix)
		if path == "" || path == "/" {
			// No directory listings
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		c.Request.URL.Path = path
		c.Header("Cache-Control", "public, max-age=3600")
		fileServer.ServeHTTP(c.Writer, c.Request)
	}
}
