package handlers

import (
	"github.com/oszuidwest/zwfm-authpages/internal/config"
	"golang.org/x/text/language"
)

// Messages holds every user-visible string for one locale.
type Messages struct {
	LoginTitle    string
	SignupTitle   string
	Username      string
	Password      string
	LoginSubmit   string
	SignupSubmit  string
	ResultHeading string
	StatusLabel   string
	LoginHint     string
	SignupHint    string
	ToSignup      string
	ToLogin       string
	MissingFields string
}

var catalog = map[config.Locale]Messages{
	config.LocaleVietnamese: {
		LoginTitle:    "Đăng nhập",
		SignupTitle:   "Đăng ký",
		Username:      "Tên đăng nhập",
		Password:      "Mật khẩu",
		LoginSubmit:   "Đăng nhập",
		SignupSubmit:  "Tạo tài khoản",
		ResultHeading: "Kết quả API",
		StatusLabel:   "Mã trạng thái",
		LoginHint:     "Điền form và nhấn Đăng nhập để xem kết quả.",
		SignupHint:    "Điền form và nhấn Tạo tài khoản để xem kết quả.",
		ToSignup:      "Chưa có tài khoản? Đăng ký",
		ToLogin:       "Đã có tài khoản? Đăng nhập",
		MissingFields: "Vui lòng nhập đầy đủ username và password",
	},
	config.LocaleEnglish: {
		LoginTitle:    "Login",
		SignupTitle:   "Sign up",
		Username:      "Username",
		Password:      "Password",
		LoginSubmit:   "Sign in",
		SignupSubmit:  "Create account",
		ResultHeading: "API result",
		StatusLabel:   "Status code",
		LoginHint:     "Fill in the form and press Sign in to see the result.",
		SignupHint:    "Fill in the form and press Create account to see the result.",
		ToSignup:      "No account yet? Sign up",
		ToLogin:       "Already have an account? Log in",
		MissingFields: "Please enter both username and password",
	},
}

// Localizer picks the page language for a request.
type Localizer struct {
	matcher  language.Matcher
	fallback config.Locale
}

// NewLocalizer creates a localizer that falls back to the given locale.
func NewLocalizer(fallback config.Locale) *Localizer {
	if !fallback.IsValid() {
		fallback = config.LocaleVietnamese
	}
	return &Localizer{
		matcher:  language.NewMatcher([]language.Tag{language.Vietnamese, language.English}),
		fallback: fallback,
	}
}

// Resolve matches an Accept-Language header against the supported locales.
func (l *Localizer) Resolve(acceptLanguage string) config.Locale {
	if acceptLanguage == "" {
		return l.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return l.fallback
	}

	tag, _, confidence := l.matcher.Match(tags...)
	if confidence == language.No {
		return l.fallback
	}

	base, _ := tag.Base()
	locale := config.Locale(base.String())
	if !locale.IsValid() {
		return l.fallback
	}
	return locale
}

// Messages returns the strings for locale, defaulting to the fallback locale.
func (l *Localizer) Messages(locale config.Locale) Messages {
	if m, ok := catalog[locale]; ok {
		return m
	}
	return catalog[l.fallback]
}
