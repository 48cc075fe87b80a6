package config

// Environment represents the runtime environment
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

func (e Environment) IsValid() bool {
	switch e {
	case EnvDevelopment, EnvProduction:
		return true
	}
	return false
}

func (e Environment) IsProduction() bool {
	return e == EnvProduction
}

// Locale identifies the language pages are rendered in
type Locale string

const (
	LocaleVietnamese Locale = "vi"
	LocaleEnglish    Locale = "en"
)

func (l Locale) IsValid() bool {
	switch l {
	case LocaleVietnamese, LocaleEnglish:
		return true
	}
	return false
}

// LogLevel represents logging verbosity
type LogLevel string

const (
	LogLevelInfo  LogLevel = "info"
	LogLevelDebug LogLevel = "debug"
)

func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelInfo, LogLevelDebug:
		return true
	}
	return false
}
