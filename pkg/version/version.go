// Package version provides version information for the application.
package version

// Build information (set via ldflags during build)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns a short human-readable build identifier.
func String() string {
	return Version + " (" + Commit + ", " + BuildTime + ")"
}
