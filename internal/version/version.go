package version

// Version is the archivist CLI version. It is overridden at build time with
// -ldflags "-X github.com/jitsuin-inc/archivist-go/internal/version.Version=...".
var Version = "0.1.0-dev"

// UserAgent is sent on every request made by the CLI.
func UserAgent() string {
	return "archivist-go/" + Version
}
